/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package streamproc

import (
	"github.com/meterlink/mcore/byteorder"
	"github.com/meterlink/mcore/merr"
)

// HeaderMarkerSize is the width of the page-size marker
// EncodeHeaderMarker/DecodeHeaderMarker exchange through a Buffered
// processor's reserved headerSize region.
const HeaderMarkerSize = 4

// EncodeHeaderMarker renders pageSize as the big-endian marker a
// caller can store in the reserved region ahead of page data (the
// headerSize passed to NewBuffered), so a later Open can confirm the
// stream was written with the same page size before trusting its page
// boundaries. Buffered itself treats headerSize as opaque reserved
// space; writing and checking a marker there is left to callers that
// want it, the same way a future encryption processor would store its
// own format marker in the same region.
func EncodeHeaderMarker(pageSize int) []byte {
	buf := make([]byte, HeaderMarkerSize)
	byteorder.StoreBE(buf, uint32(pageSize))
	return buf
}

// DecodeHeaderMarker parses a marker written by EncodeHeaderMarker,
// failing with merr.ErrBadStreamFormat if buf is too short.
func DecodeHeaderMarker(buf []byte) (int, error) {
	if len(buf) < HeaderMarkerSize {
		return 0, merr.ErrBadStreamFormat
	}
	return int(byteorder.LoadBE[uint32](buf[:HeaderMarkerSize])), nil
}
