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

package streamfile

import (
	"bytes"
	"os"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/stream"
)

// Asset is a read-only stream backed by an in-memory byte slice,
// standing in for Android's read-only asset handles (spec §4.10):
// any write/truncate attempt fails with ErrInvalidOperationOnApkAsset.
type Asset struct {
	stream.NoKey
	data []byte
	pos  int64
	open bool
}

// NewAsset wraps data as a read-only asset stream, already open.
func NewAsset(data []byte) *Asset {
	return &Asset{data: data, open: true}
}

// OpenAsset loads name from disk and wraps it as a read-only asset,
// the desktop stand-in for reading a packaged Android asset by name.
func OpenAsset(name string) (*Asset, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return NewAsset(data), nil
}

func (a *Asset) Open(string, stream.Flags, stream.Sharing) error { a.open = true; return nil }
func (a *Asset) Close() error                                    { a.open = false; return nil }
func (a *Asset) IsOpen() bool                                    { return a.open }
func (a *Asset) Flush(bool) error                                { return nil }

func (a *Asset) ReadAvailable(dst []byte) (int, error) {
	if !a.open {
		return 0, merr.ErrFileNotOpen
	}
	if a.pos >= int64(len(a.data)) {
		return 0, nil
	}
	n := copy(dst, a.data[a.pos:])
	a.pos += int64(n)
	return n, nil
}

func (a *Asset) Write([]byte) error { return merr.ErrInvalidOperationOnApkAsset }

func (a *Asset) Position() (int64, error) { return a.pos, nil }
func (a *Asset) SetPosition(pos int64) error {
	if pos < 0 || pos > int64(len(a.data)) {
		return merr.ErrEndOfStream
	}
	a.pos = pos
	return nil
}
func (a *Asset) Size() (int64, error) { return int64(len(a.data)), nil }
func (a *Asset) SetSize(int64) error  { return merr.ErrInvalidOperationOnApkAsset }

var _ stream.Stream = (*Asset)(nil)

// Bytes returns a copy of the asset's backing data, useful for tests
// asserting on full contents without re-reading through the Stream
// interface.
func (a *Asset) Bytes() []byte {
	return bytes.Clone(a.data)
}
