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
	"github.com/meterlink/mcore/stream"
)

// Text filters an inner stream to CRLF<->LF translation, per spec
// §4.9: reads drop every '\r'; writes insert a '\r' before any '\n'
// not already preceded by one. Position, SetPosition, Size and SetSize
// are not supported: the embedded NotSeekable rejects them with
// merr.ErrBadStreamFlag, and no position or size in the translated
// byte space is tracked.
type Text struct {
	stream.NotSeekable
	inner    stream.Stream
	lastWasCR bool
}

// NewText wraps inner with CRLF<->LF translation.
func NewText(inner stream.Stream) *Text {
	return &Text{inner: inner}
}

func (t *Text) Open(name string, flags stream.Flags, sharing stream.Sharing) error {
	t.lastWasCR = false
	return t.inner.Open(name, flags, sharing)
}

func (t *Text) Close() error           { return t.inner.Close() }
func (t *Text) IsOpen() bool           { return t.inner.IsOpen() }
func (t *Text) Flush(soft bool) error  { return t.inner.Flush(soft) }
func (t *Text) SetKey(key []byte) error { return t.inner.SetKey(key) }

// ReadAvailable reads from the inner stream and strips every '\r',
// looping until dst is full or the inner stream runs short, matching
// MStreamProcessorText::DoReadAvailableBytesImpl.
func (t *Text) ReadAvailable(dst []byte) (int, error) {
	out := 0
	for out < len(dst) {
		raw := make([]byte, len(dst)-out)
		n, err := t.inner.ReadAvailable(raw)
		if err != nil {
			return out, err
		}
		for i := 0; i < n; i++ {
			if raw[i] != '\r' {
				dst[out] = raw[i]
				out++
			}
		}
		if n < len(raw) {
			break
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}

// Write inserts a '\r' before every '\n' not already preceded by one,
// tracking the boundary byte across successive Write calls.
func (t *Text) Write(src []byte) error {
	if len(src) == 0 {
		return nil
	}
	out := make([]byte, 0, len(src)+len(src)/8+1)
	prev := byte(0)
	if t.lastWasCR {
		prev = '\r'
	}
	for _, c := range src {
		if c == '\n' && prev != '\r' {
			out = append(out, '\r')
		}
		out = append(out, c)
		prev = c
	}
	t.lastWasCR = prev == '\r'
	return t.inner.Write(out)
}

// Position/SetPosition/Size/SetSize are rejected via the embedded
// NotSeekable: the translated byte space has no stable mapping back to
// the inner stream's offsets, per spec §4.9.

var _ stream.Stream = (*Text)(nil)
