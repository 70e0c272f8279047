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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterlink/mcore/stream"
)

// backingStore is a seekable, in-memory inner stream used to exercise
// Buffered's page cache without touching the filesystem.
type backingStore struct {
	stream.NoKey
	data []byte
	pos  int64
	open bool
}

func newBackingStore(initial []byte) *backingStore {
	cp := make([]byte, len(initial))
	copy(cp, initial)
	return &backingStore{data: cp, open: true}
}

func (s *backingStore) Open(string, stream.Flags, stream.Sharing) error { s.open = true; return nil }
func (s *backingStore) Close() error                                   { s.open = false; return nil }
func (s *backingStore) IsOpen() bool                                   { return s.open }
func (s *backingStore) Flush(bool) error                               { return nil }

func (s *backingStore) ReadAvailable(dst []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, nil
	}
	n := copy(dst, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *backingStore) Write(src []byte) error {
	end := s.pos + int64(len(src))
	if end > int64(len(s.data)) {
		grown := make([]byte, end)
		copy(grown, s.data)
		s.data = grown
	}
	copy(s.data[s.pos:end], src)
	s.pos = end
	return nil
}

func (s *backingStore) Position() (int64, error) { return s.pos, nil }
func (s *backingStore) SetPosition(p int64) error { s.pos = p; return nil }
func (s *backingStore) Size() (int64, error)      { return int64(len(s.data)), nil }
func (s *backingStore) SetSize(n int64) error {
	if n <= int64(len(s.data)) {
		s.data = s.data[:n]
	} else {
		grown := make([]byte, n)
		copy(grown, s.data)
		s.data = grown
	}
	return nil
}

func TestBufferedReadWriteRoundTrip(t *testing.T) {
	inner := newBackingStore(nil)
	b := NewBuffered(inner, 16, 0)
	require.NoError(t, b.Open("x", stream.ReadWrite, stream.SharingAllowAll))

	payload := []byte("the quick brown fox jumps over the lazy dog")
	require.NoError(t, b.Write(payload))
	require.NoError(t, b.Flush(false))

	require.NoError(t, b.SetPosition(0))
	out := make([]byte, len(payload))
	n, err := b.ReadAvailable(out)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, out)
}

func TestBufferedCrossesPageBoundaries(t *testing.T) {
	inner := newBackingStore(nil)
	b := NewBuffered(inner, 4, 0)
	require.NoError(t, b.Open("x", stream.ReadWrite, stream.SharingAllowAll))

	payload := []byte("0123456789abcdef0123")
	require.NoError(t, b.Write(payload))
	require.NoError(t, b.Flush(false))

	require.NoError(t, b.SetPosition(0))
	out := make([]byte, len(payload))
	n, err := b.ReadAvailable(out)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, out)
}

func TestBufferedPartialReadThenContinue(t *testing.T) {
	inner := newBackingStore([]byte("abcdefghij"))
	b := NewBuffered(inner, 4, 0)
	require.NoError(t, b.Open("x", stream.ReadOnly, stream.SharingAllowAll))

	first := make([]byte, 3)
	n, err := b.ReadAvailable(first)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(first))

	rest := make([]byte, 7)
	n, err = b.ReadAvailable(rest)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "defghij", string(rest))
}

func TestBufferedSizeTracksUnflushedWrite(t *testing.T) {
	inner := newBackingStore(nil)
	b := NewBuffered(inner, 16, 0)
	require.NoError(t, b.Open("x", stream.ReadWrite, stream.SharingAllowAll))

	require.NoError(t, b.Write([]byte("hello")))
	size, err := b.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestBufferedSetSizeRejectsGrowth(t *testing.T) {
	inner := newBackingStore([]byte("abc"))
	b := NewBuffered(inner, 16, 0)
	require.NoError(t, b.Open("x", stream.ReadWrite, stream.SharingAllowAll))
	assert.Error(t, b.SetSize(10))
}

func TestBufferedSetPositionPastEndFails(t *testing.T) {
	inner := newBackingStore([]byte("abc"))
	b := NewBuffered(inner, 16, 0)
	require.NoError(t, b.Open("x", stream.ReadOnly, stream.SharingAllowAll))
	assert.Error(t, b.SetPosition(100))
}

func TestBufferedHeaderOffsetsPageData(t *testing.T) {
	inner := newBackingStore(make([]byte, 8))
	copy(inner.data[4:], []byte("data"))
	b := NewBuffered(inner, 4, 4)
	require.NoError(t, b.Open("x", stream.ReadOnly, stream.SharingAllowAll))

	out := make([]byte, 4)
	n, err := b.ReadAvailable(out)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "data", string(out))
}
