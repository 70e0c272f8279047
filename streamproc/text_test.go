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
)

func TestTextReadStripsCR(t *testing.T) {
	inner := newBackingStore([]byte("line1\r\nline2\r\n"))
	tp := NewText(inner)
	require.NoError(t, tp.Open("x", 0, 0))

	out := make([]byte, 64)
	n, err := tp.ReadAvailable(out)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", string(out[:n]))
}

func TestTextWriteInsertsCRBeforeLF(t *testing.T) {
	inner := newBackingStore(nil)
	tp := NewText(inner)
	require.NoError(t, tp.Open("x", 0, 0))

	require.NoError(t, tp.Write([]byte("a\nb\r\nc")))
	assert.Equal(t, "a\r\nb\r\nc", string(inner.data))
}

func TestTextWriteDoesNotDoubleCRAcrossCalls(t *testing.T) {
	inner := newBackingStore(nil)
	tp := NewText(inner)
	require.NoError(t, tp.Open("x", 0, 0))

	require.NoError(t, tp.Write([]byte("a\r")))
	require.NoError(t, tp.Write([]byte("\nb")))
	assert.Equal(t, "a\r\nb", string(inner.data))
}
