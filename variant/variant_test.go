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

package variant

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterlink/mcore/merr"
)

// requireVariantsEqual fails with a spew dump of both sides, more
// useful than testify's default %v rendering for a tagged union whose
// struct fields don't print their active kind.
func requireVariantsEqual(t *testing.T, want, got Variant) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("variant mismatch:\nwant: %s\ngot:  %s", spew.Sdump(want), spew.Sdump(got))
	}
}

func TestConstructorsAndKind(t *testing.T) {
	assert.Equal(t, Bool, NewBool(true).Kind())
	assert.Equal(t, Byte, NewByte(9).Kind())
	assert.Equal(t, Char, NewChar('x').Kind())
	assert.Equal(t, Int, NewInt(-5).Kind())
	assert.Equal(t, UInt, NewUInt(5).Kind())
	assert.Equal(t, Double, NewDouble(1.5).Kind())
	assert.Equal(t, String, NewString("hi").Kind())
	assert.Equal(t, ByteString, NewByteString([]byte("hi")).Kind())
	assert.True(t, EmptyVariant.IsEmpty())
}

func TestNumericWideningCoercions(t *testing.T) {
	v := NewByte(42)
	i, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)

	u, err := v.AsUInt()
	require.NoError(t, err)
	assert.Equal(t, uint32(42), u)

	d, err := v.AsDouble()
	require.NoError(t, err)
	assert.Equal(t, 42.0, d)

	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "42", s)
}

func TestAsByteRangeChecks(t *testing.T) {
	_, err := NewInt(-1).AsByte()
	assert.ErrorIs(t, err, merr.ErrNumberOutOfRange)

	_, err = NewInt(256).AsByte()
	assert.Error(t, err)

	b, err := NewInt(200).AsByte()
	require.NoError(t, err)
	assert.Equal(t, byte(200), b)
}

func TestAsStringUnsupportedKind(t *testing.T) {
	_, err := NewMap().AsString()
	assert.Error(t, err)
}

func TestDoubleRoundTripFormatting(t *testing.T) {
	cases := []float64{0, 1, -1, 0.1, 3.14159265358979, 1e20, 1.0 / 3.0}
	for _, c := range cases {
		s := formatDouble(c)
		v, err := NewString(s).AsDouble()
		require.NoError(t, err)
		assert.Equal(t, c, v, "round trip for %v via %q", c, s)
	}
}

func TestMapOperations(t *testing.T) {
	m := NewMap()
	m.SetItem(NewString("a"), NewInt(1))
	m.SetItem(NewString("b"), NewInt(2))
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.IsPresent(NewString("a")))

	v, err := m.Item(NewString("a"))
	require.NoError(t, err)
	assert.Equal(t, NewInt(1), v)

	m.SetItem(NewString("a"), NewInt(99))
	v, _ = m.Item(NewString("a"))
	assert.Equal(t, NewInt(99), v)

	assert.True(t, m.RemoveKey(NewString("a")))
	assert.False(t, m.IsPresent(NewString("a")))
	assert.False(t, m.RemoveKey(NewString("a")))
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.SetItem(NewString("z"), NewInt(1))
	m.SetItem(NewString("a"), NewInt(2))
	m.SetItem(NewString("m"), NewInt(3))

	keys := m.AllKeys()
	require.Len(t, keys, 3)
	s0, _ := keys[0].AsString()
	s1, _ := keys[1].AsString()
	s2, _ := keys[2].AsString()
	assert.Equal(t, []string{"z", "a", "m"}, []string{s0, s1, s2})
}

func TestSortedPairsOrdersByKindThenValue(t *testing.T) {
	m := NewMap()
	m.SetItem(NewString("b"), NewInt(1))
	m.SetItem(NewString("a"), NewInt(2))
	m.SetItem(NewInt(5), NewInt(3))

	sorted := m.SortedPairs()
	require.Len(t, sorted, 3)
	assert.Equal(t, Int, sorted[0].Key.Kind())
	as, _ := sorted[1].Key.AsString()
	bs, _ := sorted[2].Key.AsString()
	assert.Equal(t, "a", as)
	assert.Equal(t, "b", bs)
}

func TestAppendElementVariants(t *testing.T) {
	vc := NewVariantCollection(nil)
	require.NoError(t, vc.AppendElement(NewInt(1)))
	require.NoError(t, vc.AppendElement(NewInt(2)))
	elems, err := vc.AsVariantCollection()
	require.NoError(t, err)
	assert.Len(t, elems, 2)

	sc := NewStringCollection(nil)
	require.NoError(t, sc.AppendElement(NewString("x")))
	assert.Equal(t, []string{"x"}, sc.sc)
}

func TestMergeCombinesMaps(t *testing.T) {
	a := NewMap()
	a.SetItem(NewString("x"), NewInt(1))
	b := NewMap()
	b.SetItem(NewString("y"), NewInt(2))
	b.SetItem(NewString("x"), NewInt(99))

	a.Merge(b)
	assert.Equal(t, 2, a.Count())
	v, _ := a.Item(NewString("x"))
	assert.Equal(t, NewInt(99), v)
}

func TestEqualAcrossNumericKinds(t *testing.T) {
	assert.True(t, NewByte(5).Equal(NewInt(5)))
	assert.True(t, NewInt(5).Equal(NewDouble(5.0)))
	assert.False(t, NewInt(5).Equal(NewString("5")))
}

func TestEqualCollections(t *testing.T) {
	a := NewVariantCollection([]Variant{NewInt(1), NewString("x")})
	b := NewVariantCollection([]Variant{NewInt(1), NewString("x")})
	c := NewVariantCollection([]Variant{NewInt(1), NewString("y")})
	requireVariantsEqual(t, a, b)
	assert.False(t, a.Equal(c))
}

func TestLessOrdersByKindWhenUnequal(t *testing.T) {
	assert.True(t, NewString("a").Less(NewByteString([]byte("z"))))
	assert.False(t, NewByteString([]byte("z")).Less(NewString("a")))
}

func TestLessOrdersSameKindByValue(t *testing.T) {
	assert.True(t, NewString("a").Less(NewString("b")))
	assert.False(t, NewString("b").Less(NewString("a")))
}

func TestEscapedStringRoundTrip(t *testing.T) {
	cases := []string{
		"plain",
		`has "quotes" and \backslash`,
		"line1\nline2\ttabbed",
		string([]byte{0x01, 0x02, 0xFF}),
		"",
	}
	for _, c := range cases {
		v := NewString(c)
		esc, err := v.AsEscapedString()
		require.NoError(t, err)
		back, err := FromEscapedString(esc)
		require.NoError(t, err)
		s, err := back.AsString()
		require.NoError(t, err)
		assert.Equal(t, c, s, "round trip through %q", esc)
	}
}

func TestEscapedStringUnterminated(t *testing.T) {
	_, err := FromEscapedString(`"abc\`)
	assert.Error(t, err)
}
