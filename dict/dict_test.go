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

package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterlink/mcore/variant"
)

func TestParseListForm(t *testing.T) {
	d, err := Parse(`name="John Smith";age=42;city=Chicago;`)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Count())

	v, err := d.Item(variant.NewString("name"))
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "John Smith", s)

	v, err = d.Item(variant.NewString("age"))
	require.NoError(t, err)
	s, _ = v.AsString()
	assert.Equal(t, "42", s)
}

func TestParseCharValue(t *testing.T) {
	d, err := Parse(`sep='\t';`)
	require.NoError(t, err)
	v, err := d.Item(variant.NewString("sep"))
	require.NoError(t, err)
	assert.Equal(t, variant.Char, v.Kind())
	r, _ := v.AsChar()
	assert.Equal(t, '\t', r)
}

func TestParseBareValueNoTrailingSemicolon(t *testing.T) {
	d, err := Parse(`a=1;b=2`)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Count())
	v, _ := d.Item(variant.NewString("b"))
	s, _ := v.AsString()
	assert.Equal(t, "2", s)
}

func TestParseJForm(t *testing.T) {
	d, err := Parse(`J00[foo:bar][baz:qux]`)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Count())
	v, err := d.Item(variant.NewString("foo"))
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "bar", s)
}

func TestParseJFormSkipsUnnamed(t *testing.T) {
	d, err := Parse(`J00[:ignored][k:v]`)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Count())
}

func TestParseUnexpectedCharAtStart(t *testing.T) {
	_, err := Parse(`=value;`)
	assert.Error(t, err)
}

func TestParseMissingValue(t *testing.T) {
	_, err := Parse(`name;`)
	assert.Error(t, err)
}

func TestParseUnterminatedString(t *testing.T) {
	_, err := Parse(`name="unterminated`)
	assert.Error(t, err)
}

func TestAsStringSortedVsUnsorted(t *testing.T) {
	d := New()
	d.SetItem(variant.NewString("z"), variant.NewInt(1))
	d.SetItem(variant.NewString("a"), variant.NewInt(2))

	sorted, err := d.AsString()
	require.NoError(t, err)
	assert.Equal(t, "a=2;z=1;", sorted)

	unsorted, err := d.AsStringUnsorted()
	require.NoError(t, err)
	assert.Equal(t, "z=1;a=2;", unsorted)
}

func TestRoundTripPreservesPairsAsSet(t *testing.T) {
	original := `name="John Smith";age=42;city=Chicago;`
	d, err := Parse(original)
	require.NoError(t, err)

	s, err := d.AsString()
	require.NoError(t, err)

	reparsed, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, d.Count(), reparsed.Count())
	for _, k := range d.AllKeys() {
		want, _ := d.Item(k)
		got, err := reparsed.Item(k)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	}
}

func TestRoundTripUnsortedPreservesOrder(t *testing.T) {
	d := New()
	d.SetItem(variant.NewString("z"), variant.NewString("1"))
	d.SetItem(variant.NewString("a"), variant.NewString("2"))

	s, err := d.AsStringUnsorted()
	require.NoError(t, err)

	reparsed, err := Parse(s)
	require.NoError(t, err)
	keys := reparsed.AllKeys()
	require.Len(t, keys, 2)
	k0, _ := keys[0].AsString()
	k1, _ := keys[1].AsString()
	assert.Equal(t, "z", k0)
	assert.Equal(t, "a", k1)
}

func TestRemoveAndMerge(t *testing.T) {
	d := New()
	d.SetItem(variant.NewString("a"), variant.NewInt(1))
	require.NoError(t, d.Remove(variant.NewString("a")))
	assert.Error(t, d.Remove(variant.NewString("a")))

	d2 := New()
	d2.SetItem(variant.NewString("b"), variant.NewInt(2))
	d3 := New()
	d3.SetItem(variant.NewString("b"), variant.NewInt(99))
	d2.Merge(d3)
	v, _ := d2.Item(variant.NewString("b"))
	s, _ := v.AsString()
	assert.Equal(t, "99", s)
}

func TestEscapedStringValueRoundTrips(t *testing.T) {
	d := New()
	d.SetItem(variant.NewString("msg"), variant.NewString(`has "quotes" and \backslash`))
	s, err := d.AsString()
	require.NoError(t, err)

	reparsed, err := Parse(s)
	require.NoError(t, err)
	v, err := reparsed.Item(variant.NewString("msg"))
	require.NoError(t, err)
	got, _ := v.AsString()
	assert.Equal(t, `has "quotes" and \backslash`, got)
}
