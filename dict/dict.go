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

// Package dict implements mcore's ordered string-to-variant mapping
// and its two textual grammars, per spec §4.6: the "name=value;" list
// form and the "J00[name:value]" bracket form used by legacy meters.
package dict

import (
	"fmt"
	"strings"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/variant"
)

// Dictionary is an ordered map from Variant keys to Variant values,
// backed by a Map-kind Variant.
type Dictionary struct {
	m variant.Variant
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{m: variant.NewMap()}
}

// Parse builds a Dictionary from its textual form (either grammar).
func Parse(s string) (*Dictionary, error) {
	d := New()
	if err := d.addKeysValues(s); err != nil {
		return nil, err
	}
	return d, nil
}

// Clear empties the Dictionary.
func (d *Dictionary) Clear() { d.m = variant.NewMap() }

// Count returns the number of entries.
func (d *Dictionary) Count() int { return d.m.Count() }

// IsKeyPresent reports whether key is in the Dictionary.
func (d *Dictionary) IsKeyPresent(key variant.Variant) bool { return d.m.IsPresent(key) }

// IsValuePresent reports whether any entry's value equals val.
func (d *Dictionary) IsValuePresent(val variant.Variant) bool {
	for _, p := range d.m.Pairs() {
		if p.Value.Equal(val) {
			return true
		}
	}
	return false
}

// Item returns the value stored under key.
func (d *Dictionary) Item(key variant.Variant) (variant.Variant, error) {
	return d.m.Item(key)
}

// SetItem inserts or replaces key's value.
func (d *Dictionary) SetItem(key, val variant.Variant) { d.m.SetItem(key, val) }

// RemoveIfPresent removes key if present, reporting whether it was.
func (d *Dictionary) RemoveIfPresent(key variant.Variant) bool { return d.m.RemoveKey(key) }

// Remove removes key, returning ErrDictionaryMissingKey if absent.
func (d *Dictionary) Remove(key variant.Variant) error {
	if !d.RemoveIfPresent(key) {
		return fmt.Errorf("%w: '%v'", merr.ErrDictionaryMissingKey, key)
	}
	return nil
}

// Merge copies other's entries into d, with other's values winning on
// key collision.
func (d *Dictionary) Merge(other *Dictionary) { d.m.Merge(other.m) }

// AllKeys returns the Dictionary's keys in insertion order.
func (d *Dictionary) AllKeys() []variant.Variant { return d.m.AllKeys() }

// AllValues returns the Dictionary's values in insertion order.
func (d *Dictionary) AllValues() []variant.Variant { return d.m.AllValues() }

// AsString renders the Dictionary sorted by key, in Grammar A form:
// name=literal; pairs, string values quoted and C-escaped.
func (d *Dictionary) AsString() (string, error) {
	return renderPairs(d.m.SortedPairs())
}

// AsStringUnsorted renders the Dictionary in insertion order.
func (d *Dictionary) AsStringUnsorted() (string, error) {
	return renderPairs(d.m.Pairs())
}

func renderPairs(pairs []variant.Pair) (string, error) {
	var b strings.Builder
	for _, p := range pairs {
		name, err := p.Key.AsString()
		if err != nil {
			return "", err
		}
		lit, err := LiteralOf(p.Value)
		if err != nil {
			return "", err
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(lit)
		b.WriteByte(';')
	}
	return b.String(), nil
}

// LiteralOf renders val as a constant: quoted/escaped for String and
// Char, verbatim for numeric kinds, per spec §4.6's
// ToRelaxedMDLConstant-equivalent rule. Shared with package ini, whose
// writer emits the same constant grammar.
func LiteralOf(val variant.Variant) (string, error) {
	switch val.Kind() {
	case variant.String, variant.ByteString:
		return val.AsEscapedString()
	case variant.Char:
		r, err := val.AsChar()
		if err != nil {
			return "", err
		}
		if r == '\'' {
			return `'\''`, nil
		}
		esc, err := variant.NewString(string(r)).AsEscapedString()
		if err != nil {
			return "", err
		}
		return "'" + esc[1:len(esc)-1] + "'", nil
	case variant.Empty:
		return "EMPTY", nil
	default:
		return val.AsString()
	}
}
