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
	"fmt"
	"sort"

	"github.com/meterlink/mcore/merr"
)

// Count returns the number of elements: Map entries, collection
// elements, or 1 for a scalar/0 for Empty.
func (v Variant) Count() int {
	switch v.kind {
	case Map:
		return len(v.m)
	case VariantCollection:
		return len(v.vc)
	case StringCollection:
		return len(v.sc)
	case ByteStringCollection:
		return len(v.bsc)
	case Empty:
		return 0
	default:
		return 1
	}
}

// indexOfKey does an O(n) linear scan, matching
// MVariant::IsPresent's documented complexity for Map.
func (v Variant) indexOfKey(key Variant) int {
	for i, p := range v.m {
		if p.Key.Equal(key) {
			return i
		}
	}
	return -1
}

// IsPresent reports whether key exists in a Map Variant.
func (v Variant) IsPresent(key Variant) bool {
	if v.kind != Map {
		return false
	}
	return v.indexOfKey(key) >= 0
}

// Item looks up key in a Map Variant.
func (v Variant) Item(key Variant) (Variant, error) {
	if v.kind != Map {
		return Variant{}, fmt.Errorf("%w: not a map", merr.ErrUnsupportedType)
	}
	idx := v.indexOfKey(key)
	if idx < 0 {
		return Variant{}, fmt.Errorf("%w: '%v'", merr.ErrDictionaryMissingKey, key)
	}
	return v.m[idx].Value, nil
}

// SetItem inserts or replaces key's value in a Map Variant, preserving
// insertion order on first insert. v must already be a Map (or
// Empty, which is promoted to an empty Map).
func (v *Variant) SetItem(key, val Variant) {
	if v.kind == Empty {
		v.kind = Map
	}
	if idx := v.indexOfKey(key); idx >= 0 {
		v.m[idx].Value = val
		return
	}
	v.m = append(v.m, Pair{Key: key, Value: val})
}

// RemoveKey removes key from a Map Variant, reporting whether it was
// present.
func (v *Variant) RemoveKey(key Variant) bool {
	idx := v.indexOfKey(key)
	if idx < 0 {
		return false
	}
	v.m = append(v.m[:idx], v.m[idx+1:]...)
	return true
}

// AllKeys returns the Map's keys in insertion order.
func (v Variant) AllKeys() []Variant {
	out := make([]Variant, len(v.m))
	for i, p := range v.m {
		out[i] = p.Key
	}
	return out
}

// AllValues returns the Map's values in insertion order.
func (v Variant) AllValues() []Variant {
	out := make([]Variant, len(v.m))
	for i, p := range v.m {
		out[i] = p.Value
	}
	return out
}

// Pairs returns the Map's (key, value) pairs in insertion order.
func (v Variant) Pairs() []Pair {
	out := make([]Pair, len(v.m))
	copy(out, v.m)
	return out
}

// SortedPairs returns the Map's pairs ordered by key, using the total
// order documented on Kind for cross-type comparisons.
func (v Variant) SortedPairs() []Pair {
	out := v.Pairs()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key.Less(out[j].Key)
	})
	return out
}

// AppendElement appends an element to a collection Variant (Map
// instead merges when val is itself a Map, matching operator+= on
// MVariant).
func (v *Variant) AppendElement(val Variant) error {
	switch v.kind {
	case VariantCollection:
		v.vc = append(v.vc, val)
	case StringCollection:
		s, err := val.AsString()
		if err != nil {
			return err
		}
		v.sc = append(v.sc, s)
	case ByteStringCollection:
		bs, err := val.AsByteString()
		if err != nil {
			return err
		}
		v.bsc = append(v.bsc, bs)
	case Map:
		if val.kind != Map {
			return fmt.Errorf("%w: cannot append non-map to map", merr.ErrUnsupportedType)
		}
		v.Merge(val)
	default:
		return fmt.Errorf("%w: %s is not a collection", merr.ErrUnsupportedType, v.kind)
	}
	return nil
}

// Merge merges other's entries into v (both must be Map); entries in
// other overwrite entries of the same key in v.
func (v *Variant) Merge(other Variant) {
	for _, p := range other.m {
		v.SetItem(p.Key, p.Value)
	}
}
