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

import "bytes"

// Equal implements the widening-comparison equality of spec §4.5:
// numeric kinds (Bool, Byte, Int, UInt, Double) compare by numeric
// value regardless of which kind each side holds; String only equals
// String; collections and maps compare element-wise / as sets of
// pairs.
func (v Variant) Equal(other Variant) bool {
	if v.IsNumeric() && other.IsNumeric() {
		a, _ := v.AsDouble()
		b, _ := other.AsDouble()
		return a == b
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Empty:
		return true
	case Char:
		return v.ch == other.ch
	case String:
		return v.s == other.s
	case ByteString:
		return bytes.Equal(v.bs, other.bs)
	case StringCollection:
		if len(v.sc) != len(other.sc) {
			return false
		}
		for i := range v.sc {
			if v.sc[i] != other.sc[i] {
				return false
			}
		}
		return true
	case ByteStringCollection:
		if len(v.bsc) != len(other.bsc) {
			return false
		}
		for i := range v.bsc {
			if !bytes.Equal(v.bsc[i], other.bsc[i]) {
				return false
			}
		}
		return true
	case VariantCollection:
		if len(v.vc) != len(other.vc) {
			return false
		}
		for i := range v.vc {
			if !v.vc[i].Equal(other.vc[i]) {
				return false
			}
		}
		return true
	case Map:
		if len(v.m) != len(other.m) {
			return false
		}
		for _, p := range v.m {
			idx := other.indexOfKey(p.Key)
			if idx < 0 || !other.m[idx].Value.Equal(p.Value) {
				return false
			}
		}
		return true
	case Object, EmbeddedObject:
		return v.obj == other.obj
	default:
		return false
	}
}

// Less implements the total order over Kind pinned in spec §9's open
// question (Bool < Byte < Int < UInt < Double < String < ByteString <
// collections), used to give Dictionary.AsString a stable sort across
// mixed-type keys. Numeric kinds compare by value across kinds, like
// Equal; non-numeric kinds fall back to kind order, then to a
// same-kind comparison.
func (v Variant) Less(other Variant) bool {
	if v.IsNumeric() && other.IsNumeric() {
		a, _ := v.AsDouble()
		b, _ := other.AsDouble()
		if a != b {
			return a < b
		}
		return v.kind < other.kind
	}
	if v.kind != other.kind {
		return v.kind < other.kind
	}
	switch v.kind {
	case String:
		return v.s < other.s
	case ByteString:
		return bytes.Compare(v.bs, other.bs) < 0
	case Char:
		return v.ch < other.ch
	default:
		return false
	}
}
