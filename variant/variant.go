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

// Package variant implements a tagged-union value type holding any
// primitive, string, byte-string, collection, map, or external object
// reference, per spec §4.5. It is the payload type mcore's Dictionary
// and INI layers exchange with callers.
package variant

import (
	"fmt"
	"strconv"

	"github.com/meterlink/mcore/merr"
)

// Kind discriminates the live payload of a Variant.
type Kind int

// Kinds, in the total order used to give Map keys a stable sort (see
// spec §9 open question: implementers must pin one order across
// mixed-type keys; this is the order mcore picked and documents).
const (
	Empty Kind = iota
	Bool
	Byte
	Char
	Int
	UInt
	Double
	String
	ByteString
	StringCollection
	ByteStringCollection
	VariantCollection
	Map
	Object
	EmbeddedObject
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Bool:
		return "Bool"
	case Byte:
		return "Byte"
	case Char:
		return "Char"
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case Double:
		return "Double"
	case String:
		return "String"
	case ByteString:
		return "ByteString"
	case StringCollection:
		return "StringCollection"
	case ByteStringCollection:
		return "ByteStringCollection"
	case VariantCollection:
		return "VariantCollection"
	case Map:
		return "Map"
	case Object:
		return "Object"
	case EmbeddedObject:
		return "EmbeddedObject"
	default:
		return "Unknown"
	}
}

// ownership describes how an Object/EmbeddedObject payload's lifetime
// is managed, mirroring MVariant::ObjectByValue's accept flags.
type ownership int

const (
	ownershipNone ownership = iota // borrowed, not owned
	ownershipOwned
	ownershipEmbedded // stored by value
)

// Pair is a single (key, value) entry of a Map-kind Variant.
type Pair struct {
	Key   Variant
	Value Variant
}

// Variant is a tagged union value. The zero value is Empty.
type Variant struct {
	kind Kind

	b   bool
	by  byte
	ch  rune
	i   int32
	u   uint32
	d   float64
	s   string
	bs  []byte
	sc  []string
	bsc [][]byte
	vc  []Variant
	m   []Pair

	obj       any
	ownership ownership
}

// Empty-kind constant for convenience.
var EmptyVariant = Variant{}

func NewBool(v bool) Variant       { return Variant{kind: Bool, b: v} }
func NewByte(v byte) Variant       { return Variant{kind: Byte, by: v} }
func NewChar(v rune) Variant       { return Variant{kind: Char, ch: v} }
func NewInt(v int32) Variant       { return Variant{kind: Int, i: v} }
func NewUInt(v uint32) Variant     { return Variant{kind: UInt, u: v} }
func NewDouble(v float64) Variant  { return Variant{kind: Double, d: v} }
func NewString(v string) Variant   { return Variant{kind: String, s: v} }
func NewByteString(v []byte) Variant {
	cp := make([]byte, len(v))
	copy(cp, v)
	return Variant{kind: ByteString, bs: cp}
}

// NewStringCollection builds an ordered-sequence-of-String Variant.
func NewStringCollection(v []string) Variant {
	cp := make([]string, len(v))
	copy(cp, v)
	return Variant{kind: StringCollection, sc: cp}
}

// NewByteStringCollection builds an ordered-sequence-of-ByteString
// Variant.
func NewByteStringCollection(v [][]byte) Variant {
	cp := make([][]byte, len(v))
	copy(cp, v)
	return Variant{kind: ByteStringCollection, bsc: cp}
}

// NewVariantCollection builds an ordered, heterogeneous sequence.
func NewVariantCollection(v []Variant) Variant {
	cp := make([]Variant, len(v))
	copy(cp, v)
	return Variant{kind: VariantCollection, vc: cp}
}

// NewMap builds an empty ordered Map Variant.
func NewMap() Variant {
	return Variant{kind: Map}
}

// NewObject wraps an externally-owned object reference. owned
// controls whether the Variant is considered the owner for the
// purposes of reflection-style cleanup hooks (mcore itself never
// frees Go values, but the flag is kept so ports of code that branch
// on it compile unchanged).
func NewObject(obj any, owned bool) Variant {
	o := ownershipNone
	if owned {
		o = ownershipOwned
	}
	return Variant{kind: Object, obj: obj, ownership: o}
}

// NewEmbeddedObject wraps a small by-value object (Duration,
// Timestamp, Timer and similar), per spec §4.5's embedded-object
// payload.
func NewEmbeddedObject(obj any) Variant {
	return Variant{kind: EmbeddedObject, obj: obj, ownership: ownershipEmbedded}
}

// Kind returns the live discriminator.
func (v Variant) Kind() Kind { return v.kind }

// IsEmpty reports whether the Variant holds no value.
func (v Variant) IsEmpty() bool { return v.kind == Empty }

// IsNumeric reports whether the Variant is one of the widening
// numeric kinds (Bool, Byte, Int, UInt, Double).
func (v Variant) IsNumeric() bool {
	switch v.kind {
	case Bool, Byte, Int, UInt, Double:
		return true
	default:
		return false
	}
}

func (v Variant) IsObject() bool { return v.kind == Object || v.kind == EmbeddedObject }

// --- coercions ---

// AsBool coerces to bool: Bool as itself, any numeric kind as
// non-zero.
func (v Variant) AsBool() (bool, error) {
	switch v.kind {
	case Bool:
		return v.b, nil
	case Byte:
		return v.by != 0, nil
	case Int:
		return v.i != 0, nil
	case UInt:
		return v.u != 0, nil
	case Double:
		return v.d != 0, nil
	default:
		return false, fmt.Errorf("%w: cannot coerce %s to bool", merr.ErrUnsupportedType, v.kind)
	}
}

// AsByte coerces to byte (0..255). Bool coerces to 0/1.
func (v Variant) AsByte() (byte, error) {
	switch v.kind {
	case Byte:
		return v.by, nil
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case Int:
		if v.i < 0 || v.i > 255 {
			return 0, merr.ErrNumberOutOfRange
		}
		return byte(v.i), nil
	case UInt:
		if v.u > 255 {
			return 0, merr.ErrNumberOutOfRange
		}
		return byte(v.u), nil
	case Double:
		if v.d < 0 || v.d > 255 {
			return 0, merr.ErrNumberOutOfRange
		}
		return byte(v.d), nil
	default:
		return 0, fmt.Errorf("%w: cannot coerce %s to byte", merr.ErrUnsupportedType, v.kind)
	}
}

// AsInt coerces to a signed 32-bit integer.
func (v Variant) AsInt() (int32, error) {
	switch v.kind {
	case Int:
		return v.i, nil
	case Byte:
		return int32(v.by), nil
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case UInt:
		return int32(v.u), nil
	case Double:
		return int32(v.d), nil
	case String:
		n, err := strconv.ParseInt(v.s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", merr.ErrUnsupportedType, err)
		}
		return int32(n), nil
	default:
		return 0, fmt.Errorf("%w: cannot coerce %s to int", merr.ErrUnsupportedType, v.kind)
	}
}

// AsUInt coerces to an unsigned 32-bit integer.
func (v Variant) AsUInt() (uint32, error) {
	switch v.kind {
	case UInt:
		return v.u, nil
	case Byte:
		return uint32(v.by), nil
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case Int:
		if v.i < 0 {
			return 0, merr.ErrNumberOutOfRange
		}
		return uint32(v.i), nil
	case Double:
		if v.d < 0 {
			return 0, merr.ErrNumberOutOfRange
		}
		return uint32(v.d), nil
	case String:
		n, err := strconv.ParseUint(v.s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", merr.ErrUnsupportedType, err)
		}
		return uint32(n), nil
	default:
		return 0, fmt.Errorf("%w: cannot coerce %s to uint", merr.ErrUnsupportedType, v.kind)
	}
}

// AsDouble coerces to float64.
func (v Variant) AsDouble() (float64, error) {
	switch v.kind {
	case Double:
		return v.d, nil
	case Byte:
		return float64(v.by), nil
	case Int:
		return float64(v.i), nil
	case UInt:
		return float64(v.u), nil
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case String:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", merr.ErrUnsupportedType, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: cannot coerce %s to double", merr.ErrUnsupportedType, v.kind)
	}
}

// AsString renders the Variant as a locale-insensitive, full
// precision string. Doubles are printed with up to 17 significant
// digits (the maximum needed for a lossless round trip per spec §9),
// but mcore defaults to 14 the way the original library does, only
// using more when 14 digits would not round-trip.
func (v Variant) AsString() (string, error) {
	switch v.kind {
	case String:
		return v.s, nil
	case Bool:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case Byte:
		return strconv.FormatUint(uint64(v.by), 10), nil
	case Char:
		return string(v.ch), nil
	case Int:
		return strconv.FormatInt(int64(v.i), 10), nil
	case UInt:
		return strconv.FormatUint(uint64(v.u), 10), nil
	case Double:
		return formatDouble(v.d), nil
	case ByteString:
		return string(v.bs), nil
	default:
		return "", fmt.Errorf("%w: cannot coerce %s to string", merr.ErrUnsupportedType, v.kind)
	}
}

// formatDouble prints d with the shortest representation that
// round-trips within 14 significant digits, falling back to 17 (the
// float64 round-trip guarantee) only when 14 is lossy.
func formatDouble(d float64) string {
	s := strconv.FormatFloat(d, 'g', 14, 64)
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == d {
		return s
	}
	return strconv.FormatFloat(d, 'g', 17, 64)
}

// AsByteString coerces to a raw byte sequence.
func (v Variant) AsByteString() ([]byte, error) {
	switch v.kind {
	case ByteString:
		cp := make([]byte, len(v.bs))
		copy(cp, v.bs)
		return cp, nil
	case String:
		return []byte(v.s), nil
	default:
		return nil, fmt.Errorf("%w: cannot coerce %s to byte string", merr.ErrUnsupportedType, v.kind)
	}
}

// AsChar coerces a one-character String (or an existing Char) to a
// rune.
func (v Variant) AsChar() (rune, error) {
	switch v.kind {
	case Char:
		return v.ch, nil
	case String:
		runes := []rune(v.s)
		if len(runes) != 1 {
			return 0, fmt.Errorf("%w: string is not a single character", merr.ErrUnsupportedType)
		}
		return runes[0], nil
	default:
		return 0, fmt.Errorf("%w: cannot coerce %s to char", merr.ErrUnsupportedType, v.kind)
	}
}

// AsObject returns the wrapped object payload.
func (v Variant) AsObject() (any, error) {
	if v.kind != Object && v.kind != EmbeddedObject {
		return nil, fmt.Errorf("%w: %s is not an object", merr.ErrUnsupportedType, v.kind)
	}
	return v.obj, nil
}

// AsVariantCollection returns the ordered sequence of Variants; Map
// values and StringCollection/ByteStringCollection are converted.
func (v Variant) AsVariantCollection() ([]Variant, error) {
	switch v.kind {
	case VariantCollection:
		cp := make([]Variant, len(v.vc))
		copy(cp, v.vc)
		return cp, nil
	case StringCollection:
		out := make([]Variant, len(v.sc))
		for i, s := range v.sc {
			out[i] = NewString(s)
		}
		return out, nil
	case ByteStringCollection:
		out := make([]Variant, len(v.bsc))
		for i, b := range v.bsc {
			out[i] = NewByteString(b)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot coerce %s to collection", merr.ErrUnsupportedType, v.kind)
	}
}
