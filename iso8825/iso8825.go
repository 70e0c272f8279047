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

// Package iso8825 implements the ISO/IEC 8825 (ITU-T X.690) BER
// length encoding and the Object Identifier (UID) text/binary codec
// used to tag ACSE/association parameters in the metering protocol
// stack, per spec §4.4.
package iso8825

import (
	"strconv"
	"strings"

	"github.com/meterlink/mcore/byteorder"
	"github.com/meterlink/mcore/merr"
)

// Tag byte conventions for UID encodings, per spec §3.
const (
	TagAbsolute      byte = 0x06
	TagRelativeData  byte = 0x0D
	TagRelativeACSE  byte = 0x80
)

const (
	shortestUidStringSize = 2
	longestUidStringSize  = 128
	longestUidBinarySize  = 64
)

// IsTagRelative classifies a UID tag byte; any value other than the
// three conventions above is an error.
func IsTagRelative(tag byte) (bool, error) {
	switch tag {
	case TagAbsolute:
		return false, nil
	case TagRelativeData, TagRelativeACSE:
		return true, nil
	default:
		return false, merr.ErrBadIsoBinary
	}
}

// IsUidRelative reports whether the textual UID is relative (begins
// with '.').
func IsUidRelative(uid string) bool {
	return strings.HasPrefix(uid, ".")
}

// EncodeLength encodes n as a BER length field: a single byte when n
// fits in 7 bits, otherwise a 0x80|k length-of-length byte followed
// by the k big-endian bytes of n (k in 1..4), per the table in §4.4.
func EncodeLength(n uint64) []byte {
	switch {
	case n <= 0x7F:
		return []byte{byte(n)}
	case n <= 0xFF:
		return []byte{0x81, byte(n)}
	case n <= 0xFFFF:
		var buf [2]byte
		byteorder.StoreBE(buf[:], uint16(n))
		return []byte{0x82, buf[0], buf[1]}
	case n <= 0xFFFFFF:
		var buf [4]byte
		byteorder.StoreBE(buf[:], uint32(n))
		return []byte{0x83, buf[1], buf[2], buf[3]}
	default:
		var buf [4]byte
		byteorder.StoreBE(buf[:], uint32(n))
		return []byte{0x84, buf[0], buf[1], buf[2], buf[3]}
	}
}

// DecodeLength reads a BER length field starting at buf[*cursor],
// advances cursor past it, and returns the decoded value. It fails
// with merr.ErrBadIsoLength if the buffer is too short or the
// length-of-length exceeds 4 (lengths wider than 32 bits are
// unsupported).
func DecodeLength(buf []byte, cursor *int) (uint64, error) {
	idx := 0
	if cursor != nil {
		idx = *cursor
	}
	if idx >= len(buf) {
		return 0, merr.ErrBadIsoLength
	}
	first := buf[idx]
	idx++
	if first&0x80 == 0 {
		if cursor != nil {
			*cursor = idx
		}
		return uint64(first), nil
	}
	numBytes := int(first & 0x7F)
	if numBytes < 1 || numBytes > 4 || len(buf)-idx < numBytes {
		return 0, merr.ErrBadIsoLength
	}
	var widthBuf [4]byte
	copy(widthBuf[4-numBytes:], buf[idx:idx+numBytes])
	length := uint64(byteorder.LoadBE[uint32](widthBuf[:]))
	idx += numBytes
	if cursor != nil {
		*cursor = idx
	}
	return length, nil
}

// DecodedLengthByteSize returns how many bytes the BER length field
// at the start of buf occupies, without returning the decoded value.
func DecodedLengthByteSize(buf []byte) (int, error) {
	cursor := 0
	if _, err := DecodeLength(buf, &cursor); err != nil {
		return 0, err
	}
	return cursor, nil
}

// EncodeUID encodes a textual UID ("1.2.840...", or ".3.4..." for a
// relative one) into its BER binary form.
func EncodeUID(uid string) ([]byte, error) {
	if len(uid) < shortestUidStringSize || len(uid) > longestUidStringSize {
		return nil, merr.ErrBadIsoString
	}

	rest := uid
	out := make([]byte, 0, longestUidBinarySize)

	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
	} else {
		a, tail, err := fetchArc(rest)
		if err != nil {
			return nil, err
		}
		b, tail2, err := fetchArc(tail)
		if err != nil {
			return nil, err
		}
		if a > 2 || b > 39 {
			return nil, merr.ErrBadIsoString
		}
		out = append(out, byte(a*40+b))
		rest = tail2
	}

	for rest != "" {
		var arc uint64
		var err error
		arc, rest, err = fetchArc(rest)
		if err != nil {
			return nil, err
		}
		if arc > 0x0FFFFFFF {
			return nil, merr.ErrBadIsoString
		}
		out = append(out, encodeArc(arc)...)
	}
	return out, nil
}

// fetchArc consumes a leading "."-delimited decimal arc from s,
// returning its value and the remainder of the string.
func fetchArc(s string) (uint64, string, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return 0, "", merr.ErrBadIsoString
	}
	end := strings.IndexByte(s, '.')
	digits := s
	rest := ""
	if end >= 0 {
		digits = s[:end]
		rest = s[end:]
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, "", merr.ErrBadIsoString
	}
	return v, rest, nil
}

// encodeArc base-128 VLQ-encodes a single arc value, MSB-first, with
// the continuation bit set on every byte but the last.
func encodeArc(v uint64) []byte {
	var groups [5]byte
	n := 0
	groups[n] = byte(v & 0x7F)
	n++
	v >>= 7
	for v > 0 {
		groups[n] = byte(v&0x7F) | 0x80
		n++
		v >>= 7
	}
	// groups were built least-significant-first; reverse into out.
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = groups[n-1-i]
	}
	return out
}

// DecodeUID decodes a binary UID back to its textual form. isRelative
// must be supplied by the caller, typically derived from the
// surrounding tag byte via IsTagRelative.
//
// Arcs are base-128 VLQ, not fixed-width big-endian, so byteorder's
// LoadBE/StoreBE don't apply here the way they do in EncodeLength and
// DecodeLength above; the shift-and-mask accumulation below is the
// VLQ decode itself, not a hand-rolled stand-in for a fixed-width load.
func DecodeUID(buf []byte, isRelative bool) (string, error) {
	var b strings.Builder
	i := 0
	if !isRelative {
		if len(buf) == 0 {
			return "", merr.ErrBadIsoBinary
		}
		first := buf[0]
		b.WriteString(strconv.FormatUint(uint64(first/40), 10))
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(uint64(first%40), 10))
		i = 1
	}

	var number uint64
	for ; i < len(buf); i++ {
		c := buf[i]
		number = number<<7 | uint64(c&0x7F)
		if c&0x80 == 0 {
			b.WriteByte('.')
			b.WriteString(strconv.FormatUint(number, 10))
			number = 0
		}
	}
	if number != 0 {
		// last byte had continuation bit set: truncated input.
		return "", merr.ErrBadIsoBinary
	}
	return b.String(), nil
}

// EncodeTaggedUID emits tag, total-length, the UID's own tag byte
// (0x06 absolute / 0x80 relative), UID length, and the UID bytes, per
// spec §4.4. It assumes the encoded UID never exceeds 64 bytes so
// every length fits in a single BER byte (the input length cap in
// EncodeUID guarantees this).
func EncodeTaggedUID(tag byte, uid string) ([]byte, error) {
	body, err := EncodeUID(uid)
	if err != nil {
		return nil, err
	}
	uidTag := TagAbsolute
	if IsUidRelative(uid) {
		uidTag = TagRelativeACSE
	}
	out := make([]byte, 0, len(body)+4)
	out = append(out, tag, byte(len(body)+2), uidTag, byte(len(body)))
	out = append(out, body...)
	return out, nil
}

// EncodeTaggedUnsigned emits tag, total-length, the INTEGER tag
// (0x02), integer length, and the minimum-width big-endian bytes of
// v, per spec §4.4.
func EncodeTaggedUnsigned(tag byte, v uint32) []byte {
	var full [4]byte
	byteorder.StoreBE(full[:], v)
	body := full[:]
	for len(body) > 1 && body[0] == 0 {
		body = body[1:]
	}
	out := make([]byte, 0, len(body)+3)
	out = append(out, tag, byte(len(body)+2), 0x02, byte(len(body)))
	out = append(out, body...)
	return out
}
