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

// Package ini implements mcore's sequential INI reader/writer (§4.11):
// a line-oriented grammar (semicolon comments, "[key]" sections,
// "name=value" assignments with optional typed-constant parsing) built
// directly on the stream.Stream line helpers, plus an ExportCompat
// helper that re-renders a parsed file through github.com/go-ini/ini
// for callers that want a conventional *ini.File.
package ini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/stream"
	"github.com/meterlink/mcore/variant"
)

// EntryKind discriminates what Reader.Next produced.
type EntryKind int

const (
	Eof EntryKind = iota
	Key
	NameValue
)

// Entry is one logical line read by Reader.Next.
type Entry struct {
	Kind  EntryKind
	Key   string          // valid when Kind == Key
	Name  string          // valid when Kind == NameValue
	Value variant.Variant // valid when Kind == NameValue
}

// Reader sequentially parses an INI-formatted stream, tracking a
// 1-based line number for error attachment via merr.WithLocation.
type Reader struct {
	s               stream.Stream
	name            string
	line            int
	respectValueType bool
}

// NewReader wraps s as an INI reader. name is attached to errors (the
// path passed to Open, typically). When respectValueType is false,
// every value is read back as a String regardless of its lexical
// shape, matching the "raw passthrough" INI mode; when true, values
// are parsed as typed Variant constants.
func NewReader(s stream.Stream, name string, respectValueType bool) *Reader {
	return &Reader{s: s, name: name, respectValueType: respectValueType}
}

func (r *Reader) fail(err error) error {
	return merr.WithLocation(err, r.name, r.line)
}

// Next returns the next logical entry, skipping blank lines and
// comments.
func (r *Reader) Next() (Entry, error) {
	for {
		line, ok, err := stream.ReadLine(r.s)
		if err != nil {
			return Entry{}, r.fail(err)
		}
		if !ok {
			return Entry{Kind: Eof}, nil
		}
		r.line++

		trimmed := stripComment(line)
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == "" {
			continue
		}

		if trimmed[0] == '[' {
			end := strings.IndexByte(trimmed, ']')
			if end < 0 {
				return Entry{}, r.fail(fmt.Errorf("%w: missing ']'", merr.ErrBadFileFormat))
			}
			return Entry{Kind: Key, Key: strings.TrimSpace(trimmed[1:end])}, nil
		}

		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			return Entry{}, r.fail(fmt.Errorf("%w: missing '='", merr.ErrBadFileFormat))
		}
		name := strings.TrimSpace(trimmed[:eq])
		rawValue := strings.TrimSpace(trimmed[eq+1:])

		val, err := r.parseValue(rawValue)
		if err != nil {
			return Entry{}, r.fail(err)
		}
		return Entry{Kind: NameValue, Name: name, Value: val}, nil
	}
}

// stripComment removes a trailing ';' comment, respecting quoted
// strings (single or double) whose boundaries may be backslash-escaped.
func stripComment(line string) string {
	inQuote := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuote != 0:
			if c == '\\' {
				i++
			} else if c == inQuote {
				inQuote = 0
			}
		case c == '"' || c == '\'':
			inQuote = c
		case c == ';':
			return line[:i]
		}
	}
	return line
}

// parseValue implements spec §4.11's value grammar: empty -> Empty,
// a leading '"', '{', '[', or '\'' parses as a Variant constant,
// literal EMPTY -> Empty, otherwise String verbatim unless
// respectValueType requests typed parsing.
func (r *Reader) parseValue(raw string) (variant.Variant, error) {
	if raw == "" {
		return variant.EmptyVariant, nil
	}
	if raw == "EMPTY" {
		return variant.EmptyVariant, nil
	}
	switch raw[0] {
	case '"':
		return variant.FromEscapedString(raw)
	case '\'':
		v, err := variant.FromEscapedString(strings.Trim(raw, "'"))
		if err != nil {
			return variant.Variant{}, err
		}
		ch, err := v.AsChar()
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.NewChar(ch), nil
	case '{', '[':
		return parseCollection(raw)
	}
	if !r.respectValueType {
		return variant.NewString(raw), nil
	}
	return parseTypedConstant(raw)
}

// parseTypedConstant recognizes booleans, hex integers, and numbers
// before falling back to a plain string, following FromMDLConstant's
// preference for the unsigned kind on a plain positive decimal (e.g.
// "Port", UInt(1153), spec §8 scenario 4).
func parseTypedConstant(raw string) (variant.Variant, error) {
	switch strings.ToLower(raw) {
	case "true":
		return variant.NewBool(true), nil
	case "false":
		return variant.NewBool(false), nil
	}
	if strings.HasPrefix(raw, "\"") || strings.HasPrefix(raw, "'") {
		return variant.FromEscapedString(raw)
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		n, err := strconv.ParseUint(raw[2:], 16, 32)
		if err == nil {
			return variant.NewUInt(uint32(n)), nil
		}
	}
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return variant.NewUInt(uint32(n)), nil
	}
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return variant.NewInt(int32(n)), nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return variant.NewDouble(f), nil
	}
	return variant.NewString(raw), nil
}

// parseCollection parses "{v1,v2,...}" as a VariantCollection (a
// StringCollection when every element is a string) and
// "{k1:v1,k2:v2,...}" as a Map; "[v1,v2,...]" is an alias for the
// array form, matching the bracket leniency of MUtilities' constant
// parser.
func parseCollection(raw string) (variant.Variant, error) {
	if len(raw) < 2 {
		return variant.Variant{}, fmt.Errorf("%w: truncated collection", merr.ErrBadFileFormat)
	}
	inner := raw[1 : len(raw)-1]
	if inner == "" {
		return variant.NewVariantCollection(nil), nil
	}
	parts := splitTopLevel(inner, ',')

	isMap := raw[0] == '{' && strings.Contains(parts[0], ":")
	if isMap {
		m := variant.NewMap()
		for _, p := range parts {
			kv := splitTopLevel(p, ':')
			if len(kv) != 2 {
				return variant.Variant{}, fmt.Errorf("%w: bad map entry %q", merr.ErrBadFileFormat, p)
			}
			key := variant.NewString(strings.TrimSpace(kv[0]))
			val, err := parseTypedConstant(strings.TrimSpace(kv[1]))
			if err != nil {
				return variant.Variant{}, err
			}
			m.SetItem(key, val)
		}
		return m, nil
	}

	var elems []variant.Variant
	allStrings := true
	for _, p := range parts {
		v, err := parseTypedConstant(strings.TrimSpace(p))
		if err != nil {
			return variant.Variant{}, err
		}
		if v.Kind() != variant.String {
			allStrings = false
		}
		elems = append(elems, v)
	}
	if allStrings {
		strs := make([]string, len(elems))
		for i, v := range elems {
			strs[i], _ = v.AsString()
		}
		return variant.NewStringCollection(strs), nil
	}
	return variant.NewVariantCollection(elems), nil
}

// splitTopLevel splits s on sep, ignoring occurrences nested inside
// braces or brackets.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
