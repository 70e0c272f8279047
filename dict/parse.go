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
	"fmt"
	"strings"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/variant"
)

func isSpace(ch byte) bool {
	return ch == ' ' || (ch >= '\t' && ch <= '\r')
}

func noValueFor(name string) error {
	return fmt.Errorf("%w: '%s'", merr.ErrNoValueForName, name)
}

func unexpectedChar(ch byte) error {
	return fmt.Errorf("%w: '%c'", merr.ErrUnexpectedChar, ch)
}

// addKeysValues dispatches to the J-bracket scanner when the input
// starts with the literal "J00[", otherwise to the name=value list
// scanner.
func (d *Dictionary) addKeysValues(values string) error {
	if strings.HasPrefix(values, "J00[") {
		return d.scanJForm(values[4:])
	}
	return d.scanListForm(values)
}

// scanJForm parses Grammar B: [name:value][name:value]...
func (d *Dictionary) scanJForm(values string) error {
	const (
		stateName = iota
		stateValue
	)
	state := stateName
	var name, value strings.Builder

	for i := 0; i < len(values); i++ {
		ch := values[i]
		switch state {
		case stateName:
			if ch == ':' {
				state = stateValue
			} else {
				name.WriteByte(ch)
			}
		case stateValue:
			if ch == ']' {
				if i+1 < len(values) && values[i+1] == '[' {
					i++
				}
				if name.Len() > 0 {
					d.SetItem(variant.NewString(name.String()), variant.NewString(value.String()))
					name.Reset()
				}
				value.Reset()
				state = stateName
			} else {
				value.WriteByte(ch)
			}
		}
	}
	if state == stateValue {
		return noValueFor(name.String())
	}
	return nil
}

// scanListForm parses Grammar A: name=value; pairs with quoted,
// char-quoted, and bare value forms.
func (d *Dictionary) scanListForm(values string) error {
	const (
		stateExpectName = iota
		stateName
		stateExpectValue
		stateValue
		stateStringValue
		stateStringValueBackslash
		stateCharValue
		stateCharValueBackslash
		stateExpectSemicolon
	)
	state := stateExpectName
	var name, value strings.Builder

	for i := 0; i < len(values); i++ {
		ch := values[i]
		switch state {
		case stateExpectName:
			switch {
			case isSpace(ch) || ch == ';':
			case ch == '=':
				return unexpectedChar(ch)
			default:
				state = stateName
				name.Reset()
				name.WriteByte(ch)
			}
		case stateName:
			switch ch {
			case '=':
				trimName := strings.TrimSpace(name.String())
				name.Reset()
				name.WriteString(trimName)
				state = stateExpectValue
			case ';':
				return noValueFor(name.String())
			default:
				name.WriteByte(ch)
			}
		case stateExpectValue:
			switch {
			case ch == '"':
				value.Reset()
				state = stateStringValue
			case ch == '\'':
				value.Reset()
				state = stateCharValue
			case ch == ';':
				return noValueFor(name.String())
			case isSpace(ch):
			default:
				value.Reset()
				value.WriteByte(ch)
				state = stateValue
			}
		case stateValue:
			if ch == ';' {
				state = stateExpectName
				trimmed := strings.TrimSpace(value.String())
				d.SetItem(variant.NewString(name.String()), variant.NewString(trimmed))
			} else {
				value.WriteByte(ch)
			}
		case stateStringValue:
			switch ch {
			case '"':
				v, err := variant.FromEscapedString(`"` + value.String() + `"`)
				if err != nil {
					return err
				}
				d.SetItem(variant.NewString(name.String()), v)
				state = stateExpectSemicolon
			case '\\':
				state = stateStringValueBackslash
			default:
				value.WriteByte(ch)
			}
		case stateStringValueBackslash:
			if ch != '"' {
				value.WriteByte('\\')
			}
			value.WriteByte(ch)
			state = stateStringValue
		case stateCharValue:
			switch ch {
			case '\'':
				v, err := variant.FromEscapedString(`"` + value.String() + `"`)
				if err != nil {
					return err
				}
				r, err := v.AsChar()
				if err != nil {
					return err
				}
				d.SetItem(variant.NewString(name.String()), variant.NewChar(r))
				state = stateExpectSemicolon
			case '\\':
				state = stateCharValueBackslash
			default:
				value.WriteByte(ch)
			}
		case stateCharValueBackslash:
			if ch != '\'' {
				value.WriteByte('\\')
			}
			value.WriteByte(ch)
			state = stateCharValue
		case stateExpectSemicolon:
			if ch == ';' {
				state = stateExpectName
			} else if !isSpace(ch) {
				return unexpectedChar(ch)
			}
		}
	}

	switch state {
	case stateExpectName, stateExpectSemicolon:
		return nil
	case stateValue:
		trimmed := strings.TrimSpace(value.String())
		d.SetItem(variant.NewString(name.String()), variant.NewString(trimmed))
		return nil
	case stateName:
		return noValueFor(name.String())
	case stateExpectValue:
		return noValueFor(name.String())
	case stateStringValue, stateStringValueBackslash, stateCharValue, stateCharValueBackslash:
		return merr.ErrUnterminatedString
	default:
		return nil
	}
}
