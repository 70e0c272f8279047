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

// Package timespan implements Duration, a signed second-granularity
// time span with the arithmetic, parsing, and formatting rules of
// spec §4.2.
package timespan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/meterlink/mcore/merr"
)

// Timestamp is a calendar time expressed as whole seconds since an
// external epoch. It exists so Duration can be constructed as the
// difference of two timestamps without depending on a full date or
// time-zone library (spec §1 non-goals): callers that have a
// time.Time convert with Timestamp(t.Unix()).
type Timestamp int64

// Duration is a signed number of whole seconds, fitting a 32-bit
// signed integer (roughly ±68 years), the Go analogue of MTimeSpan.
type Duration struct {
	seconds int32
}

// New builds a Duration from seconds, minutes, hours and days
// components. Each component may be negative or out of its "natural"
// range (e.g. minutes=90); they are simply summed. No overflow check
// is performed, matching MTimeSpan::Set.
func New(seconds, minutes, hours, days int) Duration {
	total := int64(seconds) + int64(minutes)*60 + int64(hours)*3600 + int64(days)*86400
	return Duration{seconds: int32(total)}
}

// FromSeconds builds a Duration directly from a second count.
func FromSeconds(seconds int32) Duration {
	return Duration{seconds: seconds}
}

// Between returns the Duration spanning from t1 to t2 (t2-t1),
// failing with merr.ErrTimeSpanTooLarge if the difference does not
// fit a signed 32-bit second count, mirroring MTimeSpan(MTime,MTime).
func Between(t1, t2 Timestamp) (Duration, error) {
	diff := int64(t2) - int64(t1)
	if diff < math.MinInt32 || diff > math.MaxInt32 {
		return Duration{}, merr.ErrTimeSpanTooLarge
	}
	return Duration{seconds: int32(diff)}, nil
}

// IsNull reports whether the duration is exactly zero.
func (d Duration) IsNull() bool { return d.seconds == 0 }

// SetNull zeroes the duration.
func (d *Duration) SetNull() { d.seconds = 0 }

// ToSeconds returns the total number of seconds.
func (d Duration) ToSeconds() int { return int(d.seconds) }

// ToMinutes returns the total number of whole minutes (truncated
// toward zero, following integer division's sign convention).
func (d Duration) ToMinutes() int { return int(d.seconds) / 60 }

// ToHours returns the total number of whole hours.
func (d Duration) ToHours() int { return int(d.seconds) / 3600 }

// GetDays returns the day component; its sign matches the total.
func (d Duration) GetDays() int { return int(d.seconds) / 86400 }

// GetHours returns the hour-of-day component in -23..23; its sign
// matches the total.
func (d Duration) GetHours() int {
	return d.ToHours() - d.GetDays()*24
}

// GetMinutes returns the minute-of-hour component in -59..59.
func (d Duration) GetMinutes() int {
	return d.ToMinutes() - d.ToHours()*60
}

// GetSeconds returns the second-of-minute component in -59..59.
func (d Duration) GetSeconds() int {
	return d.ToSeconds() - d.ToMinutes()*60
}

// Compare returns -1, 0 or 1 as d is less than, equal to, or greater
// than other.
func (d Duration) Compare(other Duration) int {
	switch {
	case d.seconds < other.seconds:
		return -1
	case d.seconds > other.seconds:
		return 1
	default:
		return 0
	}
}

// Add returns d+other.
func (d Duration) Add(other Duration) Duration {
	return Duration{seconds: d.seconds + other.seconds}
}

// Sub returns d-other.
func (d Duration) Sub(other Duration) Duration {
	return Duration{seconds: d.seconds - other.seconds}
}

// Neg returns -d.
func (d Duration) Neg() Duration {
	return Duration{seconds: -d.seconds}
}

// Mul returns d*n.
func (d Duration) Mul(n int) Duration {
	return Duration{seconds: d.seconds * int32(n)}
}

// Div returns d/n, failing with merr.ErrDivisionByZero if n is zero.
func (d Duration) Div(n int) (Duration, error) {
	if n == 0 {
		return Duration{}, merr.ErrDivisionByZero
	}
	return Duration{seconds: d.seconds / int32(n)}, nil
}

// AsString renders the duration as "[-]D H:M:S" (days omitted when
// zero; a zero duration renders as "0"), matching MTimeSpan::AsString.
func (d Duration) AsString() string {
	if d.IsNull() {
		return "0"
	}
	days, hours, minutes, seconds := d.GetDays(), d.GetHours(), d.GetMinutes(), d.GetSeconds()

	var b strings.Builder
	if d.seconds < 0 {
		b.WriteByte('-')
		days, hours, minutes, seconds = -days, -hours, -minutes, -seconds
	}
	if days == 0 {
		fmt.Fprintf(&b, "%02d:%02d:%02d", hours, minutes, seconds)
	} else {
		fmt.Fprintf(&b, "%d %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return b.String()
}

// SetAsString parses the textual grammar of §4.2 into the duration,
// replacing its value.
func (d *Duration) SetAsString(s string) error {
	parsed, err := ParseString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseString parses the textual grammar of §4.2:
//
//	["-"] [<days> " "] ( <seconds> | H:M | H:M:S )
//
// Whitespace is trimmed; when a day prefix is present, hours are
// constrained to 0..23.
func ParseString(s string) (Duration, error) {
	input := strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(input, "-") {
		negative = true
		input = input[1:]
	}

	var days, hours, minutes, seconds int
	hasDays := false

	if idx := strings.IndexByte(input, ' '); idx >= 0 {
		daysPart := input[:idx]
		rest := strings.TrimSpace(input[idx+1:])
		v, err := strconv.ParseUint(daysPart, 10, 32)
		if err != nil {
			return Duration{}, merr.ErrBadTimeValue
		}
		days = int(v)
		hasDays = true
		input = rest
	}

	parts := strings.Split(input, ":")
	switch len(parts) {
	case 1:
		if hasDays {
			return Duration{}, merr.ErrBadTimeValue
		}
		v, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return Duration{}, merr.ErrBadTimeValue
		}
		seconds = int(v)
		if negative {
			seconds = -seconds
		}
		return Duration{seconds: int32(seconds)}, nil
	case 2:
		h, err1 := strconv.ParseUint(parts[0], 10, 32)
		m, err2 := strconv.ParseUint(parts[1], 10, 32)
		if err1 != nil || err2 != nil {
			return Duration{}, merr.ErrBadTimeValue
		}
		hours, minutes = int(h), int(m)
	case 3:
		h, err1 := strconv.ParseUint(parts[0], 10, 32)
		m, err2 := strconv.ParseUint(parts[1], 10, 32)
		sec, err3 := strconv.ParseUint(parts[2], 10, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return Duration{}, merr.ErrBadTimeValue
		}
		hours, minutes, seconds = int(h), int(m), int(sec)
	default:
		return Duration{}, merr.ErrBadTimeValue
	}

	if hasDays && (hours < 0 || hours > 23) {
		return Duration{}, merr.ErrNumberOutOfRange
	}
	if minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return Duration{}, merr.ErrNumberOutOfRange
	}

	if negative {
		days, hours, minutes, seconds = -days, -hours, -minutes, -seconds
	}
	return New(seconds, minutes, hours, days), nil
}

func addInt(b *strings.Builder, value int, absolute bool) {
	if absolute && value < 0 {
		value = -value
	}
	fmt.Fprintf(b, "%d", value)
}

func addInt02d(b *strings.Builder, value int, absolute bool) {
	if value < 0 {
		if !absolute {
			b.WriteByte('-')
		}
		value = -value
	}
	fmt.Fprintf(b, "%02d", value)
}

// AsFormattedString renders the duration according to the directives
// of §4.2: %%, %N, %n, %d/%D, %h/%H, %m/%M, %s/%S, %c, %X, and a
// "%-" prefix selecting the signed variant of a numeric field or of %X
// (plain %X renders the magnitude in AsString form; %-X keeps its sign).
func (d Duration) AsFormattedString(format string) string {
	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '%' {
			b.WriteRune(ch)
			continue
		}
		i++
		if i >= len(runes) {
			b.WriteByte('%')
			break
		}
		absolute := true
		ch = runes[i]
		if ch == '-' {
			i++
			if i >= len(runes) {
				b.WriteString("%-")
				break
			}
			absolute = false
			ch = runes[i]
		}
		switch ch {
		case '%':
			b.WriteByte('%')
		case 'N':
			switch {
			case d.seconds < 0:
				b.WriteByte('-')
			case d.seconds > 0:
				b.WriteByte('+')
			default:
				b.WriteByte(' ')
			}
		case 'n':
			if d.seconds < 0 {
				b.WriteByte('-')
			}
		case 'd', 'D':
			addInt(&b, d.GetDays(), absolute)
		case 'h':
			addInt(&b, d.ToHours(), absolute)
		case 'H':
			addInt02d(&b, d.GetHours(), absolute)
		case 'm':
			addInt(&b, d.ToMinutes(), absolute)
		case 'M':
			addInt02d(&b, d.GetMinutes(), absolute)
		case 's':
			addInt(&b, d.ToSeconds(), absolute)
		case 'S':
			addInt02d(&b, d.GetSeconds(), absolute)
		case 'c':
			days := d.GetDays()
			if days != 0 {
				hours, minutes, seconds := d.GetHours(), d.GetMinutes(), d.GetSeconds()
				if d.seconds < 0 {
					days, hours, minutes, seconds = -days, -hours, -minutes, -seconds
					b.WriteByte('-')
				}
				fmt.Fprintf(&b, "%d days %02d:%02d:%02d", days, hours, minutes, seconds)
			} else {
				b.WriteString(d.AsString())
			}
		case 'X':
			if absolute && d.seconds < 0 {
				b.WriteString(d.Neg().AsString())
			} else {
				b.WriteString(d.AsString())
			}
		default:
			b.WriteByte('%')
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// String implements fmt.Stringer as AsString.
func (d Duration) String() string { return d.AsString() }
