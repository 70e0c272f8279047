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

// Package stream defines mcore's stream contract (§4.7): the flag
// bits, sharing modes, and the Stream interface that File, Buffered
// and Text processors all implement, plus line-oriented helpers built
// purely on top of that contract.
package stream

import (
	"bytes"
	"fmt"

	"github.com/meterlink/mcore/merr"
)

// Flags is a bit-set of the generic open flags, stable across
// platforms (spec §6). ReadWrite is the OR of ReadOnly and WriteOnly
// by construction; callers may rely on that identity.
type Flags uint32

const (
	ReadOnly  Flags = 1 << 0
	WriteOnly Flags = 1 << 1
	ReadWrite Flags = ReadOnly | WriteOnly
	Buffered  Flags = 1 << 2
	Text      Flags = 1 << 3
	Create    Flags = 1 << 4
	NoReplace Flags = 1 << 5
	Truncate  Flags = 1 << 6
	Append    Flags = 1 << 7
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Sharing is an opaque, platform-passthrough sharing-mode token
// (meaningful on Windows; ignored elsewhere). Cross-platform callers
// should stick to the enumerated constants.
type Sharing int

const (
	SharingAllowNone Sharing = iota
	SharingAllowRead
	SharingAllowWrite
	SharingAllowAll
)

// Stream is the contract every mcore stream and stream processor
// implements: open resources, byte-oriented read/write, optional
// seek/resize, and a soft/hard flush distinction.
type Stream interface {
	// Open opens the underlying resource by name under flags/sharing.
	Open(name string, flags Flags, sharing Sharing) error
	// Close releases the resource. A second Close is a no-op.
	Close() error
	// IsOpen reports whether the stream currently holds an open resource.
	IsOpen() bool

	// ReadAvailable performs a best-effort read of up to len(dst)
	// bytes, returning the count actually read. k < len(dst) means
	// end of stream or no more data currently available; callers may
	// retry.
	ReadAvailable(dst []byte) (int, error)
	// Write writes all of src or fails.
	Write(src []byte) error

	// Position returns the current byte offset.
	Position() (int64, error)
	// SetPosition seeks to an absolute byte offset.
	SetPosition(pos int64) error
	// Size returns the current logical size.
	Size() (int64, error)
	// SetSize truncates or extends the logical size.
	SetSize(size int64) error

	// Flush propagates buffered data to the inner layer. soft=true
	// avoids an expensive OS-level sync and only flushes library
	// caches.
	Flush(soft bool) error

	// SetKey installs an authentication/encryption key; ignored by
	// streams that do not support it.
	SetKey(key []byte) error
}

// NotSeekable is embedded by Stream implementations whose underlying
// resource offers no position/size capability (sockets, pipes,
// console handles); it rejects every seek/resize call with
// ErrBadStreamFlag, matching the spec's "default implementation
// rejects seeking on non-seekable resources."
type NotSeekable struct{}

func (NotSeekable) Position() (int64, error) { return 0, merr.ErrBadStreamFlag }
func (NotSeekable) SetPosition(int64) error  { return merr.ErrBadStreamFlag }
func (NotSeekable) Size() (int64, error)     { return 0, merr.ErrBadStreamFlag }
func (NotSeekable) SetSize(int64) error      { return merr.ErrBadStreamFlag }

// NoKey is embedded by streams that do not support encryption; SetKey
// is a silent no-op, matching the base MStream::SetKey behavior.
type NoKey struct{}

func (NoKey) SetKey([]byte) error { return nil }

// ReadLine reads up to and including the next "\n", strips a trailing
// "\r\n" or "\n", and returns the line without its terminator. At
// end-of-stream with no bytes read, it returns ("", io.EOF)-equivalent
// via ok=false.
func ReadLine(s Stream) (line string, ok bool, err error) {
	var buf bytes.Buffer
	one := make([]byte, 1)
	for {
		n, rerr := s.ReadAvailable(one)
		if n == 0 {
			if buf.Len() == 0 {
				return "", false, rerr
			}
			return trimEOL(buf.String()), true, nil
		}
		if one[0] == '\n' {
			return trimEOL(buf.String()), true, nil
		}
		buf.WriteByte(one[0])
	}
}

func trimEOL(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

// ReadAllLines reads every line from s until end-of-stream.
func ReadAllLines(s Stream) ([]string, error) {
	var lines []string
	for {
		line, ok, err := ReadLine(s)
		if !ok {
			if err != nil {
				return lines, err
			}
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// WriteString writes s's bytes verbatim.
func WriteString(s Stream, str string) error {
	return s.Write([]byte(str))
}

// WriteLine writes str followed by "\n".
func WriteLine(s Stream, str string) error {
	return s.Write([]byte(str + "\n"))
}

// ErrNotOpen is returned by operations attempted before Open or after
// Close; kept as a thin alias so stream implementations can reference
// it without importing merr directly in every file.
var ErrNotOpen = merr.ErrFileNotOpen

// CheckOpen is a small guard helper used by Stream implementations at
// the top of every operation that requires an open resource.
func CheckOpen(isOpen bool) error {
	if !isOpen {
		return fmt.Errorf("%w", ErrNotOpen)
	}
	return nil
}
