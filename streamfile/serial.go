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

package streamfile

import (
	"fmt"

	"go.bug.st/serial"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/stream"
)

// Serial adapts a go.bug.st/serial port to stream.Stream, the way
// mcore's meter-communication channels plug a physical optical probe
// or RS-485 adapter into the same stream/processor stack a file or
// socket uses. Serial ports are not seekable or resizable.
type Serial struct {
	stream.NotSeekable
	stream.NoKey
	port   serial.Port
	device string
	mode   serial.Mode
	open   bool
}

// NewSerial returns an unopened Serial stream at the given baud rate.
func NewSerial(baudRate int) *Serial {
	return &Serial{mode: serial.Mode{BaudRate: baudRate}}
}

// Open opens the named serial device (e.g. "/dev/ttyUSB0"); flags and
// sharing are accepted for interface compatibility but ignored, since
// serial ports have no notion of either.
func (s *Serial) Open(name string, _ stream.Flags, _ stream.Sharing) error {
	port, err := serial.Open(name, &s.mode)
	if err != nil {
		return fmt.Errorf("%w: %v", merr.ErrFileNotOpen, err)
	}
	s.port = port
	s.device = name
	s.open = true
	return nil
}

func (s *Serial) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.port.Close()
}

func (s *Serial) IsOpen() bool { return s.open }

func (s *Serial) ReadAvailable(dst []byte) (int, error) {
	if !s.open {
		return 0, merr.ErrFileNotOpen
	}
	n, err := s.port.Read(dst)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

func (s *Serial) Write(src []byte) error {
	if !s.open {
		return merr.ErrFileNotOpen
	}
	_, err := s.port.Write(src)
	return err
}

// Flush is a no-op: go.bug.st/serial writes synchronously to the OS
// driver, so there is no library-side buffer to propagate. soft is
// accepted only for interface compatibility.
func (s *Serial) Flush(bool) error {
	if !s.open {
		return merr.ErrFileNotOpen
	}
	return nil
}

var _ stream.Stream = (*Serial)(nil)
