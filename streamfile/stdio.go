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
	"os"

	"golang.org/x/term"
)

// Stdin returns a non-owning stream over os.Stdin; Close never
// releases the underlying handle.
func Stdin() *File { return newStdio(os.Stdin) }

// Stdout returns a non-owning stream over os.Stdout.
func Stdout() *File { return newStdio(os.Stdout) }

// Stderr returns a non-owning stream over os.Stderr.
func Stderr() *File { return newStdio(os.Stderr) }

// newStdio wraps a standard handle without taking ownership and
// suppresses hard-sync on flush, since console buffers cannot be
// flushed at the OS level on every platform.
func newStdio(f *os.File) *File {
	fs := newFromHandle(f, false)
	fs.noHardSync = true
	return fs
}

// IsTerminal reports whether fs wraps an interactive terminal. Flush
// does not consult it: stdio wrappers skip the hard sync whether or
// not the handle is a terminal.
func (fs *File) IsTerminal() bool {
	if fs.f == nil {
		return false
	}
	return term.IsTerminal(int(fs.f.Fd()))
}
