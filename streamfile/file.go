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

// Package streamfile implements mcore's File stream (§4.10): an
// os.File-backed stream.Stream, non-owning stdio wrappers, a
// read-only asset stub (for platforms without writable local
// storage), and a serial-port adapter demonstrating the same contract
// over a real device driver.
package streamfile

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/stream"
)

// File wraps an *os.File as a stream.Stream, translating the generic
// flag bit-set to POSIX open flags per spec §4.10.
type File struct {
	f           *os.File
	handleOwned bool
	name        string
	noHardSync  bool
}

// translateFlags maps stream.Flags to the os.OpenFile flag bits,
// rejecting the NoReplace-without-Create combination the spec calls
// out as a configuration error.
func translateFlags(flags stream.Flags) (int, error) {
	var osFlags int
	switch {
	case flags&stream.ReadWrite == stream.ReadWrite:
		osFlags = os.O_RDWR
	case flags.Has(stream.WriteOnly):
		osFlags = os.O_WRONLY
	default:
		osFlags = os.O_RDONLY
	}
	if flags.Has(stream.Append) {
		osFlags |= os.O_APPEND
	}
	if flags.Has(stream.Create) {
		osFlags |= os.O_CREATE
	}
	if flags.Has(stream.Truncate) {
		osFlags |= os.O_TRUNC
	}
	if flags.Has(stream.NoReplace) {
		if !flags.Has(stream.Create) {
			return 0, fmt.Errorf("%w: NoReplace requires Create", merr.ErrBadStreamFlag)
		}
		osFlags |= os.O_EXCL
	}
	return osFlags, nil
}

// New returns an unopened File stream.
func New() *File { return &File{} }

// Open opens name under flags; sharing is honored on platforms that
// support it and otherwise ignored, matching MStreamFile's POSIX path
// (flock is applied best-effort and never fails Open on platforms
// lacking it).
func (fs *File) Open(name string, flags stream.Flags, sharing stream.Sharing) error {
	osFlags, err := translateFlags(flags)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(name, osFlags, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", merr.ErrFileNotOpen, err)
	}
	if sharing != stream.SharingAllowAll {
		applyAdvisoryLock(f, sharing)
	}
	fs.f = f
	fs.handleOwned = true
	fs.name = name
	return nil
}

// applyAdvisoryLock best-effort installs a flock matching sharing;
// failures are ignored since advisory locks are not part of the POSIX
// open contract and many filesystems (NFS, overlayfs) silently
// decline them.
func applyAdvisoryLock(f *os.File, sharing stream.Sharing) {
	how := unix.LOCK_SH
	if sharing == stream.SharingAllowNone {
		how = unix.LOCK_EX
	}
	_ = unix.Flock(int(f.Fd()), how|unix.LOCK_NB)
}

// newFromHandle wraps a pre-existing *os.File (used by the stdio
// constructors), optionally without ownership so Close is a no-op.
func newFromHandle(f *os.File, owned bool) *File {
	return &File{f: f, handleOwned: owned, name: f.Name()}
}

func (fs *File) Close() error {
	if fs.f == nil {
		return nil
	}
	if !fs.handleOwned {
		fs.f = nil
		return nil
	}
	err := fs.f.Close()
	fs.f = nil
	if err != nil {
		return fmt.Errorf("%w: %v", merr.ErrFileNotOpen, err)
	}
	return nil
}

func (fs *File) IsOpen() bool { return fs.f != nil }

func (fs *File) ReadAvailable(dst []byte) (int, error) {
	if fs.f == nil {
		return 0, merr.ErrFileNotOpen
	}
	n, err := fs.f.Read(dst)
	if err != nil {
		if err == io.EOF {
			return n, nil
		}
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

func (fs *File) Write(src []byte) error {
	if fs.f == nil {
		return merr.ErrFileNotOpen
	}
	_, err := fs.f.Write(src)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (fs *File) Position() (int64, error) {
	if fs.f == nil {
		return 0, merr.ErrFileNotOpen
	}
	return fs.f.Seek(0, io.SeekCurrent)
}

func (fs *File) SetPosition(pos int64) error {
	if fs.f == nil {
		return merr.ErrFileNotOpen
	}
	_, err := fs.f.Seek(pos, io.SeekStart)
	return err
}

func (fs *File) Size() (int64, error) {
	if fs.f == nil {
		return 0, merr.ErrFileNotOpen
	}
	info, err := fs.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (fs *File) SetSize(size int64) error {
	if fs.f == nil {
		return merr.ErrFileNotOpen
	}
	return fs.f.Truncate(size)
}

// Flush fsyncs the file unless soft is true, matching the spec's
// distinction between an expensive OS-level sync and a library-cache
// flush (the File stream has no library cache of its own, so a soft
// flush is a no-op).
func (fs *File) Flush(soft bool) error {
	if fs.f == nil {
		return merr.ErrFileNotOpen
	}
	if soft || fs.noHardSync {
		return nil
	}
	return fs.f.Sync()
}

func (fs *File) SetKey([]byte) error { return nil }

var _ stream.Stream = (*File)(nil)

// ReadAll reads the entire contents of name.
func ReadAll(name string) ([]byte, error) {
	f := New()
	if err := f.Open(name, stream.ReadOnly, stream.SharingAllowAll); err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(readerFunc(f.ReadAvailable))
}

// readerFunc adapts ReadAvailable's (int, error) shape to io.Reader,
// since File's best-effort read never reports io.EOF directly.
type readerFunc func([]byte) (int, error)

func (r readerFunc) Read(p []byte) (int, error) {
	n, err := r(p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadAllLines reads name and splits it into lines via stream.ReadAllLines.
func ReadAllLines(name string) ([]string, error) {
	f := New()
	if err := f.Open(name, stream.ReadOnly, stream.SharingAllowAll); err != nil {
		return nil, err
	}
	defer f.Close()
	return stream.ReadAllLines(f)
}
