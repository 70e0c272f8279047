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

// Package streamproc implements mcore's stream processor decorators:
// a page-oriented, write-back Buffered cache (§4.8) and a CRLF/LF
// Text translator (§4.9), both layered over a stream.Stream inner
// resource the way MStreamProcessorBuffered/MStreamProcessorText
// layer over MStream.
package streamproc

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/meterlink/mcore/merr"
	"github.com/meterlink/mcore/stream"
)

// pageState mirrors the {NotPresent, CleanPresent, DirtyPresent}
// state machine of spec §4.8.
type pageState int

const (
	pageNotPresent pageState = iota
	pageClean
	pageDirty
)

// DefaultPageSize is the page size used when the caller does not
// specify one, matching MStreamProcessor::STREAM_BUFFER_SIZE outside
// debug builds.
const DefaultPageSize = 4096

const noSize = -1

// Buffered is a single-page write-back cache sitting between the
// application and an inner stream, per spec §4.8. It is not safe for
// concurrent use; a guard semaphore turns any reentrant call (e.g.
// from a callback invoked during a read/write) into
// merr.ErrReentrantAccess instead of corrupting page state.
type Buffered struct {
	inner stream.Stream

	pageSize     int
	headerSize   int64
	pageDataSize int

	page       []byte
	state      pageState
	pageIndex  int64
	buffCurr   int
	buffEnd    int
	pageOfFile int64 // noSize means "unknown, must reposition before next I/O"
	fileSize   int64 // noSize means "not cached yet"

	guard *semaphore.Weighted

	metrics *Metrics
}

// Metrics holds the optional Prometheus counters a Buffered processor
// updates on every page load/store; nil disables instrumentation.
type Metrics struct {
	PageReads  Counter
	PageWrites Counter
}

// Counter is the minimal surface streamproc needs from a Prometheus
// counter, so tests can substitute a no-op without importing
// client_golang.
type Counter interface {
	Inc()
}

// NewBuffered wraps inner in a page cache of pageSize bytes per page,
// reserving headerSize bytes once at the start of the inner stream,
// ahead of all page data; there is no per-page header.
func NewBuffered(inner stream.Stream, pageSize int, headerSize int64) *Buffered {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Buffered{
		inner:        inner,
		pageSize:     pageSize,
		headerSize:   headerSize,
		pageDataSize: pageSize,
		page:         make([]byte, pageSize),
		pageOfFile:   noSize,
		fileSize:     noSize,
		guard:        semaphore.NewWeighted(1),
	}
}

// SetMetrics installs Prometheus counters; pass nil to disable.
func (b *Buffered) SetMetrics(m *Metrics) { b.metrics = m }

func (b *Buffered) enter() error {
	if !b.guard.TryAcquire(1) {
		return merr.ErrReentrantAccess
	}
	return nil
}

func (b *Buffered) leave() { b.guard.Release(1) }

func (b *Buffered) Open(name string, flags stream.Flags, sharing stream.Sharing) error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	if err := b.inner.Open(name, flags, sharing); err != nil {
		return err
	}
	b.state = pageNotPresent
	b.pageIndex = 0
	b.buffCurr = 0
	b.buffEnd = 0
	b.pageOfFile = noSize
	b.fileSize = noSize
	return nil
}

func (b *Buffered) Close() error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	if !b.inner.IsOpen() {
		return nil
	}
	if err := b.writeBackLocked(); err != nil {
		return err
	}
	return b.inner.Close()
}

func (b *Buffered) IsOpen() bool { return b.inner.IsOpen() }

func (b *Buffered) SetKey(key []byte) error { return b.inner.SetKey(key) }

// loadPage reads page index into the buffer, repositioning the inner
// stream first when its position does not already match, per spec
// §4.8 read-path step 1.
func (b *Buffered) loadPage(index int64) error {
	if b.state == pageDirty {
		if err := b.writeBackLocked(); err != nil {
			return err
		}
	}
	if b.pageOfFile != index {
		if err := b.inner.SetPosition(b.headerSize + index*int64(b.pageSize)); err != nil {
			return err
		}
	}
	n, err := readFull(b.inner, b.page[:b.pageDataSize])
	if err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.PageReads.Inc()
	}
	b.buffEnd = n
	if n == b.pageDataSize {
		b.pageOfFile = index + 1
	} else {
		b.pageOfFile = noSize
	}
	if b.buffCurr > n {
		b.buffCurr = n
	}
	b.pageIndex = index
	b.state = pageClean
	log.Tracef("streamproc: loaded page %d (%d bytes)", index, n)
	return nil
}

// readFull performs best-effort reads against dst until it is full or
// the inner stream stops returning data, since ReadAvailable may
// return short reads even mid-stream.
func readFull(s stream.Stream, dst []byte) (int, error) {
	total := 0
	for total < len(dst) {
		n, err := s.ReadAvailable(dst[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// writeBackLocked flushes the current page to the inner stream if
// dirty, per spec §4.8's write-back step.
func (b *Buffered) writeBackLocked() error {
	if b.state != pageDirty {
		return nil
	}
	if b.pageOfFile != b.pageIndex {
		if err := b.inner.SetPosition(b.headerSize + b.pageIndex*int64(b.pageSize)); err != nil {
			return err
		}
	}
	if err := b.inner.Write(b.page[:b.buffEnd]); err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.PageWrites.Inc()
	}
	b.state = pageClean
	if b.buffEnd == b.pageDataSize {
		b.pageOfFile = b.pageIndex + 1
	} else {
		b.pageOfFile = noSize
	}
	return nil
}

func (b *Buffered) ReadAvailable(dst []byte) (int, error) {
	if err := b.enter(); err != nil {
		return 0, err
	}
	defer b.leave()

	if b.state == pageNotPresent {
		if err := b.loadPage(b.pageIndex); err != nil {
			return 0, err
		}
	}

	out := 0
	for out < len(dst) {
		avail := b.buffEnd - b.buffCurr
		if avail > 0 {
			n := avail
			if n > len(dst)-out {
				n = len(dst) - out
			}
			copy(dst[out:out+n], b.page[b.buffCurr:b.buffCurr+n])
			b.buffCurr += n
			out += n
			if out == len(dst) {
				break
			}
			if b.buffEnd != b.pageDataSize {
				break // short page: stream ended
			}
		}
		if b.buffEnd != b.pageDataSize {
			break
		}
		if err := b.loadPage(b.pageIndex + 1); err != nil {
			return out, err
		}
		b.buffCurr = 0
		if b.buffEnd == 0 {
			break
		}
	}
	return out, nil
}

func (b *Buffered) Write(src []byte) error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()

	if b.state == pageNotPresent {
		size, err := b.sizeLocked()
		if err != nil {
			return err
		}
		pos := b.pageIndex*int64(b.pageDataSize) + int64(b.buffCurr)
		if b.buffCurr == 0 {
			if int64(len(src)) < int64(b.pageDataSize) && pos+int64(len(src)) < size {
				if err := b.loadPage(b.pageIndex); err != nil {
					return err
				}
			} else {
				b.state = pageClean
			}
		} else {
			if err := b.loadPage(b.pageIndex); err != nil {
				return err
			}
		}
	}

	remaining := src
	for len(remaining) > 0 {
		room := b.pageDataSize - b.buffCurr
		if room > 0 {
			n := room
			if n > len(remaining) {
				n = len(remaining)
			}
			copy(b.page[b.buffCurr:b.buffCurr+n], remaining[:n])
			b.buffCurr += n
			if b.buffEnd < b.buffCurr {
				b.buffEnd = b.buffCurr
			}
			b.state = pageDirty
			remaining = remaining[n:]
			if len(remaining) == 0 {
				break
			}
		}
		if err := b.writeBackLocked(); err != nil {
			return err
		}
		b.pageIndex++
		if err := b.loadPage(b.pageIndex); err != nil {
			return err
		}
		b.buffCurr = 0
	}
	return nil
}

func (b *Buffered) Position() (int64, error) {
	if err := b.enter(); err != nil {
		return 0, err
	}
	defer b.leave()
	return b.pageIndex*int64(b.pageDataSize) + int64(b.buffCurr), nil
}

func (b *Buffered) SetPosition(pos int64) error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()

	size, err := b.sizeLocked()
	if err != nil {
		return err
	}
	if pos > size {
		return merr.ErrEndOfStream
	}
	newPage := pos / int64(b.pageDataSize)
	posInPage := pos % int64(b.pageDataSize)
	if newPage != b.pageIndex {
		if b.state == pageDirty {
			if err := b.writeBackLocked(); err != nil {
				return err
			}
		}
		b.pageIndex = newPage
		b.state = pageNotPresent
	}
	b.buffCurr = int(posInPage)
	return nil
}

func (b *Buffered) sizeLocked() (int64, error) {
	if b.fileSize == noSize {
		s, err := b.inner.Size()
		if err != nil {
			return 0, err
		}
		s -= b.headerSize
		if s < 0 {
			s = 0
		}
		b.fileSize = s
	}
	pageEnd := b.pageIndex*int64(b.pageDataSize) + int64(b.buffEnd)
	if pageEnd > b.fileSize {
		b.fileSize = pageEnd
	}
	return b.fileSize, nil
}

func (b *Buffered) Size() (int64, error) {
	if err := b.enter(); err != nil {
		return 0, err
	}
	defer b.leave()
	return b.sizeLocked()
}

func (b *Buffered) SetSize(size int64) error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()

	cur, err := b.sizeLocked()
	if err != nil {
		return err
	}
	if size == cur {
		return nil
	}
	if size > cur {
		return merr.ErrEndOfStream
	}

	lastPage := size / int64(b.pageDataSize)
	if b.state != pageNotPresent && lastPage == b.pageIndex {
		newEnd := int(size % int64(b.pageDataSize))
		b.buffEnd = newEnd
		if b.buffCurr > newEnd {
			b.buffCurr = newEnd
		}
		b.state = pageDirty
	} else {
		if err := b.inner.SetSize(b.headerSize + size); err != nil {
			return fmt.Errorf("streamproc: truncate inner stream: %w", err)
		}
		if lastPage < b.pageIndex {
			b.state = pageNotPresent
			b.pageIndex = lastPage
			b.buffCurr = 0
		}
	}
	b.fileSize = size
	return nil
}

func (b *Buffered) Flush(soft bool) error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	if err := b.writeBackLocked(); err != nil {
		return err
	}
	return b.inner.Flush(soft)
}

var _ stream.Stream = (*Buffered)(nil)

// Context-aware variants, used by callers that want the guard wait to
// respect cancellation instead of failing immediately; plain
// Stream-interface callers get the non-blocking TryAcquire behavior
// above.

// ReadAvailableContext behaves like ReadAvailable but blocks for
// reentrant access up to ctx's deadline instead of returning
// ErrReentrantAccess immediately.
func (b *Buffered) ReadAvailableContext(ctx context.Context, dst []byte) (int, error) {
	if err := b.guard.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	b.guard.Release(1)
	return b.ReadAvailable(dst)
}
