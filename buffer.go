package typedcsv

import (
	"bytes"
	"context"
	"io"
)

const (
	defaultBufferSize = 16 << 10 // 16 KiB
	minBufferSize     = 16
	maxEmptyReads     = 100
)

// contextReader is implemented by sources that can abandon a blocked read themselves.
type contextReader interface {
	ReadContext(ctx context.Context, p []byte) (int, error)
}

// buffer owns a contiguous backing array and the valid window buf[start:end].
//
// The reader consumes the window from the front and refills at the back; the writer keeps
// start at zero and treats buf[end:] as free space.
type buffer struct {
	buf       []byte
	start     int
	end       int
	scanned   int // bytes of the window already searched for a newline
	exhausted bool
	grown     int // number of capacity doublings, for logging

	// tainted is set when a read was abandoned in flight; the orphaned read may still write
	// into buf, so the array must not be reused.
	tainted bool
}

func newBuffer(size int) buffer {
	if size < minBufferSize {
		size = minBufferSize
	}
	return buffer{buf: make([]byte, size)}
}

func (b *buffer) window() []byte { return b.buf[b.start:b.end] }

func (b *buffer) len() int { return b.end - b.start }

// nextRecord returns the window up to (not including) the next newline.
// It reports false when the window holds no complete record yet.
func (b *buffer) nextRecord() ([]byte, bool) {
	w := b.window()
	if i := bytes.IndexByte(w[b.scanned:], '\n'); i >= 0 {
		return w[:b.scanned+i], true
	}
	b.scanned = len(w)
	return nil, false
}

// advance discards a record of length n and its delimiter from the front of the window.
// Compaction is deferred to the next prepare.
func (b *buffer) advance(n int) {
	b.start += min(b.len(), n+1)
	b.scanned = 0
	if b.start == b.end {
		b.start, b.end = 0, 0
	}
}

// prepare makes room at the back of the window: it doubles the backing array when the window
// already spans it, otherwise it moves the window to offset zero.
func (b *buffer) prepare() {
	n := b.len()
	if n == len(b.buf) {
		grown := make([]byte, 2*len(b.buf))
		copy(grown, b.window())
		b.buf = grown
		b.grown++
	} else if b.start > 0 {
		copy(b.buf, b.buf[b.start:b.end])
	}
	b.start, b.end = 0, n
}

// fill appends input from src into the free region after prepare. It performs a single
// successful read; short reads are normal and only io.EOF marks the buffer exhausted.
func (b *buffer) fill(ctx context.Context, src io.Reader) error {
	b.prepare()
	for i := 0; i < maxEmptyReads; i++ {
		n, abandoned, err := readContext(ctx, src, b.buf[b.end:])
		if abandoned {
			b.tainted = true
		}
		b.end += n
		if err == io.EOF {
			b.exhausted = true
			return nil
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return io.ErrNoProgress
}

// readContext reads from src, abandoning the read when ctx is done. A read abandoned while in
// flight may still write into p later; abandoned reports that case and p must not be reused.
func readContext(ctx context.Context, src io.Reader, p []byte) (n int, abandoned bool, err error) {
	if cr, ok := src.(contextReader); ok {
		n, err = cr.ReadContext(ctx, p)
		return n, false, err
	}
	if ctx.Done() == nil {
		n, err = src.Read(p)
		return n, false, err
	}

	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := src.Read(p)
		ch <- result{n, err}
	}()
	select {
	case res := <-ch:
		return res.n, false, res.err
	case <-ctx.Done():
		return 0, true, ctx.Err()
	}
}

// free returns the unused tail of the backing array (writer view).
func (b *buffer) free() []byte { return b.buf[b.end:] }

// pending returns the bytes written but not yet flushed (writer view).
func (b *buffer) pending() []byte { return b.buf[:b.end] }

func (b *buffer) commit(n int) { b.end += n }

// grow doubles the capacity keeping the pending bytes (writer view).
func (b *buffer) grow() {
	grown := make([]byte, max(2*len(b.buf), minBufferSize))
	copy(grown, b.pending())
	b.buf = grown
	b.grown++
}

func (b *buffer) reset() {
	if b.tainted {
		*b = newBuffer(len(b.buf))
		return
	}
	b.start, b.end, b.scanned = 0, 0, 0
	b.exhausted = false
}
