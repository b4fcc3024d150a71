package typedcsv

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Reader pulls delimited text from a stream into a growable window and hands out one record
// at a time to an Unmarshaler, together with typed field parsers bound to its FormatConfig.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	src    io.Reader
	closer io.Closer

	cfg    FormatConfig
	sep    []byte
	buf    buffer
	fields Fields
	logger *slog.Logger

	line int
	err  error
}

// NewReader creates a Reader that consumes records from src, panicking if src is nil.
// Without WithFormat the ambient locale is used.
func NewReader(src io.Reader, opts ...Option) *Reader {
	if src == nil {
		panic("typedcsv: reader source cannot be nil")
	}
	return newReader(src, nil, buildOptions(opts))
}

// FromString creates a Reader over an in-memory document.
func FromString(s string, opts ...Option) *Reader {
	return NewReader(strings.NewReader(s), opts...)
}

func newReader(src io.Reader, closer io.Closer, o options) *Reader {
	return &Reader{
		src:    src,
		closer: closer,
		cfg:    *o.format,
		sep:    o.format.separatorBytes(),
		buf:    newBuffer(o.bufferSize),
		logger: o.logger,
	}
}

// Format returns the reader's format configuration.
func (r *Reader) Format() FormatConfig { return r.cfg }

// Line returns the 1-based line of the most recent record, or zero before the first one.
func (r *Reader) Line() int { return r.line }

// CanReadMore reports whether another record is available, blocking on the stream if the
// window is empty. When the stream fails it reports true so that the next read returns the error.
func (r *Reader) CanReadMore() bool {
	more, err := r.CanReadMoreContext(context.Background())
	return more || err != nil
}

// CanReadMoreContext is CanReadMore with cancellation. It returns ctx.Err() if ctx is done
// before the stream produces input.
func (r *Reader) CanReadMoreContext(ctx context.Context) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for r.buf.len() == 0 && !r.buf.exhausted {
		if err := r.fill(ctx); err != nil {
			return false, err
		}
	}
	return r.buf.len() > 0, nil
}

// ReadInto decodes the next record into rec. It returns io.EOF when no record remains.
// The reader moves past the record whatever rec reports, so a malformed record is never
// parsed twice; ok is false when rec rejected the record or returned an error.
func (r *Reader) ReadInto(rec Unmarshaler) (ok bool, err error) {
	return r.ReadIntoContext(context.Background(), rec)
}

// ReadIntoContext is ReadInto with cancellation. ctx is only observed while waiting for stream
// input; decoding itself never blocks. A read abandoned in flight leaves the Reader unusable.
func (r *Reader) ReadIntoContext(ctx context.Context, rec Unmarshaler) (ok bool, err error) {
	text, err := r.nextRecord(ctx)
	if err != nil {
		return false, err
	}
	r.line++
	r.fields.reset(text, r.sep, r.line)
	ok, err = rec.UnmarshalCSV(r, &r.fields)
	r.buf.advance(len(text))
	r.fields.release()
	return ok && err == nil, err
}

// nextRecord returns the text of the next record, without its newline, growing or refilling
// the window until a newline is found or the stream ends.
func (r *Reader) nextRecord(ctx context.Context) ([]byte, error) {
	more, err := r.CanReadMoreContext(ctx)
	if err != nil {
		return nil, err
	}
	if !more {
		return nil, io.EOF
	}
	for {
		if text, ok := r.buf.nextRecord(); ok {
			return text, nil
		}
		if r.buf.exhausted {
			// The remainder of the window is the final record.
			return r.buf.window(), nil
		}
		if err := r.fill(ctx); err != nil {
			return nil, err
		}
	}
}

func (r *Reader) fill(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	size := len(r.buf.buf)
	err := r.buf.fill(ctx, r.src)
	if len(r.buf.buf) != size {
		r.logger.Debug("typedcsv: reader buffer grown", "from", size, "to", len(r.buf.buf))
	}
	if err != nil {
		r.err = err
		return err
	}
	if r.buf.exhausted {
		r.logger.Debug("typedcsv: end of stream", "lines", r.line, "remaining", r.buf.len())
	}
	return nil
}

// Reset discards buffered input and any stored error and makes r read from src, keeping the
// format and the grown buffer. After a read abandoned by a context the buffer is replaced, since
// the orphaned read may still write into it.
func (r *Reader) Reset(src io.Reader) {
	if src == nil {
		panic("typedcsv: reader source cannot be nil")
	}
	r.src = src
	r.closer = nil
	r.buf.reset()
	r.line = 0
	r.err = nil
}

// Close closes the files opened by FromFile, or src when it implements io.Closer.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// format resolves an explicit format override, nil meaning the reader's own.
func (r *Reader) format(cfg *FormatConfig) *FormatConfig {
	if cfg == nil {
		return &r.cfg
	}
	return cfg
}
