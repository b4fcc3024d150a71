package typedcsv

import (
	"errors"
	"io"
	"log/slog"
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/exp/constraints"
)

var (
	errNilWriter      = errors.New("typedcsv: writer is nil")
	errWriterNoTarget = errors.New("typedcsv: writer destination cannot be nil")
)

// maxInlineString is the longest string copied through the buffer. Longer strings are
// written straight to the destination.
const maxInlineString = 32

// Writer formats typed values directly into a growable buffer and flushes it to the
// destination when full or when asked. The first error is sticky: every later call returns it.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	dst    io.Writer
	closer io.Closer

	cfg     FormatConfig
	sep     []byte
	newline []byte
	buf     buffer
	logger  *slog.Logger

	err error
}

// NewWriter creates a Writer emitting to dst, panicking if dst is nil.
// Without WithFormat the ambient locale is used.
func NewWriter(dst io.Writer, opts ...Option) *Writer {
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	return newWriter(dst, nil, buildOptions(opts))
}

func newWriter(dst io.Writer, closer io.Closer, o options) *Writer {
	newline := []byte{'\n'}
	if o.crlf {
		newline = []byte{'\r', '\n'}
	}
	return &Writer{
		dst:     dst,
		closer:  closer,
		cfg:     *o.format,
		sep:     o.format.separatorBytes(),
		newline: newline,
		buf:     newBuffer(o.bufferSize),
		logger:  o.logger,
	}
}

// Reset discards unflushed output and the sticky error and makes w write to dst, keeping the
// format and the grown buffer.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	w.dst = dst
	w.closer = nil
	w.buf.reset()
	w.err = nil
}

// Format returns the writer's format configuration.
func (w *Writer) Format() FormatConfig { return w.cfg }

// WriteInt64 writes v in decimal with the locale's negative sign.
func (w *Writer) WriteInt64(v int64) error {
	return w.appendValue(func(dst []byte) []byte { return AppendInt(dst, v, &w.cfg) })
}

// WriteUint64 writes v in decimal.
func (w *Writer) WriteUint64(v uint64) error {
	return w.appendValue(func(dst []byte) []byte { return AppendUint(dst, v) })
}

// WriteInteger writes an integer of any width.
func WriteInteger[T constraints.Integer](w *Writer, v T) error {
	if v < 0 {
		return w.WriteInt64(int64(v))
	}
	return w.WriteUint64(uint64(v))
}

// WriteFloat64 writes the shortest representation that reads back as v.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteFloatFormat(v, 'g', -1, 64, nil)
}

// WriteFloat32 writes the shortest representation that reads back as v at 32-bit precision.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteFloatFormat(float64(v), 'g', -1, 32, nil)
}

// WriteFloatFormat writes v with an explicit strconv format and precision. A nil cfg means the
// writer's format.
func (w *Writer) WriteFloatFormat(v float64, format byte, prec, bitSize int, cfg *FormatConfig) error {
	cfg = w.format(cfg)
	return w.appendValue(func(dst []byte) []byte { return AppendFloat(dst, v, format, prec, bitSize, cfg) })
}

// WriteDecimal writes d in plain notation. A nil d returns ErrUnsupportedType and writes nothing.
func (w *Writer) WriteDecimal(d *apd.Decimal) error {
	if d == nil {
		return ErrUnsupportedType
	}
	return w.appendValue(func(dst []byte) []byte { return AppendDecimal(dst, d, &w.cfg) })
}

// WriteBigInt writes x in decimal. A nil x returns ErrUnsupportedType and writes nothing.
func (w *Writer) WriteBigInt(x *big.Int) error {
	if x == nil {
		return ErrUnsupportedType
	}
	return w.appendValue(func(dst []byte) []byte { return AppendBigInt(dst, x, &w.cfg) })
}

// WriteDate writes d with the first of the format's DateLayouts.
func (w *Writer) WriteDate(d civil.Date) error {
	layout := layoutOr(w.cfg.DateLayouts, "2006-01-02")
	return w.appendValue(func(dst []byte) []byte { return AppendDate(dst, d, layout) })
}

// WriteTimeOfDay writes t with the first of the format's TimeLayouts.
func (w *Writer) WriteTimeOfDay(t civil.Time) error {
	layout := layoutOr(w.cfg.TimeLayouts, "15:04:05")
	return w.appendValue(func(dst []byte) []byte { return AppendTimeOfDay(dst, t, layout) })
}

// WriteDateTime writes dt with the first of the format's DateTimeLayouts.
func (w *Writer) WriteDateTime(dt civil.DateTime) error {
	layout := layoutOr(w.cfg.DateTimeLayouts, "2006-01-02T15:04:05")
	return w.appendValue(func(dst []byte) []byte { return AppendDateTime(dst, dt, layout) })
}

// WriteTime writes t with its offset using the first of the format's TimestampLayouts.
func (w *Writer) WriteTime(t time.Time) error {
	return w.WriteTimeLayout(t, layoutOr(w.cfg.TimestampLayouts, time.RFC3339Nano))
}

// WriteTimeLayout writes t with an explicit time package layout.
func (w *Writer) WriteTimeLayout(t time.Time, layout string) error {
	return w.appendValue(func(dst []byte) []byte { return AppendTime(dst, t, layout) })
}

// WriteString writes s verbatim. Separators and newlines inside s are not escaped.
func (w *Writer) WriteString(s string) error {
	if len(s) > maxInlineString {
		return w.writeDirect(nil, s)
	}
	return w.appendValue(func(dst []byte) []byte { return append(dst, s...) })
}

// WriteBytes writes b verbatim.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) > maxInlineString {
		return w.writeDirect(b, "")
	}
	return w.appendValue(func(dst []byte) []byte { return append(dst, b...) })
}

// WriteSeparator writes the field separator.
func (w *Writer) WriteSeparator() error {
	if w.err != nil {
		return w.err
	}
	if free := w.buf.free(); len(free) >= len(w.sep) {
		if len(w.sep) == 1 {
			free[0] = w.sep[0]
			w.buf.commit(1)
			return nil
		}
		w.buf.commit(copy(free, w.sep))
		return nil
	}
	return w.appendValue(func(dst []byte) []byte { return append(dst, w.sep...) })
}

// WriteNewline terminates the current record with "\n", or "\r\n" under WithCRLF.
func (w *Writer) WriteNewline() error {
	return w.appendValue(func(dst []byte) []byte { return append(dst, w.newline...) })
}

// WriteAny writes a supported value, or a Marshaler's fields. Anything else returns
// ErrUnsupportedType without touching the output or the sticky error.
func (w *Writer) WriteAny(v any) error {
	switch v := v.(type) {
	case int8:
		return Write(w, v)
	case int16:
		return Write(w, v)
	case int32:
		return Write(w, v)
	case int64:
		return Write(w, v)
	case int:
		return Write(w, v)
	case uint8:
		return Write(w, v)
	case uint16:
		return Write(w, v)
	case uint32:
		return Write(w, v)
	case uint64:
		return Write(w, v)
	case uint:
		return Write(w, v)
	case float32:
		return Write(w, v)
	case float64:
		return Write(w, v)
	case *apd.Decimal:
		return Write(w, v)
	case *big.Int:
		return Write(w, v)
	case civil.Date:
		return Write(w, v)
	case civil.Time:
		return Write(w, v)
	case civil.DateTime:
		return Write(w, v)
	case time.Time:
		return Write(w, v)
	case string:
		return Write(w, v)
	case []byte:
		return Write(w, v)
	case Marshaler:
		return v.MarshalCSV(w)
	}
	return ErrUnsupportedType
}

// Flush writes buffered bytes to the destination.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	return w.flush()
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

// Close flushes, then closes the files opened by ToFile, or dst when it implements io.Closer.
// The destination is closed even when the flush fails.
func (w *Writer) Close() error {
	if w == nil {
		return errNilWriter
	}
	err := w.Flush()
	var cerr error
	if w.closer != nil {
		cerr = w.closer.Close()
	} else if c, ok := w.dst.(io.Closer); ok {
		cerr = c.Close()
	}
	return errors.Join(err, cerr)
}

// appendValue formats into the free region. A value that did not fit is placed after flushing
// pending bytes, growing the buffer when even an empty buffer is too small.
func (w *Writer) appendValue(format func([]byte) []byte) error {
	if w.err != nil {
		return w.err
	}
	free := w.buf.free()
	out := format(free[:0])
	if len(out) <= len(free) {
		w.buf.commit(len(out))
		return nil
	}
	if len(w.buf.pending()) > 0 {
		if err := w.flush(); err != nil {
			return err
		}
	}
	for len(w.buf.free()) < len(out) {
		size := len(w.buf.buf)
		w.buf.grow()
		if w.logger == nil {
			continue
		}
		w.logger.Debug("typedcsv: writer buffer grown", "from", size, "to", len(w.buf.buf))
	}
	w.buf.commit(copy(w.buf.free(), out))
	return nil
}

// writeDirect bypasses the buffer for long text, flushing pending bytes first to keep order.
// Exactly one of b and s is used.
func (w *Writer) writeDirect(b []byte, s string) error {
	if w.err != nil {
		return w.err
	}
	if err := w.flush(); err != nil {
		return err
	}
	var err error
	if b != nil {
		_, err = w.dst.Write(b)
	} else {
		_, err = io.WriteString(w.dst, s)
	}
	if err != nil {
		w.err = err
	}
	return err
}

func (w *Writer) flush() error {
	if w.buf.end == 0 {
		return nil
	}
	if _, err := w.dst.Write(w.buf.pending()); err != nil {
		w.err = err
		return err
	}
	w.buf.reset()
	return nil
}

func (w *Writer) format(cfg *FormatConfig) *FormatConfig {
	if cfg == nil {
		return &w.cfg
	}
	return cfg
}
