package typedcsv

import (
	"context"
	"fmt"
	"io"
	"iter"
)

// Unmarshaler is implemented by record types that populate themselves from one record.
//
// UnmarshalCSV reads fields from f in document order with the typed parsers of r. It reports
// false when the record does not fit, typically when a try-family parser failed or f ran out
// of fields. Fields not consumed are ignored.
type Unmarshaler interface {
	UnmarshalCSV(r *Reader, f *Fields) (bool, error)
}

// Marshaler is implemented by record types that emit their fields, separated by
// w.WriteSeparator, in the same order UnmarshalCSV reads them. The record terminator is
// written by the caller.
type Marshaler interface {
	MarshalCSV(w *Writer) error
}

// Codec is a record type that can be both read and written.
type Codec interface {
	Unmarshaler
	Marshaler
}

// ReadRecord decodes the next record into a fresh T. It returns io.EOF when no record remains.
// On ok == false the record may be partially populated.
func ReadRecord[T any, P interface {
	*T
	Unmarshaler
}](r *Reader) (rec T, ok bool, err error) {
	return ReadRecordContext[T, P](context.Background(), r)
}

// ReadRecordContext is ReadRecord with cancellation.
func ReadRecordContext[T any, P interface {
	*T
	Unmarshaler
}](ctx context.Context, r *Reader) (rec T, ok bool, err error) {
	ok, err = r.ReadIntoContext(ctx, P(&rec))
	return rec, ok, err
}

// RecordReader reads records of type T, where *T implements Unmarshaler.
type RecordReader[T any, P interface {
	*T
	Unmarshaler
}] struct {
	r *Reader
}

// NewRecordReader creates a RecordReader over src.
func NewRecordReader[T any, P interface {
	*T
	Unmarshaler
}](src io.Reader, opts ...Option) *RecordReader[T, P] {
	return &RecordReader[T, P]{r: NewReader(src, opts...)}
}

// RecordsFrom wraps an existing Reader.
func RecordsFrom[T any, P interface {
	*T
	Unmarshaler
}](r *Reader) *RecordReader[T, P] {
	return &RecordReader[T, P]{r: r}
}

// Reader returns the underlying Reader.
func (rr *RecordReader[T, P]) Reader() *Reader { return rr.r }

// CanReadMore reports whether another record is available.
func (rr *RecordReader[T, P]) CanReadMore() bool { return rr.r.CanReadMore() }

// Read decodes the next record. See ReadRecord.
func (rr *RecordReader[T, P]) Read() (T, bool, error) {
	return ReadRecordContext[T, P](context.Background(), rr.r)
}

// ReadContext decodes the next record, observing ctx while waiting for input.
func (rr *RecordReader[T, P]) ReadContext(ctx context.Context) (T, bool, error) {
	return ReadRecordContext[T, P](ctx, rr.r)
}

// All iterates over the remaining records. Iteration ends at the end of the stream or after
// yielding the first error; a record that fails to decode is yielded with an error wrapping
// ErrMalformedRecord.
func (rr *RecordReader[T, P]) All() iter.Seq2[T, error] {
	return rr.AllContext(context.Background())
}

// AllContext is All with cancellation. A cancelled ctx is yielded as the final error.
func (rr *RecordReader[T, P]) AllContext(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			rec, ok, err := rr.ReadContext(ctx)
			switch {
			case err == io.EOF:
				return
			case err != nil:
				yield(rec, err)
				return
			case !ok:
				yield(rec, fmt.Errorf("%w: line %d", ErrMalformedRecord, rr.r.Line()))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Close closes the underlying Reader.
func (rr *RecordReader[T, P]) Close() error { return rr.r.Close() }

// RecordWriter writes records of type T, one per line.
type RecordWriter[T Marshaler] struct {
	w *Writer
}

// NewRecordWriter creates a RecordWriter emitting to dst.
func NewRecordWriter[T Marshaler](dst io.Writer, opts ...Option) *RecordWriter[T] {
	return &RecordWriter[T]{w: NewWriter(dst, opts...)}
}

// RecordsTo wraps an existing Writer.
func RecordsTo[T Marshaler](w *Writer) *RecordWriter[T] {
	return &RecordWriter[T]{w: w}
}

// Writer returns the underlying Writer.
func (rw *RecordWriter[T]) Writer() *Writer { return rw.w }

// Write emits rec followed by the record terminator.
func (rw *RecordWriter[T]) Write(rec T) error {
	if err := rec.MarshalCSV(rw.w); err != nil {
		return err
	}
	return rw.w.WriteNewline()
}

// WriteAll writes records, stopping at the first error.
func (rw *RecordWriter[T]) WriteAll(records []T) error {
	for _, rec := range records {
		if err := rw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered records to the destination.
func (rw *RecordWriter[T]) Flush() error { return rw.w.Flush() }

// Close flushes and closes the underlying Writer.
func (rw *RecordWriter[T]) Close() error { return rw.w.Close() }
