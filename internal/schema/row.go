package schema

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/oleg578/typedcsv"
)

type readFunc func(r *typedcsv.Reader, f *typedcsv.Fields, col *Column) (any, error)

var readers = map[string]readFunc{
	"int8":      value[int8],
	"int16":     value[int16],
	"int32":     value[int32],
	"int64":     value[int64],
	"int":       value[int],
	"uint8":     value[uint8],
	"uint16":    value[uint16],
	"uint32":    value[uint32],
	"uint64":    value[uint64],
	"uint":      value[uint],
	"float32":   value[float32],
	"float64":   value[float64],
	"decimal":   value[*apd.Decimal],
	"bigint":    value[*big.Int],
	"date":      date,
	"time":      timeOfDay,
	"datetime":  dateTime,
	"timestamp": timestamp,
	"string":    value[string],
	"bytes":     rawBytes,
	"skip":      skip,
}

func value[T typedcsv.Value](r *typedcsv.Reader, f *typedcsv.Fields, _ *Column) (any, error) {
	return typedcsv.Read[T](r, f)
}

func date(r *typedcsv.Reader, f *typedcsv.Fields, col *Column) (any, error) {
	if col.Layout == "" {
		return r.ReadDate(f)
	}
	v, ok := r.TryReadDateLayout(f, col.Layout)
	return layoutResult(v, ok, f, "civil.Date")
}

func timeOfDay(r *typedcsv.Reader, f *typedcsv.Fields, col *Column) (any, error) {
	if col.Layout == "" {
		return r.ReadTimeOfDay(f)
	}
	v, ok := r.TryReadTimeOfDayLayout(f, col.Layout)
	return layoutResult(v, ok, f, "civil.Time")
}

func dateTime(r *typedcsv.Reader, f *typedcsv.Fields, col *Column) (any, error) {
	if col.Layout == "" {
		return r.ReadDateTime(f)
	}
	v, ok := r.TryReadDateTimeLayout(f, col.Layout)
	return layoutResult(v, ok, f, "civil.DateTime")
}

func timestamp(r *typedcsv.Reader, f *typedcsv.Fields, col *Column) (any, error) {
	if col.Layout == "" {
		return r.ReadTime(f)
	}
	v, ok := r.TryReadTimeLayout(f, col.Layout)
	return layoutResult(v, ok, f, "time.Time")
}

func layoutResult(v any, ok bool, f *typedcsv.Fields, typ string) (any, error) {
	if !ok {
		return nil, &typedcsv.FieldError{Type: typ, Text: f.Text(), Line: f.Line(), Field: f.Index(), Err: typedcsv.ErrMalformedField}
	}
	return v, nil
}

// rawBytes copies the field, since a Row outlives the reader's buffer.
func rawBytes(r *typedcsv.Reader, f *typedcsv.Fields, _ *Column) (any, error) {
	b, err := r.ReadBytes(f)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

func skip(r *typedcsv.Reader, f *typedcsv.Fields, _ *Column) (any, error) {
	if !r.SkipField(f) {
		return nil, &typedcsv.FieldError{Type: "skip", Line: f.Line(), Field: f.Index() + 1, Err: typedcsv.ErrFieldsExhausted}
	}
	return nil, nil
}

// Row is one record decoded under a Schema. Values holds one entry per kept column, in
// column order, with the Go type the column's type name maps to.
type Row struct {
	schema *Schema
	Values []any
}

// NewRow returns an empty row bound to s.
func (s *Schema) NewRow() *Row {
	return &Row{schema: s, Values: make([]any, 0, len(s.Columns))}
}

// UnmarshalCSV decodes the record column by column. The first field that does not parse is
// reported as an error naming its column.
func (row *Row) UnmarshalCSV(r *typedcsv.Reader, f *typedcsv.Fields) (bool, error) {
	row.Values = row.Values[:0]
	for i := range row.schema.Columns {
		col := &row.schema.Columns[i]
		v, err := col.read(r, f, col)
		if err != nil {
			return false, fmt.Errorf("column %q: %w", col.Name, err)
		}
		if col.Type != "skip" {
			row.Values = append(row.Values, v)
		}
	}
	return true, nil
}

// MarshalCSV writes the values with the writer's format.
func (row *Row) MarshalCSV(w *typedcsv.Writer) error {
	for i, v := range row.Values {
		if i > 0 {
			if err := w.WriteSeparator(); err != nil {
				return err
			}
		}
		if err := w.WriteAny(v); err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}
	}
	return nil
}

// Header is a record of plain text fields, used for header lines.
type Header []string

// UnmarshalCSV reads every field of the record.
func (h *Header) UnmarshalCSV(r *typedcsv.Reader, f *typedcsv.Fields) (bool, error) {
	*h = (*h)[:0]
	for !f.Done() {
		s, _ := r.TryReadString(f)
		*h = append(*h, s)
	}
	return true, nil
}

// MarshalCSV writes the fields separated by the writer's separator.
func (h Header) MarshalCSV(w *typedcsv.Writer) error {
	for i, s := range h {
		if i > 0 {
			if err := w.WriteSeparator(); err != nil {
				return err
			}
		}
		if err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}
