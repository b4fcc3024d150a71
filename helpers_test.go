package typedcsv

import (
	"io"
	"log/slog"
	"testing"

	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(tint.NewHandler(t.Output(), &tint.Options{Level: slog.LevelDebug, TimeFormat: "15:04:05"}))
}

// funcRecord adapts a function to Unmarshaler.
type funcRecord func(r *Reader, f *Fields) (bool, error)

func (fn funcRecord) UnmarshalCSV(r *Reader, f *Fields) (bool, error) { return fn(r, f) }

// intRecord is a single int32 column.
type intRecord struct{ Value int32 }

func (rec *intRecord) UnmarshalCSV(r *Reader, f *Fields) (bool, error) {
	var ok bool
	rec.Value, ok = r.TryReadInt32(f)
	return ok, nil
}

func (rec intRecord) MarshalCSV(w *Writer) error { return Write(w, rec.Value) }

// textRecord keeps every field of a record as text.
type textRecord struct{ Fields []string }

func (rec *textRecord) UnmarshalCSV(r *Reader, f *Fields) (bool, error) {
	for !f.Done() {
		s, _ := r.TryReadString(f)
		rec.Fields = append(rec.Fields, s)
	}
	return true, nil
}

// collect reads one value per record with read until the end of the stream.
func collect[T any](t *testing.T, r *Reader, read func(*Reader, *Fields) (T, bool)) (values []T, oks []bool) {
	t.Helper()
	for {
		var v T
		ok, err := r.ReadInto(funcRecord(func(r *Reader, f *Fields) (bool, error) {
			var ok bool
			v, ok = read(r, f)
			return ok, nil
		}))
		if err == io.EOF {
			return values, oks
		}
		require.NoError(t, err)
		values = append(values, v)
		oks = append(oks, ok)
	}
}

// readTexts returns the fields of every remaining record of r.
func readTexts(r *Reader) ([][]string, error) {
	var out [][]string
	for {
		var rec textRecord
		_, err := r.ReadInto(&rec)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec.Fields)
	}
}

func mustLocale(t *testing.T, id string) FormatConfig {
	t.Helper()
	cfg, err := Locale(id)
	require.NoError(t, err)
	return cfg
}
