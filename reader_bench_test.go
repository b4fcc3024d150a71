package typedcsv

import (
	"bytes"
	stdcsv "encoding/csv"
	"io"
	"strconv"
	"strings"
	"testing"
)

func benchmarkData() []byte {
	buf := []byte(strings.Repeat(`xxxxxxxxxxxxxxxx,yyyyyyyyyyyyyyyy,zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz,wwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwww,vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv
xxxxxxxxxxxxxxxxxxxxxxxx,yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy,zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz,wwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwww,vvvv
,,zzzz,wwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwww,vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv
xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx,yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy,zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz,wwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwww,vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv
`, 3))
	return buf
}

// numericData is rows of an integer, a float and a date.
func numericData() []byte {
	var sb strings.Builder
	for i := range 1000 {
		sb.WriteString(strconv.Itoa(i - 500))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(float64(i)/7, 'g', -1, 64))
		sb.WriteString(",2024-02-03\n")
	}
	return []byte(sb.String())
}

// skipRecord visits every field without converting it.
type skipRecord struct{}

func (skipRecord) UnmarshalCSV(r *Reader, f *Fields) (bool, error) {
	for r.SkipField(f) {
	}
	return true, nil
}

func BenchmarkReader(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var rec skipRecord
	cr := NewReader(bytes.NewReader(data), WithFormat(Invariant))
	for b.Loop() {
		cr.Reset(bytes.NewReader(data))
		for {
			if _, err := cr.ReadInto(rec); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkEncodingCSV(b *testing.B) {
	data := benchmarkData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for b.Loop() {
		cr := stdcsv.NewReader(bytes.NewReader(data))
		cr.ReuseRecord = true

		for {
			if _, err := cr.Read(); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkReaderTyped(b *testing.B) {
	data := numericData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	cr := NewReader(bytes.NewReader(data), WithFormat(Invariant))
	rec := funcRecord(func(r *Reader, f *Fields) (bool, error) {
		_, ok1 := r.TryReadInt64(f)
		_, ok2 := r.TryReadFloat64(f)
		_, ok3 := r.TryReadDate(f)
		return ok1 && ok2 && ok3, nil
	})
	for b.Loop() {
		cr.Reset(bytes.NewReader(data))
		for {
			ok, err := cr.ReadInto(rec)
			if err == io.EOF {
				break
			}
			if err != nil || !ok {
				b.Fatal(ok, err)
			}
		}
	}
}

func BenchmarkEncodingCSVTyped(b *testing.B) {
	data := numericData()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for b.Loop() {
		cr := stdcsv.NewReader(bytes.NewReader(data))
		cr.ReuseRecord = true
		for {
			rec, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatal(err)
			}
			if _, err := strconv.ParseInt(rec[0], 10, 64); err != nil {
				b.Fatal(err)
			}
			if _, err := strconv.ParseFloat(rec[1], 64); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkWriter(b *testing.B) {
	b.ReportAllocs()

	w := NewWriter(io.Discard, WithFormat(Invariant))
	for b.Loop() {
		for i := range 1000 {
			_ = w.WriteInt64(int64(i - 500))
			_ = w.WriteSeparator()
			_ = w.WriteFloat64(float64(i) / 7)
			_ = w.WriteSeparator()
			_ = w.WriteString("constant")
			_ = w.WriteNewline()
		}
		if err := w.Flush(); err != nil {
			b.Fatal(err)
		}
	}
}
