package typedcsv

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestReaderRecordCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []int32
	}{
		{name: "noTrailingNewline", input: "0\n1\n2\n3\n4", want: []int32{0, 1, 2, 3, 4}},
		{name: "trailingNewline", input: "0\n1\n2\n3\n4\n", want: []int32{0, 1, 2, 3, 4}},
		{name: "singleRecord", input: "7", want: []int32{7}},
		{name: "empty", input: "", want: nil},
		{name: "negative", input: "-12\n-2147483648\n", want: []int32{-12, -2147483648}},
	}

	sources := []struct {
		name string
		wrap func(io.Reader) io.Reader
		size int
	}{
		{name: "default", wrap: func(r io.Reader) io.Reader { return r }, size: defaultBufferSize},
		{name: "tinyBuffer", wrap: func(r io.Reader) io.Reader { return r }, size: minBufferSize},
		{name: "oneByte", wrap: iotest.OneByteReader, size: minBufferSize},
		{name: "dataErr", wrap: iotest.DataErrReader, size: minBufferSize},
		{name: "half", wrap: iotest.HalfReader, size: 32},
	}

	for _, tc := range tests {
		for _, src := range sources {
			t.Run(tc.name+"/"+src.name, func(t *testing.T) {
				t.Parallel()

				r := NewReader(src.wrap(strings.NewReader(tc.input)), WithFormat(Invariant), WithBufferSize(src.size))
				var got []int32
				for rec, err := range RecordsFrom[intRecord](r).All() {
					require.NoError(t, err)
					got = append(got, rec.Value)
				}
				if diff := cmp.Diff(tc.want, got); diff != "" {
					t.Fatalf("records mismatch (-want +got):\n%s", diff)
				}
				require.False(t, r.CanReadMore())
			})
		}
	}
}

func TestReaderEmptyLine(t *testing.T) {
	t.Parallel()

	t.Run("integer", func(t *testing.T) {
		t.Parallel()

		r := FromString("\n", WithFormat(Invariant))
		require.True(t, r.CanReadMore())

		var rec intRecord
		ok, err := r.ReadInto(&rec)
		require.NoError(t, err)
		require.False(t, ok)

		_, err = r.ReadInto(&rec)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		got, err := readTexts(FromString("\n", WithFormat(Invariant)))
		require.NoError(t, err)
		require.Equal(t, [][]string{{""}}, got)
	})
}

func TestReaderFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		sep   rune
		want  [][]string
	}{
		{
			name:  "basicRecords",
			input: "one,two\nthree,four\n",
			sep:   ',',
			want:  [][]string{{"one", "two"}, {"three", "four"}},
		},
		{
			name:  "finalRecordWithoutTerminator",
			input: "alpha,beta,gamma",
			sep:   ',',
			want:  [][]string{{"alpha", "beta", "gamma"}},
		},
		{
			name:  "emptyFields",
			input: ",,\n",
			sep:   ',',
			want:  [][]string{{"", "", ""}},
		},
		{
			name:  "blankLines",
			input: "a\n\n\nb\n",
			sep:   ',',
			want:  [][]string{{"a"}, {""}, {""}, {"b"}},
		},
		{
			name:  "carriageReturnStaysInField",
			input: "a,b\r\nc,d\r\n",
			sep:   ',',
			want:  [][]string{{"a", "b\r"}, {"c", "d\r"}},
		},
		{
			name:  "quotesAreNotInterpreted",
			input: "a,\"b,c\"\n",
			sep:   ',',
			want:  [][]string{{"a", "\"b", "c\""}},
		},
		{
			name:  "semicolon",
			input: "left;right\nup;down\n",
			sep:   ';',
			want:  [][]string{{"left", "right"}, {"up", "down"}},
		},
		{
			name:  "multiByteSeparator",
			input: "x‖y‖z\n",
			sep:   '‖',
			want:  [][]string{{"x", "y", "z"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Invariant
			cfg.Separator = tc.sep
			got, err := readTexts(FromString(tc.input, WithFormat(cfg), WithBufferSize(minBufferSize)))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReaderCarriageReturn(t *testing.T) {
	t.Parallel()

	const input = "1\r\n2\r\n"

	t.Run("strictSigned", func(t *testing.T) {
		t.Parallel()

		_, oks := collect(t, FromString(input, WithFormat(Invariant)), (*Reader).TryReadInt32)
		require.Equal(t, []bool{false, false}, oks)
	})

	t.Run("signedWithWhitespace", func(t *testing.T) {
		t.Parallel()

		got, oks := collect(t, FromString(input, WithFormat(Invariant)), func(r *Reader, f *Fields) (int32, bool) {
			return r.TryReadInt32Style(f, StyleSigned|StyleWhitespace)
		})
		require.Equal(t, []bool{true, true}, oks)
		require.Equal(t, []int32{1, 2}, got)
	})

	t.Run("unsignedDefault", func(t *testing.T) {
		t.Parallel()

		got, oks := collect(t, FromString(input, WithFormat(Invariant)), (*Reader).TryReadUint16)
		require.Equal(t, []bool{true, true}, oks)
		require.Equal(t, []uint16{1, 2}, got)
	})
}

func TestReaderGrowth(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 5000)
	padded := strings.Repeat("0", 3000) + "42"
	input := long + "," + padded + "\nshort,7\n"

	read := func(t *testing.T, size int) ([]string, []int64) {
		r := FromString(input, WithFormat(Invariant), WithBufferSize(size), WithLogger(testLogger(t)))
		var texts []string
		var nums []int64
		for {
			ok, err := r.ReadInto(funcRecord(func(r *Reader, f *Fields) (bool, error) {
				s, err := r.ReadString(f)
				if err != nil {
					return false, err
				}
				n, err := r.ReadInt64(f)
				if err != nil {
					return false, err
				}
				texts, nums = append(texts, s), append(nums, n)
				return true, nil
			}))
			if err == io.EOF {
				return texts, nums
			}
			require.NoError(t, err)
			require.True(t, ok)
		}
	}

	wantTexts, wantNums := read(t, 1<<16)
	gotTexts, gotNums := read(t, minBufferSize)
	require.Equal(t, []string{long, "short"}, wantTexts)
	require.Equal(t, []int64{42, 7}, wantNums)
	require.Equal(t, wantTexts, gotTexts)
	require.Equal(t, wantNums, gotNums)
}

func TestReaderMalformedField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		try      func(r *Reader, f *Fields) bool
		must     func(r *Reader, f *Fields) error
		wantType string
	}{
		{
			name:     "leadingSpaceUnsignedStrict",
			input:    " 1",
			try:      func(r *Reader, f *Fields) bool { _, ok := r.TryReadUint32Style(f, StyleNone); return ok },
			must:     func(r *Reader, f *Fields) error { _, err := r.ReadInt32(f); return err },
			wantType: "int32",
		},
		{
			name:     "negativeUnsigned",
			input:    "-1",
			try:      func(r *Reader, f *Fields) bool { _, ok := r.TryReadUint64Style(f, StyleNone); return ok },
			must:     func(r *Reader, f *Fields) error { _, err := r.ReadUint64(f); return err },
			wantType: "uint64",
		},
		{
			name:     "decimalAsInteger",
			input:    "10.000",
			try:      func(r *Reader, f *Fields) bool { _, ok := r.TryReadInt64Style(f, StyleNone); return ok },
			must:     func(r *Reader, f *Fields) error { _, err := r.ReadInt64(f); return err },
			wantType: "int64",
		},
		{
			name:     "overflow",
			input:    "300",
			try:      func(r *Reader, f *Fields) bool { _, ok := r.TryReadUint8(f); return ok },
			must:     func(r *Reader, f *Fields) error { _, err := r.ReadUint8(f); return err },
			wantType: "uint8",
		},
		{
			name:     "date",
			input:    "2024-13-45",
			try:      func(r *Reader, f *Fields) bool { _, ok := r.TryReadDate(f); return ok },
			must:     func(r *Reader, f *Fields) error { _, err := r.ReadDate(f); return err },
			wantType: "civil.Date",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := NewFields([]byte(tc.input), ',')
			require.False(t, tc.try(FromString("", WithFormat(Invariant)), f))

			r := FromString(tc.input+"\n", WithFormat(Invariant))
			ok, err := r.ReadInto(funcRecord(func(r *Reader, f *Fields) (bool, error) {
				return false, tc.must(r, f)
			}))
			require.False(t, ok)
			require.ErrorIs(t, err, ErrMalformedField)

			var ferr *FieldError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tc.wantType, ferr.Type)
			require.Equal(t, tc.input, ferr.Text)
			require.Equal(t, 1, ferr.Line)
			require.Equal(t, 1, ferr.Field)
			require.Contains(t, ferr.Error(), tc.wantType)
		})
	}
}

func TestReaderFieldsExhausted(t *testing.T) {
	t.Parallel()

	r := FromString("1\n2,3\n", WithFormat(Invariant))
	pair := funcRecord(func(r *Reader, f *Fields) (bool, error) {
		if _, err := r.ReadInt32(f); err != nil {
			return false, err
		}
		if _, err := r.ReadInt32(f); err != nil {
			return false, err
		}
		return true, nil
	})

	ok, err := r.ReadInto(pair)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrFieldsExhausted)
	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, 2, ferr.Field)
	require.Equal(t, 1, ferr.Line)

	ok, err = r.ReadInto(pair)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, r.Line())

	f := NewFields([]byte("9"), ',')
	_, ok = r.TryReadInt32(f)
	require.True(t, ok)
	_, ok = r.TryReadInt32(f)
	require.False(t, ok)
	require.False(t, r.SkipField(f))
}

func TestFieldErrorMethods(t *testing.T) {
	t.Parallel()

	err := &FieldError{Type: "int16", Text: "x", Line: 3, Field: 2, Err: ErrMalformedField}
	got := err.Error()
	require.Contains(t, got, "int16")
	require.Contains(t, got, "line 3")
	require.Contains(t, got, `"x"`)
	require.ErrorIs(t, err, ErrMalformedField)

	var nilErr *FieldError
	require.Empty(t, nilErr.Error())
	require.NoError(t, nilErr.Unwrap())
}

func TestReaderThousands(t *testing.T) {
	t.Parallel()

	t.Run("english", func(t *testing.T) {
		t.Parallel()

		en := mustLocale(t, "en-US")
		v, ok := ParseInt[int32]([]byte("1,000"), StyleSigned|AllowThousands, &en)
		require.True(t, ok)
		require.Equal(t, int32(1000), v)

		// The list separator is also ',', so the field has to come from a ';' separated file.
		en.Separator = ';'
		got, oks := collect(t, FromString("1,000\n12,345,678\n", WithFormat(en)), (*Reader).TryReadUint32)
		require.Equal(t, []bool{true, true}, oks)
		require.Equal(t, []uint32{1000, 12345678}, got)
	})

	t.Run("french", func(t *testing.T) {
		t.Parallel()

		fr := mustLocale(t, "fr-FR")
		got, oks := collect(t, FromString("1 000\n2\u00a0500\n3\u202f000\n", WithFormat(fr)), func(r *Reader, f *Fields) (int64, bool) {
			return r.TryReadInt64Style(f, StyleSigned|AllowThousands)
		})
		require.Equal(t, []bool{true, true, true}, oks)
		require.Equal(t, []int64{1000, 2500, 3000}, got)
	})
}

func TestReaderContext(t *testing.T) {
	t.Parallel()

	t.Run("cancelledBeforeRead", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		r := FromString("5\n", WithFormat(Invariant))
		var rec intRecord
		_, err := r.ReadIntoContext(ctx, &rec)
		require.ErrorIs(t, err, context.Canceled)

		// Nothing was read, so the reader is still usable.
		ok, err := r.ReadInto(&rec)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, int32(5), rec.Value)
	})

	t.Run("abandonedRead", func(t *testing.T) {
		t.Parallel()

		pr, pw := io.Pipe()
		t.Cleanup(func() {
			pr.Close()
			pw.Close()
		})

		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		r := NewReader(pr, WithFormat(Invariant))
		more, err := r.CanReadMoreContext(ctx)
		require.False(t, more)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		_, err = r.ReadInto(&intRecord{})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("contextReader", func(t *testing.T) {
		t.Parallel()

		src := &ctxReader{Reader: strings.NewReader("1\n2\n")}
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		rr := NewRecordReader[intRecord](src, WithFormat(Invariant))
		var got []int32
		for rec, err := range rr.AllContext(ctx) {
			require.NoError(t, err)
			got = append(got, rec.Value)
		}
		require.Equal(t, []int32{1, 2}, got)
		require.Positive(t, src.calls)
	})
}

type ctxReader struct {
	*strings.Reader
	calls int
}

func (c *ctxReader) ReadContext(ctx context.Context, p []byte) (int, error) {
	c.calls++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.Read(p)
}

type stalledReader struct{}

func (stalledReader) Read([]byte) (int, error) { return 0, nil }

func TestReaderStreamErrors(t *testing.T) {
	t.Parallel()

	t.Run("noProgress", func(t *testing.T) {
		t.Parallel()

		r := NewReader(stalledReader{}, WithFormat(Invariant))
		require.True(t, r.CanReadMore())
		_, err := r.ReadInto(&intRecord{})
		require.ErrorIs(t, err, io.ErrNoProgress)
	})

	t.Run("sticky", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk on fire")
		r := NewReader(io.MultiReader(strings.NewReader("1\n2"), iotest.ErrReader(boom)), WithFormat(Invariant))

		var rec intRecord
		ok, err := r.ReadInto(&rec)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = r.ReadInto(&rec)
		require.ErrorIs(t, err, boom)
		_, err = r.ReadInto(&rec)
		require.ErrorIs(t, err, boom)
	})
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestReaderResetAndClose(t *testing.T) {
	t.Parallel()

	src := &closeTracker{Reader: strings.NewReader("1\n2\n")}
	r := NewReader(src, WithFormat(Invariant))

	got, _ := collect(t, r, (*Reader).TryReadInt8)
	require.Equal(t, []int8{1, 2}, got)
	require.Equal(t, 2, r.Line())

	r.Reset(strings.NewReader("3"))
	require.Zero(t, r.Line())
	got, _ = collect(t, r, (*Reader).TryReadInt8)
	require.Equal(t, []int8{3}, got)

	require.NoError(t, r.Close())
	require.False(t, src.closed, "Reset detaches the previous source")

	r = NewReader(src, WithFormat(Invariant))
	require.NoError(t, r.Close())
	require.True(t, src.closed)
}

// gateReader blocks its first Read until release is closed, then fills p with 'Z'.
type gateReader struct {
	release chan struct{}
	done    chan struct{}
}

func (g *gateReader) Read(p []byte) (int, error) {
	<-g.release
	defer close(g.done)
	for i := range p {
		p[i] = 'Z'
	}
	return len(p), nil
}

func TestReaderResetAfterAbandonedRead(t *testing.T) {
	t.Parallel()

	gate := &gateReader{release: make(chan struct{}), done: make(chan struct{})}
	r := NewReader(gate, WithFormat(Invariant), WithBufferSize(minBufferSize))

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Millisecond)
	defer cancel()
	_, err := r.ReadIntoContext(ctx, &textRecord{})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	r.Reset(strings.NewReader("hello\nworld\n"))
	close(gate.release)
	<-gate.done

	got, err := readTexts(r)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"hello"}, {"world"}}, got)
}

func TestFieldsAfterRecord(t *testing.T) {
	t.Parallel()

	r := FromString("a,b\n", WithFormat(Invariant))
	var kept *Fields
	ok, err := r.ReadInto(funcRecord(func(r *Reader, f *Fields) (bool, error) {
		kept = f
		_, ok := r.TryReadString(f)
		return ok, nil
	}))
	require.NoError(t, err)
	require.True(t, ok)

	_, ok = r.TryReadString(kept)
	require.False(t, ok, "fields are released once the reader moves on")
	require.True(t, kept.Done())
	_, err = r.ReadString(kept)
	require.ErrorIs(t, err, ErrFieldsExhausted)
}

func TestFieldsTokenizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record string
		sep    rune
		want   []string
	}{
		{name: "empty", record: "", sep: ',', want: []string{""}},
		{name: "single", record: "abc", sep: ',', want: []string{"abc"}},
		{name: "trailingSeparator", record: "a,", sep: ',', want: []string{"a", ""}},
		{name: "onlySeparators", record: ",,", sep: ',', want: []string{"", "", ""}},
		{name: "multiByte", record: "1¦2¦", sep: '¦', want: []string{"1", "2", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := NewFields([]byte(tc.record), tc.sep)
			var got []string
			for f.Next() {
				require.Equal(t, len(got)+1, f.Index())
				got = append(got, f.Text())
			}
			require.True(t, f.Done())
			require.Equal(t, tc.want, got)
			require.False(t, f.Next())
		})
	}
}

func TestNewReaderNilPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewReader(nil) })
}
