package typedcsv

import "bytes"

// Fields splits one record on the separator and hands out its fields left to right.
// It is consumed once; a field is considered consumed as soon as Next moves onto it.
//
// The bytes of a field alias the reader's buffer and stay valid only until the reader advances.
type Fields struct {
	rec   []byte
	sep   []byte
	pos   int // start of the next field; -1 once the last field was handed out
	cur   []byte
	index int
	line  int

	// missing is set when Next ran past the last field.
	missing bool
}

// NewFields tokenizes record on sep. It is mostly useful to drive an Unmarshaler in tests.
func NewFields(record []byte, sep rune) *Fields {
	f := &Fields{}
	f.reset(record, []byte(string(sep)), 0)
	return f
}

func (f *Fields) reset(record, sep []byte, line int) {
	f.rec = record
	f.sep = sep
	f.pos = 0
	f.cur = nil
	f.index = 0
	f.line = line
	f.missing = false
}

// release detaches f from its record once the reader moves on. A Fields kept past its record
// reports every later field as missing.
func (f *Fields) release() {
	f.rec = nil
	f.cur = nil
	f.pos = -1
}

// Next advances to the next field and reports whether one was available.
// An empty record has exactly one, empty, field.
func (f *Fields) Next() bool {
	if f.pos < 0 {
		f.cur = nil
		f.missing = true
		return false
	}
	rest := f.rec[f.pos:]
	var i int
	if len(f.sep) == 1 {
		i = bytes.IndexByte(rest, f.sep[0])
	} else {
		i = bytes.Index(rest, f.sep)
	}
	f.index++
	if i < 0 {
		f.cur = rest
		f.pos = -1
		return true
	}
	f.cur = rest[:i]
	f.pos += i + len(f.sep)
	return true
}

// Bytes returns the current field. The slice is borrowed from the reader's buffer.
func (f *Fields) Bytes() []byte { return f.cur }

// Text returns a copy of the current field.
func (f *Fields) Text() string { return string(f.cur) }

// Index returns the 1-based position of the current field in its record.
func (f *Fields) Index() int { return f.index }

// Line returns the 1-based line of the record being tokenized.
func (f *Fields) Line() int { return f.line }

// Done reports whether every field of the record has been handed out.
func (f *Fields) Done() bool { return f.pos < 0 }
