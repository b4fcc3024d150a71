package typedcsv

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedField is reported when a field's text does not parse as the requested type.
	ErrMalformedField = errors.New("typedcsv: malformed field")
	// ErrFieldsExhausted is reported when a record has fewer fields than were requested.
	ErrFieldsExhausted = errors.New("typedcsv: not enough fields in record")
	// ErrUnsupportedType is returned when a value outside the supported set is written.
	ErrUnsupportedType = errors.New("typedcsv: unsupported type")
	// ErrMalformedRecord is yielded by record iteration when a record fails to decode.
	ErrMalformedRecord = errors.New("typedcsv: record could not be decoded")
)

// FieldError describes a field that could not be read by a must-family parser.
type FieldError struct {
	// Type is the Go name of the requested type, for example "int32" or "civil.Date".
	Type string
	// Text is a copy of the raw field text.
	Text string
	// Line is the 1-based line of the record; Field the 1-based field position.
	Line  int
	Field int
	Err   error
}

// Error formats the error as the type, raw text and location of the failed field.
func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if errors.Is(e.Err, ErrFieldsExhausted) {
		return fmt.Sprintf("typedcsv: failed to parse %s on line %d: field %d missing", e.Type, e.Line, e.Field)
	}
	return fmt.Sprintf("typedcsv: failed to parse %s on line %d, field %d. Text: %q", e.Type, e.Line, e.Field, e.Text)
}

// Unwrap returns ErrMalformedField or ErrFieldsExhausted.
func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// fieldError builds the must-family error for the field f currently points at.
func fieldError(f *Fields, typ string) error {
	if f.missing {
		return &FieldError{Type: typ, Line: f.line, Field: f.index + 1, Err: ErrFieldsExhausted}
	}
	return &FieldError{Type: typ, Text: string(f.cur), Line: f.line, Field: f.index, Err: ErrMalformedField}
}
