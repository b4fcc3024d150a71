package typedcsv

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
)

// Field parsers. Every parser moves f onto the next field exactly once, whether or not the
// text converts, and fails without inspecting any text when the record has no field left.
//
// Numeric types come in four shapes that all end in the With form:
//
//	TryReadInt32(f)                   default style, reader format
//	TryReadInt32Style(f, style)       explicit style, reader format
//	TryReadInt32Format(f, cfg)        default style, explicit format
//	TryReadInt32With(f, style, cfg)   both explicit; a nil cfg means the reader format
//
// Signed integers default to StyleSigned, unsigned integers to StyleUnsigned, floats and
// decimals to StyleFloat. The Read forms return a *FieldError instead of false.

// TryReadInt8 reads the next field as int8.
func (r *Reader) TryReadInt8(f *Fields) (int8, bool) {
	return r.TryReadInt8With(f, StyleSigned, nil)
}

// TryReadInt8Style is TryReadInt8 with an explicit number style.
func (r *Reader) TryReadInt8Style(f *Fields, style NumberStyle) (int8, bool) {
	return r.TryReadInt8With(f, style, nil)
}

// TryReadInt8Format is TryReadInt8 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadInt8Format(f *Fields, cfg *FormatConfig) (int8, bool) {
	return r.TryReadInt8With(f, StyleSigned, cfg)
}

// TryReadInt8With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadInt8With(f *Fields, style NumberStyle, cfg *FormatConfig) (int8, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseInt[int8](f.cur, style, r.format(cfg))
}

// ReadInt8 is TryReadInt8 reporting failure as a *FieldError.
func (r *Reader) ReadInt8(f *Fields) (int8, error) {
	v, ok := r.TryReadInt8(f)
	if !ok {
		return v, fieldError(f, "int8")
	}
	return v, nil
}

// TryReadInt16 reads the next field as int16.
func (r *Reader) TryReadInt16(f *Fields) (int16, bool) {
	return r.TryReadInt16With(f, StyleSigned, nil)
}

// TryReadInt16Style is TryReadInt16 with an explicit number style.
func (r *Reader) TryReadInt16Style(f *Fields, style NumberStyle) (int16, bool) {
	return r.TryReadInt16With(f, style, nil)
}

// TryReadInt16Format is TryReadInt16 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadInt16Format(f *Fields, cfg *FormatConfig) (int16, bool) {
	return r.TryReadInt16With(f, StyleSigned, cfg)
}

// TryReadInt16With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadInt16With(f *Fields, style NumberStyle, cfg *FormatConfig) (int16, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseInt[int16](f.cur, style, r.format(cfg))
}

// ReadInt16 is TryReadInt16 reporting failure as a *FieldError.
func (r *Reader) ReadInt16(f *Fields) (int16, error) {
	v, ok := r.TryReadInt16(f)
	if !ok {
		return v, fieldError(f, "int16")
	}
	return v, nil
}

// TryReadInt32 reads the next field as int32.
func (r *Reader) TryReadInt32(f *Fields) (int32, bool) {
	return r.TryReadInt32With(f, StyleSigned, nil)
}

// TryReadInt32Style is TryReadInt32 with an explicit number style.
func (r *Reader) TryReadInt32Style(f *Fields, style NumberStyle) (int32, bool) {
	return r.TryReadInt32With(f, style, nil)
}

// TryReadInt32Format is TryReadInt32 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadInt32Format(f *Fields, cfg *FormatConfig) (int32, bool) {
	return r.TryReadInt32With(f, StyleSigned, cfg)
}

// TryReadInt32With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadInt32With(f *Fields, style NumberStyle, cfg *FormatConfig) (int32, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseInt[int32](f.cur, style, r.format(cfg))
}

// ReadInt32 is TryReadInt32 reporting failure as a *FieldError.
func (r *Reader) ReadInt32(f *Fields) (int32, error) {
	v, ok := r.TryReadInt32(f)
	if !ok {
		return v, fieldError(f, "int32")
	}
	return v, nil
}

// TryReadInt64 reads the next field as int64.
func (r *Reader) TryReadInt64(f *Fields) (int64, bool) {
	return r.TryReadInt64With(f, StyleSigned, nil)
}

// TryReadInt64Style is TryReadInt64 with an explicit number style.
func (r *Reader) TryReadInt64Style(f *Fields, style NumberStyle) (int64, bool) {
	return r.TryReadInt64With(f, style, nil)
}

// TryReadInt64Format is TryReadInt64 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadInt64Format(f *Fields, cfg *FormatConfig) (int64, bool) {
	return r.TryReadInt64With(f, StyleSigned, cfg)
}

// TryReadInt64With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadInt64With(f *Fields, style NumberStyle, cfg *FormatConfig) (int64, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseInt[int64](f.cur, style, r.format(cfg))
}

// ReadInt64 is TryReadInt64 reporting failure as a *FieldError.
func (r *Reader) ReadInt64(f *Fields) (int64, error) {
	v, ok := r.TryReadInt64(f)
	if !ok {
		return v, fieldError(f, "int64")
	}
	return v, nil
}

// TryReadInt reads the next field as int.
func (r *Reader) TryReadInt(f *Fields) (int, bool) {
	return r.TryReadIntWith(f, StyleSigned, nil)
}

// TryReadIntStyle is TryReadInt with an explicit number style.
func (r *Reader) TryReadIntStyle(f *Fields, style NumberStyle) (int, bool) {
	return r.TryReadIntWith(f, style, nil)
}

// TryReadIntFormat is TryReadInt with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadIntFormat(f *Fields, cfg *FormatConfig) (int, bool) {
	return r.TryReadIntWith(f, StyleSigned, cfg)
}

// TryReadIntWith reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadIntWith(f *Fields, style NumberStyle, cfg *FormatConfig) (int, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseInt[int](f.cur, style, r.format(cfg))
}

// ReadInt is TryReadInt reporting failure as a *FieldError.
func (r *Reader) ReadInt(f *Fields) (int, error) {
	v, ok := r.TryReadInt(f)
	if !ok {
		return v, fieldError(f, "int")
	}
	return v, nil
}

// TryReadUint8 reads the next field as uint8.
func (r *Reader) TryReadUint8(f *Fields) (uint8, bool) {
	return r.TryReadUint8With(f, StyleUnsigned, nil)
}

// TryReadUint8Style is TryReadUint8 with an explicit number style.
func (r *Reader) TryReadUint8Style(f *Fields, style NumberStyle) (uint8, bool) {
	return r.TryReadUint8With(f, style, nil)
}

// TryReadUint8Format is TryReadUint8 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadUint8Format(f *Fields, cfg *FormatConfig) (uint8, bool) {
	return r.TryReadUint8With(f, StyleUnsigned, cfg)
}

// TryReadUint8With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadUint8With(f *Fields, style NumberStyle, cfg *FormatConfig) (uint8, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseUint[uint8](f.cur, style, r.format(cfg))
}

// ReadUint8 is TryReadUint8 reporting failure as a *FieldError.
func (r *Reader) ReadUint8(f *Fields) (uint8, error) {
	v, ok := r.TryReadUint8(f)
	if !ok {
		return v, fieldError(f, "uint8")
	}
	return v, nil
}

// TryReadUint16 reads the next field as uint16.
func (r *Reader) TryReadUint16(f *Fields) (uint16, bool) {
	return r.TryReadUint16With(f, StyleUnsigned, nil)
}

// TryReadUint16Style is TryReadUint16 with an explicit number style.
func (r *Reader) TryReadUint16Style(f *Fields, style NumberStyle) (uint16, bool) {
	return r.TryReadUint16With(f, style, nil)
}

// TryReadUint16Format is TryReadUint16 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadUint16Format(f *Fields, cfg *FormatConfig) (uint16, bool) {
	return r.TryReadUint16With(f, StyleUnsigned, cfg)
}

// TryReadUint16With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadUint16With(f *Fields, style NumberStyle, cfg *FormatConfig) (uint16, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseUint[uint16](f.cur, style, r.format(cfg))
}

// ReadUint16 is TryReadUint16 reporting failure as a *FieldError.
func (r *Reader) ReadUint16(f *Fields) (uint16, error) {
	v, ok := r.TryReadUint16(f)
	if !ok {
		return v, fieldError(f, "uint16")
	}
	return v, nil
}

// TryReadUint32 reads the next field as uint32.
func (r *Reader) TryReadUint32(f *Fields) (uint32, bool) {
	return r.TryReadUint32With(f, StyleUnsigned, nil)
}

// TryReadUint32Style is TryReadUint32 with an explicit number style.
func (r *Reader) TryReadUint32Style(f *Fields, style NumberStyle) (uint32, bool) {
	return r.TryReadUint32With(f, style, nil)
}

// TryReadUint32Format is TryReadUint32 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadUint32Format(f *Fields, cfg *FormatConfig) (uint32, bool) {
	return r.TryReadUint32With(f, StyleUnsigned, cfg)
}

// TryReadUint32With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadUint32With(f *Fields, style NumberStyle, cfg *FormatConfig) (uint32, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseUint[uint32](f.cur, style, r.format(cfg))
}

// ReadUint32 is TryReadUint32 reporting failure as a *FieldError.
func (r *Reader) ReadUint32(f *Fields) (uint32, error) {
	v, ok := r.TryReadUint32(f)
	if !ok {
		return v, fieldError(f, "uint32")
	}
	return v, nil
}

// TryReadUint64 reads the next field as uint64.
func (r *Reader) TryReadUint64(f *Fields) (uint64, bool) {
	return r.TryReadUint64With(f, StyleUnsigned, nil)
}

// TryReadUint64Style is TryReadUint64 with an explicit number style.
func (r *Reader) TryReadUint64Style(f *Fields, style NumberStyle) (uint64, bool) {
	return r.TryReadUint64With(f, style, nil)
}

// TryReadUint64Format is TryReadUint64 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadUint64Format(f *Fields, cfg *FormatConfig) (uint64, bool) {
	return r.TryReadUint64With(f, StyleUnsigned, cfg)
}

// TryReadUint64With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadUint64With(f *Fields, style NumberStyle, cfg *FormatConfig) (uint64, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseUint[uint64](f.cur, style, r.format(cfg))
}

// ReadUint64 is TryReadUint64 reporting failure as a *FieldError.
func (r *Reader) ReadUint64(f *Fields) (uint64, error) {
	v, ok := r.TryReadUint64(f)
	if !ok {
		return v, fieldError(f, "uint64")
	}
	return v, nil
}

// TryReadUint reads the next field as uint.
func (r *Reader) TryReadUint(f *Fields) (uint, bool) {
	return r.TryReadUintWith(f, StyleUnsigned, nil)
}

// TryReadUintStyle is TryReadUint with an explicit number style.
func (r *Reader) TryReadUintStyle(f *Fields, style NumberStyle) (uint, bool) {
	return r.TryReadUintWith(f, style, nil)
}

// TryReadUintFormat is TryReadUint with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadUintFormat(f *Fields, cfg *FormatConfig) (uint, bool) {
	return r.TryReadUintWith(f, StyleUnsigned, cfg)
}

// TryReadUintWith reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadUintWith(f *Fields, style NumberStyle, cfg *FormatConfig) (uint, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseUint[uint](f.cur, style, r.format(cfg))
}

// ReadUint is TryReadUint reporting failure as a *FieldError.
func (r *Reader) ReadUint(f *Fields) (uint, error) {
	v, ok := r.TryReadUint(f)
	if !ok {
		return v, fieldError(f, "uint")
	}
	return v, nil
}

// TryReadFloat32 reads the next field as float32.
func (r *Reader) TryReadFloat32(f *Fields) (float32, bool) {
	return r.TryReadFloat32With(f, StyleFloat, nil)
}

// TryReadFloat32Style is TryReadFloat32 with an explicit number style.
func (r *Reader) TryReadFloat32Style(f *Fields, style NumberStyle) (float32, bool) {
	return r.TryReadFloat32With(f, style, nil)
}

// TryReadFloat32Format is TryReadFloat32 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadFloat32Format(f *Fields, cfg *FormatConfig) (float32, bool) {
	return r.TryReadFloat32With(f, StyleFloat, cfg)
}

// TryReadFloat32With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadFloat32With(f *Fields, style NumberStyle, cfg *FormatConfig) (float32, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseFloat[float32](f.cur, style, r.format(cfg))
}

// ReadFloat32 is TryReadFloat32 reporting failure as a *FieldError.
func (r *Reader) ReadFloat32(f *Fields) (float32, error) {
	v, ok := r.TryReadFloat32(f)
	if !ok {
		return v, fieldError(f, "float32")
	}
	return v, nil
}

// TryReadFloat64 reads the next field as float64.
func (r *Reader) TryReadFloat64(f *Fields) (float64, bool) {
	return r.TryReadFloat64With(f, StyleFloat, nil)
}

// TryReadFloat64Style is TryReadFloat64 with an explicit number style.
func (r *Reader) TryReadFloat64Style(f *Fields, style NumberStyle) (float64, bool) {
	return r.TryReadFloat64With(f, style, nil)
}

// TryReadFloat64Format is TryReadFloat64 with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadFloat64Format(f *Fields, cfg *FormatConfig) (float64, bool) {
	return r.TryReadFloat64With(f, StyleFloat, cfg)
}

// TryReadFloat64With reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadFloat64With(f *Fields, style NumberStyle, cfg *FormatConfig) (float64, bool) {
	if !f.Next() {
		return 0, false
	}
	return ParseFloat[float64](f.cur, style, r.format(cfg))
}

// ReadFloat64 is TryReadFloat64 reporting failure as a *FieldError.
func (r *Reader) ReadFloat64(f *Fields) (float64, error) {
	v, ok := r.TryReadFloat64(f)
	if !ok {
		return v, fieldError(f, "float64")
	}
	return v, nil
}

// TryReadDecimal reads the next field as apd.Decimal.
func (r *Reader) TryReadDecimal(f *Fields) (*apd.Decimal, bool) {
	return r.TryReadDecimalWith(f, StyleFloat, nil)
}

// TryReadDecimalStyle is TryReadDecimal with an explicit number style.
func (r *Reader) TryReadDecimalStyle(f *Fields, style NumberStyle) (*apd.Decimal, bool) {
	return r.TryReadDecimalWith(f, style, nil)
}

// TryReadDecimalFormat is TryReadDecimal with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadDecimalFormat(f *Fields, cfg *FormatConfig) (*apd.Decimal, bool) {
	return r.TryReadDecimalWith(f, StyleFloat, cfg)
}

// TryReadDecimalWith reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadDecimalWith(f *Fields, style NumberStyle, cfg *FormatConfig) (*apd.Decimal, bool) {
	if !f.Next() {
		return nil, false
	}
	return ParseDecimal(f.cur, style, r.format(cfg))
}

// ReadDecimal is TryReadDecimal reporting failure as a *FieldError.
func (r *Reader) ReadDecimal(f *Fields) (*apd.Decimal, error) {
	v, ok := r.TryReadDecimal(f)
	if !ok {
		return v, fieldError(f, "apd.Decimal")
	}
	return v, nil
}

// TryReadBigInt reads the next field as big.Int.
func (r *Reader) TryReadBigInt(f *Fields) (*big.Int, bool) {
	return r.TryReadBigIntWith(f, StyleSigned, nil)
}

// TryReadBigIntStyle is TryReadBigInt with an explicit number style.
func (r *Reader) TryReadBigIntStyle(f *Fields, style NumberStyle) (*big.Int, bool) {
	return r.TryReadBigIntWith(f, style, nil)
}

// TryReadBigIntFormat is TryReadBigInt with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadBigIntFormat(f *Fields, cfg *FormatConfig) (*big.Int, bool) {
	return r.TryReadBigIntWith(f, StyleSigned, cfg)
}

// TryReadBigIntWith reads the next field with an explicit style and format; a nil cfg means the reader's.
func (r *Reader) TryReadBigIntWith(f *Fields, style NumberStyle, cfg *FormatConfig) (*big.Int, bool) {
	if !f.Next() {
		return nil, false
	}
	return ParseBigInt(f.cur, style, r.format(cfg))
}

// ReadBigInt is TryReadBigInt reporting failure as a *FieldError.
func (r *Reader) ReadBigInt(f *Fields) (*big.Int, error) {
	v, ok := r.TryReadBigInt(f)
	if !ok {
		return v, fieldError(f, "big.Int")
	}
	return v, nil
}

// Calendar parsers try the layouts of the format in order. Surrounding whitespace is ignored.

// TryReadDate reads the next field as civil.Date using the reader's DateLayouts.
func (r *Reader) TryReadDate(f *Fields) (civil.Date, bool) {
	return r.TryReadDateLayout(f, r.cfg.DateLayouts...)
}

// TryReadDateFormat is TryReadDate with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadDateFormat(f *Fields, cfg *FormatConfig) (civil.Date, bool) {
	return r.TryReadDateLayout(f, r.format(cfg).DateLayouts...)
}

// TryReadDateLayout is TryReadDate trying the given layouts in order instead of the format's.
func (r *Reader) TryReadDateLayout(f *Fields, layouts ...string) (civil.Date, bool) {
	if !f.Next() {
		return civil.Date{}, false
	}
	return ParseDate(f.cur, layouts)
}

// ReadDate is TryReadDate reporting failure as a *FieldError.
func (r *Reader) ReadDate(f *Fields) (civil.Date, error) {
	v, ok := r.TryReadDate(f)
	if !ok {
		return v, fieldError(f, "civil.Date")
	}
	return v, nil
}

// TryReadTimeOfDay reads the next field as civil.Time using the reader's TimeLayouts.
func (r *Reader) TryReadTimeOfDay(f *Fields) (civil.Time, bool) {
	return r.TryReadTimeOfDayLayout(f, r.cfg.TimeLayouts...)
}

// TryReadTimeOfDayFormat is TryReadTimeOfDay with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadTimeOfDayFormat(f *Fields, cfg *FormatConfig) (civil.Time, bool) {
	return r.TryReadTimeOfDayLayout(f, r.format(cfg).TimeLayouts...)
}

// TryReadTimeOfDayLayout is TryReadTimeOfDay trying the given layouts in order instead of the format's.
func (r *Reader) TryReadTimeOfDayLayout(f *Fields, layouts ...string) (civil.Time, bool) {
	if !f.Next() {
		return civil.Time{}, false
	}
	return ParseTimeOfDay(f.cur, layouts)
}

// ReadTimeOfDay is TryReadTimeOfDay reporting failure as a *FieldError.
func (r *Reader) ReadTimeOfDay(f *Fields) (civil.Time, error) {
	v, ok := r.TryReadTimeOfDay(f)
	if !ok {
		return v, fieldError(f, "civil.Time")
	}
	return v, nil
}

// TryReadDateTime reads the next field as civil.DateTime using the reader's DateTimeLayouts.
func (r *Reader) TryReadDateTime(f *Fields) (civil.DateTime, bool) {
	return r.TryReadDateTimeLayout(f, r.cfg.DateTimeLayouts...)
}

// TryReadDateTimeFormat is TryReadDateTime with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadDateTimeFormat(f *Fields, cfg *FormatConfig) (civil.DateTime, bool) {
	return r.TryReadDateTimeLayout(f, r.format(cfg).DateTimeLayouts...)
}

// TryReadDateTimeLayout is TryReadDateTime trying the given layouts in order instead of the format's.
func (r *Reader) TryReadDateTimeLayout(f *Fields, layouts ...string) (civil.DateTime, bool) {
	if !f.Next() {
		return civil.DateTime{}, false
	}
	return ParseDateTime(f.cur, layouts)
}

// ReadDateTime is TryReadDateTime reporting failure as a *FieldError.
func (r *Reader) ReadDateTime(f *Fields) (civil.DateTime, error) {
	v, ok := r.TryReadDateTime(f)
	if !ok {
		return v, fieldError(f, "civil.DateTime")
	}
	return v, nil
}

// TryReadTime reads the next field as time.Time using the reader's TimestampLayouts.
func (r *Reader) TryReadTime(f *Fields) (time.Time, bool) {
	return r.TryReadTimeLayout(f, r.cfg.TimestampLayouts...)
}

// TryReadTimeFormat is TryReadTime with an explicit format; a nil cfg means the reader's.
func (r *Reader) TryReadTimeFormat(f *Fields, cfg *FormatConfig) (time.Time, bool) {
	return r.TryReadTimeLayout(f, r.format(cfg).TimestampLayouts...)
}

// TryReadTimeLayout is TryReadTime trying the given layouts in order instead of the format's.
func (r *Reader) TryReadTimeLayout(f *Fields, layouts ...string) (time.Time, bool) {
	if !f.Next() {
		return time.Time{}, false
	}
	return ParseTime(f.cur, layouts)
}

// ReadTime is TryReadTime reporting failure as a *FieldError.
func (r *Reader) ReadTime(f *Fields) (time.Time, error) {
	v, ok := r.TryReadTime(f)
	if !ok {
		return v, fieldError(f, "time.Time")
	}
	return v, nil
}

// TryReadString reads the next field as a copied string. It only fails when the record has no
// field left.
func (r *Reader) TryReadString(f *Fields) (string, bool) {
	if !f.Next() {
		return "", false
	}
	return string(f.cur), true
}

// ReadString is TryReadString reporting failure as a *FieldError.
func (r *Reader) ReadString(f *Fields) (string, error) {
	v, ok := r.TryReadString(f)
	if !ok {
		return v, fieldError(f, "string")
	}
	return v, nil
}

// TryReadBytes returns the next field's raw bytes. They alias the reader's buffer and are
// invalidated when the reader advances.
func (r *Reader) TryReadBytes(f *Fields) ([]byte, bool) {
	if !f.Next() {
		return nil, false
	}
	return f.cur, true
}

// ReadBytes is TryReadBytes reporting failure as a *FieldError.
func (r *Reader) ReadBytes(f *Fields) ([]byte, error) {
	v, ok := r.TryReadBytes(f)
	if !ok {
		return v, fieldError(f, "[]byte")
	}
	return v, nil
}

// SkipField moves past the next field without converting it.
func (r *Reader) SkipField(f *Fields) bool { return f.Next() }
