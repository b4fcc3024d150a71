package typedcsv

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
)

// Value is the closed set of field types the generic dispatchers accept. Instantiating them
// with any other type is a compile-time error.
type Value interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint |
		float32 | float64 | *apd.Decimal | *big.Int |
		civil.Date | civil.Time | civil.DateTime | time.Time |
		string | []byte
}

// TryRead reads the next field as T using the reader's default style and format for T.
func TryRead[T Value](r *Reader, f *Fields) (T, bool) {
	var out T
	var ok bool
	switch p := any(&out).(type) {
	case *int8:
		*p, ok = r.TryReadInt8(f)
	case *int16:
		*p, ok = r.TryReadInt16(f)
	case *int32:
		*p, ok = r.TryReadInt32(f)
	case *int64:
		*p, ok = r.TryReadInt64(f)
	case *int:
		*p, ok = r.TryReadInt(f)
	case *uint8:
		*p, ok = r.TryReadUint8(f)
	case *uint16:
		*p, ok = r.TryReadUint16(f)
	case *uint32:
		*p, ok = r.TryReadUint32(f)
	case *uint64:
		*p, ok = r.TryReadUint64(f)
	case *uint:
		*p, ok = r.TryReadUint(f)
	case *float32:
		*p, ok = r.TryReadFloat32(f)
	case *float64:
		*p, ok = r.TryReadFloat64(f)
	case **apd.Decimal:
		*p, ok = r.TryReadDecimal(f)
	case **big.Int:
		*p, ok = r.TryReadBigInt(f)
	case *civil.Date:
		*p, ok = r.TryReadDate(f)
	case *civil.Time:
		*p, ok = r.TryReadTimeOfDay(f)
	case *civil.DateTime:
		*p, ok = r.TryReadDateTime(f)
	case *time.Time:
		*p, ok = r.TryReadTime(f)
	case *string:
		*p, ok = r.TryReadString(f)
	case *[]byte:
		*p, ok = r.TryReadBytes(f)
	}
	return out, ok
}

// Read is TryRead reporting failure as a *FieldError.
func Read[T Value](r *Reader, f *Fields) (T, error) {
	v, ok := TryRead[T](r, f)
	if !ok {
		return v, fieldError(f, typeName[T]())
	}
	return v, nil
}

// Write formats v with the writer's format.
func Write[T Value](w *Writer, v T) error {
	switch v := any(v).(type) {
	case int8:
		return w.WriteInt64(int64(v))
	case int16:
		return w.WriteInt64(int64(v))
	case int32:
		return w.WriteInt64(int64(v))
	case int64:
		return w.WriteInt64(v)
	case int:
		return w.WriteInt64(int64(v))
	case uint8:
		return w.WriteUint64(uint64(v))
	case uint16:
		return w.WriteUint64(uint64(v))
	case uint32:
		return w.WriteUint64(uint64(v))
	case uint64:
		return w.WriteUint64(v)
	case uint:
		return w.WriteUint64(uint64(v))
	case float32:
		return w.WriteFloat32(v)
	case float64:
		return w.WriteFloat64(v)
	case *apd.Decimal:
		return w.WriteDecimal(v)
	case *big.Int:
		return w.WriteBigInt(v)
	case civil.Date:
		return w.WriteDate(v)
	case civil.Time:
		return w.WriteTimeOfDay(v)
	case civil.DateTime:
		return w.WriteDateTime(v)
	case time.Time:
		return w.WriteTime(v)
	case string:
		return w.WriteString(v)
	case []byte:
		return w.WriteBytes(v)
	}
	return ErrUnsupportedType
}

func typeName[T Value]() string {
	var zero T
	switch any(zero).(type) {
	case int8:
		return "int8"
	case int16:
		return "int16"
	case int32:
		return "int32"
	case int64:
		return "int64"
	case int:
		return "int"
	case uint8:
		return "uint8"
	case uint16:
		return "uint16"
	case uint32:
		return "uint32"
	case uint64:
		return "uint64"
	case uint:
		return "uint"
	case float32:
		return "float32"
	case float64:
		return "float64"
	case *apd.Decimal:
		return "apd.Decimal"
	case *big.Int:
		return "big.Int"
	case civil.Date:
		return "civil.Date"
	case civil.Time:
		return "civil.Time"
	case civil.DateTime:
		return "civil.DateTime"
	case time.Time:
		return "time.Time"
	case string:
		return "string"
	case []byte:
		return "[]byte"
	}
	return "unknown"
}
