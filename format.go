package typedcsv

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/exp/constraints"
)

// AppendInt appends the decimal form of v using cfg's negative sign. Digits are never grouped.
func AppendInt[T constraints.Signed](dst []byte, v T, cfg *FormatConfig) []byte {
	if v < 0 {
		dst = append(dst, orInvariant(cfg).negativeSign()...)
		return strconv.AppendUint(dst, uint64(-int64(v)), 10)
	}
	return strconv.AppendUint(dst, uint64(v), 10)
}

// AppendUint appends the decimal form of v.
func AppendUint[T constraints.Unsigned](dst []byte, v T) []byte {
	return strconv.AppendUint(dst, uint64(v), 10)
}

// AppendFloat appends v formatted as strconv.AppendFloat does, then localized with cfg's
// decimal symbol, negative sign and NaN/infinity symbols.
func AppendFloat(dst []byte, v float64, format byte, prec, bitSize int, cfg *FormatConfig) []byte {
	cfg = orInvariant(cfg)
	switch {
	case math.IsNaN(v):
		return append(dst, cfg.NaNSymbol...)
	case math.IsInf(v, 1):
		return append(dst, cfg.PositiveInfinitySymbol...)
	case math.IsInf(v, -1):
		return append(dst, cfg.NegativeInfinitySymbol...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, format, prec, bitSize)
	return localize(dst, start, cfg)
}

// AppendDecimal appends d in plain (non-exponent) notation.
func AppendDecimal(dst []byte, d *apd.Decimal, cfg *FormatConfig) []byte {
	start := len(dst)
	dst = d.Append(dst, 'f')
	return localize(dst, start, orInvariant(cfg))
}

// AppendBigInt appends the decimal form of x.
func AppendBigInt(dst []byte, x *big.Int, cfg *FormatConfig) []byte {
	start := len(dst)
	dst = x.Append(dst, 10)
	return localize(dst, start, orInvariant(cfg))
}

// AppendDate appends d formatted with layout.
func AppendDate(dst []byte, d civil.Date, layout string) []byte {
	return d.In(time.UTC).AppendFormat(dst, layout)
}

// AppendTimeOfDay appends t formatted with layout.
func AppendTimeOfDay(dst []byte, t civil.Time, layout string) []byte {
	return time.Date(0, time.January, 1, t.Hour, t.Minute, t.Second, t.Nanosecond, time.UTC).AppendFormat(dst, layout)
}

// AppendDateTime appends dt formatted with layout.
func AppendDateTime(dst []byte, dt civil.DateTime, layout string) []byte {
	return dt.In(time.UTC).AppendFormat(dst, layout)
}

// AppendTime appends t formatted with layout.
func AppendTime(dst []byte, t time.Time, layout string) []byte {
	return t.AppendFormat(dst, layout)
}

// localize rewrites the leading '-' and the '.' that strconv produced in dst[start:] into the
// locale's symbols. The exponent sign is left as ASCII.
func localize(dst []byte, start int, cfg *FormatConfig) []byte {
	neg, dec := cfg.negativeSign(), cfg.decimalSymbol()
	if neg == "-" && dec == "." {
		return dst
	}
	if len(neg) == 1 && len(dec) == 1 {
		num := dst[start:]
		if len(num) > 0 && num[0] == '-' {
			num[0] = neg[0]
		}
		for i, c := range num {
			if c == '.' {
				num[i] = dec[0]
				break
			}
		}
		return dst
	}

	var scratch [64]byte
	num := append(scratch[:0], dst[start:]...)
	dst = dst[:start]
	point := false
	for i, c := range num {
		switch {
		case i == 0 && c == '-':
			dst = append(dst, neg...)
		case c == '.' && !point:
			dst = append(dst, dec...)
			point = true
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

func layoutOr(layouts []string, fallback string) string {
	if len(layouts) > 0 {
		return layouts[0]
	}
	return fallback
}
