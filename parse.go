package typedcsv

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
	"time"
	"unsafe"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/exp/constraints"
)

// ParseInt parses a signed integer of T's width from text under style and cfg.
// A nil cfg means Invariant. Exponents are never accepted, and a decimal point (when the style
// allows it) may only be followed by zeros.
func ParseInt[T constraints.Signed](text []byte, style NumberStyle, cfg *FormatConfig) (T, bool) {
	mag, neg, ok := parseMagnitude(text, style, cfg)
	if !ok {
		return 0, false
	}
	limit := uint64(1) << (8*unsafe.Sizeof(T(0)) - 1)
	if neg {
		if mag > limit {
			return 0, false
		}
		return T(-int64(mag)), true
	}
	if mag >= limit {
		return 0, false
	}
	return T(mag), true
}

// ParseUint parses an unsigned integer of T's width from text under style and cfg.
// A sign, when allowed, is only accepted for zero.
func ParseUint[T constraints.Unsigned](text []byte, style NumberStyle, cfg *FormatConfig) (T, bool) {
	mag, neg, ok := parseMagnitude(text, style, cfg)
	if !ok || (neg && mag != 0) {
		return 0, false
	}
	if mag > ^uint64(0)>>(64-8*unsafe.Sizeof(T(0))) {
		return 0, false
	}
	return T(mag), true
}

// ParseFloat parses a float of T's width. The locale's NaN and infinity symbols are accepted;
// values out of T's range are rejected.
func ParseFloat[T constraints.Float](text []byte, style NumberStyle, cfg *FormatConfig) (T, bool) {
	cfg = orInvariant(cfg)
	t := trimStyle(text, style)
	switch {
	case len(t) == 0:
		return 0, false
	case string(t) == cfg.NaNSymbol:
		return T(math.NaN()), true
	case string(t) == cfg.PositiveInfinitySymbol:
		return T(math.Inf(1)), true
	case string(t) == cfg.NegativeInfinitySymbol:
		return T(math.Inf(-1)), true
	}

	var scratch [64]byte
	norm, ok := normalize(scratch[:0], t, style, cfg)
	if !ok {
		return 0, false
	}
	// strconv does not retain its input, so the scratch bytes can back the string.
	v, err := strconv.ParseFloat(unsafe.String(unsafe.SliceData(norm), len(norm)), int(8*unsafe.Sizeof(T(0))))
	if err != nil {
		return 0, false
	}
	return T(v), true
}

// ParseDecimal parses an arbitrary-precision decimal.
func ParseDecimal(text []byte, style NumberStyle, cfg *FormatConfig) (*apd.Decimal, bool) {
	var scratch [64]byte
	norm, ok := normalize(scratch[:0], text, style, orInvariant(cfg))
	if !ok {
		return nil, false
	}
	d, _, err := apd.NewFromString(string(norm))
	if err != nil {
		return nil, false
	}
	return d, true
}

// ParseBigInt parses an arbitrary-precision integer.
func ParseBigInt(text []byte, style NumberStyle, cfg *FormatConfig) (*big.Int, bool) {
	var scratch [64]byte
	norm, ok := normalize(scratch[:0], text, style&^AllowExponent, orInvariant(cfg))
	if !ok {
		return nil, false
	}
	if i := bytes.IndexByte(norm, '.'); i >= 0 {
		if !allZeros(norm[i+1:]) {
			return nil, false
		}
		norm = norm[:i]
	}
	if len(norm) == 0 || (len(norm) == 1 && norm[0] == '-') {
		return new(big.Int), true
	}
	v, ok := new(big.Int).SetString(string(norm), 10)
	return v, ok
}

// ParseDate parses a calendar date with the first matching layout.
func ParseDate(text []byte, layouts []string) (civil.Date, bool) {
	t, ok := parseLayouts(text, layouts)
	if !ok {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

// ParseTimeOfDay parses a time of day with the first matching layout.
func ParseTimeOfDay(text []byte, layouts []string) (civil.Time, bool) {
	t, ok := parseLayouts(text, layouts)
	if !ok {
		return civil.Time{}, false
	}
	return civil.TimeOf(t), true
}

// ParseDateTime parses a date and time without zone with the first matching layout.
func ParseDateTime(text []byte, layouts []string) (civil.DateTime, bool) {
	t, ok := parseLayouts(text, layouts)
	if !ok {
		return civil.DateTime{}, false
	}
	return civil.DateTimeOf(t), true
}

// ParseTime parses an instant with offset. Layouts without a zone are read as UTC.
func ParseTime(text []byte, layouts []string) (time.Time, bool) {
	return parseLayouts(text, layouts)
}

func parseLayouts(text []byte, layouts []string) (time.Time, bool) {
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return time.Time{}, false
	}
	// time.Parse may keep substrings of its input (zone names), so the text is copied.
	s := string(text)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseMagnitude reads an integer as sign and magnitude without allocating for ordinary input.
func parseMagnitude(text []byte, style NumberStyle, cfg *FormatConfig) (mag uint64, neg, ok bool) {
	var scratch [32]byte
	norm, ok := normalize(scratch[:0], text, style&^AllowExponent, orInvariant(cfg))
	if !ok {
		return 0, false, false
	}
	if norm[0] == '-' {
		neg = true
		norm = norm[1:]
	}
	frac := false
	for _, c := range norm {
		if c == '.' {
			frac = true
			continue
		}
		d := uint64(c - '0')
		if frac {
			if d != 0 {
				return 0, neg, false
			}
			continue
		}
		if mag > (math.MaxUint64-d)/10 {
			return 0, neg, false
		}
		mag = mag*10 + d
	}
	return mag, neg, true
}

// normalize rewrites a localized number into the plain form strconv and apd accept
// ("-1234.5e-3"), appending it to dst. It reports false when text violates style.
func normalize(dst, text []byte, style NumberStyle, cfg *FormatConfig) ([]byte, bool) {
	t := trimStyle(text, style)
	if style&AllowLeadingSign != 0 {
		if n, neg := matchSign(t, cfg); n > 0 {
			if neg {
				dst = append(dst, '-')
			}
			t = t[n:]
		}
	}

	digits := 0
	for len(t) > 0 {
		if c := t[0]; isDigit(c) {
			dst = append(dst, c)
			t = t[1:]
			digits++
			continue
		}
		if style&AllowThousands != 0 && digits > 0 {
			if n := matchGroup(t, cfg); n > 0 {
				t = t[n:]
				continue
			}
		}
		break
	}

	if dec := cfg.decimalSymbol(); style&AllowDecimalPoint != 0 && hasPrefix(t, dec) {
		t = t[len(dec):]
		dst = append(dst, '.')
		for len(t) > 0 && isDigit(t[0]) {
			dst = append(dst, t[0])
			t = t[1:]
			digits++
		}
	}
	if digits == 0 {
		return dst, false
	}

	if style&AllowExponent != 0 && len(t) > 0 && (t[0] == 'e' || t[0] == 'E') {
		dst = append(dst, 'e')
		t = t[1:]
		if n, neg := matchSign(t, cfg); n > 0 {
			if neg {
				dst = append(dst, '-')
			}
			t = t[n:]
		}
		exp := 0
		for len(t) > 0 && isDigit(t[0]) {
			dst = append(dst, t[0])
			t = t[1:]
			exp++
		}
		if exp == 0 {
			return dst, false
		}
	}
	return dst, len(t) == 0
}

func trimStyle(text []byte, style NumberStyle) []byte {
	if style&AllowLeadingWhite != 0 {
		for len(text) > 0 && isSpace(text[0]) {
			text = text[1:]
		}
	}
	if style&AllowTrailingWhite != 0 {
		for len(text) > 0 && isSpace(text[len(text)-1]) {
			text = text[:len(text)-1]
		}
	}
	return text
}

// matchSign returns the length of a sign at the start of text and whether it is negative.
// Locales whose negative sign is not '-' still accept the ASCII hyphen.
func matchSign(text []byte, cfg *FormatConfig) (int, bool) {
	if s := cfg.negativeSign(); hasPrefix(text, s) {
		return len(s), true
	}
	if s := cfg.positiveSign(); hasPrefix(text, s) {
		return len(s), false
	}
	if len(text) > 0 && text[0] == '-' {
		return 1, true
	}
	return 0, false
}

var spaceSeparators = [...]string{" ", "\u00a0", "\u202f"}

// matchGroup returns the length of a group separator at the start of text, or zero.
// Space-like separators (space, no-break space, narrow no-break space) match each other.
func matchGroup(text []byte, cfg *FormatConfig) int {
	g := cfg.GroupSeparator
	if hasPrefix(text, g) {
		return len(g)
	}
	if g != " " && g != "\u00a0" && g != "\u202f" {
		return 0
	}
	for _, alt := range spaceSeparators {
		if hasPrefix(text, alt) {
			return len(alt)
		}
	}
	return 0
}

func hasPrefix(b []byte, s string) bool {
	return len(s) > 0 && len(b) >= len(s) && string(b[:len(s)]) == s
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || (c >= '\t' && c <= '\r') }

func allZeros(b []byte) bool {
	for _, c := range b {
		if c != '0' {
			return false
		}
	}
	return true
}

func orInvariant(cfg *FormatConfig) *FormatConfig {
	if cfg == nil {
		return &Invariant
	}
	return cfg
}
