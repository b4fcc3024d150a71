package typedcsv

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnknownLocale is returned when a locale identifier cannot be parsed or has no known format data.
var ErrUnknownLocale = errors.New("typedcsv: unknown locale")

// NumberStyle is a bitset controlling which textual conventions a numeric parse accepts.
type NumberStyle uint16

const (
	// StyleNone accepts digits only.
	StyleNone NumberStyle = 0
	// AllowLeadingWhite accepts whitespace (0x09-0x0D, 0x20) before the number.
	AllowLeadingWhite NumberStyle = 1 << iota
	// AllowTrailingWhite accepts whitespace after the number, including a stray '\r'.
	AllowTrailingWhite
	// AllowLeadingSign accepts the locale's negative or positive sign in front of the digits.
	AllowLeadingSign
	// AllowDecimalPoint accepts the locale's decimal symbol followed by fractional digits.
	AllowDecimalPoint
	// AllowThousands accepts the locale's group separator inside the integral digits.
	AllowThousands
	// AllowExponent accepts an 'e' or 'E' exponent. Ignored by integer parsers.
	AllowExponent
)

const (
	// StyleWhitespace accepts surrounding whitespace.
	StyleWhitespace = AllowLeadingWhite | AllowTrailingWhite
	// StyleSigned is the default style of signed integer parsers: an optional sign and digits.
	StyleSigned = AllowLeadingSign
	// StyleUnsigned is the default style of unsigned integer parsers.
	StyleUnsigned = StyleWhitespace | AllowThousands
	// StyleFloat is the default style of floating point and decimal parsers.
	StyleFloat = StyleWhitespace | AllowLeadingSign | AllowDecimalPoint | AllowExponent | AllowThousands
)

// FormatConfig bundles the separator and the number and date conventions of a locale.
// A FormatConfig is treated as immutable once built; the layout slices must not be modified.
type FormatConfig struct {
	Locale language.Tag

	// Separator is the field delimiter rune.
	Separator rune

	DecimalSymbol          string
	GroupSeparator         string
	NegativeSign           string
	PositiveSign           string
	NaNSymbol              string
	PositiveInfinitySymbol string
	NegativeInfinitySymbol string

	// DateLayouts, TimeLayouts, DateTimeLayouts and TimestampLayouts are time package layouts
	// tried in order when parsing. The first entry of each is used when formatting.
	DateLayouts      []string
	TimeLayouts      []string
	DateTimeLayouts  []string
	TimestampLayouts []string
}

// Invariant is the culture-neutral format: comma separated, '.' decimal symbol, ',' grouping.
var Invariant = newConfig(language.Und, ',', ".", ",", "-", "01/02/2006", "15:04:05")

var locales = []FormatConfig{
	Invariant,
	newConfig(language.MustParse("en-US"), ',', ".", ",", "-", "1/2/2006", "3:04:05 PM"),
	newConfig(language.MustParse("en-GB"), ',', ".", ",", "-", "02/01/2006", "15:04:05"),
	newConfig(language.MustParse("da-DK"), ';', ",", ".", "-", "02-01-2006", "15.04.05"),
	newConfig(language.MustParse("de-DE"), ';', ",", ".", "-", "02.01.2006", "15:04:05"),
	newConfig(language.MustParse("fr-FR"), ';', ",", "\u202f", "-", "02/01/2006", "15:04:05"),
	newConfig(language.MustParse("es-ES"), ';', ",", ".", "-", "02/01/2006", "15:04:05"),
	newConfig(language.MustParse("it-IT"), ';', ",", ".", "-", "02/01/2006", "15:04:05"),
	newConfig(language.MustParse("nl-NL"), ';', ",", ".", "-", "02-01-2006", "15:04:05"),
	newConfig(language.MustParse("sv-SE"), ';', ",", "\u00a0", "\u2212", "2006-01-02", "15:04:05"),
	newConfig(language.MustParse("pl-PL"), ';', ",", "\u00a0", "-", "02.01.2006", "15:04:05"),
	newConfig(language.MustParse("ja-JP"), ',', ".", ",", "-", "2006/01/02", "15:04:05"),
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, cfg := range locales {
		tags[i] = cfg.Locale
	}
	return language.NewMatcher(tags)
}()

func newConfig(tag language.Tag, sep rune, decimal, group, negative, date, clock string) FormatConfig {
	dateTimes := []string{
		date + " " + clock,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	return FormatConfig{
		Locale:                 tag,
		Separator:              sep,
		DecimalSymbol:          decimal,
		GroupSeparator:         group,
		NegativeSign:           negative,
		PositiveSign:           "+",
		NaNSymbol:              "NaN",
		PositiveInfinitySymbol: "Infinity",
		NegativeInfinitySymbol: negative + "Infinity",
		DateLayouts:            []string{date, "2006-01-02"},
		TimeLayouts:            []string{clock, "15:04:05", "15:04"},
		DateTimeLayouts:        dateTimes,
		TimestampLayouts:       append([]string{"2006-01-02T15:04:05.999999999Z07:00", "2006-01-02 15:04:05Z07:00"}, dateTimes...),
	}
}

// Locale resolves a BCP 47 or POSIX locale identifier ("da-DK", "fr_FR.UTF-8", "C") to its
// FormatConfig. Identifiers are matched against the built-in table, so "en" resolves to en-US
// and "fr-CA" to fr-FR.
func Locale(id string) (FormatConfig, error) {
	id = posixToBCP47(id)
	if id == "" || id == "C" || id == "POSIX" || strings.EqualFold(id, "invariant") {
		return Invariant, nil
	}
	tag, err := language.Parse(id)
	if err != nil {
		return FormatConfig{}, fmt.Errorf("%w %q: %v", ErrUnknownLocale, id, err)
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf < language.High {
		return FormatConfig{}, fmt.Errorf("%w %q", ErrUnknownLocale, id)
	}
	return locales[idx], nil
}

// MustLocale is like Locale but panics when the identifier cannot be resolved.
func MustLocale(id string) FormatConfig {
	cfg, err := Locale(id)
	if err != nil {
		panic(err)
	}
	return cfg
}

// CurrentLocale returns the format of the ambient locale taken from LC_ALL, LC_NUMERIC or LANG,
// falling back to Invariant when none is set or resolvable.
func CurrentLocale() FormatConfig {
	for _, env := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		id := os.Getenv(env)
		if id == "" {
			continue
		}
		if cfg, err := Locale(id); err == nil {
			return cfg
		}
		return Invariant
	}
	return Invariant
}

// posixToBCP47 rewrites "da_DK.UTF-8@euro" as "da-DK".
func posixToBCP47(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.IndexAny(id, ".@"); i >= 0 {
		id = id[:i]
	}
	return strings.ReplaceAll(id, "_", "-")
}

// separatorBytes returns the UTF-8 encoding of the configured separator, defaulting to ','.
func (c *FormatConfig) separatorBytes() []byte {
	sep := c.Separator
	if sep == 0 {
		sep = ','
	}
	return []byte(string(sep))
}

func (c *FormatConfig) negativeSign() string {
	if c.NegativeSign == "" {
		return "-"
	}
	return c.NegativeSign
}

func (c *FormatConfig) positiveSign() string {
	if c.PositiveSign == "" {
		return "+"
	}
	return c.PositiveSign
}

func (c *FormatConfig) decimalSymbol() string {
	if c.DecimalSymbol == "" {
		return "."
	}
	return c.DecimalSymbol
}
