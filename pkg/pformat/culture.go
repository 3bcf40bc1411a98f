package pformat

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Culture holds the conventions used when a format spec asks for
// locale-dependent output. Numeric grouping and separators come from the
// CLDR data in golang.org/x/text; date names are always English.
type Culture struct {
	Name           string
	Tag            language.Tag
	CurrencySymbol string
	PercentSymbol  string
	NegativeSign   string

	ShortDatePattern string
	LongDatePattern  string
	ShortTimePattern string
	LongTimePattern  string
	MonthDayPattern  string
	YearMonthPattern string
	AMDesignator     string
	PMDesignator     string

	printer    *message.Printer
	decimalSep string
	groupSep   string
}

var (
	// EnglishUS is the default culture.
	EnglishUS = NewCulture(language.AmericanEnglish, "$")

	// Invariant is a culture-neutral set of conventions.
	Invariant = newInvariant()
)

// NewCulture builds a culture for tag. Date patterns follow the en-US
// layout; currencySymbol is used verbatim by the C spec.
func NewCulture(tag language.Tag, currencySymbol string) *Culture {
	c := &Culture{
		Name:             tag.String(),
		Tag:              tag,
		CurrencySymbol:   currencySymbol,
		PercentSymbol:    "%",
		NegativeSign:     "-",
		ShortDatePattern: "M/d/yyyy",
		LongDatePattern:  "dddd, MMMM d, yyyy",
		ShortTimePattern: "h:mm tt",
		LongTimePattern:  "h:mm:ss tt",
		MonthDayPattern:  "MMMM d",
		YearMonthPattern: "MMMM yyyy",
		AMDesignator:     "AM",
		PMDesignator:     "PM",
		printer:          message.NewPrinter(tag),
	}
	c.detectSeparators()

	return c
}

// ParseCulture resolves a BCP 47 name such as "en-US" or "de-DE". The
// empty string and "invariant" select Invariant.
func ParseCulture(name string) (*Culture, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "invariant":
		return Invariant, nil
	case "en-us":
		return EnglishUS, nil
	}

	tag, err := language.Parse(name)
	if err != nil {
		return nil, err
	}

	return NewCulture(tag, currencySymbolFor(tag)), nil
}

func newInvariant() *Culture {
	c := NewCulture(language.Und, "¤")
	c.Name = "invariant"
	c.ShortDatePattern = "MM/dd/yyyy"
	c.LongTimePattern = "HH:mm:ss"
	c.ShortTimePattern = "HH:mm"
	c.YearMonthPattern = "yyyy MMMM"

	return c
}

// detectSeparators asks the locale printer how it renders a grouped
// decimal and keeps the separators it used.
func (c *Culture) detectSeparators() {
	c.decimalSep = "."
	c.groupSep = ","

	s := c.printer.Sprint(number.Decimal(1234.5, number.Scale(1)))
	digits := "12345"
	var seps []string
	var cur strings.Builder
	for _, r := range s {
		if strings.ContainsRune(digits, r) {
			if cur.Len() > 0 {
				seps = append(seps, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}

	switch len(seps) {
	case 2:
		c.groupSep, c.decimalSep = seps[0], seps[1]
	case 1:
		c.groupSep, c.decimalSep = "", seps[0]
	}
}

// DecimalSeparator returns the locale's decimal separator.
func (c *Culture) DecimalSeparator() string { return c.decimalSep }

// GroupSeparator returns the locale's digit grouping separator.
func (c *Culture) GroupSeparator() string { return c.groupSep }

// decimal is a locale formatter for v with exactly scale fraction digits.
func decimal(v any, scale int) number.Formatter {
	return number.Decimal(v, number.Scale(scale))
}

// localize swaps the '.' produced by strconv for the culture's separator.
func (c *Culture) localize(s string) string {
	if c.decimalSep == "." {
		return s
	}

	return strings.Replace(s, ".", c.decimalSep, 1)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "CHF",
	"INR": "₹",
}

func currencySymbolFor(tag language.Tag) string {
	region, _ := tag.Region()
	switch region.String() {
	case "US", "CA", "AU":
		return "$"
	case "GB":
		return currencySymbols["GBP"]
	case "JP":
		return currencySymbols["JPY"]
	case "CH":
		return currencySymbols["CHF"]
	case "IN":
		return currencySymbols["INR"]
	case "DE", "FR", "ES", "IT", "NL", "AT", "BE", "FI", "IE", "PT":
		return currencySymbols["EUR"]
	}

	return "¤"
}
