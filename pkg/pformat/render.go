package pformat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// SpecFormatter is implemented by values that render themselves for a
// format spec. It takes precedence over the built-in conversions.
type SpecFormatter interface {
	FormatSpec(spec string, c *Culture) (string, error)
}

// Render converts value to text using spec, then pads the result to the
// alignment width. Negative alignment left-justifies, positive
// right-justifies.
func Render(value any, spec string, alignment int, c *Culture) (string, error) {
	if c == nil {
		c = EnglishUS
	}

	s, err := convert(value, spec, c)
	if err != nil {
		return "", err
	}

	return Pad(s, alignment), nil
}

// Pad space-pads s to |width| runes. Text that already meets the width is
// returned unchanged.
func Pad(s string, width int) string {
	left := width < 0
	if left {
		width = -width
	}

	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	fill := strings.Repeat(" ", width-n)
	if left {
		return s + fill
	}

	return fill + s
}

func convert(value any, spec string, c *Culture) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case SpecFormatter:
		return v.FormatSpec(spec, c)
	case time.Time:
		return formatTime(v, spec, c)
	case *time.Time:
		if v == nil {
			return "", nil
		}
		return formatTime(*v, spec, c)
	case time.Duration:
		return formatDuration(v, spec, c)
	case string:
		return v, nil
	}

	if n, ok := toNumeric(value); ok {
		return formatNumber(n, value, spec, c)
	}

	return fmt.Sprint(value), nil
}
