package pformat

import (
	"strconv"
	"strings"
	"time"
)

// Standard single-letter date patterns that do not depend on the culture.
const (
	patternRoundTrip = "yyyy'-'MM'-'dd'T'HH':'mm':'ss'.'fffffffK"
	patternRFC1123   = "ddd, dd MMM yyyy HH':'mm':'ss 'GMT'"
	patternSortable  = "yyyy'-'MM'-'dd'T'HH':'mm':'ss"
	patternUniversal = "yyyy'-'MM'-'dd HH':'mm':'ss'Z'"
)

func formatTime(t time.Time, spec string, c *Culture) (string, error) {
	if spec == "" {
		spec = "G"
	}

	if len(spec) == 1 {
		pattern, utc, ok := standardDatePattern(spec[0], c)
		if ok {
			if utc {
				t = t.UTC()
			}
			return layoutTime(t, pattern, c), nil
		}
	}

	return layoutTime(t, spec, c), nil
}

func standardDatePattern(letter byte, c *Culture) (pattern string, utc, ok bool) {
	switch letter {
	case 'd':
		return c.ShortDatePattern, false, true
	case 'D':
		return c.LongDatePattern, false, true
	case 'f':
		return c.LongDatePattern + " " + c.ShortTimePattern, false, true
	case 'F':
		return c.LongDatePattern + " " + c.LongTimePattern, false, true
	case 'g':
		return c.ShortDatePattern + " " + c.ShortTimePattern, false, true
	case 'G':
		return c.ShortDatePattern + " " + c.LongTimePattern, false, true
	case 'M', 'm':
		return c.MonthDayPattern, false, true
	case 'O', 'o':
		return patternRoundTrip, false, true
	case 'R', 'r':
		return patternRFC1123, true, true
	case 's':
		return patternSortable, false, true
	case 't':
		return c.ShortTimePattern, false, true
	case 'T':
		return c.LongTimePattern, false, true
	case 'u':
		return patternUniversal, true, true
	case 'U':
		return c.LongDatePattern + " " + c.LongTimePattern, true, true
	case 'Y', 'y':
		return c.YearMonthPattern, false, true
	}

	return "", false, false
}

// runLength counts how often rs[i] repeats starting at i.
func runLength(rs []rune, i int) int {
	n := 1
	for i+n < len(rs) && rs[i+n] == rs[i] {
		n++
	}

	return n
}

// layoutTime interprets a custom date pattern (yyyy, MM, dd, HH, mm, ss,
// fff, tt, zzz, K, quoted literals).
func layoutTime(t time.Time, pattern string, c *Culture) string {
	var b strings.Builder
	rs := []rune(pattern)

	for i := 0; i < len(rs); {
		r := rs[i]
		n := runLength(rs, i)

		switch r {
		case 'y':
			y := t.Year()
			if n <= 2 {
				y %= 100
			}
			b.WriteString(zeroPad(strconv.Itoa(y), n))
		case 'M':
			switch {
			case n >= 4:
				b.WriteString(t.Month().String())
			case n == 3:
				b.WriteString(t.Month().String()[:3])
			default:
				b.WriteString(zeroPad(strconv.Itoa(int(t.Month())), n))
			}
		case 'd':
			switch {
			case n >= 4:
				b.WriteString(t.Weekday().String())
			case n == 3:
				b.WriteString(t.Weekday().String()[:3])
			default:
				b.WriteString(zeroPad(strconv.Itoa(t.Day()), n))
			}
		case 'h':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			b.WriteString(zeroPad(strconv.Itoa(h), min(n, 2)))
		case 'H':
			b.WriteString(zeroPad(strconv.Itoa(t.Hour()), min(n, 2)))
		case 'm':
			b.WriteString(zeroPad(strconv.Itoa(t.Minute()), min(n, 2)))
		case 's':
			b.WriteString(zeroPad(strconv.Itoa(t.Second()), min(n, 2)))
		case 'f', 'F':
			writeFraction(&b, t.Nanosecond(), min(n, 7), r == 'F')
		case 't':
			d := c.AMDesignator
			if t.Hour() >= 12 {
				d = c.PMDesignator
			}
			if n == 1 && d != "" {
				d = d[:1]
			}
			b.WriteString(d)
		case 'z':
			writeOffset(&b, t, n)
		case 'K':
			if t.Location() == time.UTC {
				b.WriteByte('Z')
			} else {
				writeOffset(&b, t, 3)
			}
			n = 1
		case 'g':
			b.WriteString("A.D.")
		case ':':
			b.WriteByte(':')
			n = 1
		case '/':
			b.WriteByte('/')
			n = 1
		case '\'', '"':
			j := i + 1
			for j < len(rs) && rs[j] != r {
				b.WriteRune(rs[j])
				j++
			}
			i = j + 1
			continue
		case '\\':
			if i+1 < len(rs) {
				b.WriteRune(rs[i+1])
			}
			i += 2
			continue
		case '%':
			n = 1
		default:
			for k := 0; k < n; k++ {
				b.WriteRune(r)
			}
		}
		i += n
	}

	return b.String()
}

// writeFraction writes the leading digits of the sub-second part. With
// trim set, trailing zeros are dropped and a dangling '.' is removed.
func writeFraction(b *strings.Builder, nanos, digits int, trim bool) {
	s := zeroPad(strconv.Itoa(nanos), 9)[:digits]
	if trim {
		s = strings.TrimRight(s, "0")
		if s == "" {
			cur := b.String()
			if strings.HasSuffix(cur, ".") {
				b.Reset()
				b.WriteString(cur[:len(cur)-1])
			}
			return
		}
	}
	b.WriteString(s)
}

func writeOffset(b *strings.Builder, t time.Time, n int) {
	_, off := t.Zone()
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	h, m := off/3600, (off%3600)/60

	b.WriteByte(sign)
	switch {
	case n == 1:
		b.WriteString(strconv.Itoa(h))
	case n == 2:
		b.WriteString(zeroPad(strconv.Itoa(h), 2))
	default:
		b.WriteString(zeroPad(strconv.Itoa(h), 2))
		b.WriteByte(':')
		b.WriteString(zeroPad(strconv.Itoa(m), 2))
	}
}

// ticksPerSecond is the resolution of the fractional part in duration
// output: seven digits, 100ns each.
const ticksPerSecond = int64(time.Second / 100)

type durationParts struct {
	neg                  bool
	days, hours, minutes int64
	seconds, ticks       int64
}

func splitDuration(d time.Duration) durationParts {
	var p durationParts
	ns := int64(d)
	if ns < 0 {
		p.neg = true
	}
	u := uint64(ns)
	if p.neg {
		u = uint64(-(ns + 1)) + 1
	}

	ticks := u / 100
	p.ticks = int64(ticks % uint64(ticksPerSecond))
	secs := ticks / uint64(ticksPerSecond)
	p.seconds = int64(secs % 60)
	p.minutes = int64((secs / 60) % 60)
	p.hours = int64((secs / 3600) % 24)
	p.days = int64(secs / 86400)

	return p
}

// formatDuration renders the constant form [-][d.]hh:mm:ss[.fffffff] by
// default; g and G select the general short and long forms, anything else
// is a custom pattern.
func formatDuration(d time.Duration, spec string, c *Culture) (string, error) {
	p := splitDuration(d)
	var b strings.Builder
	if p.neg {
		b.WriteString(c.NegativeSign)
	}

	switch spec {
	case "", "c", "t", "T":
		if p.days > 0 {
			b.WriteString(strconv.FormatInt(p.days, 10))
			b.WriteByte('.')
		}
		writeClock(&b, p, 2)
		if p.ticks > 0 {
			b.WriteByte('.')
			b.WriteString(zeroPad(strconv.FormatInt(p.ticks, 10), 7))
		}
	case "g":
		if p.days > 0 {
			b.WriteString(strconv.FormatInt(p.days, 10))
			b.WriteByte(':')
		}
		writeClock(&b, p, 1)
		if p.ticks > 0 {
			b.WriteString(c.decimalSep)
			b.WriteString(strings.TrimRight(zeroPad(strconv.FormatInt(p.ticks, 10), 7), "0"))
		}
	case "G":
		b.WriteString(strconv.FormatInt(p.days, 10))
		b.WriteByte(':')
		writeClock(&b, p, 2)
		b.WriteString(c.decimalSep)
		b.WriteString(zeroPad(strconv.FormatInt(p.ticks, 10), 7))
	default:
		b.WriteString(layoutDuration(p, spec))
	}

	return b.String(), nil
}

func writeClock(b *strings.Builder, p durationParts, hourWidth int) {
	b.WriteString(zeroPad(strconv.FormatInt(p.hours, 10), hourWidth))
	b.WriteByte(':')
	b.WriteString(zeroPad(strconv.FormatInt(p.minutes, 10), 2))
	b.WriteByte(':')
	b.WriteString(zeroPad(strconv.FormatInt(p.seconds, 10), 2))
}

// layoutDuration interprets d, h, m, s, f and F runs; other characters are
// copied through.
func layoutDuration(p durationParts, pattern string) string {
	var b strings.Builder
	rs := []rune(pattern)

	for i := 0; i < len(rs); {
		r := rs[i]
		n := runLength(rs, i)

		switch r {
		case 'd':
			b.WriteString(zeroPad(strconv.FormatInt(p.days, 10), n))
		case 'h':
			b.WriteString(zeroPad(strconv.FormatInt(p.hours, 10), min(n, 2)))
		case 'm':
			b.WriteString(zeroPad(strconv.FormatInt(p.minutes, 10), min(n, 2)))
		case 's':
			b.WriteString(zeroPad(strconv.FormatInt(p.seconds, 10), min(n, 2)))
		case 'f', 'F':
			writeFraction(&b, int(p.ticks*100), min(n, 7), r == 'F')
		case '\'', '"':
			j := i + 1
			for j < len(rs) && rs[j] != r {
				b.WriteRune(rs[j])
				j++
			}
			i = j + 1
			continue
		case '\\':
			if i+1 < len(rs) {
				b.WriteRune(rs[i+1])
			}
			i += 2
			continue
		case '%':
			n = 1
		default:
			for k := 0; k < n; k++ {
				b.WriteRune(r)
			}
		}
		i += n
	}

	return b.String()
}
