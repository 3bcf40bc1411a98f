package pformat

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const maxPrecision = 99

type numKind int

const (
	numInt numKind = iota
	numUint
	numFloat
)

// numeric is a value of any integer or float kind, including named types.
type numeric struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
	bits int
}

func toNumeric(value any) (numeric, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numeric{kind: numInt, i: rv.Int(), bits: rv.Type().Bits()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numeric{kind: numUint, u: rv.Uint(), bits: rv.Type().Bits()}, true
	case reflect.Float32, reflect.Float64:
		return numeric{kind: numFloat, f: rv.Float(), bits: rv.Type().Bits()}, true
	}

	return numeric{}, false
}

func (n numeric) negative() bool {
	switch n.kind {
	case numInt:
		return n.i < 0
	case numFloat:
		return n.f < 0
	}

	return false
}

func (n numeric) float() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	}

	return n.f
}

// absDigits returns the decimal digits of |n| for integer kinds.
func (n numeric) absDigits() string {
	if n.kind == numUint {
		return strconv.FormatUint(n.u, 10)
	}
	if n.i < 0 {
		return strconv.FormatUint(uint64(-(n.i+1))+1, 10)
	}

	return strconv.FormatInt(n.i, 10)
}

// absValue is what the locale printer gets: integers stay exact.
func (n numeric) absValue() any {
	switch n.kind {
	case numInt:
		if n.i < 0 {
			return uint64(-(n.i + 1)) + 1
		}
		return n.i
	case numUint:
		return n.u
	}

	return math.Abs(n.f)
}

// standardSpec is a single letter with an optional precision, e.g. "N2".
type standardSpec struct {
	letter    byte
	precision int
	explicit  bool
}

func parseStandardSpec(spec string) (standardSpec, bool) {
	if spec == "" || len(spec) > 3 {
		return standardSpec{}, false
	}
	switch spec[0] | 0x20 {
	case 'c', 'd', 'e', 'f', 'g', 'n', 'p', 'r', 'x':
	default:
		return standardSpec{}, false
	}

	ss := standardSpec{letter: spec[0], precision: -1}
	if len(spec) > 1 {
		p, err := strconv.Atoi(spec[1:])
		if err != nil || p < 0 || p > maxPrecision {
			return standardSpec{}, false
		}
		ss.precision = p
		ss.explicit = true
	}

	return ss, true
}

func (ss standardSpec) prec(def int) int {
	if ss.explicit {
		return ss.precision
	}

	return def
}

func formatNumber(n numeric, value any, spec string, c *Culture) (string, error) {
	if spec == "" {
		s := fmt.Sprint(value)
		if _, ok := value.(fmt.Stringer); !ok && n.kind == numFloat {
			s = c.localize(s)
		}
		return s, nil
	}

	if n.kind == numFloat && (math.IsNaN(n.f) || math.IsInf(n.f, 0)) {
		switch {
		case math.IsNaN(n.f):
			return "NaN", nil
		case n.f < 0:
			return c.NegativeSign + "∞", nil
		}
		return "∞", nil
	}

	ss, ok := parseStandardSpec(spec)
	if !ok {
		return formatCustomNumber(n, spec, c)
	}

	var body string
	neg := n.negative()

	switch ss.letter | 0x20 {
	case 'c':
		body = c.CurrencySymbol + c.printer.Sprint(decimal(n.absValue(), ss.prec(2)))
	case 'd':
		if n.kind == numFloat {
			return "", unsupportedSpec(spec, value)
		}
		body = zeroPad(n.absDigits(), ss.prec(0))
	case 'e':
		body = c.localize(exponential(math.Abs(n.float()), ss.prec(6), ss.letter == 'E'))
	case 'f':
		body = fixed(n, ss.prec(2), c)
	case 'g':
		body = general(n, ss, c)
	case 'n':
		body = c.printer.Sprint(decimal(n.absValue(), ss.prec(2)))
	case 'p':
		body = c.printer.Sprint(decimal(math.Abs(n.float())*100, ss.prec(2))) + c.PercentSymbol
	case 'r':
		body = general(n, standardSpec{letter: ss.letter, precision: -1}, c)
	case 'x':
		if n.kind == numFloat {
			return "", unsupportedSpec(spec, value)
		}
		return hex(n, ss.prec(0), ss.letter == 'X'), nil
	}

	if neg && !isZeroText(body) {
		return c.NegativeSign + body, nil
	}

	return body, nil
}

func zeroPad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}

	return strings.Repeat("0", width-len(digits)) + digits
}

func fixed(n numeric, prec int, c *Culture) string {
	if n.kind != numFloat {
		s := n.absDigits()
		if prec > 0 {
			s += c.decimalSep + strings.Repeat("0", prec)
		}
		return s
	}

	return c.localize(strconv.FormatFloat(math.Abs(n.f), 'f', prec, 64))
}

// exponential renders d.ddd…E+ddd with at least three exponent digits.
func exponential(f float64, prec int, upper bool) string {
	s := strconv.FormatFloat(f, 'e', prec, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = zeroPad(exp[1:], 3)
	e := "e"
	if upper {
		e = "E"
	}

	return mant + e + sign + exp
}

func general(n numeric, ss standardSpec, c *Culture) string {
	bits := n.bits
	if n.kind != numFloat {
		// Integers switch to scientific notation only when they have more
		// digits than an explicit precision allows.
		digits := n.absDigits()
		if !ss.explicit || ss.precision == 0 || len(digits) <= ss.precision {
			return digits
		}
		bits = 64
	}

	f := math.Abs(n.float())
	if bits == 0 {
		bits = 64
	}

	var s string
	switch {
	case ss.explicit && ss.precision > 0:
		s = strconv.FormatFloat(f, 'G', ss.precision, bits)
	case f == 0:
		s = "0"
	default:
		exp := math.Floor(math.Log10(f))
		if exp >= 15 || exp < -5 {
			s = strconv.FormatFloat(f, 'E', -1, bits)
		} else {
			s = strconv.FormatFloat(f, 'f', -1, bits)
		}
	}
	if ss.letter == 'g' {
		s = strings.ToLower(s)
	}

	return c.localize(s)
}

func hex(n numeric, width int, upper bool) string {
	var u uint64
	if n.kind == numUint {
		u = n.u
	} else {
		u = uint64(n.i)
		if n.bits < 64 {
			u &= (1 << uint(n.bits)) - 1
		}
	}

	s := strconv.FormatUint(u, 16)
	if upper {
		s = strings.ToUpper(s)
	}

	return zeroPad(s, width)
}

func isZeroText(s string) bool {
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return false
		}
	}

	return true
}

// groupDigits inserts sep every three digits from the right.
func groupDigits(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// numToken is a digit placeholder ('0' or '#') or, when digit is zero,
// literal text sitting between placeholders.
type numToken struct {
	digit byte
	lit   string
}

// numExponent is the E+00 part of a scientific custom pattern.
type numExponent struct {
	letter byte
	plus   bool
	digits int
}

// numPattern is one section of a custom numeric pattern such as
// "#,##0.00", "000-00-0000" or "0.0E+00".
type numPattern struct {
	prefix     string
	suffix     string
	intTokens  []numToken
	fracTokens []numToken
	exp        *numExponent
	intDigits  int
	minInt     int
	minFrac    int
	maxFrac    int
	group      bool
	percent    bool
	digits     bool
}

func parseNumPattern(section string) (numPattern, error) {
	var p numPattern
	var lit strings.Builder
	seenDigit, inFrac := false, false

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		s := lit.String()
		lit.Reset()
		switch {
		case p.exp != nil:
			p.suffix += s
		case !seenDigit:
			p.prefix += s
		case inFrac:
			p.fracTokens = append(p.fracTokens, numToken{lit: s})
		default:
			p.intTokens = append(p.intTokens, numToken{lit: s})
		}
	}

	rs := []rune(section)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch r {
		case '0', '#':
			if p.exp != nil {
				lit.WriteRune(r)
				continue
			}
			flush()
			seenDigit = true
			tok := numToken{digit: byte(r)}
			if inFrac {
				p.fracTokens = append(p.fracTokens, tok)
			} else {
				p.intTokens = append(p.intTokens, tok)
			}
		case '.':
			if inFrac || p.exp != nil {
				lit.WriteRune(r)
				continue
			}
			flush()
			seenDigit = true
			inFrac = true
		case ',':
			if seenDigit && !inFrac && p.exp == nil {
				p.group = true
				continue
			}
			lit.WriteRune(r)
		case '%':
			p.percent = true
			lit.WriteRune(r)
		case 'E', 'e':
			if seenDigit && p.exp == nil {
				j := i + 1
				plus := false
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					plus = rs[j] == '+'
					j++
				}
				k := j
				for k < len(rs) && rs[k] == '0' {
					k++
				}
				if k > j {
					flush()
					p.exp = &numExponent{letter: byte(r), plus: plus, digits: k - j}
					i = k - 1
					continue
				}
			}
			lit.WriteRune(r)
		case '\\':
			if i+1 < len(rs) {
				i++
				lit.WriteRune(rs[i])
			}
		case '\'', '"':
			j := i + 1
			for j < len(rs) && rs[j] != r {
				j++
			}
			if j == len(rs) {
				return p, fmt.Errorf("unterminated quoted literal in %q", section)
			}
			lit.WriteString(string(rs[i+1 : j]))
			i = j
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	p.digits = seenDigit

	// Literals after the last placeholder belong to the suffix.
	if p.exp == nil {
		if inFrac {
			p.fracTokens = p.trimTrailing(p.fracTokens)
		} else {
			p.intTokens = p.trimTrailing(p.intTokens)
		}
	}

	leftmostZero := -1
	for _, tok := range p.intTokens {
		if tok.digit == 0 {
			continue
		}
		if tok.digit == '0' && leftmostZero < 0 {
			leftmostZero = p.intDigits
		}
		p.intDigits++
	}
	if leftmostZero >= 0 {
		p.minInt = p.intDigits - leftmostZero
	}
	for _, tok := range p.fracTokens {
		if tok.digit == 0 {
			continue
		}
		p.maxFrac++
		if tok.digit == '0' {
			p.minFrac = p.maxFrac
		}
	}

	return p, nil
}

func (p *numPattern) trimTrailing(toks []numToken) []numToken {
	end := len(toks)
	for end > 0 && toks[end-1].digit == 0 {
		end--
	}
	var tail strings.Builder
	for _, tok := range toks[end:] {
		tail.WriteString(tok.lit)
	}
	p.suffix = tail.String() + p.suffix

	return toks[:end]
}

// formatCustomNumber renders up to three ';' separated sections: positive,
// negative and zero. The zero section applies when the value rounds to
// zero under the section that would otherwise be used.
func formatCustomNumber(n numeric, spec string, c *Culture) (string, error) {
	sections := strings.SplitN(spec, ";", 3)
	pats := make([]numPattern, len(sections))
	for i, section := range sections {
		pat, err := parseNumPattern(section)
		if err != nil {
			return "", &FormatError{Kind: KindUnsupportedSpec, Message: err.Error()}
		}
		pats[i] = pat
	}
	if !pats[0].digits {
		return pats[0].prefix + pats[0].suffix, nil
	}

	f := math.Abs(n.float())
	pat, signed := pats[0], n.negative()
	if signed && len(sections) > 1 && sections[1] != "" {
		pat, signed = pats[1], false
	}

	s, zero := renderPattern(f, pat, c)
	if zero && len(sections) > 2 && sections[2] != "" {
		s, _ = renderPattern(0, pats[2], c)
		return s, nil
	}
	if signed && !zero {
		return c.NegativeSign + s, nil
	}

	return s, nil
}

func renderPattern(f float64, p numPattern, c *Culture) (string, bool) {
	if !p.digits {
		return p.prefix + p.suffix, f == 0
	}

	return layoutNumber(f, p, c)
}

// layoutNumber renders f with p and reports whether the rounded value is
// zero.
func layoutNumber(f float64, p numPattern, c *Culture) (string, bool) {
	if p.percent {
		f *= 100
	}

	var intPart, frac, exp string
	if p.exp != nil {
		intPart, frac, exp = scientificParts(f, p)
	} else {
		intPart, frac, _ = strings.Cut(strconv.FormatFloat(f, 'f', p.maxFrac, 64), ".")
	}
	zero := isZeroText(intPart) && isZeroText(frac)

	frac = strings.TrimRight(frac, "0")
	if len(frac) < p.minFrac {
		frac += strings.Repeat("0", p.minFrac-len(frac))
	}
	if intPart == "0" && p.minInt == 0 {
		intPart = ""
	}
	intPart = zeroPad(intPart, p.minInt)

	var b strings.Builder
	b.WriteString(p.prefix)
	b.WriteString(layoutInt(intPart, p.intTokens, p.group, c.groupSep))
	if frac != "" {
		b.WriteString(c.decimalSep)
		fi := 0
		for _, tok := range p.fracTokens {
			switch {
			case tok.digit == 0:
				b.WriteString(tok.lit)
			case fi < len(frac):
				b.WriteByte(frac[fi])
				fi++
			}
		}
	}
	b.WriteString(exp)
	b.WriteString(p.suffix)

	return b.String(), zero
}

// layoutInt fills the integer placeholders right to left. The leftmost
// placeholder takes every digit that is left over.
func layoutInt(digits string, tokens []numToken, group bool, sep string) string {
	var parts []string
	emitted := 0
	i := len(digits)
	emit := func() {
		i--
		if group && emitted > 0 && emitted%3 == 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, digits[i:i+1])
		emitted++
	}

	for t := len(tokens) - 1; t >= 0; t-- {
		switch {
		case tokens[t].digit == 0:
			parts = append(parts, tokens[t].lit)
		case t == 0:
			for i > 0 {
				emit()
			}
		case i > 0:
			emit()
		}
	}
	for i > 0 {
		emit()
	}

	var b strings.Builder
	for j := len(parts) - 1; j >= 0; j-- {
		b.WriteString(parts[j])
	}

	return b.String()
}

// scientificParts splits f into as many integer digits as the pattern has
// integer placeholders, the rounded fraction and the exponent text.
func scientificParts(f float64, p numPattern) (string, string, string) {
	n := max(p.intDigits, 1)
	mant, e, _ := strings.Cut(strconv.FormatFloat(f, 'e', n-1+p.maxFrac, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	x, _ := strconv.Atoi(e)
	if f != 0 {
		x -= n - 1
	}

	intPart := strings.TrimLeft(digits[:n], "0")
	if intPart == "" {
		intPart = "0"
	}

	sign := ""
	switch {
	case x < 0:
		sign = "-"
		x = -x
	case p.exp.plus:
		sign = "+"
	}

	return intPart, digits[n:], string(p.exp.letter) + sign + zeroPad(strconv.Itoa(x), p.exp.digits)
}
