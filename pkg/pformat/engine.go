package pformat

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Formatter applies arguments to placeholder templates. The zero value is
// not usable; build one with New. A Formatter is immutable and safe for
// concurrent use.
type Formatter struct {
	culture *Culture
	mode    ReplaceMode
	logger  *slog.Logger
}

// New returns a Formatter using EnglishUS and ReplaceBySpan unless
// overridden by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		culture: EnglishUS,
		mode:    ReplaceBySpan,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Culture returns the formatter's culture.
func (f *Formatter) Culture() *Culture { return f.culture }

// Mode returns the formatter's FormatWith replacement mode.
func (f *Formatter) Mode() ReplaceMode { return f.mode }

// Format fills the placeholders of template whose index is below
// len(args) and renumbers the rest by subtracting len(args), keeping their
// alignment and spec. The result is itself a template, so
//
//	Format(Format(t, a...), b...) == Format(t, append(a, b...)...)
//
// A blank template yields "" and no arguments yield the template unchanged.
func (f *Formatter) Format(template string, args ...any) (string, error) {
	if isBlank(template) {
		return "", nil
	}
	if len(args) == 0 {
		return template, nil
	}

	return f.substitute(template, fullGrammar.scan(template), args, false)
}

// FormatWith is the index-only variant. When the template has no more {n}
// tokens than arguments it is formatted in one go; otherwise the i-th
// token in document order receives the plain text of args[i] and the
// remaining tokens become {0}, {1}, ... in order. Neither path unescapes
// {{ or }}; doubled braces stay literal text around any token they enclose.
func (f *Formatter) FormatWith(template string, args ...any) (string, error) {
	if isBlank(template) {
		return "", nil
	}
	if len(args) == 0 {
		return template, nil
	}

	raws := indexGrammar.scan(template)
	if len(raws) <= len(args) {
		return f.substitute(template, fullGrammar.scan(template), args, true)
	}

	for _, raw := range raws {
		if _, err := parse(raw); err != nil {
			return "", err
		}
	}

	if f.mode == ReplaceByValue {
		return f.replaceByValue(template, raws, args), nil
	}

	return f.replaceBySpan(template, raws, args), nil
}

// Chain applies each pass with Format in turn and returns every
// intermediate result; the last element is the final output.
func (f *Formatter) Chain(template string, passes ...[]any) ([]string, error) {
	results := make([]string, 0, len(passes))
	cur := template
	for i, pass := range passes {
		next, err := f.Format(cur, pass...)
		if err != nil {
			return results, &PassError{Pass: i, Err: err}
		}
		results = append(results, next)
		cur = next
	}

	return results, nil
}

// PassError wraps the failure of one Chain pass.
type PassError struct {
	Pass int
	Err  error
}

// Error implements the error interface.
func (e *PassError) Error() string {
	return "pass " + strconv.Itoa(e.Pass+1) + ": " + e.Err.Error()
}

// Unwrap returns the pass failure.
func (e *PassError) Unwrap() error {
	return e.Err
}

// substitute rewrites raws in document order. Tokens addressing an
// argument are rendered; the others are renumbered, unless strict is set,
// in which case they are an IndexRangeError.
func (f *Formatter) substitute(template string, raws []rawToken, args []any, strict bool) (string, error) {
	if len(raws) == 0 {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, raw := range raws {
		ph, err := parse(raw)
		if err != nil {
			return "", err
		}

		b.WriteString(template[last:raw.start])
		last = raw.end

		if ph.Index < len(args) {
			s, err := Render(args[ph.Index], ph.Spec, ph.Alignment, f.culture)
			if err != nil {
				return "", locate(err, raw)
			}
			b.WriteString(s)
			continue
		}

		if strict {
			return "", &IndexRangeError{Index: ph.Index, Args: len(args), Token: raw.text, Offset: raw.start}
		}

		next := ph.Index - len(args)
		b.WriteString(ph.encode(next))
		f.renumbered(raw, next)
	}
	b.WriteString(template[last:])

	return b.String(), nil
}

func (f *Formatter) replaceBySpan(template string, raws []rawToken, args []any) string {
	var b strings.Builder
	b.Grow(len(template))
	last, next := 0, 0
	for i, raw := range raws {
		b.WriteString(template[last:raw.start])
		last = raw.end

		if i < len(args) {
			b.WriteString(f.plainText(args[i]))
			continue
		}
		b.WriteString("{" + strconv.Itoa(next) + "}")
		f.renumbered(raw, next)
		next++
	}
	b.WriteString(template[last:])

	return b.String()
}

func (f *Formatter) replaceByValue(template string, raws []rawToken, args []any) string {
	buf := template
	next := 0
	for i, raw := range raws {
		if i < len(args) {
			buf = strings.ReplaceAll(buf, raw.text, f.plainText(args[i]))
			continue
		}
		buf = strings.ReplaceAll(buf, raw.text, "{"+strconv.Itoa(next)+"}")
		f.renumbered(raw, next)
		next++
	}

	return buf
}

// plainText is the spec-less conversion used by the FormatWith partial
// path.
func (f *Formatter) plainText(value any) string {
	s, err := convert(value, "", f.culture)
	if err != nil {
		return ""
	}

	return s
}

func (f *Formatter) renumbered(raw rawToken, next int) {
	if f.logger == nil {
		return
	}
	f.logger.Debug("placeholder renumbered",
		slog.String("token", raw.text),
		slog.Int("offset", raw.start),
		slog.Int("new_index", next),
	)
}

// locate attaches the token position to a render failure.
func locate(err error, raw rawToken) error {
	var fe *FormatError
	if errors.As(err, &fe) && fe.Token == "" {
		located := *fe
		located.Token = raw.text
		located.Offset = raw.start
		return &located
	}

	return err
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

var std = New()

// Format applies args with the default Formatter. See Formatter.Format.
func Format(template string, args ...any) (string, error) {
	return std.Format(template, args...)
}

// FormatWith applies args with the default Formatter. See
// Formatter.FormatWith.
func FormatWith(template string, args ...any) (string, error) {
	return std.FormatWith(template, args...)
}

// MustFormat is like Format but panics if the template cannot be parsed.
func MustFormat(template string, args ...any) string {
	s, err := std.Format(template, args...)
	if err != nil {
		panic(err)
	}

	return s
}

// Chain applies successive passes with the default Formatter.
func Chain(template string, passes ...[]any) ([]string, error) {
	return std.Chain(template, passes...)
}
