package pformat

import (
	"strconv"
	"strings"
)

// MaxAlignment bounds the absolute field width of a placeholder.
const MaxAlignment = 1_000_000

// Placeholder is one parsed {index[,alignment][:spec]} token.
type Placeholder struct {
	Index        int    `json:"index" yaml:"index"`
	Alignment    int    `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	HasAlignment bool   `json:"has_alignment" yaml:"has_alignment"`
	Spec         string `json:"spec,omitempty" yaml:"spec,omitempty"`
	Start        int    `json:"start" yaml:"start"`
	End          int    `json:"end" yaml:"end"`
	Raw          string `json:"raw" yaml:"raw"`

	alignText string
}

// String re-encodes the placeholder, keeping the alignment text as written.
func (p Placeholder) String() string {
	return p.encode(p.Index)
}

// encode writes the placeholder with a different index. Alignment and spec
// are carried over verbatim so a rewritten token renders exactly like the
// original would have.
func (p Placeholder) encode(index int) string {
	var b strings.Builder
	b.Grow(len(p.Raw) + 4)
	b.WriteByte('{')
	b.WriteString(strconv.Itoa(index))
	if p.HasAlignment {
		b.WriteByte(',')
		if p.alignText != "" {
			b.WriteString(p.alignText)
		} else {
			b.WriteString(strconv.Itoa(p.Alignment))
		}
	}
	if p.Spec != "" {
		b.WriteByte(':')
		b.WriteString(p.Spec)
	}
	b.WriteByte('}')

	return b.String()
}

// Placeholders lists the full-grammar placeholders of template in document
// order.
func Placeholders(template string) ([]Placeholder, error) {
	return fullGrammar.parseAll(template)
}

func parse(raw rawToken) (Placeholder, error) {
	idx, err := strconv.Atoi(raw.index)
	if err != nil {
		return Placeholder{}, malformedIndex(raw, err)
	}
	if idx < 0 {
		return Placeholder{}, &IndexRangeError{Index: idx, Token: raw.text, Offset: raw.start}
	}

	ph := Placeholder{
		Index: idx,
		Spec:  raw.spec,
		Start: raw.start,
		End:   raw.end,
		Raw:   raw.text,
	}

	if raw.alignment != "" {
		align, err := strconv.Atoi(raw.alignment)
		if err != nil {
			return Placeholder{}, malformedAlignment(raw, err)
		}
		if align > MaxAlignment || align < -MaxAlignment {
			return Placeholder{}, malformedAlignment(raw, strconv.ErrRange)
		}
		ph.Alignment = align
		ph.HasAlignment = true
		ph.alignText = raw.alignment
	}

	return ph, nil
}
