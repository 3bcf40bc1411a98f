package pformat

import (
	"regexp"
)

// grammar is one placeholder dialect. Both dialects share the scanning and
// parsing code; they only differ in what the pattern captures.
type grammar struct {
	name     string
	re       *regexp.Regexp
	extended bool
}

var (
	// fullGrammar matches {index[,alignment][:spec]}, e.g. {0}, {1:C2},
	// {1,10}, {1,-15:yyyy-MM-dd}.
	fullGrammar = &grammar{
		name:     "full",
		re:       regexp.MustCompile(`\{(\d+)(?:,(-?\d+))?(?::([^}\r\n]+))?\}`),
		extended: true,
	}

	// indexGrammar matches the legacy {index} form only.
	indexGrammar = &grammar{
		name: "index",
		re:   regexp.MustCompile(`\{(\d+)\}`),
	}
)

// rawToken is a scanned but not yet validated placeholder.
type rawToken struct {
	start, end int
	text       string
	index      string
	alignment  string
	spec       string
}

// scan returns every non-overlapping match in document order.
func (g *grammar) scan(template string) []rawToken {
	locs := g.re.FindAllStringSubmatchIndex(template, -1)
	if len(locs) == 0 {
		return nil
	}

	tokens := make([]rawToken, 0, len(locs))
	for _, loc := range locs {
		tok := rawToken{
			start: loc[0],
			end:   loc[1],
			text:  template[loc[0]:loc[1]],
			index: template[loc[2]:loc[3]],
		}
		if g.extended {
			tok.alignment = group(template, loc, 2)
			tok.spec = group(template, loc, 3)
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// parseAll scans and validates every placeholder of template.
func (g *grammar) parseAll(template string) ([]Placeholder, error) {
	raws := g.scan(template)
	phs := make([]Placeholder, 0, len(raws))
	for _, raw := range raws {
		ph, err := parse(raw)
		if err != nil {
			return nil, err
		}
		phs = append(phs, ph)
	}

	return phs, nil
}

func group(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}

	return s[loc[2*n]:loc[2*n+1]]
}
