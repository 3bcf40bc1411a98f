// Package values turns command-line argument strings into typed values
// for formatting. An optional prefix selects the type:
//
//	int:42  float:1.5  bool:true  time:1992-02-18  dur:50s  str:007
//
// Without a prefix, integers, floats and RFC3339 timestamps are detected
// and everything else stays a string.
package values

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Kind names a supported prefix.
type Kind string

const (
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindTime     Kind = "time"
	KindDuration Kind = "dur"
	KindString   Kind = "str"
)

// ParseError reports an argument whose prefix and payload disagree.
type ParseError struct {
	Arg  string
	Kind Kind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("argument %q is not a valid %s: %v", e.Arg, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts a single argument.
func Parse(arg string) (any, error) {
	kind, payload, ok := strings.Cut(arg, ":")
	if !ok {
		return detect(arg), nil
	}

	var (
		v   any
		err error
	)
	switch Kind(kind) {
	case KindInt:
		v, err = cast.ToInt64E(payload)
	case KindFloat:
		v, err = cast.ToFloat64E(payload)
	case KindBool:
		v, err = cast.ToBoolE(payload)
	case KindTime:
		var t time.Time
		t, err = cast.ToTimeInDefaultLocationE(payload, time.UTC)
		v = t
	case KindDuration:
		v, err = cast.ToDurationE(payload)
	case KindString:
		return payload, nil
	default:
		return detect(arg), nil
	}
	if err != nil {
		return nil, &ParseError{Arg: arg, Kind: Kind(kind), Err: err}
	}

	return v, nil
}

// ParseAll converts every argument, stopping at the first failure.
func ParseAll(args []string) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		v, err := Parse(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// FromYAML normalizes a value decoded from a job file. Strings go through
// Parse so that prefixes work there too; YAML integers become int64.
func FromYAML(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return Parse(x)
	case int:
		return int64(x), nil
	case uint64:
		return x, nil
	case time.Time:
		return x, nil
	case nil, bool, int64, float64:
		return x, nil
	default:
		return cast.ToStringE(x)
	}
}

func detect(arg string) any {
	if i, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil && !strings.ContainsAny(arg, "nN") {
		return f
	}
	if t, err := time.Parse(time.RFC3339, arg); err == nil {
		return t
	}

	return arg
}
