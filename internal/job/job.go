// Package job runs YAML job files: a template plus the argument passes to
// apply to it one after another.
//
//	template: "{0} {2:yyyy-MM-dd} {1}"
//	passes:
//	  - [42]
//	  - ["dur:50s"]
//	  - ["time:1992-02-18"]
//
// Each run also formats the template once with every argument so the
// chained output can be compared against it.
package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/pformat/internal/logging"
	"github.com/conneroisu/pformat/internal/values"
	"github.com/conneroisu/pformat/pkg/pformat"
)

// Job is the decoded job file.
type Job struct {
	Template    string  `yaml:"template" json:"template"`
	Legacy      bool    `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	Culture     string  `yaml:"culture,omitempty" json:"culture,omitempty"`
	ReplaceMode string  `yaml:"replace_mode,omitempty" json:"replace_mode,omitempty"`
	Passes      [][]any `yaml:"passes" json:"passes"`
}

// Result is the outcome of Run.
type Result struct {
	Passes    []string `yaml:"passes" json:"passes"`
	Oracle    string   `yaml:"oracle" json:"oracle"`
	Converged bool     `yaml:"converged" json:"converged"`
}

var ErrNoTemplate = errors.New("job has no template")

// Decode reads a job from r, rejecting unknown keys.
func Decode(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var j Job
	if err := dec.Decode(&j); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTemplate
		}
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if j.Template == "" {
		return nil, ErrNoTemplate
	}
	for i, pass := range j.Passes {
		for k, v := range pass {
			nv, err := values.FromYAML(v)
			if err != nil {
				return nil, fmt.Errorf("pass %d argument %d: %w", i+1, k+1, err)
			}
			pass[k] = nv
		}
	}

	return &j, nil
}

// Load opens and decodes the job file at path.
func Load(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	j, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return j, nil
}

// Options layers the job's own culture and replace mode over base.
func (j *Job) Options(base ...pformat.Option) ([]pformat.Option, error) {
	opts := append([]pformat.Option(nil), base...)
	if j.Culture != "" {
		c, err := pformat.ParseCulture(j.Culture)
		if err != nil {
			return nil, fmt.Errorf("culture: %w", err)
		}
		opts = append(opts, pformat.WithCulture(c))
	}
	if j.ReplaceMode != "" {
		mode, ok := pformat.ParseReplaceMode(j.ReplaceMode)
		if !ok {
			return nil, fmt.Errorf("unknown replace mode %q", j.ReplaceMode)
		}
		opts = append(opts, pformat.WithReplaceMode(mode))
	}

	return opts, nil
}

// Runner executes jobs with a fixed set of base options.
type Runner struct {
	base   []pformat.Option
	logger logging.Logger
}

// NewRunner creates a Runner; base options are applied before each job's
// own settings.
func NewRunner(logger logging.Logger, base ...pformat.Option) *Runner {
	return &Runner{base: base, logger: logger.WithComponent("job")}
}

// Run applies every pass in order and compares the last result with a
// single application of all arguments.
func (r *Runner) Run(ctx context.Context, j *Job) (*Result, error) {
	opts, err := j.Options(r.base...)
	if err != nil {
		return nil, err
	}
	f := pformat.New(opts...)
	apply := f.Format
	if j.Legacy {
		apply = f.FormatWith
	}

	perf := logging.StartOperation(r.logger, "run")

	res := &Result{Passes: make([]string, 0, len(j.Passes))}
	cur := j.Template
	var all []any
	for i, pass := range j.Passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := apply(cur, pass...)
		if err != nil {
			perf.EndWithError(ctx, err)
			return nil, &pformat.PassError{Pass: i, Err: err}
		}
		r.logger.Debug(ctx, "pass applied", "pass", i+1, "args", len(pass), "result", next)
		res.Passes = append(res.Passes, next)
		cur = next
		all = append(all, pass...)
	}

	res.Oracle, err = apply(j.Template, all...)
	if err != nil {
		perf.EndWithError(ctx, err)
		return nil, fmt.Errorf("single pass: %w", err)
	}
	res.Converged = cur == res.Oracle

	perf.End(ctx, "passes", len(j.Passes), "converged", res.Converged)

	return res, nil
}
