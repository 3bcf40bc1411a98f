package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/conneroisu/pformat/internal/job"
)

var chainCmd = &cobra.Command{
	Use:     "chain -f JOB",
	Aliases: []string{"c"},
	Short:   "Run a job file pass by pass",
	Long: `Apply each pass of a job file to the template in turn, then format the
template once with all arguments and report whether both agree.

Job file:
  template: "{0} {2:yyyy-MM-dd} {1}"
  legacy: false          # true uses the index-only FormatWith variant
  culture: en-US         # optional, overrides --culture
  replace_mode: span     # optional, overrides --mode
  passes:
    - [42]
    - ["dur:50s"]
    - ["time:1992-02-18"]

Examples:
  pformat chain -f job.yaml
  pformat chain -f job.yaml -o json
  pformat chain -f job.yaml -q`,
	Args: cobra.NoArgs,
	RunE: runChain,
}

var chainFlags *StandardFlags

func init() {
	rootCmd.AddCommand(chainCmd)

	chainFlags = AddStandardFlags(chainCmd, "job", "output")
}

func runChain(cmd *cobra.Command, args []string) error {
	if err := ValidateFileExists(chainFlags.JobFile); err != nil {
		return fmt.Errorf("job file: %w", err)
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	j, err := job.Load(chainFlags.JobFile)
	if err != nil {
		return err
	}

	res, err := job.NewRunner(s.logger, s.opts...).Run(cmd.Context(), j)
	if err != nil {
		s.logger.Error(cmd.Context(), err, "Job failed", "file", chainFlags.JobFile)
		return fmt.Errorf("%s: %w", chainFlags.JobFile, err)
	}

	return outputResult(cmd.OutOrStdout(), j, res, chainFlags)
}

// chainReport is the json and yaml shape of a job result.
type chainReport struct {
	Template  string   `json:"template" yaml:"template"`
	Passes    []string `json:"passes" yaml:"passes"`
	Oracle    string   `json:"single_pass" yaml:"single_pass"`
	Converged bool     `json:"converged" yaml:"converged"`
}

func outputResult(w io.Writer, j *job.Job, res *job.Result, flags *StandardFlags) error {
	if flags.Quiet {
		final := j.Template
		if n := len(res.Passes); n > 0 {
			final = res.Passes[n-1]
		}
		_, err := fmt.Fprintln(w, final)
		return err
	}

	report := chainReport{
		Template:  j.Template,
		Passes:    res.Passes,
		Oracle:    res.Oracle,
		Converged: res.Converged,
	}

	switch flags.OutputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	fmt.Fprintf(w, "template:    %s\n", j.Template)
	for i, p := range res.Passes {
		fmt.Fprintf(w, "%-13s%s\n", fmt.Sprintf("pass %d:", i+1), p)
	}
	fmt.Fprintf(w, "single pass: %s\n", res.Oracle)
	fmt.Fprintf(w, "converged:   %t\n", res.Converged)

	return nil
}
