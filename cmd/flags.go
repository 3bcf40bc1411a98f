package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Formatting flags
	Legacy bool `flag:"legacy" desc:"Use the index-only FormatWith variant" default:"false"`

	// Job flags
	JobFile string `flag:"file,f" desc:"Job file (YAML)" default:""`

	// Output flags
	OutputFormat string `flag:"output,o" desc:"Output format (text|table|json|yaml)" default:"text"`
	Quiet        bool   `flag:"quiet,q" desc:"Print only the final result" default:"false"`
}

var outputFormats = map[string][]string{
	"chain":   {"text", "json", "yaml"},
	"inspect": {"table", "json", "yaml"},
	"watch":   {"text", "json", "yaml"},
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "format":
			cmd.Flags().BoolVar(&flags.Legacy, "legacy", false, "Use the index-only FormatWith variant")
		case "job":
			cmd.Flags().StringVarP(&flags.JobFile, "file", "f", "", "Job file (YAML)")
		case "output":
			formats := outputFormats[cmd.Name()]
			cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", formats[0],
				"Output format ("+strings.Join(formats, "|")+")")
			cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Print only the final result")
			AddFlagValidation(cmd, "output", func(format string) error {
				return ValidateFormatWithSuggestion(format, formats)
			})
		}
	}

	return flags
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}

	return v.Value.Set(val)
}

// ValidateFormatWithSuggestion rejects formats outside valid and names the
// accepted ones.
func ValidateFormatWithSuggestion(format string, valid []string) error {
	if slices.Contains(valid, format) {
		return nil
	}

	return fmt.Errorf("invalid output format %q, must be one of: %s", format, strings.Join(valid, ", "))
}

// ValidateFileExists checks that a required file is present.
func ValidateFileExists(filename string) error {
	if filename == "" {
		return fmt.Errorf("no file given")
	}

	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	return nil
}
