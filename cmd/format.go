package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pformat/internal/values"
)

var formatCmd = &cobra.Command{
	Use:     "format TEMPLATE [ARG...]",
	Aliases: []string{"f"},
	Short:   "Apply one pass of arguments to a template",
	Long: `Apply the arguments to the template once. Placeholders whose index is
not covered by an argument are renumbered and kept in the output.

Examples:
  pformat format "{0} {2:yyyy-MM-dd} {1}" 42
  pformat format "{0} {0:yyyy-MM-dd}" time:1992-02-18
  pformat format "{0,10:C2}|{1}" 1234.5 --culture de-DE
  pformat format --legacy "{0} {1} {2}" 42`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

var formatFlags *StandardFlags

func init() {
	rootCmd.AddCommand(formatCmd)

	formatFlags = AddStandardFlags(formatCmd, "format")
}

func runFormat(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	typed, err := values.ParseAll(args[1:])
	if err != nil {
		return err
	}

	f := s.formatter()
	apply := f.Format
	if formatFlags.Legacy {
		apply = f.FormatWith
	}

	result, err := apply(args[0], typed...)
	if err != nil {
		s.logger.Error(cmd.Context(), err, "Format failed", "template", args[0])
		return fmt.Errorf("format: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)

	return nil
}
