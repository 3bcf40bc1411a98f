package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/conneroisu/pformat/pkg/pformat"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect TEMPLATE",
	Aliases: []string{"i"},
	Short:   "List the placeholders of a template",
	Long: `List every {index[,alignment][:spec]} placeholder of the template in
document order with its byte span, and the number of arguments needed to
fill it completely.

Examples:
  pformat inspect "{0}, {1:C2}, {1,10}"
  pformat inspect "{12,-15:yyyy-MM-dd}" -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectFlags *StandardFlags

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectFlags = AddStandardFlags(inspectCmd, "output")
}

type inspectReport struct {
	Template     string                `json:"template" yaml:"template"`
	Arity        int                   `json:"arity" yaml:"arity"`
	Placeholders []pformat.Placeholder `json:"placeholders" yaml:"placeholders"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	phs, err := pformat.Placeholders(args[0])
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	report := inspectReport{Template: args[0], Placeholders: phs}
	for _, ph := range phs {
		report.Arity = max(report.Arity, ph.Index+1)
	}

	w := cmd.OutOrStdout()
	if inspectFlags.Quiet {
		_, err := fmt.Fprintln(w, report.Arity)
		return err
	}

	switch inspectFlags.OutputFormat {
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

	return outputTable(w, report)
}

func outputTable(out io.Writer, report inspectReport) error {
	if len(report.Placeholders) == 0 {
		_, err := fmt.Fprintln(out, "No placeholders found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tALIGN\tSPEC\tSPAN\tTOKEN")
	fmt.Fprintln(w, "-----\t-----\t----\t----\t-----")
	for _, ph := range report.Placeholders {
		align := "-"
		if ph.HasAlignment {
			align = strconv.Itoa(ph.Alignment)
		}
		spec := ph.Spec
		if spec == "" {
			spec = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d-%d\t%s\n", ph.Index, align, spec, ph.Start, ph.End, ph.Raw)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d placeholder(s), %d argument(s) to fill\n", len(report.Placeholders), report.Arity)
	return err
}
