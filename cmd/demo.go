package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pformat/pkg/pformat"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through partial application examples",
	Long: `Print the classic walkthroughs: a full-grammar template filled one
argument at a time, and the index-only variant fed fewer arguments than it
has placeholders. The date used is 1992-02-18.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoDate = time.Date(1992, time.February, 18, 0, 0, 0, 0, time.UTC)

func runDemo(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	f := s.formatter()
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Format, one argument per pass:")
	template := "{0} {2:yyyy-MM-dd} {1}"
	passes := [][]any{{42}, {50 * time.Second}, {demoDate}}
	if err := demoChain(w, template, passes, f.Format); err != nil {
		return err
	}
	oracle, err := f.Format(template, 42, 50*time.Second, demoDate)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  all at once  %s\n\n", oracle)

	fmt.Fprintln(w, "FormatWith, more arguments than placeholders:")
	extra, err := f.FormatWith("{0} {1}", 42, "Cake", "taco")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %-12q %s\n\n", "{0} {1}", extra)

	fmt.Fprintln(w, "FormatWith, fewer arguments than placeholders:")
	return demoChain(w, "{0} {1} {2}", [][]any{{42}, {"Cake"}, {demoDate}}, f.FormatWith)
}

func demoChain(w io.Writer, template string, passes [][]any, apply func(string, ...any) (string, error)) error {
	fmt.Fprintf(w, "  template     %s\n", template)
	cur := template
	for i, pass := range passes {
		next, err := apply(cur, pass...)
		if err != nil {
			return &pformat.PassError{Pass: i, Err: err}
		}
		fmt.Fprintf(w, "  + %-10s %s\n", fmt.Sprint(pass...), next)
		cur = next
	}

	return nil
}
