package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/conneroisu/pformat/internal/job"
	"github.com/conneroisu/pformat/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch JOB [JOB...]",
	Aliases: []string{"w"},
	Short:   "Re-run job files whenever they change",
	Long: `Run each job file once, then again every time it is saved. Bursts of
changes are collapsed according to watch.debounce (PFORMAT_WATCH_DEBOUNCE).
Errors in a job are reported and watching continues.

Examples:
  pformat watch job.yaml
  pformat watch a.yaml b.yaml -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

var watchFlags *StandardFlags

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags = AddStandardFlags(watchCmd, "output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if err := ValidateFileExists(path); err != nil {
			return fmt.Errorf("job file: %w", err)
		}
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := &syncWriter{w: cmd.OutOrStdout()}
	runner := job.NewRunner(s.logger, s.opts...)

	fw, err := watcher.NewFileWatcher(s.cfg.Watch.Debounce, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	for _, path := range args {
		if err := fw.AddFile(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		runJob(ctx, out, runner, path)
	}

	fw.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		for _, event := range events {
			if event.Type == watcher.EventTypeDeleted || event.Type == watcher.EventTypeRenamed {
				s.logger.Warn(ctx, nil, "Job file went away", "path", event.Path, "event", event.Type.String())
				continue
			}
			runJob(ctx, out, runner, event.Path)
		}
		return nil
	})

	if err := fw.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	s.logger.Info(ctx, "Watching job files", "files", len(args), "debounce", s.cfg.Watch.Debounce.String())

	<-ctx.Done()

	return nil
}

// runJob reports failures on the output instead of returning them so the
// watch loop keeps going. Each report reaches out in a single write.
func runJob(ctx context.Context, out io.Writer, runner *job.Runner, path string) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "== %s\n", path)

	j, err := job.Load(path)
	if err == nil {
		var res *job.Result
		if res, err = runner.Run(ctx, j); err == nil {
			err = outputResult(&buf, j, res, watchFlags)
		}
	}
	if err != nil {
		fmt.Fprintf(&buf, "error: %v\n", err)
	}

	_, _ = out.Write(buf.Bytes())
}

// syncWriter serializes writes from the initial runs and the watcher
// goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}
