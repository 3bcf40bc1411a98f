// Package cmd provides the pformat command-line interface.
//
// Configuration is read, highest priority first, from command-line flags,
// PFORMAT_* environment variables (PFORMAT_CULTURE, PFORMAT_LOG_LEVEL, ...)
// and a YAML file. The file is the --config flag, else the
// PFORMAT_CONFIG_FILE environment variable, else .pformat.yml in the
// current directory.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/pformat/internal/config"
	"github.com/conneroisu/pformat/internal/logging"
	"github.com/conneroisu/pformat/pkg/pformat"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pformat",
	Short: "Positional placeholder formatting with partial application",
	Long: `pformat fills {index[,alignment][:spec]} placeholders from positional
arguments. Placeholders without a matching argument are renumbered and kept,
so the output is itself a template that later passes can finish.

Quick Start:
  pformat format "{0} {2:yyyy-MM-dd} {1}" 42      One pass
  pformat chain -f job.yaml                        Several passes from a job file
  pformat inspect "{0,10:N2} {1}"                  List placeholders
  pformat watch job.yaml                           Re-run a job on change
  pformat demo                                     Walk through the examples

Arguments are typed by prefix: int: float: bool: time: dur: str:
Without a prefix, integers, floats and RFC3339 timestamps are detected.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}

	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .pformat.yml, can also use PFORMAT_CONFIG_FILE env var)")
	flags.String("culture", config.DefaultCulture, "culture for numeric and date specs (en-US, de-DE, invariant, ...)")
	flags.String("mode", pformat.ReplaceBySpan.String(), "FormatWith replacement mode (span, value)")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "auto", "log format (text, json, auto)")

	bindConfigFlags()
}

// bindConfigFlags ties the persistent flags to their configuration keys.
func bindConfigFlags() {
	bindings := map[string]string{
		"culture":      "culture",
		"replace_mode": "mode",
		"log.level":    "log-level",
		"log.format":   "log-format",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig picks the config file and enables PFORMAT_ environment
// overrides. A missing or unreadable file leaves the defaults in place.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PFORMAT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pformat")
	}

	viper.SetEnvPrefix("PFORMAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// session is the per-invocation state shared by the commands.
type session struct {
	cfg    *config.Config
	logger logging.Logger
	opts   []pformat.Option
}

func loadSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := cfg.Logger()
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug(cmd.Context(), "Using config file", "path", used)
	}

	opts, err := cfg.FormatterOptions(logger)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		logger: logger.WithComponent(cmd.Name()),
		opts:   opts,
	}, nil
}

func (s *session) formatter(extra ...pformat.Option) *pformat.Formatter {
	return pformat.New(append(append([]pformat.Option(nil), s.opts...), extra...)...)
}
