// Package internal contains the packages behind the pformat command.
//
// # Package Organization
//
//   - config: Viper-backed settings turned into formatter options
//   - job: YAML job files and the pass-by-pass runner
//   - logging: slog-based structured logger
//   - values: typed command-line and job-file arguments
//   - version: build metadata
//   - watcher: debounced fsnotify watching of job files
//
// The formatting engine itself lives in pkg/pformat so that other modules
// can import it.
package internal
