// Package cli provides the bdd2doc command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gork-labs/bdd2doc/internal/cache"
	"github.com/spf13/cobra"
)

// ExitError carries a non-zero exit code out of a command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// app is the state shared by the subcommands of one root command.
type app struct {
	cfg        Config
	configPath string
	stdout     io.Writer
	stderr     io.Writer
	files      FileSystem
	logger     *slog.Logger
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the command tree writing to the given streams.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, files: defaultFileSystem}

	rootCmd := &cobra.Command{
		Use:           "bdd2doc",
		Short:         "Generate API documentation from BDD test files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := a.cfg.resolve(a.configPath); err != nil {
				return err
			}
			a.logger = newLogger(a.cfg.LogLevel, a.cfg.LogFormat, a.stderr)
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML, TOML or JSON config file")
	flags.StringVar(&a.cfg.LogLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn or error")
	flags.StringVar(&a.cfg.LogFormat, "log-format", defaultLogFormat, "Log format: text or json")
	flags.StringVar(&a.cfg.CacheDir, "cache-dir", "", "Directory holding the model cache (default: user cache dir)")
	flags.StringVar(&a.cfg.CacheKind, "cache", defaultCacheKind, "Cache backend: json, sqlite or none")

	rootCmd.AddCommand(newFindCommand(a), newGenerateCommand(a), newValidateCommand(a))
	return rootCmd
}

// openStore opens the cache backend selected by the settings.
func (a *app) openStore() (cache.Store, error) {
	switch a.cfg.CacheKind {
	case "none":
		return cache.Nop{}, nil
	case "sqlite":
		dir := a.cfg.cacheDir()
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		return cache.OpenSQLite(filepath.Join(dir, cache.SQLiteFileName))
	default:
		return cache.NewFileStore(a.cfg.cacheDir()), nil
	}
}

func (a *app) requireDir() error {
	if a.cfg.Dir == "" {
		return fmt.Errorf("specify test files root directory: --dir")
	}
	return nil
}
