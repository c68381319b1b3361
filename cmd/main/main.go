package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const defaultConfigPath = "bestiary.json"

// app carries the state shared by all commands: the loaded configuration
// and the logger built from it.
type app struct {
	configPath string
	logLevel   string
	config     *Config
	logger     *slog.Logger
}

// setup loads the configuration and creates the logger. Logs go to errOut
// so they never interleave with the console prompt on stdout.
func (a *app) setup(errOut io.Writer) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		config.LogLevel = a.logLevel
	}
	a.config = config
	a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	a.logger.Debug("Configuration loaded", "path", a.configPath)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	gen := &generateOptions{}

	rootCmd := &cobra.Command{
		Use:   "bestiary",
		Short: "Static animal page generator",
		Long: `Bestiary renders a collection of animal records into an HTML page.

Records are read from a JSON data file or from a SQLite catalog, optionally
filtered by one characteristic chosen at the prompt, rendered as cards, and
substituted into a page template at the __REPLACE_ANIMALS_INFO__ placeholder.

Running bestiary without a subcommand is the same as "bestiary generate".`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, gen)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "path to the JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(initCmd(a))
	rootCmd.AddCommand(generateCmd(a))
	rootCmd.AddCommand(optionsCmd(a))
	rootCmd.AddCommand(importCmd(a))
	rootCmd.AddCommand(datasetsCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(removeCmd(a))

	return rootCmd
}

func initCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to the --config path. The format is YAML
for .yaml/.yml paths and JSON otherwise.

Example:
  bestiary init
  bestiary init --config bestiary.yaml --force`,
		Args: cobra.NoArgs,
		// init must work even when the existing config file is broken.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if err := WriteConfig(a.configPath, DefaultConfig(), force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
