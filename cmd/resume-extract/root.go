package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus-hale/resume-extract/internal/geo"
	"github.com/marcus-hale/resume-extract/internal/taxonomy"
)

var (
	taxonomyPath string
	citiesPath   string
	logLevel     string

	rootCmd = &cobra.Command{
		Use:           "resume-extract",
		Short:         "resume-extract pulls structured candidate fields out of resume files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&taxonomyPath, "taxonomy", "", "skill vocabulary YAML (default: embedded vocabulary)")
	rootCmd.PersistentFlags().StringVar(&citiesPath, "cities", "", "US cities CSV (default: embedded table)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. Logs go to stderr so command output
// on stdout stays machine-readable.
func newLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadTables loads the taxonomy index and the geo table, embedded defaults
// unless overridden by flags.
func loadTables() (*taxonomy.Index, *geo.Table, error) {
	var (
		idx *taxonomy.Index
		err error
	)
	if taxonomyPath != "" {
		idx, err = taxonomy.LoadFromYAML(taxonomyPath)
	} else {
		idx, err = taxonomy.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load taxonomy: %w", err)
	}

	var table *geo.Table
	if citiesPath != "" {
		table, err = geo.LoadFile(citiesPath)
	} else {
		table, err = geo.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load cities table: %w", err)
	}
	return idx, table, nil
}
