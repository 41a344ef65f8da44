package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marcus-hale/resume-extract/internal/export"
	"github.com/marcus-hale/resume-extract/internal/repository"
)

var (
	exportDB  string
	exportOut string
	exportRun string

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "export stored results as an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			runID := uuid.Nil
			if exportRun != "" {
				parsed, err := uuid.Parse(exportRun)
				if err != nil {
					return fmt.Errorf("invalid --run id: %w", err)
				}
				runID = parsed
			}

			store, err := repository.Open(cmd.Context(), exportDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			raw, err := export.NewService(store, logger).ExportResultsXLSX(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", exportOut, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", exportOut, len(raw))
			return nil
		},
	}
)

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "", "SQLite results database (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "resumes.xlsx", "output XLSX path")
	exportCmd.Flags().StringVar(&exportRun, "run", "", "export only this run id")
	_ = exportCmd.MarkFlagRequired("db")
}
