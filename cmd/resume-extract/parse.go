package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus-hale/resume-extract/internal/common"
	"github.com/marcus-hale/resume-extract/internal/extract"
	"github.com/marcus-hale/resume-extract/internal/parser"
	"github.com/marcus-hale/resume-extract/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "extract one resume and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		idx, table, err := loadTables()
		if err != nil {
			return err
		}

		cfg := common.LoadConfig()
		p := parser.NewParser(logger, parser.Config{
			HeaderRegion:   cfg.Pipeline.HeaderRegion,
			FuzzyThreshold: 0.8,
		}, idx, table, nil)
		o := pipeline.NewOrchestrator(logger, pipeline.Config{
			Threshold:        cfg.Pipeline.FastConfidenceThreshold,
			FastTextBudget:   cfg.Pipeline.FastTextBudget,
			ChunkTokenBudget: cfg.Pipeline.ChunkTokenBudget,
		}, extract.NewTextReader(), p)

		res, err := o.ProcessFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		raw, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}
