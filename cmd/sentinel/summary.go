package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"MultiplierSentinel/internal/recorder"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show recorded predictions and rejections",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		since, _ := cmd.Flags().GetDuration("since")

		rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			return err
		}
		defer rec.Close()

		sum, err := rec.Summary(time.Now().Add(-since))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(sum))
		return nil
	},
}

func init() {
	summaryCmd.Flags().Duration("since", 24*time.Hour, "Look-back window")
}
