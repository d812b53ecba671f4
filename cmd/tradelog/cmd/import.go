package cmd

import (
	"fmt"

	"github.com/beezkneez/bz-journal/journal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <fills-file>",
	Short: "Analyze a fill log and record the session in the journal",
	Long: `Reconstruct trades from a broker execution log and record the session
and its trades in the configured journal (SQLite by default).

Examples:
  tradelog import fills.csv
  tradelog import fills.tsv --date 2025-07-14 --commissions 8.40`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importCommissions float64
	importDate        string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Float64VarP(&importCommissions, "commissions", "c", -1, "commissions to subtract (default from config)")
	importCmd.Flags().StringVar(&importDate, "date", "", "trading date YYYY-MM-DD (default: date of first fill)")
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := analyzeFile(args[0], importCommissions, importDate)
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, trades := journal.Records(s, location())
	if err := j.RecordSession(rec, trades); err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	log.WithFields(logrus.Fields{
		"component": "import",
		"session":   rec.SessionID,
		"journal":   cfg.Journal.Type,
		"trades":    len(trades),
	}).Info("session recorded")

	printSession(cmd.OutOrStdout(), s)
	return nil
}
