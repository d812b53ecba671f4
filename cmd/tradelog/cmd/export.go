package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/beezkneez/bz-journal/journal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export the trades of a recorded session",
	Long: `Write the trades of a recorded session as CSV or as an Org-mode report.

Examples:
  tradelog export 01J2X... --out trades.csv
  tradelog export 01J2X... --org --out 2025-07-14.org`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportOut string
	exportOrg bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportOrg, "org", false, "write an Org-mode session report instead of CSV")
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := openDB()
	if err != nil {
		return err
	}
	defer j.Close()

	sess, err := j.GetSession(args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	trades, err := j.ListTradesBySession(sess.SessionID)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	if exportOrg && exportOut != "" {
		return journal.WriteSessionOrg(exportOut, journal.SessionReport{Session: sess, Trades: trades})
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if exportOrg {
		out, err := journal.FormatSessionOrg(journal.SessionReport{Session: sess, Trades: trades})
		if err != nil {
			return fmt.Errorf("render org: %w", err)
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	if err := journal.WriteTradesCSV(w, trades); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
