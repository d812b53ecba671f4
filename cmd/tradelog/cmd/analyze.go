package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/beezkneez/bz-journal/internal/logger"
	"github.com/beezkneez/bz-journal/journal"
	"github.com/beezkneez/bz-journal/session"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <fills-file>",
	Short: "Reconstruct trades from a fill log and print statistics",
	Long: `Parse a broker execution log and print the completed trades and
session statistics without recording anything.

The file needs a header row with at least:
  DateTime, Symbol, BuySell, Quantity, FillPrice, OpenClose

Examples:
  tradelog analyze fills.csv
  tradelog analyze fills.tsv --commissions 8.40 --org`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeCommissions float64
	analyzeDate        string
	analyzeOrg         bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64VarP(&analyzeCommissions, "commissions", "c", -1, "commissions to subtract (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "trading date YYYY-MM-DD (default: date of first fill)")
	analyzeCmd.Flags().BoolVar(&analyzeOrg, "org", false, "print an Org-mode session summary")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := analyzeFile(args[0], analyzeCommissions, analyzeDate)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeOrg {
		rec, trades := journal.Records(s, location())
		org, err := journal.FormatSessionOrg(journal.SessionReport{
			Session: rec,
			Trades:  trades,
			Symbols: s.Summary.Symbols,
		})
		if err != nil {
			return fmt.Errorf("render org: %w", err)
		}
		fmt.Fprintln(out, org)
		return nil
	}

	printSession(out, s)
	return nil
}

// analyzeFile reads and analyzes one log. A negative commissions value
// selects the configured default.
func analyzeFile(path string, commissions float64, date string) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fills: %w", err)
	}
	if commissions < 0 {
		commissions = cfg.Commissions
	}

	s, err := session.Analyze(string(data), session.Options{
		PointValue:  cfg.PointValues().Of,
		Commissions: commissions,
		Date:        date,
		Source:      filepath.Base(path),
		Log:         logger.WithComponent(log, "session"),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func printSession(w io.Writer, s *session.Session) {
	st := s.Stats
	fmt.Fprintf(w, "Session %s  %s\n", s.ID, s.Date)
	fmt.Fprintf(w, "  Fills:       %d (%d buy / %d sell, volume %g)\n",
		s.Summary.TotalFills, s.Summary.BuyFills, s.Summary.SellFills, s.Summary.TotalVolume)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped:     %d fills without timestamp or price\n", s.Skipped)
	}
	fmt.Fprintf(w, "  Trades:      %d (%d won, %d lost)\n", st.TotalTrades, st.WinningTrades, st.LosingTrades)
	fmt.Fprintf(w, "  Win rate:    %.1f%%\n", st.WinRate)
	fmt.Fprintf(w, "  Avg winner:  $%.2f\n", st.AvgWinner)
	fmt.Fprintf(w, "  Avg loser:   $%.2f\n", st.AvgLoser)
	fmt.Fprintf(w, "  Gross P&L:   $%.2f\n", st.GrossPnL)
	fmt.Fprintf(w, "  Commissions: $%.2f\n", s.Commissions)
	fmt.Fprintf(w, "  Net P&L:     $%.2f\n", s.NetPnL)

	if len(s.Trades) > 0 {
		fmt.Fprintln(w)
		for i, t := range s.Trades {
			fmt.Fprintf(w, "  %3d  %-14s %-4s %6g  %.2f -> %.2f  $%.2f\n",
				i+1, t.Symbol, t.Side, t.Quantity, t.EntryPrice, t.ExitPrice, t.PnL)
		}
	}

	if open := s.OpenSymbols(); len(open) > 0 {
		fmt.Fprintln(w)
		for _, sym := range open {
			p := s.Positions[sym]
			fmt.Fprintf(w, "  open: %s %g @ %.2f\n", sym, p.Quantity, p.AvgPrice)
		}
	}
}

func location() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}
