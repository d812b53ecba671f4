package cmd

import (
	"fmt"
	"time"

	"github.com/beezkneez/bz-journal/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query trade journal data",
	Long: `Query and display journal records from the SQLite database.

Subcommands:
  trade    - Get details of a specific trade by ID
  session  - Show a recorded session and its trades
  today    - List trades closed today
  day      - List trades closed on a specific day
  stats    - P&L over the last N days
  delete   - Remove a session and its trades

Examples:
  tradelog journal trade <trade-id>
  tradelog journal session <session-id>
  tradelog journal day 2025-07-14
  tradelog journal stats --days 30`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalSessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "Show a recorded session as Org-mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSession,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded sessions over the last N days",
	Args:  cobra.NoArgs,
	RunE:  runJournalStats,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalStatsDays []int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalSessionCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalStatsCmd)
	journalCmd.AddCommand(journalDeleteCmd)

	journalStatsCmd.Flags().IntSliceVar(&journalStatsDays, "days", []int{5, 30}, "period lengths in days")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openDB()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalSession(cmd *cobra.Command, args []string) error {
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

	out, err := journal.FormatSessionOrg(journal.SessionReport{Session: sess, Trades: trades})
	if err != nil {
		return fmt.Errorf("render org: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := location()
	return listDay(cmd, loc, time.Now().In(loc).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, location(), args[0])
}

func listDay(cmd *cobra.Command, loc *time.Location, day string) error {
	j, err := openDB()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListTradesClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	j, err := openDB()
	if err != nil {
		return err
	}
	defer j.Close()

	now := time.Now().In(location())
	out := cmd.OutOrStdout()
	for _, n := range journalStatsDays {
		p, err := j.LastDays(now, n)
		if err != nil {
			return fmt.Errorf("period %dd: %w", n, err)
		}
		fmt.Fprintf(out, "Last %d days (%s .. %s)\n", n, p.From, p.To)
		fmt.Fprintf(out, "  Sessions: %d  Trades: %d  Win rate: %.1f%%\n", p.Sessions, p.Trades, p.WinRate())
		fmt.Fprintf(out, "  Gross P&L: $%.2f  Net P&L: $%.2f\n", p.GrossPL, p.NetPL)
	}
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	j, err := openDB()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.DeleteSession(args[0]); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted session %s\n", args[0])
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
