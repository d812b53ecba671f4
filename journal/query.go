package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const selectTrade = `
	SELECT trade_id, session_id, seq, symbol, side, quantity, entry_price, exit_price,
	       point_value, fill_time, close_time, realized_pl
	FROM trades`

const selectSession = `
	SELECT session_id, date, source, created, fills, skipped, volume, trades, wins, losses,
	       win_rate, avg_winner, avg_loser, gross_pl, commissions, net_pl
	FROM sessions`

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord
	err := j.db.Get(&rec, selectTrade+` WHERE trade_id = ?`, tradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// GetSession returns a single session record by ID.
func (j *SQLite) GetSession(sessionID string) (SessionRecord, error) {
	var rec SessionRecord
	err := j.db.Get(&rec, selectSession+` WHERE session_id = ?`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		return SessionRecord{}, err
	}
	return rec, nil
}

// ListTradesBySession returns a session's trades in fill order.
func (j *SQLite) ListTradesBySession(sessionID string) ([]TradeRecord, error) {
	var out []TradeRecord
	err := j.db.Select(&out, selectTrade+` WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesClosedBetween returns trades whose close_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	var out []TradeRecord
	err := j.db.Select(&out, selectTrade+`
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC, seq ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListSessionsBetween returns sessions whose trading date is within
// [fromDate, toDate], both YYYY-MM-DD.
func (j *SQLite) ListSessionsBetween(fromDate, toDate string) ([]SessionRecord, error) {
	var out []SessionRecord
	err := j.db.Select(&out, selectSession+`
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, session_id ASC`, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Period totals the sessions of a date range.
type Period struct {
	From        string  `db:"-"`
	To          string  `db:"-"`
	Sessions    int     `db:"sessions"`
	Trades      int     `db:"trades"`
	Wins        int     `db:"wins"`
	Losses      int     `db:"losses"`
	GrossPL     float64 `db:"gross_pl"`
	Commissions float64 `db:"commissions"`
	NetPL       float64 `db:"net_pl"`
}

// WinRate is wins over decided trades, in percent.
func (p Period) WinRate() float64 {
	if p.Wins+p.Losses == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Wins+p.Losses) * 100
}

// PeriodMetrics sums sessions dated within [fromDate, toDate].
func (j *SQLite) PeriodMetrics(fromDate, toDate string) (Period, error) {
	p := Period{From: fromDate, To: toDate}
	err := j.db.Get(&p, `
		SELECT COUNT(*) AS sessions,
		       COALESCE(SUM(trades), 0) AS trades,
		       COALESCE(SUM(wins), 0) AS wins,
		       COALESCE(SUM(losses), 0) AS losses,
		       COALESCE(SUM(gross_pl), 0.0) AS gross_pl,
		       COALESCE(SUM(commissions), 0.0) AS commissions,
		       COALESCE(SUM(net_pl), 0.0) AS net_pl
		FROM sessions
		WHERE date >= ? AND date <= ?`, fromDate, toDate)
	if err != nil {
		return Period{}, err
	}
	return p, nil
}

// LastDays returns the period of n calendar days ending on day.
func (j *SQLite) LastDays(day time.Time, n int) (Period, error) {
	if n < 1 {
		n = 1
	}
	to := day.Format("2006-01-02")
	from := day.AddDate(0, 0, -(n - 1)).Format("2006-01-02")
	return j.PeriodMetrics(from, to)
}
