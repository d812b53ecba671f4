// journal/journal.go
package journal

import (
	"errors"
	"time"

	"github.com/beezkneez/bz-journal/fills"
	"github.com/beezkneez/bz-journal/pkg/id"
	"github.com/beezkneez/bz-journal/session"
)

var ErrNotFound = errors.New("not found")

// TradeRecord is one realized trade as stored in the journal.
type TradeRecord struct {
	TradeID    string    `db:"trade_id"`
	SessionID  string    `db:"session_id"`
	Seq        int       `db:"seq"`
	Symbol     string    `db:"symbol"`
	Side       string    `db:"side"`
	Quantity   float64   `db:"quantity"`
	EntryPrice float64   `db:"entry_price"`
	ExitPrice  float64   `db:"exit_price"`
	PointValue float64   `db:"point_value"`
	FillTime   string    `db:"fill_time"`
	CloseTime  time.Time `db:"close_time"`
	RealizedPL float64   `db:"realized_pl"`
}

// SessionRecord is the journal row for one imported execution log.
type SessionRecord struct {
	SessionID   string    `db:"session_id"`
	Date        string    `db:"date"`
	Source      string    `db:"source"`
	Created     time.Time `db:"created"`
	Fills       int       `db:"fills"`
	Skipped     int       `db:"skipped"`
	Volume      float64   `db:"volume"`
	Trades      int       `db:"trades"`
	Wins        int       `db:"wins"`
	Losses      int       `db:"losses"`
	WinRate     float64   `db:"win_rate"`
	AvgWinner   float64   `db:"avg_winner"`
	AvgLoser    float64   `db:"avg_loser"`
	GrossPL     float64   `db:"gross_pl"`
	Commissions float64   `db:"commissions"`
	NetPL       float64   `db:"net_pl"`
}

type Journal interface {
	RecordSession(SessionRecord, []TradeRecord) error
	Close() error
}

// Records converts an analyzed session into journal rows. Fill timestamps
// are read in loc.
func Records(s *session.Session, loc *time.Location) (SessionRecord, []TradeRecord) {
	if loc == nil {
		loc = time.Local
	}

	rec := SessionRecord{
		SessionID:   s.ID,
		Date:        s.Date,
		Source:      s.Source,
		Created:     s.Created,
		Fills:       s.Summary.TotalFills,
		Skipped:     s.Skipped,
		Volume:      s.Summary.TotalVolume,
		Trades:      s.Stats.TotalTrades,
		Wins:        s.Stats.WinningTrades,
		Losses:      s.Stats.LosingTrades,
		WinRate:     s.Stats.WinRate,
		AvgWinner:   s.Stats.AvgWinner,
		AvgLoser:    s.Stats.AvgLoser,
		GrossPL:     s.Stats.GrossPnL,
		Commissions: s.Commissions,
		NetPL:       s.NetPnL,
	}

	trades := make([]TradeRecord, 0, len(s.Trades))
	for i, t := range s.Trades {
		closeTime := fills.Fill{Timestamp: t.Timestamp}.Time(loc)
		tradeID := id.New()
		if !closeTime.IsZero() {
			tradeID = id.NewAt(closeTime)
		}
		trades = append(trades, TradeRecord{
			TradeID:    tradeID,
			SessionID:  s.ID,
			Seq:        i + 1,
			Symbol:     t.Symbol,
			Side:       string(t.Side),
			Quantity:   t.Quantity,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			PointValue: t.PointValue,
			FillTime:   t.Timestamp,
			CloseTime:  closeTime,
			RealizedPL: t.PnL,
		})
	}
	return rec, trades
}
