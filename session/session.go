// Package session runs one uploaded execution log through the parser,
// position tracker and aggregator.
package session

import (
	"fmt"
	"time"

	"github.com/beezkneez/bz-journal/fills"
	"github.com/beezkneez/bz-journal/internal/logger"
	"github.com/beezkneez/bz-journal/market"
	"github.com/beezkneez/bz-journal/pkg/id"
	"github.com/beezkneez/bz-journal/position"
	"github.com/beezkneez/bz-journal/stats"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// PointValue defaults to market.PointValueOf.
	PointValue position.PointValueFunc
	// Commissions is subtracted from gross P&L.
	Commissions float64
	// Date overrides the trading date taken from the first fill.
	Date   string
	Source string
	Log    *logrus.Entry
}

// Session is the analyzed result of one log.
type Session struct {
	ID          string
	Date        string
	Source      string
	Created     time.Time
	Fills       []fills.Fill
	Trades      []position.Trade
	Positions   map[string]position.State
	Skipped     int
	Stats       stats.Stats
	Summary     stats.Summary
	Commissions float64
	NetPnL      float64
}

// Analyze parses raw and reconstructs its trades. Only parsing can fail.
func Analyze(raw string, opts Options) (*Session, error) {
	fs, err := fills.ParseFills(raw)
	if err != nil {
		return nil, fmt.Errorf("parse fills: %w", err)
	}
	return FromFills(fs, opts), nil
}

// FromFills analyzes already parsed fills, in the order given.
func FromFills(fs []fills.Fill, opts Options) *Session {
	pv := opts.PointValue
	if pv == nil {
		pv = market.PointValueOf
	}
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	res := position.Reconstruct(fs, pv)
	st := stats.Aggregate(res.PnLs())

	s := &Session{
		ID:          id.New(),
		Date:        opts.Date,
		Source:      opts.Source,
		Created:     time.Now().UTC(),
		Fills:       fs,
		Trades:      res.Trades,
		Positions:   res.Positions,
		Skipped:     res.Skipped,
		Stats:       st,
		Summary:     stats.Summarize(fs),
		Commissions: opts.Commissions,
		NetPnL:      st.NetPnL(opts.Commissions),
	}
	if s.Date == "" {
		s.Date = firstDate(fs)
	}

	entry := log.WithFields(logrus.Fields{
		"session": s.ID,
		"date":    s.Date,
		"fills":   len(fs),
		"trades":  st.TotalTrades,
		"gross":   st.GrossPnL,
	})
	if s.Skipped > 0 {
		entry.WithField("skipped", s.Skipped).Warn("fills without timestamp or price were skipped")
	}
	if open := s.OpenSymbols(); len(open) > 0 {
		entry.WithField("open", open).Debug("positions left open")
	}
	entry.Debug("session analyzed")

	return s
}

// OpenSymbols lists symbols whose final position is not flat.
func (s *Session) OpenSymbols() []string {
	var out []string
	for _, sym := range s.Summary.Symbols {
		if st, ok := s.Positions[sym]; ok && !st.Flat() {
			out = append(out, sym)
		}
	}
	return out
}

func firstDate(fs []fills.Fill) string {
	for _, f := range fs {
		if d := f.Date(); d != "" {
			return d
		}
	}
	return ""
}
