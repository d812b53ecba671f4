package journal

import (
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

type tradeRow struct {
	TradeID    string  `csv:"trade_id"`
	SessionID  string  `csv:"session_id"`
	Seq        int     `csv:"seq"`
	Symbol     string  `csv:"symbol"`
	Side       string  `csv:"side"`
	Quantity   float64 `csv:"quantity"`
	EntryPrice float64 `csv:"entry_price"`
	ExitPrice  float64 `csv:"exit_price"`
	PointValue float64 `csv:"point_value"`
	FillTime   string  `csv:"fill_time"`
	RealizedPL float64 `csv:"realized_pl"`
}

type sessionRow struct {
	SessionID   string  `csv:"session_id"`
	Date        string  `csv:"date"`
	Source      string  `csv:"source"`
	Created     string  `csv:"created"`
	Fills       int     `csv:"fills"`
	Trades      int     `csv:"trades"`
	Wins        int     `csv:"wins"`
	Losses      int     `csv:"losses"`
	WinRate     float64 `csv:"win_rate"`
	AvgWinner   float64 `csv:"avg_winner"`
	AvgLoser    float64 `csv:"avg_loser"`
	GrossPL     float64 `csv:"gross_pl"`
	Commissions float64 `csv:"commissions"`
	NetPL       float64 `csv:"net_pl"`
}

func toTradeRows(trades []TradeRecord) []*tradeRow {
	rows := make([]*tradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, &tradeRow{
			TradeID:    t.TradeID,
			SessionID:  t.SessionID,
			Seq:        t.Seq,
			Symbol:     t.Symbol,
			Side:       t.Side,
			Quantity:   t.Quantity,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			PointValue: t.PointValue,
			FillTime:   t.FillTime,
			RealizedPL: t.RealizedPL,
		})
	}
	return rows
}

func toSessionRow(s SessionRecord) *sessionRow {
	return &sessionRow{
		SessionID:   s.SessionID,
		Date:        s.Date,
		Source:      s.Source,
		Created:     s.Created.UTC().Format(time.RFC3339),
		Fills:       s.Fills,
		Trades:      s.Trades,
		Wins:        s.Wins,
		Losses:      s.Losses,
		WinRate:     s.WinRate,
		AvgWinner:   s.AvgWinner,
		AvgLoser:    s.AvgLoser,
		GrossPL:     s.GrossPL,
		Commissions: s.Commissions,
		NetPL:       s.NetPL,
	}
}

// WriteTradesCSV writes trades, with a header row, to w.
func WriteTradesCSV(w io.Writer, trades []TradeRecord) error {
	rows := toTradeRows(trades)
	return gocsv.Marshal(&rows, w)
}

// CSVJournal appends sessions and trades to two CSV files. Headers are
// written only when a file is new or empty.
type CSVJournal struct {
	tf, sf *os.File
}

func NewCSV(tradesPath, sessionsPath string) (*CSVJournal, error) {
	tf, err := openAppend(tradesPath, &[]*tradeRow{})
	if err != nil {
		return nil, err
	}
	sf, err := openAppend(sessionsPath, &[]*sessionRow{})
	if err != nil {
		tf.Close()
		return nil, err
	}
	return &CSVJournal{tf: tf, sf: sf}, nil
}

func openAppend(path string, empty any) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := gocsv.Marshal(empty, f); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (j *CSVJournal) RecordSession(s SessionRecord, trades []TradeRecord) error {
	srows := []*sessionRow{toSessionRow(s)}
	if err := gocsv.MarshalWithoutHeaders(&srows, j.sf); err != nil {
		return err
	}
	if len(trades) == 0 {
		return nil
	}
	trows := toTradeRows(trades)
	return gocsv.MarshalWithoutHeaders(&trows, j.tf)
}

func (j *CSVJournal) Close() error {
	if err := j.tf.Close(); err != nil {
		j.sf.Close()
		return err
	}
	return j.sf.Close()
}
