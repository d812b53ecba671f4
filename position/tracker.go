// Package position rebuilds per-symbol positions from an ordered stream of
// fills and reports the realized P&L of every closing fill.
package position

import (
	"math"

	"github.com/beezkneez/bz-journal/fills"
)

// PointValueFunc returns the dollar value of one point for one contract.
type PointValueFunc func(symbol string) float64

// State is the net position held in one symbol. Quantity is signed:
// positive long, negative short, zero flat. A flat state always has zero
// AvgPrice and TotalCost.
type State struct {
	Quantity  float64
	AvgPrice  float64
	TotalCost float64
}

func (s State) Flat() bool { return s.Quantity == 0 }

func (s State) Long() bool  { return s.Quantity > 0 }
func (s State) Short() bool { return s.Quantity < 0 }

// Trade is the realized result of one closing fill.
type Trade struct {
	Symbol     string
	Timestamp  string
	Side       fills.Side
	Quantity   float64
	EntryPrice float64
	ExitPrice  float64
	PointValue float64
	PnL        float64
}

// Tracker holds the open positions of a single reconstruction run. It is
// not safe for concurrent use; create one per log.
type Tracker struct {
	pointValue PointValueFunc
	positions  map[string]*State
	symbols    []string
	trades     []Trade
	skipped    int
}

func NewTracker(pv PointValueFunc) *Tracker {
	if pv == nil {
		pv = func(string) float64 { return 1.0 }
	}
	return &Tracker{
		pointValue: pv,
		positions:  make(map[string]*State),
	}
}

// Apply processes one fill. It returns the realized trade and true when the
// fill closed (part of) a position for a non-zero P&L.
//
// Fills without a timestamp or with a non-positive price are skipped. A
// Close fill that does not face an opposite open position is ignored.
// A Close larger than the open quantity flattens the position and the
// excess is dropped; the P&L still uses the full fill quantity.
func (t *Tracker) Apply(f fills.Fill) (Trade, bool) {
	if f.Timestamp == "" || f.Price <= 0 {
		t.skipped++
		return Trade{}, false
	}

	st := t.state(f.Symbol)
	pv := t.pointValue(f.Symbol)

	switch f.OpenClose {
	case fills.Open:
		openFill(st, f)
		return Trade{}, false

	case fills.Close:
		var pnl float64
		entry := st.AvgPrice

		switch {
		case f.Side == fills.Sell && st.Long():
			pnl = f.Quantity * (f.Price - entry) * pv
			remaining := st.Quantity - f.Quantity
			if remaining > 0 {
				st.Quantity = remaining
				st.TotalCost = remaining * entry
			} else {
				*st = State{}
			}

		case f.Side == fills.Buy && st.Short():
			pnl = f.Quantity * (entry - f.Price) * pv
			remaining := st.Quantity + f.Quantity
			if remaining < 0 {
				st.Quantity = remaining
				st.TotalCost = remaining * entry
			} else {
				*st = State{}
			}

		default:
			return Trade{}, false
		}

		if pnl == 0 {
			return Trade{}, false
		}
		tr := Trade{
			Symbol:     f.Symbol,
			Timestamp:  f.Timestamp,
			Side:       f.Side,
			Quantity:   f.Quantity,
			EntryPrice: entry,
			ExitPrice:  f.Price,
			PointValue: pv,
			PnL:        pnl,
		}
		t.trades = append(t.trades, tr)
		return tr, true
	}

	return Trade{}, false
}

func openFill(st *State, f fills.Fill) {
	switch f.Side {
	case fills.Buy:
		st.TotalCost += f.Quantity * f.Price
		st.Quantity += f.Quantity
		if st.Quantity != 0 {
			st.AvgPrice = st.TotalCost / st.Quantity
		}
	case fills.Sell:
		st.TotalCost -= f.Quantity * f.Price
		st.Quantity -= f.Quantity
		if st.Quantity != 0 {
			st.AvgPrice = math.Abs(st.TotalCost / st.Quantity)
		}
	default:
		return
	}

	if st.Quantity == 0 {
		*st = State{}
	}
}

func (t *Tracker) state(symbol string) *State {
	st, ok := t.positions[symbol]
	if !ok {
		st = &State{}
		t.positions[symbol] = st
		t.symbols = append(t.symbols, symbol)
	}
	return st
}

// Trades returns the realized trades in fill order.
func (t *Tracker) Trades() []Trade {
	out := make([]Trade, len(t.trades))
	copy(out, t.trades)
	return out
}

// PnLs returns the realized P&L of every trade in fill order.
func (t *Tracker) PnLs() []float64 {
	out := make([]float64, len(t.trades))
	for i, tr := range t.trades {
		out[i] = tr.PnL
	}
	return out
}

// Position returns the current state for symbol and whether the symbol has
// been seen.
func (t *Tracker) Position(symbol string) (State, bool) {
	st, ok := t.positions[symbol]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Positions returns a snapshot of every symbol's state.
func (t *Tracker) Positions() map[string]State {
	out := make(map[string]State, len(t.positions))
	for sym, st := range t.positions {
		out[sym] = *st
	}
	return out
}

// Symbols returns the symbols in the order they were first seen.
func (t *Tracker) Symbols() []string {
	out := make([]string, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// Skipped is the number of fills ignored for a missing timestamp or a
// non-positive price.
func (t *Tracker) Skipped() int { return t.skipped }

// Result is the output of Reconstruct.
type Result struct {
	Trades    []Trade
	Positions map[string]State
	Skipped   int
}

// PnLs returns the realized P&L of every trade in fill order.
func (r Result) PnLs() []float64 {
	out := make([]float64, len(r.Trades))
	for i, tr := range r.Trades {
		out[i] = tr.PnL
	}
	return out
}

// Reconstruct runs a fresh Tracker over fs in the order given.
func Reconstruct(fs []fills.Fill, pv PointValueFunc) Result {
	t := NewTracker(pv)
	for _, f := range fs {
		t.Apply(f)
	}
	return Result{
		Trades:    t.Trades(),
		Positions: t.Positions(),
		Skipped:   t.Skipped(),
	}
}
