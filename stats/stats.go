// Package stats reduces realized trade P&L into session statistics.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a list of realized P&L values. Break-even values count
// toward TotalTrades and GrossPnL but neither wins nor losses.
type Stats struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent of wins among decided trades
	AvgWinner     float64
	AvgLoser      float64 // negative
	GrossPnL      float64
	LargestWinner float64
	LargestLoser  float64
	ProfitFactor  float64
	StdDev        float64
}

// Aggregate computes Stats for pnls. An empty list yields all zeros.
func Aggregate(pnls []float64) Stats {
	s := Stats{TotalTrades: len(pnls)}
	if len(pnls) == 0 {
		return s
	}

	var winners, losers []float64
	for _, p := range pnls {
		switch {
		case p > 0:
			winners = append(winners, p)
		case p < 0:
			losers = append(losers, p)
		}
	}

	s.WinningTrades = len(winners)
	s.LosingTrades = len(losers)
	s.GrossPnL = floats.Sum(pnls)

	if decided := s.WinningTrades + s.LosingTrades; decided > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(decided) * 100
	}

	if len(winners) > 0 {
		s.AvgWinner = stat.Mean(winners, nil)
		s.LargestWinner = floats.Max(winners)
	}
	if len(losers) > 0 {
		s.AvgLoser = stat.Mean(losers, nil)
		s.LargestLoser = floats.Min(losers)
		s.ProfitFactor = floats.Sum(winners) / math.Abs(floats.Sum(losers))
	}

	if len(pnls) > 1 {
		s.StdDev = stat.StdDev(pnls, nil)
	}
	return s
}

// NetPnL subtracts a caller-supplied commission total from GrossPnL.
func (s Stats) NetPnL(commissions float64) float64 {
	return s.GrossPnL - commissions
}
