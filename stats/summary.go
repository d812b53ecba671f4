package stats

import (
	"sort"

	"github.com/beezkneez/bz-journal/fills"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes fill activity, independent of P&L.
type Summary struct {
	TotalFills  int
	BuyFills    int
	SellFills   int
	TotalVolume float64
	Symbols     []string
	OrderTypes  []string

	// Price figures only consider fills with a positive price.
	HighPrice  float64
	LowPrice   float64
	AvgPrice   float64
	PriceRange float64

	AvgFillSize float64

	// HourlyActivity counts fills by the HH of their timestamp.
	HourlyActivity map[string]int
}

// Summarize walks every fill, including ones the position tracker skips.
func Summarize(fs []fills.Fill) Summary {
	s := Summary{
		TotalFills:     len(fs),
		HourlyActivity: make(map[string]int),
	}

	symbols := map[string]struct{}{}
	orderTypes := map[string]struct{}{}
	var prices []float64

	for _, f := range fs {
		switch f.Side {
		case fills.Buy:
			s.BuyFills++
		case fills.Sell:
			s.SellFills++
		}
		s.TotalVolume += f.Quantity

		if f.Symbol != "" {
			symbols[f.Symbol] = struct{}{}
		}
		if f.OrderType != "" {
			orderTypes[f.OrderType] = struct{}{}
		}
		if f.Price > 0 {
			prices = append(prices, f.Price)
		}
		if h := f.Hour(); h != "" {
			s.HourlyActivity[h]++
		}
	}

	s.Symbols = sortedKeys(symbols)
	s.OrderTypes = sortedKeys(orderTypes)

	if len(prices) > 0 {
		s.HighPrice = floats.Max(prices)
		s.LowPrice = floats.Min(prices)
		s.AvgPrice = stat.Mean(prices, nil)
		s.PriceRange = s.HighPrice - s.LowPrice
	}
	if s.TotalVolume > 0 {
		s.AvgFillSize = s.TotalVolume / float64(s.TotalFills)
	}
	return s
}

// Hours returns the keys of HourlyActivity in ascending order.
func (s Summary) Hours() []string {
	hours := make([]string, 0, len(s.HourlyActivity))
	for h := range s.HourlyActivity {
		hours = append(hours, h)
	}
	sort.Strings(hours)
	return hours
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
