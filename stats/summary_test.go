package stats

import (
	"testing"

	"github.com/beezkneez/bz-journal/fills"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	fs := []fills.Fill{
		{Timestamp: "2025-07-14 09:31:02", Symbol: "F.US.MNQU25", Side: fills.Buy, Quantity: 2, Price: 100, OrderType: "Market"},
		{Timestamp: "2025-07-14 09:45:10", Symbol: "F.US.MNQU25", Side: fills.Sell, Quantity: 2, Price: 110, OrderType: "Limit"},
		{Timestamp: "2025-07-14 10:02:00", Symbol: "F.US.ENQU25", Side: fills.Buy, Quantity: 1, Price: 120, OrderType: "Market"},
		{Timestamp: "", Symbol: "F.US.ENQU25", Side: fills.Sell, Quantity: 1, Price: 0},
	}

	s := Summarize(fs)

	assert.Equal(t, 4, s.TotalFills)
	assert.Equal(t, 2, s.BuyFills)
	assert.Equal(t, 2, s.SellFills)
	assert.InDelta(t, 6.0, s.TotalVolume, 1e-9)
	assert.Equal(t, []string{"F.US.ENQU25", "F.US.MNQU25"}, s.Symbols)
	assert.Equal(t, []string{"Limit", "Market"}, s.OrderTypes)
	assert.InDelta(t, 120.0, s.HighPrice, 1e-9)
	assert.InDelta(t, 100.0, s.LowPrice, 1e-9)
	assert.InDelta(t, 110.0, s.AvgPrice, 1e-9)
	assert.InDelta(t, 20.0, s.PriceRange, 1e-9)
	assert.InDelta(t, 1.5, s.AvgFillSize, 1e-9)
	assert.Equal(t, map[string]int{"09": 2, "10": 1}, s.HourlyActivity)
	assert.Equal(t, []string{"09", "10"}, s.Hours())
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)

	assert.Zero(t, s.TotalFills)
	assert.Zero(t, s.AvgFillSize)
	assert.Zero(t, s.HighPrice)
	assert.Empty(t, s.Symbols)
	assert.Empty(t, s.HourlyActivity)
}
