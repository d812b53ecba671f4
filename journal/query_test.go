package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	closeT := time.Date(2025, 7, 14, 9, 35, 40, 0, time.UTC)
	expected := testTrade("T123", "S1", 1, closeT, 60)

	require.NoError(t, j.RecordSession(testSession("S1", "2025-07-14", 60), []TradeRecord{expected}))

	actual, err := j.GetTrade("T123")
	require.NoError(t, err)

	assert.Equal(t, expected.TradeID, actual.TradeID)
	assert.Equal(t, expected.SessionID, actual.SessionID)
	assert.Equal(t, expected.Seq, actual.Seq)
	assert.Equal(t, expected.Symbol, actual.Symbol)
	assert.Equal(t, expected.Side, actual.Side)
	assert.InDelta(t, expected.Quantity, actual.Quantity, 1e-9)
	assert.InDelta(t, expected.EntryPrice, actual.EntryPrice, 1e-9)
	assert.InDelta(t, expected.ExitPrice, actual.ExitPrice, 1e-9)
	assert.InDelta(t, expected.PointValue, actual.PointValue, 1e-9)
	assert.Equal(t, expected.FillTime, actual.FillTime)
	assert.True(t, actual.CloseTime.Equal(expected.CloseTime))
	assert.InDelta(t, expected.RealizedPL, actual.RealizedPL, 1e-9)
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	want := testSession("S1", "2025-07-14", 35)
	require.NoError(t, j.RecordSession(want, nil))

	got, err := j.GetSession("S1")
	require.NoError(t, err)

	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.Source, got.Source)
	assert.True(t, got.Created.Equal(want.Created))
	assert.Equal(t, want.Fills, got.Fills)
	assert.Equal(t, want.Trades, got.Trades)
	assert.Equal(t, want.Wins, got.Wins)
	assert.Equal(t, want.Losses, got.Losses)
	assert.InDelta(t, want.WinRate, got.WinRate, 1e-9)
	assert.InDelta(t, want.GrossPL, got.GrossPL, 1e-9)
	assert.InDelta(t, want.Commissions, got.Commissions, 1e-9)
	assert.InDelta(t, want.NetPL, got.NetPL, 1e-9)

	_, err = j.GetSession("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTradesBySessionOrdering(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)
	trades := []TradeRecord{
		testTrade("T3", "S1", 3, base.Add(3*time.Minute), 30),
		testTrade("T1", "S1", 1, base.Add(1*time.Minute), 10),
		testTrade("T2", "S1", 2, base.Add(2*time.Minute), 20),
	}
	require.NoError(t, j.RecordSession(testSession("S1", "2025-07-14", 60), trades))

	got, err := j.ListTradesBySession("S1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "T1", got[0].TradeID)
	assert.Equal(t, "T2", got[1].TradeID)
	assert.Equal(t, "T3", got[2].TradeID)
}

func TestListTradesClosedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	baseTime := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	trades := []TradeRecord{
		testTrade("T1", "S1", 1, baseTime.Add(2*time.Hour), 10),
		testTrade("T2", "S1", 2, baseTime.Add(5*time.Hour), 20),
		testTrade("T3", "S1", 3, baseTime.Add(10*time.Hour), 30),
		testTrade("T4", "S1", 4, baseTime.Add(24*time.Hour), 40),
	}
	require.NoError(t, j.RecordSession(testSession("S1", "2025-05-01", 100), trades))

	results, err := j.ListTradesClosedBetween(baseTime.Add(3*time.Hour), baseTime.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "T2", results[0].TradeID)
	assert.Equal(t, "T3", results[1].TradeID)
	assert.True(t, results[0].CloseTime.Before(results[1].CloseTime))
}

func TestListTradesClosedBetweenEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	results, err := j.ListTradesClosedBetween(start, end)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListSessionsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for _, s := range []SessionRecord{
		testSession("S3", "2025-07-16", 30),
		testSession("S1", "2025-07-14", 10),
		testSession("S2", "2025-07-15", 20),
		testSession("S0", "2025-07-01", 5),
	} {
		require.NoError(t, j.RecordSession(s, nil))
	}

	got, err := j.ListSessionsBetween("2025-07-14", "2025-07-16")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "S1", got[0].SessionID)
	assert.Equal(t, "S2", got[1].SessionID)
	assert.Equal(t, "S3", got[2].SessionID)
}

func TestPeriodMetrics(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for _, s := range []SessionRecord{
		testSession("S1", "2025-07-10", 100),
		testSession("S2", "2025-07-12", -40),
		testSession("S3", "2025-07-14", 25),
		testSession("S4", "2025-06-01", 999),
	} {
		require.NoError(t, j.RecordSession(s, nil))
	}

	p, err := j.LastDays(time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC), 5)
	require.NoError(t, err)

	assert.Equal(t, "2025-07-10", p.From)
	assert.Equal(t, "2025-07-14", p.To)
	assert.Equal(t, 3, p.Sessions)
	assert.Equal(t, 6, p.Trades)
	assert.Equal(t, 3, p.Wins)
	assert.Equal(t, 3, p.Losses)
	assert.InDelta(t, 50.0, p.WinRate(), 1e-9)
	assert.InDelta(t, 85.0, p.NetPL, 1e-9)
	assert.InDelta(t, 15.0, p.Commissions, 1e-9)
	assert.InDelta(t, 100.0, p.GrossPL, 1e-9)
}

func TestPeriodMetricsEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	p, err := j.PeriodMetrics("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Zero(t, p.Sessions)
	assert.Zero(t, p.NetPL)
	assert.Zero(t, p.WinRate())
}
