package journal

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wantTradeHeader = []string{
		"trade_id", "session_id", "seq", "symbol", "side", "quantity", "entry_price",
		"exit_price", "point_value", "fill_time", "realized_pl",
	}
	wantSessionHeader = []string{
		"session_id", "date", "source", "created", "fills", "trades", "wins", "losses",
		"win_rate", "avg_winner", "avg_loser", "gross_pl", "commissions", "net_pl",
	}
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	sessionsPath := filepath.Join(dir, "sessions.csv")

	j, err := NewCSV(tradesPath, sessionsPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{wantTradeHeader}, readCSV(t, tradesPath))
	assert.Equal(t, [][]string{wantSessionHeader}, readCSV(t, sessionsPath))
}

func TestCSVJournalRecordSessionAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	sessionsPath := filepath.Join(dir, "sessions.csv")

	closeT := time.Date(2025, 7, 14, 9, 35, 40, 0, time.UTC)

	j, err := NewCSV(tradesPath, sessionsPath)
	require.NoError(t, err)
	require.NoError(t, j.RecordSession(testSession("S1", "2025-07-14", 35),
		[]TradeRecord{testTrade("T1", "S1", 1, closeT, 60)}))
	require.NoError(t, j.Close())

	// reopening must not write a second header
	j, err = NewCSV(tradesPath, sessionsPath)
	require.NoError(t, err)
	require.NoError(t, j.RecordSession(testSession("S2", "2025-07-15", -10),
		[]TradeRecord{testTrade("T2", "S2", 1, closeT, -10)}))
	require.NoError(t, j.Close())

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 3)
	assert.Equal(t, wantTradeHeader, trades[0])
	assert.Equal(t, "T1", trades[1][0])
	assert.Equal(t, "T2", trades[2][0])
	assert.Equal(t, "2025-07-14 09:35:40", trades[1][9])

	sessions := readCSV(t, sessionsPath)
	require.Len(t, sessions, 3)
	assert.Equal(t, "S1", sessions[1][0])
	assert.Equal(t, "2025-07-14", sessions[1][1])
	assert.Equal(t, "2025-07-14T18:00:00Z", sessions[1][3])
	assert.Equal(t, "S2", sessions[2][0])
}

func TestWriteTradesCSV(t *testing.T) {
	t.Parallel()

	closeT := time.Date(2025, 7, 14, 9, 35, 40, 0, time.UTC)
	in := []TradeRecord{
		testTrade("T1", "S1", 1, closeT, 60),
		testTrade("T2", "S1", 2, closeT.Add(time.Minute), -12.5),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTradesCSV(&buf, in))

	var out []*tradeRow
	require.NoError(t, gocsv.Unmarshal(bytes.NewReader(buf.Bytes()), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "T2", out[1].TradeID)
	assert.Equal(t, 2, out[1].Seq)
	assert.InDelta(t, -12.5, out[1].RealizedPL, 1e-9)
	assert.InDelta(t, 23000.0, out[0].EntryPrice, 1e-9)
}
