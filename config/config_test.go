package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beezkneez/bz-journal/internal/logger"
	"github.com/beezkneez/bz-journal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "./tradelog.sqlite", cfg.Journal.DBPath)
	assert.Equal(t, market.DefaultRules, cfg.Instruments)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	sqlite := JournalConfig{Type: "sqlite", DBPath: "j.db"}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "valid csv",
			config:  &Config{Journal: JournalConfig{Type: "csv", TradesFile: "t.csv", SessionsFile: "s.csv"}},
			wantErr: false,
		},
		{
			name:    "unknown journal type",
			config:  &Config{Journal: JournalConfig{Type: "postgres"}},
			wantErr: true,
			errMsg:  "journal.type must be 'csv' or 'sqlite'",
		},
		{
			name:    "csv without files",
			config:  &Config{Journal: JournalConfig{Type: "csv", TradesFile: "t.csv"}},
			wantErr: true,
			errMsg:  "trades_file and sessions_file required",
		},
		{
			name:    "sqlite without path",
			config:  &Config{Journal: JournalConfig{Type: "sqlite"}},
			wantErr: true,
			errMsg:  "db_path required",
		},
		{
			name:    "negative commissions",
			config:  &Config{Journal: sqlite, Commissions: -1},
			wantErr: true,
			errMsg:  "commissions must not be negative",
		},
		{
			name: "empty instrument match",
			config: &Config{Journal: sqlite, Instruments: []market.PointValueRule{
				{Match: "", PointValue: 5},
			}},
			wantErr: true,
			errMsg:  "instruments[0].match is required",
		},
		{
			name: "zero point value",
			config: &Config{Journal: sqlite, Instruments: []market.PointValueRule{
				{Match: "ESU25", PointValue: 50},
				{Match: "CLQ25", PointValue: 0},
			}},
			wantErr: true,
			errMsg:  "instruments[1].point_value must be positive",
		},
		{
			name:    "bad log format",
			config:  &Config{Journal: sqlite, Log: logger.Config{Format: "xml"}},
			wantErr: true,
			errMsg:  "log.format",
		},
		{
			name:    "bad timezone",
			config:  &Config{Journal: sqlite, Timezone: "Mars/Olympus"},
			wantErr: true,
			errMsg:  "unknown timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Commissions = 4.5
			cfg.Instruments = append(cfg.Instruments, market.PointValueRule{Match: "ESU25", PointValue: 50})
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Log, loaded.Log)
			assert.Equal(t, cfg.Instruments, loaded.Instruments)
			assert.Equal(t, cfg.Commissions, loaded.Commissions)
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: sqlite\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestPointValues(t *testing.T) {
	cfg := &Config{Instruments: []market.PointValueRule{{Match: "ESU25", PointValue: 50}}}
	pv := cfg.PointValues()

	assert.Equal(t, 50.0, pv.Of("F.US.ESU25"))
	assert.Equal(t, 20.0, pv.Of("F.US.ENQU25"))
	assert.Equal(t, 1.0, pv.Of("F.US.CLQ25"))
}

func TestLocation(t *testing.T) {
	loc, err := (&Config{}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = (&Config{Timezone: "UTC"}).Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
