package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beezkneez/bz-journal/config"
	"github.com/beezkneez/bz-journal/internal/logger"
	"github.com/beezkneez/bz-journal/journal"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfigFile = "tradelog.yaml"

var (
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tradelog",
	Short: "A futures trading journal built from broker fill logs",
	Long: `Tradelog turns a broker execution log (CSV or TSV, one fill per line)
into completed trades and session statistics.

It provides tools for:
  - Reconstructing trades and realized P&L from raw fills
  - Win rate, average winner/loser and net P&L per session
  - Recording sessions in a SQLite or CSV journal
  - Querying trades by day and 5/30 day performance
  - Exporting trades to CSV and Org-mode

Settings come from tradelog.yaml, TRADELOG_* environment variables
(optionally loaded from .env) and flags, in increasing priority.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./"+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().String("db", "", "path to SQLite journal DB")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("journal.db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetEnvPrefix("TRADELOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	c, err := loadConfig()
	if err != nil {
		return err
	}

	if v := viper.GetString("journal.db_path"); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	if v := viper.GetString("log.level"); v != "" {
		c.Log.Level = v
	}
	if v := viper.GetString("timezone"); v != "" {
		c.Timezone = v
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cfg = c
	log = logger.New(cfg.Log)
	return nil
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = viper.GetString("config")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	c, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// openJournal opens the configured journal for writing.
func openJournal() (journal.Journal, error) {
	if cfg.Journal.Type == "csv" {
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.SessionsFile)
	}
	return openDB()
}

// openDB opens the SQLite journal; queries need it regardless of the
// configured journal type.
func openDB() (*journal.SQLite, error) {
	path := cfg.Journal.DBPath
	if path == "" {
		path = config.Default().Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}
