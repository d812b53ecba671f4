package journal

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sqlx.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

const insertSession = `
	INSERT INTO sessions
	(session_id, date, source, created, fills, skipped, volume, trades, wins, losses,
	 win_rate, avg_winner, avg_loser, gross_pl, commissions, net_pl)
	VALUES (:session_id, :date, :source, :created, :fills, :skipped, :volume, :trades, :wins, :losses,
	 :win_rate, :avg_winner, :avg_loser, :gross_pl, :commissions, :net_pl)`

const insertTrade = `
	INSERT INTO trades
	(trade_id, session_id, seq, symbol, side, quantity, entry_price, exit_price,
	 point_value, fill_time, close_time, realized_pl)
	VALUES (:trade_id, :session_id, :seq, :symbol, :side, :quantity, :entry_price, :exit_price,
	 :point_value, :fill_time, :close_time, :realized_pl)`

// RecordSession stores a session and its trades atomically.
func (j *SQLite) RecordSession(s SessionRecord, trades []TradeRecord) error {
	tx, err := j.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(insertSession, s); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for _, t := range trades {
		if _, err := tx.NamedExec(insertTrade, t); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.TradeID, err)
		}
	}
	return tx.Commit()
}

// RecordTrade stores a single trade. Its session must already exist.
func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.NamedExec(insertTrade, t)
	return err
}

// DeleteSession removes a session and every trade recorded with it.
func (j *SQLite) DeleteSession(sessionID string) error {
	tx, err := j.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
