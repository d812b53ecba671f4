// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	source TEXT NOT NULL,
	created DATETIME NOT NULL,
	fills INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	volume REAL NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	avg_winner REAL NOT NULL,
	avg_loser REAL NOT NULL,
	gross_pl REAL NOT NULL,
	commissions REAL NOT NULL,
	net_pl REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(session_id),
	seq INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	point_value REAL NOT NULL,
	fill_time TEXT NOT NULL,
	close_time DATETIME NOT NULL,
	realized_pl REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
CREATE INDEX IF NOT EXISTS idx_trades_session ON trades(session_id, seq);
CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);
`
