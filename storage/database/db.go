package database

import (
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/trezcool/prepclass/core"
)

// schema is idempotent and runs on every Migrate call.
//
// history holds one row per (username, topic): regenerating a topic updates
// the existing row in place instead of appending a new one. The two tables
// are related by username only; no foreign key is declared between them.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    username      TEXT PRIMARY KEY,
    password_hash BLOB NOT NULL,
    created_at    TEXT NOT NULL,
    last_login    TEXT
);

CREATE TABLE IF NOT EXISTS history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    username   TEXT NOT NULL,
    topic      TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    timestamp  TEXT NOT NULL,
    pre_class  TEXT NOT NULL,
    in_class   TEXT NOT NULL,
    post_class TEXT NOT NULL,
    UNIQUE (username, topic)
);

CREATE INDEX IF NOT EXISTS idx_history_username ON history (username, timestamp DESC);
`

func Open(conf *core.Config) (*sqlx.DB, error) {
	q := make(url.Values)
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")

	db, err := sqlx.Open("sqlite", conf.Database.Path+"?"+q.Encode())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// the sqlite driver serializes writes; a single connection avoids
	// SQLITE_BUSY races between the pool's connections.
	db.SetMaxOpenConns(1)
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func Migrate(db *sqlx.DB) error {
	if err := ping(db); err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
