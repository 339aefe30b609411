// Package store provides SQLite-based history of played rounds.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Round is one finished module
type Round struct {
	ID       int64
	Module   uuid.UUID
	Number   int
	Seed     int64
	Edgework string
	Line     string
	Solution []string
	Strikes  int
	Solved   bool
	PlayedAt time.Time
}

// roundRow is the database shape of a Round.
type roundRow struct {
	ID       int64  `db:"id"`
	Module   string `db:"module_uuid"`
	Number   int    `db:"module_number"`
	Seed     int64  `db:"seed"`
	Edgework string `db:"edgework"`
	Line     string `db:"line"`
	Solution string `db:"solution"`
	Strikes  int    `db:"strikes"`
	Solved   bool   `db:"solved"`
	PlayedAt int64  `db:"played_at"`
}

// DB wraps a SQLite connection for round history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		module_uuid TEXT NOT NULL,
		module_number INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		edgework TEXT NOT NULL,
		line TEXT NOT NULL,
		solution TEXT NOT NULL,
		strikes INTEGER NOT NULL,
		solved INTEGER NOT NULL,
		played_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_played_at ON rounds(played_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Record stores a finished round and returns its row id.
func (db *DB) Record(ctx context.Context, r Round) (int64, error) {
	row := roundRow{
		Module:   r.Module.String(),
		Number:   r.Number,
		Seed:     r.Seed,
		Edgework: r.Edgework,
		Line:     r.Line,
		Solution: strings.Join(r.Solution, ","),
		Strikes:  r.Strikes,
		Solved:   r.Solved,
		PlayedAt: r.PlayedAt.UnixNano(),
	}
	res, err := db.conn.NamedExecContext(ctx, `
		INSERT INTO rounds (module_uuid, module_number, seed, edgework, line, solution, strikes, solved, played_at)
		VALUES (:module_uuid, :module_number, :seed, :edgework, :line, :solution, :strikes, :solved, :played_at)`, row)
	if err != nil {
		return 0, fmt.Errorf("insert round: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit rounds, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]Round, error) {
	var rows []roundRow
	err := db.conn.SelectContext(ctx, &rows,
		"SELECT * FROM rounds ORDER BY played_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("select rounds: %w", err)
	}

	rounds := make([]Round, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.Module)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", row.ID, err)
		}
		var solution []string
		if row.Solution != "" {
			solution = strings.Split(row.Solution, ",")
		}
		rounds = append(rounds, Round{
			ID:       row.ID,
			Module:   id,
			Number:   row.Number,
			Seed:     row.Seed,
			Edgework: row.Edgework,
			Line:     row.Line,
			Solution: solution,
			Strikes:  row.Strikes,
			Solved:   row.Solved,
			PlayedAt: time.Unix(0, row.PlayedAt),
		})
	}
	return rounds, nil
}

// Stats summarises the stored history
type Stats struct {
	Rounds  int `db:"rounds"`
	Solved  int `db:"solved"`
	Strikes int `db:"strikes"`
}

// Stats returns totals over all stored rounds.
func (db *DB) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := db.conn.GetContext(ctx, &s, `
		SELECT COUNT(*) AS rounds,
		       COALESCE(SUM(solved), 0) AS solved,
		       COALESCE(SUM(strikes), 0) AS strikes
		FROM rounds`)
	if err != nil {
		return Stats{}, fmt.Errorf("round stats: %w", err)
	}
	return s, nil
}
