package unitconverter

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// WithSQLite mirrors the log into an in-memory SQLite database that lives
// as long as the session. Records appended earlier are copied in.
func (h *HistoryLog) WithSQLite() error {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	// every new connection to :memory: is a fresh, empty database
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return err
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for i, rec := range h.records {
		if err := persistRecord(db, i+1, rec); err != nil {
			db.Close()
			return err
		}
	}
	if h.db != nil {
		h.db.Close()
	}
	h.db = db
	return nil
}

// Close releases the SQLite mirror, if any. The in-memory log is kept.
func (h *HistoryLog) Close() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			source_unit TEXT NOT NULL,
			dest_unit TEXT NOT NULL,
			value REAL NOT NULL,
			result REAL NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS conversions_category ON conversions (category);`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func persistRecord(db *sql.DB, seq int, rec Record) error {
	_, err := db.Exec(`INSERT INTO conversions (seq, id, category, source_unit, dest_unit, value, result, text, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, rec.ID, string(rec.Request.Category), string(rec.Request.SourceUnit), string(rec.Request.DestUnit),
		rec.Request.Value, rec.Result, rec.Text, rec.CreatedAt.Format(time.RFC3339Nano))
	return err
}

func countByCategory(db *sql.DB) (map[Category]int, error) {
	rows, err := db.Query(`SELECT category, COUNT(*) FROM conversions GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count conversions: %w", err)
	}
	defer rows.Close()

	counts := emptyCounts()
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[Category(category)] = n
	}
	return counts, rows.Err()
}
