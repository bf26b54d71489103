package unitconverter

import (
	"database/sql"
	"io"
	"log/slog"
	"sync"
)

// HookFunc runs after a record has been appended.
type HookFunc func(rec Record, h *HistoryLog) error

// HistoryLog is the append-only, insertion-ordered list of accepted
// conversions for one session.
type HistoryLog struct {
	mutex   sync.Mutex
	records []Record
	hooks   []HookFunc
	logger  *slog.Logger

	db *sql.DB
}

func NewHistoryLog(logger *slog.Logger) *HistoryLog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HistoryLog{logger: logger}
}

func (h *HistoryLog) OnAppend(hook HookFunc) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Append adds rec at the end of the log. A failing SQLite mirror is
// detached and a failing hook is logged; neither drops the record.
func (h *HistoryLog) Append(rec Record) {
	h.mutex.Lock()
	h.records = append(h.records, rec)
	seq := len(h.records)
	if h.db != nil {
		if err := persistRecord(h.db, seq, rec); err != nil {
			h.logger.Warn("history mirror write failed, detaching", "id", rec.ID, "error", err)
			_ = h.db.Close()
			h.db = nil
		}
	}
	hooks := append([]HookFunc(nil), h.hooks...)
	h.mutex.Unlock()

	h.runHooks(rec, hooks)
}

func (h *HistoryLog) runHooks(rec Record, hooks []HookFunc) {
	for _, hook := range hooks {
		if err := hook(rec, h); err != nil {
			h.logger.Warn("history hook failed", "id", rec.ID, "error", err)
		}
	}
}

// Snapshot returns a copy of the records, oldest first.
func (h *HistoryLog) Snapshot() []Record {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]Record(nil), h.records...)
}

// Tail returns a copy of the last n records, oldest first. n <= 0 returns
// every record.
func (h *HistoryLog) Tail(n int) []Record {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	recs := h.records
	if n > 0 && n < len(recs) {
		recs = recs[len(recs)-n:]
	}
	return append([]Record(nil), recs...)
}

func (h *HistoryLog) Len() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.records)
}

// CountByCategory returns the number of records per category. Categories
// without records are present with a zero count.
func (h *HistoryLog) CountByCategory() (map[Category]int, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.db != nil {
		return countByCategory(h.db)
	}
	counts := emptyCounts()
	for _, rec := range h.records {
		counts[rec.Request.Category]++
	}
	return counts, nil
}

func emptyCounts() map[Category]int {
	counts := make(map[Category]int, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	return counts
}
