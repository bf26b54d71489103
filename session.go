package unitconverter

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Session composes a converter with the history log it feeds. It is the
// handler invoked by the UI on every input change.
type Session struct {
	converter *Converter
	history   *HistoryLog
	logger    *slog.Logger
	precision int
}

type SessionOption func(*Session)

func WithConverter(c *Converter) SessionOption {
	return func(s *Session) {
		s.converter = c
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPrecision sets the number of decimals in record text; negative means
// shortest round-trip formatting.
func WithPrecision(precision int) SessionOption {
	return func(s *Session) {
		s.precision = precision
	}
}

func WithHistory(h *HistoryLog) SessionOption {
	return func(s *Session) {
		s.history = h
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{precision: -1}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.converter == nil {
		s.converter = defaultConverter
	}
	if s.history == nil {
		s.history = NewHistoryLog(s.logger)
	}
	return s
}

func (s *Session) History() *HistoryLog {
	return s.history
}

func (s *Session) Precision() int {
	return s.precision
}

// HandleInput parses raw and converts it. Unparseable input and unsupported
// unit pairs return false and leave the history untouched.
func (s *Session) HandleInput(category Category, raw string, from, to Unit) (Record, bool) {
	value, ok := parseValue(raw)
	if !ok {
		s.logger.Debug("ignoring unparseable input", "input", raw)
		return Record{}, false
	}
	rec, err := s.Convert(ConversionRequest{
		Category:   category,
		SourceUnit: from,
		DestUnit:   to,
		Value:      value,
	})
	if err != nil {
		return Record{}, false
	}
	return rec, true
}

// Convert runs req through the converter and appends the record on success.
func (s *Session) Convert(req ConversionRequest) (Record, error) {
	result, err := s.converter.Do(req)
	if err != nil {
		s.logger.Debug("conversion rejected", "error", err)
		return Record{}, err
	}
	rec := NewRecord(req, result, s.precision)
	s.history.Append(rec)
	s.logger.Info("conversion", "category", req.Category, "text", rec.Text)
	return rec, nil
}

func parseValue(raw string) (float64, bool) {
	// ParseFloat allows underscores between digits; plain decimal input does not.
	if strings.ContainsRune(raw, '_') {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
