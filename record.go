package unitconverter

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Record is one accepted conversion, formatted for display. Records are
// created once and never mutated.
type Record struct {
	ID        string
	Request   ConversionRequest
	Result    float64
	Text      string
	CreatedAt time.Time
}

// NewRecord formats "<value> <source> = <result> <dest>". A negative
// precision selects the shortest representation that round-trips.
func NewRecord(req ConversionRequest, result float64, precision int) Record {
	return Record{
		ID:        uuid.New().String(),
		Request:   req,
		Result:    result,
		Text:      FormatConversion(req, result, precision),
		CreatedAt: time.Now(),
	}
}

func FormatConversion(req ConversionRequest, result float64, precision int) string {
	return FormatValue(req.Value, precision) + " " + string(req.SourceUnit) +
		" = " + FormatValue(result, precision) + " " + string(req.DestUnit)
}

func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
