package unitconverter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, c Category, v float64, from, to Unit) Record {
	t.Helper()
	req := ConversionRequest{Category: c, SourceUnit: from, DestUnit: to, Value: v}
	out, err := DefaultConverter().Do(req)
	require.NoError(t, err)
	return NewRecord(req, out, -1)
}

func TestHistoryLog_AppendPreservesOrder(t *testing.T) {
	h := NewHistoryLog(nil)
	var want []string
	for i := 0; i < 5; i++ {
		rec := record(t, CategoryLength, float64(i), UnitKilometer, UnitMeter)
		h.Append(rec)
		want = append(want, rec.ID)
	}

	snap := h.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, 5, h.Len())
	for i, rec := range snap {
		assert.Equal(t, want[i], rec.ID)
	}
}

func TestHistoryLog_NoDeduplication(t *testing.T) {
	h := NewHistoryLog(nil)
	rec := record(t, CategoryWeight, 1, UnitPound, UnitGram)
	h.Append(rec)
	h.Append(rec)
	assert.Equal(t, 2, h.Len())
}

func TestHistoryLog_SnapshotIsACopy(t *testing.T) {
	h := NewHistoryLog(nil)
	h.Append(record(t, CategoryLength, 1, UnitMile, UnitYard))

	snap := h.Snapshot()
	snap[0].Text = "tampered"

	assert.NotEqual(t, "tampered", h.Snapshot()[0].Text)
	assert.Equal(t, 1, h.Len())
}

func TestHistoryLog_Tail(t *testing.T) {
	h := NewHistoryLog(nil)
	assert.Empty(t, h.Tail(3))

	var ids []string
	for i := 0; i < 5; i++ {
		rec := record(t, CategoryTemperature, float64(i), UnitCelsius, UnitKelvin)
		h.Append(rec)
		ids = append(ids, rec.ID)
	}

	tail := h.Tail(2)
	require.Len(t, tail, 2)
	assert.Equal(t, ids[3], tail[0].ID)
	assert.Equal(t, ids[4], tail[1].ID)

	assert.Len(t, h.Tail(0), 5)
	assert.Len(t, h.Tail(-1), 5)
	assert.Len(t, h.Tail(50), 5)

	tail[1].Text = "tampered"
	assert.NotEqual(t, "tampered", h.Snapshot()[4].Text)
}

func TestHistoryLog_Hooks(t *testing.T) {
	h := NewHistoryLog(nil)
	var seen []string
	h.OnAppend(func(rec Record, log *HistoryLog) error {
		// hooks run after the record is visible
		seen = append(seen, rec.ID)
		assert.Equal(t, len(seen), log.Len())
		return nil
	})
	h.OnAppend(func(Record, *HistoryLog) error {
		return errors.New("display offline")
	})

	h.Append(record(t, CategoryTemperature, 0, UnitCelsius, UnitKelvin))
	h.Append(record(t, CategoryTemperature, 1, UnitCelsius, UnitKelvin))

	assert.Len(t, seen, 2)
	assert.Equal(t, 2, h.Len())
}

func TestHistoryLog_CountByCategory(t *testing.T) {
	h := NewHistoryLog(nil)
	counts, err := h.CountByCategory()
	require.NoError(t, err)
	assert.Equal(t, map[Category]int{CategoryLength: 0, CategoryWeight: 0, CategoryTemperature: 0}, counts)

	h.Append(record(t, CategoryLength, 1, UnitMeter, UnitYard))
	h.Append(record(t, CategoryLength, 2, UnitMeter, UnitYard))
	h.Append(record(t, CategoryTemperature, 2, UnitKelvin, UnitCelsius))

	counts, err = h.CountByCategory()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[CategoryLength])
	assert.Equal(t, 0, counts[CategoryWeight])
	assert.Equal(t, 1, counts[CategoryTemperature])
}

func TestFormatConversion(t *testing.T) {
	req := ConversionRequest{Category: CategoryLength, SourceUnit: UnitMeter, DestUnit: UnitYard, Value: 12}
	yard := 0.9144

	assert.Equal(t, "12 Meter = 13.123359580052494 Yard", FormatConversion(req, 12/yard, -1))
	assert.Equal(t, "12.00 Meter = 13.12 Yard", FormatConversion(req, 12/yard, 2))
	assert.Equal(t, "-40", FormatValue(-40, -7))
}

func TestNewRecord(t *testing.T) {
	req := ConversionRequest{Category: CategoryWeight, SourceUnit: UnitKilogram, DestUnit: UnitGram, Value: 1}
	a := NewRecord(req, 1000, -1)
	b := NewRecord(req, 1000, -1)

	assert.Equal(t, "1 Kilogram = 1000 Gram", a.Text)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, req, a.Request)
}
