package convertermsgpack

import (
	"testing"
	"unitconverter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *unitconverter.Session {
	t.Helper()
	s := unitconverter.NewSession()
	_, ok := s.HandleInput(unitconverter.CategoryTemperature, "0", unitconverter.UnitCelsius, unitconverter.UnitKelvin)
	require.True(t, ok)
	_, ok = s.HandleInput(unitconverter.CategoryLength, "3", unitconverter.UnitMile, unitconverter.UnitKilometer)
	require.True(t, ok)
	return s
}

func TestRecord_KeepsZeroValues(t *testing.T) {
	s := newSession(t)
	rec := s.History().Snapshot()[0]

	data, err := MarshalRecord(rec)
	require.NoError(t, err)
	got, err := UnmarshalRecord(data)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Request, got.Request)
	assert.Equal(t, 0.0, got.Request.Value)
	assert.Equal(t, 273.15, got.Result)
	assert.Equal(t, "0 Celsius = 273.15 Kelvin", got.Text)
	assert.Equal(t, rec.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
}

func TestSnapshot_PreservesOrder(t *testing.T) {
	s := newSession(t)
	recs := s.History().Snapshot()

	data, err := MarshalSnapshot(recs)
	require.NoError(t, err)
	got, err := UnmarshalSnapshot(data)
	require.NoError(t, err)

	require.Len(t, got, 2)
	for i := range recs {
		assert.Equal(t, recs[i].ID, got[i].ID)
		assert.Equal(t, recs[i].Text, got[i].Text)
	}
}

func TestUnmarshal_Garbage(t *testing.T) {
	_, err := UnmarshalRecord([]byte{0xc1})
	assert.Error(t, err)
	_, err = UnmarshalSnapshot([]byte{0xc1})
	assert.Error(t, err)
}

func TestSplitSnapshot(t *testing.T) {
	s := unitconverter.NewSession()
	for i := 0; i < 300; i++ {
		_, ok := s.HandleInput(unitconverter.CategoryWeight, "1.5", unitconverter.UnitPound, unitconverter.UnitGram)
		require.True(t, ok)
	}
	recs := s.History().Snapshot()

	chunks, err := SplitSnapshot(recs, 4096)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	var got []unitconverter.Record
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 4096)
		part, err := UnmarshalSnapshot(chunk)
		require.NoError(t, err)
		require.NotEmpty(t, part)
		got = append(got, part...)
	}
	require.Len(t, got, len(recs))
	for i := range recs {
		assert.Equal(t, recs[i].ID, got[i].ID)
	}

	chunks, err = SplitSnapshot(nil, 4096)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	empty, err := UnmarshalSnapshot(chunks[0])
	require.NoError(t, err)
	assert.Empty(t, empty)
}
