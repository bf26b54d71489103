package unitconverter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tolerance(c Category) float64 {
	if c == CategoryTemperature {
		return 1e-9
	}
	return 1e-6
}

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		value    float64
		from, to Unit
		want     float64
	}{
		{"km to m", CategoryLength, 1, UnitKilometer, UnitMeter, 1000},
		{"mile to m", CategoryLength, 1, UnitMile, UnitMeter, 1609.34},
		{"m to yard", CategoryLength, 0.9144, UnitMeter, UnitYard, 1},
		{"lb to g", CategoryWeight, 1, UnitPound, UnitGram, 453.592},
		{"kg to oz", CategoryWeight, 28.3495, UnitKilogram, UnitOunce, 1000},
		{"C to F", CategoryTemperature, 0, UnitCelsius, UnitFahrenheit, 32},
		{"F to C", CategoryTemperature, 212, UnitFahrenheit, UnitCelsius, 100},
		{"C to K", CategoryTemperature, 0, UnitCelsius, UnitKelvin, 273.15},
		{"K to C", CategoryTemperature, 273.15, UnitKelvin, UnitCelsius, 0},
		{"F to K", CategoryTemperature, 32, UnitFahrenheit, UnitKelvin, 273.15},
		{"K to F", CategoryTemperature, 273.15, UnitKelvin, UnitFahrenheit, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.category, tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance(tt.category))
		})
	}
}

func TestConvert_ExactValues(t *testing.T) {
	got, err := Convert("Length", 1, "Kilometer", "Meter")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)

	got, err = Convert("Temperature", 0, "Celsius", "Fahrenheit")
	require.NoError(t, err)
	assert.Equal(t, 32.0, got)

	got, err = Convert("Temperature", 212, "Fahrenheit", "Celsius")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestConvert_IdentityAndRoundTrip(t *testing.T) {
	values := []float64{-40, 0, 1, 12.5, 98.6, 5280}

	for _, c := range Categories() {
		units := UnitsOf(c)
		for _, a := range units {
			for _, v := range values {
				got, err := Convert(c, v, a, a)
				require.NoError(t, err)
				assert.InDelta(t, v, got, tolerance(c), "%s %v %s identity", c, v, a)
			}
			for _, b := range units {
				for _, v := range values {
					there, err := Convert(c, v, a, b)
					require.NoError(t, err)
					back, err := Convert(c, there, b, a)
					require.NoError(t, err)
					assert.InDelta(t, v, back, tolerance(c), "%s %v %s->%s->%s", c, v, a, b, a)
				}
			}
		}
	}
}

func TestConvert_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		from, to Unit
	}{
		{"unknown source", CategoryLength, "NotAUnit", UnitMeter},
		{"unknown source weight", CategoryWeight, "NotAUnit", UnitMeter},
		{"unknown source temperature", CategoryTemperature, "NotAUnit", UnitMeter},
		{"unknown dest", CategoryWeight, UnitGram, "NotAUnit"},
		{"unit of another category", CategoryLength, UnitMeter, UnitGram},
		{"temperature unit in length", CategoryLength, UnitCelsius, UnitCelsius},
		{"unknown category", "Volume", UnitMeter, UnitMeter},
		{"same unknown unit", CategoryTemperature, "Rankine", "Rankine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.category, 1, tt.from, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}
}

func TestConvert_OverflowIsUnsupported(t *testing.T) {
	_, err := Convert(CategoryLength, 1.7e308, UnitKilometer, UnitMeter)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Convert(CategoryTemperature, -math.MaxFloat64, UnitCelsius, UnitFahrenheit)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Convert(CategoryWeight, math.Inf(1), UnitGram, UnitGram)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Convert(CategoryTemperature, math.NaN(), UnitKelvin, UnitKelvin)
	assert.ErrorIs(t, err, ErrUnsupported)

	got, err := Convert(CategoryLength, math.MaxFloat64, UnitMeter, UnitMeter)
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, got)
}

func TestConverter_TemperatureIdentityIsExact(t *testing.T) {
	for _, u := range UnitsOf(CategoryTemperature) {
		got, err := Convert(CategoryTemperature, 36.6, u, u)
		require.NoError(t, err)
		assert.Equal(t, 36.6, got)
	}
}

func TestConverter_MissingRule(t *testing.T) {
	c := NewConverter(nil)
	c.AddRule(CategoryTemperature, temperatureRules[0])

	got, err := c.Convert(CategoryTemperature, 100, UnitCelsius, UnitFahrenheit)
	require.NoError(t, err)
	assert.Equal(t, 212.0, got)

	_, err = c.Convert(CategoryTemperature, 100, UnitKelvin, UnitCelsius)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = c.Convert(CategoryLength, 1, UnitMeter, UnitYard)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestConverter_Do(t *testing.T) {
	got, err := DefaultConverter().Do(ConversionRequest{
		Category:   CategoryWeight,
		SourceUnit: UnitKilogram,
		DestUnit:   UnitGram,
		Value:      2.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2500, got, 1e-9)
}

func TestUnitConverter_Rules(t *testing.T) {
	uc := NewUnitConverter()
	uc.AddRule("Volume", "Liter", 1)
	uc.AddRule("Volume", "Milliliter", 0.001)

	got, ok := uc.Convert("Volume", 1500, "Milliliter", "Liter")
	require.True(t, ok)
	assert.InDelta(t, 1.5, got, 1e-12)

	_, ok = uc.ToBase("Volume", "Gallon", 1)
	assert.False(t, ok)
	_, ok = uc.FromBase("Length", "Meter", 1)
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []Category{CategoryLength, CategoryWeight, CategoryTemperature}, Categories())

	c, ok := ParseCategory("Weight")
	require.True(t, ok)
	assert.Equal(t, CategoryWeight, c)
	_, ok = ParseCategory("weight")
	assert.False(t, ok)

	assert.Equal(t, []Unit{UnitCelsius, UnitFahrenheit, UnitKelvin}, UnitsOf(CategoryTemperature))
	assert.Nil(t, UnitsOf("Volume"))
	assert.True(t, CategoryLength.Has(UnitYard))
	assert.False(t, CategoryLength.Has(UnitOunce))

	units := UnitsOf(CategoryLength)
	units[0] = "Furlong"
	assert.Equal(t, UnitMeter, UnitsOf(CategoryLength)[0])
}
