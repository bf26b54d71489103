package unitconverter

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupported is returned for any category, unit or unit pair the
// converter has no rule for.
var ErrUnsupported = errors.New("unsupported conversion")

// ConversionRule is a direct formula for one ordered unit pair.
type ConversionRule struct {
	FromUnit Unit
	ToUnit   Unit
	Formula  func(value float64) float64
}

// Converter combines factor-based categories with pairwise formula tables.
// It is read-only after construction and safe for concurrent use.
type Converter struct {
	units *UnitConverter
	rules map[Category][]ConversionRule
}

func NewConverter(units *UnitConverter) *Converter {
	if units == nil {
		units = NewUnitConverter()
	}
	return &Converter{
		units: units,
		rules: make(map[Category][]ConversionRule),
	}
}

// AddRule registers a formula for a category that has no base-unit factors.
func (c *Converter) AddRule(category Category, rule ConversionRule) {
	c.rules[category] = append(c.rules[category], rule)
}

// A result that overflows float64 is reported as unsupported rather than
// returned as an infinity.
func (c *Converter) Convert(category Category, value float64, from, to Unit) (float64, error) {
	out, err := c.convert(category, value, from, to)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("%w: %s %v %s -> %s out of range", ErrUnsupported, category, value, from, to)
	}
	return out, nil
}

func (c *Converter) convert(category Category, value float64, from, to Unit) (float64, error) {
	if !category.Has(from) || !category.Has(to) {
		return 0, unsupported(category, from, to)
	}
	if from == to {
		return value, nil
	}
	if c.units.Supports(category) {
		if out, ok := c.units.Convert(category, value, from, to); ok {
			return out, nil
		}
		return 0, unsupported(category, from, to)
	}
	for _, rule := range c.rules[category] {
		if rule.FromUnit == from && rule.ToUnit == to {
			return rule.Formula(value), nil
		}
	}
	return 0, unsupported(category, from, to)
}

func (c *Converter) Do(req ConversionRequest) (float64, error) {
	return c.Convert(req.Category, req.Value, req.SourceUnit, req.DestUnit)
}

func unsupported(category Category, from, to Unit) error {
	return fmt.Errorf("%w: %s %s -> %s", ErrUnsupported, category, from, to)
}

var temperatureRules = []ConversionRule{
	{FromUnit: UnitCelsius, ToUnit: UnitFahrenheit, Formula: func(v float64) float64 { return v*9/5 + 32 }},
	{FromUnit: UnitFahrenheit, ToUnit: UnitCelsius, Formula: func(v float64) float64 { return (v - 32) * 5 / 9 }},
	{FromUnit: UnitCelsius, ToUnit: UnitKelvin, Formula: func(v float64) float64 { return v + 273.15 }},
	{FromUnit: UnitKelvin, ToUnit: UnitCelsius, Formula: func(v float64) float64 { return v - 273.15 }},
	{FromUnit: UnitFahrenheit, ToUnit: UnitKelvin, Formula: func(v float64) float64 { return (v-32)*5/9 + 273.15 }},
	{FromUnit: UnitKelvin, ToUnit: UnitFahrenheit, Formula: func(v float64) float64 { return (v-273.15)*9/5 + 32 }},
}

// DefaultConverter returns a converter for Length, Weight and Temperature.
func DefaultConverter() *Converter {
	c := NewConverter(defaultUnitConverter())
	for _, rule := range temperatureRules {
		c.AddRule(CategoryTemperature, rule)
	}
	return c
}

var defaultConverter = DefaultConverter()

// Convert converts value between two units of category using the default
// converter.
func Convert(category Category, value float64, from, to Unit) (float64, error) {
	return defaultConverter.Convert(category, value, from, to)
}
