package unitconverter

type Category string

const (
	CategoryLength      Category = "Length"
	CategoryWeight      Category = "Weight"
	CategoryTemperature Category = "Temperature"
)

type Unit string

const (
	UnitMeter     Unit = "Meter"
	UnitKilometer Unit = "Kilometer"
	UnitMile      Unit = "Mile"
	UnitYard      Unit = "Yard"

	UnitGram     Unit = "Gram"
	UnitKilogram Unit = "Kilogram"
	UnitPound    Unit = "Pound"
	UnitOunce    Unit = "Ounce"

	UnitCelsius    Unit = "Celsius"
	UnitFahrenheit Unit = "Fahrenheit"
	UnitKelvin     Unit = "Kelvin"
)

var categories = []Category{CategoryLength, CategoryWeight, CategoryTemperature}

var categoryUnits = map[Category][]Unit{
	CategoryLength:      {UnitMeter, UnitKilometer, UnitMile, UnitYard},
	CategoryWeight:      {UnitGram, UnitKilogram, UnitPound, UnitOunce},
	CategoryTemperature: {UnitCelsius, UnitFahrenheit, UnitKelvin},
}

// Categories returns the supported categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func ParseCategory(name string) (Category, bool) {
	for _, c := range categories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// UnitsOf returns the ordered unit list of a category, or nil for an unknown one.
func UnitsOf(c Category) []Unit {
	units, ok := categoryUnits[c]
	if !ok {
		return nil
	}
	return append([]Unit(nil), units...)
}

func (c Category) Has(u Unit) bool {
	for _, unit := range categoryUnits[c] {
		if unit == u {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func (u Unit) String() string {
	return string(u)
}

// ConversionRequest is built per conversion attempt and not retained.
type ConversionRequest struct {
	Category   Category
	SourceUnit Unit
	DestUnit   Unit
	Value      float64
}
