package unitconverter

// UnitConverter converts through a base unit using per-unit factors.
type UnitConverter struct {
	rules map[Category]map[Unit]float64 // category -> unit -> toBase factor
}

func NewUnitConverter() *UnitConverter {
	return &UnitConverter{
		rules: make(map[Category]map[Unit]float64),
	}
}

// Add a rule like: 1 Kilometer = 1000 Meter -> (Length, Kilometer, 1000)
func (uc *UnitConverter) AddRule(category Category, unit Unit, factorToBase float64) {
	if uc.rules[category] == nil {
		uc.rules[category] = make(map[Unit]float64)
	}
	uc.rules[category][unit] = factorToBase
}

func (uc *UnitConverter) Supports(category Category) bool {
	_, ok := uc.rules[category]
	return ok
}

func (uc *UnitConverter) ToBase(category Category, unit Unit, value float64) (float64, bool) {
	if factors, ok := uc.rules[category]; ok {
		if factor, ok := factors[unit]; ok {
			return value * factor, true
		}
	}
	return 0, false
}

func (uc *UnitConverter) FromBase(category Category, unit Unit, base float64) (float64, bool) {
	if factors, ok := uc.rules[category]; ok {
		if factor, ok := factors[unit]; ok && factor != 0 {
			return base / factor, true
		}
	}
	return 0, false
}

func (uc *UnitConverter) Convert(category Category, value float64, from, to Unit) (float64, bool) {
	base, ok := uc.ToBase(category, from, value)
	if !ok {
		return 0, false
	}
	return uc.FromBase(category, to, base)
}

func defaultUnitConverter() *UnitConverter {
	uc := NewUnitConverter()
	uc.AddRule(CategoryLength, UnitMeter, 1)
	uc.AddRule(CategoryLength, UnitKilometer, 1000)
	uc.AddRule(CategoryLength, UnitMile, 1609.34)
	uc.AddRule(CategoryLength, UnitYard, 0.9144)

	uc.AddRule(CategoryWeight, UnitGram, 1)
	uc.AddRule(CategoryWeight, UnitKilogram, 1000)
	uc.AddRule(CategoryWeight, UnitPound, 453.592)
	uc.AddRule(CategoryWeight, UnitOunce, 28.3495)
	return uc
}
