package domain

// Weight units accepted on input.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

const kgToLb = 2.2046226218

// ValidUnit reports whether u is a unit ConvertWeight understands.
func ValidUnit(u string) bool {
	return u == UnitKg || u == UnitLb
}

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == UnitKg && to == UnitLb:
		return v * kgToLb
	case from == UnitLb && to == UnitKg:
		return v / kgToLb
	default:
		return v
	}
}
