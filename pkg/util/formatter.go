package util

import (
	"fmt"
	"math"
)

func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue == 0:
		return fmt.Sprintf("%.3f %s", 0.0, unit)
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatFixed prints value with a fixed number of decimals, e.g. "3.4000 V".
// Precision below 2 is raised to 2.
func FormatFixed(value float64, unit string, precision int) string {
	precision = Clamp(precision, 2, 12)
	if value == 0 {
		value = 0 // drop negative zero
	}
	return fmt.Sprintf("%.*f %s", precision, value, unit)
}

func FormatUnknown(name string, value float64, unit string, precision int) string {
	if precision < 0 {
		return fmt.Sprintf("%s = %s", name, FormatValueFactor(value, unit))
	}
	return fmt.Sprintf("%s = %s", name, FormatFixed(value, unit, precision))
}
