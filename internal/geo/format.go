package geo

import "fmt"

// FormatDistance renders a distance for display, e.g. "3.2 km away" or "850 m away".
// Unknown distances render as an empty string.
func FormatDistance(km float64) string {
	const metersPerKm = 1000

	switch {
	case IsUnknown(km) || km < 0:
		return ""
	case km < 1:
		return fmt.Sprintf("%.0f m away", km*metersPerKm)
	default:
		return fmt.Sprintf("%.1f km away", km)
	}
}
