package guidance

import (
	"fmt"
	"math"
)

// Summary. human readable trip length, e.g. "12 min, 3.4 km" or "1 h 5 min, 850 m".
func Summary(travelTime, distance float64) string {
	return fmt.Sprintf("%s, %s", formatDuration(travelTime), formatDistance(distance))
}

func formatDuration(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	if seconds > 0 && minutes == 0 {
		minutes = 1
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d min", h, m)
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
