package schedule

import (
	"strings"

	"stablehand/internal/domain"
)

// Label formats are behavioral contracts consumed verbatim by calendar
// screens: headers use the long weekday, chips the short one, and both are
// uppercased.

// DayHeading returns the uppercased header label for a day group, e.g.
// "SUNDAY, 10 MARCH" for 2024-03-10.
func DayHeading(d domain.Date) string {
	return strings.ToUpper(d.Time().Format("Monday, 2 January"))
}

// ChipLabel returns the uppercased short label for a date chip, e.g.
// "SUN 10" for 2024-03-10.
func ChipLabel(d domain.Date) string {
	return strings.ToUpper(d.Time().Format("Mon 2"))
}
