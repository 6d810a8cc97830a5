// Package schedule turns flat assignment sequences into calendar-ready
// groups. Everything here is a stateless transformation over snapshots the
// store already handed out.
package schedule

import (
	"sort"
	"time"

	"stablehand/internal/domain"
)

// DayGroup holds one calendar day's assignments. Day is local midnight of
// the ISO date; Assignments keep the input's relative order.
type DayGroup struct {
	Date        domain.Date
	Day         time.Time
	Assignments []*domain.Assignment
}

// GroupAssignmentsByDay partitions assignments by exact date-string match
// into groups sorted ascending by date. Within a day the input order is
// preserved, which makes the function idempotent: flattening the output and
// regrouping yields the same groups in the same order.
func GroupAssignmentsByDay(assignments []*domain.Assignment) []DayGroup {
	index := make(map[domain.Date]int, len(assignments))
	groups := make([]DayGroup, 0, len(assignments))

	for _, a := range assignments {
		i, ok := index[a.Date]
		if !ok {
			i = len(groups)
			index[a.Date] = i
			groups = append(groups, DayGroup{Date: a.Date, Day: a.Date.Time()})
		}
		groups[i].Assignments = append(groups[i].Assignments, a)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})
	return groups
}

// Flatten is the inverse of GroupAssignmentsByDay up to day ordering; it
// concatenates the groups' assignments in group order.
func Flatten(groups []DayGroup) []*domain.Assignment {
	var out []*domain.Assignment
	for _, g := range groups {
		out = append(out, g.Assignments...)
	}
	return out
}

// GenerateDateOptions produces exactly count selectable dates with no
// duplicates. Seeding order: the grouped days' dates in their existing order
// (up to count), then the caller's forced includes, then consecutive days
// padded forward from today until count is reached. Deduplication is by ISO
// string, first occurrence wins.
func GenerateDateOptions(groups []DayGroup, include []domain.Date, count int, today domain.Date) []domain.Date {
	if count <= 0 {
		return nil
	}

	seen := make(map[domain.Date]struct{}, count)
	out := make([]domain.Date, 0, count)
	add := func(d domain.Date) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}

	for _, g := range groups {
		if len(out) >= count {
			break
		}
		add(g.Date)
	}
	for _, d := range include {
		add(d)
	}
	if len(out) > count {
		out = out[:count]
	}
	for d := today; len(out) < count; d = d.AddDays(1) {
		add(d)
	}
	return out
}

// FilterVisible drops assignments whose task category the stable's settings
// hide. Unknown categories stay visible.
func FilterVisible(assignments []*domain.Assignment, visibility domain.EventVisibility) []*domain.Assignment {
	out := make([]*domain.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if visibility.Visible(a.Task.Category()) {
			out = append(out, a)
		}
	}
	return out
}
