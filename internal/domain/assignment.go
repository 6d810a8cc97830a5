package domain

import (
	"strings"
	"time"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

// Date is a calendar date in ISO YYYY-MM-DD form. It is the grouping key for
// schedule aggregation; equality is exact string match, so no timezone
// normalization happens beyond constructing a local-midnight time from it.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates s as an ISO calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.ParseInLocation(dateLayout, s, time.Local); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "date must be YYYY-MM-DD")
	}
	return Date(s), nil
}

// DateOf converts a time to its local calendar date.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time returns local midnight of the date. Invalid dates yield the zero time;
// callers that validated through ParseDate never see it.
func (d Date) Time() time.Time {
	t, err := time.ParseInLocation(dateLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n days forward.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string {
	return string(d)
}

// Slot is the time-of-day bucket an assignment occupies.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotMidday  Slot = "midday"
	SlotEvening Slot = "evening"
)

var validSlots = map[Slot]bool{
	SlotMorning: true,
	SlotMidday:  true,
	SlotEvening: true,
}

// IsValid checks whether the slot is one of the supported values.
func (s Slot) IsValid() bool {
	return validSlots[s]
}

// TaskKind names what an assignment is about. Kinds map 1:1 onto the event
// visibility categories so stable settings can filter calendar views.
type TaskKind string

const (
	TaskFeeding     TaskKind = "feeding"
	TaskCleaning    TaskKind = "cleaning"
	TaskRiderAway   TaskKind = "riderAway"
	TaskFarrierAway TaskKind = "farrierAway"
	TaskVetAway     TaskKind = "vetAway"
	TaskEvening     TaskKind = "evening"
)

var validTasks = map[TaskKind]bool{
	TaskFeeding:     true,
	TaskCleaning:    true,
	TaskRiderAway:   true,
	TaskFarrierAway: true,
	TaskVetAway:     true,
	TaskEvening:     true,
}

// IsValid checks whether the task kind is one of the supported values.
func (k TaskKind) IsValid() bool {
	return validTasks[k]
}

// Category returns the event visibility category governing this kind.
func (k TaskKind) Category() EventCategory {
	return EventCategory(k)
}

// Assignment is a dated scheduling entry belonging to a stable. The date is
// its immutable grouping key; rescheduling rewrites the record under gateway
// control, and cancelling a task deletes it.
type Assignment struct {
	ID        id.AssignmentID
	StableID  id.StableID
	Date      Date
	Slot      Slot
	Task      TaskKind
	Assignee  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAssignment validates and constructs an assignment.
func NewAssignment(assignmentID id.AssignmentID, stableID id.StableID, date Date, slot Slot, task TaskKind, assignee string, now time.Time) (*Assignment, error) {
	if stableID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "assignment requires an owning stable")
	}
	if _, err := ParseDate(string(date)); err != nil {
		return nil, err
	}
	if !slot.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown slot: "+string(slot))
	}
	if !task.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown task kind: "+string(task))
	}
	return &Assignment{
		ID:        assignmentID,
		StableID:  stableID,
		Date:      date,
		Slot:      slot,
		Task:      task,
		Assignee:  strings.TrimSpace(assignee),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a copy for defensive snapshots.
func (a *Assignment) Clone() *Assignment {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

// AssignmentPatch is a partial update applied by the gateway. A non-nil Date
// reschedules the assignment onto a different day.
type AssignmentPatch struct {
	Date     *Date
	Slot     *Slot
	Task     *TaskKind
	Assignee *string
}

// CanApply validates the patch against the assignment's invariants.
func (a *Assignment) CanApply(patch AssignmentPatch) error {
	if patch.Date != nil {
		if _, err := ParseDate(string(*patch.Date)); err != nil {
			return err
		}
	}
	if patch.Slot != nil && !patch.Slot.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown slot: "+string(*patch.Slot))
	}
	if patch.Task != nil && !patch.Task.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown task kind: "+string(*patch.Task))
	}
	return nil
}

// Apply commits the patch. Call CanApply first.
func (a *Assignment) Apply(patch AssignmentPatch, now time.Time) {
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Slot != nil {
		a.Slot = *patch.Slot
	}
	if patch.Task != nil {
		a.Task = *patch.Task
	}
	if patch.Assignee != nil {
		a.Assignee = strings.TrimSpace(*patch.Assignee)
	}
	a.UpdatedAt = now
}
