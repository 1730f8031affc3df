package core

import (
	"strings"
	"time"
)

const (
	// LowScoreThreshold is the grade ratio below which completed work counts as a low score.
	LowScoreThreshold = 0.75

	// DueSoonDays is the inclusive window, in calendar days from today, for due-soon work.
	DueSoonDays = 3
)

// CalendarDay returns midnight UTC of t's calendar date in t's own location.
// Due dates carry no time-of-day meaning, so comparisons happen on these values.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}

// IsCompleted reports whether the material has been finished.
func IsCompleted(m *Material) bool {
	return m != nil && m.CompletedAt != nil
}

// DaysUntilDue returns the calendar days from now until the due date.
// Negative values mean the due date has passed. ok is false without a due date.
func DaysUntilDue(m *Material, now time.Time) (days int, ok bool) {
	if m == nil || m.DueDate == nil || m.DueDate.IsZero() {
		return 0, false
	}
	return DaysBetween(now, *m.DueDate), true
}

// IsOverdue reports whether incomplete work was due before today.
func IsOverdue(m *Material, now time.Time) bool {
	if IsCompleted(m) {
		return false
	}
	days, ok := DaysUntilDue(m, now)
	return ok && days < 0
}

// IsDueToday reports whether the material is due on today's calendar day.
func IsDueToday(m *Material, now time.Time) bool {
	days, ok := DaysUntilDue(m, now)
	return ok && days == 0
}

// IsDueSoon reports whether incomplete work is due within DueSoonDays, today included.
func IsDueSoon(m *Material, now time.Time) bool {
	if IsCompleted(m) {
		return false
	}
	days, ok := DaysUntilDue(m, now)
	return ok && days >= 0 && days <= DueSoonDays
}

// GradeRatio returns earned over possible points.
// ok is false unless both grade fields are present and the maximum is positive.
func GradeRatio(m *Material) (ratio float64, ok bool) {
	if m == nil || m.GradeValue == nil || m.GradeMaxValue == nil || *m.GradeMaxValue <= 0 {
		return 0, false
	}
	return *m.GradeValue / *m.GradeMaxValue, true
}

// IsLowScore reports whether the material is graded below LowScoreThreshold.
// Ungraded or malformed grades never count as low.
func IsLowScore(m *Material) bool {
	ratio, ok := GradeRatio(m)
	return ok && ratio < LowScoreThreshold
}

var dueDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDueDate parses a due date from its wire form and truncates it to its
// calendar day. It returns nil for empty or unparsable input so the material
// is treated as never overdue and never due soon.
func ParseDueDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			day := CalendarDay(t)
			return &day
		}
	}
	return nil
}
