package filter

import (
	"slices"
	"strings"

	"github.com/poiesic/satchel/core"
)

// Matches reports whether m satisfies every predicate in the criteria.
// A nil material never matches.
func (c Criteria) Matches(m *core.Material) bool {
	if m == nil {
		return false
	}
	if len(c.ContentTypes) > 0 && !slices.Contains(c.ContentTypes, m.ContentType) {
		return false
	}
	if !c.matchCompletion(m) || !c.matchDue(m) || !c.matchGrade(m) {
		return false
	}
	if len(c.Keywords) == 0 && c.Subject == "" {
		return true
	}
	title := strings.ToLower(m.Title)
	body := strings.ToLower(m.Body())
	if len(c.Keywords) > 0 && !slices.ContainsFunc(c.Keywords, func(k string) bool {
		return containsEither(title, body, k)
	}) {
		return false
	}
	if c.Subject != "" && !containsEither(title, body, c.Subject) {
		return false
	}
	return true
}

// Filter returns the materials that match, preserving order.
func (c Criteria) Filter(materials []*core.Material) []*core.Material {
	out := make([]*core.Material, 0, len(materials))
	for _, m := range materials {
		if c.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

func (c Criteria) matchCompletion(m *core.Material) bool {
	done := core.IsCompleted(m)
	if c.RequireIncomplete && done {
		return false
	}
	if c.RequireCompleted && !done {
		return false
	}
	return true
}

func (c Criteria) matchDue(m *core.Material) bool {
	if c.DueFrom == nil && c.DueTo == nil {
		return true
	}
	if m.DueDate == nil || m.DueDate.IsZero() {
		return false
	}
	day := core.CalendarDay(*m.DueDate)
	if c.DueFrom != nil && day.Before(core.CalendarDay(*c.DueFrom)) {
		return false
	}
	if c.DueTo != nil && day.After(core.CalendarDay(*c.DueTo)) {
		return false
	}
	return true
}

func (c Criteria) matchGrade(m *core.Material) bool {
	if c.MaxGradeRatio == nil {
		return true
	}
	ratio, ok := core.GradeRatio(m)
	return ok && ratio < *c.MaxGradeRatio
}

func containsEither(title, body, needle string) bool {
	return strings.Contains(title, needle) || strings.Contains(body, needle)
}
