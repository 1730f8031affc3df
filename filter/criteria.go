// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package filter

import (
	"strings"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/samber/lo"
)

// Criteria is the store-facing form of a query intent. Every non-empty field
// is one constraint and all constraints must hold. The zero value matches
// every material.
type Criteria struct {
	// ContentTypes restricts materials to these types. Empty means any.
	ContentTypes []core.ContentType

	// RequireIncomplete and RequireCompleted constrain CompletedAt.
	// Both set is unsatisfiable.
	RequireIncomplete bool
	RequireCompleted  bool

	// DueFrom and DueTo bound the due calendar day, inclusive. Either bound
	// being set requires a due date.
	DueFrom *time.Time
	DueTo   *time.Time

	// Keywords must appear, any one of them, in the title or body.
	// Stored lower-cased.
	Keywords []string

	// Subject must appear in the title or body. Stored lower-cased.
	Subject string

	// MaxGradeRatio requires a valid grade ratio strictly below it.
	MaxGradeRatio *float64
}

// Build turns an intent into criteria. It is pure: the same intent and now
// always yield equal criteria.
func Build(qi core.QueryIntent, now time.Time) Criteria {
	var c Criteria
	c.ContentTypes = qi.ContentTypes()

	switch qi.Status {
	case core.StatusIncomplete:
		c.RequireIncomplete = true
	case core.StatusCompleted:
		c.RequireCompleted = true
	case core.StatusLowScores:
		c.RequireCompleted = true
		threshold := core.LowScoreThreshold
		c.MaxGradeRatio = &threshold
	}

	today := core.CalendarDay(now)
	switch qi.Urgency {
	case core.UrgencyOverdue:
		c.RequireIncomplete = true
		c.DueTo = dayPtr(today.AddDate(0, 0, -1))
	case core.UrgencyDueToday:
		c.DueFrom = dayPtr(today)
		c.DueTo = dayPtr(today)
	case core.UrgencyDueSoon:
		c.RequireIncomplete = true
		c.DueFrom = dayPtr(today)
		c.DueTo = dayPtr(today.AddDate(0, 0, core.DueSoonDays))
	}

	if len(qi.Keywords) > 0 {
		c.Keywords = lo.Uniq(lo.Map(qi.Keywords, func(k string, _ int) string {
			return strings.ToLower(k)
		}))
	}
	c.Subject = strings.ToLower(strings.TrimSpace(qi.Subject))

	return c
}

func dayPtr(t time.Time) *time.Time {
	return &t
}

// Active returns the set of predicate kinds carried by the criteria.
func (c Criteria) Active() PredicateSet {
	var s PredicateSet
	if len(c.ContentTypes) > 0 {
		s |= NewPredicateSet(PredicateContentType)
	}
	if c.RequireIncomplete || c.RequireCompleted {
		s |= NewPredicateSet(PredicateCompletion)
	}
	if c.DueFrom != nil || c.DueTo != nil {
		s |= NewPredicateSet(PredicateDueRange)
	}
	if len(c.Keywords) > 0 {
		s |= NewPredicateSet(PredicateKeyword)
	}
	if c.Subject != "" {
		s |= NewPredicateSet(PredicateSubject)
	}
	if c.MaxGradeRatio != nil {
		s |= NewPredicateSet(PredicateGradeRatio)
	}
	return s
}

// IsEmpty reports whether the criteria impose no constraint.
func (c Criteria) IsEmpty() bool {
	return c.Active() == 0
}

// Only returns a copy of the criteria keeping just the predicates in s.
func (c Criteria) Only(s PredicateSet) Criteria {
	var out Criteria
	if s.Has(PredicateContentType) {
		out.ContentTypes = c.ContentTypes
	}
	if s.Has(PredicateCompletion) {
		out.RequireIncomplete = c.RequireIncomplete
		out.RequireCompleted = c.RequireCompleted
	}
	if s.Has(PredicateDueRange) {
		out.DueFrom = c.DueFrom
		out.DueTo = c.DueTo
	}
	if s.Has(PredicateKeyword) {
		out.Keywords = c.Keywords
	}
	if s.Has(PredicateSubject) {
		out.Subject = c.Subject
	}
	if s.Has(PredicateGradeRatio) {
		out.MaxGradeRatio = c.MaxGradeRatio
	}
	return out
}

// Without returns a copy of the criteria dropping the predicates in s.
func (c Criteria) Without(s PredicateSet) Criteria {
	return c.Only(AllPredicates &^ s)
}

// Split divides the criteria into the part a store evaluates natively and
// the residual part the caller must apply in memory.
func (c Criteria) Split(pushdown PredicateSet) (pushed, residual Criteria) {
	return c.Only(pushdown), c.Without(pushdown)
}
