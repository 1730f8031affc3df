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


package rank

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Score bonuses.
const (
	BonusContentType   = 10
	BonusKeyword       = 5
	BonusSubject       = 8
	BonusStatus        = 15
	BonusLowScore      = 20
	BonusOverdue       = 25
	BonusDueSoon       = 12
	BonusPrimaryLesson = 8
)

// Score returns the relevance score of m for the intent. Overdue dominance
// is applied by Rank before scores are compared and is not part of the score.
func Score(m *core.Material, qi core.QueryIntent, now time.Time) int {
	if m == nil {
		return 0
	}
	return score(m, qi, qi.ContentTypes(), strings.ToLower(m.Title), now)
}

func score(m *core.Material, qi core.QueryIntent, types []core.ContentType, title string, now time.Time) int {
	total := 0

	if len(types) == 0 || slices.Contains(types, m.ContentType) {
		total += BonusContentType
	}

	for _, k := range qi.Keywords {
		if k != "" && strings.Contains(title, strings.ToLower(k)) {
			total += BonusKeyword
		}
	}

	if qi.Subject != "" && strings.Contains(title, strings.ToLower(qi.Subject)) {
		total += BonusSubject
	}

	completed := core.IsCompleted(m)
	switch qi.Status {
	case core.StatusIncomplete:
		if !completed {
			total += BonusStatus
		}
	case core.StatusCompleted:
		if completed {
			total += BonusStatus
		}
	case core.StatusLowScores:
		if core.IsLowScore(m) {
			total += BonusLowScore
		}
	}

	switch qi.Urgency {
	case core.UrgencyOverdue:
		if core.IsOverdue(m, now) {
			total += BonusOverdue
		}
	case core.UrgencyDueSoon:
		if core.IsDueSoon(m, now) {
			total += BonusDueSoon
		}
	}

	if qi.Type == core.IntentLesson && m.PrimaryLesson() {
		total += BonusPrimaryLesson
	}

	return total
}

const secondsPerDay = 24 * 60 * 60

type entry struct {
	m       *core.Material
	score   int
	overdue bool
	done    bool
	dueKey  int64 // Unix day of the due date for incomplete work, else MaxInt64
	ratio   float64
}

// Rank orders materials for the intent. The order is total and stable:
// identical inputs always produce identical output. Nil materials are
// dropped. The input slice is not modified.
//
// Ordering, highest priority first:
//  1. overdue before not overdue
//  2. higher relevance score
//  3. for homework intents, incomplete before completed
//  4. incomplete work with a due date, earliest first, ahead of
//     everything without one
//  5. for low-score queries, lower grade ratio
//  6. title, case-insensitively collated
func Rank(materials []*core.Material, qi core.QueryIntent, now time.Time) []core.RankedResult {
	types := qi.ContentTypes()
	entries := make([]entry, 0, len(materials))
	for _, m := range materials {
		if m == nil {
			continue
		}
		e := entry{
			m:       m,
			score:   score(m, qi, types, strings.ToLower(m.Title), now),
			overdue: core.IsOverdue(m, now),
			done:    core.IsCompleted(m),
			dueKey:  math.MaxInt64,
			ratio:   math.Inf(1),
		}
		if !e.done && m.DueDate != nil && !m.DueDate.IsZero() {
			e.dueKey = core.CalendarDay(*m.DueDate).Unix() / secondsPerDay
		}
		if r, ok := core.GradeRatio(m); ok {
			e.ratio = r
		}
		entries = append(entries, e)
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.English, collate.IgnoreCase)

	slices.SortStableFunc(entries, func(a, b entry) int {
		if a.overdue != b.overdue {
			if a.overdue {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if qi.Type == core.IntentHomework && a.done != b.done {
			if !a.done {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.dueKey, b.dueKey); c != 0 {
			return c
		}
		if qi.Status == core.StatusLowScores {
			if c := cmp.Compare(a.ratio, b.ratio); c != 0 {
				return c
			}
		}
		if c := col.CompareString(a.m.Title, b.m.Title); c != 0 {
			return c
		}
		if c := strings.Compare(a.m.Title, b.m.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.m.ID, b.m.ID)
	})

	results := make([]core.RankedResult, len(entries))
	for i, e := range entries {
		results[i] = core.RankedResult{Material: e.m, RelevanceScore: e.score}
	}
	return results
}

// Materials strips the scores from ranked results, keeping their order.
func Materials(results []core.RankedResult) []*core.Material {
	return lo.Map(results, func(r core.RankedResult, _ int) *core.Material {
		return r.Material
	})
}
