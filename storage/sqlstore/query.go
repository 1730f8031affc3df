package sqlstore

import (
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// materialPushdown lists the predicates translated into SQL.
var materialPushdown = filter.NewPredicateSet(
	filter.PredicateContentType,
	filter.PredicateCompletion,
	filter.PredicateDueRange,
	filter.PredicateGradeRatio,
)

// applyCriteria adds a WHERE clause for every pushed-down predicate in c.
func applyCriteria(db *gorm.DB, c filter.Criteria) *gorm.DB {
	if len(c.ContentTypes) > 0 {
		db = db.Where("content_type IN ?", lo.Map(c.ContentTypes, func(t core.ContentType, _ int) string {
			return string(t)
		}))
	}

	if c.RequireIncomplete {
		db = db.Where("completed_at IS NULL")
	}
	if c.RequireCompleted {
		db = db.Where("completed_at IS NOT NULL")
	}

	if c.DueFrom != nil || c.DueTo != nil {
		db = db.Where("due_day IS NOT NULL")
		if from := formatDueDay(c.DueFrom); from != nil {
			db = db.Where("due_day >= ?", *from)
		}
		if to := formatDueDay(c.DueTo); to != nil {
			db = db.Where("due_day <= ?", *to)
		}
	}

	if c.MaxGradeRatio != nil {
		db = db.Where("grade_value IS NOT NULL AND grade_max_value > 0 AND grade_value / grade_max_value < ?", *c.MaxGradeRatio)
	}
	return db
}
