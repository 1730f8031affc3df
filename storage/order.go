package storage

import (
	"cmp"
	"time"

	"github.com/poiesic/satchel/core"
)

// CompareCandidates is the order FindMaterials returns candidates in, and
// so decides which survive a Limit. Incomplete work with a due date comes
// first, earliest due day first, so overdue work is kept ahead of anything
// that is not overdue at any evaluation instant. Everything else follows.
// Ties break by ID.
func CompareCandidates(a, b *core.Material) int {
	da, oka := openDueDay(a)
	db, okb := openDueDay(b)
	switch {
	case oka && !okb:
		return -1
	case !oka && okb:
		return 1
	case oka && okb:
		if c := da.Compare(db); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

func openDueDay(m *core.Material) (day time.Time, ok bool) {
	if core.IsCompleted(m) || m.DueDate == nil || m.DueDate.IsZero() {
		return day, false
	}
	return core.CalendarDay(*m.DueDate), true
}
