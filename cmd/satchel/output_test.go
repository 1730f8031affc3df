package main

import (
	"testing"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/stretchr/testify/assert"
)

func TestBadges(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := core.CalendarDay(now).AddDate(0, 0, offset)
		return &d
	}
	done := now.Add(-time.Hour)
	score := func(v float64) *float64 { return &v }
	primary := true

	tests := []struct {
		name     string
		material *core.Material
		want     []string
	}{
		{"overdue", &core.Material{DueDate: day(-2)}, []string{"overdue"}},
		{"due today", &core.Material{DueDate: day(0)}, []string{"due today"}},
		{"due soon", &core.Material{DueDate: day(2)}, []string{"due soon"}},
		{"far off", &core.Material{DueDate: day(10)}, nil},
		{"completed due today", &core.Material{DueDate: day(0), CompletedAt: &done}, []string{"done"}},
		{"completed overdue", &core.Material{DueDate: day(-3), CompletedAt: &done}, []string{"done"}},
		{"low score", &core.Material{CompletedAt: &done, GradeValue: score(4), GradeMaxValue: score(10)}, []string{"done", "low score"}},
		{"primary lesson", &core.Material{IsPrimaryLesson: &primary}, []string{"primary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, badges(tt.material, now))
		})
	}
}
