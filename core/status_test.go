package core

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

func dayOffset(days int) *time.Time {
	t := CalendarDay(testNow).AddDate(0, 0, days)
	return &t
}

func ptrFloat(f float64) *float64 { return &f }

func TestIsOverdue(t *testing.T) {
	done := testNow.Add(-time.Hour)

	tests := []struct {
		name     string
		material *Material
		want     bool
	}{
		{"yesterday incomplete", &Material{DueDate: dayOffset(-1)}, true},
		{"earlier today is not overdue", &Material{DueDate: dayOffset(0)}, false},
		{"tomorrow", &Material{DueDate: dayOffset(1)}, false},
		{"past but completed", &Material{DueDate: dayOffset(-3), CompletedAt: &done}, false},
		{"no due date", &Material{}, false},
		{"nil material", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.material, testNow); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueSoon(t *testing.T) {
	done := testNow

	tests := []struct {
		name     string
		material *Material
		want     bool
	}{
		{"today", &Material{DueDate: dayOffset(0)}, true},
		{"in three days", &Material{DueDate: dayOffset(3)}, true},
		{"in four days", &Material{DueDate: dayOffset(4)}, false},
		{"yesterday", &Material{DueDate: dayOffset(-1)}, false},
		{"completed", &Material{DueDate: dayOffset(1), CompletedAt: &done}, false},
		{"no due date", &Material{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDueSoon(tt.material, testNow); got != tt.want {
				t.Errorf("IsDueSoon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueToday(t *testing.T) {
	if !IsDueToday(&Material{DueDate: dayOffset(0)}, testNow) {
		t.Errorf("IsDueToday() should hold for today's due date")
	}
	if IsDueToday(&Material{DueDate: dayOffset(1)}, testNow) {
		t.Errorf("IsDueToday() should not hold for tomorrow")
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 5, 11, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(late, early); got != 1 {
		t.Errorf("DaysBetween() = %d, want 1", got)
	}
	if got := DaysBetween(early, late); got != -1 {
		t.Errorf("DaysBetween() = %d, want -1", got)
	}
}

func TestGradeRatio(t *testing.T) {
	tests := []struct {
		name     string
		material *Material
		wantOK   bool
		wantLow  bool
	}{
		{"sixty percent", &Material{GradeValue: ptrFloat(6), GradeMaxValue: ptrFloat(10)}, true, true},
		{"ninety five percent", &Material{GradeValue: ptrFloat(95), GradeMaxValue: ptrFloat(100)}, true, false},
		{"exactly threshold", &Material{GradeValue: ptrFloat(75), GradeMaxValue: ptrFloat(100)}, true, false},
		{"zero maximum", &Material{GradeValue: ptrFloat(5), GradeMaxValue: ptrFloat(0)}, false, false},
		{"value without maximum", &Material{GradeValue: ptrFloat(5)}, false, false},
		{"maximum without value", &Material{GradeMaxValue: ptrFloat(10)}, false, false},
		{"ungraded", &Material{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := GradeRatio(tt.material)
			if ok != tt.wantOK {
				t.Errorf("GradeRatio() ok = %v, want %v", ok, tt.wantOK)
			}
			if got := IsLowScore(tt.material); got != tt.wantLow {
				t.Errorf("IsLowScore() = %v, want %v", got, tt.wantLow)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		wantNil bool
	}{
		{"2024-05-10", false},
		{"2024-05-10T18:45:00Z", false},
		{"2024-05-10T18:45:00.123456Z", false},
		{"2024-05-10T18:45:00-05:00", false},
		{"2024-05-10T18:45:00", false},
		{"2024-05-10 18:45:00", false},
		{"", true},
		{"next tuesday", true},
		{"2024-13-45", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDueDate(tt.in)
			if tt.wantNil {
				if got != nil {
					t.Errorf("ParseDueDate(%q) = %v, want nil", tt.in, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDueDate(%q) = nil", tt.in)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDueDate(%q) = %v, want %v", tt.in, got, want)
			}
		})
	}
}

func TestUnparsableDueDateIsNeverUrgent(t *testing.T) {
	m := &Material{DueDate: ParseDueDate("soon-ish")}
	if IsOverdue(m, testNow) || IsDueSoon(m, testNow) {
		t.Errorf("material with unparsable due date should never be urgent")
	}
}
