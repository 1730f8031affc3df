package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/storage"
	"gorm.io/datatypes"
)

// dueDayLayout is the stored form of a due date. Lexical order on it equals
// calendar order, so range predicates compare strings.
const dueDayLayout = "2006-01-02"

type studentRow struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	GradeLevel int
	AccountID  string `gorm:"index"`
	InsertedAt time.Time
	UpdatedAt  time.Time
}

func (studentRow) TableName() string { return "students" }

type materialRow struct {
	// SQLite integers are signed, so IDs are stored bit-for-bit as int64.
	ID              int64  `gorm:"primaryKey"`
	StudentID       string `gorm:"not null;index:idx_materials_student_type,priority:1"`
	Title           string `gorm:"not null"`
	ContentType     string `gorm:"not null;index:idx_materials_student_type,priority:2"`
	Description     string
	DueDay          *string `gorm:"index"`
	CompletedAt     *time.Time
	GradeValue      *float64
	GradeMaxValue   *float64
	IsPrimaryLesson *bool
	Content         datatypes.JSON
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

func (materialRow) TableName() string { return "materials" }

// lessonContentDoc is the JSON document kept in the content column.
type lessonContentDoc struct {
	LearningObjectives []string `json:"learning_objectives,omitempty"`
	Summary            string   `json:"summary,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
	Tasks              []string `json:"tasks,omitempty"`
}

func rowKey(id core.ID) int64 { return int64(id) }

func rowID(key int64) core.ID { return core.ID(uint64(key)) }

func formatDueDay(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := core.CalendarDay(*t).Format(dueDayLayout)
	return &s
}

func parseDueDay(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dueDayLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func toStudentRow(s *core.Student) studentRow {
	return studentRow{
		ID:         s.ID,
		Name:       s.Name,
		GradeLevel: s.GradeLevel,
		AccountID:  s.AccountID,
		InsertedAt: s.InsertedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r studentRow) student() *core.Student {
	return &core.Student{
		ID:         r.ID,
		Name:       r.Name,
		GradeLevel: r.GradeLevel,
		AccountID:  r.AccountID,
		InsertedAt: r.InsertedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

func toMaterialRow(m *core.Material) (materialRow, error) {
	row := materialRow{
		ID:              rowKey(m.ID),
		StudentID:       m.StudentID,
		Title:           m.Title,
		ContentType:     string(m.ContentType),
		Description:     m.Description,
		DueDay:          formatDueDay(m.DueDate),
		CompletedAt:     m.CompletedAt,
		GradeValue:      m.GradeValue,
		GradeMaxValue:   m.GradeMaxValue,
		IsPrimaryLesson: m.IsPrimaryLesson,
		InsertedAt:      m.InsertedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if !m.Content.IsEmpty() {
		data, err := json.Marshal(lessonContentDoc{
			LearningObjectives: m.Content.LearningObjectives,
			Summary:            m.Content.Summary,
			Keywords:           m.Content.Keywords,
			Tasks:              m.Content.Tasks,
		})
		if err != nil {
			return materialRow{}, fmt.Errorf("%w: material content: %w", storage.ErrSerializationFailed, err)
		}
		row.Content = datatypes.JSON(data)
	}
	return row, nil
}

func (r materialRow) material() (*core.Material, error) {
	m := &core.Material{
		ID:              rowID(r.ID),
		StudentID:       r.StudentID,
		Title:           r.Title,
		ContentType:     core.ContentType(r.ContentType),
		Description:     r.Description,
		DueDate:         parseDueDay(r.DueDay),
		GradeValue:      r.GradeValue,
		GradeMaxValue:   r.GradeMaxValue,
		IsPrimaryLesson: r.IsPrimaryLesson,
		InsertedAt:      r.InsertedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
	if r.CompletedAt != nil {
		done := r.CompletedAt.UTC()
		m.CompletedAt = &done
	}
	if len(r.Content) > 0 {
		var doc lessonContentDoc
		if err := json.Unmarshal(r.Content, &doc); err != nil {
			return nil, fmt.Errorf("%w: material %d content: %w", storage.ErrSerializationFailed, m.ID, err)
		}
		m.Content = &core.LessonContent{
			LearningObjectives: doc.LearningObjectives,
			Summary:            doc.Summary,
			Keywords:           doc.Keywords,
			Tasks:              doc.Tasks,
		}
	}
	return m, nil
}
