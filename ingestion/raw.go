package ingestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/satchel/core"
)

// RawMaterial is a material as it arrives from an export or fixture file.
// Dates are strings and lesson content is an untyped document.
type RawMaterial struct {
	// ExternalID, when set, makes the material ID stable across imports.
	ExternalID      string         `json:"id,omitempty" yaml:"id,omitempty"`
	Title           string         `json:"title" yaml:"title"`
	ContentType     string         `json:"content_type" yaml:"content_type"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate         string         `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CompletedAt     string         `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	GradeValue      *float64       `json:"grade_value,omitempty" yaml:"grade_value,omitempty"`
	GradeMaxValue   *float64       `json:"grade_max_value,omitempty" yaml:"grade_max_value,omitempty"`
	IsPrimaryLesson *bool          `json:"is_primary_lesson,omitempty" yaml:"is_primary_lesson,omitempty"`
	Content         map[string]any `json:"content,omitempty" yaml:"content,omitempty"`
}

// Accepted spellings of the lesson content keys.
var (
	objectivesKeys = []string{"learning_objectives", "learningObjectives", "objectives"}
	summaryKeys    = []string{"summary"}
	keywordsKeys   = []string{"keywords"}
	tasksKeys      = []string{"tasks"}
)

// MaterialID derives the ID a raw material with an external ID is stored
// under. Zero means the store assigns one.
func MaterialID(studentID, externalID string) core.ID {
	if externalID == "" {
		return 0
	}
	return core.IDFromContent(studentID + "/" + externalID)
}

// Decode converts the payload into a validated material owned by studentID.
// Unknown content types become other, unparsable dates are dropped and
// lesson content fields of the wrong shape contribute nothing.
func (r *RawMaterial) Decode(studentID string) (*core.Material, error) {
	m := &core.Material{
		ID:              MaterialID(studentID, r.ExternalID),
		StudentID:       studentID,
		Title:           strings.TrimSpace(r.Title),
		ContentType:     core.ParseContentType(r.ContentType),
		Description:     strings.TrimSpace(r.Description),
		DueDate:         core.ParseDueDate(r.DueDate),
		CompletedAt:     parseTimestamp(r.CompletedAt),
		GradeValue:      r.GradeValue,
		GradeMaxValue:   r.GradeMaxValue,
		IsPrimaryLesson: r.IsPrimaryLesson,
		Content:         decodeLessonContent(r.Content),
	}
	if err := core.ValidateMaterial(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return m, nil
}

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func decodeLessonContent(doc map[string]any) *core.LessonContent {
	if len(doc) == 0 {
		return nil
	}
	c := &core.LessonContent{
		LearningObjectives: stringList(lookup(doc, objectivesKeys)),
		Summary:            stringValue(lookup(doc, summaryKeys)),
		Keywords:           stringList(lookup(doc, keywordsKeys)),
		Tasks:              stringList(lookup(doc, tasksKeys)),
	}
	if c.IsEmpty() {
		return nil
	}
	return c
}

func lookup(doc map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			return v
		}
	}
	return nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// stringList accepts a list of strings or a single string.
// Non-string and blank entries are skipped.
func stringList(v any) []string {
	var out []string
	switch v := v.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
