package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentType identifies the kind of educational record.
type ContentType string

const (
	ContentTypeLesson          ContentType = "lesson"
	ContentTypeReading         ContentType = "reading"
	ContentTypeChapter         ContentType = "chapter"
	ContentTypeAssignment      ContentType = "assignment"
	ContentTypeWorksheet       ContentType = "worksheet"
	ContentTypeQuiz            ContentType = "quiz"
	ContentTypeTest            ContentType = "test"
	ContentTypeNotes           ContentType = "notes"
	ContentTypeReadingMaterial ContentType = "reading_material"
	ContentTypeOther           ContentType = "other"

	// ContentTypeReview only appears in derived filter sets. No stored
	// material carries it.
	ContentTypeReview ContentType = "review"
)

var materialContentTypes = map[ContentType]bool{
	ContentTypeLesson:          true,
	ContentTypeReading:         true,
	ContentTypeChapter:         true,
	ContentTypeAssignment:      true,
	ContentTypeWorksheet:       true,
	ContentTypeQuiz:            true,
	ContentTypeTest:            true,
	ContentTypeNotes:           true,
	ContentTypeReadingMaterial: true,
	ContentTypeOther:           true,
}

// IsMaterialType reports whether t is a content type a stored material may carry.
func (t ContentType) IsMaterialType() bool {
	return materialContentTypes[t]
}

// ParseContentType maps a free-form label onto a material content type.
// Unknown labels map to ContentTypeOther.
func ParseContentType(s string) ContentType {
	t := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsMaterialType() {
		return t
	}
	return ContentTypeOther
}

// LessonContent is the structured body attached to lessons and assignments.
// Every field is optional.
type LessonContent struct {
	LearningObjectives []string
	Summary            string
	Keywords           []string
	Tasks              []string
}

// IsEmpty reports whether the content carries no searchable text.
func (c *LessonContent) IsEmpty() bool {
	return c == nil ||
		(len(c.LearningObjectives) == 0 && c.Summary == "" && len(c.Keywords) == 0 && len(c.Tasks) == 0)
}

// Material is one educational record belonging to a student.
// The record store owns materials; the search core only reads them.
type Material struct {
	ID              ID
	StudentID       string
	Title           string
	ContentType     ContentType
	Description     string
	DueDate         *time.Time     // Calendar day the work is due
	CompletedAt     *time.Time     // Set once the work is finished
	GradeValue      *float64       // Points earned
	GradeMaxValue   *float64       // Points possible
	IsPrimaryLesson *bool          // Canonical teaching material for its topic
	Content         *LessonContent // Optional structured body
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// Body returns the searchable text of the material beyond its title:
// the description followed by the lesson content fields.
func (m *Material) Body() string {
	var parts []string
	if m.Description != "" {
		parts = append(parts, m.Description)
	}
	if m.Content != nil {
		parts = append(parts, m.Content.LearningObjectives...)
		if m.Content.Summary != "" {
			parts = append(parts, m.Content.Summary)
		}
		parts = append(parts, m.Content.Keywords...)
		parts = append(parts, m.Content.Tasks...)
	}
	return strings.Join(parts, "\n")
}

// PrimaryLesson reports whether the material is flagged as a primary lesson.
func (m *Material) PrimaryLesson() bool {
	return m.IsPrimaryLesson != nil && *m.IsPrimaryLesson
}

// Student is the account a set of materials belongs to.
type Student struct {
	ID         string
	Name       string
	GradeLevel int
	AccountID  string // Parent or guardian account, if any
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Scope is the set of material IDs a student may see.
type Scope struct {
	StudentID   string
	MaterialIDs []ID
}

// RankedResult pairs a material with the relevance score used to order it.
type RankedResult struct {
	Material       *Material
	RelevanceScore int
}
