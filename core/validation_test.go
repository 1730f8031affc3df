package core

import (
	"errors"
	"testing"
)

func TestValidateMaterial(t *testing.T) {
	neg := -1.0
	five, zero := 5.0, 0.0

	tests := []struct {
		name     string
		material *Material
		wantErr  error
	}{
		{
			name:     "valid material",
			material: &Material{Title: "Fractions worksheet", StudentID: "s1", ContentType: ContentTypeWorksheet},
			wantErr:  nil,
		},
		{
			name:     "valid material with ID 0 and malformed grade pair",
			material: &Material{Title: "Quiz", StudentID: "s1", ContentType: ContentTypeQuiz, GradeValue: &five, GradeMaxValue: &zero},
			wantErr:  nil,
		},
		{
			name:     "nil material",
			material: nil,
			wantErr:  ErrInvalidMaterial,
		},
		{
			name:     "blank title",
			material: &Material{Title: "   ", StudentID: "s1", ContentType: ContentTypeQuiz},
			wantErr:  ErrEmptyTitle,
		},
		{
			name:     "blank student",
			material: &Material{Title: "Quiz", ContentType: ContentTypeQuiz},
			wantErr:  ErrEmptyStudentID,
		},
		{
			name:     "filter-only content type",
			material: &Material{Title: "Quiz", StudentID: "s1", ContentType: ContentTypeReview},
			wantErr:  ErrInvalidContentType,
		},
		{
			name:     "negative grade",
			material: &Material{Title: "Quiz", StudentID: "s1", ContentType: ContentTypeQuiz, GradeValue: &neg},
			wantErr:  ErrNegativeGrade,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMaterial(tt.material)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMaterial() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMaterial() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("ValidateMaterial() error = %v, should wrap ErrInvalidMaterial", err)
			}
		})
	}
}

func TestValidateStudent(t *testing.T) {
	if err := ValidateStudent(&Student{ID: "s1"}); err != nil {
		t.Errorf("ValidateStudent() unexpected error = %v", err)
	}
	if err := ValidateStudent(nil); !errors.Is(err, ErrInvalidStudent) {
		t.Errorf("ValidateStudent(nil) error = %v, want ErrInvalidStudent", err)
	}
	if err := ValidateStudent(&Student{Name: "Ada"}); !errors.Is(err, ErrEmptyStudentID) {
		t.Errorf("ValidateStudent() error = %v, want ErrEmptyStudentID", err)
	}
}
