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


package core

import (
	"fmt"
	"strings"
)

// ValidateMaterial validates a Material according to domain rules.
//
// Validation rules:
//   - Title must not be blank
//   - StudentID must not be blank
//   - ContentType must be a material content type
//   - Grade values, when present, must not be negative
//
// NOT validated (tolerated and ranked as ungraded):
//   - A grade value without a maximum, or a maximum of zero
//   - ID (0 is valid until the store assigns one)
func ValidateMaterial(material *Material) error {
	if material == nil {
		return fmt.Errorf("%w: material is nil", ErrInvalidMaterial)
	}

	if strings.TrimSpace(material.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrEmptyTitle)
	}

	if strings.TrimSpace(material.StudentID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrEmptyStudentID)
	}

	if !material.ContentType.IsMaterialType() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidMaterial, ErrInvalidContentType, material.ContentType)
	}

	if (material.GradeValue != nil && *material.GradeValue < 0) ||
		(material.GradeMaxValue != nil && *material.GradeMaxValue < 0) {
		return fmt.Errorf("%w: %w", ErrInvalidMaterial, ErrNegativeGrade)
	}

	return nil
}

// ValidateStudent validates a Student according to domain rules.
func ValidateStudent(student *Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", ErrInvalidStudent)
	}
	if strings.TrimSpace(student.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStudent, ErrEmptyStudentID)
	}
	return nil
}
