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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMaterial indicates a Material failed validation.
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrInvalidStudent indicates a Student failed validation.
	ErrInvalidStudent = errors.New("invalid student")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyStudentID indicates the owning student ID is empty.
	ErrEmptyStudentID = errors.New("student id cannot be empty")

	// ErrInvalidContentType indicates a content type outside the material set.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrNegativeGrade indicates a negative grade value or maximum.
	ErrNegativeGrade = errors.New("grade values cannot be negative")
)
