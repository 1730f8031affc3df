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


package search

import "errors"

var (
	// ErrMaterialRepositoryRequired is returned when a material repository is not provided.
	ErrMaterialRepositoryRequired = errors.New("material repository required")

	// ErrStudentRepositoryRequired is returned when a student repository is not provided.
	ErrStudentRepositoryRequired = errors.New("student repository required")

	// ErrClassifierRequired is returned when WithClassifier is given nil.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrStudentIDRequired is returned when a search names no student.
	ErrStudentIDRequired = errors.New("student id required")

	// ErrInvalidMaxResults indicates a result cap outside 1..MaxResultsLimit.
	ErrInvalidMaxResults = errors.New("max results out of range")

	// ErrInvalidCandidateLimit indicates a negative candidate limit.
	ErrInvalidCandidateLimit = errors.New("candidate limit cannot be negative")
)
