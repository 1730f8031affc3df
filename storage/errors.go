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


package storage

import "errors"

// Sentinel errors returned by every Record Store. Backends translate their
// native errors into these so callers can branch with errors.Is.
var (
	// ErrNotFound means no material or student exists under the key. For
	// ResolveScope it means the student is unknown.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert collides with a stored key.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStorageClosed is returned by every call after Close.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery rejects a malformed MaterialQuery, such as a nil scope
	// or a negative limit.
	ErrInvalidQuery = errors.New("invalid material query")

	// ErrSerializationFailed wraps a record that could not be encoded or decoded.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData means a stored record ended before its last field.
	ErrTruncatedData = errors.New("truncated record data")
)
