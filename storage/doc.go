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


// Package storage defines the record store contract for satchel.
//
// The repository interfaces decouple the search core from any particular
// backend. Two implementations ship with the module:
//
//   - storage/badger: embedded BadgerDB with per-student indices
//   - storage/sqlstore: gorm over SQLite with SQL predicate pushdown
//
// # Constructor Return Type Pattern
//
// Public constructors return the repository interfaces rather than concrete
// types:
//
//	materials, students, err := badger.NewRepositories(backend)
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Predicate Pushdown
//
// Stores do not have to support every filter predicate. Each
// MaterialRepository reports the kinds it evaluates natively through
// Pushdown; FindMaterials ignores the rest and the caller applies them in
// memory with filter.Criteria.Matches.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	materials, students, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer materials.Close()
//	defer students.Close()
//
// The SQL store works the same way with sqlstore.NewMemoryRepositories, which
// returns the *sqlstore.Store to close.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
