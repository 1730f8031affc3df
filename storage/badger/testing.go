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


package badger

import "github.com/poiesic/satchel/storage"

// NewRepositories opens material and student repositories that share one
// backend. Caller must close both repos and the backend when done.
func NewRepositories(backend *Backend) (storage.MaterialRepository, storage.StudentRepository, error) {
	materialRepo, err := NewMaterialRepository(backend)
	if err != nil {
		return nil, nil, err
	}
	return materialRepo, NewStudentRepository(backend), nil
}

// NewMemoryRepositories creates in-memory material and student repositories for testing.
// Returns materialRepo, studentRepo, backend, and error.
// Caller must close both repos and backend when done.
func NewMemoryRepositories() (storage.MaterialRepository, storage.StudentRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	materialRepo, studentRepo, err := NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	return materialRepo, studentRepo, backend, nil
}
