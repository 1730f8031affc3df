package sqlstore

import "github.com/poiesic/satchel/storage"

// NewRepositories returns material and student repositories over store.
// Closing the store closes both.
func NewRepositories(store *Store) (storage.MaterialRepository, storage.StudentRepository) {
	return NewMaterialRepository(store), NewStudentRepository(store)
}

// NewMemoryRepositories creates repositories over a fresh in-memory
// database for testing. Caller must close the store when done.
func NewMemoryRepositories() (storage.MaterialRepository, storage.StudentRepository, *Store, error) {
	store, err := OpenMemory()
	if err != nil {
		return nil, nil, nil, err
	}
	materialRepo, studentRepo := NewRepositories(store)
	return materialRepo, studentRepo, store, nil
}
