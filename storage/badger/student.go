package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/storage"
)

// StudentRepository implements storage.StudentRepository for BadgerDB.
type StudentRepository struct {
	backend *Backend
}

var _ storage.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(backend *Backend) *StudentRepository {
	return &StudentRepository{
		backend: backend,
	}
}

// Close releases resources. StudentRepository has no resources to release.
func (r *StudentRepository) Close() error {
	return nil
}

// AddStudents adds or replaces students.
func (r *StudentRepository) AddStudents(ctx context.Context, students ...*core.Student) ([]*core.Student, error) {
	for _, s := range students {
		if err := core.ValidateStudent(s); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, s := range students {
			if s.InsertedAt.IsZero() {
				s.InsertedAt = now
			}
			s.UpdatedAt = now
			if err := tx.Set(makeStudentKey(s.ID), storage.MarshalStudent(s)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent retrieves a student by ID.
func (r *StudentRepository) GetStudent(ctx context.Context, id string) (*core.Student, error) {
	var result *core.Student
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readStudent(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ResolveScope returns the IDs of the student's materials from the
// ownership index, in ascending order.
func (r *StudentRepository) ResolveScope(ctx context.Context, studentID string) (*core.Scope, error) {
	scope := &core.Scope{StudentID: studentID}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		student, err := readStudent(tx, studentID)
		if err != nil {
			return err
		}
		if student == nil {
			return fmt.Errorf("%w: student %q", storage.ErrNotFound, studentID)
		}

		prefix := makePartialStudentMaterialKey(studentID)
		return scanPrefix(tx, prefix, func(key []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := idFromIndexKey(key, prefix)
			if err != nil {
				return err
			}
			scope.MaterialIDs = append(scope.MaterialIDs, id)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// readStudent reads a student from the transaction.
// Returns nil, nil if the student doesn't exist.
func readStudent(tx *badger.Txn, id string) (*core.Student, error) {
	item, err := tx.Get(makeStudentKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var s *core.Student
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		s, unmarshalErr = storage.UnmarshalStudent(val)
		return unmarshalErr
	})
	return s, err
}
