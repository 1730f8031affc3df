package sqlstore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/storage"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentRepository implements storage.StudentRepository on SQL.
type StudentRepository struct {
	store *Store
}

var _ storage.StudentRepository = (*StudentRepository)(nil)

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// Close is a no-op. The Store owns the connection.
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

	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, s := range students {
			if s.InsertedAt.IsZero() {
				s.InsertedAt = now
			}
			s.UpdatedAt = now
			row := toStudentRow(s)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&row).Error
			if err != nil {
				return translateError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent retrieves a student by ID.
func (r *StudentRepository) GetStudent(ctx context.Context, id string) (*core.Student, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var row studentRow
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return row.student(), nil
}

// ResolveScope returns the IDs of the student's materials in ascending order.
func (r *StudentRepository) ResolveScope(ctx context.Context, studentID string) (*core.Scope, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	var student studentRow
	err = db.Select("id").First(&student, "id = ?", studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: student %q", storage.ErrNotFound, studentID)
	}
	if err != nil {
		return nil, err
	}

	var keys []int64
	if err := db.Model(&materialRow{}).Where("student_id = ?", studentID).Pluck("id", &keys).Error; err != nil {
		return nil, translateError(err)
	}
	ids := lo.Map(keys, func(k int64, _ int) core.ID { return rowID(k) })
	slices.SortFunc(ids, cmp.Compare[core.ID])

	return &core.Scope{StudentID: studentID, MaterialIDs: ids}, nil
}
