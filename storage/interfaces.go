package storage

import (
	"context"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
)

// MaterialQuery selects candidate materials.
type MaterialQuery struct {
	// Scope restricts results to the student's accessible materials.
	// Nil scope is rejected with ErrInvalidQuery.
	Scope *core.Scope

	// Criteria holds the predicates to apply. Implementations evaluate the
	// kinds they report from Pushdown and ignore the rest; callers apply
	// the residual in memory.
	Criteria filter.Criteria

	// Limit caps the number of candidates returned. Zero means no cap.
	// Candidates are ordered by CompareCandidates before the cap.
	Limit int
}

// MaterialRepository provides operations for managing educational materials.
// Implementations must be thread-safe and support concurrent access.
type MaterialRepository interface {
	// AddMaterials adds one or more materials to storage.
	// For materials with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the materials with generated IDs and timestamps populated.
	AddMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error)

	// UpdateMaterials updates existing materials.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any material doesn't exist.
	UpdateMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error)

	// DeleteMaterials removes materials by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any material doesn't exist.
	DeleteMaterials(ctx context.Context, ids ...core.ID) error

	// GetMaterial retrieves a single material by ID.
	// Returns ErrNotFound if the material doesn't exist.
	GetMaterial(ctx context.Context, id core.ID) (*core.Material, error)

	// GetMaterials retrieves multiple materials by their IDs.
	// Returns only the materials that exist (no error for missing materials).
	GetMaterials(ctx context.Context, ids ...core.ID) ([]*core.Material, error)

	// FindMaterials returns the materials in the query scope that satisfy
	// the pushed-down part of the criteria, ordered by ID.
	FindMaterials(ctx context.Context, query MaterialQuery) ([]*core.Material, error)

	// Pushdown reports the predicate kinds FindMaterials evaluates natively.
	Pushdown() filter.PredicateSet

	// Close closes the storage backend and releases resources.
	Close() error
}

// StudentRepository provides operations for students and their scopes.
type StudentRepository interface {
	// AddStudents adds or replaces students.
	// Sets InsertedAt timestamp if not already set.
	AddStudents(ctx context.Context, students ...*core.Student) ([]*core.Student, error)

	// GetStudent retrieves a student by ID.
	// Returns ErrNotFound if the student doesn't exist.
	GetStudent(ctx context.Context, id string) (*core.Student, error)

	// ResolveScope returns the IDs of the materials the student may see.
	// Returns ErrNotFound if the student doesn't exist.
	ResolveScope(ctx context.Context, studentID string) (*core.Scope, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
