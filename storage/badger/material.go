package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
	"github.com/poiesic/satchel/storage"
)

// materialPushdown lists the predicates FindMaterials evaluates itself.
// Text predicates and grade ratios are left to the caller.
var materialPushdown = filter.NewPredicateSet(
	filter.PredicateContentType,
	filter.PredicateCompletion,
	filter.PredicateDueRange,
)

// MaterialRepository implements storage.MaterialRepository for BadgerDB.
type MaterialRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MaterialRepository = (*MaterialRepository)(nil)

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(backend *Backend) (*MaterialRepository, error) {
	idSeq, err := backend.GetSequence(materialIDSeq)
	if err != nil {
		return nil, err
	}

	return &MaterialRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MaterialRepository) Close() error {
	return r.idSeq.Release()
}

// Pushdown reports the natively evaluated predicates.
func (r *MaterialRepository) Pushdown() filter.PredicateSet {
	return materialPushdown
}

// AddMaterials adds or replaces one or more materials.
// Materials with ID=0 get the next ID from the sequence.
func (r *MaterialRepository) AddMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error) {
	for _, m := range materials {
		if err := core.ValidateMaterial(m); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, m := range materials {
			if m.ID == 0 {
				nextID, err := r.nextID()
				if err != nil {
					return err
				}
				m.ID = core.ID(nextID)
			} else {
				old, err := readMaterial(tx, makeMaterialKey(m.ID))
				if err != nil {
					return err
				}
				if old != nil {
					if err := deleteMaterialIndex(tx, old); err != nil {
						return err
					}
				}
			}

			if m.InsertedAt.IsZero() {
				m.InsertedAt = now
			}
			m.UpdatedAt = now

			if err := writeMaterial(tx, m); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return materials, nil
}

// UpdateMaterials updates existing materials.
func (r *MaterialRepository) UpdateMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error) {
	for _, m := range materials {
		if err := core.ValidateMaterial(m); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, m := range materials {
			old, err := readMaterial(tx, makeMaterialKey(m.ID))
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: material %d", storage.ErrNotFound, m.ID)
			}

			// Update timestamp
			m.InsertedAt = old.InsertedAt
			m.UpdatedAt = time.Now().UTC()

			// Rewrite indices if ownership or type changed
			if old.StudentID != m.StudentID || old.ContentType != m.ContentType {
				if err := deleteMaterialIndex(tx, old); err != nil {
					return err
				}
			}
			if err := writeMaterial(tx, m); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return materials, nil
}

// DeleteMaterials removes materials by their IDs.
func (r *MaterialRepository) DeleteMaterials(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeMaterialKey(id)

			// Read record to get metadata for index cleanup
			m, err := readMaterial(tx, key)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("%w: material %d", storage.ErrNotFound, id)
			}

			if err := deleteMaterialIndex(tx, m); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMaterial retrieves a single material by ID.
func (r *MaterialRepository) GetMaterial(ctx context.Context, id core.ID) (*core.Material, error) {
	var result *core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readMaterial(tx, makeMaterialKey(id))
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

// GetMaterials retrieves multiple materials by their IDs.
func (r *MaterialRepository) GetMaterials(ctx context.Context, ids ...core.ID) ([]*core.Material, error) {
	var result []*core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			m, err := readMaterial(tx, makeMaterialKey(id))
			if err != nil {
				return err
			}
			if m != nil {
				result = append(result, m)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindMaterials returns the in-scope materials that satisfy the content
// type, completion and due range predicates of the query, in
// storage.CompareCandidates order. The limit applies after ordering.
// When content types are restricted, candidates come from the type index
// instead of the full scope.
func (r *MaterialRepository) FindMaterials(ctx context.Context, query storage.MaterialQuery) ([]*core.Material, error) {
	if query.Scope == nil {
		return nil, fmt.Errorf("%w: scope is required", storage.ErrInvalidQuery)
	}
	if query.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", storage.ErrInvalidQuery, query.Limit)
	}

	pushed := query.Criteria.Only(materialPushdown)
	inScope := make(map[core.ID]struct{}, len(query.Scope.MaterialIDs))
	for _, id := range query.Scope.MaterialIDs {
		inScope[id] = struct{}{}
	}

	var results []*core.Material
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		candidates := query.Scope.MaterialIDs
		if len(pushed.ContentTypes) > 0 {
			var err error
			candidates, err = idsByType(tx, query.Scope.StudentID, pushed.ContentTypes, inScope)
			if err != nil {
				return err
			}
		}
		candidates = slices.Clone(candidates)
		slices.Sort(candidates)
		candidates = slices.Compact(candidates)

		for _, id := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := readMaterial(tx, makeMaterialKey(id))
			if err != nil {
				return err
			}
			if m == nil || !pushed.Matches(m) {
				continue
			}
			results = append(results, m)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, storage.CompareCandidates)
	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}

	r.backend.logger.Debug("found materials",
		"student", query.Scope.StudentID,
		"scope", len(query.Scope.MaterialIDs),
		"pushed", pushed.Active().String(),
		"results", len(results))
	return results, nil
}

// Helper methods

func (r *MaterialRepository) nextID() (uint64, error) {
	nextID, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		return r.idSeq.Next()
	}
	return nextID, nil
}

// idsByType collects in-scope material IDs from the content-type index.
func idsByType(tx *badger.Txn, studentID string, types []core.ContentType, inScope map[core.ID]struct{}) ([]core.ID, error) {
	var ids []core.ID
	for _, ct := range types {
		prefix := makePartialTypeKey(studentID, ct)
		err := scanPrefix(tx, prefix, func(key []byte) error {
			id, err := idFromIndexKey(key, prefix)
			if err != nil {
				return err
			}
			if _, ok := inScope[id]; ok {
				ids = append(ids, id)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// readMaterial reads a material from the transaction.
// Returns nil, nil if the key doesn't exist.
func readMaterial(tx *badger.Txn, key []byte) (*core.Material, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var m *core.Material
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		m, unmarshalErr = storage.UnmarshalMaterial(val)
		return unmarshalErr
	})
	return m, err
}

// writeMaterial stores the primary record and its index entries.
func writeMaterial(tx *badger.Txn, m *core.Material) error {
	if err := tx.Set(makeMaterialKey(m.ID), storage.MarshalMaterial(m)); err != nil {
		return err
	}
	if err := tx.Set(makeStudentMaterialKey(m.StudentID, m.ID), nil); err != nil {
		return err
	}
	return tx.Set(makeTypeKey(m.StudentID, m.ContentType, m.ID), nil)
}

// deleteMaterialIndex removes the index entries for a material.
func deleteMaterialIndex(tx *badger.Txn, m *core.Material) error {
	if err := tx.Delete(makeStudentMaterialKey(m.StudentID, m.ID)); err != nil {
		return err
	}
	return tx.Delete(makeTypeKey(m.StudentID, m.ContentType, m.ID))
}
