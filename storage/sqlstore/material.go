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


package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
	"github.com/poiesic/satchel/storage"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaterialRepository implements storage.MaterialRepository on SQL.
type MaterialRepository struct {
	store *Store
}

var _ storage.MaterialRepository = (*MaterialRepository)(nil)

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(store *Store) *MaterialRepository {
	return &MaterialRepository{store: store}
}

// Close is a no-op. The Store owns the connection.
func (r *MaterialRepository) Close() error {
	return nil
}

// Pushdown reports the natively evaluated predicates.
func (r *MaterialRepository) Pushdown() filter.PredicateSet {
	return materialPushdown
}

// AddMaterials adds or replaces one or more materials.
// Materials with ID=0 get the next row ID.
func (r *MaterialRepository) AddMaterials(ctx context.Context, materials ...*core.Material) ([]*core.Material, error) {
	for _, m := range materials {
		if err := core.ValidateMaterial(m); err != nil {
			return nil, err
		}
	}

	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, m := range materials {
			if m.InsertedAt.IsZero() {
				m.InsertedAt = now
			}
			m.UpdatedAt = now

			row, err := toMaterialRow(m)
			if err != nil {
				return err
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&row).Error
			if err != nil {
				return translateError(err)
			}
			m.ID = rowID(row.ID)
		}
		return nil
	})
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

	err := r.store.withTx(ctx, func(tx *gorm.DB) error {
		for _, m := range materials {
			var old materialRow
			err := tx.Select("id", "inserted_at").First(&old, "id = ?", rowKey(m.ID)).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: material %d", storage.ErrNotFound, m.ID)
			}
			if err != nil {
				return err
			}

			m.InsertedAt = old.InsertedAt.UTC()
			m.UpdatedAt = time.Now().UTC()

			row, err := toMaterialRow(m)
			if err != nil {
				return err
			}
			if err := tx.Select("*").Save(&row).Error; err != nil {
				return translateError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// DeleteMaterials removes materials by their IDs.
func (r *MaterialRepository) DeleteMaterials(ctx context.Context, ids ...core.ID) error {
	return r.store.withTx(ctx, func(tx *gorm.DB) error {
		for _, id := range ids {
			res := tx.Delete(&materialRow{}, "id = ?", rowKey(id))
			if res.Error != nil {
				return translateError(res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: material %d", storage.ErrNotFound, id)
			}
		}
		return nil
	})
}

// GetMaterial retrieves a single material by ID.
func (r *MaterialRepository) GetMaterial(ctx context.Context, id core.ID) (*core.Material, error) {
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var row materialRow
	if err := db.First(&row, "id = ?", rowKey(id)).Error; err != nil {
		return nil, translateError(err)
	}
	return row.material()
}

// GetMaterials retrieves multiple materials by their IDs, in the order
// requested. Missing IDs are skipped.
func (r *MaterialRepository) GetMaterials(ctx context.Context, ids ...core.ID) ([]*core.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []materialRow
	if err := db.Where("id IN ?", lo.Map(ids, func(id core.ID, _ int) int64 { return rowKey(id) })).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	byID := make(map[core.ID]*core.Material, len(rows))
	for _, row := range rows {
		m, err := row.material()
		if err != nil {
			return nil, err
		}
		byID[m.ID] = m
	}

	var result []*core.Material
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			result = append(result, m)
		}
	}
	return result, nil
}

// FindMaterials returns the in-scope materials that satisfy the pushed-down
// predicates, in storage.CompareCandidates order. The limit applies after
// ordering.
func (r *MaterialRepository) FindMaterials(ctx context.Context, query storage.MaterialQuery) ([]*core.Material, error) {
	if query.Scope == nil {
		return nil, fmt.Errorf("%w: scope is required", storage.ErrInvalidQuery)
	}
	if query.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", storage.ErrInvalidQuery, query.Limit)
	}
	db, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	if len(query.Scope.MaterialIDs) == 0 {
		return nil, nil
	}

	pushed := query.Criteria.Only(materialPushdown)
	keys := lo.Uniq(lo.Map(query.Scope.MaterialIDs, func(id core.ID, _ int) int64 { return rowKey(id) }))

	var rows []materialRow
	if err := applyCriteria(db.Where("id IN ?", keys), pushed).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	results := make([]*core.Material, 0, len(rows))
	for _, row := range rows {
		m, err := row.material()
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}

	// Stored keys are signed, so SQL order differs from ID order for
	// hashed IDs. Sort and cap here.
	slices.SortFunc(results, storage.CompareCandidates)
	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}

	r.store.logger.Debug("found materials",
		"student", query.Scope.StudentID,
		"scope", len(query.Scope.MaterialIDs),
		"pushed", pushed.Active().String(),
		"results", len(results))
	return results, nil
}
