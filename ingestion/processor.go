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


package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/retry"
	"github.com/poiesic/satchel/storage"
)

// processor persists one batch of decoded materials.
type processor interface {
	process(ctx context.Context, batch []*core.Material) (attempts int, err error)
}

// storeWriter writes batches to a material repository, retrying
// transient failures with exponential backoff.
type storeWriter struct {
	materials storage.MaterialRepository
	policy    retry.Policy
}

var _ processor = (*storeWriter)(nil)

func newStoreWriter(materials storage.MaterialRepository, policy retry.Policy, logger *slog.Logger) *storeWriter {
	policy.Backoff = retry.Exponential
	policy.Retryable = func(err error) bool {
		// Validation and closed stores fail the same way every time.
		return !errors.Is(err, core.ErrInvalidMaterial) &&
			!errors.Is(err, storage.ErrStorageClosed) &&
			!errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded)
	}
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warn("batch write failed, retrying", "attempt", attempt, "delay", delay, "err", err)
	}
	return &storeWriter{materials: materials, policy: policy}
}

func (w *storeWriter) process(ctx context.Context, batch []*core.Material) (int, error) {
	return w.policy.Do(ctx, func() error {
		_, err := w.materials.AddMaterials(ctx, batch...)
		return err
	})
}
