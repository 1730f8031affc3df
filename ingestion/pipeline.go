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
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/retry"
	"github.com/poiesic/satchel/storage"
	"github.com/samber/lo"
)

const (
	// DefaultBatchSize is the number of materials written per store call.
	DefaultBatchSize = 100

	// DefaultMaxAttempts is the number of tries per batch write.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the base of the exponential backoff between tries.
	DefaultRetryDelay = 100 * time.Millisecond
)

// Pipeline imports raw materials into a record store.
// Decoding runs concurrently on a worker pool; writes are batched.
type Pipeline struct {
	materials   storage.MaterialRepository
	students    storage.StudentRepository
	decodePool  *ants.Pool
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent decoding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.decodePool != nil {
			p.decodePool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.decodePool = pool
		return nil
	}
}

// WithBatchSize sets how many materials are written per store call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets the attempts per batch and the exponential backoff base.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return retry.ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithProgress reports progress to w, typically os.Stderr.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(
	materials storage.MaterialRepository,
	students storage.StudentRepository,
	opts ...Option,
) (*Pipeline, error) {
	if materials == nil {
		return nil, ErrMaterialRepositoryRequired
	}
	if students == nil {
		return nil, ErrStudentRepositoryRequired
	}

	// Default pool size
	poolSize := max(runtime.NumCPU()/2, 1)
	decodePool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		materials:   materials,
		students:    students,
		decodePool:  decodePool,
		batchSize:   DefaultBatchSize,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ItemError describes one material that was not imported.
type ItemError struct {
	Index int // Position in the input
	Title string
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("material %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// ImportReport summarizes an import.
type ImportReport struct {
	Total    int
	Imported int
	Invalid  int // Payloads that failed to decode or validate
	Failed   int // Valid materials whose batch could not be written
	Attempts int // Store calls across all batches
	Errors   []ItemError
	Elapsed  time.Duration
}

// Import decodes raws and stores them as materials owned by studentID,
// registering the student when it is unknown. Invalid payloads and failed
// batches are recorded in the report; the returned error is reserved for
// problems that stop the whole import.
func (p *Pipeline) Import(ctx context.Context, studentID string, raws []RawMaterial) (*ImportReport, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, ErrStudentIDRequired
	}
	if err := p.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	report := &ImportReport{Total: len(raws)}
	tracker := NewProgressTracker(p.progress, len(raws), p.batchSize)
	tracker.Start()
	defer func() {
		report.Elapsed = tracker.Elapsed()
		if p.progress != nil {
			tracker.Finish()
		}
	}()

	decoded, err := p.decodeAll(ctx, studentID, raws)
	if err != nil {
		return nil, err
	}

	type indexed struct {
		index    int
		material *core.Material
	}
	var valid []indexed
	for i, d := range decoded {
		if d.err != nil {
			report.Invalid++
			report.Errors = append(report.Errors, ItemError{Index: i, Title: raws[i].Title, Err: d.err})
			tracker.Increment(1)
			continue
		}
		valid = append(valid, indexed{index: i, material: d.material})
	}

	writer := newStoreWriter(p.materials, retry.Policy{MaxAttempts: p.maxAttempts, BaseDelay: p.retryDelay}, p.logger)
	for _, chunk := range lo.Chunk(valid, p.batchSize) {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		batch := lo.Map(chunk, func(item indexed, _ int) *core.Material { return item.material })
		attempts, err := writer.process(ctx, batch)
		report.Attempts += attempts
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			p.logger.Error("batch write failed", "student", studentID, "size", len(batch), "attempts", attempts, "err", err)
			report.Failed += len(batch)
			for _, item := range chunk {
				report.Errors = append(report.Errors, ItemError{Index: item.index, Title: item.material.Title, Err: err})
			}
		} else {
			report.Imported += len(batch)
		}
		tracker.Increment(len(batch))
	}

	p.logger.Info("import complete",
		"student", studentID,
		"total", report.Total,
		"imported", report.Imported,
		"invalid", report.Invalid,
		"failed", report.Failed)
	return report, nil
}

func (p *Pipeline) ensureStudent(ctx context.Context, studentID string) error {
	_, err := p.students.GetStudent(ctx, studentID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	p.logger.Info("registering student", "student", studentID)
	_, err = p.students.AddStudents(ctx, &core.Student{ID: studentID})
	return err
}

type decodeResult struct {
	material *core.Material
	err      error
}

// decodeAll decodes every payload on the worker pool, keeping input order.
func (p *Pipeline) decodeAll(ctx context.Context, studentID string, raws []RawMaterial) ([]decodeResult, error) {
	results := make([]decodeResult, len(raws))
	var wg sync.WaitGroup
	for i := range raws {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		err := p.decodePool.Submit(func() {
			defer wg.Done()
			m, err := raws[i].Decode(studentID)
			results[i] = decodeResult{material: m, err: err}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to submit decode task: %w", err)
		}
	}
	wg.Wait()
	return results, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.decodePool != nil {
		p.decodePool.Release()
	}
}
