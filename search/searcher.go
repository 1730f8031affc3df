package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/filter"
	"github.com/poiesic/satchel/intent"
	"github.com/poiesic/satchel/rank"
	"github.com/poiesic/satchel/retry"
	"github.com/poiesic/satchel/storage"
	"github.com/samber/lo"
)

const (
	// DefaultMaxResults is the number of ranked results a search returns.
	DefaultMaxResults = 20

	// MaxResultsLimit is the largest accepted WithMaxResults value.
	MaxResultsLimit = 100

	// DefaultMaxAttempts is the number of tries per store call.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the base of the linear backoff between tries.
	DefaultRetryDelay = 200 * time.Millisecond
)

// Searcher ranks a student's materials against free-text queries.
// It holds no per-request state and is safe for concurrent use.
type Searcher struct {
	materials      storage.MaterialRepository
	students       storage.StudentRepository
	classifier     *intent.Classifier
	logger         *slog.Logger
	now            func() time.Time
	maxResults     int
	candidateLimit int
	maxAttempts    int
	retryDelay     time.Duration
	extra          *filter.Program
}

// Response is the outcome of one search.
type Response struct {
	Intent   core.QueryIntent
	Criteria filter.Criteria

	// At is the instant due dates were judged against.
	At time.Time

	// Results is ordered by rank and never nil.
	Results []core.RankedResult

	// Degraded is set when the store stayed unavailable after every retry.
	// Results is then empty and Err holds the last store error.
	Degraded bool
	Err      error

	// Attempts counts store calls across all stages.
	Attempts int

	// Candidates is the number of materials the store returned.
	Candidates int
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the source of "now" used to evaluate due dates.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

// WithMaxResults caps the number of ranked results.
func WithMaxResults(n int) Option {
	return func(s *Searcher) error {
		if n < 1 || n > MaxResultsLimit {
			return ErrInvalidMaxResults
		}
		s.maxResults = n
		return nil
	}
}

// WithRetry sets the attempts per store call and the linear backoff base.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(s *Searcher) error {
		if maxAttempts <= 0 {
			return retry.ErrInvalidMaxAttempts
		}
		s.maxAttempts = maxAttempts
		s.retryDelay = baseDelay
		return nil
	}
}

// WithCandidateLimit caps the candidates requested from the store.
// Zero means no cap. Stores keep incomplete work with the earliest due days
// when capping, so overdue candidates survive it. The cap applies before the
// residual filter, so fewer than n candidates may reach ranking.
func WithCandidateLimit(n int) Option {
	return func(s *Searcher) error {
		if n < 0 {
			return ErrInvalidCandidateLimit
		}
		s.candidateLimit = n
		return nil
	}
}

// WithFilter narrows every search with a CEL expression over the material
// variables of filter.Activation, for example `has_due && due_day < 19850`.
// It is applied after the query's own criteria.
func WithFilter(expr string) Option {
	return func(s *Searcher) error {
		prg, err := filter.CompileExpression(expr)
		if err != nil {
			return err
		}
		s.extra = prg
		return nil
	}
}

// WithClassifier replaces the default intent classifier.
func WithClassifier(c *intent.Classifier) Option {
	return func(s *Searcher) error {
		if c == nil {
			return ErrClassifierRequired
		}
		s.classifier = c
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	materials storage.MaterialRepository,
	students storage.StudentRepository,
	opts ...Option,
) (*Searcher, error) {
	if materials == nil {
		return nil, ErrMaterialRepositoryRequired
	}
	if students == nil {
		return nil, ErrStudentRepositoryRequired
	}

	classifier, err := intent.NewClassifier()
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		materials:   materials,
		students:    students,
		classifier:  classifier,
		logger:      slog.Default(),
		now:         func() time.Time { return time.Now().UTC() },
		maxResults:  DefaultMaxResults,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the student's materials against query.
func (s *Searcher) Search(ctx context.Context, studentID, query string) (*Response, error) {
	return s.SearchWithMonitor(ctx, studentID, query, nil)
}

// SearchWithMonitor ranks the student's materials against query with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// Store failures never surface as an error. The only error is
// ErrStudentIDRequired.
func (s *Searcher) SearchWithMonitor(ctx context.Context, studentID, query string, monitor SearchMonitor) (*Response, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrStudentIDRequired
	}

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(studentID, query)

	// 1. Classify
	qi := s.classifier.Classify(query)
	monitor.AfterClassification(qi)

	now := s.now()
	resp := &Response{
		Intent:   qi,
		Criteria: filter.Build(qi, now),
		At:       now,
		Results:  []core.RankedResult{},
	}

	// 2. Resolve the student's scope
	var scope *core.Scope
	attempts, err := s.policy(StageScope, monitor).Do(ctx, func() error {
		var err error
		scope, err = s.students.ResolveScope(ctx, studentID)
		return err
	})
	resp.Attempts += attempts
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no scope for student", "student", studentID)
		monitor.Finish(resp.Results)
		return resp, nil
	}
	if err != nil {
		return s.degrade(resp, StageScope, err, monitor), nil
	}
	monitor.AfterScopeResolution(scope)

	if len(scope.MaterialIDs) == 0 {
		monitor.Finish(resp.Results)
		return resp, nil
	}

	// 3. Fetch candidates with the predicates the store evaluates
	pushed, residual := resp.Criteria.Split(s.materials.Pushdown())
	var candidates []*core.Material
	attempts, err = s.policy(StageCandidates, monitor).Do(ctx, func() error {
		var err error
		candidates, err = s.materials.FindMaterials(ctx, storage.MaterialQuery{
			Scope:    scope,
			Criteria: pushed,
			Limit:    s.candidateLimit,
		})
		return err
	})
	resp.Attempts += attempts
	if err != nil {
		return s.degrade(resp, StageCandidates, err, monitor), nil
	}
	resp.Candidates = len(candidates)
	monitor.AfterCandidateFetch(candidates)

	// 4. Apply the rest in memory
	kept := residual.Filter(candidates)
	if s.extra != nil {
		kept = s.applyFilter(kept)
	}
	monitor.AfterResidualFilter(kept)

	// 5. Rank and truncate
	ranked := rank.Rank(kept, qi, now)
	resp.Results = lo.Subset(ranked, 0, uint(s.maxResults))

	s.logger.Debug("search complete",
		"student", studentID,
		"intent", qi.Type,
		"pushed", pushed.Active().String(),
		"residual", residual.Active().String(),
		"candidates", resp.Candidates,
		"results", len(resp.Results))

	monitor.Finish(resp.Results)
	return resp, nil
}

// applyFilter keeps the materials the WithFilter program accepts. A material
// the program cannot evaluate is dropped.
func (s *Searcher) applyFilter(materials []*core.Material) []*core.Material {
	return lo.Filter(materials, func(m *core.Material, _ int) bool {
		ok, err := s.extra.Matches(m)
		if err != nil {
			s.logger.Warn("filter expression failed", "material", m.ID, "filter", s.extra.Source(), "err", err)
			return false
		}
		return ok
	})
}

// policy builds the retry policy for one store-facing stage.
// Missing records are an answer, not a failure, so they are not retried.
func (s *Searcher) policy(stage Stage, monitor SearchMonitor) retry.Policy {
	return retry.Policy{
		MaxAttempts: s.maxAttempts,
		BaseDelay:   s.retryDelay,
		Backoff:     retry.Linear,
		Retryable: func(err error) bool {
			return !errors.Is(err, storage.ErrNotFound) &&
				!errors.Is(err, storage.ErrInvalidQuery) &&
				!errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded)
		},
		OnRetry: func(attempt int, err error, delay time.Duration) {
			s.logger.Warn("store call failed, retrying",
				"stage", stage, "attempt", attempt, "delay", delay, "err", err)
			monitor.StoreRetry(stage, attempt, err)
		},
	}
}

func (s *Searcher) degrade(resp *Response, stage Stage, err error, monitor SearchMonitor) *Response {
	s.logger.Error("search degraded", "stage", stage, "attempts", resp.Attempts, "err", err)
	resp.Degraded = true
	resp.Err = err
	resp.Results = []core.RankedResult{}
	monitor.Degraded(stage, err)
	monitor.Finish(resp.Results)
	return resp
}
