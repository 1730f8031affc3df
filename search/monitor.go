package search

import (
	"github.com/poiesic/satchel/core"
)

// Stage names a store-facing step of the search pipeline.
type Stage string

const (
	StageScope      Stage = "scope"
	StageCandidates Stage = "candidates"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(studentID, query string)
	AfterClassification(qi core.QueryIntent)
	AfterScopeResolution(scope *core.Scope)
	AfterCandidateFetch(candidates []*core.Material)
	AfterResidualFilter(kept []*core.Material)
	StoreRetry(stage Stage, attempt int, err error)
	Degraded(stage Stage, err error)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                      {}
func (n *noopMonitor) AfterClassification(_ core.QueryIntent) {}
func (n *noopMonitor) AfterScopeResolution(_ *core.Scope)     {}
func (n *noopMonitor) AfterCandidateFetch(_ []*core.Material) {}
func (n *noopMonitor) AfterResidualFilter(_ []*core.Material) {}
func (n *noopMonitor) StoreRetry(_ Stage, _ int, _ error)     {}
func (n *noopMonitor) Degraded(_ Stage, _ error)              {}
func (n *noopMonitor) Finish(_ []core.RankedResult)           {}
