// Package filter converts query intents into retrieval criteria.
//
// Build is a pure mapping from a core.QueryIntent and the current instant to
// a Criteria value. Criteria carry independent predicates (content type,
// completion, due range, keyword, subject, grade ratio) that combine with AND.
//
// Stores evaluate the predicates they support natively and advertise them as
// a PredicateSet. Split divides criteria into the pushed-down half and the
// residual half that the caller applies with Matches:
//
//	pushed, residual := criteria.Split(store.Pushdown())
//	candidates, _ := store.FindMaterials(ctx, storage.MaterialQuery{Criteria: pushed})
//	candidates = residual.Filter(candidates)
//
// Expression renders criteria as a CEL expression, and CompileExpression
// evaluates such expressions against materials with google/cel-go.
package filter
