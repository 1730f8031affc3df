package filter

import "strings"

// Predicate identifies one kind of constraint a Criteria can carry.
type Predicate uint8

const (
	PredicateContentType Predicate = iota
	PredicateCompletion
	PredicateDueRange
	PredicateKeyword
	PredicateSubject
	PredicateGradeRatio

	numPredicates
)

var predicateNames = [numPredicates]string{
	PredicateContentType: "content_type",
	PredicateCompletion:  "completion",
	PredicateDueRange:    "due_range",
	PredicateKeyword:     "keyword",
	PredicateSubject:     "subject",
	PredicateGradeRatio:  "grade_ratio",
}

func (p Predicate) String() string {
	if p >= numPredicates {
		return "unknown"
	}
	return predicateNames[p]
}

// PredicateSet is a set of predicate kinds. Stores advertise the kinds they
// evaluate natively as a PredicateSet.
type PredicateSet uint16

// AllPredicates contains every predicate kind.
const AllPredicates PredicateSet = 1<<numPredicates - 1

// NewPredicateSet builds a set from the given kinds.
func NewPredicateSet(ps ...Predicate) PredicateSet {
	var s PredicateSet
	for _, p := range ps {
		s |= 1 << p
	}
	return s
}

// Has reports whether p is in the set.
func (s PredicateSet) Has(p Predicate) bool {
	return s&(1<<p) != 0
}

// Predicates lists the kinds in the set in declaration order.
func (s PredicateSet) Predicates() []Predicate {
	var out []Predicate
	for p := range numPredicates {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s PredicateSet) String() string {
	names := make([]string, 0, numPredicates)
	for _, p := range s.Predicates() {
		names = append(names, p.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
