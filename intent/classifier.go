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


package intent

import (
	"errors"
	"regexp"

	"github.com/poiesic/satchel/core"
)

var (
	// ErrInvalidMaxKeywords indicates a non-positive keyword cap.
	ErrInvalidMaxKeywords = errors.New("max keywords must be positive")
)

// rule pairs a label with the pattern that selects it.
type rule[T any] struct {
	label   T
	pattern *regexp.Regexp
}

func firstMatch[T any](rules []rule[T], query string) (T, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(query) {
			return r.label, true
		}
	}
	var zero T
	return zero, false
}

var (
	homeworkPattern = regexp.MustCompile(`(?i)\b(homework|assignments?|due|overdue|incomplete|finish|complete|work on)\b|what['’]?s due|need to (finish|complete)`)
	lessonPattern   = regexp.MustCompile(`(?i)\b(lessons?|learn|teach|understand|explain|study|review)\b|help (me )?(with|understand)|what (is|are)|how do`)
	reviewPattern   = regexp.MustCompile(`(?i)\b(review|revisit|practice|low scores?|grades?|graded|completed|finished|done)\b|go over`)
)

var subjectRules = []rule[string]{
	{"math", regexp.MustCompile(`(?i)\b(math|maths|mathematics|algebra|geometry|calculus|arithmetic|fractions?|decimals?)\b`)},
	{"science", regexp.MustCompile(`(?i)\b(science|biology|chemistry|physics|ecology)\b`)},
	{"english", regexp.MustCompile(`(?i)\b(english|grammar|writing|essays?|vocabulary|spelling|literature)\b`)},
	{"history", regexp.MustCompile(`(?i)\b(history|social studies|civics|geography)\b`)},
	{"spanish", regexp.MustCompile(`(?i)\b(spanish|español|espanol)\b`)},
}

var contentTypeRules = []rule[core.ContentType]{
	{core.ContentTypeWorksheet, regexp.MustCompile(`(?i)\bworksheets?\b`)},
	{core.ContentTypeQuiz, regexp.MustCompile(`(?i)\b(quiz|quizzes)\b`)},
	{core.ContentTypeTest, regexp.MustCompile(`(?i)\b(tests?|exams?)\b`)},
	{core.ContentTypeAssignment, regexp.MustCompile(`(?i)\bassignments?\b`)},
	{core.ContentTypeLesson, regexp.MustCompile(`(?i)\b(lessons?|chapters?|readings?)\b`)},
}

var urgencyRules = []rule[core.Urgency]{
	{core.UrgencyOverdue, regexp.MustCompile(`(?i)\b(overdue|late|past due|missed)\b`)},
	{core.UrgencyDueToday, regexp.MustCompile(`(?i)\b(due today|today|tonight)\b`)},
	{core.UrgencyDueSoon, regexp.MustCompile(`(?i)\b(due soon|upcoming|tomorrow|this week|coming up)\b`)},
}

// Mutually exclusive, checked in this order.
var statusRules = []rule[core.Status]{
	{core.StatusIncomplete, regexp.MustCompile(`(?i)\b(incomplete|unfinished|pending|outstanding|not (yet )?(done|finished|completed)|need to (finish|complete)|haven['’]?t (done|finished|completed))\b`)},
	{core.StatusCompleted, regexp.MustCompile(`(?i)\b(completed|finished|done|turned in|submitted)\b`)},
	{core.StatusLowScores, regexp.MustCompile(`(?i)\b(low (scores?|grades?)|bad (scores?|grades?)|poor(ly)?|failed|struggled)\b`)},
}

// Classifier turns free-text queries into a core.QueryIntent.
// Its tables are read-only after construction, so one Classifier may
// serve any number of goroutines.
type Classifier struct {
	stopWords   map[string]struct{}
	maxKeywords int
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithStopWords adds words to the default stop-word set.
func WithStopWords(words ...string) Option {
	return func(c *Classifier) error {
		for _, w := range words {
			c.stopWords[w] = struct{}{}
		}
		return nil
	}
}

// WithMaxKeywords overrides the keyword cap.
func WithMaxKeywords(n int) Option {
	return func(c *Classifier) error {
		if n <= 0 {
			return ErrInvalidMaxKeywords
		}
		c.maxKeywords = n
		return nil
	}
}

// NewClassifier creates a Classifier with the default stop words and cap.
func NewClassifier(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		stopWords:   make(map[string]struct{}, len(defaultStopWords)),
		maxKeywords: MaxKeywords,
	}
	for _, w := range defaultStopWords {
		c.stopWords[w] = struct{}{}
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var defaultClassifier, _ = NewClassifier()

// Classify interprets query with the default Classifier.
func Classify(query string) core.QueryIntent {
	return defaultClassifier.Classify(query)
}

// Classify interprets query. It never fails: a query with no recognizable
// signal yields IntentMixed with every optional field empty.
func (c *Classifier) Classify(query string) core.QueryIntent {
	qi := core.QueryIntent{
		Type:          classifyType(query),
		Keywords:      extractKeywords(query, c.stopWords, c.maxKeywords),
		OriginalQuery: query,
	}
	qi.Subject, _ = firstMatch(subjectRules, query)
	qi.ContentType, _ = firstMatch(contentTypeRules, query)
	qi.Urgency, _ = firstMatch(urgencyRules, query)
	qi.Status, _ = firstMatch(statusRules, query)
	return qi
}

// classifyType applies the category precedence. Review language dominates
// whenever present; homework and lesson each win only when alone.
func classifyType(query string) core.IntentType {
	homework := homeworkPattern.MatchString(query)
	lesson := lessonPattern.MatchString(query)
	review := reviewPattern.MatchString(query)

	switch {
	case review:
		return core.IntentReview
	case homework && !lesson:
		return core.IntentHomework
	case lesson && !homework:
		return core.IntentLesson
	default:
		return core.IntentMixed
	}
}
