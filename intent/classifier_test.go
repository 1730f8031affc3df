package intent

import (
	"sync"
	"testing"

	"github.com/poiesic/satchel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Empty(t *testing.T) {
	qi := Classify("")

	assert.Equal(t, core.IntentMixed, qi.Type)
	assert.Equal(t, core.UrgencyNone, qi.Urgency)
	assert.Equal(t, core.StatusNone, qi.Status)
	assert.Empty(t, qi.Subject)
	assert.Empty(t, qi.ContentType)
	assert.NotNil(t, qi.Keywords)
	assert.Empty(t, qi.Keywords)
}

func TestClassify_StopWords(t *testing.T) {
	qi := Classify("what is my homework")

	assert.NotContains(t, qi.Keywords, "what")
	assert.NotContains(t, qi.Keywords, "is")
	assert.NotContains(t, qi.Keywords, "my")
	assert.Equal(t, []string{"homework"}, qi.Keywords)
	assert.Equal(t, "what is my homework", qi.OriginalQuery)
}

func TestClassify_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantType    core.IntentType
		wantUrgency core.Urgency
		wantSubject string
		wantContent core.ContentType
		wantStatus  core.Status
	}{
		{
			name:        "overdue math worksheets",
			query:       "overdue math worksheets",
			wantType:    core.IntentHomework,
			wantUrgency: core.UrgencyOverdue,
			wantSubject: "math",
			wantContent: core.ContentTypeWorksheet,
		},
		{
			name:        "review dominates assignment work",
			query:       "review my finished worksheets",
			wantType:    core.IntentReview,
			wantContent: core.ContentTypeWorksheet,
			wantStatus:  core.StatusCompleted,
		},
		{
			name:       "review low scores",
			query:      "review low scores",
			wantType:   core.IntentReview,
			wantStatus: core.StatusLowScores,
		},
		{
			name:        "review with homework language is still review",
			query:       "review my overdue homework",
			wantType:    core.IntentReview,
			wantUrgency: core.UrgencyOverdue,
		},
		{
			name:        "lesson request with synonym subject",
			query:       "help me understand algebra",
			wantType:    core.IntentLesson,
			wantSubject: "math",
		},
		{
			name:        "whats due tomorrow",
			query:       "What's due tomorrow?",
			wantType:    core.IntentHomework,
			wantUrgency: core.UrgencyDueSoon,
		},
		{
			name:        "incomplete science assignments",
			query:       "incomplete science assignments",
			wantType:    core.IntentHomework,
			wantSubject: "science",
			wantContent: core.ContentTypeAssignment,
			wantStatus:  core.StatusIncomplete,
		},
		{
			name:        "homework and lesson language together is mixed",
			query:       "what is my homework",
			wantType:    core.IntentMixed,
		},
		{
			name:        "reading maps to lesson content",
			query:       "spanish reading for today",
			wantType:    core.IntentMixed,
			wantUrgency: core.UrgencyDueToday,
			wantSubject: "spanish",
			wantContent: core.ContentTypeLesson,
		},
		{
			name:     "no signal",
			query:    "photosynthesis",
			wantType: core.IntentMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qi := Classify(tt.query)
			assert.Equal(t, tt.wantType, qi.Type)
			assert.Equal(t, tt.wantUrgency, qi.Urgency)
			assert.Equal(t, tt.wantSubject, qi.Subject)
			assert.Equal(t, tt.wantContent, qi.ContentType)
			assert.Equal(t, tt.wantStatus, qi.Status)
		})
	}
}

func TestClassify_Keywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lower-cased in order", "Overdue MATH Worksheets", []string{"overdue", "math", "worksheets"}},
		{"punctuation stripped", "quiz, chapter 3!!", []string{"quiz", "chapter"}},
		{"short tokens dropped", "go to it on my ch 4 notes", []string{"notes"}},
		{"help is a stop word", "help with fractions", []string{"fractions"}},
		{
			"capped at ten",
			"alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima",
			[]string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query).Keywords)
		})
	}
}

func TestNewClassifier_Options(t *testing.T) {
	t.Run("extra stop words", func(t *testing.T) {
		c, err := NewClassifier(WithStopWords("worksheets"))
		require.NoError(t, err)
		assert.Equal(t, []string{"math"}, c.Classify("math worksheets").Keywords)
	})

	t.Run("custom cap", func(t *testing.T) {
		c, err := NewClassifier(WithMaxKeywords(2))
		require.NoError(t, err)
		assert.Equal(t, []string{"overdue", "math"}, c.Classify("overdue math worksheets").Keywords)
	})

	t.Run("invalid cap", func(t *testing.T) {
		_, err := NewClassifier(WithMaxKeywords(0))
		assert.ErrorIs(t, err, ErrInvalidMaxKeywords)
	})
}

func TestClassify_Deterministic(t *testing.T) {
	const query = "review my overdue math quiz"
	want := Classify(query)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Classify(query))
		}()
	}
	wg.Wait()
}
