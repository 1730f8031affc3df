package core

// IntentType is the dominant purpose inferred from a query.
type IntentType string

const (
	IntentHomework IntentType = "homework"
	IntentLesson   IntentType = "lesson"
	IntentReview   IntentType = "review"
	IntentMixed    IntentType = "mixed"
)

// Urgency narrows a query by due date. The zero value means no urgency.
type Urgency string

const (
	UrgencyNone     Urgency = ""
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueToday Urgency = "due_today"
	UrgencyDueSoon  Urgency = "due_soon"
)

// Status narrows a query by completion state. The zero value means no status.
type Status string

const (
	StatusNone       Status = ""
	StatusIncomplete Status = "incomplete"
	StatusCompleted  Status = "completed"
	StatusLowScores  Status = "low_scores"
)

// QueryIntent is the structured interpretation of a free-text query.
// Type is always set. Every other field is optional and empty when the
// query carried no evidence for it.
type QueryIntent struct {
	Type          IntentType
	Urgency       Urgency
	Subject       string
	ContentType   ContentType
	Status        Status
	Keywords      []string
	OriginalQuery string
}

var (
	homeworkContentTypes = []ContentType{ContentTypeLesson, ContentTypeWorksheet, ContentTypeQuiz, ContentTypeReview}
	lessonContentTypes   = []ContentType{ContentTypeLesson, ContentTypeReading, ContentTypeChapter}
	reviewContentTypes   = []ContentType{ContentTypeLesson, ContentTypeWorksheet, ContentTypeQuiz, ContentTypeReview}
)

// ContentTypes returns the content-type set implied by the intent.
// A nil result means no restriction.
func (qi QueryIntent) ContentTypes() []ContentType {
	if qi.ContentType != "" {
		return []ContentType{qi.ContentType}
	}
	var set []ContentType
	switch qi.Type {
	case IntentHomework:
		set = homeworkContentTypes
	case IntentLesson:
		set = lessonContentTypes
	case IntentReview:
		set = reviewContentTypes
	default:
		return nil
	}
	out := make([]ContentType, len(set))
	copy(out, set)
	return out
}
