// Package intent classifies free-text student queries.
//
// Classification is total: every query, including the empty string, yields a
// core.QueryIntent. Category detection runs three independent pattern groups
// (homework, lesson, review) with review taking precedence when present.
// Subject, content type, urgency and status are extracted from ordered
// label tables where the first match wins and no match leaves the field empty.
//
// Usage:
//
//	qi := intent.Classify("overdue math worksheets")
//	// qi.Type == core.IntentHomework, qi.Urgency == core.UrgencyOverdue
package intent
