package model

import (
	"strings"
	"time"
)

// Exam identifies one examination event.  The Key combines name and
// year and is the handle used by every exam-scoped operation; the two
// allocation collections (coordinator and EY) hang off this key.
//
// Fields:
//  Key       – "{name} - {year}", unique.
//  Name      – exam name as entered by the operator.
//  Year      – four-digit year string.
//  CreatedAt – creation timestamp.
type Exam struct {
	Key       string    `json:"key"`        // exams.exam_key
	Name      string    `json:"name"`       // exams.name
	Year      string    `json:"year"`       // exams.year
	CreatedAt time.Time `json:"created_at"` // exams.created_at
}

// ExamKey builds the canonical exam key from a name and year.
func ExamKey(name, year string) string {
	return strings.TrimSpace(name) + " - " + strings.TrimSpace(year)
}

// SplitExamKey recovers name and year from a canonical key.  Keys
// written by older datasets may lack the separator; in that case the
// whole key is treated as the name.
func SplitExamKey(key string) (name, year string) {
	if i := strings.LastIndex(key, " - "); i >= 0 {
		return key[:i], key[i+3:]
	}
	return key, ""
}
