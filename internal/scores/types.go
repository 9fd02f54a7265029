package scores

import (
	"errors"
	"fmt"
	"maps"

	"github.com/abhisek/scorebook/internal/store"
)

// Validation sentinels. Tracker operations wrap them in *ValidationError.
var (
	ErrEmptySubject     = errors.New("subject name is empty")
	ErrDuplicateSubject = errors.New("subject already exists")
	ErrEmptyTestName    = errors.New("test name is required")
)

// Lookup failures.
var (
	ErrUnknownSubject = errors.New("no such subject")
	ErrUnknownAttempt = errors.New("no such test attempt")
)

// ValidationError reports rejected user input. State is unchanged when
// one is returned.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Attempt is one recorded test.
type Attempt struct {
	ID     int64
	Name   string
	Date   string
	Scores map[string]int
	// Total is the sum of Scores at the last create or update. It is
	// stored, not recomputed on read.
	Total int
}

// Score returns the score for subject, 0 when absent.
func (a Attempt) Score(subject string) int {
	return a.Scores[subject]
}

// clone returns a deep copy.
func (a Attempt) clone() Attempt {
	a.Scores = maps.Clone(a.Scores)
	if a.Scores == nil {
		a.Scores = map[string]int{}
	}
	return a
}

// Entry is the raw content of the score-entry form: the test name, the
// date, and the text typed into each subject's score field.
type Entry struct {
	Name   string
	Date   string
	Scores map[string]string
}

// NoticeKind classifies a Notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a short user-facing message produced by a tracker operation.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// ErrorNotice converts err into a user-facing notice.
func ErrorNotice(err error) Notice {
	return Notice{Kind: NoticeError, Message: err.Error()}
}

// Snapshot is a consistent copy of tracker state.
type Snapshot struct {
	Subjects []string
	Attempts []Attempt
}

func fromRecord(r store.AttemptRecord) Attempt {
	a := Attempt{ID: r.ID, Name: r.Name, Date: r.Date, Scores: r.Scores, Total: r.Total}
	return a.clone()
}

func toRecord(a Attempt) store.AttemptRecord {
	return store.AttemptRecord{
		ID:     a.ID,
		Name:   a.Name,
		Date:   a.Date,
		Scores: maps.Clone(a.Scores),
		Total:  a.Total,
	}
}
