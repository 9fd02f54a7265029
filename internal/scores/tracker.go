package scores

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/scorebook/internal/logger"
	"github.com/abhisek/scorebook/internal/store"
)

// Tracker owns the subject list, the test attempts and the transient
// editing reference. Every mutation goes through it and is persisted
// before it returns; a failed write rolls the mutation back.
//
// Tracker is not safe for concurrent use. The TUI and the CLI each drive
// it from a single goroutine.
type Tracker struct {
	repo     store.StateRepo
	log      *logger.Logger
	now      func() time.Time
	defaults []string

	subjects []string
	attempts []Attempt

	editingID int64
	editing   bool

	lastID   int64
	revision uint64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *logger.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock sets the clock used for attempt ids. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker loads state from repo. Fields missing from storage fall back
// to defaults individually: no stored subjects means the defaults, no
// stored attempts means none. A storage read failure is not an error.
func NewTracker(ctx context.Context, repo store.StateRepo, defaults []string, opts ...Option) *Tracker {
	t := &Tracker{
		repo:     repo,
		log:      logger.Nop(),
		now:      time.Now,
		defaults: slices.Clone(defaults),
	}
	for _, opt := range opts {
		opt(t)
	}

	persisted, err := repo.Load(ctx)
	if err != nil {
		t.log.Warn("load state failed, using defaults", "error", err)
		persisted = store.PersistedState{}
	}
	t.hydrate(persisted)
	return t
}

func (t *Tracker) hydrate(p store.PersistedState) {
	if p.Subjects != nil {
		t.subjects = uniqueSubjects(p.Subjects)
		if len(t.subjects) != len(p.Subjects) {
			t.log.Warn("dropped duplicate stored subjects", "stored", len(p.Subjects), "kept", len(t.subjects))
		}
	} else {
		t.subjects = slices.Clone(t.defaults)
	}
	if t.subjects == nil {
		t.subjects = []string{}
	}

	t.attempts = make([]Attempt, 0, len(p.TestData))
	for _, r := range p.TestData {
		if r.ID > t.lastID {
			t.lastID = r.ID
		}
	}
	seen := make(map[int64]bool, len(p.TestData))
	for _, r := range p.TestData {
		a := fromRecord(r)
		if seen[a.ID] {
			t.lastID++
			t.log.Warn("re-keyed attempt with duplicate id", "old_id", a.ID, "new_id", t.lastID)
			a.ID = t.lastID
		}
		seen[a.ID] = true
		t.attempts = append(t.attempts, a)
	}
}

func uniqueSubjects(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Subjects returns the current subjects in display order.
func (t *Tracker) Subjects() []string {
	return slices.Clone(t.subjects)
}

// Attempts returns copies of all attempts in stored order.
func (t *Tracker) Attempts() []Attempt {
	out := make([]Attempt, len(t.attempts))
	for i, a := range t.attempts {
		out[i] = a.clone()
	}
	return out
}

// Attempt returns a copy of the attempt with the given id.
func (t *Tracker) Attempt(id int64) (Attempt, bool) {
	i := t.indexOf(id)
	if i < 0 {
		return Attempt{}, false
	}
	return t.attempts[i].clone(), true
}

// Snapshot returns a consistent copy of subjects and attempts.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{Subjects: t.Subjects(), Attempts: t.Attempts()}
}

// Editing returns the id of the attempt under edit.
func (t *Tracker) Editing() (int64, bool) {
	return t.editingID, t.editing
}

// Revision increases with every applied mutation. Renderers compare it to
// decide when to rebuild.
func (t *Tracker) Revision() uint64 {
	return t.revision
}

// AddSubject appends a subject. The name is trimmed; empty and duplicate
// names are rejected with a *ValidationError.
func (t *Tracker) AddSubject(ctx context.Context, name string) (Notice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Notice{}, &ValidationError{Field: "subject", Err: ErrEmptySubject}
	}
	if slices.Contains(t.subjects, name) {
		return Notice{}, &ValidationError{Field: "subject", Value: name, Err: ErrDuplicateSubject}
	}

	err := t.apply(ctx, "add subject", func() {
		t.subjects = append(t.subjects, name)
	})
	if err != nil {
		return Notice{}, err
	}
	t.log.Debug("subject added", "subject", name)
	return Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("Added %s.", name)}, nil
}

// RemoveSubject drops a subject from the list. Scores recorded for it in
// existing attempts, and their totals, are left untouched.
func (t *Tracker) RemoveSubject(ctx context.Context, name string) error {
	i := slices.Index(t.subjects, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSubject, name)
	}
	err := t.apply(ctx, "remove subject", func() {
		t.subjects = slices.Delete(t.subjects, i, i+1)
	})
	if err != nil {
		return err
	}
	t.log.Debug("subject removed", "subject", name)
	return nil
}

// Submit records the entry. With no attempt under edit it appends a new
// attempt scored on every current subject. While editing it overwrites
// the attempt's name and date, merges the entry's scores over the stored
// ones, recomputes the total and ends the edit.
func (t *Tracker) Submit(ctx context.Context, e Entry) (Notice, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return Notice{}, &ValidationError{Field: "name", Err: ErrEmptyTestName}
	}
	date := strings.TrimSpace(e.Date)

	if t.editing {
		return t.update(ctx, t.editingID, name, date, e.Scores)
	}

	scores := make(map[string]int, len(t.subjects))
	for _, sub := range t.subjects {
		scores[sub] = ParseScore(e.Scores[sub])
	}
	a := Attempt{
		Name:   name,
		Date:   date,
		Scores: scores,
		Total:  sum(scores),
	}

	err := t.apply(ctx, "add attempt", func() {
		a.ID = t.nextID()
		t.attempts = append(t.attempts, a)
	})
	if err != nil {
		return Notice{}, err
	}
	t.log.Debug("attempt added", "id", a.ID, "name", a.Name, "total", a.Total)
	return Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("Added %s.", a.Name)}, nil
}

func (t *Tracker) update(ctx context.Context, id int64, name, date string, fields map[string]string) (Notice, error) {
	i := t.indexOf(id)
	if i < 0 {
		t.CancelEdit()
		return Notice{}, fmt.Errorf("%w: %d", ErrUnknownAttempt, id)
	}

	updated := t.attempts[i].clone()
	updated.Name = name
	updated.Date = date
	for _, sub := range t.subjects {
		if text, ok := fields[sub]; ok {
			updated.Scores[sub] = ParseScore(text)
		}
	}
	updated.Total = sum(updated.Scores)

	err := t.apply(ctx, "update attempt", func() {
		t.attempts[i] = updated
		t.editing = false
		t.editingID = 0
	})
	if err != nil {
		return Notice{}, err
	}
	t.log.Debug("attempt updated", "id", id, "total", updated.Total)
	return Notice{Kind: NoticeSuccess, Message: "Updated " + updated.Name + "."}, nil
}

// BeginEdit marks the attempt as under edit and returns the form content
// prefilled from it.
func (t *Tracker) BeginEdit(id int64) (Entry, error) {
	i := t.indexOf(id)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownAttempt, id)
	}
	t.editingID = id
	t.editing = true
	return EntryFor(t.attempts[i], t.subjects), nil
}

// CancelEdit leaves editing mode without touching any attempt.
func (t *Tracker) CancelEdit() {
	t.editing = false
	t.editingID = 0
}

// RemoveAttempt deletes the attempt. If it is under edit the edit is
// cancelled first.
func (t *Tracker) RemoveAttempt(ctx context.Context, id int64) error {
	i := t.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownAttempt, id)
	}
	err := t.apply(ctx, "remove attempt", func() {
		if t.editing && t.editingID == id {
			t.CancelEdit()
		}
		t.attempts = slices.Delete(t.attempts, i, i+1)
	})
	if err != nil {
		return err
	}
	t.log.Debug("attempt removed", "id", id)
	return nil
}

// Reset restores the default subjects and drops every attempt.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.apply(ctx, "reset", func() {
		t.CancelEdit()
		t.subjects = slices.Clone(t.defaults)
		if t.subjects == nil {
			t.subjects = []string{}
		}
		t.attempts = []Attempt{}
	})
}

// apply runs fn and persists the result. If the write fails, subjects,
// attempts and the editing reference are restored and the error returned.
func (t *Tracker) apply(ctx context.Context, op string, fn func()) error {
	prevSubjects := slices.Clone(t.subjects)
	prevAttempts := t.Attempts()
	prevEditing, prevEditingID, prevLastID := t.editing, t.editingID, t.lastID

	fn()

	if err := t.repo.Save(ctx, t.persisted()); err != nil {
		t.subjects = prevSubjects
		t.attempts = prevAttempts
		t.editing, t.editingID, t.lastID = prevEditing, prevEditingID, prevLastID
		t.log.Error("save state failed, change rolled back", "op", op, "error", err)
		return fmt.Errorf("save state: %w", err)
	}
	t.revision++
	return nil
}

// persisted builds the stored document. The editing reference is never
// part of it.
func (t *Tracker) persisted() store.PersistedState {
	p := store.PersistedState{
		Subjects: slices.Clone(t.subjects),
		TestData: make([]store.AttemptRecord, len(t.attempts)),
	}
	if p.Subjects == nil {
		p.Subjects = []string{}
	}
	for i, a := range t.attempts {
		p.TestData[i] = toRecord(a)
	}
	return p
}

// nextID returns a creation-timestamp id, bumped past the largest id seen
// so far when the clock has not advanced.
func (t *Tracker) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Tracker) indexOf(id int64) int {
	return slices.IndexFunc(t.attempts, func(a Attempt) bool { return a.ID == id })
}

func sum(scores map[string]int) int {
	total := 0
	for _, v := range scores {
		total += v
	}
	return total
}

// EntryFor returns form content for editing a: its name and date, and a
// score field per subject holding the stored value, or empty when the
// attempt has no score for that subject.
func EntryFor(a Attempt, subjects []string) Entry {
	e := Entry{Name: a.Name, Date: a.Date, Scores: make(map[string]string, len(subjects))}
	for _, sub := range subjects {
		if v, ok := a.Scores[sub]; ok {
			e.Scores[sub] = FormatScore(v)
		} else {
			e.Scores[sub] = ""
		}
	}
	return e
}

// RemoveSubjectPrompt is the confirmation question shown before RemoveSubject.
func RemoveSubjectPrompt(name string) string {
	return fmt.Sprintf("Remove %s? Scores already recorded for it are kept, but it will no longer appear in forms or charts.", name)
}

// RemoveAttemptPrompt is the confirmation question shown before RemoveAttempt.
func RemoveAttemptPrompt(a Attempt) string {
	return fmt.Sprintf("Delete %q? This cannot be undone.", a.Name)
}
