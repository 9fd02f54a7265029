package store

import "context"

// StateKey is the fixed key under which the tracker state blob lives.
const StateKey = "testScoreAnalyzerState"

// AttemptRecord is the stored form of one test attempt.
type AttemptRecord struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Date   string         `json:"date"`
	Scores map[string]int `json:"scores"`
	Total  int            `json:"total"`
}

// PersistedState is the document stored under StateKey.
// A nil field means the field was absent (or null) in storage; callers
// fall back to their defaults for that field only.
type PersistedState struct {
	Subjects []string        `json:"subjects"`
	TestData []AttemptRecord `json:"testData"`
}

// KVRepo is a string key-value store. Values are overwritten whole.
type KVRepo interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any prior value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

// StateRepo persists the tracker state as a single blob.
type StateRepo interface {
	// Save serializes state and overwrites the stored blob.
	Save(ctx context.Context, state PersistedState) error

	// Load returns the stored state. A missing or unparsable blob yields
	// an empty PersistedState and a nil error.
	Load(ctx context.Context) (PersistedState, error)

	// Clear removes the stored blob.
	Clear(ctx context.Context) error
}
