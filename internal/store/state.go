package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/scorebook/internal/logger"
)

// stateRepo implements StateRepo as one JSON value under StateKey.
type stateRepo struct {
	kv  KVRepo
	log *logger.Logger
}

// NewStateRepo returns a StateRepo storing its blob in kv.
// A nil log discards warnings.
func NewStateRepo(kv KVRepo, log *logger.Logger) StateRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &stateRepo{kv: kv, log: log}
}

func (r *stateRepo) Save(ctx context.Context, state PersistedState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := r.kv.Put(ctx, StateKey, string(b)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func (r *stateRepo) Load(ctx context.Context) (PersistedState, error) {
	raw, ok, err := r.kv.Get(ctx, StateKey)
	if err != nil {
		r.log.Warn("state read failed, using defaults", "error", err)
		return PersistedState{}, nil
	}
	if !ok {
		return PersistedState{}, nil
	}

	var state PersistedState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		r.log.Warn("stored state is not valid JSON, using defaults", "error", err, "bytes", len(raw))
		return PersistedState{}, nil
	}
	return state, nil
}

func (r *stateRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, StateKey); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}
