package charts

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrSurfaceInUse is returned when a surface is acquired twice without a
// release in between.
var ErrSurfaceInUse = errors.New("chart surface already in use")

// Registry tracks which surfaces hold a live chart.
type Registry struct {
	mu   sync.Mutex
	live map[string]*Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[string]*Handle)}
}

// Handle is a live chart bound to a surface. Release it before the surface
// is reused.
type Handle struct {
	ID   uuid.UUID
	Spec Spec

	reg      *Registry
	released bool
}

// Acquire binds spec to spec.Surface.
func (r *Registry) Acquire(spec Spec) (*Handle, error) {
	if spec.Surface == "" {
		return nil, errors.New("chart spec has no surface")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.live[spec.Surface]; ok {
		return nil, fmt.Errorf("%w: %s (held by %s)", ErrSurfaceInUse, spec.Surface, cur.ID)
	}
	h := &Handle{ID: uuid.New(), Spec: spec, reg: r}
	r.live[spec.Surface] = h
	return h, nil
}

// Live returns the surfaces currently held, sorted.
func (r *Registry) Live() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.live))
	for s := range r.live {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Release frees the handle's surface. Releasing twice is a no-op.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	if cur, ok := h.reg.live[h.Spec.Surface]; ok && cur == h {
		delete(h.reg.live, h.Spec.Surface)
	}
	h.released = true
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	return h.released
}

// Panel owns the handles of one rendered view. Rebuild releases everything
// it owns before acquiring the replacements, so rebuilding never collides
// with its own previous charts.
type Panel struct {
	reg     *Registry
	handles []*Handle
}

// NewPanel returns a panel drawing on reg.
func NewPanel(reg *Registry) *Panel {
	return &Panel{reg: reg}
}

// Rebuild replaces the panel's charts with specs. On error every handle
// acquired so far is released and the panel is left empty.
func (p *Panel) Rebuild(specs []Spec) error {
	p.Close()
	handles := make([]*Handle, 0, len(specs))
	for _, spec := range specs {
		h, err := p.reg.Acquire(spec)
		if err != nil {
			for _, acquired := range handles {
				acquired.Release()
			}
			return err
		}
		handles = append(handles, h)
	}
	p.handles = handles
	return nil
}

// Handles returns the live handles in build order.
func (p *Panel) Handles() []*Handle {
	return p.handles
}

// Specs returns the specs of the live handles in build order.
func (p *Panel) Specs() []Spec {
	out := make([]Spec, len(p.handles))
	for i, h := range p.handles {
		out[i] = h.Spec
	}
	return out
}

// Close releases every owned handle.
func (p *Panel) Close() {
	for _, h := range p.handles {
		h.Release()
	}
	p.handles = nil
}

// With acquires spec's surface, runs fn and releases the surface whatever
// fn returns.
func With(reg *Registry, spec Spec, fn func(*Handle) error) error {
	h, err := reg.Acquire(spec)
	if err != nil {
		return err
	}
	defer h.Release()
	return fn(h)
}
