package pipeline

import (
	"context"

	kv "github.com/gokin/validator"
)

// Phase represents a single validation phase in the pipeline.
// Each phase is responsible for one aspect of dataset validation.
//
// Phases should be:
// - Stateless: All state should be in the Context
// - Accumulating: report every defect found, never panic on bad input
// - Fast-failing: return early if ctx is cancelled or max errors reached
type Phase interface {
	// Name returns the unique identifier for this phase.
	Name() string

	// Validate performs the validation and returns any issues found.
	// The context.Context is used for cancellation.
	// The pipeline Context holds the candidate and accumulates issues.
	Validate(ctx context.Context, pctx *Context) []kv.Issue
}

// PhaseFunc adapts a function to the Phase interface.
// Useful for simple phases that don't need a full struct.
type PhaseFunc struct {
	name string
	fn   func(ctx context.Context, pctx *Context) []kv.Issue
}

// NewPhaseFunc creates a Phase from a function.
func NewPhaseFunc(name string, fn func(ctx context.Context, pctx *Context) []kv.Issue) Phase {
	return &PhaseFunc{name: name, fn: fn}
}

// Name returns the phase name.
func (p *PhaseFunc) Name() string {
	return p.name
}

// Validate calls the wrapped function.
func (p *PhaseFunc) Validate(ctx context.Context, pctx *Context) []kv.Issue {
	return p.fn(ctx, pctx)
}

// PhaseID uniquely identifies a validation phase.
type PhaseID string

// Standard phase identifiers.
const (
	PhaseIDRoot          PhaseID = "root"
	PhaseIDMembers       PhaseID = "members"
	PhaseIDRelationships PhaseID = "relationships"
)

// PhasePriority defines the order in which phases run.
// Lower values run first.
type PhasePriority int

const (
	// PriorityFirst for the root phase: field checks that gate whether
	// per-element validation is safe at all
	PriorityFirst PhasePriority = 100

	// PriorityEarly for phases that must run before referential checks
	// (member validation builds the id index)
	PriorityEarly PhasePriority = 200

	// PriorityNormal for standard phases
	PriorityNormal PhasePriority = 500

	// PriorityLate for phases that depend on earlier phases
	// (relationship validation resolves against the member index)
	PriorityLate PhasePriority = 800
)

// PhaseConfig holds configuration for a phase in the pipeline.
type PhaseConfig struct {
	// Phase is the phase implementation
	Phase Phase

	// Priority determines execution order (lower runs first)
	Priority PhasePriority

	// Required indicates if this phase must run (cannot be disabled)
	Required bool

	// SkipWhenHalted skips this phase when a structural gate has halted
	// per-element validation
	SkipWhenHalted bool

	// Enabled indicates if this phase is currently enabled
	Enabled bool
}

// PhaseRegistry manages available validation phases.
type PhaseRegistry struct {
	phases map[PhaseID]*PhaseConfig
}

// NewPhaseRegistry creates a new empty registry.
func NewPhaseRegistry() *PhaseRegistry {
	return &PhaseRegistry{
		phases: make(map[PhaseID]*PhaseConfig),
	}
}

// Register adds a phase to the registry.
func (r *PhaseRegistry) Register(id PhaseID, config *PhaseConfig) {
	r.phases[id] = config
}

// Get returns a phase configuration by ID.
func (r *PhaseRegistry) Get(id PhaseID) (*PhaseConfig, bool) {
	cfg, ok := r.phases[id]
	return cfg, ok
}

// GetEnabled returns all enabled phases.
func (r *PhaseRegistry) GetEnabled() []*PhaseConfig {
	var enabled []*PhaseConfig
	for _, cfg := range r.phases {
		if cfg.Enabled {
			enabled = append(enabled, cfg)
		}
	}
	return enabled
}

// Enable enables a phase by ID.
func (r *PhaseRegistry) Enable(id PhaseID) {
	if cfg, ok := r.phases[id]; ok {
		cfg.Enabled = true
	}
}

// Disable disables a phase by ID (unless required).
func (r *PhaseRegistry) Disable(id PhaseID) {
	if cfg, ok := r.phases[id]; ok && !cfg.Required {
		cfg.Enabled = false
	}
}

// All returns all registered phases.
func (r *PhaseRegistry) All() map[PhaseID]*PhaseConfig {
	return r.phases
}
