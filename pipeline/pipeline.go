package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	kv "github.com/gokin/validator"
)

// Pipeline orchestrates the execution of validation phases.
//
// Phases run strictly sequentially in priority order: issue ordering
// must be deterministic and reproducible across runs, and the
// relationship phase depends on the member-id index built by the member
// phase. Between phases the pipeline honors cancellation, the max-error
// budget and the structural halt flag.
type Pipeline struct {
	// registry holds all registered phases
	registry *PhaseRegistry

	// ordered holds enabled phases sorted by priority
	ordered []*PhaseConfig

	// metrics tracks execution metrics
	metrics *kv.Metrics

	// options holds pipeline configuration
	options *Options

	// mu protects concurrent access
	mu sync.RWMutex
}

// Options configures pipeline behavior.
type Options struct {
	// MaxErrors stops validation after this many errors (0 = unlimited)
	MaxErrors int

	// CollectMetrics enables performance metric collection
	CollectMetrics bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		MaxErrors:      0, // unlimited
		CollectMetrics: true,
	}
}

// NewPipeline creates a new validation pipeline.
func NewPipeline(opts *Options) *Pipeline {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &Pipeline{
		registry: NewPhaseRegistry(),
		metrics:  kv.NewMetrics(),
		options:  opts,
	}
}

// Register adds a phase to the pipeline.
func (p *Pipeline) Register(id PhaseID, phase Phase, opts ...PhaseOption) {
	config := &PhaseConfig{
		Phase:    phase,
		Priority: PriorityNormal,
		Required: false,
		Enabled:  true,
	}

	for _, opt := range opts {
		opt(config)
	}

	p.mu.Lock()
	p.registry.Register(id, config)
	p.mu.Unlock()

	p.rebuildOrder()
}

// RegisterConfig adds a pre-configured phase to the pipeline.
func (p *Pipeline) RegisterConfig(id PhaseID, config *PhaseConfig) {
	if config == nil {
		return
	}

	p.mu.Lock()
	p.registry.Register(id, config)
	p.mu.Unlock()

	p.rebuildOrder()
}

// PhaseOption configures a phase registration.
type PhaseOption func(*PhaseConfig)

// WithPriority sets the phase priority.
func WithPriority(priority PhasePriority) PhaseOption {
	return func(c *PhaseConfig) {
		c.Priority = priority
	}
}

// WithRequired marks the phase as required.
func WithRequired(required bool) PhaseOption {
	return func(c *PhaseConfig) {
		c.Required = required
	}
}

// WithSkipWhenHalted marks the phase as skippable when a structural
// gate has halted per-element validation.
func WithSkipWhenHalted(skip bool) PhaseOption {
	return func(c *PhaseConfig) {
		c.SkipWhenHalted = skip
	}
}

// Enable enables a phase by ID.
func (p *Pipeline) Enable(id PhaseID) {
	p.mu.Lock()
	p.registry.Enable(id)
	p.mu.Unlock()
	p.rebuildOrder()
}

// Disable disables a phase by ID.
func (p *Pipeline) Disable(id PhaseID) {
	p.mu.Lock()
	p.registry.Disable(id)
	p.mu.Unlock()
	p.rebuildOrder()
}

// rebuildOrder sorts enabled phases into execution order.
func (p *Pipeline) rebuildOrder() {
	p.mu.Lock()
	defer p.mu.Unlock()

	enabled := p.registry.GetEnabled()
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})
	p.ordered = enabled
}

// Execute runs the validation pipeline.
func (p *Pipeline) Execute(ctx context.Context, pctx *Context) *kv.Result {
	start := time.Now()

	// Initialize result if not set
	if pctx.Result == nil {
		pctx.Result = kv.AcquireResult()
	}

	p.mu.RLock()
	ordered := p.ordered
	p.mu.RUnlock()

	for _, cfg := range ordered {
		// Check for cancellation. An interrupted validation must never
		// read as valid: the remaining phases did not run.
		select {
		case <-ctx.Done():
			pctx.Result.AddIssue(kv.Error(kv.IssueTypeTimeout).
				Diagnostics("Validation cancelled: " + ctx.Err().Error()).
				Build())
			return pctx.Result
		default:
		}

		// Check max errors
		if p.options.MaxErrors > 0 && pctx.Result.ErrorCount() >= p.options.MaxErrors {
			break
		}

		// A structural gate means there is nothing safe to iterate
		if cfg.SkipWhenHalted && pctx.Halted() {
			continue
		}

		p.executePhase(ctx, pctx, cfg)
	}

	// Record metrics
	if p.options.CollectMetrics && p.metrics != nil {
		p.metrics.RecordValidation(time.Since(start), pctx.Result.Valid)
	}

	return pctx.Result
}

// executePhase runs a single phase with timing.
func (p *Pipeline) executePhase(ctx context.Context, pctx *Context, cfg *PhaseConfig) {
	start := time.Now()
	issues := cfg.Phase.Validate(ctx, pctx)
	duration := time.Since(start)

	// Record metrics
	if p.options.CollectMetrics && p.metrics != nil {
		p.metrics.RecordPhase(cfg.Phase.Name(), duration, len(issues))
	}

	// Add issues to result
	pctx.Result.AddIssues(issues)
}

// Metrics returns the pipeline metrics.
func (p *Pipeline) Metrics() *kv.Metrics {
	return p.metrics
}

// SetMetrics sets the metrics collector.
func (p *Pipeline) SetMetrics(m *kv.Metrics) {
	p.metrics = m
}

// Registry returns the phase registry.
func (p *Pipeline) Registry() *PhaseRegistry {
	return p.registry
}

// PhaseCount returns the number of enabled phases.
func (p *Pipeline) PhaseCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.ordered)
}
