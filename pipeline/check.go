package pipeline

import (
	"context"

	bv "github.com/ga4gh-metadata/validator"
)

// Check represents a single validation check in the pipeline.
// Each check is responsible for one aspect of record validation.
//
// Checks should be:
//   - Stateless: all per-record state lives in the Context
//   - Thread-safe: multiple goroutines may call Check concurrently
//   - Fast-failing: return early if ctx is cancelled or max errors reached
//
// A check may normalize the working copy in rctx.Record, but only the
// fields it owns; the input record is never touched.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Check performs the validation and returns any issues found.
	Check(ctx context.Context, rctx *Context) []bv.Issue
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc struct {
	name string
	fn   func(ctx context.Context, rctx *Context) []bv.Issue
}

// NewCheckFunc creates a Check from a function.
func NewCheckFunc(name string, fn func(ctx context.Context, rctx *Context) []bv.Issue) Check {
	return &CheckFunc{name: name, fn: fn}
}

// Name returns the check name.
func (c *CheckFunc) Name() string {
	return c.name
}

// Check calls the wrapped function.
func (c *CheckFunc) Check(ctx context.Context, rctx *Context) []bv.Issue {
	return c.fn(ctx, rctx)
}

// CheckID uniquely identifies a validation check.
type CheckID string

// Standard check identifiers.
const (
	CheckIDReferences      CheckID = "references"
	CheckIDOntology        CheckID = "ontology"
	CheckIDCharacteristics CheckID = "characteristics"
	CheckIDAge             CheckID = "age"
	CheckIDTimestamps      CheckID = "timestamps"
	CheckIDAttributes      CheckID = "attributes"
	CheckIDExternalIDs     CheckID = "external-ids"
)

// Priority defines the order in which checks run. Lower values run first.
type Priority int

const (
	// PriorityFirst for checks that must run first (identifier and
	// reference integrity)
	PriorityFirst Priority = 100

	// PriorityNormal for standard checks
	PriorityNormal Priority = 500

	// PriorityLast for checks that must observe normalization done by
	// earlier checks
	PriorityLast Priority = 900
)

// Config holds configuration for a check in the pipeline.
type Config struct {
	// Check is the check implementation
	Check Check

	// Priority determines execution order (lower runs first)
	Priority Priority

	// Parallel indicates if this check can run in parallel with others
	// of the same priority
	Parallel bool

	// Required indicates if this check must run (cannot be disabled)
	Required bool

	// Enabled indicates if this check is currently enabled
	Enabled bool
}

// Registry manages the available validation checks.
type Registry struct {
	checks map[CheckID]*Config
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checks: make(map[CheckID]*Config),
	}
}

// Register adds a check to the registry.
func (r *Registry) Register(id CheckID, config *Config) {
	r.checks[id] = config
}

// Get returns a check configuration by ID.
func (r *Registry) Get(id CheckID) (*Config, bool) {
	cfg, ok := r.checks[id]
	return cfg, ok
}

// Enabled returns all enabled checks.
func (r *Registry) Enabled() []*Config {
	var enabled []*Config
	for _, cfg := range r.checks {
		if cfg.Enabled {
			enabled = append(enabled, cfg)
		}
	}
	return enabled
}

// Enable enables a check by ID.
func (r *Registry) Enable(id CheckID) {
	if cfg, ok := r.checks[id]; ok {
		cfg.Enabled = true
	}
}

// Disable disables a check by ID (unless required).
func (r *Registry) Disable(id CheckID) {
	if cfg, ok := r.checks[id]; ok && !cfg.Required {
		cfg.Enabled = false
	}
}
