package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	bv "github.com/ga4gh-metadata/validator"
)

// Pipeline orchestrates the execution of validation checks over one record.
// Checks of the same priority may run in parallel; priority groups run in
// order.
type Pipeline struct {
	// registry holds all registered checks
	registry *Registry

	// groups holds checks organized by execution group
	groups []*Group

	// metrics tracks execution metrics
	metrics *bv.Metrics

	// options holds pipeline configuration
	options *Options

	// mu protects concurrent access
	mu sync.RWMutex
}

// Group is a set of checks sharing one priority.
type Group struct {
	Priority Priority
	Checks   []*Config
	Parallel bool
}

// Options configures pipeline behavior.
type Options struct {
	// ParallelExecution enables running same-priority checks in parallel
	ParallelExecution bool

	// MaxErrors stops validation after this many errors (0 = unlimited)
	MaxErrors int

	// CollectMetrics enables performance metric collection
	CollectMetrics bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		ParallelExecution: true,
		MaxErrors:         0,
		CollectMetrics:    true,
	}
}

// New creates a new validation pipeline.
func New(opts *Options) *Pipeline {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &Pipeline{
		registry: NewRegistry(),
		groups:   make([]*Group, 0, 4),
		metrics:  bv.NewMetrics(),
		options:  opts,
	}
}

// Register adds a pre-configured check to the pipeline.
func (p *Pipeline) Register(id CheckID, config *Config) {
	if config == nil {
		return
	}

	p.mu.Lock()
	p.registry.Register(id, config)
	p.mu.Unlock()

	p.rebuildGroups()
}

// Enable enables a check by ID.
func (p *Pipeline) Enable(id CheckID) {
	p.mu.Lock()
	p.registry.Enable(id)
	p.mu.Unlock()
	p.rebuildGroups()
}

// Disable disables a check by ID.
func (p *Pipeline) Disable(id CheckID) {
	p.mu.Lock()
	p.registry.Disable(id)
	p.mu.Unlock()
	p.rebuildGroups()
}

// rebuildGroups organizes checks into execution groups by priority.
func (p *Pipeline) rebuildGroups() {
	p.mu.Lock()
	defer p.mu.Unlock()

	enabled := p.registry.Enabled()
	if len(enabled) == 0 {
		p.groups = nil
		return
	}

	byPriority := make(map[Priority][]*Config)
	for _, cfg := range enabled {
		byPriority[cfg.Priority] = append(byPriority[cfg.Priority], cfg)
	}

	priorities := make([]Priority, 0, len(byPriority))
	for priority := range byPriority {
		priorities = append(priorities, priority)
	}
	sort.Slice(priorities, func(i, j int) bool {
		return priorities[i] < priorities[j]
	})

	p.groups = make([]*Group, 0, len(priorities))
	for _, priority := range priorities {
		checks := byPriority[priority]
		sort.Slice(checks, func(i, j int) bool {
			return checks[i].Check.Name() < checks[j].Check.Name()
		})

		canParallel := true
		for _, cfg := range checks {
			if !cfg.Parallel {
				canParallel = false
				break
			}
		}

		p.groups = append(p.groups, &Group{
			Priority: priority,
			Checks:   checks,
			Parallel: canParallel && p.options.ParallelExecution,
		})
	}
}

// Execute runs the validation pipeline over one record context.
func (p *Pipeline) Execute(ctx context.Context, rctx *Context) *bv.Result {
	start := time.Now()

	if rctx.Result == nil {
		rctx.Result = bv.AcquireResult()
	}

	p.mu.RLock()
	groups := p.groups
	p.mu.RUnlock()

	for _, group := range groups {
		select {
		case <-ctx.Done():
			rctx.Result.AddIssue(bv.Warning(bv.KindCancelled).
				Record(rctx.RecordID).
				Diagnostics("validation cancelled: " + ctx.Err().Error()).
				Build())
			return rctx.Result
		default:
		}

		if p.options.MaxErrors > 0 && rctx.Result.ErrorCount() >= p.options.MaxErrors {
			break
		}

		p.executeGroup(ctx, rctx, group)
	}

	if p.options.CollectMetrics && p.metrics != nil {
		p.metrics.RecordValidation(time.Since(start), rctx.Result.Valid)
	}

	return rctx.Result
}

// executeGroup executes a single check group.
func (p *Pipeline) executeGroup(ctx context.Context, rctx *Context, group *Group) {
	if group.Parallel && len(group.Checks) > 1 {
		p.executeParallel(ctx, rctx, group)
	} else {
		p.executeSequential(ctx, rctx, group)
	}
}

// executeSequential runs checks one at a time.
func (p *Pipeline) executeSequential(ctx context.Context, rctx *Context, group *Group) {
	for _, cfg := range group.Checks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if rctx.ShouldStop() {
			return
		}

		p.executeCheck(ctx, rctx, cfg)
	}
}

// executeParallel runs checks concurrently.
func (p *Pipeline) executeParallel(ctx context.Context, rctx *Context, group *Group) {
	var wg sync.WaitGroup
	resultsChan := make(chan []bv.Issue, len(group.Checks))

	for _, cfg := range group.Checks {
		wg.Add(1)
		go func(cfg *Config) {
			defer wg.Done()

			start := time.Now()
			issues := cfg.Check.Check(ctx, rctx)
			duration := time.Since(start)

			if p.options.CollectMetrics && p.metrics != nil {
				p.metrics.RecordCheck(cfg.Check.Name(), duration, len(issues))
			}

			resultsChan <- issues
		}(cfg)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for issues := range resultsChan {
		rctx.Result.AddIssues(issues)
	}
}

// executeCheck runs a single check with timing.
func (p *Pipeline) executeCheck(ctx context.Context, rctx *Context, cfg *Config) {
	start := time.Now()
	issues := cfg.Check.Check(ctx, rctx)
	duration := time.Since(start)

	if p.options.CollectMetrics && p.metrics != nil {
		p.metrics.RecordCheck(cfg.Check.Name(), duration, len(issues))
	}

	rctx.Result.AddIssues(issues)
}

// Metrics returns the pipeline metrics.
func (p *Pipeline) Metrics() *bv.Metrics {
	return p.metrics
}

// SetMetrics sets the metrics collector.
func (p *Pipeline) SetMetrics(m *bv.Metrics) {
	p.metrics = m
}

// CheckCount returns the number of enabled checks.
func (p *Pipeline) CheckCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.registry.Enabled())
}

// GroupCount returns the number of priority groups.
func (p *Pipeline) GroupCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.groups)
}
