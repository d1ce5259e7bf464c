// Package filtering applies hard-relevance gates to candidates before
// scoring. Filters run sequentially; each one records why it dropped a
// candidate so a zero-survivor run can explain itself.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

// Filter represents a single filtering step applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, c *linkedin.Candidates) (*linkedin.Candidates, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
	Report *Report
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	Requirements  *jobdesc.Requirements
	ContactedFile string
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Report accumulates per-candidate drop reasons keyed by canonical URL.
type Report struct {
	reasons   map[string][]string
	emptiedBy string
}

func NewReport() *Report {
	return &Report{reasons: make(map[string][]string)}
}

func (r *Report) Add(url, reason string) {
	if r == nil {
		return
	}
	r.reasons[url] = append(r.reasons[url], reason)
}

// Reasons returns the drop reasons recorded for a candidate.
func (r *Report) Reasons(url string) []string {
	if r == nil {
		return nil
	}
	return r.reasons[url]
}

// EmptiedBy names the filter that dropped the last remaining candidates,
// or returns an empty string when some candidates survived.
func (r *Report) EmptiedBy() string {
	if r == nil {
		return ""
	}
	return r.emptiedBy
}

// Dropped returns the number of candidates with at least one recorded reason.
func (r *Report) Dropped() int {
	if r == nil {
		return 0
	}
	return len(r.reasons)
}

// Run executes the supplied filters sequentially and returns the surviving
// candidates in their original order. Filtering is total: a well-formed
// candidate set never produces an error from the gate predicates themselves.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, c *linkedin.Candidates) (*linkedin.Candidates, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		if info.Left == 0 && info.Initial > 0 && deps.Report != nil {
			deps.Report.emptiedBy = step.Name()
		}

		c = next
	}

	return c, nil
}
