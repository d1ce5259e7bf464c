package filtering

import (
	"context"
	"fmt"

	"github.com/avoronov/talentscout/internal/linkedin"
)

type minExperienceFilter struct {
	minYears int
}

// NewMinExperience creates a filter that drops candidates below the job's
// minimum experience. Unset minimum disables the gate.
func NewMinExperience() Filter {
	return &minExperienceFilter{}
}

func (f *minExperienceFilter) Name() string { return "min_experience" }

func (f *minExperienceFilter) Disable(string) {}

func (f *minExperienceFilter) IsEnabled() bool { return true }

func (f *minExperienceFilter) Validate(cfg *Config) error {
	f.minYears = 0
	if cfg != nil && cfg.Requirements != nil {
		f.minYears = cfg.Requirements.MinExperienceYears
	}
	if f.minYears < 0 {
		return fmt.Errorf("minimum experience years must not be negative: %d", f.minYears)
	}
	return nil
}

func (f *minExperienceFilter) Apply(_ context.Context, deps Deps, c *linkedin.Candidates) (*linkedin.Candidates, Step, error) {
	initial := c.Len()
	if f.minYears == 0 {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	kept, dropped := c.Keep(func(p *linkedin.Profile) bool {
		return p.TotalExperienceYears >= float64(f.minYears)
	})

	for _, url := range dropped {
		deps.Report.Add(url, fmt.Sprintf("below minimum experience of %d years", f.minYears))
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: kept.Len()}, nil
}
