package filtering

import (
	"context"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

type locationFilter struct {
	req *jobdesc.Requirements
}

// NewLocation creates a filter that drops candidates whose known location
// explicitly mismatches the job location. Candidates with no location data
// pass: absence is not rejection.
func NewLocation() Filter {
	return &locationFilter{}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Disable(string) {}

func (f *locationFilter) IsEnabled() bool { return true }

func (f *locationFilter) Validate(cfg *Config) error {
	f.req = nil
	if cfg != nil {
		f.req = cfg.Requirements
	}
	return nil
}

func (f *locationFilter) Apply(_ context.Context, deps Deps, c *linkedin.Candidates) (*linkedin.Candidates, Step, error) {
	initial := c.Len()
	if f.req == nil || f.req.Location == "" {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	kept, dropped := c.Keep(func(p *linkedin.Profile) bool {
		if p.Location == "" {
			return true
		}
		return f.req.MatchesLocation(p.Location)
	})

	for _, url := range dropped {
		deps.Report.Add(url, "location mismatch with "+f.req.Location)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: kept.Len()}, nil
}
