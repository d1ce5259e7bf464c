package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/linkedin"
)

type contactedFilter struct {
	path string
}

// NewContacted creates a filter that removes candidates already present in
// the contacted-list file.
func NewContacted() Filter {
	return &contactedFilter{}
}

func (f *contactedFilter) Name() string { return "contacted" }

func (f *contactedFilter) Disable(string) {}

func (f *contactedFilter) IsEnabled() bool { return true }

func (f *contactedFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ContactedFile)
	}
	return nil
}

func (f *contactedFilter) Apply(_ context.Context, deps Deps, c *linkedin.Candidates) (*linkedin.Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	contacted, err := linkedin.ContactedFromFile(f.path)
	if err != nil {
		return nil, Step{}, fmt.Errorf("loading contacted list: %w", err)
	}

	kept, removed := c.Exclude(contacted.URLs())
	for _, url := range removed {
		deps.Report.Add(url, "already contacted")
	}

	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding already contacted candidates",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", kept.Len()),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: kept.Len()}, nil
}
