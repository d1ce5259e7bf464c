package filtering

import (
	"context"
	"strings"

	"github.com/avoronov/talentscout/internal/linkedin"
)

type requiredSkillsFilter struct {
	required []string
}

// NewRequiredSkills creates a filter that drops candidates whose skill set
// does not intersect the job's required skills. A job without required skills
// disables the gate.
func NewRequiredSkills() Filter {
	return &requiredSkillsFilter{}
}

func (f *requiredSkillsFilter) Name() string { return "required_skills" }

func (f *requiredSkillsFilter) Disable(string) {}

func (f *requiredSkillsFilter) IsEnabled() bool { return true }

func (f *requiredSkillsFilter) Validate(cfg *Config) error {
	f.required = nil
	if cfg != nil && cfg.Requirements != nil {
		f.required = cfg.Requirements.RequiredSkills
	}
	return nil
}

func (f *requiredSkillsFilter) Apply(_ context.Context, deps Deps, c *linkedin.Candidates) (*linkedin.Candidates, Step, error) {
	initial := c.Len()
	if len(f.required) == 0 {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	kept, dropped := c.Keep(func(p *linkedin.Profile) bool {
		return hasAnySkill(p.Skills, f.required)
	})

	for _, url := range dropped {
		deps.Report.Add(url, "no required skill matched")
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: kept.Len()}, nil
}

// hasAnySkill matches loosely in both directions, so "machine learning"
// satisfies a candidate listing "machine learning engineer" and vice versa.
func hasAnySkill(skills, required []string) bool {
	for _, req := range required {
		for _, skill := range skills {
			if skillsOverlap(skill, req) {
				return true
			}
		}
	}
	return false
}

func skillsOverlap(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
