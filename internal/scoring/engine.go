// Package scoring computes weighted multi-factor match scores and produces a
// deterministic ranking.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

// ScoredCandidate wraps a profile with its score breakdown. It is created by
// the engine and read-only afterwards.
type ScoredCandidate struct {
	Profile   *linkedin.Profile  `json:"profile"`
	Breakdown map[string]float64 `json:"breakdown"`
	Total     float64            `json:"total"`
}

// Engine scores candidates against one job. Construction fails on invalid
// weights, before any candidate is touched.
type Engine struct {
	weights Weights
	req     *jobdesc.Requirements
}

func NewEngine(req *jobdesc.Requirements, weights Weights) (*Engine, error) {
	if req == nil {
		return nil, fmt.Errorf("job requirements are required")
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}
	return &Engine{weights: weights, req: req}, nil
}

// Rank scores every candidate and returns them ordered by total score
// descending. Ties break on the higher skills sub-score, then on input order
// (the sort is stable), so identical inputs always yield identical output.
func (e *Engine) Rank(c *linkedin.Candidates) []*ScoredCandidate {
	scored := make([]*ScoredCandidate, 0, c.Len())
	for _, p := range c.Items {
		scored = append(scored, e.score(p))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Total != scored[j].Total {
			return scored[i].Total > scored[j].Total
		}
		return scored[i].Breakdown[FactorSkills] > scored[j].Breakdown[FactorSkills]
	})

	return scored
}

func (e *Engine) score(p *linkedin.Profile) *ScoredCandidate {
	breakdown := map[string]float64{
		FactorSkills:     e.skillsScore(p),
		FactorExperience: e.experienceScore(p),
		FactorEducation:  e.educationScore(p),
		FactorLocation:   e.locationScore(p),
	}

	total := e.weights.Skills*breakdown[FactorSkills] +
		e.weights.Experience*breakdown[FactorExperience] +
		e.weights.Education*breakdown[FactorEducation] +
		e.weights.Location*breakdown[FactorLocation]

	return &ScoredCandidate{Profile: p, Breakdown: breakdown, Total: total}
}

// skillsScore weighs required-skill matches double against preferred ones:
// (2*required_matches + preferred_matches) / (2*|required| + |preferred|),
// clamped to 1. An unconstrained job scores 1.0 for everyone.
func (e *Engine) skillsScore(p *linkedin.Profile) float64 {
	required := e.req.RequiredSkills
	preferred := e.req.PreferredSkills
	if len(required) == 0 && len(preferred) == 0 {
		return 1.0
	}

	score := float64(2*countMatches(p.Skills, required)+countMatches(p.Skills, preferred)) /
		float64(2*len(required)+len(preferred))
	return clamp01(score)
}

func (e *Engine) experienceScore(p *linkedin.Profile) float64 {
	if e.req.MinExperienceYears == 0 {
		return 1.0
	}
	needed := e.req.MinExperienceYears
	if needed < 1 {
		needed = 1
	}
	return clamp01(p.TotalExperienceYears / float64(needed))
}

// educationScore gives full credit for meeting the required level, half
// credit for one level below, nothing otherwise. Candidates without education
// entries count as level none.
func (e *Engine) educationScore(p *linkedin.Profile) float64 {
	highest := jobdesc.EducationNone
	for _, edu := range p.Education {
		if level := jobdesc.ParseEducationLevel(edu.Degree); level > highest {
			highest = level
		}
	}

	switch {
	case highest >= e.req.Education:
		return 1.0
	case highest == e.req.Education-1:
		return 0.5
	default:
		return 0.0
	}
}

// locationScore gives the neutral 0.5 to candidates with an unknown location
// even when the job itself has none, so located candidates always outrank
// location-less ones on this factor.
func (e *Engine) locationScore(p *linkedin.Profile) float64 {
	if strings.TrimSpace(p.Location) == "" {
		return 0.5
	}
	if e.req.Location == "" {
		return 1.0
	}
	if e.req.MatchesLocation(p.Location) {
		return 1.0
	}
	return 0.0
}

// countMatches counts job skills covered by the candidate, not the other way
// around, so a candidate listing many variants of one skill is not rewarded
// twice.
func countMatches(candidateSkills, jobSkills []string) int {
	matches := 0
	for _, job := range jobSkills {
		for _, skill := range candidateSkills {
			if skillMatch(skill, job) {
				matches++
				break
			}
		}
	}
	return matches
}

func skillMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MatchedSkill returns the best common skill between the candidate and the
// job for outreach personalization: required skills before preferred ones, in
// job order.
func MatchedSkill(p *linkedin.Profile, req *jobdesc.Requirements) string {
	for _, group := range [][]string{req.RequiredSkills, req.PreferredSkills} {
		for _, job := range group {
			for _, skill := range p.Skills {
				if skillMatch(skill, job) {
					return job
				}
			}
		}
	}
	return ""
}
