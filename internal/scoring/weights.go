package scoring

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-9

// Factor names used as score-breakdown keys.
const (
	FactorSkills     = "skills"
	FactorExperience = "experience"
	FactorEducation  = "education"
	FactorLocation   = "location"
)

// Weights distributes the total score across the four factors. Weights must
// be non-negative and sum to 1.0; anything else silently corrupts ranking
// semantics, so validation happens before any candidate is processed.
type Weights struct {
	Skills     float64 `json:"skills" mapstructure:"skills"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	Education  float64 `json:"education" mapstructure:"education"`
	Location   float64 `json:"location" mapstructure:"location"`
}

// DefaultWeights returns the documented defaults.
func DefaultWeights() Weights {
	return Weights{
		Skills:     0.4,
		Experience: 0.3,
		Education:  0.2,
		Location:   0.1,
	}
}

func (w Weights) Validate() error {
	for name, value := range map[string]float64{
		FactorSkills:     w.Skills,
		FactorExperience: w.Experience,
		FactorEducation:  w.Education,
		FactorLocation:   w.Location,
	} {
		if value < 0 {
			return fmt.Errorf("weight %q must not be negative: %v", name, value)
		}
	}

	sum := w.Skills + w.Experience + w.Education + w.Location
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}
