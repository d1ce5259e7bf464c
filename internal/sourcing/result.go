package sourcing

import (
	"time"

	"github.com/avoronov/talentscout/internal/outreach"
	"github.com/avoronov/talentscout/internal/scoring"
)

// Zero-candidate outcome codes carried in Result.Reasons.
const (
	ReasonNoSearchResults  = "no search results"
	ReasonNoProfilesLoaded = "no profiles could be fetched"
)

// Stats summarizes a finished run.
type Stats struct {
	ProfilesFound    int           `json:"profiles_found"`
	ProfilesScored   int           `json:"profiles_scored"`
	MessagesComposed int           `json:"messages_composed"`
	Duration         time.Duration `json:"duration"`
}

// Result is the full outcome of one sourcing run. A run with zero candidates
// is still a valid Result; Reasons explains where the funnel emptied.
type Result struct {
	RunID      string                     `json:"run_id"`
	JobTitle   string                     `json:"job_title"`
	Candidates []*scoring.ScoredCandidate `json:"candidates"`
	Messages   []*outreach.Message        `json:"messages"`
	Stats      Stats                      `json:"stats"`
	Reasons    []string                   `json:"reasons,omitempty"`
	StartedAt  time.Time                  `json:"started_at"`
}
