package scoring

// ReportEntry is a human-readable summary row for one ranked candidate.
type ReportEntry struct {
	Rank      int                `json:"rank"`
	Name      string             `json:"name"`
	URL       string             `json:"url"`
	Headline  string             `json:"headline,omitempty"`
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Report renders a ranked candidate list into summary rows.
func Report(scored []*ScoredCandidate) []ReportEntry {
	entries := make([]ReportEntry, 0, len(scored))
	for i, sc := range scored {
		entries = append(entries, ReportEntry{
			Rank:      i + 1,
			Name:      sc.Profile.FullName,
			URL:       sc.Profile.LinkedInURL,
			Headline:  sc.Profile.Headline,
			Total:     sc.Total,
			Breakdown: sc.Breakdown,
		})
	}
	return entries
}
