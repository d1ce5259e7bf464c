package linkedin

import (
	"encoding/json"
	"os"
)

// Experience is one position held by a candidate.
type Experience struct {
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	DurationMonths int    `json:"duration_months,omitempty"`
	Current        bool   `json:"current,omitempty"`
}

// Education is one degree entry on a profile.
type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
}

// Profile is the canonical candidate record. The canonical URL is the unique
// identity across the whole pipeline. Profiles are never mutated after
// normalization.
type Profile struct {
	LinkedInURL          string       `json:"linkedin_url"`
	FullName             string       `json:"full_name,omitempty"`
	Headline             string       `json:"headline,omitempty"`
	CurrentTitle         string       `json:"current_title,omitempty"`
	CurrentCompany       string       `json:"current_company,omitempty"`
	Location             string       `json:"location,omitempty"`
	Summary              string       `json:"summary,omitempty"`
	Skills               []string     `json:"skills,omitempty"`
	Experience           []Experience `json:"experience,omitempty"`
	Education            []Education  `json:"education,omitempty"`
	TotalExperienceYears float64      `json:"total_experience_years"`
}

// Candidates is an ordered profile collection. Order is first-seen search
// order and every operation preserves it, so downstream ranking stays
// deterministic.
type Candidates struct {
	Items []*Profile
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Candidates) URLs() []string {
	urls := make([]string, 0, c.Len())
	for _, p := range c.Items {
		urls = append(urls, p.LinkedInURL)
	}
	return urls
}

func (c *Candidates) FindByURL(url string) *Profile {
	for _, p := range c.Items {
		if p.LinkedInURL == url {
			return p
		}
	}
	return nil
}

// Keep returns a new collection with the profiles the predicate accepts,
// preserving order, plus the URLs of the dropped ones.
func (c *Candidates) Keep(pred func(*Profile) bool) (*Candidates, []string) {
	kept := &Candidates{Items: make([]*Profile, 0, c.Len())}
	var dropped []string
	for _, p := range c.Items {
		if pred(p) {
			kept.Items = append(kept.Items, p)
			continue
		}
		dropped = append(dropped, p.LinkedInURL)
	}
	return kept, dropped
}

// Exclude returns a new collection without the profiles whose canonical URL
// is in targets, preserving order, plus the URLs actually removed.
func (c *Candidates) Exclude(targets []string) (*Candidates, []string) {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}
	return c.Keep(func(p *Profile) bool {
		_, found := set[p.LinkedInURL]
		return !found
	})
}

// DumpToTmpFile writes the collection as indented JSON to a temp file and
// returns its name.
func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}
