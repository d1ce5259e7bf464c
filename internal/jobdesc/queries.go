package jobdesc

import "strings"

const defaultTopSkills = 5

// QueryConfig controls how many skill-based query variations are produced.
type QueryConfig struct {
	// TopSkills is the number of leading required skills turned into
	// "title skill" queries. Defaults to 5.
	TopSkills int
}

// BuildQueries composes search queries from parsed requirements. The result
// is deduplicated case-insensitively, preserves composition order and always
// contains at least one non-empty query: when nothing else is extractable the
// bare title (or "professional") is used. Site restriction syntax is applied
// by the search provider, not here.
func BuildQueries(req *Requirements, cfg QueryConfig) []string {
	topSkills := cfg.TopSkills
	if topSkills <= 0 {
		topSkills = defaultTopSkills
	}

	base := strings.TrimSpace(req.Title)
	if base == "" {
		base = "professional"
	}

	var queries []string
	if req.Location != "" {
		queries = append(queries, base+" "+req.Location)
	} else {
		queries = append(queries, base)
	}

	skills := req.RequiredSkills
	if len(skills) > topSkills {
		skills = skills[:topSkills]
	}
	for _, skill := range skills {
		queries = append(queries, base+" "+skill)
	}

	keywords := Keywords(req.RawText)
	if len(keywords) > topSkills {
		keywords = keywords[:topSkills]
	}
	for _, keyword := range keywords {
		if !strings.EqualFold(keyword, base) {
			queries = append(queries, base+" "+keyword)
		}
	}

	queries = append(queries, domainVariations(base, req.RawText)...)

	return dedupeQueries(queries)
}

// domainVariations adds role synonyms for a few recognizable domains.
func domainVariations(base, text string) []string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "machine learning") || containsTerm(lower, "ml"):
		return []string{
			base + " machine learning",
			base + " deep learning",
			base + " artificial intelligence",
			base + " NLP",
		}
	case strings.Contains(lower, "software") || strings.Contains(lower, "developer"):
		return []string{
			base + " software engineer",
			base + " software developer",
			base + " programmer",
		}
	case strings.Contains(lower, "data") &&
		(strings.Contains(lower, "science") || strings.Contains(lower, "analyst")):
		return []string{
			base + " data scientist",
			base + " data analyst",
			base + " statistical analysis",
		}
	}
	return nil
}

func dedupeQueries(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}
