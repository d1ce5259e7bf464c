package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SlugSource is the last-resort profile source: it derives a minimal record
// from the URL slug itself, so a discovered candidate is never lost just
// because every data provider failed.
type SlugSource struct{}

func NewSlugSource() *SlugSource { return &SlugSource{} }

func (s *SlugSource) Name() string { return "slug" }

func (s *SlugSource) Fetch(_ context.Context, url string) (*RawRecord, error) {
	slug := ProfileSlug(url)
	if slug == "" {
		return nil, fmt.Errorf("no profile slug in %s", url)
	}

	// Strip a trailing numeric disambiguator like "jane-doe-3317233a".
	words := strings.Split(slug, "-")
	if len(words) > 1 && isSlugSuffix(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	body, err := json.Marshal(map[string]string{
		"name":     strings.TrimSpace(strings.Join(words, " ")),
		"headline": "Professional",
	})
	if err != nil {
		return nil, err
	}

	return &RawRecord{URL: url, Body: body}, nil
}

func isSlugSuffix(s string) bool {
	if len(s) < 4 {
		return false
	}
	var digits int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits*2 >= len(s)
}
