package jobdesc

import (
	"sort"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var vocabularyYAML []byte

// vocabulary holds the flattened skill terms, longest first so that
// multi-word terms like "machine learning" win over single tokens.
var vocabulary = loadVocabulary()

func loadVocabulary() []string {
	var grouped map[string][]string
	if err := yaml.Unmarshal(vocabularyYAML, &grouped); err != nil {
		// The vocabulary is embedded at build time; a parse failure
		// here is a programmer error.
		panic("jobdesc: invalid embedded skills vocabulary: " + err.Error())
	}

	seen := make(map[string]struct{})
	terms := make([]string, 0, 64)
	for _, group := range grouped {
		for _, term := range group {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}

	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	return terms
}

// Vocabulary returns the embedded skill terms, longest first.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// MatchVocabulary returns the vocabulary terms present in the text,
// longest-first, deduplicated.
func MatchVocabulary(text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, term := range vocabulary {
		if containsTerm(lower, term) {
			hits = append(hits, term)
		}
	}
	return hits
}

// containsTerm requires non-letter boundaries so "go" does not match "google"
// and "r" style false positives stay out.
func containsTerm(text, term string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], term)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(term)
		if boundary(text, start-1) && boundary(text, end) {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func boundary(text string, pos int) bool {
	if pos < 0 || pos >= len(text) {
		return true
	}
	c := text[pos]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}
