package jobdesc

import (
	"regexp"
	"sort"
	"strings"
)

const maxKeywords = 15

var nonWordExpr = regexp.MustCompile(`[^\w\s]`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "to", "of", "a", "in", "for", "with", "on", "at", "from",
		"by", "about", "as", "into", "like", "through", "after", "over", "between",
		"out", "is", "am", "are", "was", "were", "be", "been", "being", "have", "has",
		"had", "do", "does", "did", "but", "if", "or", "because", "until", "while",
		"that", "this", "these", "those", "then", "than", "when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
		"no", "nor", "not", "only", "own", "same", "so", "too", "very", "can", "will",
		"just", "should", "now", "role", "we", "our", "you", "your", "team", "work",
	} {
		stopwords[w] = struct{}{}
	}
}

// Keywords extracts up to 15 characteristic terms from a job description:
// vocabulary hits first, then the most frequent non-stopword tokens.
func Keywords(text string) []string {
	lower := strings.ToLower(text)

	keywords := MatchVocabulary(lower)
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		seen[k] = struct{}{}
	}

	cleaned := nonWordExpr.ReplaceAllString(lower, " ")
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	// Frequency desc, first occurrence as the tie-break so output is stable.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	for _, word := range order {
		if len(keywords) >= maxKeywords {
			break
		}
		if counts[word] < 2 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	return keywords
}
