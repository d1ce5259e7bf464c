package jobdesc

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// EducationLevel is the minimum degree a job asks for.
type EducationLevel int

const (
	EducationNone EducationLevel = iota
	EducationBachelor
	EducationMaster
	EducationPhD
)

func (l EducationLevel) String() string {
	switch l {
	case EducationBachelor:
		return "bachelor"
	case EducationMaster:
		return "master"
	case EducationPhD:
		return "phd"
	default:
		return "none"
	}
}

// ParseEducationLevel maps a free-text degree mention to a level.
// Unrecognized text maps to EducationNone.
func ParseEducationLevel(s string) EducationLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case containsAny(s, "phd", "ph.d", "doctorate", "doctoral"):
		return EducationPhD
	case s == "ms" || s == "ma" || containsAny(s, "master", "msc", "m.s", "ms/", " ms ", "ma "):
		return EducationMaster
	case s == "bs" || s == "ba" || containsAny(s, "bachelor", "bsc", "b.s", "bs/", " bs ", "ba ", "degree"):
		return EducationBachelor
	default:
		return EducationNone
	}
}

// Requirements is the structured view of a job description. It is built once
// per run by Parse and never mutated afterwards.
type Requirements struct {
	Title              string
	RequiredSkills     []string
	PreferredSkills    []string
	MinExperienceYears int
	Education          EducationLevel
	Location           string
	SalaryRange        string
	RawText            string
}

var (
	ErrEmptyJobText = errors.New("job description text is empty")

	requirementsHeader = regexp.MustCompile(`(?i)^(requirements|qualifications|skills|what you.ll need).*:`)
	preferredHeader    = regexp.MustCompile(`(?i)^(preferred|nice to have|bonus|plus).*:`)
	experienceExpr     = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)
	locationExpr       = regexp.MustCompile(`(?i)location[\s:]+([^\.\n]+)`)
	educationExpr      = regexp.MustCompile(`(?i)(?:education|degree)[\s:]+([^\.\n]+)`)
	salaryExpr         = regexp.MustCompile(`(?i)salary[\s:]+([^\n]+)`)
	remoteExpr         = regexp.MustCompile(`(?i)\b(?:fully\s+)?remote\b`)
)

// Parse extracts structured requirements from raw job-description text.
// It fails only on empty or unusable input; every individual field degrades
// to its zero value when the text does not mention it.
func Parse(text string) (*Requirements, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyJobText
	}

	req := &Requirements{
		RawText:   text,
		Education: EducationNone,
	}

	lines := strings.Split(trimmed, "\n")
	req.Title = parseTitle(lines[0])

	required, preferred := parseSkillSections(lines)

	// No explicit requirements section: fall back to vocabulary hits
	// anywhere in the text, so the builder still has skills to query with.
	if len(required) == 0 {
		required = MatchVocabulary(trimmed)
	}

	req.RequiredSkills = normalizeSkills(required)
	req.PreferredSkills = normalizeSkills(preferred)

	if m := experienceExpr.FindStringSubmatch(trimmed); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil && years > 0 && years < 50 {
			req.MinExperienceYears = years
		}
	}

	if m := locationExpr.FindStringSubmatch(trimmed); m != nil {
		req.Location = strings.TrimSpace(m[1])
	} else if remoteExpr.MatchString(trimmed) {
		req.Location = "Remote"
	}

	if m := educationExpr.FindStringSubmatch(trimmed); m != nil {
		req.Education = lowestMentionedLevel(m[1])
	} else {
		req.Education = lowestMentionedLevel(trimmed)
	}

	if m := salaryExpr.FindStringSubmatch(trimmed); m != nil {
		req.SalaryRange = strings.TrimSpace(m[1])
	}

	return req, nil
}

// parseTitle cuts the first line at the first ':' or ',' separator.
func parseTitle(firstLine string) string {
	title := strings.TrimSpace(firstLine)
	if idx := strings.Index(title, ":"); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	if idx := strings.Index(title, ","); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return title
}

// parseSkillSections walks bulleted lines under requirements-type and
// preferred-type headers and matches them against the skills vocabulary.
func parseSkillSections(lines []string) (required, preferred []string) {
	const (
		sectionNone = iota
		sectionRequired
		sectionPreferred
	)

	section := sectionNone
	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch {
		case requirementsHeader.MatchString(line):
			section = sectionRequired
			continue
		case preferredHeader.MatchString(line):
			section = sectionPreferred
			continue
		}

		// Another capitalized header ends the current section.
		if section != sectionNone && line != "" && strings.Contains(line, ":") &&
			line[0] >= 'A' && line[0] <= 'Z' && !isBullet(line) {
			section = sectionNone
		}

		if section == sectionNone || !isBullet(line) {
			continue
		}

		bullet := strings.TrimLeft(line, "-•* \t")
		hits := MatchVocabulary(bullet)
		if len(hits) == 0 && bullet != "" {
			// A short bullet with no vocabulary hit is still a skill
			// phrase worth keeping, e.g. "Kafka stream processing".
			if len(strings.Fields(bullet)) <= 4 {
				hits = []string{bullet}
			}
		}

		if section == sectionPreferred {
			preferred = append(preferred, hits...)
		} else {
			required = append(required, hits...)
		}
	}

	return required, preferred
}

func lowestMentionedLevel(text string) EducationLevel {
	text = strings.ToLower(text)
	// The lowest degree mentioned is the minimum requirement: a posting
	// that says "BS/MS/PhD" accepts bachelors.
	for _, level := range []EducationLevel{EducationBachelor, EducationMaster, EducationPhD} {
		if mentionsLevel(text, level) {
			return level
		}
	}
	return EducationNone
}

func mentionsLevel(text string, level EducationLevel) bool {
	switch level {
	case EducationBachelor:
		return containsAny(text, "bachelor", "bsc", "b.s.", "bs/", "ba/")
	case EducationMaster:
		return containsAny(text, "master", "msc", "m.s.", "ms/", "/ms")
	case EducationPhD:
		return containsAny(text, "phd", "ph.d", "doctorate")
	}
	return false
}

// MatchesLocation reports whether a candidate location satisfies the job
// location under the fuzzy rule: case-insensitive substring either way, or
// any token overlap. An unset or remote job location matches everything.
func (r *Requirements) MatchesLocation(candidate string) bool {
	job := strings.ToLower(strings.TrimSpace(r.Location))
	cand := strings.ToLower(strings.TrimSpace(candidate))
	if job == "" || job == "remote" {
		return true
	}
	if cand == "" {
		return false
	}
	if strings.Contains(cand, job) || strings.Contains(job, cand) {
		return true
	}

	jobTokens := tokenize(job)
	for token := range tokenize(cand) {
		if len(token) < 3 {
			continue
		}
		if _, ok := jobTokens[token]; ok {
			return true
		}
	}
	return false
}

func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '(' || r == ')' || r == '/'
	}) {
		tokens[t] = struct{}{}
	}
	return tokens
}

// normalizeSkills lower-cases and deduplicates preserving first-seen order.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
