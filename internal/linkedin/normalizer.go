package linkedin

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/avoronov/talentscout/internal/jobdesc"
)

// ErrRecordIncomplete signals that a raw record misses the minimum field set
// (a name or a headline) and cannot become a Profile.
var ErrRecordIncomplete = errors.New("profile record lacks a name and a headline")

// Provider responses come in several shapes; each target field declares its
// source paths in priority order and the first non-empty value wins. Keeping
// the shapes here, in one table, isolates provider-format drift.
var recordPaths = map[string][]string{
	"full_name":  {"data.full_name", "profile.full_name", "full_name", "name"},
	"first_name": {"data.first_name", "profile.firstName", "first_name", "firstName"},
	"last_name":  {"data.last_name", "profile.lastName", "last_name", "lastName"},
	"headline":   {"data.headline", "profile.headline", "headline"},
	"location":   {"data.location", "profile.location", "profile.geoLocationName", "location"},
	"summary":    {"data.about", "data.summary", "profile.summary", "summary"},
	"job_title":  {"data.job_title", "profile.occupation", "job_title"},
	"company":    {"data.company", "profile.companyName", "company"},
	"experience": {"data.experience", "data.experiences", "profile.positions", "experience"},
	"education":  {"data.education", "data.educations", "profile.schools", "education"},
	"skills":     {"data.skills", "profile.skills", "skills"},
}

// Normalizer turns raw provider records into canonical Profiles. The clock is
// injectable so that open-ended "Present" date ranges resolve reproducibly in
// tests.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerAt pins the normalizer clock, making normalization a pure
// function of the record.
func NewNormalizerAt(now time.Time) *Normalizer {
	return &Normalizer{now: func() time.Time { return now }}
}

// Normalize builds a Profile from one raw record. Parse failures on
// non-critical fields are absorbed: the field is omitted rather than turned
// into an error. Only a record with neither a name nor a headline fails.
func (n *Normalizer) Normalize(rec *RawRecord) (*Profile, error) {
	if rec == nil || len(rec.Body) == 0 {
		return nil, ErrRecordIncomplete
	}

	body := rec.Body
	p := &Profile{
		LinkedInURL:    rec.URL,
		FullName:       firstString(body, recordPaths["full_name"]),
		Headline:       firstString(body, recordPaths["headline"]),
		Location:       extractLocation(body),
		Summary:        firstString(body, recordPaths["summary"]),
		CurrentTitle:   firstString(body, recordPaths["job_title"]),
		CurrentCompany: firstString(body, recordPaths["company"]),
	}

	if p.FullName == "" {
		first := firstString(body, recordPaths["first_name"])
		last := firstString(body, recordPaths["last_name"])
		p.FullName = strings.TrimSpace(first + " " + last)
	}

	if p.FullName == "" && p.Headline == "" {
		return nil, ErrRecordIncomplete
	}

	p.Experience = n.extractExperience(body)
	p.Education = extractEducation(body)
	p.Skills = extractSkills(body, p.Headline, p.Summary)

	if p.CurrentTitle == "" && p.CurrentCompany == "" {
		if exp := currentPosition(p.Experience); exp != nil {
			p.CurrentTitle = exp.Title
			p.CurrentCompany = exp.Company
		}
	}

	totalMonths := 0
	for _, exp := range p.Experience {
		totalMonths += exp.DurationMonths
	}
	p.TotalExperienceYears = math.Round(float64(totalMonths)/12*10) / 10

	return p, nil
}

// currentPosition prefers the entry marked current, falling back to the
// first one (providers list newest first).
func currentPosition(entries []Experience) *Experience {
	for i := range entries {
		if entries[i].Current {
			return &entries[i]
		}
	}
	if len(entries) > 0 {
		return &entries[0]
	}
	return nil
}

func firstString(body []byte, paths []string) string {
	for _, path := range paths {
		res := gjson.GetBytes(body, path)
		if !res.Exists() {
			continue
		}
		if s := strings.TrimSpace(res.String()); s != "" && !res.IsObject() && !res.IsArray() {
			return s
		}
	}
	return ""
}

func firstValue(body []byte, paths []string) gjson.Result {
	for _, path := range paths {
		if res := gjson.GetBytes(body, path); res.Exists() {
			return res
		}
	}
	return gjson.Result{}
}

// extractLocation handles both plain strings and {city, country} objects.
func extractLocation(body []byte) string {
	res := firstValue(body, recordPaths["location"])
	if !res.Exists() {
		return ""
	}
	if res.IsObject() {
		city := strings.TrimSpace(res.Get("city").String())
		country := strings.TrimSpace(res.Get("country").String())
		return strings.Trim(strings.Join(nonEmpty(city, country), ", "), ", ")
	}
	return strings.TrimSpace(res.String())
}

func (n *Normalizer) extractExperience(body []byte) []Experience {
	res := firstValue(body, recordPaths["experience"])
	if !res.Exists() || !res.IsArray() {
		return nil
	}

	now := n.now()
	var out []Experience
	for _, entry := range res.Array() {
		if !entry.IsObject() {
			continue
		}
		exp := Experience{
			Title:   firstEntryString(entry, "title", "jobTitle", "position"),
			Company: firstEntryString(entry, "company", "companyName", "company_name"),
		}
		if exp.Title == "" && exp.Company == "" {
			continue
		}

		rangeText := firstEntryString(entry, "duration", "dates", "date_range", "timePeriod")
		months, current, ok := ParseDurationMonths(rangeText, now)
		if ok {
			exp.DurationMonths = months
			exp.Current = current
		}
		if entry.Get("is_current").Bool() || entry.Get("current").Bool() {
			exp.Current = true
		}

		out = append(out, exp)
	}
	return out
}

func extractEducation(body []byte) []Education {
	res := firstValue(body, recordPaths["education"])
	if !res.Exists() || !res.IsArray() {
		return nil
	}

	var out []Education
	for _, entry := range res.Array() {
		if !entry.IsObject() {
			continue
		}
		edu := Education{
			Institution: firstEntryString(entry, "school", "schoolName", "institution"),
			Degree:      firstEntryString(entry, "degree", "degreeName", "degree_name"),
			Field:       firstEntryString(entry, "field", "fieldOfStudy", "field_of_study"),
		}
		if edu.Institution == "" && edu.Degree == "" {
			continue
		}
		out = append(out, edu)
	}
	return out
}

// extractSkills accepts both plain string lists and {name} object lists.
// When the record carries no skills at all they are fallback-extracted from
// the headline and summary via the vocabulary. The result is lower-cased,
// deduplicated and sorted so normalization is byte-reproducible.
func extractSkills(body []byte, headline, summary string) []string {
	res := firstValue(body, recordPaths["skills"])

	var raw []string
	if res.Exists() && res.IsArray() {
		for _, entry := range res.Array() {
			if entry.IsObject() {
				raw = append(raw, entry.Get("name").String())
				continue
			}
			raw = append(raw, entry.String())
		}
	}

	if len(raw) == 0 {
		raw = jobdesc.MatchVocabulary(headline + " " + summary)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
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
	sort.Strings(out)
	return out
}

func firstEntryString(entry gjson.Result, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(entry.Get(key).String()); s != "" {
			return s
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
