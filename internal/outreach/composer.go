package outreach

import (
	"errors"
	"strings"

	_ "embed"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
	"github.com/avoronov/talentscout/internal/scoring"
)

//go:embed template.md
var defaultTemplate string

// ErrMissingName marks a candidate that cannot be addressed personally.
// Callers skip the message and continue with the rest of the shortlist.
var ErrMissingName = errors.New("candidate profile has no name")

// Composer renders outreach messages from a {{placeholder}} template.
type Composer struct {
	template string
	company  string
}

func NewComposer(template, company string) *Composer {
	if strings.TrimSpace(template) == "" {
		template = defaultTemplate
	}
	if strings.TrimSpace(company) == "" {
		company = "our company"
	}

	return &Composer{
		template: template,
		company:  company,
	}
}

// Compose fills the template for the given candidate. Every placeholder has a
// generic fallback so a sparse profile still yields a sendable message; only a
// missing name is fatal for the candidate.
func (c *Composer) Compose(p *linkedin.Profile, req *jobdesc.Requirements) (*Message, error) {
	if p == nil {
		return nil, errors.New("candidate profile is required")
	}

	name := strings.TrimSpace(p.FullName)
	if name == "" {
		return nil, ErrMissingName
	}

	body := fillTemplate(c.template, placeholderValues(p, req, name, c.company))

	return &Message{
		CandidateURL:  p.LinkedInURL,
		CandidateName: name,
		Body:          body,
	}, nil
}

func placeholderValues(p *linkedin.Profile, req *jobdesc.Requirements, name, company string) map[string]string {
	values := map[string]string{
		"first_name":      firstName(name),
		"full_name":       name,
		"company":         company,
		"headline":        fallback(p.Headline, "an experienced professional"),
		"current_title":   fallback(p.CurrentTitle, "your current role"),
		"current_company": fallback(p.CurrentCompany, "your current company"),

		"job_title":     "an open position",
		"matched_skill": "your professional experience",
		"location":      fallback(p.Location, "a flexible location"),
		"salary_range":  "a competitive salary",
	}

	if req != nil {
		if title := strings.TrimSpace(req.Title); title != "" {
			values["job_title"] = title
		}
		if skill := scoring.MatchedSkill(p, req); skill != "" {
			values["matched_skill"] = skill
		}
		if loc := strings.TrimSpace(req.Location); loc != "" {
			values["location"] = loc
		}
		if salary := strings.TrimSpace(req.SalaryRange); salary != "" {
			values["salary_range"] = salary
		}
	}

	return values
}

func fillTemplate(template string, values map[string]string) string {
	body := template
	for key, value := range values {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(body)
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full
	}
	return parts[0]
}

func fallback(value, generic string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return generic
}
