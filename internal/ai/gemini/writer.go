package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/ai"
	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
	"github.com/avoronov/talentscout/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Writer asks Gemini for a personalized outreach message.
type Writer struct {
	generator ai.ContentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewWriter(generator ai.ContentGenerator, logger *zap.Logger, maxLogLength int) *Writer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Writer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ComposeMessage generates a message body for the candidate. The returned
// text is plain prose; markdown fences from the model are stripped.
func (w *Writer) ComposeMessage(ctx context.Context, p *linkedin.Profile, req *jobdesc.Requirements) (string, error) {
	if p == nil {
		return "", fmt.Errorf("candidate profile is required")
	}
	if req == nil {
		return "", fmt.Errorf("job requirements are required")
	}

	candidateJSON, err := json.MarshalIndent(map[string]any{
		"name":            p.FullName,
		"headline":        p.Headline,
		"current_title":   p.CurrentTitle,
		"current_company": p.CurrentCompany,
		"location":        p.Location,
		"skills":          p.Skills,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(map[string]any{
		"title":           req.Title,
		"required_skills": req.RequiredSkills,
		"location":        req.Location,
		"salary_range":    req.SalaryRange,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := buildPrompt(string(candidateJSON), string(jobJSON))

	w.logger.Debug("gemini compose message request",
		zap.String("candidate_url", p.LinkedInURL),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, w.maxLogLen)),
	)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	w.logger.Debug("gemini compose message response",
		zap.String("candidate_url", p.LinkedInURL),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, w.maxLogLen)),
	)

	message := stripFences(raw)
	if message == "" {
		return "", fmt.Errorf("gemini returned an empty message")
	}

	return message, nil
}

func buildPrompt(candidateJSON, jobJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_JSON}}\n\nJob:\n{{JOB_JSON}}\n\nMessage:"
	}
	prompt := strings.ReplaceAll(template, "{{CANDIDATE_JSON}}", candidateJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
	return prompt
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```markdown")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}
