package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

type stubGenerator struct {
	response string
	err      error

	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string { return "stub" }

func sampleProfile() *linkedin.Profile {
	return &linkedin.Profile{
		LinkedInURL:    "https://www.linkedin.com/in/jane-doe",
		FullName:       "Jane Doe",
		Headline:       "Machine Learning Engineer at Acme",
		CurrentTitle:   "Machine Learning Engineer",
		CurrentCompany: "Acme",
		Location:       "Berlin, Germany",
		Skills:         []string{"python", "pytorch"},
	}
}

func sampleRequirements() *jobdesc.Requirements {
	return &jobdesc.Requirements{
		Title:          "Senior ML Engineer",
		RequiredSkills: []string{"python", "pytorch"},
		Location:       "Berlin",
	}
}

func TestComposeMessageFillsPromptPlaceholders(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "Hi Jane, your PyTorch work caught my eye."}
	writer := NewWriter(stub, zap.NewNop(), 0)

	got, err := writer.ComposeMessage(context.Background(), sampleProfile(), sampleRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hi Jane, your PyTorch work caught my eye." {
		t.Fatalf("unexpected message: %q", got)
	}

	if strings.Contains(stub.lastPrompt, "{{CANDIDATE_JSON}}") || strings.Contains(stub.lastPrompt, "{{JOB_JSON}}") {
		t.Fatalf("prompt still contains placeholders: %q", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "Jane Doe") {
		t.Fatalf("prompt misses candidate name: %q", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "Senior ML Engineer") {
		t.Fatalf("prompt misses job title: %q", stub.lastPrompt)
	}
}

func TestComposeMessageStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "```markdown\nHi Jane!\n```"}
	writer := NewWriter(stub, zap.NewNop(), 0)

	got, err := writer.ComposeMessage(context.Background(), sampleProfile(), sampleRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hi Jane!" {
		t.Fatalf("expected fences stripped, got %q", got)
	}
}

func TestComposeMessagePropagatesGeneratorError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("quota exceeded")
	stub := &stubGenerator{err: wantErr}
	writer := NewWriter(stub, zap.NewNop(), 0)

	if _, err := writer.ComposeMessage(context.Background(), sampleProfile(), sampleRequirements()); !errors.Is(err, wantErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestComposeMessageRejectsEmptyResponse(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "```\n```"}
	writer := NewWriter(stub, zap.NewNop(), 0)

	if _, err := writer.ComposeMessage(context.Background(), sampleProfile(), sampleRequirements()); err == nil {
		t.Fatal("expected error for empty response")
	}
}
