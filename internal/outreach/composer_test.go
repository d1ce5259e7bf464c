package outreach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

func testProfile() *linkedin.Profile {
	return &linkedin.Profile{
		LinkedInURL:    "https://www.linkedin.com/in/jane-doe",
		FullName:       "Jane Doe",
		Headline:       "ML Engineer at Acme",
		CurrentTitle:   "ML Engineer",
		CurrentCompany: "Acme",
		Location:       "Berlin, Germany",
		Skills:         []string{"python", "pytorch"},
	}
}

func testRequirements() *jobdesc.Requirements {
	return &jobdesc.Requirements{
		Title:           "Senior ML Engineer",
		RequiredSkills:  []string{"pytorch", "python"},
		PreferredSkills: []string{"kubernetes"},
		Location:        "Berlin",
		SalaryRange:     "$150k-$180k",
	}
}

func TestComposeFillsAllPlaceholders(t *testing.T) {
	t.Parallel()

	composer := NewComposer("", "TalentScout GmbH")

	msg, err := composer.Compose(testProfile(), testRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.CandidateName != "Jane Doe" {
		t.Fatalf("unexpected candidate name %q", msg.CandidateName)
	}
	if msg.CandidateURL != "https://www.linkedin.com/in/jane-doe" {
		t.Fatalf("unexpected candidate url %q", msg.CandidateURL)
	}
	if strings.Contains(msg.Body, "{{") {
		t.Fatalf("unresolved placeholders in body: %q", msg.Body)
	}
	for _, want := range []string{"Jane", "Senior ML Engineer", "TalentScout GmbH", "pytorch", "$150k-$180k", "Berlin"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body misses %q: %q", want, msg.Body)
		}
	}
}

func TestComposeMatchedSkillPrefersRequiredInJobOrder(t *testing.T) {
	t.Parallel()

	composer := NewComposer("{{matched_skill}}", "Acme")

	msg, err := composer.Compose(testProfile(), testRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != "pytorch" {
		t.Fatalf("expected first required skill match, got %q", msg.Body)
	}
}

func TestComposeUsesGenericFallbacksForSparseProfile(t *testing.T) {
	t.Parallel()

	composer := NewComposer("", "")
	profile := &linkedin.Profile{
		LinkedInURL: "https://www.linkedin.com/in/john",
		FullName:    "John",
	}

	msg, err := composer.Compose(profile, &jobdesc.Requirements{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(msg.Body, "{{") {
		t.Fatalf("unresolved placeholders in body: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "an open position") {
		t.Fatalf("expected generic job title fallback, got %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "our company") {
		t.Fatalf("expected generic company fallback, got %q", msg.Body)
	}
}

func TestComposeRejectsMissingName(t *testing.T) {
	t.Parallel()

	composer := NewComposer("", "Acme")
	profile := &linkedin.Profile{LinkedInURL: "https://www.linkedin.com/in/ghost"}

	if _, err := composer.Compose(profile, testRequirements()); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

type stubWriter struct {
	body string
	err  error
}

func (s *stubWriter) ComposeMessage(context.Context, *linkedin.Profile, *jobdesc.Requirements) (string, error) {
	return s.body, s.err
}

func TestGeneratorPrefersWriterOutput(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(NewComposer("", "Acme"), &stubWriter{body: "Hi Jane, personalized note."}, zap.NewNop())

	msg, err := gen.Compose(context.Background(), testProfile(), testRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != "Hi Jane, personalized note." {
		t.Fatalf("expected writer body, got %q", msg.Body)
	}
}

func TestGeneratorFallsBackToTemplateOnWriterError(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(NewComposer("", "Acme"), &stubWriter{err: errors.New("quota exceeded")}, zap.NewNop())

	msg, err := gen.Compose(context.Background(), testProfile(), testRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg.Body, "Senior ML Engineer") {
		t.Fatalf("expected template body, got %q", msg.Body)
	}
}

func TestGeneratorStillRejectsMissingName(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(NewComposer("", "Acme"), &stubWriter{body: "hello"}, zap.NewNop())
	profile := &linkedin.Profile{LinkedInURL: "https://www.linkedin.com/in/ghost"}

	if _, err := gen.Compose(context.Background(), profile, testRequirements()); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}
