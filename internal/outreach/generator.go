package outreach

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
)

// MessageWriter produces a message body from the candidate and job context.
// The Gemini writer satisfies it; nil means template-only composition.
type MessageWriter interface {
	ComposeMessage(ctx context.Context, p *linkedin.Profile, req *jobdesc.Requirements) (string, error)
}

// Generator composes messages through the AI writer when one is configured
// and falls back to the template on any writer failure.
type Generator struct {
	composer *Composer
	writer   MessageWriter
	logger   *zap.Logger
}

func NewGenerator(composer *Composer, writer MessageWriter, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		composer: composer,
		writer:   writer,
		logger:   logger,
	}
}

func (g *Generator) Compose(ctx context.Context, p *linkedin.Profile, req *jobdesc.Requirements) (*Message, error) {
	if p == nil || strings.TrimSpace(p.FullName) == "" {
		return g.composer.Compose(p, req)
	}

	if g.writer != nil {
		body, err := g.writer.ComposeMessage(ctx, p, req)
		if err == nil && strings.TrimSpace(body) != "" {
			return &Message{
				CandidateURL:  p.LinkedInURL,
				CandidateName: strings.TrimSpace(p.FullName),
				Body:          strings.TrimSpace(body),
			}, nil
		}

		g.logger.Warn("ai message generation failed, using template",
			zap.String("candidate_url", p.LinkedInURL),
			zap.Error(err),
		)
	}

	return g.composer.Compose(p, req)
}
