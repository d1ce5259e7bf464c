// Package sourcing orchestrates a full run: job-description analysis, search,
// profile fetch, normalization, filtering, scoring and outreach composition.
package sourcing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/avoronov/talentscout/internal/filtering"
	"github.com/avoronov/talentscout/internal/jobdesc"
	"github.com/avoronov/talentscout/internal/linkedin"
	"github.com/avoronov/talentscout/internal/outreach"
	"github.com/avoronov/talentscout/internal/scoring"
	"github.com/avoronov/talentscout/internal/utils"
)

const (
	defaultMaxResults       = 25
	defaultFetchConcurrency = 5
	defaultTopMessages      = 5
)

// Config carries the run-level knobs. Zero values fall back to defaults.
type Config struct {
	MaxResults       int
	TopSkills        int
	FetchConcurrency int
	TopMessages      int
	QueryDelay       time.Duration
	ContactedFile    string
	Weights          scoring.Weights
}

// Deps wires the collaborators a run needs. Providers are tried in the given
// order; Filters default to the standard gate chain when nil.
type Deps struct {
	Providers  []linkedin.SearchProvider
	Source     linkedin.ProfileSource
	Composer   *outreach.Generator
	Normalizer *linkedin.Normalizer
	Filters    []filtering.Filter
	Logger     *zap.Logger
}

type Pipeline struct {
	cfg  Config
	deps Deps
}

func New(cfg Config, deps Deps) (*Pipeline, error) {
	if len(deps.Providers) == 0 {
		return nil, errors.New("at least one search provider is required")
	}
	if deps.Source == nil {
		return nil, errors.New("a profile source is required")
	}
	if deps.Composer == nil {
		return nil, errors.New("an outreach composer is required")
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}

	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = defaultFetchConcurrency
	}
	if cfg.TopMessages <= 0 {
		cfg.TopMessages = defaultTopMessages
	}
	if deps.Normalizer == nil {
		deps.Normalizer = linkedin.NewNormalizer()
	}
	if deps.Filters == nil {
		deps.Filters = []filtering.Filter{
			filtering.NewRequiredSkills(),
			filtering.NewMinExperience(),
			filtering.NewLocation(),
			filtering.NewContacted(),
		}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Pipeline{cfg: cfg, deps: deps}, nil
}

// Run executes the full funnel for the given job description. Collaborator
// failures shrink the candidate set but never abort the run; only an empty
// job text, invalid configuration or a cancelled context do.
func (p *Pipeline) Run(ctx context.Context, jobText string) (*Result, error) {
	started := time.Now()

	req, err := jobdesc.Parse(jobText)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		JobTitle:  req.Title,
		StartedAt: started,
	}
	finish := func() *Result {
		result.Stats.Duration = time.Since(started)
		return result
	}

	queries := jobdesc.BuildQueries(req, jobdesc.QueryConfig{TopSkills: p.cfg.TopSkills})
	p.deps.Logger.Info("search queries built",
		zap.String("run_id", result.RunID),
		zap.String("job_title", req.Title),
		zap.Int("queries", len(queries)),
	)

	hits, err := p.search(ctx, queries)
	if err != nil {
		return nil, err
	}

	hits = linkedin.DedupeHits(hits, p.cfg.MaxResults)
	result.Stats.ProfilesFound = len(hits)
	if len(hits) == 0 {
		result.Reasons = append(result.Reasons, ReasonNoSearchResults)
		return finish(), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := p.fetch(ctx, hits)
	if err != nil {
		return nil, err
	}

	profiles := p.normalize(records)
	if len(profiles) == 0 {
		result.Reasons = append(result.Reasons, ReasonNoProfilesLoaded)
		return finish(), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := filtering.NewReport()
	filtered, err := filtering.Run(ctx,
		&filtering.Config{Requirements: req, ContactedFile: p.cfg.ContactedFile},
		filtering.Deps{Logger: p.deps.Logger, Report: report},
		p.deps.Filters,
		&linkedin.Candidates{Items: profiles},
	)
	if err != nil {
		return nil, err
	}

	if filtered.Len() == 0 {
		reason := "all candidates dropped by filtering"
		if name := report.EmptiedBy(); name != "" {
			reason = "all candidates dropped by filter " + name
		}
		result.Reasons = append(result.Reasons, reason)
		return finish(), nil
	}

	engine, err := scoring.NewEngine(req, p.cfg.Weights)
	if err != nil {
		return nil, err
	}

	result.Candidates = engine.Rank(filtered)
	result.Stats.ProfilesScored = len(result.Candidates)

	result.Messages = p.compose(ctx, result.Candidates, req)
	result.Stats.MessagesComposed = len(result.Messages)

	return finish(), nil
}

// search runs every query against the providers in order, keeping the first
// provider response that yields hits. Provider failures are absorbed.
func (p *Pipeline) search(ctx context.Context, queries []string) ([]linkedin.SearchHit, error) {
	var collected []linkedin.SearchHit
	seen := make(map[string]struct{})

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(seen) >= p.cfg.MaxResults {
			break
		}

		if i > 0 {
			if err := utils.WaitFor(ctx, p.cfg.QueryDelay); err != nil {
				return nil, err
			}
		}

		for _, provider := range p.deps.Providers {
			hits, err := provider.Search(ctx, query, p.cfg.MaxResults)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				p.deps.Logger.Warn("search provider failed",
					zap.String("provider", provider.Name()),
					zap.String("query", query),
					zap.Error(err),
				)
				continue
			}

			if len(hits) == 0 {
				continue
			}

			for _, hit := range hits {
				if _, ok := seen[hit.URL]; ok {
					continue
				}
				seen[hit.URL] = struct{}{}
				collected = append(collected, hit)
			}
			break
		}
	}

	return collected, nil
}

// fetch loads raw records with a bounded fan-out. Results land in an
// index-addressed slice so downstream order equals hit order; a per-URL
// failure drops only that candidate.
func (p *Pipeline) fetch(ctx context.Context, hits []linkedin.SearchHit) ([]*linkedin.RawRecord, error) {
	records := make([]*linkedin.RawRecord, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.FetchConcurrency)

	for i, hit := range hits {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec, err := p.deps.Source.Fetch(gctx, hit.URL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				p.deps.Logger.Warn("profile fetch failed",
					zap.String("url", hit.URL),
					zap.Error(err),
				)
				return nil
			}

			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

func (p *Pipeline) normalize(records []*linkedin.RawRecord) []*linkedin.Profile {
	profiles := make([]*linkedin.Profile, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}

		profile, err := p.deps.Normalizer.Normalize(rec)
		if err != nil {
			p.deps.Logger.Warn("profile normalization failed",
				zap.String("url", rec.URL),
				zap.Error(err),
			)
			continue
		}

		profiles = append(profiles, profile)
	}

	return profiles
}

func (p *Pipeline) compose(ctx context.Context, scored []*scoring.ScoredCandidate, req *jobdesc.Requirements) []*outreach.Message {
	messages := make([]*outreach.Message, 0, p.cfg.TopMessages)

	for i, candidate := range scored {
		if i >= p.cfg.TopMessages {
			break
		}
		if ctx.Err() != nil {
			break
		}

		msg, err := p.deps.Composer.Compose(ctx, candidate.Profile, req)
		if err != nil {
			level := p.deps.Logger.Warn
			if errors.Is(err, outreach.ErrMissingName) {
				level = p.deps.Logger.Info
			}
			level("outreach message skipped",
				zap.String("url", candidate.Profile.LinkedInURL),
				zap.Error(err),
			)
			continue
		}

		messages = append(messages, msg)
	}

	return messages
}
