package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/sourcing"
)

// PostgresStore writes runs into sourcing_runs and sourcing_candidates.
// Score breakdowns are stored as JSONB so no factor is lost on the way in.
type PostgresStore struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
	logger  *zap.Logger
}

func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &PostgresStore{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}, nil
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Save(ctx context.Context, result *sourcing.Result) error {
	if result == nil {
		return fmt.Errorf("result is required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}

	query, args, err := s.builder.
		Insert("sourcing_runs").
		Columns("run_id", "job_title", "profiles_found", "profiles_scored",
			"messages_composed", "duration_ms", "reasons", "started_at").
		Values(result.RunID, result.JobTitle, result.Stats.ProfilesFound,
			result.Stats.ProfilesScored, result.Stats.MessagesComposed,
			result.Stats.Duration.Milliseconds(), reasons, result.StartedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run %s: %w", result.RunID, err)
	}

	if len(result.Candidates) > 0 {
		insert := s.builder.
			Insert("sourcing_candidates").
			Columns("run_id", "rank", "url", "full_name", "headline", "total_score", "breakdown")

		for i, candidate := range result.Candidates {
			breakdown, err := json.Marshal(candidate.Breakdown)
			if err != nil {
				return fmt.Errorf("marshal breakdown for %s: %w", candidate.Profile.LinkedInURL, err)
			}

			insert = insert.Values(result.RunID, i+1, candidate.Profile.LinkedInURL,
				candidate.Profile.FullName, candidate.Profile.Headline,
				candidate.Total, breakdown)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build candidate insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert candidates for run %s: %w", result.RunID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit run %s: %w", result.RunID, err)
	}

	s.logger.Info("run saved",
		zap.String("run_id", result.RunID),
		zap.Int("candidates", len(result.Candidates)),
	)

	return nil
}
