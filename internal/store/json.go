// Package store persists finished sourcing runs. Two backends are provided:
// a JSON file per run and a Postgres schema for querying across runs.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/avoronov/talentscout/internal/sourcing"
)

// JSONStore writes one pretty-printed file per run into a data directory.
type JSONStore struct {
	dir    string
	logger *zap.Logger
}

func NewJSONStore(dir string, logger *zap.Logger) (*JSONStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &JSONStore{dir: dir, logger: logger}, nil
}

func (s *JSONStore) Name() string { return "json" }

func (s *JSONStore) Save(_ context.Context, result *sourcing.Result) error {
	if result == nil {
		return fmt.Errorf("result is required")
	}

	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", result.RunID, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("run-%s.json", result.RunID))
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return fmt.Errorf("write run file %s: %w", path, err)
	}

	s.logger.Info("run saved",
		zap.String("run_id", result.RunID),
		zap.String("path", path),
	)

	return nil
}
