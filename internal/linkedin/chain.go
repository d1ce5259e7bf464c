package linkedin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ChainSource tries each underlying source in order and returns the first
// record fetched. Per-source failures are absorbed and logged; the chain
// fails only when every source does.
type ChainSource struct {
	sources []ProfileSource
	logger  *zap.Logger
}

func NewChainSource(logger *zap.Logger, sources ...ProfileSource) *ChainSource {
	return &ChainSource{sources: sources, logger: logger}
}

func (c *ChainSource) Name() string { return "chain" }

func (c *ChainSource) Fetch(ctx context.Context, url string) (*RawRecord, error) {
	if len(c.sources) == 0 {
		return nil, errors.New("no profile sources configured")
	}

	var errs []error
	for _, source := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := source.Fetch(ctx, url)
		if err == nil && record != nil {
			return record, nil
		}

		c.logger.Debug("profile source failed, trying next",
			zap.String("source", source.Name()),
			zap.String("url", url),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", source.Name(), err))
	}

	return nil, fmt.Errorf("all profile sources failed for %s: %w", url, errors.Join(errs...))
}
