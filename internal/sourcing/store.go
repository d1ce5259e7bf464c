package sourcing

import "context"

// Store persists a finished run.
type Store interface {
	Name() string
	Save(ctx context.Context, result *Result) error
}
