package reconcile

import (
	"context"
	"errors"
	"log/slog"
)

// Mutator applies a single membership change against the remote collection.
type Mutator interface {
	AddToCollection(ctx context.Context, itemID string) error
	RemoveFromCollection(ctx context.Context, itemID string) error
}

// Result records what Apply managed to do.
type Result struct {
	Added   []string
	Removed []string
	Failed  int
}

// ErrAllMutationsFailed is returned when a non-empty plan produced no
// successful mutation at all.
var ErrAllMutationsFailed = errors.New("all collection mutations failed")

// Apply executes a plan best-effort: a failed mutation is logged and the run
// continues with the remaining identifiers. It returns ErrAllMutationsFailed
// only when every attempted mutation failed, and the context error when the
// run is cancelled mid-plan.
func Apply(ctx context.Context, plan Plan, mutator Mutator, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var result Result
	for _, id := range plan.Add {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := mutator.AddToCollection(ctx, id); err != nil {
			logger.Warn("add to collection failed", "item", id, "error", err)
			result.Failed++
			continue
		}
		result.Added = append(result.Added, id)
	}
	for _, id := range plan.Remove {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := mutator.RemoveFromCollection(ctx, id); err != nil {
			logger.Warn("remove from collection failed", "item", id, "error", err)
			result.Failed++
			continue
		}
		result.Removed = append(result.Removed, id)
	}

	if result.Failed > 0 && len(result.Added) == 0 && len(result.Removed) == 0 {
		return result, ErrAllMutationsFailed
	}
	return result, nil
}
