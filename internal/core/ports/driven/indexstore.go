package driven

import (
	"context"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// IndexStore persists one index snapshot across process runs.
//
// Save replaces any previously stored snapshot. Load returns
// domain.ErrEmptyIndex when nothing has been persisted yet; a restored
// snapshot is element-identical to the one saved, in the same order, with
// the same model identifier.
type IndexStore interface {
	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot domain.IndexSnapshot) error

	// Load retrieves the stored snapshot.
	Load(ctx context.Context) (domain.IndexSnapshot, error)

	// Close releases resources.
	Close() error
}
