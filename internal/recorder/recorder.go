package recorder

import (
	"context"

	"stocksapi/internal/provider"
)

// Recorder persists quote snapshots for later analysis.
type Recorder interface {
	RecordQuotes(ctx context.Context, quotes []provider.Quote) error
	Close() error
}
