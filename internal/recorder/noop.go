package recorder

import (
	"context"

	"stocksapi/internal/provider"
)

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) RecordQuotes(context.Context, []provider.Quote) error { return nil }
func (NoopRecorder) Close() error                                        { return nil }
