package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"stocksapi/internal/provider"
	"stocksapi/internal/recorder"
)

// Watcher polls a fixed watch list on a cron schedule, logs each quote and
// hands the batch to a recorder.
type Watcher struct {
	Cron     *cron.Cron
	Provider provider.Provider
	Recorder recorder.Recorder
	Symbols  []string
	Timeout  time.Duration
	Logger   *slog.Logger
	Ctx      context.Context
}

// New creates a Watcher. A nil recorder discards snapshots.
func New(ctx context.Context, p provider.Provider, rec recorder.Recorder, symbols []string, timeout time.Duration) *Watcher {
	if rec == nil {
		rec = recorder.NoopRecorder{}
	}
	return &Watcher{
		Cron:     cron.New(cron.WithSeconds()),
		Provider: p,
		Recorder: rec,
		Symbols:  symbols,
		Timeout:  timeout,
		Logger:   slog.Default(),
		Ctx:      ctx,
	}
}

// Register schedules the poll with a six-field (seconds first) spec.
func (w *Watcher) Register(spec string) error {
	if _, err := w.Cron.AddFunc(spec, func() {
		if _, err := w.RunOnce(); err != nil {
			w.Logger.Error("watch poll failed", "provider", w.Provider.Name(), "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	w.Logger.Info("watcher started", "symbols", w.Symbols)
}

// Stop stops the scheduler and waits for a running poll to finish.
func (w *Watcher) Stop() {
	<-w.Cron.Stop().Done()
	w.Logger.Info("watcher stopped")
}

// RunOnce performs a single poll and returns the quotes it recorded.
func (w *Watcher) RunOnce() ([]provider.Quote, error) {
	ctx := w.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	quotes, err := w.Provider.Fetch(ctx, w.Symbols)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	for _, q := range quotes {
		w.Logger.Info("quote",
			"symbol", q.Symbol,
			"price", q.Price,
			"currency", q.Currency,
			"market_state", q.MarketState,
		)
	}
	if err := w.Recorder.RecordQuotes(ctx, quotes); err != nil {
		return quotes, fmt.Errorf("record: %w", err)
	}
	return quotes, nil
}
