package yahooadapter

import (
	"context"
	"time"

	"stocksapi/internal/provider"
	"stocksapi/pkg/yahoo"
)

// QuoteSource is the part of yahoo.API the adapter needs.
type QuoteSource interface {
	GetQuotes(ctx context.Context, symbols []string, opts ...yahoo.Option) ([]yahoo.Quote, error)
}

type Config struct {
	Name string // display name, default: Yahoo
	// Timeout bounds each Fetch. If <= 0, the caller's context is the only bound.
	Timeout time.Duration
}

type Adapter struct {
	cfg    Config
	source QuoteSource
	now    func() time.Time
}

func New(cfg Config, source QuoteSource) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	return &Adapter{cfg: cfg, source: source, now: time.Now}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// Fetch returns one normalized quote per service result, in service order.
func (a *Adapter) Fetch(ctx context.Context, symbols []string) ([]provider.Quote, error) {
	var opts []yahoo.Option
	if a.cfg.Timeout > 0 {
		opts = append(opts, yahoo.WithTimeout(a.cfg.Timeout))
	}
	quotes, err := a.source.GetQuotes(ctx, symbols, opts...)
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	out := make([]provider.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, provider.Quote{
			Symbol:      q.Symbol,
			Name:        q.Name(),
			Price:       q.RegularMarketPrice,
			Change:      q.RegularMarketChange,
			Currency:    deref(q.Currency),
			MarketState: deref(q.MarketState),
			Source:      a.cfg.Name,
			ReceivedAt:  now,
		})
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
