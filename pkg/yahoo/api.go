package yahoo

import "context"

// API is the entry point of the package. It holds one HTTP client that is
// reused across calls and is safe for concurrent use.
//
// Every method accepts per-call options that apply to that call only, e.g.
// WithTimeout or WithQuery.
type API struct {
	client *client
}

// New creates an API. Without options it talks to the public service through
// a pooled client from httpx.
func New(opts ...Option) *API {
	return &API{client: newClient(opts...)}
}

// GetQuote returns the quote for a single ticker. The service must answer
// with exactly one result; anything else is an ErrCardinality failure.
func (a *API) GetQuote(ctx context.Context, symbol string, opts ...Option) (Quote, error) {
	return a.client.with(opts).getQuote(ctx, symbol)
}

// GetQuotes returns quotes for symbols in the order the service sends them,
// which need not match the request order. Match on Quote.Symbol.
func (a *API) GetQuotes(ctx context.Context, symbols []string, opts ...Option) ([]Quote, error) {
	return a.client.with(opts).getQuotes(ctx, symbols)
}

// SearchSymbols returns up to ten matches for query, ranked by the service.
func (a *API) SearchSymbols(ctx context.Context, query string, opts ...Option) ([]Symbol, error) {
	return a.client.with(opts).searchSymbols(ctx, query)
}

// GetHistory returns the price history of symbol sampled at interval
// (for example "5m" or "1d"). Only the first chart result is returned.
func (a *API) GetHistory(ctx context.Context, symbol, interval string, opts ...Option) (Chart, error) {
	return a.client.with(opts).getHistory(ctx, symbol, interval)
}

// GetCharts is GetHistory without the narrowing: it returns every chart
// result, possibly none.
func (a *API) GetCharts(ctx context.Context, symbol, interval string, opts ...Option) ([]Chart, error) {
	return a.client.with(opts).getCharts(ctx, "get charts", symbol, interval)
}
