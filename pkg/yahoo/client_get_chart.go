package yahoo

import (
	"context"
	"net/url"
	"strings"
)

// getCharts returns every chart result the service sends for symbol.
func (c *client) getCharts(ctx context.Context, op, symbol, interval string) ([]Chart, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, invalidArgument(op, "empty symbol")
	}
	if strings.TrimSpace(interval) == "" {
		return nil, invalidArgument(op, "empty interval")
	}

	query := url.Values{}
	query.Set("interval", interval)

	var env chartEnvelope
	if err := c.get(ctx, op, "/v8/finance/chart/"+url.PathEscape(symbol), query, &env); err != nil {
		return nil, err
	}
	return mapCharts(op, env)
}

// getHistory is the single-symbol narrowing of getCharts: it takes the first
// result and fails when there is none.
func (c *client) getHistory(ctx context.Context, symbol, interval string) (Chart, error) {
	const op = "get history"
	charts, err := c.getCharts(ctx, op, symbol, interval)
	if err != nil {
		return Chart{}, err
	}
	if len(charts) == 0 {
		return Chart{}, &CardinalityError{Op: op, Want: "at least 1", Got: 0}
	}
	return charts[0], nil
}
