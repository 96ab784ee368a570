package yahoo

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const (
	searchQuotesCount = 10
	searchNewsCount   = 0
)

func (c *client) searchSymbols(ctx context.Context, q string) ([]Symbol, error) {
	const op = "search symbols"
	if strings.TrimSpace(q) == "" {
		return nil, invalidArgument(op, "empty query")
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("quotesCount", strconv.Itoa(searchQuotesCount))
	query.Set("newsCount", strconv.Itoa(searchNewsCount))

	var env searchEnvelope
	if err := c.get(ctx, op, "/v1/finance/search", query, &env); err != nil {
		return nil, err
	}
	return mapSymbols(op, env)
}
