package yahoo

import (
	"context"
	"net/url"
	"strings"
)

// getQuotes retrieves one quote per result entry, in service order.
func (c *client) getQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	const op = "get quotes"
	if len(symbols) == 0 {
		return nil, invalidArgument(op, "no symbols")
	}
	for i, s := range symbols {
		if strings.TrimSpace(s) == "" {
			return nil, invalidArgument(op, "empty symbol at position %d", i)
		}
		// The service splits the symbols parameter on commas.
		if strings.Contains(s, ",") {
			return nil, invalidArgument(op, "symbol %q at position %d contains a comma", s, i)
		}
	}

	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))

	var env quoteEnvelope
	if err := c.get(ctx, op, "/v7/finance/quote", query, &env); err != nil {
		return nil, err
	}
	return mapQuotes(op, env)
}

// getQuote narrows getQuotes to exactly one result.
func (c *client) getQuote(ctx context.Context, symbol string) (Quote, error) {
	const op = "get quote"
	quotes, err := c.getQuotes(ctx, []string{symbol})
	if err != nil {
		return Quote{}, err
	}
	if len(quotes) != 1 {
		return Quote{}, &CardinalityError{Op: op, Want: "exactly 1", Got: len(quotes)}
	}
	return quotes[0], nil
}
