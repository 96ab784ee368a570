// Package handler exposes the finance operations over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"stocksapi/pkg/yahoo"
)

// maxSymbols caps the tickers accepted in one quotes request.
const maxSymbols = 200

// FinanceService is the part of yahoo.API the handlers use.
type FinanceService interface {
	GetQuote(ctx context.Context, symbol string, opts ...yahoo.Option) (yahoo.Quote, error)
	GetQuotes(ctx context.Context, symbols []string, opts ...yahoo.Option) ([]yahoo.Quote, error)
	SearchSymbols(ctx context.Context, query string, opts ...yahoo.Option) ([]yahoo.Symbol, error)
	GetHistory(ctx context.Context, symbol, interval string, opts ...yahoo.Option) (yahoo.Chart, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type QuotesResponse struct {
	Quotes []yahoo.Quote `json:"quotes"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Symbols []yahoo.Symbol `json:"symbols"`
}

type HistoryResponse struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	yahoo.Chart
	Rows []yahoo.Bar `json:"bars,omitempty"`
}

type quotesRequest struct {
	Symbols []string `json:"symbols"`
}

// FinanceHandler serves quotes, search and history. Identical requests that
// arrive while one is in flight share its upstream call.
type FinanceHandler struct {
	svc     FinanceService
	timeout time.Duration
	sf      singleflight.Group
}

// NewFinanceHandler bounds every upstream call by timeout when positive.
func NewFinanceHandler(svc FinanceService, timeout time.Duration) *FinanceHandler {
	return &FinanceHandler{svc: svc, timeout: timeout}
}

func (h *FinanceHandler) opts() []yahoo.Option {
	if h.timeout <= 0 {
		return nil
	}
	return []yahoo.Option{yahoo.WithTimeout(h.timeout)}
}

// do runs fn once per key among concurrent callers. The shared call is
// detached from any single caller's cancellation; each caller still stops
// waiting when its own request context ends.
func do[T any](ctx context.Context, h *FinanceHandler, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	ch := h.sf.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func flightKey(op string, args ...string) string {
	return op + "\x00" + strings.Join(args, "\x00")
}

// GetQuotes handles GET /api/quotes?symbols=AAPL,MSFT.
func (h *FinanceHandler) GetQuotes(c *gin.Context) {
	symbols := splitCSV(c.Query("symbols"))
	h.writeQuotes(c, symbols)
}

// PostQuotes handles POST /api/quotes with {"symbols": [...]}.
func (h *FinanceHandler) PostQuotes(c *gin.Context) {
	var req quotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}
	h.writeQuotes(c, req.Symbols)
}

func (h *FinanceHandler) writeQuotes(c *gin.Context, symbols []string) {
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "symbols cannot be empty"})
		return
	}
	if len(symbols) > maxSymbols {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "too many symbols (max 200)"})
		return
	}
	quotes, err := do(c.Request.Context(), h, flightKey("quotes", symbols...), func(ctx context.Context) ([]yahoo.Quote, error) {
		return h.svc.GetQuotes(ctx, symbols, h.opts()...)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuotesResponse{Quotes: quotes})
}

// GetQuote handles GET /api/quotes/:symbol.
func (h *FinanceHandler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	quote, err := do(c.Request.Context(), h, flightKey("quote", symbol), func(ctx context.Context) (yahoo.Quote, error) {
		return h.svc.GetQuote(ctx, symbol, h.opts()...)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Search handles GET /api/search?q=microsoft.
func (h *FinanceHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing q query param"})
		return
	}
	symbols, err := do(c.Request.Context(), h, flightKey("search", q), func(ctx context.Context) ([]yahoo.Symbol, error) {
		return h.svc.SearchSymbols(ctx, q, h.opts()...)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Query: q, Symbols: symbols})
}

// GetHistory handles GET /api/history/:symbol?interval=1d&view=bars.
func (h *FinanceHandler) GetHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	interval := c.DefaultQuery("interval", "1d")
	chart, err := do(c.Request.Context(), h, flightKey("history", symbol, interval), func(ctx context.Context) (yahoo.Chart, error) {
		return h.svc.GetHistory(ctx, symbol, interval, h.opts()...)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := HistoryResponse{Symbol: symbol, Interval: interval, Chart: chart}
	if c.Query("view") == "bars" {
		resp.Rows = chart.Bars()
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps library error kinds onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	var se *yahoo.StatusError
	switch {
	case errors.Is(err, yahoo.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, yahoo.ErrCardinality):
		status = http.StatusNotFound
	case errors.As(err, &se) && se.StatusCode == http.StatusNotFound:
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// splitCSV splits a query value on commas, trimming space and dropping empty
// parts.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
