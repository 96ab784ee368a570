package yahooadapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stocksapi/pkg/yahoo"
)

type fakeSource struct {
	quotes []yahoo.Quote
	err    error
	opts   int
	got    []string
}

func (f *fakeSource) GetQuotes(_ context.Context, symbols []string, opts ...yahoo.Option) ([]yahoo.Quote, error) {
	f.got = symbols
	f.opts = len(opts)
	return f.quotes, f.err
}

func strp(s string) *string { return &s }

func TestFetch_Normalizes(t *testing.T) {
	change := -0.5
	src := &fakeSource{quotes: []yahoo.Quote{
		{Symbol: "MSFT", ShortName: strp("Microsoft"), RegularMarketPrice: 410.5, RegularMarketChange: &change, Currency: strp("USD"), MarketState: strp("PRE")},
		{Symbol: "AAPL", RegularMarketPrice: 150},
	}}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	a := New(Config{Timeout: time.Second}, src)
	a.now = func() time.Time { return at }

	qs, err := a.Fetch(t.Context(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "MSFT"}, src.got)
	require.Equal(t, 1, src.opts)

	require.Len(t, qs, 2)
	require.Equal(t, "MSFT", qs[0].Symbol)
	require.Equal(t, "Microsoft", qs[0].Name)
	require.Equal(t, "USD", qs[0].Currency)
	require.Equal(t, "PRE", qs[0].MarketState)
	require.Equal(t, &change, qs[0].Change)
	require.Equal(t, "Yahoo", qs[0].Source)
	require.True(t, qs[0].ReceivedAt.Equal(at))

	require.Equal(t, "AAPL", qs[1].Name)
	require.Empty(t, qs[1].Currency)
	require.Nil(t, qs[1].Change)
}

func TestFetch_PropagatesError(t *testing.T) {
	src := &fakeSource{err: &yahoo.StatusError{Op: "get quotes", StatusCode: 429}}
	a := New(Config{Name: "yf"}, src)
	require.Equal(t, "yf", a.Name())

	qs, err := a.Fetch(t.Context(), []string{"AAPL"})
	require.Nil(t, qs)
	require.True(t, errors.Is(err, yahoo.ErrStatus))
	require.Zero(t, src.opts)
}
