package yahoo_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"stocksapi/pkg/yahoo"
)

func TestGetQuotes(t *testing.T) {
	t.Parallel()

	// Arrange: the service answers in a different order than requested.
	const body = `{
		"quoteResponse": {
			"result": [
				{"symbol": "MSFT", "shortName": "Microsoft", "regularMarketPrice": 410.5, "regularMarketChange": 2.25, "currency": "USD", "marketState": "REGULAR"},
				{"symbol": "AAPL", "longName": "Apple Inc.", "regularMarketPrice": 150.0}
			],
			"error": null
		}
	}`
	httpClient := stubHTTPClient(t, http.StatusOK, body, func(req *http.Request) {
		require.Equal(t, http.MethodGet, req.Method)
		require.Equal(t, "/v7/finance/quote", req.URL.Path)
		require.Equal(t, "AAPL,MSFT", req.URL.Query().Get("symbols"))
	})
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	// Act
	requested := []string{"AAPL", "MSFT"}
	quotes, err := api.GetQuotes(t.Context(), requested)
	require.NoError(t, err)

	// Assert: service order, every symbol was requested.
	require.Len(t, quotes, 2)
	require.Equal(t, "MSFT", quotes[0].Symbol)
	require.Equal(t, "AAPL", quotes[1].Symbol)
	for _, q := range quotes {
		require.Contains(t, requested, q.Symbol)
	}

	msft := quotes[0]
	require.InEpsilon(t, 410.5, msft.RegularMarketPrice, 0.0001)
	require.NotNil(t, msft.RegularMarketChange)
	require.InEpsilon(t, 2.25, *msft.RegularMarketChange, 0.0001)
	require.Equal(t, "Microsoft", *msft.ShortName)
	require.Equal(t, "USD", *msft.Currency)
	require.Equal(t, "REGULAR", *msft.MarketState)
	require.Nil(t, msft.LongName)

	aapl := quotes[1]
	require.Nil(t, aapl.RegularMarketChange)
	require.Nil(t, aapl.Currency)
	require.Nil(t, aapl.MarketState)
	require.Equal(t, "Apple Inc.", aapl.Name())
}

func TestGetQuotes_EmptyResult(t *testing.T) {
	t.Parallel()

	httpClient := stubHTTPClient(t, http.StatusOK, `{"quoteResponse":{"result":[],"error":null}}`, nil)
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	quotes, err := api.GetQuotes(t.Context(), []string{"NOPE"})

	// Assert: an empty list is not an error.
	require.NoError(t, err)
	require.NotNil(t, quotes)
	require.Empty(t, quotes)
}

func TestGetQuotes_DuplicatesPassThrough(t *testing.T) {
	t.Parallel()

	const body = `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":1},{"symbol":"AAPL","regularMarketPrice":1}]}}`
	httpClient := stubHTTPClient(t, http.StatusOK, body, func(req *http.Request) {
		require.Equal(t, "AAPL,AAPL", req.URL.Query().Get("symbols"))
	})
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	quotes, err := api.GetQuotes(t.Context(), []string{"AAPL", "AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
}

func TestGetQuotes_InvalidArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbols []string
	}{
		{"nil", nil},
		{"empty", []string{}},
		{"blank ticker", []string{"AAPL", " "}},
		{"comma in ticker", []string{"AAPL,MSFT"}},
		{"comma in second ticker", []string{"AAPL", "MSFT,"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().Do(gomock.Any()).Times(0)
			api := yahoo.New(yahoo.WithHTTPClient(httpClient))

			quotes, err := api.GetQuotes(t.Context(), tt.symbols)
			require.ErrorIs(t, err, yahoo.ErrInvalidArgument)
			require.Nil(t, quotes)
		})
	}
}

func TestGetQuotes_MissingRequiredField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		step string
	}{
		{
			name: "missing envelope",
			body: `{"finance":{}}`,
			step: "quoteResponse",
		},
		{
			name: "missing price",
			body: `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":1},{"symbol":"MSFT"}]}}`,
			step: "quoteResponse.result[1]",
		},
		{
			name: "missing symbol",
			body: `{"quoteResponse":{"result":[{"regularMarketPrice":1}]}}`,
			step: "quoteResponse.result[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			httpClient := stubHTTPClient(t, http.StatusOK, tt.body, nil)
			api := yahoo.New(yahoo.WithHTTPClient(httpClient))

			quotes, err := api.GetQuotes(t.Context(), []string{"AAPL", "MSFT"})
			require.Nil(t, quotes)
			require.ErrorIs(t, err, yahoo.ErrDecode)

			var de *yahoo.DecodeError
			require.ErrorAs(t, err, &de)
			require.Equal(t, tt.step, de.Step)
		})
	}
}

func TestGetQuotes_ServiceError(t *testing.T) {
	t.Parallel()

	const body = `{"quoteResponse":{"result":[],"error":{"code":"Unauthorized","description":"Invalid Crumb"}}}`
	httpClient := stubHTTPClient(t, http.StatusOK, body, nil)
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	_, err := api.GetQuotes(t.Context(), []string{"AAPL"})
	require.ErrorIs(t, err, yahoo.ErrRemote)

	var re *yahoo.RemoteError
	require.ErrorAs(t, err, &re)
	require.Equal(t, "Unauthorized", re.Code)
	require.Equal(t, "Invalid Crumb", re.Message)
}

func TestGetQuote(t *testing.T) {
	t.Parallel()

	httpClient := stubHTTPClient(t, http.StatusOK, oneQuote, func(req *http.Request) {
		require.Equal(t, "AAPL", req.URL.Query().Get("symbols"))
	})
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	quote, err := api.GetQuote(t.Context(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "AAPL", quote.Symbol)
	require.InEpsilon(t, 150.0, quote.RegularMarketPrice, 0.0001)
}

func TestGetQuote_CommaIsInvalidArgument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Times(0)
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	quote, err := api.GetQuote(t.Context(), "AAPL,MSFT")
	require.ErrorIs(t, err, yahoo.ErrInvalidArgument)
	require.NotErrorIs(t, err, yahoo.ErrCardinality)
	require.Equal(t, yahoo.Quote{}, quote)
}

func TestGetQuote_LegacyMarketState(t *testing.T) {
	t.Parallel()

	const body = `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":150.0,"market_state":"CLOSED"}]}}`
	httpClient := stubHTTPClient(t, http.StatusOK, body, nil)
	api := yahoo.New(yahoo.WithHTTPClient(httpClient))

	quote, err := api.GetQuote(t.Context(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, quote.MarketState)
	require.Equal(t, "CLOSED", *quote.MarketState)
}

func TestGetQuote_Cardinality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		got  int
	}{
		{
			name: "zero results",
			body: `{"quoteResponse":{"result":[],"error":null}}`,
			got:  0,
		},
		{
			name: "two results",
			body: `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":150.0},{"symbol":"AAPL","regularMarketPrice":151.0}]}}`,
			got:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			httpClient := stubHTTPClient(t, http.StatusOK, tt.body, nil)
			api := yahoo.New(yahoo.WithHTTPClient(httpClient))

			quote, err := api.GetQuote(t.Context(), "AAPL")
			require.ErrorIs(t, err, yahoo.ErrCardinality)
			require.NotErrorIs(t, err, yahoo.ErrDecode)
			require.Equal(t, yahoo.Quote{}, quote)

			var ce *yahoo.CardinalityError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, tt.got, ce.Got)
		})
	}
}
