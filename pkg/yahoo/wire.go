package yahoo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire schemas mirror the JSON each endpoint returns. Required fields are
// pointers so absence can be told apart from a zero value.

// {"quoteResponse": {"result": [...], "error": null}}
type quoteEnvelope struct {
	QuoteResponse *quoteResponse `json:"quoteResponse"`
}

type quoteResponse struct {
	Result []quoteResult   `json:"result"`
	Error  *serviceFailure `json:"error"`
}

type quoteResult struct {
	Symbol              *string  `json:"symbol"`
	ShortName           *string  `json:"shortName"`
	LongName            *string  `json:"longName"`
	RegularMarketPrice  *float64 `json:"regularMarketPrice"`
	RegularMarketChange *float64 `json:"regularMarketChange"`
	Currency            *string  `json:"currency"`
	MarketState         *string  `json:"marketState"`
	// Older payloads spell it market_state.
	LegacyMarketState *string `json:"market_state"`
}

// {"quotes": [...], "news": [...]}
type searchEnvelope struct {
	Quotes *[]searchResult `json:"quotes"`
}

type searchResult struct {
	Symbol    *string  `json:"symbol"`
	ShortName *string  `json:"shortname"`
	LongName  *string  `json:"longname"`
	Sector    *string  `json:"sector"`
	Industry  *string  `json:"industry"`
	Score     *float64 `json:"score"`
	Exchange  *string  `json:"exchange"`
	ExchDisp  *string  `json:"exchDisp"`
}

// {"chart": {"result": [...], "error": null}}
type chartEnvelope struct {
	Chart *chartBody `json:"chart"`
}

type chartBody struct {
	Result []chartResult   `json:"result"`
	Error  *serviceFailure `json:"error"`
}

type chartResult struct {
	Timestamp  []int64         `json:"timestamp"`
	Indicators chartIndicators `json:"indicators"`
}

type chartIndicators struct {
	Quote []chartQuote `json:"quote"`
}

type chartQuote struct {
	Volume []*uint64  `json:"volume"`
	Low    []*float64 `json:"low"`
	High   []*float64 `json:"high"`
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
}

// serviceFailure is the envelope "error" member. The service sends either a
// plain string or {"code": "...", "description": "..."}; null leaves the
// pointer nil.
type serviceFailure struct {
	Code        string
	Description string
}

func (f *serviceFailure) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Description = s
		return nil
	}
	var obj struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("error member: %w", err)
	}
	f.Code, f.Description = obj.Code, obj.Description
	return nil
}

func (f *serviceFailure) toError(op string) error {
	return &RemoteError{Op: op, Code: f.Code, Message: f.Description}
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

var errMissingMember = errors.New("missing envelope member")

func (r quoteResult) toQuote() (Quote, error) {
	if r.Symbol == nil {
		return Quote{}, missingField("symbol")
	}
	if r.RegularMarketPrice == nil {
		return Quote{}, missingField("regularMarketPrice")
	}
	state := r.MarketState
	if state == nil {
		state = r.LegacyMarketState
	}
	return Quote{
		Symbol:              *r.Symbol,
		ShortName:           r.ShortName,
		LongName:            r.LongName,
		RegularMarketPrice:  *r.RegularMarketPrice,
		RegularMarketChange: r.RegularMarketChange,
		Currency:            r.Currency,
		MarketState:         state,
	}, nil
}

func (r searchResult) toSymbol() (Symbol, error) {
	if r.Symbol == nil {
		return Symbol{}, missingField("symbol")
	}
	if r.Score == nil {
		return Symbol{}, missingField("score")
	}
	return Symbol{
		Symbol:    *r.Symbol,
		Score:     *r.Score,
		ShortName: r.ShortName,
		LongName:  r.LongName,
		Sector:    r.Sector,
		Industry:  r.Industry,
		Exchange:  r.Exchange,
		ExchDisp:  r.ExchDisp,
	}, nil
}

func (r chartResult) toChart() (Chart, error) {
	n := len(r.Timestamp)
	indicators := make([]QuoteIndicator, 0, len(r.Indicators.Quote))
	for i, q := range r.Indicators.Quote {
		for _, s := range []struct {
			name string
			len  int
		}{
			{"volume", len(q.Volume)},
			{"low", len(q.Low)},
			{"high", len(q.High)},
			{"open", len(q.Open)},
			{"close", len(q.Close)},
		} {
			// An absent series is tolerated; a present one must line up.
			if s.len != 0 && s.len != n {
				return Chart{}, fmt.Errorf("indicators.quote[%d].%s has %d samples for %d timestamps", i, s.name, s.len, n)
			}
		}
		indicators = append(indicators, QuoteIndicator{
			Volume: q.Volume,
			Low:    q.Low,
			High:   q.High,
			Open:   q.Open,
			Close:  q.Close,
		})
	}
	return Chart{Timestamps: r.Timestamp, Indicators: indicators}, nil
}

// mapQuotes converts a decoded quote envelope. A non-null error member is a
// service failure regardless of the result list.
func mapQuotes(op string, env quoteEnvelope) ([]Quote, error) {
	if env.QuoteResponse == nil {
		return nil, &DecodeError{Op: op, Step: "quoteResponse", Err: errMissingMember}
	}
	if env.QuoteResponse.Error != nil {
		return nil, env.QuoteResponse.Error.toError(op)
	}
	quotes := make([]Quote, 0, len(env.QuoteResponse.Result))
	for i, r := range env.QuoteResponse.Result {
		q, err := r.toQuote()
		if err != nil {
			return nil, &DecodeError{Op: op, Step: fmt.Sprintf("quoteResponse.result[%d]", i), Err: err}
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func mapSymbols(op string, env searchEnvelope) ([]Symbol, error) {
	if env.Quotes == nil {
		return nil, &DecodeError{Op: op, Step: "quotes", Err: errMissingMember}
	}
	symbols := make([]Symbol, 0, len(*env.Quotes))
	for i, r := range *env.Quotes {
		s, err := r.toSymbol()
		if err != nil {
			return nil, &DecodeError{Op: op, Step: fmt.Sprintf("quotes[%d]", i), Err: err}
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

func mapCharts(op string, env chartEnvelope) ([]Chart, error) {
	if env.Chart == nil {
		return nil, &DecodeError{Op: op, Step: "chart", Err: errMissingMember}
	}
	if env.Chart.Error != nil {
		return nil, env.Chart.Error.toError(op)
	}
	charts := make([]Chart, 0, len(env.Chart.Result))
	for i, r := range env.Chart.Result {
		c, err := r.toChart()
		if err != nil {
			return nil, &DecodeError{Op: op, Step: fmt.Sprintf("chart.result[%d]", i), Err: err}
		}
		charts = append(charts, c)
	}
	return charts, nil
}
