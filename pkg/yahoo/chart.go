package yahoo

import "time"

// QuoteIndicator holds OHLCV series aligned index-for-index with
// Chart.Timestamps. A nil element marks a sample the service did not report.
type QuoteIndicator struct {
	Volume []*uint64  `json:"volume"`
	Low    []*float64 `json:"low"`
	High   []*float64 `json:"high"`
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
}

// Chart is a historical price series for one symbol.
type Chart struct {
	// Timestamps are unix seconds in ascending order.
	Timestamps []int64          `json:"timestamp"`
	Indicators []QuoteIndicator `json:"indicators"`
}

// Bar is one row of a Chart.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   *float64  `json:"open,omitempty"`
	High   *float64  `json:"high,omitempty"`
	Low    *float64  `json:"low,omitempty"`
	Close  *float64  `json:"close,omitempty"`
	Volume *uint64   `json:"volume,omitempty"`
}

// Bars returns the chart as rows built from the first indicator series.
// Gaps stay as nil fields; rows are never dropped.
func (c Chart) Bars() []Bar {
	bars := make([]Bar, 0, len(c.Timestamps))
	var ind QuoteIndicator
	if len(c.Indicators) > 0 {
		ind = c.Indicators[0]
	}
	for i, ts := range c.Timestamps {
		bars = append(bars, Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   at(ind.Open, i),
			High:   at(ind.High, i),
			Low:    at(ind.Low, i),
			Close:  at(ind.Close, i),
			Volume: at(ind.Volume, i),
		})
	}
	return bars
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}
