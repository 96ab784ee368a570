package yahoo

// Quote is a snapshot of an instrument's current trading price.
type Quote struct {
	Symbol              string   `json:"symbol"`
	ShortName           *string  `json:"shortName,omitempty"`
	LongName            *string  `json:"longName,omitempty"`
	RegularMarketPrice  float64  `json:"regularMarketPrice"`
	RegularMarketChange *float64 `json:"regularMarketChange,omitempty"`
	Currency            *string  `json:"currency,omitempty"`
	MarketState         *string  `json:"marketState,omitempty"`
}

// Name returns the long name, then the short name, then the symbol.
func (q Quote) Name() string {
	if q.LongName != nil && *q.LongName != "" {
		return *q.LongName
	}
	if q.ShortName != nil && *q.ShortName != "" {
		return *q.ShortName
	}
	return q.Symbol
}
