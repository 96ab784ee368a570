package provider

import (
	"context"
	"time"
)

// Quote is the normalized snapshot handed to the watcher and the recorder.
// Optional service fields are flattened to their zero values.
type Quote struct {
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Change      *float64  `json:"change,omitempty"`
	Currency    string    `json:"currency"`
	MarketState string    `json:"market_state"`
	Source      string    `json:"source"`
	ReceivedAt  time.Time `json:"received_at"`
}

type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbols []string) ([]Quote, error)
}
