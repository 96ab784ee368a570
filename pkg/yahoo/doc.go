// Package yahoo is a client for the Yahoo Finance quote, search and chart
// endpoints.
//
// Responses are decoded into private wire schemas and mapped onto the public
// Quote, Symbol and Chart values. The package does not cache, retry or
// rate-limit; every call is one GET and one decode.
//
//	api := yahoo.New()
//	quote, err := api.GetQuote(ctx, "AAPL")
package yahoo
