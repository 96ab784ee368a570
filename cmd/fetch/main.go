package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"stocksapi/internal/config"
	"stocksapi/internal/httpx"
	"stocksapi/internal/logger"
	"stocksapi/pkg/yahoo"
)

func main() {
	var symbolsCSV string
	var search string
	var history string
	var interval string
	var bars bool
	var timeout int
	var configPath string

	flag.StringVar(&symbolsCSV, "symbols", "", "comma-separated tickers to quote (e.g., AAPL,MSFT)")
	flag.StringVar(&search, "search", "", "free-text symbol search")
	flag.StringVar(&history, "history", "", "ticker to fetch chart history for")
	flag.StringVar(&interval, "interval", "1d", "bar interval for -history (e.g., 1m,5m,1d)")
	flag.BoolVar(&bars, "bars", false, "print -history as rows instead of parallel series")
	flag.IntVar(&timeout, "timeout", 0, "request timeout seconds (default from config)")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("config", err)
	}
	log := logger.Init(cfg.Log.Level, "text")
	if timeout > 0 {
		cfg.Yahoo.TimeoutSec = timeout
	}

	httpClient := httpx.New(0)
	if cfg.Yahoo.UserAgent != "" {
		httpClient.UserAgent = cfg.Yahoo.UserAgent
	}
	api := yahoo.New(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithTimeout(time.Duration(cfg.Yahoo.TimeoutSec)*time.Second),
		yahoo.WithLogger(log),
	)

	ctx := context.Background()
	var out any
	switch {
	case symbolsCSV != "":
		out, err = api.GetQuotes(ctx, config.SplitCSV(symbolsCSV))
	case search != "":
		out, err = api.SearchSymbols(ctx, search)
	case history != "":
		var chart yahoo.Chart
		chart, err = api.GetHistory(ctx, history, interval)
		if bars {
			out = chart.Bars()
		} else {
			out = chart
		}
	default:
		fmt.Fprintln(os.Stderr, "one of -symbols, -search or -history is required")
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fatal("fetch", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		fatal("encode", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
