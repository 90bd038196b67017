package commands

import (
	"context"
	"fmt"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/external/finviz"
	"github.com/sehyunkim/tacscreen/internal/external/sentiment"
	"github.com/sehyunkim/tacscreen/internal/external/yahoo"
	"github.com/sehyunkim/tacscreen/internal/facts"
	"github.com/sehyunkim/tacscreen/internal/indicator"
	"github.com/sehyunkim/tacscreen/internal/pricecache"
	"github.com/sehyunkim/tacscreen/internal/profile"
	"github.com/sehyunkim/tacscreen/internal/screener"
	"github.com/sehyunkim/tacscreen/pkg/config"
	"github.com/sehyunkim/tacscreen/pkg/database"
	"github.com/sehyunkim/tacscreen/pkg/httputil"
	"github.com/sehyunkim/tacscreen/pkg/logger"
	"github.com/sehyunkim/tacscreen/pkg/redisutil"
)

// buildScreener wires the full pipeline from config: providers, caches,
// battery, and orchestrator. The returned cleanup closes any connections.
// ⭐ SSOT: 의존성 조립은 이 함수에서만
func buildScreener(cfg *config.Config, log *logger.Logger) (*screener.Screener, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Market data, optionally behind the Postgres daily-bar cache
	yahooHTTP := httputil.New(log).WithRateLimit(cfg.Yahoo.RatePerSecond, cfg.Yahoo.Burst)
	var data contracts.MarketDataProvider = yahoo.NewClient(cfg.Yahoo, yahooHTTP, log)

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		cleanups = append(cleanups, db.Close)

		cache := pricecache.New(db, data, log)
		if err := cache.EnsureSchema(context.Background()); err != nil {
			cleanup()
			return nil, nil, err
		}
		data = cache
		log.Info("Price cache enabled")
	}

	// Redis-backed fact cache (no-op when disabled)
	redisClient, err := redisutil.New(cfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	cleanups = append(cleanups, func() { _ = redisClient.Close() })
	factCache := redisutil.NewCache(redisClient, "tacscreen")

	finvizHTTP := httputil.New(log).WithRateLimit(cfg.Finviz.RatePerSecond, cfg.Finviz.Burst)
	var factProvider contracts.FactProvider = finviz.NewClient(cfg.Finviz, finvizHTTP, log)
	factProvider = facts.NewCachedFactProvider(factProvider, factCache, cfg.Redis.FactTTL, log)

	var sentimentProvider contracts.SentimentProvider
	if cfg.Sentiment.BaseURL != "" {
		sentimentProvider = sentiment.NewClient(cfg.Sentiment, httputil.New(log), log)
		sentimentProvider = facts.NewCachedSentimentProvider(sentimentProvider, factCache, cfg.Redis.FactTTL, log)
	}

	adapter := facts.NewAdapter(factProvider, sentimentProvider, log)
	battery := indicator.NewBattery(log)

	scr := screener.New(data, adapter, battery, log, screener.Config{
		Workers:      cfg.Screener.Workers,
		FetchTimeout: cfg.Screener.FetchTimeout,
	})
	return scr, cleanup, nil
}

// loadProfile resolves the active rule catalogue: the --profile flag wins,
// then SCREENER_PROFILE, then the built-in default.
func loadProfile(cfg *config.Config) (*profile.Profile, error) {
	path := profilePath
	if path == "" {
		path = cfg.Screener.ProfilePath
	}
	if path == "" {
		return profile.Default(), nil
	}

	p, _, err := profile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", path, err)
	}
	return p, nil
}

// newLogger builds the logger, honoring --verbose.
func newLogger(cfg *config.Config) *logger.Logger {
	if verbose {
		cfg.LogLevel = "debug"
	}
	return logger.New(cfg)
}
