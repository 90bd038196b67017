package facts

import (
	"context"
	"time"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/pkg/logger"
	"github.com/sehyunkim/tacscreen/pkg/redisutil"
)

// CachedFactProvider wraps a FactProvider with a Redis snapshot cache.
// Scrape targets are slow and rate limited, so a hit skips the round trip
// entirely. Cache failures fall through to the underlying provider.
type CachedFactProvider struct {
	inner  contracts.FactProvider
	cache  *redisutil.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedFactProvider wraps inner with a TTL cache.
func NewCachedFactProvider(inner contracts.FactProvider, cache *redisutil.Cache, ttl time.Duration, log *logger.Logger) *CachedFactProvider {
	return &CachedFactProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// GetFacts implements contracts.FactProvider.
func (p *CachedFactProvider) GetFacts(ctx context.Context, symbol string) (map[string]string, error) {
	key := redisutil.FactsKey(symbol)

	var cached map[string]string
	if found, err := p.cache.Get(ctx, key, &cached); err == nil && found {
		p.logger.WithField("symbol", symbol).Debug("Fact snapshot cache hit")
		return cached, nil
	}

	raw, err := p.inner.GetFacts(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, raw, p.ttl); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Fact snapshot cache write failed")
	}
	return raw, nil
}

// CachedSentimentProvider wraps a SentimentProvider with the same cache.
type CachedSentimentProvider struct {
	inner  contracts.SentimentProvider
	cache  *redisutil.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedSentimentProvider wraps inner with a TTL cache.
func NewCachedSentimentProvider(inner contracts.SentimentProvider, cache *redisutil.Cache, ttl time.Duration, log *logger.Logger) *CachedSentimentProvider {
	return &CachedSentimentProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// GetSentiment implements contracts.SentimentProvider.
func (p *CachedSentimentProvider) GetSentiment(ctx context.Context, symbol string) (float64, error) {
	key := redisutil.SentimentKey(symbol)

	var cached float64
	if found, err := p.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	fraction, err := p.inner.GetSentiment(ctx, symbol)
	if err != nil {
		return 0, err
	}

	if err := p.cache.Set(ctx, key, fraction, p.ttl); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Sentiment cache write failed")
	}
	return fraction, nil
}
