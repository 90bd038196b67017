// Package pricecache is a read-through Postgres cache for daily bars,
// wrapped around the market data provider. It caches raw provider data only;
// derived values and scores are never persisted.
package pricecache

import (
	"context"
	"fmt"
	"time"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/pkg/database"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Bars newer than this may still be missing upstream (weekends, holidays,
// publication lag), so coverage is judged with this slack.
const freshnessSlack = 4 * 24 * time.Hour

// Cache implements contracts.MarketDataProvider by serving cached bars when
// they cover the requested range and falling back to the source otherwise
// ⭐ SSOT: 일봉 캐시 접근은 여기서만
type Cache struct {
	db     *database.DB
	source contracts.MarketDataProvider
	logger *logger.Logger
}

// New creates a read-through price cache over source.
func New(db *database.DB, source contracts.MarketDataProvider, log *logger.Logger) *Cache {
	return &Cache{
		db:     db,
		source: source,
		logger: log.WithField("module", "pricecache"),
	}
}

// EnsureSchema creates the daily bar table when missing.
func (c *Cache) EnsureSchema(ctx context.Context) error {
	_, err := c.db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS daily_bars (
			symbol     TEXT             NOT NULL,
			trade_date DATE             NOT NULL,
			open       DOUBLE PRECISION NOT NULL,
			high       DOUBLE PRECISION NOT NULL,
			low        DOUBLE PRECISION NOT NULL,
			close      DOUBLE PRECISION NOT NULL,
			volume     DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (symbol, trade_date)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure daily_bars schema: %w", err)
	}
	return nil
}

// GetSeries implements contracts.MarketDataProvider.
func (c *Cache) GetSeries(ctx context.Context, symbol string, start, end time.Time) (contracts.Series, error) {
	cached, err := c.load(ctx, symbol, start, end)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Cache read failed, fetching from source")
	} else if Covers(cached.Points, start, end) {
		c.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"rows":   cached.Len(),
		}).Debug("Served series from cache")
		return cached, nil
	}

	fresh, err := c.source.GetSeries(ctx, symbol, start, end)
	if err != nil {
		return contracts.Series{}, err
	}

	if err := c.store(ctx, fresh); err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Cache write failed")
	}
	return fresh, nil
}

// Covers reports whether cached points span [start, end] closely enough to
// skip the upstream fetch. The tail may lag by the freshness slack.
func Covers(points []contracts.PricePoint, start, end time.Time) bool {
	if len(points) == 0 {
		return false
	}
	first := points[0].Date
	last := points[len(points)-1].Date
	return !first.After(start.Add(freshnessSlack)) && !last.Before(end.Add(-freshnessSlack))
}

func (c *Cache) load(ctx context.Context, symbol string, start, end time.Time) (contracts.Series, error) {
	rows, err := c.db.Pool.Query(ctx, `
		SELECT trade_date, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`, symbol, start, end)
	if err != nil {
		return contracts.Series{}, err
	}
	defer rows.Close()

	series := contracts.Series{Symbol: symbol}
	for rows.Next() {
		var p contracts.PricePoint
		if err := rows.Scan(&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return contracts.Series{}, err
		}
		series.Points = append(series.Points, p)
	}
	return series, rows.Err()
}

func (c *Cache) store(ctx context.Context, s contracts.Series) error {
	for _, p := range s.Points {
		_, err := c.db.Pool.Exec(ctx, `
			INSERT INTO daily_bars (symbol, trade_date, open, high, low, close, volume)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (symbol, trade_date) DO UPDATE SET
				open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
				close = EXCLUDED.close, volume = EXCLUDED.volume
		`, s.Symbol, p.Date, p.Open, p.High, p.Low, p.Close, p.Volume)
		if err != nil {
			return err
		}
	}
	return nil
}
