// Package cache keeps decoded ledgers in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freight-backoffice/backend/config"
	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

const keyPrefix = "ledger:shipments:"

// NewRedisClient opens a client from the configured URL and checks it answers.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

type cachedShipments struct {
	Shipments []*entity.Shipment      `json:"shipments"`
	Report    *valueobject.LoadReport `json:"report"`
}

// ShipmentCache decorates a shipment ledger with a Redis copy keyed by source.
// Redis failures fall through to the wrapped ledger.
type ShipmentCache struct {
	next   adapter.ShipmentLedger
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewShipmentCache creates a new ShipmentCache. source distinguishes file and database ledgers.
func NewShipmentCache(next adapter.ShipmentLedger, client *redis.Client, source string, ttl time.Duration) *ShipmentCache {
	return &ShipmentCache{next: next, client: client, key: keyPrefix + source, ttl: ttl}
}

// Load returns the cached ledger, loading and caching it on a miss.
func (c *ShipmentCache) Load(ctx context.Context) ([]*entity.Shipment, *valueobject.LoadReport, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var entry cachedShipments
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			if entry.Report == nil {
				entry.Report = valueobject.NewLoadReport()
			}
			return entry.Shipments, entry.Report, nil
		}
		slog.Warn("Discarding unreadable shipment cache entry", "key", c.key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Shipment cache unavailable", "key", c.key, "error", err)
	}

	shipments, report, err := c.next.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	raw, err = json.Marshal(cachedShipments{Shipments: shipments, Report: report})
	if err == nil {
		err = c.client.Set(ctx, c.key, raw, c.ttl).Err()
	}
	if err != nil {
		slog.Warn("Failed to cache shipment ledger", "key", c.key, "error", err)
	}

	return shipments, report, nil
}

// Invalidate drops the cached copy.
func (c *ShipmentCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", c.key, err)
	}
	return nil
}

var (
	_ adapter.ShipmentLedger    = (*ShipmentCache)(nil)
	_ adapter.LedgerInvalidator = (*ShipmentCache)(nil)
)
