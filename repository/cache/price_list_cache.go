package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fnp-marketplace/pricing"
)

const keyPrefix = "pricelist:"

// PriceListCache is the short-lived read cache in front of the price list repository
type PriceListCache interface {
	Get(ctx context.Context, id string) (*pricing.ProducerPriceList, bool, error)
	Set(ctx context.Context, list *pricing.ProducerPriceList) error
	Delete(ctx context.Context, id string) error
}

// RedisPriceListCache keeps price lists in Redis for a fixed TTL
type RedisPriceListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPriceListCache connects to addr and checks the connection with a ping
func NewRedisPriceListCache(ctx context.Context, addr, password string, ttl time.Duration) (*RedisPriceListCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisPriceListCache{client: client, ttl: ttl}, nil
}

// Get reports a miss as (nil, false, nil)
func (c *RedisPriceListCache) Get(ctx context.Context, id string) (*pricing.ProducerPriceList, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached price list: %w", err)
	}
	l, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return l, true, nil
}

// Set stores list for the configured TTL
func (c *RedisPriceListCache) Set(ctx context.Context, list *pricing.ProducerPriceList) error {
	data, err := encode(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+list.ID, data, c.ttl).Err()
}

// Delete evicts one price list
func (c *RedisPriceListCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, keyPrefix+id).Err()
}

// Close releases the redis connection pool
func (c *RedisPriceListCache) Close() error {
	return c.client.Close()
}

// NopPriceListCache is used when REDIS_ADDR is unset. Every read is a miss.
type NopPriceListCache struct{}

func (NopPriceListCache) Get(context.Context, string) (*pricing.ProducerPriceList, bool, error) {
	return nil, false, nil
}
func (NopPriceListCache) Set(context.Context, *pricing.ProducerPriceList) error { return nil }
func (NopPriceListCache) Delete(context.Context, string) error                  { return nil }

var (
	_ PriceListCache = (*RedisPriceListCache)(nil)
	_ PriceListCache = NopPriceListCache{}
)

type entry struct {
	List      json.RawMessage `json:"list"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// encode stores the form shape so hidden categories keep their prices, as in the repository.
func encode(list *pricing.ProducerPriceList) ([]byte, error) {
	doc, err := json.Marshal(list.FormView())
	if err != nil {
		return nil, fmt.Errorf("failed to encode price list: %w", err)
	}
	return json.Marshal(entry{List: doc, CreatedAt: list.CreatedAt, UpdatedAt: list.UpdatedAt})
}

func decode(data []byte) (*pricing.ProducerPriceList, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode cached price list: %w", err)
	}
	l, err := pricing.ParsePriceList(e.List)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached price list: %w", err)
	}
	l.CreatedAt, l.UpdatedAt = e.CreatedAt, e.UpdatedAt
	return l, nil
}
