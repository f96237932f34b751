package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"order_intake/internal/models"
)

type Client struct {
	rdb *redis.Client
}

// CartSession is the live checkout state for one customer session:
// the cart lines plus the currently applied discount codes. Amounts are
// recomputed on every mutation, never trusted from the stored copy.
type CartSession struct {
	SessionID    string                   `json:"session_id"`
	DeliveryDate string                   `json:"delivery_date,omitempty"`
	Lines        []models.CartLine        `json:"lines"`
	Discounts    []models.AppliedDiscount `json:"discounts"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Cart session management

func (c *Client) SetCartSession(sessionID string, session *CartSession, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal cart session: %w", err)
	}

	return c.rdb.Set(ctx, "cart:"+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetCartSession(sessionID string) (*CartSession, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cart session not found")
		}
		return nil, fmt.Errorf("failed to get cart session: %w", err)
	}

	var session CartSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart session: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteCartSession(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+sessionID).Err()
}

// Snapshot caching. Repositories stay authoritative; these entries only
// short-circuit repeated settings reads between writes.

func (c *Client) SetCached(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cached value: %w", err)
	}

	return c.rdb.Set(ctx, "cache:"+key, jsonData, ttl).Err()
}

func (c *Client) GetCached(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cache:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("cache miss")
		}
		return fmt.Errorf("failed to get cached value: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) InvalidateCached(key string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cache:"+key).Err()
}

// Per-date checkout locks. Submitting an order for a delivery date runs
// inside this lock so two concurrent checkouts can't both pass the
// availability check and over-commit the day.

func (c *Client) AcquireDateLock(date string, ttl time.Duration) (bool, error) {
	ctx := context.Background()
	ok, err := c.rdb.SetNX(ctx, "capacity_lock:"+date, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire date lock: %w", err)
	}
	return ok, nil
}

func (c *Client) ReleaseDateLock(date string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "capacity_lock:"+date).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
