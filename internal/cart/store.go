package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tailorhub/internal/models"
)

// ErrLineNotFound is returned when a positional remove misses the list.
var ErrLineNotFound = errors.New("cart line not found")

// Store keeps one cart per session id in Redis. The whole list is read,
// modified and written back as a single JSON value on every mutation, so
// within one request there are no partial-update races; the TTL is refreshed
// on each write so abandoned carts age out.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a Redis-backed cart store.
func NewStore(addr, password string, ttl time.Duration) *Store {
	return NewStoreWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	}), ttl)
}

// NewStoreWithClient wraps an existing client; tests use this with miniredis.
func NewStoreWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get returns the cart for a session; a missing key is an empty cart.
func (s *Store) Get(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart read: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("cart decode: %w", err)
	}
	return lines, nil
}

// Add appends a design+fabric pairing. The line total is computed here from
// the snapshots being stored, never taken from the caller. There is no dedup
// and no quantity: re-adding the same pair appends a second line.
func (s *Store) Add(ctx context.Context, sessionID string, design, fabric models.CatalogItem) (models.CartLine, error) {
	lines, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.CartLine{}, err
	}

	line := models.CartLine{
		Design:     design.Snapshot(),
		Fabric:     fabric.Snapshot(),
		TotalPrice: design.Price + fabric.Price,
		AddedAt:    time.Now(),
	}
	lines = append(lines, line)

	if err := s.write(ctx, sessionID, lines); err != nil {
		return models.CartLine{}, err
	}
	return line, nil
}

// Remove drops the line at the given position.
func (s *Store) Remove(ctx context.Context, sessionID string, index int) error {
	lines, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(lines) {
		return ErrLineNotFound
	}

	lines = append(lines[:index], lines[index+1:]...)
	return s.write(ctx, sessionID, lines)
}

// Clear empties the cart. Checkout calls this only after the order write
// succeeded; a failed checkout leaves the cart as it was.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, sessionID string, lines []models.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart write: %w", err)
	}
	return nil
}

// Total sums the line totals. Rounding to two decimals happens only at the
// response edge, not here.
func Total(lines []models.CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.TotalPrice
	}
	return sum
}
