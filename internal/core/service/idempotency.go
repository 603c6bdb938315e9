package service

import (
	"context"
	"fmt"
	"time"

	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/port"
	"github.com/newmandigital/catalog/internal/core/serviceerrors"
	"github.com/newmandigital/catalog/internal/core/utils"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyEntry[T any] struct {
	Status      IdempotencyStatus `json:"status"`
	PayloadHash string            `json:"payload_hash"`
	Result      *T                `json:"result,omitempty"`
	ClaimedAt   time.Time         `json:"claimed_at"`
}

type IdempotencyService[T any] struct {
	cache        port.CachePort[IdempotencyEntry[T]]
	ttl          time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewIdempotencyService[T any](
	cache port.CachePort[IdempotencyEntry[T]],
	ttl time.Duration,
	pollInterval time.Duration,
	pollTimeout time.Duration,
) *IdempotencyService[T] {
	return &IdempotencyService[T]{
		cache:        cache,
		ttl:          ttl,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

func (s *IdempotencyService[T]) entryKey(key string) string {
	return "idempotency:" + key
}

// Do runs fn at most once per key and payload. A repeated call with the same
// payload gets the first call's result; a different payload is rejected.
// An empty key runs fn unconditionally.
func (s *IdempotencyService[T]) Do(ctx context.Context, key string, payload any, fn func(ctx context.Context) (*T, error)) (*T, error) {
	if key == "" {
		return fn(ctx)
	}

	payloadHash, err := utils.HashPayload(payload)
	if err != nil {
		return nil, err
	}

	existing, err := s.Claim(ctx, key, payloadHash)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": key,
		})
		return nil, err
	}
	if existing != nil {
		logger.Info(ctx, "idempotency: replaying stored result", map[string]any{
			"idempotency_key": key,
		})
		return existing, nil
	}

	result, err := fn(ctx)
	if err != nil {
		s.Release(ctx, key)
		return nil, err
	}

	s.Complete(ctx, key, payloadHash, result)
	return result, nil
}

func (s *IdempotencyService[T]) Claim(ctx context.Context, key, payloadHash string) (*T, error) {
	claimed, err := s.cache.SetNX(ctx, s.entryKey(key), &IdempotencyEntry[T]{
		Status:      IdempotencyProcessing,
		PayloadHash: payloadHash,
		ClaimedAt:   time.Now().UTC(),
	}, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("idempotency claim failed: %w", err)
	}

	if claimed {
		return nil, nil
	}

	return s.waitForCompletion(ctx, key, payloadHash)
}

func (s *IdempotencyService[T]) Complete(ctx context.Context, key, payloadHash string, result *T) {
	err := s.cache.Set(ctx, s.entryKey(key), &IdempotencyEntry[T]{
		Status:      IdempotencyCompleted,
		PayloadHash: payloadHash,
		Result:      result,
		ClaimedAt:   time.Now().UTC(),
	}, s.ttl)
	if err != nil {
		logger.Error(ctx, "idempotency: complete failed", err, map[string]any{
			"idempotency_key": key,
			"payload_hash":    payloadHash,
		})
	}
}

func (s *IdempotencyService[T]) Release(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, s.entryKey(key)); err != nil {
		logger.Error(ctx, "idempotency: release failed", err, map[string]any{
			"idempotency_key": key,
		})
	}
}

// lookup returns the stored result once the first request has completed,
// (nil, nil) while it is still in flight.
func (s *IdempotencyService[T]) lookup(ctx context.Context, key, payloadHash string) (*T, error) {
	entry, err := s.cache.Get(ctx, s.entryKey(key))
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup failed: %w", err)
	}
	switch {
	case entry == nil:
		return nil, serviceerrors.NewConflictError("previous request failed, retry with the same key")
	case entry.PayloadHash != payloadHash:
		return nil, serviceerrors.NewUnprocessableEntityError("idempotency key already used with a different payload")
	case entry.Status == IdempotencyCompleted:
		return entry.Result, nil
	}
	return nil, nil
}

func (s *IdempotencyService[T]) waitForCompletion(ctx context.Context, key, payloadHash string) (*T, error) {
	result, err := s.lookup(ctx, key, payloadHash)
	if result != nil || err != nil {
		return result, err
	}

	timeout := time.NewTimer(s.pollTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout.C:
			return nil, serviceerrors.NewConflictError("idempotency key still being processed, timed out")
		case <-ticker.C:
			result, err := s.lookup(ctx, key, payloadHash)
			if result != nil || err != nil {
				return result, err
			}
		}
	}
}
