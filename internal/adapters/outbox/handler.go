package outbox

import (
	"context"
	"time"

	"github.com/newmandigital/catalog/internal/adapters/config"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/port"
)

// Handler relays outbox entries to the broker, oldest first.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Drain(ctx)
		}
	}
}

// Drain publishes one batch and returns how many entries went out. It stops
// at the first publish failure so later events for the same product are not
// delivered ahead of an earlier one.
func (h *Handler) Drain(ctx context.Context) int {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0
	}

	published := 0
	for _, entry := range entries {
		attrs := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, attrs)
			return published
		}
		published++

		logger.Debug(ctx, "outbox: event published", attrs)

		// A failed delete means the entry is published again on the next
		// tick; consumers see at-least-once delivery.
		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, attrs)
		}
	}
	return published
}
