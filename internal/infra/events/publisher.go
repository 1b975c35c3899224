package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher публикует события изменений бронирований в Redis pub/sub
type Publisher struct {
	client *redis.Client
}

// NewPublisher создает publisher поверх существующего Redis-клиента
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// channelForDate имя канала для подписки на изменения бронирований одной даты
func channelForDate(date string) string {
	return fmt.Sprintf("bookings:%s", date)
}

// Publish публикует событие в канал соответствующей даты
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, channelForDate(event.BookingDate), payload).Err(); err != nil {
		return fmt.Errorf("events: publish to redis: %w", err)
	}

	return nil
}
