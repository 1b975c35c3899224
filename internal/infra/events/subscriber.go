package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Subscriber подписка на события изменений бронирований из Redis pub/sub
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber создает subscriber поверх существующего Redis-клиента
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe подписывается на изменения бронирований указанной даты.
// Возвращённый канал закрывается при отмене контекста. Сообщения,
// которые не удалось распарсить, пропускаются
func (s *Subscriber) Subscribe(ctx context.Context, date string) (<-chan BookingEvent, error) {
	pubsub := s.client.Subscribe(ctx, channelForDate(date))

	// Дожидаемся подтверждения подписки, чтобы не терять ранние события
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan BookingEvent)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event BookingEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
