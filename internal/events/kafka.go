package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"hotelstay/internal/domain"
)

// KafkaPublisher writes booking events to one topic, keyed by room id so
// events for a room stay ordered within a partition. The writer is async:
// Publish enqueues and returns, write errors surface in Completion.
type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Printf("kafka publish failed count=%d error=%v", len(messages), err)
				}
			},
		},
	}
}

func (p *KafkaPublisher) PublishBookingEvent(ctx context.Context, ev domain.BookingEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("room-%d", ev.RoomID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
