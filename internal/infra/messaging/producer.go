package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var producerTracer = otel.Tracer("restaurant-tickets/messaging")

// messageWriterはkafka.Writerのうち使う部分だけ（テストで差し替える）
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// 1トピック=1Writer
type Producer struct {
	writer messageWriter
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
		},
	}
}

// key=注文ID。同じ注文のイベントは同じパーティションに入る
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, NewMessageCarrier(&msg))

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// 注文・支払いイベントの送信口（usecase.EventPublisherを満たす）
type EventPublisher struct {
	orders   *Producer
	payments *Producer
}

func NewEventPublisher(brokers []string) *EventPublisher {
	return &EventPublisher{
		orders:   NewProducer(brokers, model.TopicOrderPlaced),
		payments: NewProducer(brokers, model.TopicPaymentRecorded),
	}
}

func (p *EventPublisher) PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error {
	return p.orders.Publish(ctx, ev.OrderID, ev)
}

func (p *EventPublisher) PublishPaymentRecorded(ctx context.Context, ev model.PaymentRecordedEvent) error {
	return p.payments.Publish(ctx, ev.OrderID, ev)
}

func (p *EventPublisher) Close() error {
	return errors.Join(p.orders.Close(), p.payments.Close())
}
