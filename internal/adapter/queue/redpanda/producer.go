// Package redpanda publishes report events to Redpanda/Kafka.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// DefaultTopic receives one record per stored report.
const DefaultTopic = "essay-reports"

// syncProducer is the subset of *kgo.Client the producer uses.
type syncProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Ping(ctx context.Context) error
	Close()
}

// Producer publishes report events and implements domain.EventPublisher.
type Producer struct {
	client syncProducer
	topic  string
}

// NewProducer connects to brokers and ensures topic exists.
func NewProducer(ctx context.Context, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=redpanda.NewProducer: no seed brokers provided")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	slog.Info("creating redpanda producer", slog.Any("brokers", brokers), slog.String("topic", topic))

	kotelService := kotel.NewKotel(
		kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))),
	)
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RequestRetries(10),
		kgo.ProducerBatchMaxBytes(1000000),
		kgo.DialTimeout(10*time.Second),
		kgo.WithHooks(kotelService.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=redpanda.NewProducer: %w", err)
	}
	if err := createTopicIfNotExists(ctx, client, topic, 1, 1); err != nil {
		// the topic may exist already or be auto-created by the broker
		slog.Warn("failed to create topic", slog.String("topic", topic), slog.Any("error", err))
	}
	return newProducer(client, topic), nil
}

func newProducer(client syncProducer, topic string) *Producer {
	return &Producer{client: client, topic: topic}
}

// PublishReport writes ev keyed by its report id.
func (p *Producer) PublishReport(ctx domain.Context, ev domain.ReportEvent) error {
	rec, err := buildRecord(p.topic, ev)
	if err != nil {
		return fmt.Errorf("op=redpanda.PublishReport: %w", err)
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		slog.Error("failed to produce report event",
			slog.String("report_id", ev.ReportID),
			slog.String("topic", p.topic),
			slog.Any("error", err))
		return fmt.Errorf("op=redpanda.PublishReport: %w", err)
	}
	slog.Debug("report event published", slog.String("report_id", ev.ReportID), slog.String("topic", p.topic))
	return nil
}

func buildRecord(topic string, ev domain.ReportEvent) (*kgo.Record, error) {
	if ev.ReportID == "" {
		return nil, fmt.Errorf("%w: empty report id", domain.ErrInvalidArgument)
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(ev.ReportID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "report_id", Value: []byte(ev.ReportID)},
			{Key: "score", Value: []byte(strconv.Itoa(ev.Score))},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}, nil
}

// Ping checks broker connectivity.
func (p *Producer) Ping(ctx context.Context) error { return p.client.Ping(ctx) }

// Close closes the underlying client.
func (p *Producer) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}

// NoopPublisher drops events; used when no brokers are configured.
type NoopPublisher struct{}

// PublishReport implements domain.EventPublisher.
func (NoopPublisher) PublishReport(domain.Context, domain.ReportEvent) error { return nil }
