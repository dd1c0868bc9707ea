package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

const (
	TopicNotificationEvents = "notification.events"

	EventNotificationRecorded = "notification.recorded"
	schemaVersion             = "v1"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// NotificationEvent is the payload of EventNotificationRecorded.
type NotificationEvent struct {
	NotificationID int64                       `json:"notification_id"`
	UserID         int64                       `json:"user_id"`
	ProductID      int64                       `json:"product_id,omitempty"`
	Type           warranty.NotificationType   `json:"type"`
	Status         warranty.NotificationStatus `json:"status"`
	Recipient      string                      `json:"recipient,omitempty"`
	Error          string                      `json:"error,omitempty"`
	OccurredAt     time.Time                   `json:"occurred_at"`
}

// NotificationEventFrom builds the event for a stored notification.
func NotificationEventFrom(n *warranty.Notification, recipient string, now time.Time) NotificationEvent {
	at := now.UTC()
	if n.SentAt != nil {
		at = n.SentAt.UTC()
	}
	return NotificationEvent{
		NotificationID: n.ID,
		UserID:         n.UserID,
		ProductID:      n.ProductID,
		Type:           n.Type,
		Status:         n.Status,
		Recipient:      recipient,
		Error:          n.ErrorMessage,
		OccurredAt:     at,
	}
}

func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       data,
	}, nil
}

func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.ErrCodeValidation, "empty event payload")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal payload")
	}
	return nil
}

// ToMessage encodes the envelope for topic, keyed by key.
func (e *EventEnvelope) ToMessage(topic string, key []byte) (*ProducerMessage, error) {
	val, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	return &ProducerMessage{
		Topic: topic,
		Key:   key,
		Value: val,
		Headers: map[string]string{
			"event_type":     e.EventType,
			"source_service": e.Source,
			"schema_version": e.SchemaVersion,
		},
		Timestamp: e.Timestamp,
	}, nil
}

func MessageToEventEnvelope(msg *Message) (*EventEnvelope, error) {
	if len(msg.Value) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "empty message value")
	}
	var env EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal envelope")
	}
	return &env, nil
}

// Publisher is the part of Producer the event publisher needs.
type Publisher interface {
	Publish(ctx context.Context, msg *ProducerMessage) error
}

// NotificationPublisher publishes notification events keyed by user id, so
// one user's events stay ordered on a single partition.
type NotificationPublisher struct {
	pub    Publisher
	topic  string
	source string
}

func NewNotificationPublisher(pub Publisher, topic, source string) *NotificationPublisher {
	if topic == "" {
		topic = TopicNotificationEvents
	}
	return &NotificationPublisher{pub: pub, topic: topic, source: source}
}

func (p *NotificationPublisher) PublishNotification(ctx context.Context, ev NotificationEvent) error {
	env, err := NewEventEnvelope(EventNotificationRecorded, p.source, ev)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(p.topic, []byte(strconv.FormatInt(ev.UserID, 10)))
	if err != nil {
		return err
	}
	return p.pub.Publish(ctx, msg)
}

// DecodeNotificationEvent unpacks a consumed notification event.
func DecodeNotificationEvent(msg *Message) (NotificationEvent, error) {
	var ev NotificationEvent
	env, err := MessageToEventEnvelope(msg)
	if err != nil {
		return ev, err
	}
	if env.EventType != EventNotificationRecorded {
		return ev, errors.New(errors.ErrCodeValidation, "unexpected event type").WithDetail(env.EventType)
	}
	err = env.DecodePayload(&ev)
	return ev, err
}

// ConnInterface abstracts kafka.Conn for testing.
type ConnInterface interface {
	CreateTopics(topics ...kafka.TopicConfig) error
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	Close() error
}

// TopicManager creates the topics Warrify publishes to.
type TopicManager struct {
	conn   ConnInterface
	logger logging.Logger
}

func NewTopicManager(brokers []string, logger logging.Logger) (*TopicManager, error) {
	if len(brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "brokers required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to dial kafka")
	}
	return &TopicManager{conn: conn, logger: logger}, nil
}

func (m *TopicManager) CreateTopic(ctx context.Context, cfg TopicConfig) error {
	if cfg.Name == "" {
		return errors.New(errors.ErrCodeValidation, "topic name required")
	}
	if cfg.NumPartitions <= 0 || cfg.ReplicationFactor <= 0 {
		return errors.New(errors.ErrCodeValidation, "partitions and replication factor must be > 0")
	}
	if exists, _ := m.TopicExists(ctx, cfg.Name); exists {
		return nil
	}

	kCfg := kafka.TopicConfig{
		Topic:             cfg.Name,
		NumPartitions:     cfg.NumPartitions,
		ReplicationFactor: cfg.ReplicationFactor,
	}
	if cfg.RetentionMs > 0 {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries, kafka.ConfigEntry{ConfigName: "retention.ms", ConfigValue: strconv.FormatInt(cfg.RetentionMs, 10)})
	}
	if cfg.CleanupPolicy != "" {
		kCfg.ConfigEntries = append(kCfg.ConfigEntries, kafka.ConfigEntry{ConfigName: "cleanup.policy", ConfigValue: cfg.CleanupPolicy})
	}

	if err := m.conn.CreateTopics(kCfg); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to create topic").WithDetail(cfg.Name)
	}
	m.logger.Info("topic created", logging.String("topic", cfg.Name))
	return nil
}

func (m *TopicManager) TopicExists(_ context.Context, name string) (bool, error) {
	partitions, err := m.conn.ReadPartitions(name)
	if err != nil {
		return false, nil
	}
	return len(partitions) > 0, nil
}

// EnsureTopics creates topic with the default layout when missing.
func (m *TopicManager) EnsureTopics(ctx context.Context, topic string) error {
	for _, t := range DefaultTopics(topic) {
		if err := m.CreateTopic(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (m *TopicManager) Close() error {
	return m.conn.Close()
}

// DefaultTopics lists the topics a deployment needs.
func DefaultTopics(notificationTopic string) []TopicConfig {
	if notificationTopic == "" {
		notificationTopic = TopicNotificationEvents
	}
	return []TopicConfig{
		{Name: notificationTopic, NumPartitions: 3, ReplicationFactor: 1, RetentionMs: 7 * 24 * 3600 * 1000},
	}
}
