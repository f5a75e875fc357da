package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/IBM/sarama"
)

const (
	TopicPlantCreated = "plant.created"
	TopicPlantDeleted = "plant.deleted"
	TopicCareLogged   = "care.logged"
)

// CareEvent представляет событие ухода за растением для Kafka
type CareEvent struct {
	PlantID   string    `json:"plant_id"`
	UserID    string    `json:"user_id"`
	LogID     string    `json:"log_id,omitempty"`
	CareType  string    `json:"care_type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CareProducer интерфейс для отправки событий растений и ухода
type CareProducer interface {
	PublishPlantCreated(ctx context.Context, plant domain.UserPlant) error
	PublishPlantDeleted(ctx context.Context, plantID, userID string) error
	PublishCareLogged(ctx context.Context, log domain.PlantCareLog, userID string) error
	Close() error
}

type kafkaCareProducer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewKafkaCareProducer создает новый продюсер событий ухода
func NewKafkaCareProducer(producer sarama.SyncProducer, log *logger.Logger) CareProducer {
	return &kafkaCareProducer{producer: producer, log: log}
}

// PublishPlantCreated публикует событие о создании растения
func (p *kafkaCareProducer) PublishPlantCreated(ctx context.Context, plant domain.UserPlant) error {
	event := CareEvent{
		PlantID:   plant.ID.String(),
		UserID:    plant.UserID.String(),
		Timestamp: time.Now(),
	}
	return p.publishEvent(TopicPlantCreated, plant.ID.String(), event)
}

// PublishPlantDeleted публикует событие об удалении растения
func (p *kafkaCareProducer) PublishPlantDeleted(ctx context.Context, plantID, userID string) error {
	event := CareEvent{
		PlantID:   plantID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	return p.publishEvent(TopicPlantDeleted, plantID, event)
}

// PublishCareLogged публикует событие о записи ухода
func (p *kafkaCareProducer) PublishCareLogged(ctx context.Context, log domain.PlantCareLog, userID string) error {
	event := CareEvent{
		PlantID:   log.UserPlantID.String(),
		UserID:    userID,
		LogID:     log.ID.String(),
		CareType:  log.CareType,
		Timestamp: time.Now(),
	}
	return p.publishEvent(TopicCareLogged, log.UserPlantID.String(), event)
}

// Close закрывает продюсер
func (p *kafkaCareProducer) Close() error {
	return p.producer.Close()
}

// publishEvent публикует событие в Kafka
func (p *kafkaCareProducer) publishEvent(topic, key string, event CareEvent) error {
	messageValue, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal care event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(messageValue),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(topic),
			},
		},
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish care event: %w", err)
	}

	p.log.Debugw("Care event published", "topic", topic, "partition", partition, "offset", offset)
	return nil
}

// noopProducer заглушка, когда брокеры не сконфигурированы
type noopProducer struct{}

// NewNoopCareProducer создает продюсер-заглушку
func NewNoopCareProducer() CareProducer {
	return noopProducer{}
}

func (noopProducer) PublishPlantCreated(context.Context, domain.UserPlant) error { return nil }

func (noopProducer) PublishPlantDeleted(context.Context, string, string) error { return nil }

func (noopProducer) PublishCareLogged(context.Context, domain.PlantCareLog, string) error {
	return nil
}

func (noopProducer) Close() error { return nil }
