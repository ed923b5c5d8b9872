package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/barriolink/community-events-backend/config"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the activity-stream producer. Disabled when
// KAFKA_BROKERS is not configured; publishing then becomes a no-op.
func InitializeKafka(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("ℹ️  KAFKA_BROKERS not set, activity stream disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}

	log.Printf("✅ Kafka activity stream enabled (topic %s)", cfg.KafkaTopic)
}

// PublishActivity emits one domain action to the activity stream.
// Fire-and-forget: failures are logged, never surfaced to the caller.
func PublishActivity(ctx context.Context, action string, payload map[string]interface{}) {
	if kafkaWriter == nil {
		return
	}

	body := map[string]interface{}{
		"action":      action,
		"payload":     payload,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	}

	value, err := json.Marshal(body)
	if err != nil {
		log.Printf("⚠️  Kafka payload marshal failed for %s: %v", action, err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(action),
		Value: value,
	}); err != nil {
		log.Printf("⚠️  Kafka publish failed for %s: %v", action, err)
	}
}

// CloseKafka flushes and closes the producer on shutdown.
func CloseKafka() {
	if kafkaWriter != nil {
		_ = kafkaWriter.Close()
	}
}
