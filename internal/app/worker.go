package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/uratMeds/LMS-API/internal/messaging/kafka"
	"github.com/uratMeds/LMS-API/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker drives the outbox publisher until ctx is canceled.
func RunWorker(ctx context.Context) error {
	gormDB, err := openDatabase()
	if err != nil {
		return err
	}
	if err := gormDB.AutoMigrate(&kafka.OutboxEvent{}); err != nil {
		return err
	}

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}

	writer := &kafkago.Writer{
		Addr:     kafkago.TCP(strings.Split(brokers, ",")...),
		Balancer: &kafkago.LeastBytes{},
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, zap.L(), 3*time.Second)
	return nil
}
