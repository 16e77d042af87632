package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/IwanSuryana77/PresenceApp/internal/events"
	"github.com/IwanSuryana77/PresenceApp/internal/message"
	"github.com/IwanSuryana77/PresenceApp/internal/messaging/kafka/consumer"
	"github.com/IwanSuryana77/PresenceApp/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	messageRepo := message.NewRepository(gormDB)
	messageService := message.NewService(sqlDB, messageRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One reader per topic, both feeding the same notification path.
	topics := []string{events.LeaveResolvedTopic, events.ReimbursementResolvedTopic}
	for _, topic := range topics {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        "presence-app-notifications",
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
		defer reader.Close()

		go consumer.ConsumeWorkflowResolved(ctx, reader, messageService, logger)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
