package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-vms/internal/config"
	"go-vms/internal/messaging/kafka/consumer"

	"go.uber.org/zap"
)

const notificationGroupID = "go-vms-notification-mailer"

// RunConsumer turns notification events into email until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := consumer.NewNotificationReader(cfg.Kafka, notificationGroupID)
	defer reader.Close()

	mailer := newMailer(cfg.Notify, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeNotifications(ctx, reader, mailer, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
