package app

import (
	"go-vms/internal/config"
	"go-vms/internal/messaging/kafka/producer"
	"go-vms/internal/notification"
	"go-vms/internal/shared/connection"

	"go.uber.org/zap"
)

func newComposer(cfg config.NotifyConfig) *notification.Composer {
	return notification.NewComposer(notification.Addresses{
		Sender:     cfg.Sender,
		WifiTo:     cfg.WifiTo,
		AdminTo:    cfg.AdminTo,
		SecurityCC: cfg.SecurityCC,
	}, notification.LoadLocation(cfg.Timezone))
}

// newMailer sends over SMTP when it is configured and only logs otherwise.
func newMailer(cfg config.NotifyConfig, logger *zap.Logger) notification.Dispatcher {
	smtpCfg := notification.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
	}
	if !smtpCfg.IsConfigured() {
		logger.Warn("SMTP_HOST not set; notifications are logged, not sent")
		return notification.NewLogDispatcher(newComposer(cfg), logger)
	}
	return notification.NewMailer(smtpCfg, newComposer(cfg), logger)
}

// newDispatcher picks the notification transport named by NOTIFY_TRANSPORT.
func newDispatcher(cfg config.Config, logger *zap.Logger) (notification.Dispatcher, func(), error) {
	switch cfg.Notify.Transport {
	case config.TransportKafka:
		writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka, 5)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("notifications published to kafka", zap.String("broker", cfg.Kafka))
		return producer.NewNotificationPublisher(writer, logger), func() { _ = writer.Close() }, nil
	case config.TransportSMTP:
		return newMailer(cfg.Notify, logger), func() {}, nil
	default:
		return notification.NewLogDispatcher(newComposer(cfg.Notify), logger), func() {}, nil
	}
}
