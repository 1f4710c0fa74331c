package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/container"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
	"github.com/rishusinha26/portfolio-backend/pkg/mailer"
)

// alert_worker consumes delivery-failure alerts and emails the operator.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-alert-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQAlertQueue == "" {
		logger.Fatal("RabbitMQ not configured (RABBITMQ_URL / RABBITMQ_ALERT_QUEUE)")
	}

	sender, err := alertSender(cfg)
	if err != nil {
		logger.Fatalf("mail relay not configured: %v", err)
	}
	svc := application.NewDeliveryAlertService(sender, cfg, logger)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQAlertQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			handle(ctx, svc, logger, msg)
		}
	}()

	logger.WithFields(logrus.Fields{"queue": cfg.RabbitMQAlertQueue, "provider": sender.Provider()}).Info("alert worker listening")
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func handle(ctx context.Context, svc *application.DeliveryAlertService, logger logrus.FieldLogger, msg amqp.Delivery) {
	err := svc.Handle(ctx, msg.Body)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, application.ErrValidation):
		logger.WithError(err).Warn("dropping bad alert")
		_ = msg.Nack(false, false)
	default:
		logger.WithError(err).Error("alert send failed, requeueing")
		// avoid a hot loop when the relay is down
		time.Sleep(time.Second)
		_ = msg.Nack(false, true)
	}
}

// alertSender prefers Mailgun when it is configured: the alert usually exists
// because the primary relay just failed.
func alertSender(cfg *config.Config) (mailer.Sender, error) {
	if mg, err := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender); err == nil {
		return mg, nil
	}
	return container.NewMailer(cfg)
}
