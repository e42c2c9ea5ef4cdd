package main

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/coldpilot/coldpilot-backend/internal/config"
	"github.com/coldpilot/coldpilot-backend/internal/db"
	"github.com/coldpilot/coldpilot-backend/internal/logging"
	"github.com/coldpilot/coldpilot-backend/internal/mailer"
	"github.com/coldpilot/coldpilot-backend/internal/queue"
	"github.com/coldpilot/coldpilot-backend/internal/repository"
	"github.com/coldpilot/coldpilot-backend/internal/service"
)

const maxDeliveryAttempts = 3

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	logging.Configure(cfg.Env)
	flushSentry := logging.InitSentry(cfg.SentryDSN, cfg.Env)
	defer flushSentry()

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	emailRepo := &repository.GeneratedEmailRepository{DB: pool}
	sender := mailer.NewResendSender(cfg.ResendAPIKey, cfg.SendFrom)
	dispatcher := service.NewDispatcher(emailRepo, nil, sender.Send)

	ctx := context.Background()

	// Sweep approved rows left over from a previous run or a lost publish.
	leftovers, err := emailRepo.ListApproved(ctx, 100)
	if err != nil {
		logrus.Fatalf("failed to list approved emails: %v", err)
	}
	for _, email := range leftovers {
		if err := dispatcher.Process(ctx, email.ID); err != nil {
			logrus.WithError(err).WithField("email_id", email.ID).Error("startup dispatch failed")
		}
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logrus.Fatalf("failed to open a channel: %v", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		service.DispatchTopic, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		logrus.Fatalf("failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"dispatch-worker-"+uuid.NewString(),
		false, // autoAck off for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logrus.Fatalf("failed to register consumer: %v", err)
	}

	logrus.Info("worker running, waiting for messages")

	for d := range msgs {
		var job queue.DispatchJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			logrus.WithError(err).Warn("invalid dispatch job, dropping")
			d.Ack(false)
			continue
		}

		if err := dispatcher.Process(ctx, job.GeneratedEmailID); err != nil {
			logrus.WithError(err).WithField("email_id", job.GeneratedEmailID).Error("dispatch failed")

			var attempts int32
			if v, ok := d.Headers["x-retry-count"].(int32); ok {
				attempts = v
			}
			if attempts < maxDeliveryAttempts {
				d.Nack(false, true) // requeue
				continue
			}
		}

		d.Ack(false)
	}
}
