// The email worker drains order notifications from RabbitMQ and sends
// transactional emails via Mailgun. Events without a recipient email
// (guest and anonymous orders) are acked and skipped.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/config"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/logging"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/mailer"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/notify"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := logging.New(cfg.Env)

	if cfg.AMQPURL == "" {
		logger.Fatal("AMQP_URL is required for the email worker")
	}

	consumer, err := notify.NewConsumer(cfg.AMQPURL, notify.OrderQueue)
	if err != nil {
		logger.WithError(err).Fatal("connect to broker")
	}
	defer consumer.Close()

	deliveries, err := consumer.Deliveries(notify.OrderQueue)
	if err != nil {
		logger.WithError(err).Fatal("start consuming")
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithField("queue", notify.OrderQueue).Info("email worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			var ev notify.OrderEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				logger.WithError(err).Warn("drop malformed event")
				_ = d.Ack(false)
				continue
			}
			if ev.Email == "" {
				_ = d.Ack(false)
				continue
			}
			subject, text := renderEmail(ev)
			if err := mg.Send(ctx, ev.Email, subject, text, ""); err != nil {
				logger.WithError(err).WithField("order_id", ev.OrderID).Error("send email")
				_ = d.Nack(false, true)
				continue
			}
			logger.WithFields(map[string]interface{}{
				"order_id": ev.OrderID,
				"event":    ev.Event,
			}).Info("email sent")
			_ = d.Ack(false)
		}
	}
}

func renderEmail(ev notify.OrderEvent) (subject, text string) {
	name := ev.Username
	if name == "" {
		name = "there"
	}
	switch ev.Event {
	case notify.EventOrderCreated:
		subject = fmt.Sprintf("Order %s received", ev.OrderID)
		text = fmt.Sprintf("Hi %s,\n\nWe received your order %s for %d %s. We will let you know when it ships.\n\nRofida Furniture",
			name, ev.OrderID, ev.Total, ev.Currency)
	case notify.EventOrderStatusChanged:
		subject = fmt.Sprintf("Order %s is now %s", ev.OrderID, ev.Status)
		text = fmt.Sprintf("Hi %s,\n\nYour order %s is now %s.\n\nRofida Furniture",
			name, ev.OrderID, ev.Status)
	default:
		subject = fmt.Sprintf("Update on order %s", ev.OrderID)
		text = fmt.Sprintf("Hi %s,\n\nThere is an update on your order %s.\n\nRofida Furniture", name, ev.OrderID)
	}
	return subject, text
}
