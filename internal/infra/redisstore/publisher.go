package redisstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"cancel-saga/internal/infra"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

type alertMessage struct {
	Store   string    `json:"store"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

// Alerter publishes operator alerts on a pub/sub channel consumed by the on-call relay.
type Alerter struct {
	client  redis.Cmdable
	channel string
	clock   clock.Clock
	logger  *slog.Logger
}

func NewAlerter(client redis.Cmdable, channel string, clk clock.Clock, logger *slog.Logger) *Alerter {
	return &Alerter{client: client, channel: channel, clock: clk, logger: logger}
}

func (a *Alerter) Alert(ctx context.Context, alert commands.Alert) error {
	payload, err := json.Marshal(alertMessage{
		Store:   alert.Store,
		Title:   alert.Title,
		Message: alert.Message,
		SentAt:  a.clock.Now(),
	})
	if err != nil {
		return err
	}

	receivers, err := a.client.Publish(ctx, a.channel, payload).Result()
	if err != nil {
		return infra.NewUpstreamErr("redis", "publish alert", "", err)
	}
	if receivers == 0 {
		a.logger.Warn("alert published with no subscribers", "channel", a.channel, "title", alert.Title)
	}
	return nil
}

type cancellationMessage struct {
	Type            string    `json:"type"`
	Store           string    `json:"store"`
	Email           string    `json:"email"`
	SubscriptionRef string    `json:"subscription"`
	DraftOrderID    string    `json:"draftOrder,omitempty"`
	CancelledAt     time.Time `json:"cancelledAt"`
}

// Notifier hands confirmation messages to the mailer over pub/sub.
type Notifier struct {
	client  redis.Cmdable
	channel string
}

func NewNotifier(client redis.Cmdable, channel string) *Notifier {
	return &Notifier{client: client, channel: channel}
}

func (n *Notifier) CancellationConfirmed(ctx context.Context, notice commands.CancellationNotice) error {
	payload, err := json.Marshal(cancellationMessage{
		Type:            "subscription.cancelled",
		Store:           notice.Store,
		Email:           notice.Email,
		SubscriptionRef: notice.SubscriptionRef,
		DraftOrderID:    notice.DraftOrderID,
		CancelledAt:     notice.CancelledAt,
	})
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return infra.NewUpstreamErr("redis", "publish notification", "", err)
	}
	return nil
}
