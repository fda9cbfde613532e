package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/events"
)

// NotificationService logs change events and forwards them to an
// optional webhook. It rides the same dispatcher as the push hub.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventScheduleCreated, n.handleChange)
	n.dispatcher.Subscribe(events.EventScheduleUpdated, n.handleChange)
	n.dispatcher.Subscribe(events.EventScheduleDeleted, n.handleChange)
	n.dispatcher.Subscribe(events.EventStaffCreated, n.handleChange)
}

func (n *NotificationService) handleChange(ctx context.Context, event events.Event) error {
	n.logger.Info("change event",
		zap.String("type", string(event.Type)),
		zap.Int64("id", event.EntityID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)),
		zap.Int64("id", event.EntityID))
}
