package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/slack-go/slack"
)

// Notifier posts operational messages for admins.
type Notifier interface {
	Info(ctx context.Context, message string) error
	Error(ctx context.Context, message string) error
}

type Slack struct {
	client  *slack.Client
	options config.SlackConfig
}

func NewSlack(cfg config.SlackConfig) *Slack {
	return &Slack{client: slack.New(cfg.BotToken), options: cfg}
}

func (s *Slack) postMessage(ctx context.Context, channelID, message string) error {
	_, _, err := s.client.PostMessageContext(ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.InfoChannel, message)
}

func (s *Slack) Error(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.ErrorChannel, message)
}

// Nop logs instead of posting. Used when no bot token is configured.
type Nop struct{}

func (Nop) Info(ctx context.Context, message string) error {
	slog.Info("notification", "message", message)
	return nil
}

func (Nop) Error(ctx context.Context, message string) error {
	slog.Warn("notification", "message", message)
	return nil
}

// New picks Slack when a bot token is present.
func New(cfg config.SlackConfig) Notifier {
	if cfg.BotToken == "" {
		return Nop{}
	}
	return NewSlack(cfg)
}
