package webhook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// API is the subset of the Bot API used to manage webhook registration
type API interface {
	GetWebhookInfo(ctx context.Context) (*models.WebhookInfo, error)
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	DeleteWebhook(ctx context.Context, params *bot.DeleteWebhookParams) (bool, error)
}

// Manager keeps the bot's Telegram webhook in line with the run mode
type Manager struct {
	api      API
	endpoint string
	secret   string
	log      *slog.Logger
}

// NewManager creates a new webhook manager. An empty endpoint means
// polling mode.
func NewManager(api API, endpoint, secret string, log *slog.Logger) *Manager {
	return &Manager{
		api:      api,
		endpoint: endpoint,
		secret:   secret,
		log:      log,
	}
}

// Init registers the webhook endpoint, or removes any registration when
// running in polling mode so getUpdates is allowed.
func (m *Manager) Init(ctx context.Context) error {
	info, err := m.api.GetWebhookInfo(ctx)
	if err != nil {
		return fmt.Errorf("get webhook info: %w", err)
	}

	if m.endpoint == "" {
		if info.URL == "" {
			return nil
		}
		if _, err := m.api.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
			return fmt.Errorf("delete webhook: %w", err)
		}
		m.log.Info("deleted webhook for polling mode", "url", info.URL)
		return nil
	}

	if info.URL == m.endpoint {
		m.log.Info("using existing webhook", "url", info.URL, "pending", info.PendingUpdateCount)
		return nil
	}

	if _, err := m.api.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         m.endpoint,
		SecretToken: m.secret,
	}); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	m.log.Info("registered webhook", "url", m.endpoint)
	return nil
}
