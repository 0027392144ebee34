package notifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot/models"

	"github.com/suspectuso/send-approval-bot/internal/telegram"
	"github.com/suspectuso/send-approval-bot/internal/workflow"
)

// Engine turns a normalized event into outbound messages
type Engine interface {
	Handle(ctx context.Context, ev workflow.Event) ([]workflow.Outbound, error)
}

// Gateway delivers messages back to the chat platform
type Gateway interface {
	Deliver(ctx context.Context, out workflow.Outbound) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Notifier runs incoming updates through the workflow engine and sends
// the replies. Updates are processed one at a time.
type Notifier struct {
	engine  Engine
	gateway Gateway
	log     *slog.Logger

	mu sync.Mutex
}

// New creates a new Notifier
func New(engine Engine, gateway Gateway, log *slog.Logger) *Notifier {
	return &Notifier{
		engine:  engine,
		gateway: gateway,
		log:     log,
	}
}

// HandleUpdate processes one raw update. Errors are logged, never returned:
// the transport is always acknowledged.
func (n *Notifier) HandleUpdate(ctx context.Context, update *models.Update) {
	ev, ok := telegram.ToEvent(update)
	if !ok {
		n.log.Debug("ignoring update", "update_id", updateID(update))
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.log.Debug("handling event",
		"kind", ev.Kind,
		"chat_id", ev.ChatID,
		"reporter", ev.From.Reporter(),
	)

	out, err := n.engine.Handle(ctx, ev)
	if err != nil {
		n.log.Error("handle event", "chat_id", ev.ChatID, "kind", ev.Kind, "error", err)
	}

	for i, msg := range out {
		if err := n.gateway.Deliver(ctx, msg); err != nil {
			n.log.Error("deliver message",
				"chat_id", msg.ChatID,
				"index", i,
				"pending", len(out)-i-1,
				"error", err,
			)
			break
		}
	}

	if ev.Kind == workflow.EventCallback && ev.CallbackID != "" {
		if err := n.gateway.AnswerCallback(ctx, ev.CallbackID); err != nil {
			n.log.Warn("answer callback", "callback_id", ev.CallbackID, "error", err)
		}
	}
}

func updateID(update *models.Update) int64 {
	if update == nil {
		return 0
	}
	return update.ID
}
