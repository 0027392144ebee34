package telegram

import (
	"github.com/go-telegram/bot/models"

	"github.com/suspectuso/send-approval-bot/internal/workflow"
)

// ToEvent normalizes an update into a workflow event.
// ok is false for update kinds the workflow does not handle.
func ToEvent(update *models.Update) (workflow.Event, bool) {
	if update == nil {
		return workflow.Event{}, false
	}

	if msg := update.Message; msg != nil {
		ev := workflow.Event{
			Kind:      workflow.EventMessage,
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      msg.Text,
		}
		if msg.From != nil {
			ev.From = identity(*msg.From)
		}
		return ev, true
	}

	if cb := update.CallbackQuery; cb != nil {
		ev := workflow.Event{
			Kind:       workflow.EventCallback,
			Payload:    cb.Data,
			CallbackID: cb.ID,
			From:       identity(cb.From),
		}
		switch {
		case cb.Message.Message != nil:
			ev.ChatID = cb.Message.Message.Chat.ID
			ev.MessageID = cb.Message.Message.ID
		case cb.Message.InaccessibleMessage != nil:
			ev.ChatID = cb.Message.InaccessibleMessage.Chat.ID
			ev.MessageID = cb.Message.InaccessibleMessage.MessageID
		default:
			ev.ChatID = cb.From.ID
		}
		return ev, true
	}

	return workflow.Event{}, false
}

func identity(u models.User) workflow.Identity {
	return workflow.Identity{Username: u.Username, FirstName: u.FirstName}
}
