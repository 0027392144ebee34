package workflow

// Button is an inline button carrying a callback payload
type Button struct {
	Label   string
	Payload string
}

// InlineKeyboard is attached to a single message
type InlineKeyboard struct {
	Rows [][]Button
}

// ReplyKeyboard replaces the chat's persistent keyboard
type ReplyKeyboard struct {
	Rows    [][]string
	OneTime bool
}

// Outbound is a message to send, or to edit in place when Edit is set
type Outbound struct {
	Edit      bool
	ChatID    int64
	MessageID int
	Text      string
	HTML      bool
	Reply     *ReplyKeyboard
	Inline    *InlineKeyboard
}

func sendText(chatID int64, text string, kb *ReplyKeyboard) Outbound {
	return Outbound{ChatID: chatID, Text: text, Reply: kb}
}

func sendHTML(chatID int64, text string, kb *InlineKeyboard) Outbound {
	return Outbound{ChatID: chatID, Text: text, HTML: true, Inline: kb}
}

func editHTML(ev Event, text string, kb *InlineKeyboard) Outbound {
	return Outbound{Edit: true, ChatID: ev.ChatID, MessageID: ev.MessageID, Text: text, HTML: true, Inline: kb}
}

// pairs lays buttons out two per row
func pairs(buttons []Button) *InlineKeyboard {
	kb := &InlineKeyboard{}
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		kb.Rows = append(kb.Rows, buttons[i:end])
	}
	return kb
}
