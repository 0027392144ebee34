package workflow

// EventKind tells a text message from an inline button press
type EventKind int

const (
	EventMessage EventKind = iota + 1
	EventCallback
)

// Identity is what the transport tells us about the person behind an event
type Identity struct {
	Username  string
	FirstName string
}

// Reporter returns the handle stored on submissions filed by this identity
func (i Identity) Reporter() string {
	if i.Username != "" {
		return i.Username
	}
	if i.FirstName != "" {
		return i.FirstName
	}
	return "NoUsername"
}

// Event is an inbound update normalized by the messaging gateway
type Event struct {
	Kind       EventKind
	ChatID     int64
	MessageID  int    // callback: message carrying the pressed button
	Text       string // message text
	Payload    string // callback data
	CallbackID string
	From       Identity
}
