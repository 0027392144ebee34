package workflow

// ValidationKind names a rejected user answer
type ValidationKind int

const (
	MissingHandle ValidationKind = iota + 1
	InvalidFormat
	NotNumeric
)

// ValidationError is a user-facing rejection of an intake answer. The engine
// replies with its text and leaves the conversation step where it was.
// Every other error out of Engine.Handle is an upstream failure.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingHandle:
		return "❌ You don't have a Telegram username."
	case InvalidFormat:
		return "❌ Invalid username format."
	case NotNumeric:
		return "❌ Amount must be a number."
	}
	return "❌ Invalid input."
}
