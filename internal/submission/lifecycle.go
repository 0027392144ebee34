package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// Action is an administrator decision applied to a submission
type Action string

const (
	ActionAccept Action = "accept"
	ActionCancel Action = "cancel"
	ActionPaid   Action = "paid"
)

// ErrTransitionNotAllowed is returned when an action does not apply to the current status
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// actionOrder fixes button order; fsm reports transitions in map order.
var actionOrder = []Action{ActionAccept, ActionCancel, ActionPaid}

var lifecycle = fsm.Events{
	{Name: string(ActionAccept), Src: []string{string(StatusPending)}, Dst: string(StatusAccepted)},
	{Name: string(ActionCancel), Src: []string{string(StatusPending)}, Dst: string(StatusCanceled)},
	{Name: string(ActionPaid), Src: []string{string(StatusAccepted)}, Dst: string(StatusPaid)},
}

type actionInfo struct {
	status Status
	label  string
	notice string
}

var actions = map[Action]actionInfo{
	ActionAccept: {StatusAccepted, "✅ Accept", "✅ Your submission has been ACCEPTED"},
	ActionCancel: {StatusCanceled, "❌ Cancel", "❌ Your submission has been CANCELED"},
	ActionPaid:   {StatusPaid, "💸 Paid", "💸 Your payment has been MARKED AS PAID"},
}

// ParseAction maps a callback action name to an Action
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := actions[a]
	return a, ok
}

// Status returns the status the action moves a submission to
func (a Action) Status() Status { return actions[a].status }

// Label is the button caption for the action
func (a Action) Label() string { return actions[a].label }

// Notice is the text sent to the reporter once the action is applied
func (a Action) Notice() string { return actions[a].notice }

func machine(current Status) *fsm.FSM {
	return fsm.NewFSM(string(current), lifecycle, fsm.Callbacks{})
}

// Actions returns the actions reachable from the given status, in button order.
// Terminal and unknown statuses have none.
func Actions(current Status) []Action {
	m := machine(current)
	var out []Action
	for _, a := range actionOrder {
		if m.Can(string(a)) {
			out = append(out, a)
		}
	}
	return out
}

// Transition applies the action to the current status and returns the new one
func Transition(ctx context.Context, current Status, a Action) (Status, error) {
	m := machine(current)
	if !m.Can(string(a)) {
		return current, fmt.Errorf("%s from %s: %w", a, current, ErrTransitionNotAllowed)
	}
	if err := m.Event(ctx, string(a)); err != nil {
		return current, fmt.Errorf("%s from %s: %w", a, current, err)
	}
	return Status(m.Current()), nil
}
