package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/suspectuso/send-approval-bot/internal/report"
	"github.com/suspectuso/send-approval-bot/internal/submission"
)

// Config holds the engine's fixed settings
type Config struct {
	AdminChatID int64
	// Moderators enables the moderator step when non-empty
	Moderators []string
}

// Engine drives the intake conversation and the admin review flow
type Engine struct {
	cfg    Config
	store  submission.Store
	states StateStore
	now    func() time.Time
	log    *slog.Logger
}

// NewEngine creates a workflow engine
func NewEngine(cfg Config, store submission.Store, states StateStore, log *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		store:  store,
		states: states,
		now:    time.Now,
		log:    log,
	}
}

// Handle interprets one event and returns the messages to deliver, in order.
// A *ValidationError is turned into a reply here; any returned error is an
// upstream failure and no message should be delivered for it.
func (e *Engine) Handle(ctx context.Context, ev Event) ([]Outbound, error) {
	var (
		out []Outbound
		err error
	)
	switch ev.Kind {
	case EventMessage:
		out, err = e.handleMessage(ctx, ev)
	case EventCallback:
		out, err = e.handleCallback(ctx, ev)
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return append(out, sendText(ev.ChatID, verr.Error(), nil)), nil
	}
	return out, err
}

func (e *Engine) isAdmin(chatID int64) bool {
	return chatID == e.cfg.AdminChatID
}

func (e *Engine) menu(chatID int64) *ReplyKeyboard {
	if e.isAdmin(chatID) {
		return adminMenu()
	}
	return reporterMenu()
}

// --- Messages ---

func (e *Engine) handleMessage(ctx context.Context, ev Event) ([]Outbound, error) {
	text := strings.TrimSpace(ev.Text)

	if text == CmdStart || text == CmdCancel {
		e.states.Delete(ev.ChatID)
		return []Outbound{sendText(ev.ChatID, textWelcome, e.menu(ev.ChatID))}, nil
	}

	conv, ok := e.states.Get(ev.ChatID)
	if !ok {
		if e.isAdmin(ev.ChatID) {
			return e.adminMenuAction(ctx, text)
		}
		return e.reporterMenuAction(ctx, ev, text)
	}

	switch conv.Step {
	case StepUsername:
		return e.onUsername(ev, conv)
	case StepAmount:
		return e.onAmount(ctx, ev, conv)
	}
	// StepModerator only advances through a set_mod callback
	return nil, nil
}

func (e *Engine) adminMenuAction(ctx context.Context, text string) ([]Outbound, error) {
	switch text {
	case LabelAllSubmissions:
		return e.allSubmissions(ctx)
	case LabelTotalInfo:
		return e.totalInfo(ctx)
	case LabelPaidSummary:
		return e.paidSummary(ctx)
	case LabelRefresh:
		return []Outbound{sendText(e.cfg.AdminChatID, textRefreshed, adminMenu())}, nil
	}
	return nil, nil
}

func (e *Engine) reporterMenuAction(ctx context.Context, ev Event, text string) ([]Outbound, error) {
	switch text {
	case LabelNewSend:
		return e.startSubmission(ev.ChatID), nil
	case LabelTotalAmount:
		records, err := e.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		total := report.ApprovedTotal(records, ev.From.Reporter())
		return []Outbound{sendText(ev.ChatID, fmt.Sprintf("💰 Your Approved Total: %d", total), reporterMenu())}, nil
	case LabelMySubmissions:
		records, err := e.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		days := report.ReporterDays(records, ev.From.Reporter())
		if len(days) == 0 {
			return []Outbound{sendText(ev.ChatID, textNoSubmissions, reporterMenu())}, nil
		}
		return []Outbound{sendHTML(ev.ChatID, textPickDate, dateKeyboard(days))}, nil
	}
	return nil, nil
}

func (e *Engine) startSubmission(chatID int64) []Outbound {
	if len(e.cfg.Moderators) > 0 {
		e.states.Set(chatID, Conversation{Step: StepModerator})
		return []Outbound{sendHTML(chatID, textPickModerator, moderatorKeyboard(e.cfg.Moderators))}
	}
	e.states.Set(chatID, Conversation{Step: StepUsername})
	return []Outbound{sendText(chatID, textAskUsername, selfKeyboard())}
}

func (e *Engine) onUsername(ev Event, conv Conversation) ([]Outbound, error) {
	handle, err := ResolveHandle(ev.Text, ev.From)
	if err != nil {
		return nil, err
	}

	conv.Sender = handle
	conv.Step = StepAmount
	e.states.Set(ev.ChatID, conv)

	return []Outbound{sendText(ev.ChatID, fmt.Sprintf("✅ Sender saved: %s\nNow enter amount:", handle), nil)}, nil
}

func (e *Engine) onAmount(ctx context.Context, ev Event, conv Conversation) ([]Outbound, error) {
	amount, err := ParseAmount(ev.Text)
	if err != nil {
		return nil, err
	}

	rec := submission.Record{
		DateKey:   submission.NewDateKey(e.now()),
		Reporter:  ev.From.Reporter(),
		ChatID:    ev.ChatID,
		Moderator: conv.Moderator,
		Sender:    conv.Sender,
		Amount:    amount,
		Status:    submission.StatusPending,
	}

	// The flow ends here whether or not the insert succeeds.
	e.states.Delete(ev.ChatID)

	if err := e.store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert submission %s: %w", rec.DateKey, err)
	}

	e.log.Info("submission created",
		"date_key", rec.DateKey,
		"reporter", rec.Reporter,
		"chat_id", rec.ChatID,
		"amount", rec.Amount,
	)

	return []Outbound{
		sendHTML(e.cfg.AdminChatID, newSubmissionText(rec), StatusKeyboard(rec)),
		sendText(ev.ChatID, textSubmitted, reporterMenu()),
	}, nil
}

// --- Admin views ---

func (e *Engine) allSubmissions(ctx context.Context) ([]Outbound, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	admin := e.cfg.AdminChatID
	if len(records) == 0 {
		return []Outbound{sendText(admin, "No submissions found", adminMenu())}, nil
	}

	var out []Outbound
	for _, u := range report.GroupByUserThenDate(records, report.InsertionOrder) {
		out = append(out, sendText(admin, userHeader(u.Reporter), nil))
		for _, d := range u.Days {
			out = append(out, sendText(admin, dateHeader(d.Day), nil))
			for _, r := range d.Records {
				out = append(out, sendHTML(admin, recordCard(r), StatusKeyboard(r)))
			}
		}
	}
	return out, nil
}

func (e *Engine) totalInfo(ctx context.Context) ([]Outbound, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	admin := e.cfg.AdminChatID
	if len(records) == 0 {
		return []Outbound{sendText(admin, "No data found", nil)}, nil
	}

	totals := report.TotalsByUser(records)
	out := make([]Outbound, 0, len(totals.Users)+1)
	for _, u := range totals.Users {
		out = append(out, sendText(admin, countsText("👤 @"+u.Reporter, u.Counts), nil))
	}
	out = append(out, sendText(admin, countsText("📦 GRAND TOTAL\n", totals.Grand), nil))
	return out, nil
}

func (e *Engine) paidSummary(ctx context.Context) ([]Outbound, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	admin := e.cfg.AdminChatID
	users, grand := report.PaidSummary(records)
	if len(users) == 0 {
		return []Outbound{sendText(admin, "No paid submissions found", nil)}, nil
	}

	out := make([]Outbound, 0, len(users)+1)
	for _, u := range users {
		out = append(out, sendText(admin, paidUserText(u), nil))
	}
	out = append(out, sendText(admin, fmt.Sprintf("📦 PAID GRAND TOTAL: %d", grand), nil))
	return out, nil
}

// --- Callbacks ---

func (e *Engine) handleCallback(ctx context.Context, ev Event) ([]Outbound, error) {
	action, rest, _ := strings.Cut(ev.Payload, ":")

	switch action {
	case actionSetModerator:
		return e.onModerator(ev, rest), nil
	case actionViewDate:
		return e.onViewDate(ctx, ev, rest)
	}

	if a, ok := submission.ParseAction(action); ok {
		return e.onStatus(ctx, ev, a, rest)
	}

	e.log.Debug("unroutable callback", "data", ev.Payload, "chat_id", ev.ChatID)
	return nil, nil
}

func (e *Engine) onModerator(ev Event, index string) []Outbound {
	conv, ok := e.states.Get(ev.ChatID)
	if !ok || conv.Step != StepModerator {
		return nil
	}
	i, err := strconv.Atoi(index)
	if err != nil || i < 0 || i >= len(e.cfg.Moderators) {
		return nil
	}
	name := e.cfg.Moderators[i]

	conv.Moderator = name
	conv.Step = StepUsername
	e.states.Set(ev.ChatID, conv)

	return []Outbound{
		editHTML(ev, moderatorChosenText(name), nil),
		sendText(ev.ChatID, textAskUsername, selfKeyboard()),
	}
}

func (e *Engine) onViewDate(ctx context.Context, ev Event, day string) ([]Outbound, error) {
	if e.isAdmin(ev.ChatID) || len(day) != 8 {
		return nil, nil
	}

	records, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	recs, total := report.Day(records, ev.From.Reporter(), day)
	if len(recs) == 0 {
		return []Outbound{editHTML(ev, textNoDateData, nil)}, nil
	}
	return []Outbound{editHTML(ev, dayText(day, recs, total), nil)}, nil
}

// onStatus applies accept/cancel/paid. The payload is dateKey:reporterChatID.
func (e *Engine) onStatus(ctx context.Context, ev Event, a submission.Action, payload string) ([]Outbound, error) {
	if !e.isAdmin(ev.ChatID) {
		e.log.Warn("status action from non-admin chat", "chat_id", ev.ChatID, "action", a)
		return nil, nil
	}

	dateKey, targetStr, _ := strings.Cut(payload, ":")
	if dateKey == "" {
		return nil, nil
	}

	records, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	idx := slices.IndexFunc(records, func(r submission.Record) bool { return r.DateKey == dateKey })
	if idx < 0 {
		return []Outbound{editHTML(ev, textNotFound, nil)}, nil
	}
	rec := records[idx]

	target, err := strconv.ParseInt(targetStr, 10, 64)
	if err != nil || target == 0 {
		target = rec.ChatID
	}
	if rec.ChatID == 0 {
		rec.ChatID = target
	}

	next, err := submission.Transition(ctx, rec.Status, a)
	if errors.Is(err, submission.ErrTransitionNotAllowed) {
		e.log.Info("ignored status action", "date_key", dateKey, "action", a, "status", rec.Status)
		return []Outbound{editHTML(ev, statusUnchangedText(rec), StatusKeyboard(rec))}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := e.store.UpdateStatus(ctx, dateKey, next); err != nil {
		return nil, fmt.Errorf("update status %s: %w", dateKey, err)
	}

	e.log.Info("status updated", "date_key", dateKey, "from", rec.Status, "to", next)
	rec.Status = next

	out := []Outbound{editHTML(ev, statusUpdatedText(rec), StatusKeyboard(rec))}
	if target != 0 {
		out = append(out, sendText(target, a.Notice(), nil))
	}
	return out, nil
}
