package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const updateJSON = `{"update_id":42,"message":{"message_id":1,"date":1700000000,"chat":{"id":100,"type":"private"},"text":"/start"}}`

func TestWebhookAlwaysAcknowledges(t *testing.T) {
	var got []*models.Update
	srv := NewServer(func(_ context.Context, u *models.Update) { got = append(got, u) }, "", testLogger())
	h := srv.Routes()

	for _, path := range []string{"/", "/webhook"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(updateJSON)))
		if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
			t.Errorf("POST %s = %d %q", path, rec.Code, rec.Body.String())
		}
	}
	if len(got) != 2 || got[0].ID != 42 || got[0].Message.Text != "/start" {
		t.Fatalf("handled = %+v", got)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json")))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Errorf("malformed body = %d %q", rec.Code, rec.Body.String())
	}
	if len(got) != 2 {
		t.Errorf("malformed body reached handler")
	}
}

func TestWebhookRecoversFromPanic(t *testing.T) {
	srv := NewServer(func(context.Context, *models.Update) { panic("boom") }, "", testLogger())

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(updateJSON)))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Errorf("panic response = %d %q", rec.Code, rec.Body.String())
	}
}

func TestWebhookSecretToken(t *testing.T) {
	calls := 0
	srv := NewServer(func(context.Context, *models.Update) { calls++ }, "s3cret", testLogger())
	h := srv.Routes()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(updateJSON))
	req.Header.Set(SecretHeader, "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() != `{"ok":true}` || calls != 0 {
		t.Errorf("wrong secret: body %q, calls %d", rec.Body.String(), calls)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(updateJSON))
	req.Header.Set(SecretHeader, "s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if calls != 1 {
		t.Errorf("valid secret: calls %d", calls)
	}
}

func TestNonPostRequests(t *testing.T) {
	srv := NewServer(func(context.Context, *models.Update) { t.Error("handler called") }, "", testLogger())
	h := srv.Routes()

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/", "Bot is running"},
		{http.MethodGet, "/webhook", "Bot is running"},
		{http.MethodPut, "/", "Bot is running"},
		{http.MethodGet, "/health", "OK"},
		{http.MethodGet, "/elsewhere", "Bot is running"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != tt.want {
			t.Errorf("%s %s = %d %q, want %q", tt.method, tt.path, rec.Code, rec.Body.String(), tt.want)
		}
	}
}

func TestPostToUnknownPathAcknowledges(t *testing.T) {
	calls := 0
	srv := NewServer(func(context.Context, *models.Update) { calls++ }, "", testLogger())

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/elsewhere", strings.NewReader(updateJSON)))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Errorf("POST /elsewhere = %d %q", rec.Code, rec.Body.String())
	}
	if calls != 0 {
		t.Errorf("update on unknown path was processed")
	}
}

type fakeAPI struct {
	url     string
	infoErr error
	set     []*bot.SetWebhookParams
	deleted int
}

func (f *fakeAPI) GetWebhookInfo(context.Context) (*models.WebhookInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &models.WebhookInfo{URL: f.url}, nil
}

func (f *fakeAPI) SetWebhook(_ context.Context, p *bot.SetWebhookParams) (bool, error) {
	f.set = append(f.set, p)
	f.url = p.URL
	return true, nil
}

func (f *fakeAPI) DeleteWebhook(context.Context, *bot.DeleteWebhookParams) (bool, error) {
	f.deleted++
	f.url = ""
	return true, nil
}

func TestManagerInit(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{}
	m := NewManager(api, "https://example.org/webhook", "s3cret", testLogger())
	if err := m.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(api.set) != 1 || api.set[0].URL != "https://example.org/webhook" || api.set[0].SecretToken != "s3cret" {
		t.Fatalf("set = %+v", api.set)
	}
	if err := m.Init(ctx); err != nil || len(api.set) != 1 {
		t.Errorf("existing webhook re-registered: %v, %d", err, len(api.set))
	}

	polling := NewManager(api, "", "", testLogger())
	if err := polling.Init(ctx); err != nil {
		t.Fatalf("polling Init: %v", err)
	}
	if api.deleted != 1 || api.url != "" {
		t.Errorf("webhook not deleted for polling: %+v", api)
	}
	if err := polling.Init(ctx); err != nil || api.deleted != 1 {
		t.Errorf("delete repeated without registration: %v, %d", err, api.deleted)
	}

	broken := NewManager(&fakeAPI{infoErr: errors.New("unauthorized")}, "https://example.org", "", testLogger())
	if err := broken.Init(ctx); err == nil {
		t.Error("expected error")
	}
}
