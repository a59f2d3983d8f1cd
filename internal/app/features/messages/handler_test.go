package messages

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/mailer"
	"github.com/dalemusser/duasite/internal/app/system/workers"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	done chan struct{}
}

func (f *fakeMailer) Enabled() bool { return true }

func (f *fakeMailer) Send(_ context.Context, e mailer.Email) error {
	f.mu.Lock()
	f.sent = append(f.sent, e)
	f.mu.Unlock()
	close(f.done)
	return nil
}

func newFixture(t *testing.T, n Notifier, q *workers.Queue) (*Handler, *testutil.Fixtures, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	inbox := &Inbox{
		DB:       db,
		Store:    messagestore.New(db),
		Queue:    q,
		Mailer:   n,
		NotifyTo: "office@example.org",
		BaseURL:  "https://dua.example.org/",
		Log:      zap.NewNop(),
	}
	h := NewHandler(db, inbox, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db), APIRoutes(h, sm)
}

func TestAPI_CreateIsPublic(t *testing.T) {
	_, _, r := newFixture(t, nil, nil)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", map[string]any{
		"name":    "Rahim",
		"email":   "rahim@example.org",
		"subject": "Volunteering",
		"message": "How can I help?",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	var body createdBody
	rec.DecodeJSON(t, &body)
	if body.Message != "Message sent successfully" || body.ID == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestAPI_CreateValidation(t *testing.T) {
	_, _, r := newFixture(t, nil, nil)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing subject", map[string]any{"name": "A", "email": "a@example.org", "message": "Hi"}, "All fields are required"},
		{"bad email", map[string]any{"name": "A", "email": "nope", "subject": "S", "message": "Hi"}, "Invalid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestAPI_ListRequiresSession(t *testing.T) {
	_, _, r := newFixture(t, nil, nil)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodGet, "/", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestAPI_ReadMarksOpened(t *testing.T) {
	h, fx, r := newFixture(t, nil, nil)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fx.CreateMessage(ctx, "Nadia", "Partnership")
	fx.CreateMessage(ctx, "Karim", "Donation receipt")

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodGet, "/"+m.ID.Hex(), nil)))
	rec.AssertStatus(t, http.StatusOK)

	got, err := h.Store.Get(ctx, m.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.IsRead {
		t.Error("message not marked read")
	}

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodGet, "/?unread=true", nil)))
	rec.AssertStatus(t, http.StatusOK)
	var list []models.Message
	rec.DecodeJSON(t, &list)
	if len(list) != 1 || list[0].Name != "Karim" {
		t.Errorf("unread = %+v, want only Karim", list)
	}
}

func TestSubmit_QueuesNotification(t *testing.T) {
	fm := &fakeMailer{done: make(chan struct{})}
	q := workers.NewQueue(zap.NewNop(), 1, 4, 5*time.Second)
	q.Start()
	defer q.Stop()

	h, _, _ := newFixture(t, fm, q)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	name, email, subject, body := "Rahim", "rahim@example.org", "Volunteering", "Hello"
	m, err := h.Inbox.Submit(ctx, messagestore.Input{Name: &name, Email: &email, Subject: &subject, Message: &body})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-fm.done:
	case <-time.After(3 * time.Second):
		t.Fatal("notification not sent")
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.sent[0].To != "office@example.org" {
		t.Errorf("To = %q", fm.sent[0].To)
	}
	link := "https://dua.example.org/admin/messages/" + m.ID.Hex()
	if !strings.Contains(fm.sent[0].HTMLBody, link) && !strings.Contains(fm.sent[0].TextBody, link) {
		t.Errorf("notification missing admin link %s", link)
	}
}

func TestHandleUpdate_MarksReplied(t *testing.T) {
	h, fx, _ := newFixture(t, nil, nil)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fx.CreateMessage(ctx, "Nadia", "Partnership")

	req := testutil.FormRequest(t, "/admin/messages/"+m.ID.Hex(), map[string]string{
		"isRead":    "on",
		"isReplied": "on",
		"notes":     "Called back on Monday",
	})
	req = testutil.WithChiURLParam(testutil.WithAdmin(req), "id", m.ID.Hex())
	rec := testutil.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.HandleUpdate(rec, req)
	}()

	got, err := h.Store.Get(ctx, m.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.IsReplied || got.RepliedAt == nil || got.Notes != "Called back on Monday" {
		t.Errorf("got %+v", got)
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		unread bool
		start  int
		want   string
	}{
		{false, 1, "/admin/messages"},
		{true, 1, "/admin/messages?filter=unread"},
		{false, 26, "/admin/messages?start=26"},
		{true, 26, "/admin/messages?filter=unread&start=26"},
	}
	for _, tt := range tests {
		if got := pageURL(tt.unread, tt.start); got != tt.want {
			t.Errorf("pageURL(%v, %d) = %q, want %q", tt.unread, tt.start, got, tt.want)
		}
	}
}
