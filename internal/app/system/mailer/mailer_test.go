package mailer

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/emersion/go-sasl"
	"go.uber.org/zap"
)

func TestSend_Disabled(t *testing.T) {
	m := New(Config{}, zap.NewNop())
	m.send = func(string, sasl.Client, string, []string, io.Reader) error {
		t.Fatal("disabled mailer must not send")
		return nil
	}
	if err := m.Send(context.Background(), Email{To: "x@y.z"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSend_BuildsMessage(t *testing.T) {
	m := New(Config{Host: "smtp.test", Port: 2525, Username: "u", Password: "p", From: "noreply@duabd.org", FromName: "DUA"}, zap.NewNop())

	var gotAddr, gotFrom, gotBody string
	var gotTo []string
	var gotAuth sasl.Client
	m.send = func(addr string, a sasl.Client, from string, to []string, r io.Reader) error {
		b, _ := io.ReadAll(r)
		gotAddr, gotAuth, gotFrom, gotTo, gotBody = addr, a, from, to, string(b)
		return nil
	}

	e := BuildContactNotification(ContactNotificationData{
		SiteName: "DUA", Name: "Rahim", Email: "rahim@example.com", Subject: "Volunteering", Message: "I want to help.",
	})
	e.To = "info@duabd.org"
	if err := m.Send(context.Background(), e); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotAddr != "smtp.test:2525" {
		t.Errorf("addr: got %q", gotAddr)
	}
	if gotAuth == nil {
		t.Error("expected SASL auth when username set")
	}
	if gotFrom != "noreply@duabd.org" || len(gotTo) != 1 || gotTo[0] != "info@duabd.org" {
		t.Errorf("envelope: from=%q to=%v", gotFrom, gotTo)
	}
	for _, want := range []string{"multipart/alternative", "text/plain", "text/html", "I want to help.", "Volunteering"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildContactNotification_EscapesHTML(t *testing.T) {
	e := BuildContactNotification(ContactNotificationData{SiteName: "DUA", Name: "<b>x</b>", Message: "<script>1</script>"})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("message body must be escaped in HTML part")
	}
}
