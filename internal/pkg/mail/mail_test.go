package mail

import (
	"TaylorDAM/internal/api/config"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func sampleInvitation() *InvitationData {
	return &InvitationData{
		AppName:     "TaylorDAM",
		Email:       "new@example.com",
		InviterName: "Ada <Admin>",
		Role:        "sales",
		InviteURL:   "https://dam.example.com/register/abc",
		ExpiresAt:   time.Date(2024, 5, 8, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderInvitation(t *testing.T) {
	msg, err := RenderInvitation(sampleInvitation())
	if err != nil {
		t.Fatal(err)
	}
	if msg.Subject != "You're invited to TaylorDAM" {
		t.Fatalf("subject %q", msg.Subject)
	}
	if len(msg.To) != 1 || msg.To[0] != "new@example.com" {
		t.Fatalf("to %v", msg.To)
	}
	if !strings.Contains(msg.HTML, "Ada &lt;Admin&gt;") {
		t.Fatalf("html should escape inviter name: %s", msg.HTML)
	}
	for _, want := range []string{"Ada <Admin>", "sales", "https://dam.example.com/register/abc", "May 8, 2024"} {
		if !strings.Contains(msg.Text, want) {
			t.Fatalf("text missing %q: %s", want, msg.Text)
		}
	}
}

func TestSendInvitationDisabled(t *testing.T) {
	c := NewClient(config.MailConfig{ApiURL: "http://127.0.0.1:1"})
	sent, err := c.SendInvitation(context.Background(), sampleInvitation())
	if err != nil || sent {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if err = c.Send(context.Background(), &Message{}); err != ErrMailDisabled {
		t.Fatalf("expected ErrMailDisabled, got %v", err)
	}
}

func TestSendInvitation(t *testing.T) {
	var got Message
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	c := NewClient(config.MailConfig{ApiURL: srv.URL, ApiKey: "key", From: "DAM <noreply@example.com>"})
	sent, err := c.SendInvitation(context.Background(), sampleInvitation())
	if err != nil || !sent {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if auth != "Bearer key" {
		t.Fatalf("authorization %q", auth)
	}
	if got.From != "DAM <noreply@example.com>" || got.Subject == "" || got.HTML == "" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestSendRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	c := NewClient(config.MailConfig{ApiURL: srv.URL, ApiKey: "key"})
	err := c.Send(context.Background(), &Message{To: []string{"a@example.com"}, Subject: "x"})
	if err == nil || !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "invalid from") {
		t.Fatalf("unexpected error %v", err)
	}
}
