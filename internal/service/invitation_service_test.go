package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/model"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateInvitation(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin}
	users := newFakeUserRepo(admin)
	invitations := newFakeInvitationRepo(users)
	mailer := &fakeMailer{}
	svc := NewInvitationService(invitations, users, mailer, "https://dam.example.com/")

	result, err := svc.CreateInvitation(ctx, Actor{ID: admin.ID.String(), Role: model.RoleAdmin},
		&dto.CreateInvitationDTO{Email: "Sales@Example.com", Role: model.RoleSales})
	if err != nil {
		t.Fatal(err)
	}
	if !result.EmailSent || len(mailer.sent) != 1 {
		t.Fatalf("expected email to be sent, got %+v", result)
	}
	if result.Invitation.Email != "sales@example.com" || result.Invitation.InviterName != "Admin" {
		t.Fatalf("unexpected invitation %+v", result.Invitation)
	}
	if !strings.HasPrefix(result.InviteURL, "https://dam.example.com/register/") {
		t.Fatalf("unexpected invite url %s", result.InviteURL)
	}
	if mailer.sent[0].InviteURL != result.InviteURL || mailer.sent[0].InviterName != "Admin" {
		t.Fatalf("unexpected mail data %+v", mailer.sent[0])
	}

	ttl := time.Until(result.Invitation.ExpiresAt)
	if ttl < 6*24*time.Hour || ttl > 7*24*time.Hour {
		t.Fatalf("unexpected expiry %v", result.Invitation.ExpiresAt)
	}
}

func TestCreateInvitationMailFailure(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin}
	users := newFakeUserRepo(admin)
	invitations := newFakeInvitationRepo(users)
	svc := NewInvitationService(invitations, users, &fakeMailer{err: errors.New("smtp down")}, "http://localhost:3000")

	result, err := svc.CreateInvitation(ctx, Actor{ID: admin.ID.String(), Role: model.RoleAdmin},
		&dto.CreateInvitationDTO{Email: "sales@example.com", Role: model.RoleSales})
	if err != nil {
		t.Fatalf("mail failure must not fail the request: %v", err)
	}
	if result.EmailSent {
		t.Fatal("email_sent should be false")
	}
	if len(invitations.invitations) != 1 {
		t.Fatal("invitation should still be stored")
	}
}

func TestRevokeAndPreviewInvitation(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	invitations := newFakeInvitationRepo(users)
	active := newInvitation("a@example.com", model.RoleSales, time.Hour)
	used := newInvitation("b@example.com", model.RoleSales, time.Hour)
	now := time.Now()
	used.UsedAt = &now
	invitations.invitations[active.ID] = active
	invitations.invitations[used.ID] = used
	svc := NewInvitationService(invitations, users, &fakeMailer{}, "")

	preview, err := svc.PreviewInvitation(ctx, active.Token)
	if err != nil || preview.Email != "a@example.com" {
		t.Fatalf("preview=%+v err=%v", preview, err)
	}
	if _, err = svc.PreviewInvitation(ctx, used.Token); !errors.Is(err, ErrInvitationUsed) {
		t.Fatalf("expected ErrInvitationUsed, got %v", err)
	}

	list, err := svc.GetActiveInvitations(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list=%v err=%v", list, err)
	}

	if err = svc.RevokeInvitation(ctx, active.ID.String()); err != nil {
		t.Fatal(err)
	}
	if err = svc.RevokeInvitation(ctx, active.ID.String()); !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound, got %v", err)
	}
	if err = svc.RevokeInvitation(ctx, "not-a-uuid"); !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("malformed id: expected ErrInvitationNotFound, got %v", err)
	}
}

func TestCleanupExpiredInvitations(t *testing.T) {
	users := newFakeUserRepo()
	invitations := newFakeInvitationRepo(users)
	expired := newInvitation("old@example.com", model.RoleSales, -time.Hour)
	active := newInvitation("new@example.com", model.RoleSales, time.Hour)
	invitations.invitations[expired.ID] = expired
	invitations.invitations[active.ID] = active
	svc := NewInvitationService(invitations, users, &fakeMailer{}, "")

	n, err := svc.CleanupExpired(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if _, ok := invitations.invitations[active.ID]; !ok {
		t.Fatal("active invitation must be kept")
	}
}
