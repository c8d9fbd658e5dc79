package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/utils"
)

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(topic string, _ any) {
	p.topics = append(p.topics, topic)
}

func TestSettingsDefaultsAndPublish(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewSettingsService(fakeSettings{newMemDB()}, pub)

	site, err := svc.GetSite(ctx)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if *site != models.DefaultSiteSettings() {
		t.Errorf("site = %+v, want defaults", site)
	}

	site.SiteTitle = "Jane Doe"
	if _, err := svc.UpdateSite(ctx, site); err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}
	got, _ := svc.GetSite(ctx)
	if got.SiteTitle != "Jane Doe" {
		t.Errorf("stored title = %q", got.SiteTitle)
	}

	cs, _ := svc.GetContact(ctx)
	cs.Email = "me@example.com"
	if _, err := svc.UpdateContact(ctx, cs); err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}

	want := []string{EventSettingsUpdated, EventContactSettingsUpdated}
	if len(pub.topics) != len(want) || pub.topics[0] != want[0] || pub.topics[1] != want[1] {
		t.Errorf("published %v, want %v", pub.topics, want)
	}
}

func TestSettingsValidation(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewSettingsService(fakeSettings{newMemDB()}, pub)

	if _, err := svc.UpdateSite(ctx, &models.SiteSettings{}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty title err = %v", err)
	}
	if _, err := svc.UpdateContact(ctx, &models.ContactSettings{Email: "nope"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad email err = %v", err)
	}
	if len(pub.topics) != 0 {
		t.Errorf("published on failure: %v", pub.topics)
	}
}

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	svc := NewAuthService(fakeAdmins{newMemDB()}, utils.NewTokenManager("test-secret", time.Hour))
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := svc.EnsureAdmin(context.Background(), "admin", string(hash)); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthFixture(t)

	res, err := svc.Login(ctx, "admin", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.VerifyToken(res.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "admin" || claims.AdminID != res.Admin.ID {
		t.Errorf("claims = %+v", claims)
	}

	for _, tc := range []struct{ user, pass string }{{"admin", "wrong"}, {"ghost", "correct horse"}} {
		if _, err := svc.Login(ctx, tc.user, tc.pass); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Errorf("Login(%q) err = %v, want unauthorized", tc.user, err)
		}
	}
}

func TestEnsureAdminRejectsPlainPassword(t *testing.T) {
	svc := NewAuthService(fakeAdmins{newMemDB()}, utils.NewTokenManager("s", time.Hour))
	if _, err := svc.EnsureAdmin(context.Background(), "admin", "plaintext"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(fakeAdmins{newMemDB()}, utils.NewTokenManager("s", time.Hour))
	if _, err := svc.CreateAdmin(ctx, "root", "short"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("short password err = %v", err)
	}
	if _, err := svc.CreateAdmin(ctx, "root", "long enough"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if _, err := svc.CreateAdmin(ctx, "root", "long enough"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate err = %v, want conflict", err)
	}
	if _, err := svc.Login(ctx, "root", "long enough"); err != nil {
		t.Errorf("Login after create: %v", err)
	}
}
