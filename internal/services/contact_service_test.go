package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type recordingEmail struct {
	notified []models.Contact
	replies  []string
	err      error
}

func (r *recordingEmail) NotifyNewContact(c models.Contact) error {
	r.notified = append(r.notified, c)
	return r.err
}

func (r *recordingEmail) SendReply(_ models.Contact, reply string) error {
	r.replies = append(r.replies, reply)
	return r.err
}

type recordingTelegram struct {
	sent int
	err  error
}

func (r *recordingTelegram) NotifyNewContact(models.Contact) error {
	r.sent++
	return r.err
}

func at(min int) time.Time {
	return time.Date(2024, 1, 1, 12, min, 0, 0, time.UTC)
}

func TestGroupContactsByEmail(t *testing.T) {
	in := []models.Contact{
		{ID: 1, Email: "a@x.io", Name: "Ann", CreatedAt: at(1), Status: models.ContactReplied},
		{ID: 2, Email: "b@x.io", Name: "Bob", CreatedAt: at(2), Status: models.ContactPending},
		{ID: 3, Email: "a@x.io", Name: "Ann K", CreatedAt: at(5), Status: models.ContactReplied},
		{ID: 4, Email: "A@x.io", Name: "Upper", CreatedAt: at(3), Status: models.ContactReplied},
	}
	threads := GroupContactsByEmail(in)
	if len(threads) != 3 {
		t.Fatalf("got %d threads, want 3", len(threads))
	}
	wantOrder := []string{"a@x.io", "A@x.io", "b@x.io"}
	for i, w := range wantOrder {
		if threads[i].Email != w {
			t.Errorf("thread %d = %s, want %s", i, threads[i].Email, w)
		}
	}
	a := threads[0]
	if a.TotalMessages != 2 || a.LatestMessage.ID != 3 || a.Name != "Ann K" {
		t.Errorf("thread a = %+v", a)
	}
	if a.HasUnreplied {
		t.Error("thread a should have no unreplied messages")
	}
	if !threads[2].HasUnreplied {
		t.Error("thread b should be unreplied")
	}
}

func TestGroupContactsTies(t *testing.T) {
	in := []models.Contact{
		{ID: 1, Email: "a@x.io", CreatedAt: at(1)},
		{ID: 2, Email: "b@x.io", CreatedAt: at(1)},
		{ID: 3, Email: "a@x.io", CreatedAt: at(1)},
	}
	threads := GroupContactsByEmail(in)
	if threads[0].Email != "a@x.io" || threads[1].Email != "b@x.io" {
		t.Fatalf("tie order = %s, %s", threads[0].Email, threads[1].Email)
	}
	if threads[0].LatestMessage.ID != 1 {
		t.Errorf("latest = %d, want the first-inserted 1", threads[0].LatestMessage.ID)
	}
}

func TestLatestMessageTieAfterOlder(t *testing.T) {
	in := []models.Contact{
		{ID: 1, Email: "a@x.io", CreatedAt: at(0)},
		{ID: 2, Email: "a@x.io", CreatedAt: at(5)},
		{ID: 3, Email: "a@x.io", CreatedAt: at(5)},
	}
	th := GroupContactsByEmail(in)[0]
	if th.LatestMessage.ID != 2 {
		t.Fatalf("latest = %d, want 2", th.LatestMessage.ID)
	}
	if th.Messages[2].ID != 3 || th.TotalMessages != 3 {
		t.Fatalf("messages = %+v", th.Messages)
	}
}

func TestGroupContactsEmpty(t *testing.T) {
	if got := GroupContactsByEmail(nil); len(got) != 0 {
		t.Fatalf("got %d threads", len(got))
	}
}

func newContactFixture() (*contactService, *recordingEmail, *recordingTelegram, *fixedClock) {
	db := newMemDB()
	clock := &fixedClock{t: at(0)}
	email := &recordingEmail{}
	tg := &recordingTelegram{}
	settings := NewSettingsService(fakeSettings{db}, nil)
	svc := &contactService{repo: fakeContacts{db}, settings: settings, email: email, telegram: tg, now: clock.now}
	return svc, email, tg, clock
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _, _ := newContactFixture()
	ctx := context.Background()
	cases := []struct{ name, email, msg string }{
		{"", "a@x.io", "hi"},
		{"Ann", "", "hi"},
		{"Ann", "a@x.io", "   "},
		{"Ann", "not-an-email", "hi"},
		{"Ann", "Ann <a@x.io>", "hi"},
	}
	for _, tc := range cases {
		if _, err := svc.Submit(ctx, tc.name, tc.email, tc.msg); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Submit(%q, %q, %q) err = %v, want validation", tc.name, tc.email, tc.msg, err)
		}
	}
}

func TestSubmitNotifiesAndSwallowsFailures(t *testing.T) {
	svc, email, tg, _ := newContactFixture()
	email.err = errors.New("smtp down")
	tg.err = errors.New("telegram down")

	c, err := svc.Submit(context.Background(), "Ann", "a@x.io", "hello")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.Status != models.ContactPending || c.ID == 0 {
		t.Errorf("contact = %+v", c)
	}
	if len(email.notified) != 1 || tg.sent != 1 {
		t.Errorf("notifications email=%d telegram=%d, want 1/1", len(email.notified), tg.sent)
	}
}

func TestSubmitRespectsNotifySettings(t *testing.T) {
	svc, email, tg, _ := newContactFixture()
	ctx := context.Background()
	prefs := models.DefaultContactSettings()
	prefs.NotifyByEmail = false
	if _, err := svc.settings.UpdateContact(ctx, &prefs); err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}
	if _, err := svc.Submit(ctx, "Ann", "a@x.io", "hello"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(email.notified) != 0 || tg.sent != 1 {
		t.Errorf("notifications email=%d telegram=%d, want 0/1", len(email.notified), tg.sent)
	}
}

func TestReplyAndStats(t *testing.T) {
	svc, email, _, clock := newContactFixture()
	ctx := context.Background()

	first, _ := svc.Submit(ctx, "Ann", "a@x.io", "one")
	clock.advance(time.Minute)
	if _, err := svc.Submit(ctx, "Bob", "b@x.io", "two"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.Reply(ctx, first.ID, " "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty reply err = %v", err)
	}
	if _, err := svc.Reply(ctx, 999, "thanks"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing id err = %v", err)
	}
	replied, err := svc.Reply(ctx, first.ID, "thanks")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if replied.Status != models.ContactReplied || replied.Reply == nil || *replied.Reply != "thanks" || replied.ReplyDate == nil {
		t.Errorf("replied = %+v", replied)
	}
	if len(email.replies) != 1 {
		t.Errorf("reply emails = %d, want 1", len(email.replies))
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st != (models.ContactStats{Total: 2, Pending: 1, Replied: 1}) {
		t.Errorf("stats = %+v", st)
	}

	list, _ := svc.List(ctx)
	if len(list) != 2 || list[0].Name != "Bob" {
		t.Errorf("list not newest first: %+v", list)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, first.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}
