package services

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"sort"
	"strings"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (*models.Contact, error)
	// List returns raw submissions, newest first.
	List(ctx context.Context) ([]models.Contact, error)
	ListThreads(ctx context.Context) ([]models.ContactThread, error)
	Reply(ctx context.Context, id int64, reply string) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (models.ContactStats, error)
}

type contactService struct {
	repo     repositories.ContactRepository
	settings SettingsService
	email    EmailService
	telegram TelegramNotifier
	now      func() time.Time
}

// NewContactService wires the optional notifiers; pass nil for a channel that is not configured.
func NewContactService(repo repositories.ContactRepository, settings SettingsService, email EmailService, telegram TelegramNotifier) ContactService {
	return &contactService{repo: repo, settings: settings, email: email, telegram: telegram, now: time.Now}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func (s *contactService) Submit(ctx context.Context, name, email, message string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, apperr.Validation("name, email and message are required")
	}
	if !validEmail(email) {
		return nil, apperr.Validation("email is malformed")
	}

	c := &models.Contact{
		Name:      name,
		Email:     email,
		Message:   message,
		Status:    models.ContactPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.notify(ctx, *c)
	return c, nil
}

// notify never fails the submission.
func (s *contactService) notify(ctx context.Context, c models.Contact) {
	prefs := models.DefaultContactSettings()
	if s.settings != nil {
		if cs, err := s.settings.GetContact(ctx); err != nil {
			log.Printf("[contact][notify][warn] load contact settings: %v", err)
		} else {
			prefs = *cs
		}
	}
	if s.email != nil && prefs.NotifyByEmail {
		if err := s.email.NotifyNewContact(c); err != nil {
			log.Printf("[contact][notify][email][warn] id=%d: %v", c.ID, err)
		}
	}
	if s.telegram != nil && prefs.NotifyByTelegram {
		if err := s.telegram.NotifyNewContact(c); err != nil {
			log.Printf("[contact][notify][telegram][warn] id=%d: %v", c.ID, err)
		}
	}
}

func (s *contactService) List(ctx context.Context) ([]models.Contact, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Contact, len(items))
	copy(out, items)
	// Stored order is insertion order; reversing before the stable sort keeps newer ids first on ties.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *contactService) ListThreads(ctx context.Context) ([]models.ContactThread, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupContactsByEmail(items), nil
}

func (s *contactService) Reply(ctx context.Context, id int64, reply string) (*models.Contact, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, apperr.Validation("reply is required")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	at := s.now().UTC()
	if err := s.repo.SetReply(ctx, id, reply, at); err != nil {
		return nil, fmt.Errorf("save reply: %w", err)
	}
	c.Status = models.ContactReplied
	c.Reply = &reply
	c.ReplyDate = &at

	if s.email != nil {
		if err := s.email.SendReply(*c, reply); err != nil {
			log.Printf("[contact][reply][email][warn] id=%d: %v", id, err)
		}
	}
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *contactService) Stats(ctx context.Context) (models.ContactStats, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return models.ContactStats{}, err
	}
	var st models.ContactStats
	st.Total = len(items)
	for _, c := range items {
		if c.Status == models.ContactReplied {
			st.Replied++
		} else {
			st.Pending++
		}
	}
	return st, nil
}
