package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

const (
	EventSettingsUpdated        = "settings:updated"
	EventContactSettingsUpdated = "contact-settings:updated"
)

// SettingsPublisher fans settings changes out to listeners. Publish must not block on slow listeners.
type SettingsPublisher interface {
	Publish(topic string, payload any)
}

type SettingsService interface {
	GetSite(ctx context.Context) (*models.SiteSettings, error)
	UpdateSite(ctx context.Context, s *models.SiteSettings) (*models.SiteSettings, error)
	GetContact(ctx context.Context) (*models.ContactSettings, error)
	UpdateContact(ctx context.Context, s *models.ContactSettings) (*models.ContactSettings, error)
}

type settingsService struct {
	repo      repositories.SettingsRepository
	publisher SettingsPublisher
	now       func() time.Time
}

func NewSettingsService(repo repositories.SettingsRepository, publisher SettingsPublisher) SettingsService {
	return &settingsService{repo: repo, publisher: publisher, now: time.Now}
}

func (s *settingsService) GetSite(ctx context.Context) (*models.SiteSettings, error) {
	out := models.DefaultSiteSettings()
	if _, err := s.repo.Get(ctx, models.SettingsKeySite, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *settingsService) UpdateSite(ctx context.Context, in *models.SiteSettings) (*models.SiteSettings, error) {
	in.SiteTitle = strings.TrimSpace(in.SiteTitle)
	if in.SiteTitle == "" {
		return nil, apperr.Validation("site_title is required")
	}
	if in.Theme == "" {
		in.Theme = models.DefaultSiteSettings().Theme
	}
	in.UpdatedAt = s.now().UTC()
	if err := s.repo.Put(ctx, models.SettingsKeySite, in, in.UpdatedAt); err != nil {
		return nil, fmt.Errorf("save site settings: %w", err)
	}
	s.publish(EventSettingsUpdated, *in)
	return in, nil
}

func (s *settingsService) GetContact(ctx context.Context) (*models.ContactSettings, error) {
	out := models.DefaultContactSettings()
	if _, err := s.repo.Get(ctx, models.SettingsKeyContact, &out); err != nil {
		return nil, err
	}
	if out.SocialLinks == nil {
		out.SocialLinks = map[string]string{}
	}
	return &out, nil
}

func (s *settingsService) UpdateContact(ctx context.Context, in *models.ContactSettings) (*models.ContactSettings, error) {
	if in.Email != "" && !validEmail(in.Email) {
		return nil, apperr.Validation("email is malformed")
	}
	if in.SocialLinks == nil {
		in.SocialLinks = map[string]string{}
	}
	in.UpdatedAt = s.now().UTC()
	if err := s.repo.Put(ctx, models.SettingsKeyContact, in, in.UpdatedAt); err != nil {
		return nil, fmt.Errorf("save contact settings: %w", err)
	}
	s.publish(EventContactSettingsUpdated, *in)
	return in, nil
}

func (s *settingsService) publish(topic string, payload any) {
	if s.publisher != nil {
		s.publisher.Publish(topic, payload)
	}
}
