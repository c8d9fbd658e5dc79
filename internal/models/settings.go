package models

import "time"

const (
	SettingsKeySite    = "site"
	SettingsKeyContact = "contact"
)

type SiteSettings struct {
	SiteTitle      string    `json:"site_title"`
	OwnerName      string    `json:"owner_name"`
	Tagline        string    `json:"tagline"`
	About          string    `json:"about"`
	ResumeURL      string    `json:"resume_url"`
	AvatarURL      string    `json:"avatar_url"`
	ChatbotEnabled bool      `json:"chatbot_enabled"`
	Theme          string    `json:"theme"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ContactSettings struct {
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Location         string            `json:"location"`
	Availability     string            `json:"availability"`
	SocialLinks      map[string]string `json:"social_links"`
	NotifyByEmail    bool              `json:"notify_by_email"`
	NotifyByTelegram bool              `json:"notify_by_telegram"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteTitle: "Portfolio",
		Theme:     "dark",
	}
}

func DefaultContactSettings() ContactSettings {
	return ContactSettings{
		SocialLinks:      map[string]string{},
		NotifyByEmail:    true,
		NotifyByTelegram: true,
	}
}
