// Package models defines data structures used across the application.
// File: models/settings.go
package models

// ----------------------- site settings model -----------------------

// SiteSettings is the singleton site configuration. The splash fields are
// optional and fall back to the site name when empty.
type SiteSettings struct {
	SiteName      string `json:"siteName"`
	ContactNumber string `json:"contactNumber"`
	AdminKey      string `json:"adminKey"`
	Email         string `json:"email"`
	Telegram      string `json:"telegram"`
	YouTube       string `json:"youtube"`
	Instagram     string `json:"instagram"`
	Facebook      string `json:"facebook"`
	Threads       string `json:"threads"`
	TikTok        string `json:"tiktok"`
	SplashTitle   string `json:"splashTitle,omitempty"`
	SplashSub     string `json:"splashSubtitle,omitempty"`
	SplashLogoURL string `json:"splashLogoUrl,omitempty"`
}

// DefaultSiteSettings returns the settings seeded on first run.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:      "GEMINI BETS",
		ContactNumber: "1234567890",
		AdminKey:      "GEMINI_ADMIN_2024",
		Email:         "admin@geminibets.com",
		Telegram:      "#",
		YouTube:       "#",
		Instagram:     "#",
		Facebook:      "#",
		Threads:       "#",
		TikTok:        "#",
	}
}

// MergeOverDefaults lays the persisted settings over the defaults so that
// fields introduced after the blob was written still carry a default value.
func MergeOverDefaults(saved SiteSettings) SiteSettings {
	merged := DefaultSiteSettings()
	if saved.SiteName != "" {
		merged.SiteName = saved.SiteName
	}
	if saved.ContactNumber != "" {
		merged.ContactNumber = saved.ContactNumber
	}
	if saved.AdminKey != "" {
		merged.AdminKey = saved.AdminKey
	}
	if saved.Email != "" {
		merged.Email = saved.Email
	}
	if saved.Telegram != "" {
		merged.Telegram = saved.Telegram
	}
	if saved.YouTube != "" {
		merged.YouTube = saved.YouTube
	}
	if saved.Instagram != "" {
		merged.Instagram = saved.Instagram
	}
	if saved.Facebook != "" {
		merged.Facebook = saved.Facebook
	}
	if saved.Threads != "" {
		merged.Threads = saved.Threads
	}
	if saved.TikTok != "" {
		merged.TikTok = saved.TikTok
	}
	// splash fields are optional, empty means "use the site name"
	merged.SplashTitle = saved.SplashTitle
	merged.SplashSub = saved.SplashSub
	merged.SplashLogoURL = saved.SplashLogoURL
	return merged
}

// PublicSettings is the subset of SiteSettings safe to expose to any
// visitor. The admin registration key stays server-side.
type PublicSettings struct {
	SiteName      string `json:"siteName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Telegram      string `json:"telegram"`
	YouTube       string `json:"youtube"`
	Instagram     string `json:"instagram"`
	Facebook      string `json:"facebook"`
	Threads       string `json:"threads"`
	TikTok        string `json:"tiktok"`
	SplashTitle   string `json:"splashTitle,omitempty"`
	SplashSub     string `json:"splashSubtitle,omitempty"`
	SplashLogoURL string `json:"splashLogoUrl,omitempty"`
}

// Public strips the admin key from the settings.
func (s SiteSettings) Public() PublicSettings {
	return PublicSettings{
		SiteName:      s.SiteName,
		ContactNumber: s.ContactNumber,
		Email:         s.Email,
		Telegram:      s.Telegram,
		YouTube:       s.YouTube,
		Instagram:     s.Instagram,
		Facebook:      s.Facebook,
		Threads:       s.Threads,
		TikTok:        s.TikTok,
		SplashTitle:   s.SplashTitle,
		SplashSub:     s.SplashSub,
		SplashLogoURL: s.SplashLogoURL,
	}
}
