// Package store - store/settings.go
package store

import (
	"sync"

	"go-bet-tips/models"
)

// SettingsRepo owns the singleton site configuration. Exactly one record
// exists; first run seeds the defaults, later runs shallow-merge whatever
// was persisted over them so new fields always carry a default.
type SettingsRepo struct {
	mu        sync.Mutex
	persister Persister
	settings  models.SiteSettings
}

// NewSettingsRepo loads and merges the persisted settings.
func NewSettingsRepo(p Persister) *SettingsRepo {
	r := &SettingsRepo{persister: p}
	var saved models.SiteSettings
	if p.Load(SlotSettings, &saved) {
		r.settings = models.MergeOverDefaults(saved)
	} else {
		r.settings = models.DefaultSiteSettings()
	}
	p.Save(SlotSettings, r.settings)
	return r
}

// Get returns the current settings.
func (r *SettingsRepo) Get() models.SiteSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// Update replaces the settings wholesale, as the admin form submits the
// complete record. An empty admin key keeps the previous one so a partial
// form cannot lock admins out of registration.
func (r *SettingsRepo) Update(s models.SiteSettings) models.SiteSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.AdminKey == "" {
		s.AdminKey = r.settings.AdminKey
	}
	r.settings = s
	r.persister.Save(SlotSettings, r.settings)
	return r.settings
}
