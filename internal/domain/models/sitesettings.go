// internal/domain/models/sitesettings.go
package models

// SiteSettings is the singleton site configuration edited from the admin
// console. Only the first document in the settings collection is used.
type SiteSettings struct {
	ID string `json:"id,omitempty"`

	// Display settings
	SiteName string `json:"site_name,omitempty"`
	Logo     string `json:"logo,omitempty"`

	// Contact
	ContactEmail   string `json:"contact_email,omitempty"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	ContactAddress string `json:"contact_address,omitempty"`

	GoogleCalendarURL string `json:"google_calendar_url,omitempty"`

	// Display preferences
	ShowNewsOnHome       bool `json:"show_news_on_home"`
	ShowEventsOnHome     bool `json:"show_events_on_home"`
	ShowAchievementsHome bool `json:"show_achievements_on_home"`

	UpdatedAt string `json:"updated_at,omitempty"`
}

// HasLogo returns true if a logo has been configured.
func (s *SiteSettings) HasLogo() bool {
	return s.Logo != ""
}

// DefaultSiteName is used when no settings document exists.
const DefaultSiteName = "Research Group"
