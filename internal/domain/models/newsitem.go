// internal/domain/models/newsitem.go
package models

// News categories.
const (
	NewsCategoryNews           = "news"
	NewsCategoryEvents         = "events"
	NewsCategoryUpcomingEvents = "upcoming_events"
)

// Publication states of a news item.
const (
	NewsDraft     = "draft"
	NewsPublished = "published"
)

// NewsItem is an article or event entry. Content holds sanitized rich HTML.
type NewsItem struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title"`
	Content            string   `json:"content,omitempty"`
	Excerpt            string   `json:"excerpt,omitempty"`
	Author             string   `json:"author,omitempty"`
	PublishedDate      string   `json:"published_date,omitempty"`
	Category           string   `json:"category"`
	IsFeatured         bool     `json:"is_featured"`
	Status             string   `json:"status"`
	Tags               []string `json:"tags"`
	GoogleCalendarLink string   `json:"google_calendar_link,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// IsPublished reports whether the item is visible to the public.
func (n NewsItem) IsPublished() bool {
	return n.Status == NewsPublished
}
