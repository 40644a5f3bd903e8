// internal/domain/models/publication.go
package models

// Publication types.
const (
	PublicationJournal     = "journal"
	PublicationConference  = "conference"
	PublicationBookChapter = "book_chapter"
)

// Publication is a bibliographic record. Only the venue field matching
// PublicationType is expected to be set.
type Publication struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	PublicationType string   `json:"publication_type"`
	Year            int      `json:"year"`
	JournalName     string   `json:"journal_name,omitempty"`
	ConferenceName  string   `json:"conference_name,omitempty"`
	BookTitle       string   `json:"book_title,omitempty"`
	Citations       int      `json:"citations"`
	Keywords        []string `json:"keywords"`
	Link            string   `json:"link,omitempty"`
	IsOpenAccess    bool     `json:"is_open_access"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Venue returns whichever venue name applies to the publication type.
func (p Publication) Venue() string {
	switch p.PublicationType {
	case PublicationJournal:
		return p.JournalName
	case PublicationConference:
		return p.ConferenceName
	case PublicationBookChapter:
		return p.BookTitle
	}
	return ""
}
