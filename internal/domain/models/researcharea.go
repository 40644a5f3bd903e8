// internal/domain/models/researcharea.go
package models

// ResearchArea is a thematic research domain shown on the landing page.
type ResearchArea struct {
	ID                  string   `json:"id,omitempty"`
	Title               string   `json:"title"`
	Description         string   `json:"description,omitempty"`
	DetailedDescription string   `json:"detailed_description,omitempty"`
	ResearchObjectives  []string `json:"research_objectives"`
	KeyApplications     []string `json:"key_applications"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
