// internal/domain/models/person.go
package models

// Person categories.
const (
	PersonAdvisor      = "advisor"
	PersonTeamMember   = "team_member"
	PersonCollaborator = "collaborator"
)

// Person is a researcher profile in the people collection.
type Person struct {
	ID                string            `json:"id,omitempty"`
	Name              string            `json:"name"`
	Title             string            `json:"title,omitempty"`
	Category          string            `json:"category"` // advisor | team_member | collaborator
	Bio               string            `json:"bio,omitempty"`
	ResearchInterests []string          `json:"research_interests"`
	SocialLinks       map[string]string `json:"social_links,omitempty"`
	Image             string            `json:"image,omitempty"`
	Email             string            `json:"email,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
