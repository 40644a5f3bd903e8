// internal/domain/models/project.go
package models

// Project statuses.
const (
	ProjectPlanning  = "planning"
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
)

// Project is a research project.
type Project struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	TeamLeader   string   `json:"team_leader,omitempty"`
	TeamMembers  []string `json:"team_members"`
	FundedBy     string   `json:"funded_by,omitempty"`
	ResearchArea string   `json:"research_area,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
