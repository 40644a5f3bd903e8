// internal/domain/models/achievement.go
package models

// Achievement is an award, funding or recognition record.
type Achievement struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"` // award | funding | recognition

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
