package domain

import "time"

// UserSummary is one account returned by a directory search, optionally
// enriched with profile fields from the user endpoint.
// Name, Location and Email are nil when GitHub does not expose them.
type UserSummary struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Name        *string   `json:"name,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Email       *string   `json:"email,omitempty"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchPage is one page of search hits plus the total reported by the API.
type SearchPage struct {
	Items      []UserSummary `json:"items"`
	TotalCount int           `json:"total_count"`
}
