package entity

import "time"

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	WhiskyID  string    `json:"whisky_id"`
	Rating    float64   `json:"rating"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewSummary is the view model for profile review lists. Defaults
// (anonymous nickname, resolved image URLs) are substituted at assembly,
// never re-derived downstream.
type ReviewSummary struct {
	ID             string    `json:"id"`
	WhiskyID       string    `json:"whisky_id"`
	WhiskyName     string    `json:"whisky_name"`
	WhiskyImageURL string    `json:"whisky_image_url"`
	Rating         float64   `json:"rating"`
	Body           string    `json:"body"`
	ImageURL       string    `json:"image_url"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewPage carries one page of reviews plus the opaque token for the next
// one; NextCursor is nil on the final page.
type ReviewPage struct {
	Items      []*ReviewSummary `json:"items"`
	NextCursor *string          `json:"next_cursor"`
}
