package entity

import "time"

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostSummary is the community-preview view model.
type PostSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Excerpt        string    `json:"excerpt"`
	AuthorNickname string    `json:"author_nickname"`
	ImageURL       string    `json:"image_url"`
	LikesLabel     string    `json:"likes_label"`
	CreatedAt      time.Time `json:"created_at"`
}

type Comment struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	PostID         string    `json:"post_id"`
	Body           string    `json:"body"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
}
