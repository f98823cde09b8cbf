package entity

import "time"

type Whisky struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Distillery string    `json:"distillery"`
	Region     string    `json:"region"`
	ABV        float64   `json:"abv"`
	ImageURL   string    `json:"image_url"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WhiskyListItem is the display-ready catalog row. Image URLs are resolved
// and like counters formatted once at assembly time.
type WhiskyListItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Distillery string  `json:"distillery"`
	Region     string  `json:"region"`
	ABV        float64 `json:"abv"`
	ImageURL   string  `json:"image_url"`
	LikesLabel string  `json:"likes_label"`
	IsLiked    bool    `json:"is_liked"`
}
