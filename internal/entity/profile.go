package entity

// ProfileSummary aggregates a user's public profile with review and post
// statistics.
type ProfileSummary struct {
	UserID        string  `json:"user_id"`
	Handle        string  `json:"handle"`
	Nickname      string  `json:"nickname"`
	AvatarURL     string  `json:"avatar_url"`
	ReviewCount   int64   `json:"review_count"`
	PostCount     int64   `json:"post_count"`
	AverageRating float64 `json:"average_rating"`
}
