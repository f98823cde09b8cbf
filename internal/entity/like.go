package entity

import "time"

type LikeKind string

const (
	LikeKindWhisky LikeKind = "whisky"
	LikeKindPost   LikeKind = "post"
)

// Like is a (user, target, kind) relation. At most one row exists per
// combination; toggling off removes it.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TargetID  string    `json:"target_id"`
	Kind      LikeKind  `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
