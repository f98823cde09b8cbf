package entity

import "time"

type UserRole string

const (
	RoleMember    UserRole = "member"
	RoleModerator UserRole = "moderator"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Handle    string    `json:"handle"`
	Nickname  string    `json:"nickname"`
	Password  string    `json:"-"`
	AvatarURL string    `json:"avatar_url"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
