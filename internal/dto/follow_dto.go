package dto

import "github.com/google/uuid"

// FollowEntryResponse is a read-time join of the counterpart's public profile.
type FollowEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	FollowedAt string    `json:"followed_at"`
}

type FollowStatusResponse struct {
	IsFollowing bool `json:"is_following"`
}
