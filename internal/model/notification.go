package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeRating  = "rating"
	NotificationTypeComment = "comment"
	NotificationTypeLike    = "like"
	NotificationTypeFollow  = "follow"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`  // User who receives the notification
	ActorID    uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`       // User who triggered the notification
	EntityID   uuid.UUID `gorm:"type:uuid;not null" json:"entity_id"`      // ID of the Project, Comment or User
	EntityType string    `gorm:"size:50;not null" json:"entity_type"`      // 'project', 'comment' or 'user'
	Type       string    `gorm:"size:50;not null" json:"type"`             // 'rating', 'comment', 'like', 'follow'
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations - using pointers to avoid recursion if User has Notifications
	User  *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
