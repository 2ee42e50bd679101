package models

import (
	"time"

	"gorm.io/datatypes"
)

// BrowserSession binds a browser cookie to an access token issued by the
// authentication provider.
type BrowserSession struct {
	ID          string    `gorm:"primaryKey"`
	AccessToken string    `gorm:"not null"`
	Language    string    `gorm:"not null;default:en"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time
}

// UserInfoEntry is the cached "last known user info" blob of a session.
type UserInfoEntry struct {
	SessionID string         `gorm:"primaryKey"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
