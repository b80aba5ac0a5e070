package model

import "time"

// RefreshToken is the server-tracked half of a session: one row per user,
// rotated on every login/register, revoked on logout. The token string is
// opaque to the client and only ever compared by exact match.
type RefreshToken struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	Token      string    `json:"token" gorm:"uniqueIndex;size:64;not null"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	ExpiryDate time.Time `json:"expiry_date" gorm:"not null"`
	CreatedAt  time.Time `json:"-"`
}
