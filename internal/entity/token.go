package entity

import "time"

// EmailVerification holds at most one pending verification token per
// user. Re-requests replace the row, redemption deletes it.
type EmailVerification struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Token     string
	CreatedAt time.Time
}

// PasswordReset holds at most one pending recovery token per user.
type PasswordReset struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Token     string
	CreatedAt time.Time
}
