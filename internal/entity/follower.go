package entity

import "time"

// Follower records that FollowerID follows UserID. The composite
// primary key keeps the pair unique.
type Follower struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	FollowerID   string `gorm:"primaryKey"`
	FollowerUser User   `gorm:"foreignKey:FollowerID"`
}
