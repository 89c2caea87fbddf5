package entity

import "time"

// FavoriteTopic bookmarks a topic for a user. The composite primary
// key forbids duplicate marks for the same pair.
type FavoriteTopic struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TopicID string `gorm:"primaryKey"`
	Topic   Topic  `gorm:"foreignKey:TopicID"`
}
