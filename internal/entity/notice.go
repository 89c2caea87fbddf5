package entity

import "database/sql"

// Notice is only ever created by the engagement workflow, never
// directly by a user. Rows are soft-deleted by flipping IsDeleted.
type Notice struct {
	Base
	FromUserID string
	FromUser   User `gorm:"foreignKey:FromUserID"`

	ToUserID string `gorm:"index"`
	ToUser   User   `gorm:"foreignKey:ToUserID"`

	TopicID sql.NullString
	Topic   Topic `gorm:"foreignKey:TopicID"`

	Content string `gorm:"type:text"`

	IsRead    bool
	IsDeleted bool
}
