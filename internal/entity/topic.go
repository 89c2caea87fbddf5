package entity

import "database/sql"

type Topic struct {
	Base
	Title   string
	Content string `gorm:"type:text"`

	NodeID string
	Node   Node `gorm:"foreignKey:NodeID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	NumViews    int
	NumComments int

	LastReplierID sql.NullString
	LastReplier   User `gorm:"foreignKey:LastReplierID"`
}
