package entity

type Comment struct {
	Base
	Content string `gorm:"type:text"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	TopicID string `gorm:"index"`
	Topic   Topic  `gorm:"foreignKey:TopicID"`
}
