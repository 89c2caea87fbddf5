package entity

type Category struct {
	Base
	Name string
}

type Node struct {
	Base
	Name string
	Slug string `gorm:"unique"`

	NumTopics int

	CategoryID string
	Category   Category `gorm:"foreignKey:CategoryID"`
}
