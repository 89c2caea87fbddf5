package entity

type SiteCategory struct {
	Base
	Name string
}

type Site struct {
	Base
	Name        string
	URL         string
	Description string `gorm:"type:text"`

	CategoryID string
	Category   SiteCategory `gorm:"foreignKey:CategoryID"`
}
