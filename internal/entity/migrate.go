package entity

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Follower{},
		&Category{},
		&Node{},
		&Topic{},
		&Comment{},
		&Notice{},
		&FavoriteTopic{},
		&EmailVerification{},
		&PasswordReset{},
		&SiteCategory{},
		&Site{},
	)
}
