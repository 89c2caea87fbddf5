package entity

type User struct {
	Base
	Email        string `gorm:"unique"`
	Name         string `gorm:"unique"`
	PasswordHash string

	Bio       string
	Location  string
	Website   string
	Weibo     string
	AvatarURL string

	// ActivityScore is derived: NumTopics*5 + NumComments. It is
	// recomputed in the same statement as every counter update.
	ActivityScore int `gorm:"index"`
	NumTopics     int
	NumComments   int

	EmailVerified bool
	IsActive      bool `gorm:"default:true"`
	IsAdmin       bool
	LastIP        string
}
