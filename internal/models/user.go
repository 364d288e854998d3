package models

// User is an account created on first successful Google sign-in.
type User struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	GoogleID *string `gorm:"uniqueIndex" json:"-"`
	Name     string  `json:"name"`
	Picture  string  `json:"picture"`
}

func (User) TableName() string { return "users" }

// Profile shares its primary key with the owning User and is created
// once via the complete-profile flow.
type Profile struct {
	ID        uint   `gorm:"primarykey;autoIncrement:false" json:"id"`
	Username  string `gorm:"size:30;not null;index" json:"username"`
	Bio       string `gorm:"type:text" json:"bio"`
	GithubURL string `gorm:"size:255" json:"github_url"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`
}

func (Profile) TableName() string { return "profiles" }
