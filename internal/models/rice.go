package models

import "time"

// Rice is a showcased configuration. Deletion is usually a soft delete:
// IsDeleted hides the row from public listings without removing it.
type Rice struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	DotfileURL    string    `gorm:"size:500;not null" json:"dotfile_url"`
	Views         int64     `gorm:"not null;default:0" json:"views"`
	DotfileClicks int64     `gorm:"not null;default:0" json:"dotfile_clicks"`
	IsDeleted     bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt     time.Time `json:"date_added"`
	UpdatedAt     time.Time `json:"date_updated"`

	Themes []Theme `gorm:"foreignKey:RiceID" json:"themes,omitempty"`
}

func (Rice) TableName() string { return "rices" }

// Theme is a sub-gallery within a rice. A rice keeps at least one theme
// at all times after creation.
type Theme struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	RiceID       uint      `gorm:"not null;index:ix_themes_rice_order" json:"rice_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Tags         string    `gorm:"size:500" json:"tags"`
	DisplayOrder int       `gorm:"not null;default:0;index:ix_themes_rice_order" json:"display_order"`
	CreatedAt    time.Time `json:"date_added"`

	Media []ThemeMedia `gorm:"foreignKey:ThemeID" json:"media,omitempty"`
}

func (Theme) TableName() string { return "themes" }

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// ThemeMedia is an image or video inside a theme. A theme keeps at least
// one media item at all times.
type ThemeMedia struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ThemeID      uint      `gorm:"not null;index:ix_theme_media_order" json:"theme_id"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	MediaType    MediaType `gorm:"size:10;not null" json:"media_type"`
	DisplayOrder int       `gorm:"not null;default:0;index:ix_theme_media_order" json:"display_order"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnail_url"`
	CreatedAt    time.Time `json:"date_added"`
}

func (ThemeMedia) TableName() string { return "theme_media" }
