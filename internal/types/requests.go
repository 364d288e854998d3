package types

import "github.com/AMN-D/RICE/internal/models"

// CompleteProfileRequest is the body of the one-time complete-profile action.
type CompleteProfileRequest struct {
	Username  string `json:"username" binding:"required,max=30"`
	Bio       string `json:"bio"`
	GithubURL string `json:"github_url"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfileRequest carries a partial profile update; nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=1,max=30"`
	Bio       *string `json:"bio"`
	GithubURL *string `json:"github_url"`
	AvatarURL *string `json:"avatar_url"`
}

// CreateMediaRequest describes one media item inside a theme.
type CreateMediaRequest struct {
	URL          string           `json:"url" binding:"required,url,max=500"`
	MediaType    models.MediaType `json:"media_type" binding:"required,oneof=IMAGE VIDEO"`
	DisplayOrder int              `json:"display_order" binding:"gte=0"`
	ThumbnailURL string           `json:"thumbnail_url" binding:"omitempty,url,max=500"`
}

// CreateThemeRequest describes a theme and its media. Every theme arrives
// with at least one media item.
type CreateThemeRequest struct {
	Name         string               `json:"name" binding:"required,min=1,max=100"`
	Description  string               `json:"description"`
	Tags         string               `json:"tags" binding:"max=500"`
	DisplayOrder int                  `json:"display_order" binding:"gte=0"`
	Media        []CreateMediaRequest `json:"media" binding:"required,min=1,dive"`
}

// CreateRiceRequest is a composite submission: the rice plus at least one
// theme, each with at least one media item.
type CreateRiceRequest struct {
	Name       string               `json:"name" binding:"required,min=1,max=100"`
	DotfileURL string               `json:"dotfile_url" binding:"required,url,max=500"`
	Themes     []CreateThemeRequest `json:"themes" binding:"required,min=1,dive"`
}

type UpdateRiceRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	DotfileURL *string `json:"dotfile_url" binding:"omitempty,url,max=500"`
}

type UpdateThemeRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string `json:"description"`
	Tags         *string `json:"tags" binding:"omitempty,max=500"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
}

type UpdateMediaRequest struct {
	URL          *string `json:"url" binding:"omitempty,url,max=500"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"omitempty,url,max=500"`
}

// MediaOrderItem assigns a display order to one media item in a reorder
// batch.
type MediaOrderItem struct {
	MediaID      uint `json:"media_id" binding:"required"`
	DisplayOrder int  `json:"display_order" binding:"gte=0"`
}

type ReorderMediaRequest struct {
	MediaOrder []MediaOrderItem `json:"media_order" binding:"required,min=1,dive"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}
