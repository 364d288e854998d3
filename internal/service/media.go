package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/types"
)

// MediaService owns the images and videos inside themes.
type MediaService struct {
	db *gorm.DB
}

func NewMediaService(db *gorm.DB) *MediaService {
	return &MediaService{db: db}
}

// themeOwner walks the theme -> rice chain to its owning account.
func themeOwner(db *gorm.DB, themeID uint) (uint, error) {
	var theme models.Theme
	err := db.Select("id", "rice_id").First(&theme, "id = ?", themeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperror.NotFound("theme not found")
	}
	if err != nil {
		return 0, err
	}
	return riceOwner(db, theme.RiceID)
}

// Create appends a media item to an existing theme.
func (s *MediaService) Create(ctx context.Context, themeID, userID uint, req *types.CreateMediaRequest) (*models.ThemeMedia, error) {
	db := s.db.WithContext(ctx)

	owner, err := themeOwner(db, themeID)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, apperror.Forbidden("not authorized to add media to this theme")
	}

	media := models.ThemeMedia{
		ThemeID:      themeID,
		URL:          req.URL,
		MediaType:    req.MediaType,
		DisplayOrder: req.DisplayOrder,
		ThumbnailURL: req.ThumbnailURL,
	}
	if err := db.Create(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (s *MediaService) Get(ctx context.Context, id uint) (*models.ThemeMedia, error) {
	var media models.ThemeMedia
	err := s.db.WithContext(ctx).First(&media, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("media not found")
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// ListByTheme returns a theme's media in display order.
func (s *MediaService) ListByTheme(ctx context.Context, themeID uint) ([]models.ThemeMedia, error) {
	var media []models.ThemeMedia
	err := s.db.WithContext(ctx).
		Where("theme_id = ?", themeID).
		Order("display_order").
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

// Update applies a partial update after resolving the owner chain.
func (s *MediaService) Update(ctx context.Context, id, userID uint, req *types.UpdateMediaRequest) (*models.ThemeMedia, error) {
	db := s.db.WithContext(ctx)

	media, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := themeOwner(db, media.ThemeID)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, apperror.Forbidden("not authorized to update this media")
	}

	if req.URL != nil {
		media.URL = *req.URL
	}
	if req.DisplayOrder != nil {
		media.DisplayOrder = *req.DisplayOrder
	}
	if req.ThumbnailURL != nil {
		media.ThumbnailURL = *req.ThumbnailURL
	}

	if err := db.Save(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// Reorder applies a batch of display-order assignments as one unit. Every
// referenced media item must belong to the given theme.
func (s *MediaService) Reorder(ctx context.Context, themeID, userID uint, items []types.MediaOrderItem) ([]models.ThemeMedia, error) {
	db := s.db.WithContext(ctx)

	owner, err := themeOwner(db, themeID)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, apperror.Forbidden("not authorized to reorder media")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var media models.ThemeMedia
			err := tx.First(&media, "id = ?", item.MediaID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("media not found")
			}
			if err != nil {
				return err
			}
			if media.ThemeID != themeID {
				return apperror.BadRequest(fmt.Sprintf("media %d does not belong to theme %d", item.MediaID, themeID))
			}
			if err := tx.Model(&media).UpdateColumn("display_order", item.DisplayOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListByTheme(ctx, themeID)
}

// Delete removes a media item, refusing to remove the theme's last one.
func (s *MediaService) Delete(ctx context.Context, id, userID uint) error {
	db := s.db.WithContext(ctx)

	media, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	owner, err := themeOwner(db, media.ThemeID)
	if err != nil {
		return err
	}
	if owner != userID {
		return apperror.Forbidden("not authorized to delete this media")
	}

	var count int64
	if err := db.Model(&models.ThemeMedia{}).Where("theme_id = ?", media.ThemeID).Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return apperror.BadRequest("cannot delete the last media item: a theme must have at least one image or video")
	}

	return db.Delete(&models.ThemeMedia{}, "id = ?", id).Error
}
