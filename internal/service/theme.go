package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/types"
)

// ThemeService owns the sub-galleries within a rice.
type ThemeService struct {
	db *gorm.DB
}

func NewThemeService(db *gorm.DB) *ThemeService {
	return &ThemeService{db: db}
}

// riceOwner resolves the owning account for a rice id.
func riceOwner(db *gorm.DB, riceID uint) (uint, error) {
	var rice models.Rice
	err := db.Select("id", "user_id").First(&rice, "id = ?", riceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperror.NotFound("rice not found")
	}
	if err != nil {
		return 0, err
	}
	return rice.UserID, nil
}

// Create appends a theme (with its media) to an existing rice.
func (s *ThemeService) Create(ctx context.Context, riceID, userID uint, req *types.CreateThemeRequest) (*models.Theme, error) {
	db := s.db.WithContext(ctx)

	owner, err := riceOwner(db, riceID)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, apperror.Forbidden("not authorized to add themes to this rice")
	}
	if len(req.Media) == 0 {
		return nil, apperror.BadRequest("a theme must have at least one media item")
	}

	theme := models.Theme{
		RiceID:       riceID,
		Name:         req.Name,
		Description:  req.Description,
		Tags:         req.Tags,
		DisplayOrder: req.DisplayOrder,
	}
	for _, m := range req.Media {
		theme.Media = append(theme.Media, models.ThemeMedia{
			URL:          m.URL,
			MediaType:    m.MediaType,
			DisplayOrder: m.DisplayOrder,
			ThumbnailURL: m.ThumbnailURL,
		})
	}

	if err := db.Create(&theme).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, theme.ID)
}

// Get returns a theme with its ordered media.
func (s *ThemeService) Get(ctx context.Context, id uint) (*models.Theme, error) {
	var theme models.Theme
	err := s.db.WithContext(ctx).
		Preload("Media", orderByDisplayOrder).
		First(&theme, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("theme not found")
	}
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// ListByRice returns a rice's themes in display order.
func (s *ThemeService) ListByRice(ctx context.Context, riceID uint) ([]models.Theme, error) {
	var themes []models.Theme
	err := s.db.WithContext(ctx).
		Preload("Media", orderByDisplayOrder).
		Where("rice_id = ?", riceID).
		Order("display_order").
		Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

// Update applies a partial update after resolving the owner chain.
func (s *ThemeService) Update(ctx context.Context, id, userID uint, req *types.UpdateThemeRequest) (*models.Theme, error) {
	db := s.db.WithContext(ctx)

	theme, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := riceOwner(db, theme.RiceID)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, apperror.Forbidden("not authorized to update this theme")
	}

	if req.Name != nil {
		theme.Name = *req.Name
	}
	if req.Description != nil {
		theme.Description = *req.Description
	}
	if req.Tags != nil {
		theme.Tags = *req.Tags
	}
	if req.DisplayOrder != nil {
		theme.DisplayOrder = *req.DisplayOrder
	}

	if err := db.Omit("Media").Save(theme).Error; err != nil {
		return nil, err
	}
	return theme, nil
}

// Delete removes a theme and its media, refusing to remove the rice's
// last theme.
func (s *ThemeService) Delete(ctx context.Context, id, userID uint) error {
	db := s.db.WithContext(ctx)

	theme, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	owner, err := riceOwner(db, theme.RiceID)
	if err != nil {
		return err
	}
	if owner != userID {
		return apperror.Forbidden("not authorized to delete this theme")
	}

	var count int64
	if err := db.Model(&models.Theme{}).Where("rice_id = ?", theme.RiceID).Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return apperror.BadRequest("cannot delete the last theme: a rice must have at least one theme")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("theme_id = ?", id).Delete(&models.ThemeMedia{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Theme{}, "id = ?", id).Error
	})
}
