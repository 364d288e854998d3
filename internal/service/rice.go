package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/types"
)

// RiceService owns the showcase hierarchy's root entity.
type RiceService struct {
	db *gorm.DB
}

func NewRiceService(db *gorm.DB) *RiceService {
	return &RiceService{db: db}
}

func orderByDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order")
}

// Create persists a composite submission. The rice, its themes and their
// media land in a single transaction; a failed nested insert rolls back
// the whole submission.
func (s *RiceService) Create(ctx context.Context, userID uint, req *types.CreateRiceRequest) (*models.Rice, error) {
	if len(req.Themes) == 0 {
		return nil, apperror.BadRequest("a rice must have at least one theme")
	}

	rice := models.Rice{
		UserID:     userID,
		Name:       req.Name,
		DotfileURL: req.DotfileURL,
	}
	for _, t := range req.Themes {
		if len(t.Media) == 0 {
			return nil, apperror.BadRequest("a theme must have at least one media item")
		}
		theme := models.Theme{
			Name:         t.Name,
			Description:  t.Description,
			Tags:         t.Tags,
			DisplayOrder: t.DisplayOrder,
		}
		for _, m := range t.Media {
			theme.Media = append(theme.Media, models.ThemeMedia{
				URL:          m.URL,
				MediaType:    m.MediaType,
				DisplayOrder: m.DisplayOrder,
				ThumbnailURL: m.ThumbnailURL,
			})
		}
		rice.Themes = append(rice.Themes, theme)
	}

	// gorm inserts the association tree inside one transaction.
	if err := s.db.WithContext(ctx).Create(&rice).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, rice.ID, false)
}

// Get returns a rice hydrated with its ordered themes and media.
// Soft-deleted rices are hidden unless includeDeleted is set.
func (s *RiceService) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Rice, error) {
	query := s.db.WithContext(ctx).
		Preload("Themes", orderByDisplayOrder).
		Preload("Themes.Media", orderByDisplayOrder).
		Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var rice models.Rice
	err := query.First(&rice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("rice not found")
	}
	if err != nil {
		return nil, err
	}
	return &rice, nil
}

// ListAll pages through public rices. top_rated keeps unreviewed rices
// last regardless of direction, breaking ties by recency.
func (s *RiceService) ListAll(ctx context.Context, skip, limit int, sortBy, sortOrder string) ([]models.Rice, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Rice{}).Where("is_deleted = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}

	query := db.Model(&models.Rice{}).
		Preload("Themes", orderByDisplayOrder).
		Preload("Themes.Media", orderByDisplayOrder).
		Where("rices.is_deleted = ?", false)

	switch sortBy {
	case "popular":
		query = query.Order("rices.views " + dir)
	case "top_rated":
		query = query.
			Joins("LEFT JOIN reviews ON reviews.rice_id = rices.id").
			Group("rices.id").
			Order("CASE WHEN AVG(reviews.rating) IS NULL THEN 1 ELSE 0 END").
			Order("AVG(reviews.rating) " + dir).
			Order("rices.created_at DESC")
	default: // recent
		query = query.Order("rices.created_at " + dir)
	}

	var rices []models.Rice
	if err := query.Offset(skip).Limit(limit).Find(&rices).Error; err != nil {
		return nil, 0, err
	}
	return rices, total, nil
}

// ListByUser pages through one account's rices, newest first.
func (s *RiceService) ListByUser(ctx context.Context, userID uint, skip, limit int, includeDeleted bool) ([]models.Rice, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Rice{}).Where("user_id = ?", userID)
	if !includeDeleted {
		base = base.Where("is_deleted = ?", false)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rices []models.Rice
	err := base.
		Preload("Themes", orderByDisplayOrder).
		Preload("Themes.Media", orderByDisplayOrder).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&rices).Error
	if err != nil {
		return nil, 0, err
	}
	return rices, total, nil
}

// Search matches the query as a case-insensitive substring of the rice
// name or any of its themes' tags, deduplicated by rice.
func (s *RiceService) Search(ctx context.Context, q string, skip, limit int) ([]models.Rice, int64, error) {
	like := "%" + strings.ToLower(q) + "%"
	db := s.db.WithContext(ctx)

	matching := func(query *gorm.DB) *gorm.DB {
		return query.
			Joins("JOIN themes ON themes.rice_id = rices.id").
			Where("rices.is_deleted = ?", false).
			Where("LOWER(rices.name) LIKE ? OR LOWER(themes.tags) LIKE ?", like, like)
	}

	var total int64
	if err := matching(db.Model(&models.Rice{})).Distinct("rices.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rices []models.Rice
	err := matching(db.Model(&models.Rice{})).
		Distinct("rices.*").
		Preload("Themes", orderByDisplayOrder).
		Preload("Themes.Media", orderByDisplayOrder).
		Offset(skip).Limit(limit).
		Find(&rices).Error
	if err != nil {
		return nil, 0, err
	}
	return rices, total, nil
}

// Update applies a partial update after the ownership check.
func (s *RiceService) Update(ctx context.Context, id, userID uint, req *types.UpdateRiceRequest) (*models.Rice, error) {
	rice, err := s.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if rice.UserID != userID {
		return nil, apperror.Forbidden("not authorized to update this rice")
	}

	if req.Name != nil {
		rice.Name = *req.Name
	}
	if req.DotfileURL != nil {
		rice.DotfileURL = *req.DotfileURL
	}

	if err := s.db.WithContext(ctx).Omit("Themes").Save(rice).Error; err != nil {
		return nil, err
	}
	return rice, nil
}

// Delete either flips the visibility flag (soft) or cascades physical
// deletion of themes, media and reviews in one transaction (hard).
func (s *RiceService) Delete(ctx context.Context, id, userID uint, soft bool) error {
	rice, err := s.Get(ctx, id, false)
	if err != nil {
		return err
	}
	if rice.UserID != userID {
		return apperror.Forbidden("not authorized to delete this rice")
	}

	if soft {
		return s.db.WithContext(ctx).Model(&models.Rice{}).Where("id = ?", id).
			UpdateColumn("is_deleted", true).Error
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		themeIDs := tx.Model(&models.Theme{}).Select("id").Where("rice_id = ?", id)
		if err := tx.Where("theme_id IN (?)", themeIDs).Delete(&models.ThemeMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rice_id = ?", id).Delete(&models.Theme{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rice_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rice{}, "id = ?", id).Error
	})
}

// IncrementViews bumps the view counter inside the storage engine so
// concurrent increments are never lost.
func (s *RiceService) IncrementViews(ctx context.Context, id uint) error {
	return s.increment(ctx, id, "views")
}

// IncrementDotfileClicks bumps the dotfile click counter.
func (s *RiceService) IncrementDotfileClicks(ctx context.Context, id uint) error {
	return s.increment(ctx, id, "dotfile_clicks")
}

func (s *RiceService) increment(ctx context.Context, id uint, column string) error {
	res := s.db.WithContext(ctx).Model(&models.Rice{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("rice not found")
	}
	return nil
}

// Stats aggregates a rice's counters and review figures on demand.
func (s *RiceService) Stats(ctx context.Context, id uint) (*types.RiceStats, error) {
	rice, err := s.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var themeCount int64
	if err := db.Model(&models.Theme{}).Where("rice_id = ?", id).Count(&themeCount).Error; err != nil {
		return nil, err
	}

	var agg struct {
		AvgRating   *float64
		ReviewCount int64
	}
	err = db.Model(&models.Review{}).
		Select("AVG(rating) AS avg_rating, COUNT(id) AS review_count").
		Where("rice_id = ?", id).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	return &types.RiceStats{
		Views:         rice.Views,
		DotfileClicks: rice.DotfileClicks,
		ThemeCount:    themeCount,
		AvgRating:     agg.AvgRating,
		ReviewCount:   agg.ReviewCount,
	}, nil
}
