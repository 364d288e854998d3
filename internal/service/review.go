package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/types"
)

// ReviewService owns reviews and their aggregate statistics.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create adds a review, rejecting self-reviews and duplicates.
func (s *ReviewService) Create(ctx context.Context, riceID, userID uint, req *types.CreateReviewRequest) (*models.Review, error) {
	db := s.db.WithContext(ctx)

	var rice models.Rice
	err := db.Select("id", "user_id").
		Where("id = ? AND is_deleted = ?", riceID, false).
		First(&rice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("rice not found")
	}
	if err != nil {
		return nil, err
	}
	if rice.UserID == userID {
		return nil, apperror.BadRequest("you cannot review your own rice")
	}

	var count int64
	if err := db.Model(&models.Review{}).
		Where("rice_id = ? AND user_id = ?", riceID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.BadRequest("you have already reviewed this rice, use update instead")
	}

	review := models.Review{
		RiceID:  riceID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("review not found")
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByRice pages through a rice's reviews with the requested ordering.
func (s *ReviewService) ListByRice(ctx context.Context, riceID uint, skip, limit int, sortBy string) ([]models.Review, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Review{}).Where("rice_id = ?", riceID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("rice_id = ?", riceID)
	switch sortBy {
	case "helpful":
		query = query.Order("helpful_count DESC")
	case "rating_high":
		query = query.Order("rating DESC")
	case "rating_low":
		query = query.Order("rating ASC")
	default: // recent
		query = query.Order("created_at DESC")
	}

	var reviews []models.Review
	if err := query.Offset(skip).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetForRiceByUser returns one account's review of a rice.
func (s *ReviewService) GetForRiceByUser(ctx context.Context, riceID, userID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		Where("rice_id = ? AND user_id = ?", riceID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("you have not reviewed this rice yet")
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByUser pages through an account's authored reviews, newest first.
func (s *ReviewService) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Review, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Update applies a partial update after the authorship check.
func (s *ReviewService) Update(ctx context.Context, id, userID uint, req *types.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperror.Forbidden("not authorized to update this review")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// MarkHelpful bumps the helpful counter inside the storage engine.
func (s *ReviewService) MarkHelpful(ctx context.Context, id uint) (*models.Review, error) {
	res := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("review not found")
	}
	return s.Get(ctx, id)
}

// Delete removes a review after the authorship check.
func (s *ReviewService) Delete(ctx context.Context, id, userID uint) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return apperror.Forbidden("not authorized to delete this review")
	}
	return s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}

// Stats returns the rating aggregate with zero-filled 1..5 buckets.
func (s *ReviewService) Stats(ctx context.Context, riceID uint) (*types.ReviewStats, error) {
	db := s.db.WithContext(ctx)

	var agg struct {
		AvgRating    *float64
		TotalReviews int64
	}
	err := db.Model(&models.Review{}).
		Select("AVG(rating) AS avg_rating, COUNT(id) AS total_reviews").
		Where("rice_id = ?", riceID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var buckets []struct {
		Rating int
		N      int64
	}
	err = db.Model(&models.Review{}).
		Select("rating, COUNT(id) AS n").
		Where("rice_id = ?", riceID).
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	for _, b := range buckets {
		distribution[b.Rating] = b.N
	}

	return &types.ReviewStats{
		AvgRating:          agg.AvgRating,
		TotalReviews:       agg.TotalReviews,
		RatingDistribution: distribution,
	}, nil
}
