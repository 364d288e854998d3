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

// UserService owns accounts and their profiles.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// FindByGoogleID returns the account for an external subject id, or nil
// when none exists yet.
func (s *UserService) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers an account on first successful identity exchange.
func (s *UserService) Create(ctx context.Context, googleID, email, name, picture string) (*models.User, error) {
	user := models.User{
		Email:    email,
		GoogleID: &googleID,
		Name:     name,
		Picture:  picture,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile retrieves an account's profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile performs the one-time complete-profile action.
func (s *UserService) CreateProfile(ctx context.Context, userID uint, req *types.CompleteProfileRequest) (*models.Profile, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("profile already exists")
	}

	profile := models.Profile{
		ID:        userID,
		Username:  req.Username,
		Bio:       req.Bio,
		GithubURL: req.GithubURL,
		AvatarURL: req.AvatarURL,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update; only present fields change.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.GithubURL != nil {
		profile.GithubURL = *req.GithubURL
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// SetAvatarURL stores the uploaded avatar location on the profile.
func (s *UserService) SetAvatarURL(ctx context.Context, userID uint, url string) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", userID).
		Update("avatar_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("profile not found")
	}
	return nil
}

// DeleteAccount physically removes the account and everything it owns:
// profile, authored reviews, and each owned rice with its themes, media
// and reviews. Returns whether an account row existed.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedRices := tx.Model(&models.Rice{}).Select("id").Where("user_id = ?", userID)
		ownedThemes := tx.Model(&models.Theme{}).Select("id").Where("rice_id IN (?)", ownedRices)

		if err := tx.Where("theme_id IN (?)", ownedThemes).Delete(&models.ThemeMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rice_id IN (?)", ownedRices).Delete(&models.Theme{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rice_id IN (?) OR user_id = ?", ownedRices, userID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Rice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetPublicProfile assembles the public projection for any account,
// falling back to a generated username when no profile was completed.
func (s *UserService) GetPublicProfile(ctx context.Context, userID uint) (*types.PublicProfile, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	out := &types.PublicProfile{
		ID:       user.ID,
		Username: fmt.Sprintf("user_%d", user.ID),
		Name:     user.Name,
		Picture:  user.Picture,
	}

	var profile models.Profile
	err = s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err == nil {
		out.Username = profile.Username
		out.Bio = &profile.Bio
		out.AvatarURL = &profile.AvatarURL
		out.GithubURL = &profile.GithubURL
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return out, nil
}
