package models

import "time"

// Review is one account's rating of a rice. The (rice, reviewer) pair is
// unique; the persistence layer re-enforces the 1..5 rating range.
type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	RiceID       uint      `gorm:"not null;uniqueIndex:uq_rice_user_review;index:ix_reviews_rice_date" json:"rice_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:uq_rice_user_review;index" json:"user_id"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`
	HelpfulCount int64     `gorm:"not null;default:0" json:"helpful_count"`
	CreatedAt    time.Time `gorm:"index:ix_reviews_rice_date" json:"date_created"`
	UpdatedAt    time.Time `json:"date_updated"`
}

func (Review) TableName() string { return "reviews" }
