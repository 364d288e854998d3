package types

// Page is the envelope every listing endpoint returns.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewPage computes the page metadata from the caller's skip/limit window.
func NewPage[T any](items []T, total int64, skip, limit int) Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       skip/limit + 1,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// PublicProfile is the projection served for any account, with fallbacks
// for accounts that never completed a profile.
type PublicProfile struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	GithubURL *string `json:"github_url"`
	Picture   string  `json:"picture"`
}

// RiceStats aggregates a rice's counters and review figures.
type RiceStats struct {
	Views         int64    `json:"views"`
	DotfileClicks int64    `json:"dotfile_clicks"`
	ThemeCount    int64    `json:"theme_count"`
	AvgRating     *float64 `json:"avg_rating"`
	ReviewCount   int64    `json:"review_count"`
}

// ReviewStats reports the rating aggregate with a zero-filled histogram
// over ratings 1..5.
type ReviewStats struct {
	AvgRating          *float64      `json:"avg_rating"`
	TotalReviews       int64         `json:"total_reviews"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}
