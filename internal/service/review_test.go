package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMN-D/RICE/internal/apperror"
	"github.com/AMN-D/RICE/internal/models"
	"github.com/AMN-D/RICE/internal/types"
)

func TestReviewCreateGuards(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Reviewed")

	_, err := svc.Create(context.Background(), rice.ID, owner.ID, &types.CreateReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	assert.Contains(t, err.Error(), "your own rice")

	review, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 4, Comment: "clean setup"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	_, err = svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 2})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	assert.Contains(t, err.Error(), "already reviewed")
}

func TestReviewCreateRejectsHiddenRice(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Hidden")

	require.NoError(t, NewRiceService(db).Delete(context.Background(), rice.ID, owner.ID, true))

	_, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 3})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReviewListSorts(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Popular")

	ratings := []int{2, 5, 3}
	var ids []uint
	for i, rating := range ratings {
		reviewer := createTestUser(t, db, string(rune('a'+i))+"@example.com")
		review, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Review{}).Where("id = ?", review.ID).
			UpdateColumn("created_at", time.Now().Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, review.ID)
	}
	_, err := svc.MarkHelpful(context.Background(), ids[0])
	require.NoError(t, err)

	got, total, err := svc.ListByRice(context.Background(), rice.ID, 0, 10, "recent")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, ids[2], got[0].ID)

	got, _, err = svc.ListByRice(context.Background(), rice.ID, 0, 10, "helpful")
	require.NoError(t, err)
	assert.Equal(t, ids[0], got[0].ID)

	got, _, err = svc.ListByRice(context.Background(), rice.ID, 0, 10, "rating_high")
	require.NoError(t, err)
	assert.Equal(t, 5, got[0].Rating)

	got, _, err = svc.ListByRice(context.Background(), rice.ID, 0, 10, "rating_low")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Rating)
}

func TestReviewGetForRiceByUser(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Mine")

	_, err := svc.GetForRiceByUser(context.Background(), rice.ID, reviewer.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	created, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	got, err := svc.GetForRiceByUser(context.Background(), rice.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestReviewUpdateAuthorship(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Edited")

	review, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 3, Comment: "ok"})
	require.NoError(t, err)

	rating := 5
	_, err = svc.Update(context.Background(), review.ID, stranger.ID, &types.UpdateReviewRequest{Rating: &rating})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	updated, err := svc.Update(context.Background(), review.ID, reviewer.ID, &types.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "ok", updated.Comment)
}

func TestReviewMarkHelpful(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Helpful")

	review, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.MarkHelpful(context.Background(), review.ID)
		require.NoError(t, err)
	}

	got, err := svc.Get(context.Background(), review.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.HelpfulCount)

	_, err = svc.MarkHelpful(context.Background(), 9999)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReviewDeleteAuthorship(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Removable")

	review, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), review.ID, owner.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	require.NoError(t, svc.Delete(context.Background(), review.ID, reviewer.ID))
	_, err = svc.Get(context.Background(), review.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReviewStatsHistogram(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	svc := NewReviewService(db)
	rice := createTestRice(t, db, owner.ID, "Measured")

	stats, err := svc.Stats(context.Background(), rice.ID)
	require.NoError(t, err)
	assert.Nil(t, stats.AvgRating)
	assert.Zero(t, stats.TotalReviews)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.RatingDistribution)

	for i, rating := range []int{5, 5, 3} {
		reviewer := createTestUser(t, db, string(rune('a'+i))+"@example.com")
		_, err := svc.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	stats, err = svc.Stats(context.Background(), rice.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.AvgRating)
	assert.InDelta(t, 13.0/3.0, *stats.AvgRating, 0.001)
	assert.EqualValues(t, 3, stats.TotalReviews)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 1, 4: 0, 5: 2}, stats.RatingDistribution)
}
