package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMN-D/RICE/internal/testdb"
	"github.com/AMN-D/RICE/internal/types"
)

// TestShowcaseLifecyclePostgres runs the composite create, review and
// cascade paths against a real postgres instance.
func TestShowcaseLifecyclePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	td := testdb.Setup(t)
	db := td.DB

	users := NewUserService(db)
	owner, err := users.Create(context.Background(), "sub-owner", "owner@example.com", "Owner", "")
	require.NoError(t, err)
	reviewer, err := users.Create(context.Background(), "sub-reviewer", "reviewer@example.com", "Reviewer", "")
	require.NoError(t, err)

	rices := NewRiceService(db)
	rice, err := rices.Create(context.Background(), owner.ID, riceRequest("Postgres Rice"))
	require.NoError(t, err)
	require.Len(t, rice.Themes, 1)

	reviews := NewReviewService(db)
	_, err = reviews.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 5, Comment: "solid"})
	require.NoError(t, err)

	// The unique index on (rice_id, user_id) holds in postgres too.
	_, err = reviews.Create(context.Background(), rice.ID, reviewer.ID, &types.CreateReviewRequest{Rating: 1})
	require.Error(t, err)

	stats, err := rices.Stats(context.Background(), rice.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.AvgRating)
	assert.InDelta(t, 5.0, *stats.AvgRating, 0.001)

	deleted, err := users.DeleteAccount(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = rices.Get(context.Background(), rice.ID, true)
	require.Error(t, err)
}
