package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain"
)

func TestReviewCreate_RecomputesProviderRating(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	for _, rating := range []int{5, 3} {
		require.NoError(t, repo.Create(ctx, &domain.Review{
			ServiceID:  f.listing.ID,
			CustomerID: f.customer.ID,
			ProviderID: f.provider.ID,
			Rating:     rating,
			ReviewText: "ok",
		}))
	}

	var provider domain.Account
	require.NoError(t, db.First(&provider, f.provider.ID).Error)
	assert.Equal(t, 2, provider.TotalReviews)
	assert.InDelta(t, 4.0, provider.AverageRating, 0.0001)
}

func TestReviewCreateOnce_ConcurrentCallersGetOneReview(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingCompleted)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bookingID := b.ID
			errs[i] = repo.CreateOnce(ctx, &domain.Review{
				BookingID:  &bookingID,
				ServiceID:  f.listing.ID,
				CustomerID: f.customer.ID,
				ProviderID: f.provider.ID,
				Rating:     5,
			})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicate):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, dup)

	var n int64
	require.NoError(t, db.Model(&domain.Review{}).Where("booking_id = ?", b.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	var provider domain.Account
	require.NoError(t, db.First(&provider, f.provider.ID).Error)
	assert.Equal(t, 1, provider.TotalReviews)
}

func TestReviewCreateOnce_UnknownBooking(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	repo := NewReviewRepository(db)

	missing := int64(404)
	err := repo.CreateOnce(context.Background(), &domain.Review{
		BookingID:  &missing,
		ServiceID:  f.listing.ID,
		CustomerID: f.customer.ID,
		ProviderID: f.provider.ID,
		Rating:     4,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModerate_RequiresResponse(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	rv := &domain.Review{ServiceID: f.listing.ID, CustomerID: f.customer.ID, ProviderID: f.provider.ID, Rating: 2, ReviewText: "late"}
	require.NoError(t, repo.Create(ctx, rv))

	_, err := repo.Moderate(ctx, rv.ID, 99, domain.ModerationApproved, "", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.SetResponse(ctx, rv.ID, f.customer.ID, "not mine", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.SetResponse(ctx, rv.ID, f.provider.ID, "traffic jam", time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationPending, got.ModerationStatus)

	got, err = repo.Moderate(ctx, rv.ID, 99, domain.ModerationRejected, "rude", time.Now())
	require.NoError(t, err)
	assert.True(t, got.IsModerated)
	assert.Equal(t, domain.ModerationRejected, got.ModerationStatus)
	require.NotNil(t, got.ModeratedBy)
	assert.Equal(t, int64(99), *got.ModeratedBy)
	assert.NotNil(t, got.ModeratedAt)
	assert.Equal(t, "rude", got.RejectionReason)

	queue, total, err := repo.ListForModeration(ctx, domain.ModerationRejected, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, queue, 1)
}

func TestComplaintTransition_Guarded(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingCompleted)
	repo := NewComplaintRepository(db)
	ctx := context.Background()

	c := &domain.Complaint{
		Ref:         "CMP-TEST",
		BookingID:   b.ID,
		ProviderID:  f.provider.ID,
		CustomerID:  f.customer.ID,
		Description: "customer no-show",
		Status:      domain.ComplaintOpen,
	}
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.Transition(ctx, c.ID, domain.ComplaintSources(domain.ComplaintResolved), map[string]any{"status": domain.ComplaintResolved})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.Transition(ctx, c.ID, domain.ComplaintSources(domain.ComplaintAssigned), map[string]any{
		"status":      domain.ComplaintAssigned,
		"assigned_to": int64(7),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintAssigned, got.Status)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, int64(7), *got.AssignedTo)

	items, total, err := repo.List(ctx, ComplaintFilter{ProviderID: f.provider.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}
