package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"servicehub/internal/domain"
)

func acceptGuard(b *domain.Booking, providerID int64) Guard {
	return Guard{
		BookingID:   b.ID,
		OwnerColumn: OwnerProvider,
		OwnerID:     providerID,
		Statuses:    domain.BookingSources(domain.ActionAccept),
	}
}

func TestTransition_ConcurrentAcceptsSucceedOnce(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingPending)
	repo := NewBookingRepository(db)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		guarded   int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Transition(context.Background(), acceptGuard(b, f.provider.ID), map[string]any{
				"status":      domain.BookingAccepted,
				"accepted_at": time.Now(),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrNotFound):
				guarded++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, guarded)

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, got.Status)
}

func TestTransition_WrongOwnerIsNotFound(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingPending)
	repo := NewBookingRepository(db)

	_, err := repo.Transition(context.Background(), acceptGuard(b, f.customer.ID), map[string]any{"status": domain.BookingAccepted})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, got.Status)
}

func completeGuard(b *domain.Booking, providerID int64) Guard {
	return Guard{
		BookingID:   b.ID,
		OwnerColumn: OwnerProvider,
		OwnerID:     providerID,
		Statuses:    domain.BookingSources(domain.ActionComplete),
	}
}

func TestComplete_BumpsCountersOnce(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingAccepted)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	cost := 750.0
	got, err := repo.Complete(ctx, completeGuard(b, f.provider.ID), &cost, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.ActualCost)
	assert.Equal(t, 750.0, *got.ActualCost)

	// a second completion is a guard failure and must not bump again
	_, err = repo.Complete(ctx, completeGuard(b, f.provider.ID), &cost, "", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)

	var listing domain.ServiceListing
	require.NoError(t, db.First(&listing, f.listing.ID).Error)
	assert.Equal(t, 1, listing.CompletedBookings)
	assert.Equal(t, 1, listing.TotalBookings)

	var provider domain.Account
	require.NoError(t, db.First(&provider, f.provider.ID).Error)
	assert.Equal(t, 1, provider.TotalBookings)
	assert.Equal(t, 750.0, provider.TotalEarnings)
}

func TestComplete_ActualCostDefaultsToEstimate(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingInProgress)
	repo := NewBookingRepository(db)

	got, err := repo.Complete(context.Background(), completeGuard(b, f.provider.ID), nil, "done", time.Now())
	require.NoError(t, err)
	require.NotNil(t, got.ActualCost)
	assert.Equal(t, 800.0, *got.ActualCost)
	assert.Equal(t, "done", got.ProviderNote)
}

func TestComplete_PendingIsRejected(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingPending)
	repo := NewBookingRepository(db)

	_, err := repo.Complete(context.Background(), completeGuard(b, f.provider.ID), nil, "", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComplete_CounterFaultRollsBackStatus(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingAccepted)
	repo := NewBookingRepository(db)

	injected := errors.New("injected counter fault")
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_service_counters", func(tx *gorm.DB) {
		if tx.Statement.Table == "service_listings" {
			_ = tx.AddError(injected)
		}
	})
	require.NoError(t, err)

	cost := 750.0
	_, err = repo.Complete(context.Background(), completeGuard(b, f.provider.ID), &cost, "", time.Now())
	require.ErrorIs(t, err, injected)

	require.NoError(t, db.Callback().Update().Remove("test:fail_service_counters"))

	var got domain.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, domain.BookingAccepted, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Nil(t, got.ActualCost)

	var listing domain.ServiceListing
	require.NoError(t, db.First(&listing, f.listing.ID).Error)
	assert.Equal(t, 0, listing.CompletedBookings)
	assert.Equal(t, 0, listing.TotalBookings)

	var provider domain.Account
	require.NoError(t, db.First(&provider, f.provider.ID).Error)
	assert.Equal(t, 0.0, provider.TotalEarnings)
}

func TestSetPayment_Guarded(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingAccepted)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	g := Guard{
		BookingID:   b.ID,
		OwnerColumn: OwnerProvider,
		OwnerID:     f.provider.ID,
		Statuses:    []domain.BookingStatus{domain.BookingAccepted, domain.BookingInProgress, domain.BookingCompleted},
	}
	got, err := repo.SetPayment(ctx, g, []domain.PaymentStatus{domain.PaymentPending}, domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	_, err = repo.SetPayment(ctx, g, []domain.PaymentStatus{domain.PaymentPending}, domain.PaymentPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_ScopesAndPaginates(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	for i := 0; i < 3; i++ {
		seedBooking(t, db, f, domain.BookingPending)
	}
	seedBooking(t, db, f, domain.BookingCancelled)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	items, total, err := repo.List(ctx, BookingFilter{CustomerID: f.customer.ID, Pagination: Pagination{Page: 1, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, items, 2)

	items, total, err = repo.List(ctx, BookingFilter{ProviderID: f.provider.ID, Status: domain.BookingCancelled})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)

	_, total, err = repo.List(ctx, BookingFilter{CustomerID: f.provider.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBackfillProviderIDs(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db)
	b := seedBooking(t, db, f, domain.BookingCompleted)
	require.NoError(t, db.Model(&domain.Booking{}).Where("id = ?", b.ID).Update("provider_id", 0).Error)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	n, err := repo.BackfillProviderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, got.ProviderID)

	n, err = repo.BackfillProviderIDs(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPagination_Normalize(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Pagination{Page: 3, Limit: 500}.Normalize()
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, Pagination{Page: 3, Limit: 500}.Offset())
}
