package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/pkg/refs"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	customer *domain.Account
	provider *domain.Account
	listing  *domain.ServiceListing
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	customer := &domain.Account{Email: "c@example.com", PasswordHash: "x", Name: "C", Role: domain.RoleCustomer, Status: domain.AccountActive}
	provider := &domain.Account{Email: "p@example.com", PasswordHash: "x", Name: "P", Role: domain.RoleProvider, Status: domain.AccountActive, ApprovalStatus: domain.ApprovalApproved}
	require.NoError(t, db.Create(customer).Error)
	require.NoError(t, db.Create(provider).Error)

	listing := &domain.ServiceListing{ProviderID: provider.ID, Title: "Deep cleaning", Category: "cleaning", Price: 800, IsActive: true}
	require.NoError(t, db.Create(listing).Error)

	return fixture{customer: customer, provider: provider, listing: listing}
}

func seedBooking(t *testing.T, db *gorm.DB, f fixture, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		Ref:           refs.Booking(),
		CustomerID:    f.customer.ID,
		ProviderID:    f.provider.ID,
		ServiceID:     f.listing.ID,
		Date:          "2026-11-02",
		Time:          "10:00",
		Address:       "1 Main St",
		EstimatedCost: f.listing.Price,
		Status:        status,
		PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
