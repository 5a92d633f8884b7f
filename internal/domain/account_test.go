package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_CanOperate(t *testing.T) {
	customer := &Account{Role: RoleCustomer, Status: AccountActive}
	assert.True(t, customer.CanOperate())

	provider := &Account{Role: RoleProvider, Status: AccountActive, ApprovalStatus: ApprovalPending}
	assert.False(t, provider.CanOperate())

	provider.ApprovalStatus = ApprovalApproved
	assert.True(t, provider.CanOperate())

	provider.Status = AccountSuspended
	assert.False(t, provider.CanOperate())
}

func TestAccountView_ExposesDerivedApproval(t *testing.T) {
	a := &Account{ID: 3, Email: "p@example.com", PasswordHash: "secret", Role: RoleProvider, ApprovalStatus: ApprovalApproved}

	raw, err := json.Marshal(a.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, true, got["isApproved"])
	assert.Equal(t, "approved", got["approvalStatus"])
	assert.NotContains(t, got, "passwordHash")
	assert.NotContains(t, got, "PasswordHash")
}

func TestReview_PublicHidesUnapprovedRebuttal(t *testing.T) {
	resp := "not true"
	r := Review{ID: 1, ProviderResponse: &resp, ModerationStatus: ModerationPending}
	assert.Nil(t, r.Public().ProviderResponse)
	assert.NotNil(t, r.ProviderResponse)

	r.ModerationStatus = ModerationApproved
	assert.Equal(t, &resp, r.Public().ProviderResponse)
}
