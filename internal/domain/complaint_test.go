package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionComplaint(t *testing.T) {
	assert.True(t, CanTransitionComplaint(ComplaintOpen, ComplaintAssigned))
	assert.True(t, CanTransitionComplaint(ComplaintOpen, ComplaintClosed))
	assert.True(t, CanTransitionComplaint(ComplaintAssigned, ComplaintAssigned))
	assert.True(t, CanTransitionComplaint(ComplaintAssigned, ComplaintResolved))
	assert.True(t, CanTransitionComplaint(ComplaintInProgress, ComplaintResolved))
	assert.True(t, CanTransitionComplaint(ComplaintResolved, ComplaintClosed))

	assert.False(t, CanTransitionComplaint(ComplaintOpen, ComplaintResolved))
	assert.False(t, CanTransitionComplaint(ComplaintOpen, ComplaintInProgress))
	assert.False(t, CanTransitionComplaint(ComplaintResolved, ComplaintOpen))
	for _, to := range []ComplaintStatus{ComplaintOpen, ComplaintAssigned, ComplaintInProgress, ComplaintResolved, ComplaintClosed} {
		assert.False(t, CanTransitionComplaint(ComplaintClosed, to))
	}
}

func TestComplaintSources(t *testing.T) {
	assert.Equal(t, []ComplaintStatus{ComplaintAssigned, ComplaintInProgress}, ComplaintSources(ComplaintResolved))
	assert.Equal(t, []ComplaintStatus{ComplaintOpen, ComplaintAssigned}, ComplaintSources(ComplaintAssigned))
	assert.Empty(t, ComplaintSources(ComplaintOpen))
}

func TestParseComplaintStatus(t *testing.T) {
	st, err := ParseComplaintStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, ComplaintInProgress, st)

	_, err = ParseComplaintStatus("under_action")
	assert.ErrorIs(t, err, ErrUnknownComplaintStatus)
}
