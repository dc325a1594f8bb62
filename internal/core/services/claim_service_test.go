package services

import (
	"context"
	"testing"
	"time"

	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingClaim(id uint, hours, rate float64) *models.Claim {
	return &models.Claim{
		ID:             id,
		UserID:         7,
		StatusID:       pendingID,
		Status:         statusCatalog["Pending"],
		Amount:         hours * rate,
		ClaimType:      "Monthly",
		SubmissionDate: time.Now().AddDate(0, 0, -2),
		HoursWorked:    hours,
		HourlyRate:     rate,
	}
}

func TestClaimService_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("claim not found", func(t *testing.T) {
		svc := NewClaimService(nil, newFakeClaimRepo(), &fakeStatusRepo{}, newFakeDocRepo())

		_, err := svc.Process(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrClaimNotFound)
	})

	t.Run("already resolved claim is rejected", func(t *testing.T) {
		claim := pendingClaim(1, 10, 200)
		claim.StatusID = approvedID
		claim.Status = statusCatalog["Approved"]
		svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, newFakeDocRepo())

		_, err := svc.Process(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrClaimNotPending)
	})

	t.Run("invalid fields fail validation", func(t *testing.T) {
		claim := pendingClaim(1, 50, 100)
		svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, newFakeDocRepo())

		result, err := svc.Process(ctx, 1)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Hours cannot exceed 40, Hourly rate must be between R150 and R350", result.Message)
		assert.Equal(t, pendingID, claim.StatusID)
	})

	t.Run("missing documents block processing", func(t *testing.T) {
		claim := pendingClaim(1, 10, 200)
		svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, newFakeDocRepo())

		result, err := svc.Process(ctx, 1)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, MsgMissingDocuments, result.Message)
		assert.Equal(t, pendingID, claim.StatusID)
	})

	t.Run("non-standard claim routed to manual review", func(t *testing.T) {
		claim := pendingClaim(1, 30, 300)
		docs := newFakeDocRepo()
		docs.counts[1] = 1
		svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, docs)

		result, err := svc.Process(ctx, 1)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.AutoApproved)
		assert.Equal(t,
			"Claim requires manual review: Non-standard rate, Extended hours, High claim amount",
			result.Message)
		assert.Equal(t, pendingID, claim.StatusID)
		assert.Nil(t, claim.ApprovalDate)
	})

	t.Run("standard claim auto-approved", func(t *testing.T) {
		claim := pendingClaim(1, 10, 200)
		// Stored amount drifts from hours x rate; approval recomputes it.
		claim.Amount = 1
		docs := newFakeDocRepo()
		docs.counts[1] = 1
		svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, docs)

		result, err := svc.Process(ctx, 1)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.AutoApproved)
		assert.Equal(t, MsgAutoApproved, result.Message)
		assert.Equal(t, approvedID, claim.StatusID)
		require.NotNil(t, claim.ApprovalDate)
		assert.Equal(t, 2000.0, claim.Amount)
	})

	t.Run("second process call fails", func(t *testing.T) {
		claim := pendingClaim(1, 10, 200)
		docs := newFakeDocRepo()
		docs.counts[1] = 1
		svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, docs)

		_, err := svc.Process(ctx, 1)
		require.NoError(t, err)

		_, err = svc.Process(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrClaimNotPending)
	})
}

func TestClaimService_GetByID(t *testing.T) {
	ctx := context.Background()

	claim := pendingClaim(4, 10, 200)
	docs := newFakeDocRepo()
	docs.names[4] = []string{"timesheet.pdf"}
	docs.counts[4] = 1
	svc := NewClaimService(nil, newFakeClaimRepo(claim), &fakeStatusRepo{}, docs)

	resp, err := svc.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), resp.ID)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, []string{"timesheet.pdf"}, resp.Documents)

	_, err = svc.GetByID(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestParseEntries(t *testing.T) {
	entries, err := ParseEntries([]WorkEntryInput{
		{WorkDate: "2025-03-10", HoursWorked: 4},
		{WorkDate: "2025-03-11", HoursWorked: 6},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), entries[0].WorkDate)
	assert.Equal(t, 6.0, entries[1].HoursWorked)

	_, err = ParseEntries([]WorkEntryInput{{WorkDate: "10/03/2025", HoursWorked: 4}})
	assert.EqualError(t, err, "invalid work date format, use YYYY-MM-DD")
}
