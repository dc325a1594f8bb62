package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"uni-cmcs/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportService_ClaimsReport(t *testing.T) {
	ctx := context.Background()

	t.Run("empty window", func(t *testing.T) {
		svc := NewReportService(newFakeClaimRepo(), &fakeStatusRepo{})

		_, _, err := svc.ClaimsReport(ctx, &ClaimsReportInput{
			StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrNoClaimsInRange)
	})

	t.Run("workbook content", func(t *testing.T) {
		claim := pendingClaim(1, 10, 200)
		claim.User = &models.User{FirstName: "John", LastName: "Smith"}
		svc := NewReportService(newFakeClaimRepo(claim), &fakeStatusRepo{})

		content, filename, err := svc.ClaimsReport(ctx, &ClaimsReportInput{
			StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "Claims_Report_20250101_to_20250331.xlsx", filename)

		f, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer f.Close()

		header, err := f.GetCellValue("Claims Report", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Lecturer", header)

		lecturer, err := f.GetCellValue("Claims Report", "A2")
		require.NoError(t, err)
		assert.Equal(t, "John Smith", lecturer)

		status, err := f.GetCellValue("Claims Report", "G2")
		require.NoError(t, err)
		assert.Equal(t, "Pending", status)

		total, err := f.GetCellValue("Claims Report", "F4")
		require.NoError(t, err)
		assert.Equal(t, "2000", total)
	})
}

func TestReportService_Invoice(t *testing.T) {
	ctx := context.Background()

	t.Run("pending claim has no invoice", func(t *testing.T) {
		claim := pendingClaim(1, 10, 200)
		svc := NewReportService(newFakeClaimRepo(claim), &fakeStatusRepo{})

		_, _, err := svc.Invoice(ctx, 1)
		assert.ErrorIs(t, err, ErrClaimNotApproved)
	})

	t.Run("approved claim invoice", func(t *testing.T) {
		now := time.Now()
		claim := pendingClaim(1, 10, 200)
		claim.StatusID = approvedID
		claim.Status = statusCatalog["Approved"]
		claim.ApprovalDate = &now
		claim.User = &models.User{FirstName: "John", LastName: "Smith"}
		svc := NewReportService(newFakeClaimRepo(claim), &fakeStatusRepo{})

		content, filename, err := svc.Invoice(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Invoice_Claim_1.xlsx", filename)

		f, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer f.Close()

		amount, err := f.GetCellValue("Invoice", "B7")
		require.NoError(t, err)
		assert.Equal(t, "2000", amount)
	})
}
