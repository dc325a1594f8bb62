package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/core/domain"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ErrNoClaimsInRange is returned when a report window matches nothing
var ErrNoClaimsInRange = errors.New("no claims found for the selected criteria")

// ErrClaimNotApproved is returned when an invoice is requested for an
// unresolved claim
var ErrClaimNotApproved = errors.New("claim is not approved")

// ReportService generates HR claim reports and per-claim invoices as
// xlsx workbooks.
type ReportService struct {
	claimRepo  repositories.ClaimRepository
	statusRepo repositories.StatusRepository
}

// NewReportService creates a new report service
func NewReportService(claimRepo repositories.ClaimRepository, statusRepo repositories.StatusRepository) *ReportService {
	return &ReportService{
		claimRepo:  claimRepo,
		statusRepo: statusRepo,
	}
}

// ClaimsReportInput selects the report window
type ClaimsReportInput struct {
	StartDate time.Time
	EndDate   time.Time
	Statuses  []string
}

var reportHeaders = []string{
	"Lecturer", "Submission Date", "Claim Type", "Hours Worked",
	"Hourly Rate", "Amount", "Status",
}

// ClaimsReport builds an xlsx report of claims submitted in the window,
// newest first, with a totals row.
func (s *ReportService) ClaimsReport(ctx context.Context, input *ClaimsReportInput) ([]byte, string, error) {
	claims, err := s.claimRepo.ListForReport(ctx, &repositories.ReportFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Statuses:  input.Statuses,
	})
	if err != nil {
		return nil, "", err
	}
	if len(claims) == 0 {
		return nil, "", ErrNoClaimsInRange
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Claims Report"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	var totalAmount, totalHours float64
	for i, claim := range claims {
		row := i + 2
		lecturer := ""
		if claim.User != nil {
			lecturer = claim.User.FirstName + " " + claim.User.LastName
		}
		status := ""
		if claim.Status != nil {
			status = claim.Status.Name
		}

		values := []interface{}{
			lecturer,
			claim.SubmissionDate.Format("2006-01-02"),
			claim.ClaimType,
			claim.HoursWorked,
			claim.HourlyRate,
			claim.Amount,
			status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}

		totalHours += claim.HoursWorked
		totalAmount += claim.Amount
	}

	totalRow := len(claims) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), totalHours)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), totalAmount)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("Claims_Report_%s_to_%s.xlsx",
		input.StartDate.Format("20060102"),
		input.EndDate.Format("20060102"),
	)
	return buf.Bytes(), filename, nil
}

// Invoice builds an xlsx invoice for a single approved claim.
func (s *ReportService) Invoice(ctx context.Context, claimID uint) ([]byte, string, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrClaimNotFound
		}
		return nil, "", err
	}

	dc := claim.ToDomain()
	if dc.Status != domain.StatusApproved {
		return nil, "", ErrClaimNotApproved
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Invoice"
	f.SetSheetName("Sheet1", sheet)

	lecturer := ""
	if claim.User != nil {
		lecturer = claim.User.FirstName + " " + claim.User.LastName
	}

	rows := [][]interface{}{
		{"Invoice for Claim", claim.ID},
		{"Lecturer", lecturer},
		{"Claim Type", claim.ClaimType},
		{"Submission Date", claim.SubmissionDate.Format("2006-01-02")},
		{"Hours Worked", claim.HoursWorked},
		{"Hourly Rate", claim.HourlyRate},
		{"Amount Due", claim.Amount},
	}
	if claim.ApprovalDate != nil {
		rows = append(rows, []interface{}{"Approval Date", claim.ApprovalDate.Format("2006-01-02")})
	}

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("Invoice_Claim_%d.xlsx", claim.ID), nil
}
