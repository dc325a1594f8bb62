package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/core/services"
	"uni-cmcs/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles HR report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ClaimsReport handles the claims report download
// @Summary Claims report
// @Description Download an xlsx report of claims in a date window
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Param statuses query string false "Comma-separated status names"
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /reports/claims [get]
func (h *ReportHandler) ClaimsReport(c *fiber.Ctx) error {
	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		return response.BadRequest(c, "Invalid start date, use YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		return response.BadRequest(c, "Invalid end date, use YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return response.BadRequest(c, "End date cannot be before start date")
	}

	var statuses []string
	if raw := c.Query("statuses"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	content, filename, err := h.reportService.ClaimsReport(c.Context(), &services.ClaimsReportInput{
		StartDate: startDate,
		EndDate:   endDate,
		Statuses:  statuses,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoClaimsInRange) {
			return response.NotFound(c, "No claims found for the selected criteria")
		}
		return response.InternalServerError(c, "Failed to generate report")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(content)
}

// Invoice handles the invoice download for an approved claim
// @Summary Claim invoice
// @Description Download an xlsx invoice for an approved claim
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Claim ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /reports/claims/{id}/invoice [get]
func (h *ReportHandler) Invoice(c *fiber.Ctx) error {
	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return response.BadRequest(c, "Invalid claim ID")
	}

	content, filename, err := h.reportService.Invoice(c.Context(), uint(claimID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClaimNotFound):
			return response.NotFound(c, "Claim not found")
		case errors.Is(err, services.ErrClaimNotApproved):
			return response.Conflict(c, "Invoices are only available for approved claims")
		default:
			return response.InternalServerError(c, "Failed to generate invoice")
		}
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(content)
}
