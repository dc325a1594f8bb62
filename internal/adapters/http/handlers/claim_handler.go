package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/core/services"
	"uni-cmcs/internal/core/validation"
	"uni-cmcs/internal/pkg/pagination"
	"uni-cmcs/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxDocumentSize caps uploaded supporting documents at 10 MB.
const maxDocumentSize = 10 << 20

// ClaimHandler handles claim endpoints
type ClaimHandler struct {
	claimService    *services.ClaimService
	approvalService *services.ApprovalService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(claimService *services.ClaimService, approvalService *services.ApprovalService) *ClaimHandler {
	return &ClaimHandler{
		claimService:    claimService,
		approvalService: approvalService,
	}
}

// ValidateEntriesRequest represents the work entry validation request.
// SubmissionDate is optional; it defaults to today.
type ValidateEntriesRequest struct {
	HourlyRate     float64                   `json:"hourly_rate"`
	SubmissionDate string                    `json:"submission_date"`
	Entries        []services.WorkEntryInput `json:"entries"`
}

// UpdateStatusRequest represents the manual decision request
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Submit handles claim submission
// @Summary Submit claim
// @Description Submit a monthly claim with work entries and an optional supporting document
// @Tags Claims
// @Accept multipart/form-data
// @Produce json
// @Param claim_type formData string true "Claim type"
// @Param hourly_rate formData number true "Hourly rate"
// @Param entries formData string true "Work entries as JSON array"
// @Param document formData file false "Supporting document"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /claims [post]
func (h *ClaimHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	claimType := c.FormValue("claim_type")
	if claimType == "" {
		return response.BadRequest(c, "Claim type is required")
	}

	hourlyRate, err := strconv.ParseFloat(c.FormValue("hourly_rate"), 64)
	if err != nil {
		return response.BadRequest(c, "Invalid hourly rate")
	}

	entriesJSON := c.FormValue("entries")
	if entriesJSON == "" {
		return response.BadRequest(c, "At least one work entry is required")
	}

	var entries []services.WorkEntryInput
	if err := json.Unmarshal([]byte(entriesJSON), &entries); err != nil {
		return response.BadRequest(c, "Invalid work entries format")
	}
	if len(entries) == 0 {
		return response.BadRequest(c, "At least one work entry is required")
	}

	input := &services.SubmitClaimInput{
		ClaimType:  claimType,
		HourlyRate: hourlyRate,
		Entries:    entries,
	}

	if fileHeader, err := c.FormFile("document"); err == nil {
		if fileHeader.Size > maxDocumentSize {
			return response.BadRequest(c, "Supporting document exceeds the 10MB limit")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read supporting document")
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return response.InternalServerError(c, "Failed to read supporting document")
		}
		input.Document = &services.DocumentInput{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     content,
		}
	}

	claim, err := h.claimService.Submit(c.Context(), input, userID)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrWorkDateAfterSubmission),
			errors.Is(err, validation.ErrWorkHoursOutOfRange):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrUnknownStatus):
			return response.InternalServerError(c, "Claim statuses are not configured")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Created(c, "Claim submitted successfully", claim.ToResponse())
}

// ValidateEntries handles pre-submission work entry validation
// @Summary Validate work entries
// @Description Validate work entries without persisting anything
// @Tags Claims
// @Accept json
// @Produce json
// @Param body body ValidateEntriesRequest true "Entries and rate"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /claims/validate-entries [post]
func (h *ClaimHandler) ValidateEntries(c *fiber.Ctx) error {
	var req ValidateEntriesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entries, err := services.ParseEntries(req.Entries)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	submissionDate := time.Now()
	if req.SubmissionDate != "" {
		submissionDate, err = time.Parse("2006-01-02", req.SubmissionDate)
		if err != nil {
			return response.BadRequest(c, "Invalid submission date, use YYYY-MM-DD")
		}
	}

	aggregate, err := validation.ValidateWorkEntries(entries, submissionDate, req.HourlyRate)
	if err != nil {
		return response.Success(c, "Validation completed", fiber.Map{
			"valid": false,
			"error": err.Error(),
		})
	}

	return response.Success(c, "Validation completed", fiber.Map{
		"valid":       true,
		"total_hours": aggregate.TotalHours,
		"amount":      aggregate.Amount,
	})
}

// Process handles running a claim through the auto-approval engine
// @Summary Process claim
// @Description Run the auto-approval decision over a pending claim
// @Tags Claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /claims/{id}/process [post]
func (h *ClaimHandler) Process(c *fiber.Ctx) error {
	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return response.BadRequest(c, "Invalid claim ID")
	}

	result, err := h.claimService.Process(c.Context(), uint(claimID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClaimNotFound):
			return response.NotFound(c, "Claim not found")
		case errors.Is(err, domain.ErrClaimNotPending):
			return response.Conflict(c, "Claim has already been processed")
		default:
			return response.InternalServerError(c, "Failed to process claim")
		}
	}

	return response.Success(c, result.Message, result)
}

// UpdateStatus handles the manual approval decision
// @Summary Update claim status
// @Description Manually approve or reject a pending claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path int true "Claim ID"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /claims/{id}/status [post]
func (h *ClaimHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return response.BadRequest(c, "Invalid claim ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.approvalService.Decide(c.Context(), uint(claimID), req.Status, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownStatus):
			return response.BadRequest(c, "Status must be Approved or Rejected")
		case errors.Is(err, domain.ErrClaimNotFound):
			return response.NotFound(c, "Claim not found")
		case errors.Is(err, domain.ErrClaimNotPending):
			return response.Conflict(c, "Claim has already been processed")
		default:
			return response.InternalServerError(c, "Failed to update claim status")
		}
	}
	if !result.Success {
		return response.BadRequest(c, result.Message)
	}

	return response.Success(c, result.Message, result)
}

// List handles listing claims
// @Summary List claims
// @Description List claims newest first. Lecturers see their own claims only.
// @Tags Claims
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status name"
// @Param user_id query int false "Filter by lecturer (reviewers only)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /claims [get]
func (h *ClaimHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	params := pagination.GetParams(c)

	input := &services.ListInput{
		Offset: params.Offset,
		Limit:  params.Limit,
		Status: c.Query("status"),
	}
	// Lecturers are scoped to their own claims; reviewers may filter
	// by lecturer.
	if role == string(domain.RoleLecturer) {
		input.UserID = &userID
	} else if raw := c.QueryInt("user_id"); raw > 0 {
		lecturerID := uint(raw)
		input.UserID = &lecturerID
	}

	claims, total, err := h.claimService.List(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownStatus) {
			return response.BadRequest(c, "Unknown status filter")
		}
		return response.InternalServerError(c, "Failed to list claims")
	}

	return response.Success(c, "Claims retrieved", pagination.NewResponse(claims, params, total))
}

// GetByID handles getting a claim's details
// @Summary Get claim
// @Description Get a claim with its supporting document names
// @Tags Claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /claims/{id} [get]
func (h *ClaimHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return response.BadRequest(c, "Invalid claim ID")
	}

	claim, err := h.claimService.GetByID(c.Context(), uint(claimID))
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			return response.NotFound(c, "Claim not found")
		}
		return response.InternalServerError(c, "Failed to get claim")
	}

	if role == string(domain.RoleLecturer) && claim.UserID != userID {
		return response.Forbidden(c, "You don't have permission to access this claim")
	}

	return response.Success(c, "Claim retrieved", claim)
}

// AttachDocument handles attaching a supporting document to a claim
// @Summary Attach document
// @Description Upload a supporting document for an existing claim
// @Tags Claims
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Claim ID"
// @Param document formData file true "Supporting document"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /claims/{id}/documents [post]
func (h *ClaimHandler) AttachDocument(c *fiber.Ctx) error {
	claimID, err := c.ParamsInt("id")
	if err != nil || claimID <= 0 {
		return response.BadRequest(c, "Invalid claim ID")
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return response.BadRequest(c, "Supporting document file is required")
	}
	if fileHeader.Size > maxDocumentSize {
		return response.BadRequest(c, "Supporting document exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read supporting document")
	}
	content, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return response.InternalServerError(c, "Failed to read supporting document")
	}

	err = h.claimService.AttachDocument(c.Context(), uint(claimID), &services.DocumentInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			return response.NotFound(c, "Claim not found")
		}
		return response.InternalServerError(c, "Failed to attach document")
	}

	return response.Success(c, "Document attached successfully", nil)
}
