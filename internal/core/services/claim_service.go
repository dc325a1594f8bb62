package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/core/validation"
	"uni-cmcs/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MsgMissingDocuments is returned when a claim has no supporting
// document attached. Document presence is a hard gate: no path to
// approval bypasses it.
const MsgMissingDocuments = "Supporting documents are required for claim processing"

// MsgAutoApproved is the message for the auto-approval fast path.
const MsgAutoApproved = "Claim automatically approved - Standard rates"

// ClaimService handles claim submission and the auto-approval decision
type ClaimService struct {
	db         *gorm.DB
	claimRepo  repositories.ClaimRepository
	statusRepo repositories.StatusRepository
	docRepo    repositories.DocumentRepository
}

// NewClaimService creates a new claim service
func NewClaimService(
	db *gorm.DB,
	claimRepo repositories.ClaimRepository,
	statusRepo repositories.StatusRepository,
	docRepo repositories.DocumentRepository,
) *ClaimService {
	return &ClaimService{
		db:         db,
		claimRepo:  claimRepo,
		statusRepo: statusRepo,
		docRepo:    docRepo,
	}
}

// WorkEntryInput is one day's work on the submission form
type WorkEntryInput struct {
	WorkDate    string  `json:"work_date"`
	HoursWorked float64 `json:"hours_worked"`
}

// DocumentInput is a supporting document uploaded with a claim
type DocumentInput struct {
	Name        string
	ContentType string
	Content     []byte
}

// SubmitClaimInput represents claim submission input
type SubmitClaimInput struct {
	ClaimType  string
	HourlyRate float64
	Entries    []WorkEntryInput
	Document   *DocumentInput
}

// ParseEntries converts form entries into domain work entries
func ParseEntries(inputs []WorkEntryInput) ([]domain.WorkEntry, error) {
	entries := make([]domain.WorkEntry, 0, len(inputs))
	for _, in := range inputs {
		workDate, err := time.Parse("2006-01-02", in.WorkDate)
		if err != nil {
			return nil, errors.New("invalid work date format, use YYYY-MM-DD")
		}
		entries = append(entries, domain.WorkEntry{
			WorkDate:    workDate,
			HoursWorked: in.HoursWorked,
		})
	}
	return entries, nil
}

// Submit aggregates the work entries, persists the claim as Pending and
// stores the supporting document. Claim and document go in one
// transaction; a failure at any step rolls back both writes.
func (s *ClaimService) Submit(ctx context.Context, input *SubmitClaimInput, actorID uint) (*models.Claim, error) {
	entries, err := ParseEntries(input.Entries)
	if err != nil {
		return nil, err
	}

	submissionDate := time.Now()

	aggregate, err := validation.ValidateWorkEntries(entries, submissionDate, input.HourlyRate)
	if err != nil {
		return nil, err
	}

	pending, err := s.statusRepo.GetByName(ctx, string(domain.StatusPending))
	if err != nil {
		return nil, domain.ErrUnknownStatus
	}

	claim := &models.Claim{
		UserID:         actorID,
		StatusID:       pending.ID,
		Amount:         aggregate.Amount,
		ClaimType:      input.ClaimType,
		SubmissionDate: submissionDate,
		HoursWorked:    aggregate.TotalHours,
		HourlyRate:     input.HourlyRate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txClaims := repositories.NewClaimRepository(tx)
		if err := txClaims.Create(ctx, claim); err != nil {
			return err
		}

		if input.Document != nil && len(input.Document.Content) > 0 {
			txDocs := repositories.NewDocumentRepository(tx)
			doc := &models.SupportingDocument{
				ClaimID:     claim.ID,
				Name:        input.Document.Name,
				ContentType: input.Document.ContentType,
				UploadDate:  time.Now(),
				FileContent: input.Document.Content,
			}
			if err := txDocs.Create(ctx, doc); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("claim submitted",
		zap.Uint("claim_id", claim.ID),
		zap.Uint("user_id", actorID),
		zap.Float64("hours", claim.HoursWorked),
		zap.Float64("amount", claim.Amount),
	)

	return claim, nil
}

// ProcessResult is the outcome of running a claim through the
// auto-approval engine. Success means "processed without error", not
// "approved": a claim routed to manual review still processes
// successfully.
type ProcessResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AutoApproved bool   `json:"auto_approved"`
}

// Process runs the auto-approval decision over a pending claim:
// validate the fields, require at least one supporting document, then
// evaluate the standard-rate / routine-hours / low-amount predicates.
// Only the approval branch writes; every other outcome leaves the claim
// untouched.
func (s *ClaimService) Process(ctx context.Context, claimID uint) (*ProcessResult, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}

	dc := claim.ToDomain()
	if dc.Status != domain.StatusPending {
		return nil, domain.ErrClaimNotPending
	}

	result := validation.ValidateClaim(dc, time.Now())
	if !result.Valid {
		return &ProcessResult{
			Success: false,
			Message: strings.Join(result.Errors, ", "),
		}, nil
	}

	docCount, err := s.docRepo.CountByClaimID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if docCount == 0 {
		return &ProcessResult{
			Success: false,
			Message: MsgMissingDocuments,
		}, nil
	}

	approved, reasons := validation.EvaluateAutoApproval(dc)
	if !approved {
		return &ProcessResult{
			Success: true,
			Message: "Claim requires manual review: " + strings.Join(reasons, ", "),
		}, nil
	}

	approvedStatus, err := s.statusRepo.GetByName(ctx, string(domain.StatusApproved))
	if err != nil {
		return nil, domain.ErrUnknownStatus
	}

	now := time.Now()
	claim.StatusID = approvedStatus.ID
	claim.ApprovalDate = &now
	// Amount is recomputed rather than trusted from the stored field.
	claim.Amount = dc.HoursWorked * dc.HourlyRate

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	logger.Info("claim auto-approved",
		zap.Uint("claim_id", claim.ID),
		zap.Float64("amount", claim.Amount),
	)

	return &ProcessResult{
		Success:      true,
		Message:      MsgAutoApproved,
		AutoApproved: true,
	}, nil
}

// GetByID gets a claim with its document names
func (s *ClaimService) GetByID(ctx context.Context, id uint) (*models.ClaimResponse, error) {
	claim, err := s.claimRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}

	resp := claim.ToResponse()

	names, err := s.docRepo.ListNamesByClaimID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Documents = names

	return resp, nil
}

// ListInput represents claim list input
type ListInput struct {
	Offset int
	Limit  int
	UserID *uint
	Status string
}

// List lists claims newest first, optionally filtered by owner or
// status name
func (s *ClaimService) List(ctx context.Context, input *ListInput) ([]*models.ClaimResponse, int64, error) {
	filter := &repositories.ClaimFilter{UserID: input.UserID}

	if input.Status != "" {
		status, err := s.statusRepo.GetByName(ctx, input.Status)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, domain.ErrUnknownStatus
			}
			return nil, 0, err
		}
		filter.StatusID = &status.ID
	}

	claims, total, err := s.claimRepo.List(ctx, filter, input.Offset, input.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.ClaimResponse, len(claims))
	for i, claim := range claims {
		responses[i] = claim.ToResponse()
	}
	return responses, total, nil
}

// AttachDocument adds a supporting document to an existing claim
func (s *ClaimService) AttachDocument(ctx context.Context, claimID uint, input *DocumentInput) error {
	if _, err := s.claimRepo.GetByID(ctx, claimID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrClaimNotFound
		}
		return err
	}

	doc := &models.SupportingDocument{
		ClaimID:     claimID,
		Name:        input.Name,
		ContentType: input.ContentType,
		UploadDate:  time.Now(),
		FileContent: input.Content,
	}
	return s.docRepo.Create(ctx, doc)
}
