package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/core/validation"
	"uni-cmcs/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApprovalService handles the manual approval path, taken when the
// auto-approval engine routed a claim to review.
type ApprovalService struct {
	claimRepo  repositories.ClaimRepository
	statusRepo repositories.StatusRepository
	docRepo    repositories.DocumentRepository
}

// NewApprovalService creates a new approval service
func NewApprovalService(
	claimRepo repositories.ClaimRepository,
	statusRepo repositories.StatusRepository,
	docRepo repositories.DocumentRepository,
) *ApprovalService {
	return &ApprovalService{
		claimRepo:  claimRepo,
		statusRepo: statusRepo,
		docRepo:    docRepo,
	}
}

// DecisionResult is the outcome of a manual decision
type DecisionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Decide applies a reviewer's decision to a pending claim. The target
// status name must match "Approved" or "Rejected" exactly (case
// sensitive, resolved against the seeded catalog). The claim's fields
// and document presence are re-checked before the transition; the
// manual path does not trust that Process already ran.
func (s *ApprovalService) Decide(ctx context.Context, claimID uint, statusName string, actorID uint) (*DecisionResult, error) {
	target := domain.StatusName(statusName)
	if !target.Terminal() {
		return nil, domain.ErrUnknownStatus
	}

	newStatus, err := s.statusRepo.GetByName(ctx, statusName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownStatus
		}
		return nil, err
	}

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
		return &DecisionResult{
			Success: false,
			Message: strings.Join(result.Errors, ", "),
		}, nil
	}

	docCount, err := s.docRepo.CountByClaimID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if docCount == 0 {
		return &DecisionResult{
			Success: false,
			Message: MsgMissingDocuments,
		}, nil
	}

	now := time.Now()
	claim.StatusID = newStatus.ID
	claim.ApprovalDate = &now

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	logger.Info("claim manually resolved",
		zap.Uint("claim_id", claimID),
		zap.String("status", statusName),
		zap.Uint("actor_id", actorID),
	)

	return &DecisionResult{
		Success: true,
		Message: fmt.Sprintf("Claim %d has been manually %s.", claimID, strings.ToLower(statusName)),
	}, nil
}
