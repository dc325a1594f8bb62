package services

import (
	"context"
	"time"

	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronService runs scheduled maintenance: a nightly auto-approval sweep
// over pending claims and refresh-token cleanup.
type CronService struct {
	cron             *cron.Cron
	claimService     *ClaimService
	claimRepo        repositories.ClaimRepository
	statusRepo       repositories.StatusRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	claimService *ClaimService,
	claimRepo repositories.ClaimRepository,
	statusRepo repositories.StatusRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		claimService:     claimService,
		claimRepo:        claimRepo,
		statusRepo:       statusRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() {
	// 02:00 daily: run pending claims through the auto-approval engine
	s.cron.AddFunc("0 2 * * *", s.sweepPendingClaims)

	// 03:00 daily: drop expired refresh tokens
	s.cron.AddFunc("0 3 * * *", s.cleanupExpiredTokens)

	s.cron.Start()
	logger.Info("cron service started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron service stopped")
}

// sweepPendingClaims applies the same auto-approval rule Process uses
// to every pending claim that has documents. Claims routed to manual
// review are only logged; they stay pending for a reviewer.
func (s *CronService) sweepPendingClaims() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pending, err := s.statusRepo.GetByName(ctx, string(domain.StatusPending))
	if err != nil {
		logger.Error("sweep: pending status lookup failed", zap.Error(err))
		return
	}

	claims, err := s.claimRepo.ListPendingWithDocuments(ctx, pending.ID)
	if err != nil {
		logger.Error("sweep: listing pending claims failed", zap.Error(err))
		return
	}

	var approved int
	for _, claim := range claims {
		result, err := s.claimService.Process(ctx, claim.ID)
		if err != nil {
			logger.Error("sweep: processing claim failed",
				zap.Uint("claim_id", claim.ID), zap.Error(err))
			continue
		}
		if result.AutoApproved {
			approved++
		} else {
			logger.Debug("sweep: claim left for manual review",
				zap.Uint("claim_id", claim.ID),
				zap.String("message", result.Message))
		}
	}

	logger.Info("sweep finished",
		zap.Int("claims", len(claims)),
		zap.Int("auto_approved", approved))
}

func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		logger.Error("expired token cleanup failed", zap.Error(err))
	}
}
