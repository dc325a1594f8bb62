package repositories

import (
	"context"
	"time"

	"uni-cmcs/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ClaimFilter narrows claim listings
type ClaimFilter struct {
	UserID   *uint
	StatusID *uint
}

// ReportFilter selects claims for the HR report export
type ReportFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Statuses  []string
}

// claimRepository implements ClaimRepository interface
type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

// Create creates a new claim
func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetByID gets a claim by ID with its status and owner preloaded
func (r *claimRepository) GetByID(ctx context.Context, id uint) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Status").
		Where("id = ?", id).
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Update updates a claim
func (r *claimRepository) Update(ctx context.Context, claim *models.Claim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

// List lists claims newest submission first
func (r *claimRepository) List(ctx context.Context, filter *ClaimFilter, offset, limit int) ([]*models.Claim, int64, error) {
	var claims []*models.Claim
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Claim{})
	if filter != nil {
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.StatusID != nil {
			query = query.Where("status_id = ?", *filter.StatusID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Preload("Status").
		Order("submission_date DESC").
		Offset(offset).Limit(limit).
		Find(&claims).Error
	if err != nil {
		return nil, 0, err
	}

	return claims, total, nil
}

// ListPendingWithDocuments returns pending claims that have at least one
// supporting document, for the nightly auto-approval sweep.
func (r *claimRepository) ListPendingWithDocuments(ctx context.Context, pendingStatusID uint) ([]*models.Claim, error) {
	var claims []*models.Claim
	err := r.db.WithContext(ctx).
		Preload("Status").
		Where("status_id = ?", pendingStatusID).
		Where("EXISTS (SELECT 1 FROM supporting_documents d WHERE d.claim_id = claims.id)").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ListForReport returns claims in a submission-date window, optionally
// limited to the given status names, newest first.
func (r *claimRepository) ListForReport(ctx context.Context, filter *ReportFilter) ([]*models.Claim, error) {
	var claims []*models.Claim

	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Status").
		Where("submission_date >= ? AND submission_date < ?",
			filter.StartDate, filter.EndDate.AddDate(0, 0, 1))

	if len(filter.Statuses) > 0 {
		query = query.Joins("JOIN claim_statuses s ON s.id = claims.status_id").
			Where("s.name IN ?", filter.Statuses)
	}

	err := query.Order("submission_date DESC").Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}
