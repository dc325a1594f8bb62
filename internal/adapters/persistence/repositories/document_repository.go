package repositories

import (
	"context"

	"uni-cmcs/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// documentRepository implements DocumentRepository interface
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new supporting document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create stores a supporting document
func (r *documentRepository) Create(ctx context.Context, doc *models.SupportingDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// CountByClaimID counts documents attached to a claim
func (r *documentRepository) CountByClaimID(ctx context.Context, claimID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SupportingDocument{}).
		Where("claim_id = ?", claimID).Count(&count).Error
	return count, err
}

// ListNamesByClaimID lists document names for a claim
func (r *documentRepository) ListNamesByClaimID(ctx context.Context, claimID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.SupportingDocument{}).
		Where("claim_id = ?", claimID).Pluck("name", &names).Error
	return names, err
}
