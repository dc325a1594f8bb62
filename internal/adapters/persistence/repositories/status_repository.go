package repositories

import (
	"context"

	"uni-cmcs/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// statusRepository implements StatusRepository interface
type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new claim status repository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

// GetByName gets a status by its name. The match is case-sensitive
// against the seeded catalog.
func (r *statusRepository) GetByName(ctx context.Context, name string) (*models.ClaimStatus, error) {
	var status models.ClaimStatus
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// List lists all statuses
func (r *statusRepository) List(ctx context.Context) ([]*models.ClaimStatus, error) {
	var statuses []*models.ClaimStatus
	if err := r.db.WithContext(ctx).Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
