package repositories

import (
	"context"

	"uni-cmcs/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByName(ctx context.Context, firstName, lastName string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByName(ctx context.Context, firstName, lastName string) (bool, error)
}

// RoleRepository defines role catalog access
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// ClaimRepository defines claim repository interface
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id uint) (*models.Claim, error)
	Update(ctx context.Context, claim *models.Claim) error
	List(ctx context.Context, filter *ClaimFilter, offset, limit int) ([]*models.Claim, int64, error)
	ListPendingWithDocuments(ctx context.Context, pendingStatusID uint) ([]*models.Claim, error)
	ListForReport(ctx context.Context, filter *ReportFilter) ([]*models.Claim, error)
}

// StatusRepository defines claim status catalog access
type StatusRepository interface {
	GetByName(ctx context.Context, name string) (*models.ClaimStatus, error)
	List(ctx context.Context) ([]*models.ClaimStatus, error)
}

// DocumentRepository defines supporting document access
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.SupportingDocument) error
	CountByClaimID(ctx context.Context, claimID uint) (int64, error)
	ListNamesByClaimID(ctx context.Context, claimID uint) ([]string, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
