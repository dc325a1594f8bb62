package services

import (
	"context"

	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Fixed catalog IDs used across the service tests.
const (
	pendingID  uint = 1
	approvedID uint = 2
	rejectedID uint = 3
)

var statusCatalog = map[string]*models.ClaimStatus{
	"Pending":  {ID: pendingID, Name: "Pending"},
	"Approved": {ID: approvedID, Name: "Approved"},
	"Rejected": {ID: rejectedID, Name: "Rejected"},
}

type fakeStatusRepo struct{}

func (f *fakeStatusRepo) GetByName(_ context.Context, name string) (*models.ClaimStatus, error) {
	if status, ok := statusCatalog[name]; ok {
		return status, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStatusRepo) List(_ context.Context) ([]*models.ClaimStatus, error) {
	return []*models.ClaimStatus{
		statusCatalog["Pending"], statusCatalog["Approved"], statusCatalog["Rejected"],
	}, nil
}

type fakeClaimRepo struct {
	claims map[uint]*models.Claim
}

func newFakeClaimRepo(claims ...*models.Claim) *fakeClaimRepo {
	repo := &fakeClaimRepo{claims: make(map[uint]*models.Claim)}
	for _, claim := range claims {
		repo.claims[claim.ID] = claim
	}
	return repo
}

func (f *fakeClaimRepo) Create(_ context.Context, claim *models.Claim) error {
	claim.ID = uint(len(f.claims) + 1)
	f.claims[claim.ID] = claim
	return nil
}

func (f *fakeClaimRepo) GetByID(_ context.Context, id uint) (*models.Claim, error) {
	claim, ok := f.claims[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return claim, nil
}

func (f *fakeClaimRepo) Update(_ context.Context, claim *models.Claim) error {
	f.claims[claim.ID] = claim
	// Keep the preloaded relation in step with the id, as a reload
	// through GORM would.
	for _, status := range statusCatalog {
		if status.ID == claim.StatusID {
			claim.Status = status
		}
	}
	return nil
}

func (f *fakeClaimRepo) List(_ context.Context, _ *repositories.ClaimFilter, _, _ int) ([]*models.Claim, int64, error) {
	out := make([]*models.Claim, 0, len(f.claims))
	for _, claim := range f.claims {
		out = append(out, claim)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClaimRepo) ListPendingWithDocuments(_ context.Context, pendingStatusID uint) ([]*models.Claim, error) {
	var out []*models.Claim
	for _, claim := range f.claims {
		if claim.StatusID == pendingStatusID {
			out = append(out, claim)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) ListForReport(_ context.Context, _ *repositories.ReportFilter) ([]*models.Claim, error) {
	out := make([]*models.Claim, 0, len(f.claims))
	for _, claim := range f.claims {
		out = append(out, claim)
	}
	return out, nil
}

type fakeDocRepo struct {
	counts map[uint]int64
	names  map[uint][]string
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{counts: make(map[uint]int64), names: make(map[uint][]string)}
}

func (f *fakeDocRepo) Create(_ context.Context, doc *models.SupportingDocument) error {
	f.counts[doc.ClaimID]++
	f.names[doc.ClaimID] = append(f.names[doc.ClaimID], doc.Name)
	return nil
}

func (f *fakeDocRepo) CountByClaimID(_ context.Context, claimID uint) (int64, error) {
	return f.counts[claimID], nil
}

func (f *fakeDocRepo) ListNamesByClaimID(_ context.Context, claimID uint) ([]string, error) {
	return f.names[claimID], nil
}

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByName(_ context.Context, firstName, lastName string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirstName == firstName && u.LastName == lastName {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, _ *models.User) error {
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*models.User, int64, error) {
	return f.users, int64(len(f.users)), nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if phone == "" {
		return false, nil
	}
	_, err := f.GetByPhone(ctx, phone)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	if firstName == "" || lastName == "" {
		return false, nil
	}
	_, err := f.GetByName(ctx, firstName, lastName)
	return err == nil, nil
}

type fakeRoleRepo struct{}

var roleCatalog = map[string]*models.Role{
	"Lecturer":    {ID: 1, Name: "Lecturer"},
	"Coordinator": {ID: 2, Name: "Coordinator"},
	"Manager":     {ID: 3, Name: "Manager"},
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	if role, ok := roleCatalog[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) List(_ context.Context) ([]*models.Role, error) {
	return []*models.Role{
		roleCatalog["Lecturer"], roleCatalog["Coordinator"], roleCatalog["Manager"],
	}, nil
}
