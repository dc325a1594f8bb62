package services

import (
	"context"
	"errors"
	"fmt"

	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/pkg/password"

	"gorm.io/gorm"
)

// Duplicate match field names, checked in priority order: the first
// matching field wins.
const (
	DupFieldUsername = "username"
	DupFieldEmail    = "email"
	DupFieldPhone    = "phone number"
	DupFieldName     = "name"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// DuplicateCandidate holds the identifying fields of a user about to be
// onboarded
type DuplicateCandidate struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// DuplicateCheck is the guard's verdict. Field names the first matched
// identifying field when IsDuplicate is true.
type DuplicateCheck struct {
	IsDuplicate bool   `json:"is_duplicate"`
	Field       string `json:"field,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CheckDuplicate looks for an existing user sharing the candidate's
// username, email, phone number or full name, in that order. It has no
// side effects; on no match the caller may proceed to persist.
func (s *UserService) CheckDuplicate(ctx context.Context, candidate *DuplicateCandidate) (*DuplicateCheck, error) {
	checks := []struct {
		field string
		fn    func() (bool, error)
	}{
		{DupFieldUsername, func() (bool, error) {
			return s.userRepo.ExistsByUsername(ctx, candidate.Username)
		}},
		{DupFieldEmail, func() (bool, error) {
			return s.userRepo.ExistsByEmail(ctx, candidate.Email)
		}},
		{DupFieldPhone, func() (bool, error) {
			return s.userRepo.ExistsByPhone(ctx, candidate.PhoneNumber)
		}},
		{DupFieldName, func() (bool, error) {
			return s.userRepo.ExistsByName(ctx, candidate.FirstName, candidate.LastName)
		}},
	}

	for _, check := range checks {
		exists, err := check.fn()
		if err != nil {
			return nil, err
		}
		if exists {
			return &DuplicateCheck{
				IsDuplicate: true,
				Field:       check.field,
				Message:     fmt.Sprintf("A user with this %s already exists.", check.field),
			}, nil
		}
	}

	return &DuplicateCheck{}, nil
}

// AddLecturerInput represents add lecturer input
type AddLecturerInput struct {
	Username          string `json:"username"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phone_number"`
	BankName          string `json:"bank_name"`
	BranchCode        string `json:"branch_code"`
	BankAccountNumber string `json:"bank_account_number"`
	Address           string `json:"address"`
	Password          string `json:"password"`
}

// AddLecturer onboards a new lecturer. The duplicate guard runs before
// any write; a non-nil DuplicateCheck with IsDuplicate set means the
// candidate was rejected and nothing was persisted.
func (s *UserService) AddLecturer(ctx context.Context, input *AddLecturerInput) (*models.UserResponse, *DuplicateCheck, error) {
	dup, err := s.CheckDuplicate(ctx, &DuplicateCandidate{
		Username:    input.Username,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
	})
	if err != nil {
		return nil, nil, err
	}
	if dup.IsDuplicate {
		return nil, dup, nil
	}

	role, err := s.roleRepo.GetByName(ctx, string(domain.RoleLecturer))
	if err != nil {
		return nil, nil, domain.ErrRoleNotFound
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		RoleID:            role.ID,
		Username:          input.Username,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		PhoneNumber:       input.PhoneNumber,
		BankName:          input.BankName,
		BranchCode:        input.BranchCode,
		BankAccountNumber: input.BankAccountNumber,
		Address:           input.Address,
		Password:          hashed,
	}
	user.Role = role

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	return user.ToResponse(), nil, nil
}

// GetProfile gets a user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfileInput represents profile update input. Username and role
// are not editable here.
type UpdateProfileInput struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	Email             *string `json:"email"`
	PhoneNumber       *string `json:"phone_number"`
	BankName          *string `json:"bank_name"`
	BranchCode        *string `json:"branch_code"`
	BankAccountNumber *string `json:"bank_account_number"`
	Address           *string `json:"address"`
	Password          *string `json:"password"`
}

// UpdateProfile updates a user's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEntry
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.BankName != nil {
		user.BankName = *input.BankName
	}
	if input.BranchCode != nil {
		user.BranchCode = *input.BranchCode
	}
	if input.BankAccountNumber != nil {
		user.BankAccountNumber = *input.BankAccountNumber
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}
