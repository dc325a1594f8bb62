package handlers

import (
	"errors"
	"strings"

	"uni-cmcs/internal/core/domain"
	"uni-cmcs/internal/core/services"
	"uni-cmcs/internal/pkg/pagination"
	"uni-cmcs/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CheckDuplicateRequest represents duplicate check request body
type CheckDuplicateRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// AddLecturerRequest represents add lecturer request body
type AddLecturerRequest struct {
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

// CheckDuplicate handles the pre-registration duplicate check
// @Summary Check duplicate user
// @Description Check whether a candidate user matches an existing account
// @Tags Users
// @Accept json
// @Produce json
// @Param body body CheckDuplicateRequest true "Candidate identifying fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /users/check-duplicate [post]
func (h *UserHandler) CheckDuplicate(c *fiber.Ctx) error {
	var req CheckDuplicateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" && req.Email == "" && req.PhoneNumber == "" &&
		(req.FirstName == "" || req.LastName == "") {
		return response.BadRequest(c, "At least one identifying field is required")
	}

	result, err := h.userService.CheckDuplicate(c.Context(), &services.DuplicateCandidate{
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to check for duplicates")
	}

	return response.Success(c, "Duplicate check completed", result)
}

// AddLecturer handles lecturer onboarding
// @Summary Add lecturer
// @Description Create a new lecturer account after the duplicate guard passes
// @Tags Users
// @Accept json
// @Produce json
// @Param body body AddLecturerRequest true "Lecturer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) AddLecturer(c *fiber.Ctx) error {
	var req AddLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.FirstName == "" || req.LastName == "" {
		return response.BadRequest(c, "First name and last name are required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	user, dup, err := h.userService.AddLecturer(c.Context(), &services.AddLecturerInput{
		Username:          strings.TrimSpace(req.Username),
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             strings.TrimSpace(req.Email),
		PhoneNumber:       strings.TrimSpace(req.PhoneNumber),
		BankName:          req.BankName,
		BranchCode:        req.BranchCode,
		BankAccountNumber: req.BankAccountNumber,
		Address:           req.Address,
		Password:          req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return response.InternalServerError(c, "Lecturer role is not configured")
		}
		return response.InternalServerError(c, "Failed to create lecturer")
	}
	if dup != nil && dup.IsDuplicate {
		return response.Conflict(c, dup.Message)
	}

	return response.Created(c, "Lecturer created successfully", user)
}

// GetProfile handles getting the current user's profile
// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved", user)
}

// UpdateProfile handles updating the current user's profile
// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.UpdateProfileInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "A user with this email already exists.")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated", user)
}

// List handles listing users
// @Summary List users
// @Description List user accounts with pagination
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved", pagination.NewResponse(users, params, total))
}
