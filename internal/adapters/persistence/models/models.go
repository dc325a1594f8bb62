package models

import (
	"time"

	"gorm.io/gorm"

	"uni-cmcs/internal/core/domain"
)

// ============================================================
// Users & Roles
// ============================================================

// Role represents the roles table (seeded: Lecturer, Coordinator, Manager)
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// User represents the users table
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	RoleID            uint           `gorm:"not null;index" json:"role_id"`
	Username          string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FirstName         string         `gorm:"size:100;not null" json:"first_name"`
	LastName          string         `gorm:"size:100;not null" json:"last_name"`
	Email             string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber       string         `gorm:"size:20" json:"phone_number"`
	BankName          string         `gorm:"size:100" json:"bank_name"`
	BranchCode        string         `gorm:"size:20" json:"branch_code"`
	BankAccountNumber string         `gorm:"size:30" json:"bank_account_number"`
	Address           string         `gorm:"size:255" json:"address"`
	Password          string         `gorm:"size:255;not null" json:"-"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
	if u.Role != nil {
		resp.Role = u.Role.Name
	}
	return resp
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Claims
// ============================================================

// ClaimStatus represents the claim_statuses table. The catalog is
// seeded once (Pending, Approved, Rejected) and never mutated at
// runtime.
type ClaimStatus struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (ClaimStatus) TableName() string {
	return "claim_statuses"
}

// Claim represents the claims table. Amount is hours x rate at
// submission time; ApprovalDate stays nil until the claim is resolved.
type Claim struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	StatusID       uint           `gorm:"not null;index" json:"status_id"`
	Amount         float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	ClaimType      string         `gorm:"size:100" json:"claim_type"`
	SubmissionDate time.Time      `gorm:"not null;index" json:"submission_date"`
	ApprovalDate   *time.Time     `json:"approval_date"`
	HoursWorked    float64        `gorm:"type:decimal(6,2);not null" json:"hours_worked"`
	HourlyRate     float64        `gorm:"type:decimal(8,2);not null" json:"hourly_rate"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User      *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    *ClaimStatus         `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Documents []SupportingDocument `gorm:"foreignKey:ClaimID" json:"documents,omitempty"`
}

func (Claim) TableName() string {
	return "claims"
}

// ToDomain maps the persisted claim to the domain entity the decision
// core works on. The status relation must be preloaded.
func (c *Claim) ToDomain() *domain.Claim {
	claim := &domain.Claim{
		ID:             c.ID,
		UserID:         c.UserID,
		Amount:         c.Amount,
		ClaimType:      c.ClaimType,
		SubmissionDate: c.SubmissionDate,
		ApprovalDate:   c.ApprovalDate,
		HoursWorked:    c.HoursWorked,
		HourlyRate:     c.HourlyRate,
	}
	if c.Status != nil {
		claim.Status = domain.StatusName(c.Status.Name)
	}
	return claim
}

// ClaimResponse DTO
type ClaimResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	LecturerName   string     `json:"lecturer_name,omitempty"`
	Status         string     `json:"status,omitempty"`
	Amount         float64    `json:"amount"`
	ClaimType      string     `json:"claim_type"`
	SubmissionDate time.Time  `json:"submission_date"`
	ApprovalDate   *time.Time `json:"approval_date"`
	HoursWorked    float64    `json:"hours_worked"`
	HourlyRate     float64    `json:"hourly_rate"`
	Documents      []string   `json:"documents,omitempty"`
}

func (c *Claim) ToResponse() *ClaimResponse {
	resp := &ClaimResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Amount:         c.Amount,
		ClaimType:      c.ClaimType,
		SubmissionDate: c.SubmissionDate,
		ApprovalDate:   c.ApprovalDate,
		HoursWorked:    c.HoursWorked,
		HourlyRate:     c.HourlyRate,
	}
	if c.User != nil {
		resp.LecturerName = c.User.FirstName + " " + c.User.LastName
	}
	if c.Status != nil {
		resp.Status = c.Status.Name
	}
	for _, doc := range c.Documents {
		resp.Documents = append(resp.Documents, doc.Name)
	}
	return resp
}

// SupportingDocument represents the supporting_documents table. The
// file content is opaque to the core; only its existence matters for
// claim processing.
type SupportingDocument struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClaimID     uint      `gorm:"not null;index" json:"claim_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	UploadDate  time.Time `gorm:"not null" json:"upload_date"`
	FileContent []byte    `gorm:"type:longblob" json:"-"`

	Claim *Claim `gorm:"foreignKey:ClaimID" json:"-"`
}

func (SupportingDocument) TableName() string {
	return "supporting_documents"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates tables for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&RefreshToken{},
		&ClaimStatus{},
		&Claim{},
		&SupportingDocument{},
	)
}
