package domain

import "time"

// Role represents a user role in the system
type Role string

const (
	RoleLecturer    Role = "Lecturer"
	RoleCoordinator Role = "Coordinator"
	RoleManager     Role = "Manager"
)

// StatusName is the closed set of claim statuses. Claims move
// Pending -> Approved or Pending -> Rejected; both are terminal.
type StatusName string

const (
	StatusPending  StatusName = "Pending"
	StatusApproved StatusName = "Approved"
	StatusRejected StatusName = "Rejected"
)

// Valid reports whether s is one of the seeded status names.
func (s StatusName) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether a claim in this status accepts no further
// transitions.
func (s StatusName) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// User represents a user in the domain layer
type User struct {
	ID          uint
	Role        Role
	Username    string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
}

// Claim represents a monthly claim in the domain layer
type Claim struct {
	ID             uint
	UserID         uint
	Status         StatusName
	Amount         float64
	ClaimType      string
	SubmissionDate time.Time
	ApprovalDate   *time.Time
	HoursWorked    float64
	HourlyRate     float64
}

// WorkEntry is one day's contribution to a claim. Entries are consumed
// at submission time to compute the claim aggregate; they are not
// persisted on their own.
type WorkEntry struct {
	WorkDate    time.Time
	HoursWorked float64
}
