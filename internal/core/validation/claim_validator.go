package validation

import (
	"time"

	"uni-cmcs/internal/core/domain"
)

// Claim field bounds
const (
	MaxClaimHours = 40.0
	MinHourlyRate = 150.0
	MaxHourlyRate = 350.0
)

// ClaimResult carries the outcome of a full claim check. Errors are
// human-readable messages in rule declaration order; all rules are
// evaluated, not just the first failing one.
type ClaimResult struct {
	Valid  bool
	Errors []string
}

// ValidateClaim checks the claim's core fields against the submission
// rules. It has no side effects and never touches the store.
func ValidateClaim(claim *domain.Claim, now time.Time) ClaimResult {
	var violations []string

	if claim.HoursWorked <= 0 {
		violations = append(violations, "Hours must be greater than 0")
	} else if claim.HoursWorked > MaxClaimHours {
		violations = append(violations, "Hours cannot exceed 40")
	}

	if claim.HourlyRate < MinHourlyRate || claim.HourlyRate > MaxHourlyRate {
		violations = append(violations, "Hourly rate must be between R150 and R350")
	}

	if claim.SubmissionDate.After(now) {
		violations = append(violations, "Submission date cannot be in the future")
	}

	return ClaimResult{
		Valid:  len(violations) == 0,
		Errors: violations,
	}
}
