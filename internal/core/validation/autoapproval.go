package validation

import "uni-cmcs/internal/core/domain"

// Auto-approval thresholds. The rate band is deliberately tighter than
// the 150-350 validation range: only standard-rate claims qualify for
// the fast path.
const (
	AutoApproveMinRate   = 150.0
	AutoApproveMaxRate   = 250.0
	AutoApproveMaxHours  = 20.0
	AutoApproveMaxAmount = 5000.0
)

// Manual-review reason labels, in the fixed order they are reported.
const (
	ReasonNonStandardRate = "Non-standard rate"
	ReasonExtendedHours   = "Extended hours"
	ReasonHighAmount      = "High claim amount"
)

// EvaluateAutoApproval runs the three auto-approval predicates over an
// already-validated claim. The amount is recomputed from hours and rate
// rather than trusting the stored field. When the claim does not
// qualify, reasons names each failed predicate in fixed order.
func EvaluateAutoApproval(claim *domain.Claim) (approved bool, reasons []string) {
	amount := claim.HoursWorked * claim.HourlyRate

	isStandardRate := claim.HourlyRate >= AutoApproveMinRate && claim.HourlyRate <= AutoApproveMaxRate
	isRoutineHours := claim.HoursWorked <= AutoApproveMaxHours
	isLowRiskAmount := amount <= AutoApproveMaxAmount

	if isStandardRate && isRoutineHours && isLowRiskAmount {
		return true, nil
	}

	if !isStandardRate {
		reasons = append(reasons, ReasonNonStandardRate)
	}
	if !isRoutineHours {
		reasons = append(reasons, ReasonExtendedHours)
	}
	if !isLowRiskAmount {
		reasons = append(reasons, ReasonHighAmount)
	}
	return false, reasons
}
