package validation

import (
	"testing"
	"time"

	"uni-cmcs/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateClaim(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	claim := func(hours, rate float64) *domain.Claim {
		return &domain.Claim{
			HoursWorked:    hours,
			HourlyRate:     rate,
			SubmissionDate: now.AddDate(0, 0, -1),
		}
	}

	tests := []struct {
		name       string
		claim      *domain.Claim
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "valid claim",
			claim:     claim(20, 200),
			wantValid: true,
		},
		{
			name:      "boundary hours and rate",
			claim:     claim(40, 150),
			wantValid: true,
		},
		{
			name:      "upper rate boundary",
			claim:     claim(1, 350),
			wantValid: true,
		},
		{
			name:       "zero hours",
			claim:      claim(0, 200),
			wantValid:  false,
			wantErrors: []string{"Hours must be greater than 0"},
		},
		{
			name:       "negative hours",
			claim:      claim(-3, 200),
			wantValid:  false,
			wantErrors: []string{"Hours must be greater than 0"},
		},
		{
			name:       "too many hours",
			claim:      claim(41, 200),
			wantValid:  false,
			wantErrors: []string{"Hours cannot exceed 40"},
		},
		{
			name:       "rate below band",
			claim:      claim(20, 149),
			wantValid:  false,
			wantErrors: []string{"Hourly rate must be between R150 and R350"},
		},
		{
			name:       "rate above band",
			claim:      claim(20, 351),
			wantValid:  false,
			wantErrors: []string{"Hourly rate must be between R150 and R350"},
		},
		{
			name: "future submission date",
			claim: &domain.Claim{
				HoursWorked:    20,
				HourlyRate:     200,
				SubmissionDate: now.AddDate(0, 0, 1),
			},
			wantValid:  false,
			wantErrors: []string{"Submission date cannot be in the future"},
		},
		{
			name: "all violations collected in order",
			claim: &domain.Claim{
				HoursWorked:    0,
				HourlyRate:     100,
				SubmissionDate: now.AddDate(0, 0, 1),
			},
			wantValid: false,
			wantErrors: []string{
				"Hours must be greater than 0",
				"Hourly rate must be between R150 and R350",
				"Submission date cannot be in the future",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateClaim(tt.claim, now)

			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantErrors, result.Errors)
		})
	}
}
