package validation

import (
	"testing"

	"uni-cmcs/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAutoApproval(t *testing.T) {
	tests := []struct {
		name        string
		hours       float64
		rate        float64
		wantApprove bool
		wantReasons []string
	}{
		{
			name:        "standard claim approved",
			hours:       10,
			rate:        200,
			wantApprove: true,
		},
		{
			name:        "boundary claim approved",
			hours:       20,
			rate:        250,
			wantApprove: true,
		},
		{
			name:        "rate above standard band",
			hours:       10,
			rate:        300,
			wantApprove: false,
			wantReasons: []string{"Non-standard rate"},
		},
		{
			name:        "extended hours",
			hours:       25,
			rate:        150,
			wantApprove: false,
			wantReasons: []string{"Extended hours"},
		},
		{
			name:        "extended hours push amount over threshold",
			hours:       25,
			rate:        250,
			wantApprove: false,
			wantReasons: []string{"Extended hours", "High claim amount"},
		},
		{
			name:        "every predicate fails in fixed order",
			hours:       25,
			rate:        300,
			wantApprove: false,
			wantReasons: []string{"Non-standard rate", "Extended hours", "High claim amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &domain.Claim{
				HoursWorked: tt.hours,
				HourlyRate:  tt.rate,
				// Stored amount is deliberately wrong; the engine must
				// recompute it from hours and rate.
				Amount: 1,
			}

			approved, reasons := EvaluateAutoApproval(claim)

			assert.Equal(t, tt.wantApprove, approved)
			assert.Equal(t, tt.wantReasons, reasons)
		})
	}
}
