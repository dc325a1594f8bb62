package validation

import (
	"testing"
	"time"

	"uni-cmcs/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWorkEntries(t *testing.T) {
	submission := time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)
	yesterday := submission.AddDate(0, 0, -1)
	tomorrow := submission.AddDate(0, 0, 1)

	t.Run("aggregates hours and amount", func(t *testing.T) {
		entries := []domain.WorkEntry{
			{WorkDate: submission, HoursWorked: 5},
			{WorkDate: yesterday, HoursWorked: 3},
		}

		agg, err := ValidateWorkEntries(entries, submission, 100)
		require.NoError(t, err)
		assert.Equal(t, 8.0, agg.TotalHours)
		assert.Equal(t, 800.0, agg.Amount)
	})

	t.Run("empty list yields zero aggregate", func(t *testing.T) {
		agg, err := ValidateWorkEntries(nil, submission, 200)
		require.NoError(t, err)
		assert.Zero(t, agg.TotalHours)
		assert.Zero(t, agg.Amount)
	})

	t.Run("rejects work date after submission", func(t *testing.T) {
		entries := []domain.WorkEntry{
			{WorkDate: yesterday, HoursWorked: 4},
			{WorkDate: tomorrow, HoursWorked: 2},
		}

		_, err := ValidateWorkEntries(entries, submission, 100)
		require.ErrorIs(t, err, ErrWorkDateAfterSubmission)
		assert.Contains(t, err.Error(), "entry 2")
	})

	t.Run("same day later hour is allowed", func(t *testing.T) {
		// Comparison is at day granularity; an entry dated later in
		// the submission day is fine.
		entries := []domain.WorkEntry{
			{WorkDate: submission.Add(5 * time.Hour), HoursWorked: 2},
		}

		_, err := ValidateWorkEntries(entries, submission, 100)
		assert.NoError(t, err)
	})

	hourCases := []struct {
		name    string
		hours   float64
		wantErr bool
	}{
		{"below minimum", 0.5, true},
		{"zero", 0, true},
		{"minimum", 1, false},
		{"maximum", 8, false},
		{"above maximum", 8.5, true},
	}

	for _, tc := range hourCases {
		t.Run("hours "+tc.name, func(t *testing.T) {
			entries := []domain.WorkEntry{
				{WorkDate: yesterday, HoursWorked: tc.hours},
			}

			_, err := ValidateWorkEntries(entries, submission, 100)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrWorkHoursOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
