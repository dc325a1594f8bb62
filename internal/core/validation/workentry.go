package validation

import (
	"errors"
	"fmt"
	"time"

	"uni-cmcs/internal/core/domain"
)

// Work entry rule violations
var (
	ErrWorkDateAfterSubmission = errors.New("work date cannot be after the submission date")
	ErrWorkHoursOutOfRange     = errors.New("hours worked must be between 1 and 8")
)

const (
	MinEntryHours = 1.0
	MaxEntryHours = 8.0
)

// EntryAggregate is the result of validating a set of work entries.
type EntryAggregate struct {
	TotalHours float64
	Amount     float64
}

// ValidateWorkEntries checks every entry against the submission date and
// the per-day hour band, failing on the first violation. On success it
// returns the claim aggregate: total hours and amount at the given hourly
// rate. An empty entry list is not an error here; it yields a zero
// aggregate and the minimum-one-entry rule stays a form concern.
func ValidateWorkEntries(entries []domain.WorkEntry, submissionDate time.Time, hourlyRate float64) (*EntryAggregate, error) {
	cutoff := dayOf(submissionDate)

	var totalHours float64
	for i, entry := range entries {
		if dayOf(entry.WorkDate).After(cutoff) {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrWorkDateAfterSubmission)
		}
		if entry.HoursWorked < MinEntryHours || entry.HoursWorked > MaxEntryHours {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrWorkHoursOutOfRange)
		}
		totalHours += entry.HoursWorked
	}

	return &EntryAggregate{
		TotalHours: totalHours,
		Amount:     totalHours * hourlyRate,
	}, nil
}

// dayOf truncates t to its calendar day. Work dates are compared at day
// granularity, same as the submission form.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
