package leave

import (
	"strings"

	leaveerrors "github.com/uratMeds/LMS-API/internal/leave/errors"
)

// AnnualQuotaDays caps the inclusive day spans of an employee's Annual
// requests within one calendar year (keyed by start date).
const AnnualQuotaDays = 20

// ValidatePolicy decides whether a candidate request is acceptable
// against the employee's existing requests. Rules run in a fixed order
// and the first failure wins. The caller must exclude the candidate's
// own record from existing when validating an update.
//
// It is pure: no I/O, no clock, identical for create and update.
func ValidatePolicy(candidate *LeaveRequest, existing []LeaveRequest) error {
	for i := range existing {
		e := &existing[i]
		// Inclusive intervals: touching endpoints count as overlap.
		if !e.StartDate.After(candidate.EndDate) && !e.EndDate.Before(candidate.StartDate) {
			return leaveerrors.ErrLeaveOverlap
		}
	}

	if candidate.LeaveType == TypeAnnual {
		year := candidate.StartDate.Year()
		total := DaySpan(candidate.StartDate, candidate.EndDate)
		for i := range existing {
			e := &existing[i]
			if e.LeaveType == TypeAnnual && e.StartDate.Year() == year {
				total += DaySpan(e.StartDate, e.EndDate)
			}
		}
		if total > AnnualQuotaDays {
			return leaveerrors.ErrAnnualQuotaExceeded
		}
	}

	if candidate.LeaveType == TypeSick && strings.TrimSpace(candidate.Reason) == "" {
		return leaveerrors.ErrMissingReason
	}

	return nil
}
