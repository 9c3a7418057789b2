package leave_test

import (
	"testing"
	"time"

	"github.com/uratMeds/LMS-API/internal/leave"
	leaveerrors "github.com/uratMeds/LMS-API/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func annual(employeeID uint, start, end time.Time) leave.LeaveRequest {
	return leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.TypeAnnual,
		StartDate:  start,
		EndDate:    end,
		Status:     leave.StatusPending,
	}
}

func TestValidatePolicy_Overlap(t *testing.T) {
	existing := []leave.LeaveRequest{
		annual(1, date(2024, 4, 18), date(2024, 4, 21)),
	}

	t.Run("contained range rejected", func(t *testing.T) {
		candidate := annual(1, date(2024, 4, 19), date(2024, 4, 20))
		err := leave.ValidatePolicy(&candidate, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("touching endpoint is overlap", func(t *testing.T) {
		// Inclusive intervals: starting on the existing end date collides.
		candidate := annual(1, date(2024, 4, 21), date(2024, 4, 23))
		err := leave.ValidatePolicy(&candidate, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("ending on the existing start date is overlap", func(t *testing.T) {
		candidate := annual(1, date(2024, 4, 15), date(2024, 4, 18))
		err := leave.ValidatePolicy(&candidate, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("adjacent next day passes", func(t *testing.T) {
		candidate := annual(1, date(2024, 4, 22), date(2024, 4, 23))
		err := leave.ValidatePolicy(&candidate, existing)
		assert.NoError(t, err)
	})

	t.Run("no existing requests passes", func(t *testing.T) {
		candidate := annual(1, date(2024, 4, 18), date(2024, 4, 21))
		err := leave.ValidatePolicy(&candidate, nil)
		assert.NoError(t, err)
	})
}

func TestValidatePolicy_AnnualQuota(t *testing.T) {
	t.Run("exactly twenty days passes", func(t *testing.T) {
		existing := []leave.LeaveRequest{
			annual(1, date(2024, 2, 1), date(2024, 2, 16)), // 16 days
		}
		candidate := annual(1, date(2024, 5, 1), date(2024, 5, 4)) // 4 days
		err := leave.ValidatePolicy(&candidate, existing)
		assert.NoError(t, err)
	})

	t.Run("twenty one days rejected", func(t *testing.T) {
		existing := []leave.LeaveRequest{
			annual(1, date(2024, 2, 1), date(2024, 2, 16)), // 16 days
		}
		candidate := annual(1, date(2024, 5, 1), date(2024, 5, 5)) // 5 days
		err := leave.ValidatePolicy(&candidate, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrAnnualQuotaExceeded)
	})

	t.Run("four plus twenty rejected", func(t *testing.T) {
		existing := []leave.LeaveRequest{
			annual(1, date(2024, 4, 18), date(2024, 4, 21)), // 4 days
		}
		candidate := annual(1, date(2024, 6, 1), date(2024, 6, 20)) // 20 days
		err := leave.ValidatePolicy(&candidate, existing)
		assert.ErrorIs(t, err, leaveerrors.ErrAnnualQuotaExceeded)
	})

	t.Run("other leave types do not consume the quota", func(t *testing.T) {
		existing := []leave.LeaveRequest{
			{
				EmployeeID: 1,
				LeaveType:  leave.TypeSick,
				StartDate:  date(2024, 2, 1),
				EndDate:    date(2024, 2, 18),
				Reason:     "flu",
			},
		}
		candidate := annual(1, date(2024, 5, 1), date(2024, 5, 20)) // 20 days
		err := leave.ValidatePolicy(&candidate, existing)
		assert.NoError(t, err)
	})

	t.Run("requests from another year do not count", func(t *testing.T) {
		existing := []leave.LeaveRequest{
			annual(1, date(2023, 2, 1), date(2023, 2, 18)), // 18 days, 2023
		}
		candidate := annual(1, date(2024, 5, 1), date(2024, 5, 20)) // 20 days
		err := leave.ValidatePolicy(&candidate, existing)
		assert.NoError(t, err)
	})
}

func TestValidatePolicy_SickReason(t *testing.T) {
	sick := func(reason string) leave.LeaveRequest {
		return leave.LeaveRequest{
			EmployeeID: 1,
			LeaveType:  leave.TypeSick,
			StartDate:  date(2024, 3, 1),
			EndDate:    date(2024, 3, 2),
			Reason:     reason,
		}
	}

	t.Run("empty reason rejected", func(t *testing.T) {
		candidate := sick("")
		err := leave.ValidatePolicy(&candidate, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrMissingReason)
	})

	t.Run("whitespace reason rejected", func(t *testing.T) {
		candidate := sick("   \t ")
		err := leave.ValidatePolicy(&candidate, nil)
		assert.ErrorIs(t, err, leaveerrors.ErrMissingReason)
	})

	t.Run("non-blank reason passes", func(t *testing.T) {
		candidate := sick("doctor appointment")
		err := leave.ValidatePolicy(&candidate, nil)
		assert.NoError(t, err)
	})

	t.Run("other type never requires a reason", func(t *testing.T) {
		candidate := leave.LeaveRequest{
			EmployeeID: 1,
			LeaveType:  leave.TypeOther,
			StartDate:  date(2024, 3, 1),
			EndDate:    date(2024, 3, 2),
		}
		err := leave.ValidatePolicy(&candidate, nil)
		assert.NoError(t, err)
	})
}

func TestValidatePolicy_RuleOrder(t *testing.T) {
	// A candidate violating both overlap and quota reports overlap:
	// rules run in a fixed order and the first failure wins.
	existing := []leave.LeaveRequest{
		annual(1, date(2024, 6, 1), date(2024, 6, 19)), // 19 days
	}
	candidate := annual(1, date(2024, 6, 10), date(2024, 6, 20))
	err := leave.ValidatePolicy(&candidate, existing)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
}

func TestDaySpan(t *testing.T) {
	assert.Equal(t, 1, leave.DaySpan(date(2024, 4, 18), date(2024, 4, 18)))
	assert.Equal(t, 4, leave.DaySpan(date(2024, 4, 18), date(2024, 4, 21)))
	assert.Equal(t, 20, leave.DaySpan(date(2024, 6, 1), date(2024, 6, 20)))
}
