package leave

import (
	"time"

	"github.com/uratMeds/LMS-API/internal/employee"

	leaveerrors "github.com/uratMeds/LMS-API/internal/leave/errors"
)

type LeaveType string

const (
	TypeAnnual LeaveType = "Annual"
	TypeSick   LeaveType = "Sick"
	TypeOther  LeaveType = "Other"
)

// ParseLeaveType resolves the transport string form of a leave type.
func ParseLeaveType(s string) (LeaveType, error) {
	switch LeaveType(s) {
	case TypeAnnual, TypeSick, TypeOther:
		return LeaveType(s), nil
	default:
		return "", leaveerrors.ErrInvalidLeaveType
	}
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "Pending"
	StatusApproved LeaveStatus = "Approved"
	StatusRejected LeaveStatus = "Rejected"
)

func ParseLeaveStatus(s string) (LeaveStatus, error) {
	switch LeaveStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return LeaveStatus(s), nil
	default:
		return "", leaveerrors.ErrInvalidStatus
	}
}

type LeaveRequest struct {
	ID         uint               `gorm:"primaryKey"`
	EmployeeID uint               `gorm:"not null;index:idx_leave_requests_employee_dates"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`

	LeaveType LeaveType `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`

	Status LeaveStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	Reason string      `gorm:"type:text"`

	CreatedAt time.Time
}

// DaySpan is the inclusive number of days covered by [start, end].
func DaySpan(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
