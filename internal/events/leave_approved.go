package events

import "time"

const LeaveApprovedTopic = "lms.leave.lifecycle.v1"

type LeaveApprovedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    uint      `json:"leave_id"`
	EmployeeID uint      `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
