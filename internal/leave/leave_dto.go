package leave

type CreateLeaveRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

// UpdateLeaveRequest is a full field replace; status and creation time
// are never client-supplied.
type UpdateLeaveRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type FilterLeavesRequest struct {
	EmployeeID *uint  `form:"employee_id"`
	LeaveType  string `form:"leave_type"`
	Status     string `form:"status"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Keyword    string `form:"keyword"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=10"`
	SortBy     string `form:"sort_by,default=StartDate"`
	SortOrder  string `form:"sort_order,default=asc"`
}

type LeaveReportQuery struct {
	Year       int    `form:"year" binding:"required"`
	Department string `form:"department"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type LeaveResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LeaveType    string `json:"leave_type"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	CreatedAt    string `json:"created_at"`
}

type LeaveReportRow struct {
	EmployeeID   uint   `json:"employee_id"`
	FullName     string `json:"full_name"`
	TotalLeaves  int    `json:"total_leaves"`
	AnnualLeaves int    `json:"annual_leaves"`
	SickLeaves   int    `json:"sick_leaves"`
}
