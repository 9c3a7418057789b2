package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Department  string `json:"department" binding:"required"`
	JoiningDate string `json:"joining_date" binding:"required"`
}

type EmployeeResponse struct {
	ID          uint   `json:"id"`
	FullName    string `json:"full_name"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}
