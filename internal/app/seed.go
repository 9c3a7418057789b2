package app

import (
	"time"

	"github.com/uratMeds/LMS-API/internal/employee"
	"github.com/uratMeds/LMS-API/internal/leave"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// seed inserts the demo records on an empty database.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&employee.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	emp := employee.Employee{
		ID:          1,
		FullName:    "John Doe",
		Department:  "IT",
		JoiningDate: time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&emp).Error; err != nil {
		return err
	}

	req := leave.LeaveRequest{
		ID:         1,
		EmployeeID: 1,
		LeaveType:  leave.TypeAnnual,
		StartDate:  time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 4, 21, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusPending,
		Reason:     "Vacation",
		CreatedAt:  time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Omit("Employee").Create(&req).Error; err != nil {
		return err
	}

	zap.L().Info("seeded demo employee and leave request")
	return nil
}
