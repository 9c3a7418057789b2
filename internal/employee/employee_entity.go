package employee

import (
	"time"
)

type Employee struct {
	ID          uint      `gorm:"primaryKey"`
	FullName    string    `gorm:"type:varchar(120);not null"`
	Department  string    `gorm:"type:varchar(80);not null;index"`
	JoiningDate time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
