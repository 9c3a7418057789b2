package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID uint, excludeID *uint) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uint) error
	Filter(ctx context.Context, criteria FilterCriteria, page, pageSize int, sortField SortField, sortOrder SortOrder) ([]LeaveRequest, int64, error)
	FindForReport(ctx context.Context, year int, department string, from, to *time.Time) ([]LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds all queries to tx so the caller's commit or rollback
// covers them.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("id ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint, excludeID *uint) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var leaves []LeaveRequest
	err := q.Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}

func (r *repository) Filter(
	ctx context.Context,
	criteria FilterCriteria,
	page, pageSize int,
	sortField SortField,
	sortOrder SortOrder,
) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if criteria.EmployeeID != nil {
		q = q.Where("employee_id = ?", *criteria.EmployeeID)
	}
	if criteria.LeaveType != nil {
		q = q.Where("leave_type = ?", *criteria.LeaveType)
	}
	if criteria.Status != nil {
		q = q.Where("status = ?", *criteria.Status)
	}
	if criteria.StartFrom != nil {
		q = q.Where("start_date >= ?", *criteria.StartFrom)
	}
	if criteria.EndTo != nil {
		q = q.Where("end_date <= ?", *criteria.EndTo)
	}
	if strings.TrimSpace(criteria.Keyword) != "" {
		// Whitespace-only keywords impose no constraint.
		// Case-sensitive on Postgres; SQLite relies on
		// PRAGMA case_sensitive_like set at connection time.
		q = q.Where("reason LIKE ?", "%"+criteria.Keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err := q.
		Preload("Employee").
		Order(sortOrder.OrderClause(sortField)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindForReport(
	ctx context.Context,
	year int,
	department string,
	from, to *time.Time,
) ([]LeaveRequest, error) {
	// Half-open start-date range instead of a SQL YEAR() extraction so
	// the same query runs on Postgres and SQLite.
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("leave_requests.start_date >= ? AND leave_requests.start_date < ?", yearStart, yearEnd)

	if department != "" {
		q = q.Where("employees.department = ?", department)
	}
	if from != nil {
		q = q.Where("leave_requests.start_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("leave_requests.end_date <= ?", *to)
	}

	var leaves []LeaveRequest
	err := q.Preload("Employee").Find(&leaves).Error
	return leaves, err
}
