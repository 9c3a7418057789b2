package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/uratMeds/LMS-API/internal/employee"
	"github.com/uratMeds/LMS-API/internal/events"
	leaveerrors "github.com/uratMeds/LMS-API/internal/leave/errors"
	"github.com/uratMeds/LMS-API/internal/messaging/kafka"
	"github.com/uratMeds/LMS-API/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveResponse, error)
	Update(ctx context.Context, id uint, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id uint) error
	Approve(ctx context.Context, id uint) (LeaveResponse, error)
	Filter(ctx context.Context, req FilterLeavesRequest) ([]LeaveResponse, int64, error)
	Report(ctx context.Context, req LeaveReportQuery) ([]LeaveReportRow, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	locks     *employeeLocks
	reports   singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		locks:     newEmployeeLocks(),
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	leaveType, startDate, endDate, err := parseLeaveFields(req.LeaveType, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// The read-check-write sequence below is the critical section; two
	// concurrent creates for one employee must not interleave.
	unlock := s.locks.Lock(req.EmployeeID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.WithTx(tx).FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	existing, err := qtx.FindAllByEmployee(ctx, req.EmployeeID, nil)
	if err != nil {
		s.logger.Error("create leave existing lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		EmployeeID: req.EmployeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     StatusPending,
		Reason:     req.Reason,
		CreatedAt:  time.Now().UTC(),
	}

	if err := ValidatePolicy(l, existing); err != nil {
		s.logger.Warn("create leave rejected by policy",
			zap.Uint("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.Uint("leave_id", l.ID),
		zap.Uint("employee_id", req.EmployeeID),
	)

	l.Employee = emp
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.Uint("leave_id", id),
		zap.Uint("employee_id", req.EmployeeID),
	)

	leaveType, startDate, endDate, err := parseLeaveFields(req.LeaveType, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("update leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	unlock := s.locks.Lock(req.EmployeeID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	emp, err := s.employees.WithTx(tx).FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	// Same policy as create; the record under update is excluded from
	// the overlap and quota sets.
	excludeID := l.ID
	existing, err := qtx.FindAllByEmployee(ctx, req.EmployeeID, &excludeID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l.EmployeeID = req.EmployeeID
	l.LeaveType = leaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.Reason = req.Reason
	// Status and CreatedAt are never replaced by an update.

	if err := ValidatePolicy(l, existing); err != nil {
		s.logger.Warn("update leave rejected by policy",
			zap.Uint("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success", zap.Uint("leave_id", id))

	l.Employee = emp
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete leave success", zap.Uint("leave_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, id uint) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested", zap.Uint("leave_id", id))

	for {
		l, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			return LeaveResponse{}, err
		}

		resp, moved, err := s.approveLocked(ctx, id, l.EmployeeID)
		if moved {
			// A concurrent update reassigned the request; lock again
			// under the new employee.
			continue
		}
		return resp, err
	}
}

// approveLocked runs the approve transition while holding the lock for
// lockedEmployee. It reports moved=true when the re-read record belongs
// to a different employee, in which case nothing was written.
func (s *service) approveLocked(ctx context.Context, id, lockedEmployee uint) (LeaveResponse, bool, error) {
	unlock := s.locks.Lock(lockedEmployee)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Re-read under the lock; the status may have moved since the
	// unlocked read that chose the lock key.
	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, false, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, false, err
	}

	if l.EmployeeID != lockedEmployee {
		return LeaveResponse{}, true, nil
	}

	if l.Status != StatusPending {
		s.logger.Warn("approve leave invalid transition",
			zap.Uint("leave_id", id),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, false, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusApproved

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, false, err
	}

	if err := s.stageApprovedEvent(ctx, tx, l); err != nil {
		s.logger.Error("approve leave stage event failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, false, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, false, err
	}
	s.logger.Info("approve leave success", zap.Uint("leave_id", id))

	return mapToResponse(*l), false, nil
}

func (s *service) stageApprovedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	event := events.LeaveApprovedEvent{
		EventType:  "leave.approved",
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.LeaveType),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.FormatUint(uint64(l.ID), 10),
		EventType:     event.EventType,
		Topic:         events.LeaveApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Filter(ctx context.Context, req FilterLeavesRequest) ([]LeaveResponse, int64, error) {
	if req.Page < 1 || req.PageSize < 1 {
		return nil, 0, leaveerrors.ErrInvalidPagination
	}

	criteria := FilterCriteria{
		EmployeeID: req.EmployeeID,
		Keyword:    req.Keyword,
	}

	if req.LeaveType != "" {
		leaveType, err := ParseLeaveType(req.LeaveType)
		if err != nil {
			return nil, 0, err
		}
		criteria.LeaveType = &leaveType
	}
	if req.Status != "" {
		status, err := ParseLeaveStatus(req.Status)
		if err != nil {
			return nil, 0, err
		}
		criteria.Status = &status
	}
	if req.StartDate != "" {
		startFrom, err := parseDate(req.StartDate)
		if err != nil {
			return nil, 0, err
		}
		criteria.StartFrom = &startFrom
	}
	if req.EndDate != "" {
		endTo, err := parseDate(req.EndDate)
		if err != nil {
			return nil, 0, err
		}
		criteria.EndTo = &endTo
	}

	leaves, total, err := s.repo.Filter(
		ctx,
		criteria,
		req.Page,
		req.PageSize,
		ParseSortField(req.SortBy),
		ParseSortOrder(req.SortOrder),
	)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) Report(ctx context.Context, req LeaveReportQuery) ([]LeaveReportRow, error) {
	var from, to *time.Time
	if req.From != "" {
		t, err := parseDate(req.From)
		if err != nil {
			return nil, err
		}
		from = &t
	}
	if req.To != "" {
		t, err := parseDate(req.To)
		if err != nil {
			return nil, err
		}
		to = &t
	}

	// Identical concurrent report requests share one computation. The
	// flight outlives any single caller, so it must not die with the
	// first caller's context.
	key := fmt.Sprintf("report:%d:%s:%s:%s", req.Year, req.Department, req.From, req.To)
	rows, err, _ := s.reports.Do(key, func() (any, error) {
		leaves, err := s.repo.FindForReport(context.WithoutCancel(ctx), req.Year, req.Department, from, to)
		if err != nil {
			return nil, err
		}
		return BuildReport(leaves), nil
	})
	if err != nil {
		return nil, err
	}
	return rows.([]LeaveReportRow), nil
}

func parseLeaveFields(leaveType, start, end string) (LeaveType, time.Time, time.Time, error) {
	lt, err := ParseLeaveType(leaveType)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	startDate, err := parseDate(start)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return lt, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.LeaveType),
		Status:     string(l.Status),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Reason:     l.Reason,
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
