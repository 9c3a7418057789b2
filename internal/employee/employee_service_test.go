package employee_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/uratMeds/LMS-API/internal/employee"
	employeeerrors "github.com/uratMeds/LMS-API/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	createFn   func(ctx context.Context, e *employee.Employee) error
	findAllFn  func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn func(ctx context.Context, id uint) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func setupEmployeeServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeEmployeeRepository, employee.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	return db, sqlMock, repo, employee.NewService(db, repo)
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "John Doe", e.FullName)
			assert.Equal(t, "IT", e.Department)
			assert.Equal(t, time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC), e.JoiningDate)
			e.ID = 1
			return nil
		}

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:    "John Doe",
			Department:  "IT",
			JoiningDate: "2022-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, "2022-01-15", resp.JoiningDate)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("negative malformed joining date", func(t *testing.T) {
		db, _, _, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:    "John Doe",
			Department:  "IT",
			JoiningDate: "15-01-2022",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, _, repo, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			return &employee.Employee{
				ID:          id,
				FullName:    "John Doe",
				Department:  "IT",
				JoiningDate: time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
			}, nil
		}

		resp, err := svc.GetByID(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, "John Doe", resp.FullName)
		assert.Equal(t, "2022-01-15", resp.JoiningDate)
	})

	t.Run("negative missing row maps to not found", func(t *testing.T) {
		db, _, _, svc := setupEmployeeServiceTest(t)
		defer db.Close()

		_, err := svc.GetByID(ctx, 404)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	db, _, repo, svc := setupEmployeeServiceTest(t)
	defer db.Close()

	repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{
			{ID: 1, FullName: "John Doe", Department: "IT", JoiningDate: time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)},
			{ID: 2, FullName: "Alice Smith", Department: "HR", JoiningDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	resp, err := svc.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Alice Smith", resp[1].FullName)
}
