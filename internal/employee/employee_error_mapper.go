package employee

import (
	"errors"

	employeeerrors "github.com/uratMeds/LMS-API/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uratMeds/LMS-API/internal/shared/apperror"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 foreign_key_violation, 23505 unique_violation
		if pgErr.Code == "23503" || pgErr.Code == "23505" {
			return apperror.Wrap(err, apperror.CodeConflict, "employee record conflicts with existing data", 409)
		}
	}

	return err
}
