package table

import (
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Classify maps store errors onto domain errors. Unique violations become
// errs.ConflictError, foreign key and check violations become
// errs.ValueIsInvalidError, a missing row becomes errs.ObjectNotFoundError.
// Everything else is returned unchanged.
func Classify(err error, resource string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(resource, id, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return errs.NewConflictError(resource, err)
	case foreignKeyViolation:
		return errs.NewValueIsInvalidErrorWithCause(resource+" reference", err)
	case checkViolation:
		return errs.NewValueIsInvalidErrorWithCause(resource, err)
	default:
		return err
	}
}
