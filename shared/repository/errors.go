package repository

import (
	"errors"
	"fmt"
	"hostmaster/shared/constant"
	"hostmaster/shared/failure"

	"github.com/lib/pq"
)

// translateError maps constraint violations to client facing failures.
// It returns nil for every other error.
func translateError(entity string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(fmt.Sprintf("%s already exists", entity)) // nolint:wrapcheck
	case constant.PqErrorCodeExclusionViolation:
		return failure.Conflict(fmt.Sprintf("%s overlaps an existing %s", entity, entity)) // nolint:wrapcheck
	case constant.PqErrorCodeFkViolation:
		return failure.BadRequestFromString(fmt.Sprintf("%s references a missing or still referenced record", entity)) // nolint:wrapcheck
	case constant.PqErrorCodeCheckViolation:
		return failure.BadRequestFromString(fmt.Sprintf("%s violates constraint %s", entity, pqErr.Constraint)) // nolint:wrapcheck
	}

	return nil
}
