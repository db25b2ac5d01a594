package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/pkg/circuitbreaker"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	outcomeSuccess     = "success"
	outcomeNotFound    = "not_found"
	outcomeConstraint  = "constraint_violation"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

// classifyError maps a driver, pool or breaker failure onto the model sentinels.
// Errors that already carry a sentinel pass through unchanged.
func classifyError(err error) error {
	if err == nil || isClassified(err) {
		return err
	}

	if circuitbreaker.Rejected(err) {
		return fmt.Errorf("%w: %w", model.ErrConnectionUnavailable, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %w", model.ErrConnectionUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
			return fmt.Errorf("%w: constraint %s: %w", model.ErrConstraintViolation, pgErr.ConstraintName, err)
		case pgerrcode.IsConnectionException(pgErr.Code):
			return fmt.Errorf("%w: %w", model.ErrConnectionUnavailable, err)
		}
	}

	return fmt.Errorf("%w: %w", model.ErrStore, err)
}

func isClassified(err error) bool {
	return errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrConstraintViolation) ||
		errors.Is(err, model.ErrConnectionUnavailable) ||
		errors.Is(err, model.ErrStore)
}

// outcomeOf labels a classified error for metrics.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, model.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, model.ErrConstraintViolation):
		return outcomeConstraint
	case errors.Is(err, model.ErrConnectionUnavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}

// breakerIgnores reports errors that say nothing about the health of the database.
func breakerIgnores(err error) bool {
	return err == nil ||
		errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrConstraintViolation) ||
		errors.Is(err, context.Canceled)
}
