package repos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/pkg/circuitbreaker"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		err             error
		expected        error
		expectedOutcome string
	}{
		{name: "nil", err: nil, expectedOutcome: outcomeSuccess},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expected: model.ErrConstraintViolation, expectedOutcome: outcomeConstraint},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: model.ErrConstraintViolation, expectedOutcome: outcomeConstraint},
		{name: "not null violation", err: &pgconn.PgError{Code: "23502"}, expected: model.ErrConstraintViolation, expectedOutcome: outcomeConstraint},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, expected: model.ErrConstraintViolation, expectedOutcome: outcomeConstraint},
		{name: "connection exception", err: &pgconn.PgError{Code: "08006"}, expected: model.ErrConnectionUnavailable, expectedOutcome: outcomeUnavailable},
		{name: "connection refused", err: &pgconn.PgError{Code: "08001"}, expected: model.ErrConnectionUnavailable, expectedOutcome: outcomeUnavailable},
		{name: "circuit open", err: circuitbreaker.ErrCircuitOpen, expected: model.ErrConnectionUnavailable, expectedOutcome: outcomeUnavailable},
		{name: "half open saturation", err: circuitbreaker.ErrTooManyRequests, expected: model.ErrConnectionUnavailable, expectedOutcome: outcomeUnavailable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, expected: model.ErrStore, expectedOutcome: outcomeError},
		{name: "plain error", err: errors.New("boom"), expected: model.ErrStore, expectedOutcome: outcomeError},
		{name: "not found passes through", err: model.ErrNotFound, expected: model.ErrNotFound, expectedOutcome: outcomeNotFound},
		{
			name:            "pool acquire failure passes through",
			err:             fmt.Errorf("%w: acquiring connection: %w", model.ErrConnectionUnavailable, context.DeadlineExceeded),
			expected:        model.ErrConnectionUnavailable,
			expectedOutcome: outcomeUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			classified := classifyError(tc.err)

			if tc.err == nil {
				require.NoError(t, classified)
			} else {
				require.ErrorIs(t, classified, tc.expected)
				require.ErrorIs(t, classified, tc.err)
			}

			require.Equal(t, tc.expectedOutcome, outcomeOf(classified))
			require.Equal(t, classified, classifyError(classified))
		})
	}
}

func TestBreakerIgnores(t *testing.T) {
	t.Parallel()

	require.True(t, breakerIgnores(nil))
	require.True(t, breakerIgnores(fmt.Errorf("finding person: %w", model.ErrNotFound)))
	require.True(t, breakerIgnores(classifyError(&pgconn.PgError{Code: "23505"})))
	require.True(t, breakerIgnores(classifyError(context.Canceled)))

	require.False(t, breakerIgnores(classifyError(&pgconn.PgError{Code: "08006"})))
	require.False(t, breakerIgnores(classifyError(errors.New("boom"))))
}
