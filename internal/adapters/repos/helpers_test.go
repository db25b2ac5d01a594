package repos_test

import (
	"bytes"
	"testing"

	"github.com/architeacher/pedalpal/internal/adapters/repos"
	"github.com/architeacher/pedalpal/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var (
	personColumns   = []string{"id", "name"}
	colorColumns    = []string{"id", "name"}
	bikeColumns     = []string{"id", "name", "owner_id", "color_id"}
	bikeTripColumns = []string{"id", "name", "bike_id"}

	uniqueViolation = &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: "person_pkey",
	}
	foreignKeyViolation = &pgconn.PgError{
		Code:           "23503",
		Message:        "insert or update violates foreign key constraint",
		ConstraintName: "bike_owner_id_fkey",
	}
	adminShutdown = &pgconn.PgError{Code: "08006", Message: "connection failure"}
)

func runRepoTest(
	t *testing.T,
	setupMock func(pgxmock.PgxPoolIface),
	testFn func(*testing.T, *repos.DataAccessLayer),
	opts ...repos.Option,
) {
	runRepoTestWithLogger(t, setupMock, func(t *testing.T, dal *repos.DataAccessLayer, _ *bytes.Buffer) {
		testFn(t, dal)
	}, opts...)
}

func runRepoTestWithLogger(
	t *testing.T,
	setupMock func(pgxmock.PgxPoolIface),
	testFn func(*testing.T, *repos.DataAccessLayer, *bytes.Buffer),
	opts ...repos.Option,
) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	setupMock(mock)

	logBuffer := &bytes.Buffer{}
	opts = append([]repos.Option{repos.WithLogger(logger.NewBufferedTestLogger(logBuffer))}, opts...)

	testFn(t, repos.NewDataAccessLayer(mock, opts...), logBuffer)

	require.NoError(t, mock.ExpectationsWereMet())
}
