package repos_test

import (
	"regexp"
	"testing"

	"github.com/architeacher/pedalpal/internal/adapters/repos"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestBikeTripRepository_CreateAndFindAll(t *testing.T) {
	t.Parallel()

	trip := model.NewBikeTrip("Commute", "b-1")

	runRepoTest(t, func(mock pgxmock.PgxPoolIface) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bike_trip (id,name,bike_id) VALUES ($1,$2,$3) RETURNING id, name, bike_id`)).
			WithArgs(trip.ID, trip.Name, trip.BikeID).
			WillReturnRows(pgxmock.NewRows(bikeTripColumns).AddRow(trip.ID, trip.Name, model.Ref("b-1")))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT bike_trip.id, bike_trip.name, bike_trip.bike_id FROM bike_trip`) + "$").
			WillReturnRows(pgxmock.NewRows(bikeTripColumns).
				AddRow(trip.ID, trip.Name, model.Ref("b-1")).
				AddRow("t-2", "Loose", nil))
	}, func(t *testing.T, dal *repos.DataAccessLayer) {
		created, err := dal.BikeTrip().Create(t.Context(), trip)
		require.NoError(t, err)
		require.Equal(t, trip, created)

		trips, err := dal.BikeTrip().FindAll(t.Context())
		require.NoError(t, err)
		require.Equal(t, []*model.BikeTrip{trip, {ID: "t-2", Name: "Loose"}}, trips)
	})
}

func TestBikeTripRepository_Update(t *testing.T) {
	t.Parallel()

	runRepoTest(t, func(mock pgxmock.PgxPoolIface) {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bike_trip SET name = $1, bike_id = $2 WHERE id = $3 RETURNING id, name, bike_id`)).
			WithArgs("Tour", model.Ref("b-2"), "t-1").
			WillReturnRows(pgxmock.NewRows(bikeTripColumns).AddRow("t-1", "Tour", model.Ref("b-2")))
	}, func(t *testing.T, dal *repos.DataAccessLayer) {
		updated, err := dal.BikeTrip().Update(t.Context(), "t-1", &model.BikeTrip{Name: "Tour", BikeID: model.Ref("b-2")})
		require.NoError(t, err)
		require.Equal(t, &model.BikeTrip{ID: "t-1", Name: "Tour", BikeID: model.Ref("b-2")}, updated)
	})
}

func TestBikeTripRepository_FindWithFilters(t *testing.T) {
	t.Parallel()

	t.Run("trips on red bikes", func(t *testing.T) {
		runRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectQuery(regexp.QuoteMeta(
				`SELECT DISTINCT bike_trip.id, bike_trip.name, bike_trip.bike_id FROM bike_trip WHERE bike_trip.bike_id IN `+
					`(SELECT bike.id FROM bike LEFT JOIN color ON color.id = bike.color_id WHERE color.name = $1)`,
			)+"$").
				WithArgs("Red").
				WillReturnRows(pgxmock.NewRows(bikeTripColumns).AddRow("t-1", "Commute", model.Ref("b-1")))
		}, func(t *testing.T, dal *repos.DataAccessLayer) {
			trips, err := dal.BikeTrip().FindWithFilters(t.Context(), []model.BikeTripCondition{
				model.BikeTripBike{Conditions: []model.BikeCondition{
					model.BikeColorName{Predicate: model.Equal("Red")},
				}},
			})
			require.NoError(t, err)
			require.Equal(t, []*model.BikeTrip{{ID: "t-1", Name: "Commute", BikeID: model.Ref("b-1")}}, trips)
		})
	})

	t.Run("empty in matches nothing", func(t *testing.T) {
		runRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectQuery(regexp.QuoteMeta(
				`SELECT DISTINCT bike_trip.id, bike_trip.name, bike_trip.bike_id FROM bike_trip WHERE (1=0)`,
			) + "$").
				WillReturnRows(pgxmock.NewRows(bikeTripColumns))
		}, func(t *testing.T, dal *repos.DataAccessLayer) {
			trips, err := dal.BikeTrip().FindWithFilters(t.Context(), []model.BikeTripCondition{
				model.BikeTripName{Predicate: model.In[string]()},
			})
			require.NoError(t, err)
			require.Empty(t, trips)
		})
	})
}
