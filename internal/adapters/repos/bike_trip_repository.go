package repos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
)

type (
	BikeTripRepository struct {
		store    *store
		compiler query.Compiler[model.BikeTripCondition]
	}

	bikeTripRow struct {
		ID     string  `db:"id"`
		Name   string  `db:"name"`
		BikeID *string `db:"bike_id"`
	}
)

func NewBikeTripRepository(pool PoolOps, compiler query.Compiler[model.BikeTripCondition], opts ...Option) *BikeTripRepository {
	return newBikeTripRepository(pool, compiler, newSettings(opts))
}

func newBikeTripRepository(pool PoolOps, compiler query.Compiler[model.BikeTripCondition], s settings) *BikeTripRepository {
	return &BikeTripRepository{
		store:    newStore("BikeTrip", query.TableBikeTrip, query.BikeTripColumns, query.BikeTripID, pool, s),
		compiler: compiler,
	}
}

func (r *BikeTripRepository) Create(ctx context.Context, trip *model.BikeTrip) (*model.BikeTrip, error) {
	var row bikeTripRow

	err := r.store.run(ctx, "Create", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Insert(query.TableBikeTrip).
			Columns("id", "name", "bike_id").
			Values(trip.ID, trip.Name, trip.BikeID).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("creating bike trip %s: %w", trip.ID, err)
	}

	return row.toModel(), nil
}

func (r *BikeTripRepository) FindByID(ctx context.Context, id string) (*model.BikeTrip, error) {
	var row bikeTripRow

	err := r.store.run(ctx, "FindByID", func(ctx context.Context) error {
		return r.store.selectOne(ctx, r.store.findByID(id), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("finding bike trip %s: %w", id, err)
	}

	return row.toModel(), nil
}

func (r *BikeTripRepository) FindAll(ctx context.Context) ([]*model.BikeTrip, error) {
	var rows []bikeTripRow

	err := r.store.run(ctx, "FindAll", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findAll(), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("listing bike trips: %w", err)
	}

	return toBikeTrips(rows), nil
}

func (r *BikeTripRepository) Update(ctx context.Context, id string, trip *model.BikeTrip) (*model.BikeTrip, error) {
	var row bikeTripRow

	err := r.store.run(ctx, "Update", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Update(query.TableBikeTrip).
			Set("name", trip.Name).
			Set("bike_id", trip.BikeID).
			Where(sq.Eq{"id": id}).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("updating bike trip %s: %w", id, err)
	}

	return row.toModel(), nil
}

func (r *BikeTripRepository) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64

	err := r.store.run(ctx, "Delete", func(ctx context.Context) (err error) {
		affected, err = r.store.exec(ctx, r.store.deleteByID(id))

		return err
	})
	if err != nil {
		return 0, fmt.Errorf("deleting bike trip %s: %w", id, err)
	}

	return affected, nil
}

func (r *BikeTripRepository) FindWithFilters(ctx context.Context, conditions []model.BikeTripCondition) ([]*model.BikeTrip, error) {
	var rows []bikeTripRow

	err := r.store.run(ctx, "FindWithFilters", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findFiltered(r.compiler.Compile(conditions)), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("filtering bike trips: %w", err)
	}

	return toBikeTrips(rows), nil
}

func (row bikeTripRow) toModel() *model.BikeTrip {
	return &model.BikeTrip{
		ID:     row.ID,
		Name:   row.Name,
		BikeID: row.BikeID,
	}
}

func toBikeTrips(rows []bikeTripRow) []*model.BikeTrip {
	trips := make([]*model.BikeTrip, 0, len(rows))
	for _, row := range rows {
		trips = append(trips, row.toModel())
	}

	return trips
}
