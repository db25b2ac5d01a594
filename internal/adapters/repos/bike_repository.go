package repos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
)

type (
	BikeRepository struct {
		store    *store
		compiler query.Compiler[model.BikeCondition]
	}

	bikeRow struct {
		ID      string  `db:"id"`
		Name    string  `db:"name"`
		OwnerID *string `db:"owner_id"`
		ColorID *string `db:"color_id"`
	}
)

func NewBikeRepository(pool PoolOps, compiler query.Compiler[model.BikeCondition], opts ...Option) *BikeRepository {
	return newBikeRepository(pool, compiler, newSettings(opts))
}

func newBikeRepository(pool PoolOps, compiler query.Compiler[model.BikeCondition], s settings) *BikeRepository {
	return &BikeRepository{
		store:    newStore("Bike", query.TableBike, query.BikeColumns, query.BikeID, pool, s),
		compiler: compiler,
	}
}

// Create inserts bike. A dangling owner or color reference fails with model.ErrConstraintViolation.
func (r *BikeRepository) Create(ctx context.Context, bike *model.Bike) (*model.Bike, error) {
	var row bikeRow

	err := r.store.run(ctx, "Create", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Insert(query.TableBike).
			Columns("id", "name", "owner_id", "color_id").
			Values(bike.ID, bike.Name, bike.OwnerID, bike.ColorID).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("creating bike %s: %w", bike.ID, err)
	}

	return row.toModel(), nil
}

func (r *BikeRepository) FindByID(ctx context.Context, id string) (*model.Bike, error) {
	var row bikeRow

	err := r.store.run(ctx, "FindByID", func(ctx context.Context) error {
		return r.store.selectOne(ctx, r.store.findByID(id), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("finding bike %s: %w", id, err)
	}

	return row.toModel(), nil
}

func (r *BikeRepository) FindAll(ctx context.Context) ([]*model.Bike, error) {
	var rows []bikeRow

	err := r.store.run(ctx, "FindAll", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findAll(), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("listing bikes: %w", err)
	}

	return toBikes(rows), nil
}

// Update overwrites the name and both references. A nil reference clears it.
func (r *BikeRepository) Update(ctx context.Context, id string, bike *model.Bike) (*model.Bike, error) {
	var row bikeRow

	err := r.store.run(ctx, "Update", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Update(query.TableBike).
			Set("name", bike.Name).
			Set("owner_id", bike.OwnerID).
			Set("color_id", bike.ColorID).
			Where(sq.Eq{"id": id}).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("updating bike %s: %w", id, err)
	}

	return row.toModel(), nil
}

func (r *BikeRepository) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64

	err := r.store.run(ctx, "Delete", func(ctx context.Context) (err error) {
		affected, err = r.store.exec(ctx, r.store.deleteByID(id))

		return err
	})
	if err != nil {
		return 0, fmt.Errorf("deleting bike %s: %w", id, err)
	}

	return affected, nil
}

// FindWithFilters returns the distinct bikes matching every condition. Color
// name conditions see the joined color; bikes without one carry a NULL name.
func (r *BikeRepository) FindWithFilters(ctx context.Context, conditions []model.BikeCondition) ([]*model.Bike, error) {
	var rows []bikeRow

	err := r.store.run(ctx, "FindWithFilters", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findFiltered(r.compiler.Compile(conditions)), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("filtering bikes: %w", err)
	}

	return toBikes(rows), nil
}

func (row bikeRow) toModel() *model.Bike {
	return &model.Bike{
		ID:      row.ID,
		Name:    row.Name,
		OwnerID: row.OwnerID,
		ColorID: row.ColorID,
	}
}

func toBikes(rows []bikeRow) []*model.Bike {
	bikes := make([]*model.Bike, 0, len(rows))
	for _, row := range rows {
		bikes = append(bikes, row.toModel())
	}

	return bikes
}
