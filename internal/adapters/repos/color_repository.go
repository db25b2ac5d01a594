package repos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
)

type (
	ColorRepository struct {
		store    *store
		compiler query.Compiler[model.ColorCondition]
	}

	colorRow struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
)

func NewColorRepository(pool PoolOps, compiler query.Compiler[model.ColorCondition], opts ...Option) *ColorRepository {
	return newColorRepository(pool, compiler, newSettings(opts))
}

func newColorRepository(pool PoolOps, compiler query.Compiler[model.ColorCondition], s settings) *ColorRepository {
	return &ColorRepository{
		store:    newStore("Color", query.TableColor, query.ColorColumns, query.ColorID, pool, s),
		compiler: compiler,
	}
}

func (r *ColorRepository) Create(ctx context.Context, color *model.Color) (*model.Color, error) {
	var row colorRow

	err := r.store.run(ctx, "Create", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Insert(query.TableColor).
			Columns("id", "name").
			Values(color.ID, color.Name).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("creating color %s: %w", color.ID, err)
	}

	return row.toModel(), nil
}

func (r *ColorRepository) FindByID(ctx context.Context, id string) (*model.Color, error) {
	var row colorRow

	err := r.store.run(ctx, "FindByID", func(ctx context.Context) error {
		return r.store.selectOne(ctx, r.store.findByID(id), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("finding color %s: %w", id, err)
	}

	return row.toModel(), nil
}

func (r *ColorRepository) FindAll(ctx context.Context) ([]*model.Color, error) {
	var rows []colorRow

	err := r.store.run(ctx, "FindAll", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findAll(), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("listing colors: %w", err)
	}

	return toColors(rows), nil
}

// Update overwrites every column of the color with id and returns the stored record.
func (r *ColorRepository) Update(ctx context.Context, id string, color *model.Color) (*model.Color, error) {
	var row colorRow

	err := r.store.run(ctx, "Update", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Update(query.TableColor).
			Set("name", color.Name).
			Where(sq.Eq{"id": id}).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("updating color %s: %w", id, err)
	}

	return row.toModel(), nil
}

// Delete removes the color with id and reports how many rows went away.
func (r *ColorRepository) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64

	err := r.store.run(ctx, "Delete", func(ctx context.Context) (err error) {
		affected, err = r.store.exec(ctx, r.store.deleteByID(id))

		return err
	})
	if err != nil {
		return 0, fmt.Errorf("deleting color %s: %w", id, err)
	}

	return affected, nil
}

// FindWithFilters returns the distinct colors matching every condition.
// An empty list returns all colors.
func (r *ColorRepository) FindWithFilters(ctx context.Context, conditions []model.ColorCondition) ([]*model.Color, error) {
	var rows []colorRow

	err := r.store.run(ctx, "FindWithFilters", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findFiltered(r.compiler.Compile(conditions)), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("filtering colors: %w", err)
	}

	return toColors(rows), nil
}

func (row colorRow) toModel() *model.Color {
	return &model.Color{
		ID:   row.ID,
		Name: row.Name,
	}
}

func toColors(rows []colorRow) []*model.Color {
	colors := make([]*model.Color, 0, len(rows))
	for _, row := range rows {
		colors = append(colors, row.toModel())
	}

	return colors
}
