package repos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
)

type (
	PersonRepository struct {
		store    *store
		compiler query.Compiler[model.PersonCondition]
	}

	personRow struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
)

func NewPersonRepository(pool PoolOps, compiler query.Compiler[model.PersonCondition], opts ...Option) *PersonRepository {
	return newPersonRepository(pool, compiler, newSettings(opts))
}

func newPersonRepository(pool PoolOps, compiler query.Compiler[model.PersonCondition], s settings) *PersonRepository {
	return &PersonRepository{
		store:    newStore("Person", query.TablePerson, query.PersonColumns, query.PersonID, pool, s),
		compiler: compiler,
	}
}

func (r *PersonRepository) Create(ctx context.Context, person *model.Person) (*model.Person, error) {
	var row personRow

	err := r.store.run(ctx, "Create", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Insert(query.TablePerson).
			Columns("id", "name").
			Values(person.ID, person.Name).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("creating person %s: %w", person.ID, err)
	}

	return row.toModel(), nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id string) (*model.Person, error) {
	var row personRow

	err := r.store.run(ctx, "FindByID", func(ctx context.Context) error {
		return r.store.selectOne(ctx, r.store.findByID(id), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("finding person %s: %w", id, err)
	}

	return row.toModel(), nil
}

func (r *PersonRepository) FindAll(ctx context.Context) ([]*model.Person, error) {
	var rows []personRow

	err := r.store.run(ctx, "FindAll", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findAll(), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}

	return toPersons(rows), nil
}

// Update overwrites every column of the person with id and returns the stored record.
func (r *PersonRepository) Update(ctx context.Context, id string, person *model.Person) (*model.Person, error) {
	var row personRow

	err := r.store.run(ctx, "Update", func(ctx context.Context) error {
		return r.store.selectOne(ctx, psql.Update(query.TablePerson).
			Set("name", person.Name).
			Where(sq.Eq{"id": id}).
			Suffix(r.store.returning()), &row)
	})
	if err != nil {
		return nil, fmt.Errorf("updating person %s: %w", id, err)
	}

	return row.toModel(), nil
}

// Delete removes the person with id and reports how many rows went away.
func (r *PersonRepository) Delete(ctx context.Context, id string) (int64, error) {
	var affected int64

	err := r.store.run(ctx, "Delete", func(ctx context.Context) (err error) {
		affected, err = r.store.exec(ctx, r.store.deleteByID(id))

		return err
	})
	if err != nil {
		return 0, fmt.Errorf("deleting person %s: %w", id, err)
	}

	return affected, nil
}

// FindWithFilters returns the distinct persons matching every condition.
// An empty list returns all persons.
func (r *PersonRepository) FindWithFilters(ctx context.Context, conditions []model.PersonCondition) ([]*model.Person, error) {
	var rows []personRow

	err := r.store.run(ctx, "FindWithFilters", func(ctx context.Context) error {
		return r.store.selectAll(ctx, r.store.findFiltered(r.compiler.Compile(conditions)), &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("filtering persons: %w", err)
	}

	return toPersons(rows), nil
}

func (row personRow) toModel() *model.Person {
	return &model.Person{
		ID:   row.ID,
		Name: row.Name,
	}
}

func toPersons(rows []personRow) []*model.Person {
	persons := make([]*model.Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, row.toModel())
	}

	return persons
}
