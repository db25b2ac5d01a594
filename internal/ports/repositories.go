package ports

import (
	"context"

	"github.com/architeacher/pedalpal/internal/domain/model"
)

type (
	// Repository is the CRUD and filtering surface shared by every entity.
	// R is the record type and C the entity's filter condition.
	Repository[R any, C any] interface {
		// Create inserts record and returns it as stored.
		Create(ctx context.Context, record *R) (*R, error)
		// FindByID fails with model.ErrNotFound when no record has id.
		FindByID(ctx context.Context, id string) (*R, error)
		FindAll(ctx context.Context) ([]*R, error)
		// Update overwrites the record with id and fails with model.ErrNotFound when it is missing.
		Update(ctx context.Context, id string, record *R) (*R, error)
		// Delete reports the number of removed records; zero is not an error.
		Delete(ctx context.Context, id string) (int64, error)
		// FindWithFilters returns the distinct records matching every condition.
		FindWithFilters(ctx context.Context, conditions []C) ([]*R, error)
	}

	PersonRepository   = Repository[model.Person, model.PersonCondition]
	ColorRepository    = Repository[model.Color, model.ColorCondition]
	BikeRepository     = Repository[model.Bike, model.BikeCondition]
	BikeTripRepository = Repository[model.BikeTrip, model.BikeTripCondition]

	// DataAccessLayer hands out the repository of each entity.
	DataAccessLayer interface {
		DatabaseHealthChecker
		Person() PersonRepository
		Color() ColorRepository
		Bike() BikeRepository
		BikeTrip() BikeTripRepository
	}
)
