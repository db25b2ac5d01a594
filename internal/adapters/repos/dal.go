package repos

import (
	"context"

	"github.com/architeacher/pedalpal/internal/domain/query"
	"github.com/architeacher/pedalpal/internal/ports"
)

var (
	_ ports.DataAccessLayer    = (*DataAccessLayer)(nil)
	_ ports.PersonRepository   = (*PersonRepository)(nil)
	_ ports.ColorRepository    = (*ColorRepository)(nil)
	_ ports.BikeRepository     = (*BikeRepository)(nil)
	_ ports.BikeTripRepository = (*BikeTripRepository)(nil)
)

// DataAccessLayer groups the repositories of the four entities over one pool.
type DataAccessLayer struct {
	pool     PoolOps
	person   *PersonRepository
	color    *ColorRepository
	bike     *BikeRepository
	bikeTrip *BikeTripRepository
}

func NewDataAccessLayer(pool PoolOps, opts ...Option) *DataAccessLayer {
	s := newSettings(opts)
	compilers := query.NewCompilers()

	return &DataAccessLayer{
		pool:     pool,
		person:   newPersonRepository(pool, compilers.Person, s),
		color:    newColorRepository(pool, compilers.Color, s),
		bike:     newBikeRepository(pool, compilers.Bike, s),
		bikeTrip: newBikeTripRepository(pool, compilers.BikeTrip, s),
	}
}

func (d *DataAccessLayer) Person() ports.PersonRepository {
	return d.person
}

func (d *DataAccessLayer) Color() ports.ColorRepository {
	return d.color
}

func (d *DataAccessLayer) Bike() ports.BikeRepository {
	return d.bike
}

func (d *DataAccessLayer) BikeTrip() ports.BikeTripRepository {
	return d.bikeTrip
}

// Ping checks that the store is reachable.
func (d *DataAccessLayer) Ping(ctx context.Context) error {
	return classifyError(d.pool.Ping(ctx))
}
