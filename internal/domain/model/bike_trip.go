package model

type BikeTrip struct {
	ID     string
	Name   string
	BikeID *string
}

// NewBikeTrip builds a trip with a fresh ID. An empty bikeID leaves the reference unset.
func NewBikeTrip(name, bikeID string) *BikeTrip {
	trip := &BikeTrip{
		ID:   NewID(),
		Name: name,
	}

	if bikeID != "" {
		trip.BikeID = Ref(bikeID)
	}

	return trip
}

// BikeTripCondition is a node of a bike trip filter tree.
type BikeTripCondition interface {
	isBikeTripCondition()
}

type (
	BikeTripName struct {
		Predicate Predicate[string]
	}

	BikeTripBikeID struct {
		Predicate Predicate[string]
	}

	// BikeTripBike matches trips ridden on a bike that satisfies every condition.
	BikeTripBike struct {
		Conditions []BikeCondition
	}

	BikeTripAnd struct {
		Conditions []BikeTripCondition
	}

	BikeTripOr struct {
		Conditions []BikeTripCondition
	}
)

func (BikeTripName) isBikeTripCondition()   {}
func (BikeTripBikeID) isBikeTripCondition() {}
func (BikeTripBike) isBikeTripCondition()   {}
func (BikeTripAnd) isBikeTripCondition()    {}
func (BikeTripOr) isBikeTripCondition()     {}
