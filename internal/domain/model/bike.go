package model

type Bike struct {
	ID      string
	Name    string
	OwnerID *string
	ColorID *string
}

// NewBike builds a bike with a fresh ID. Empty ownerID or colorID leave the reference unset.
func NewBike(name, ownerID, colorID string) *Bike {
	bike := &Bike{
		ID:   NewID(),
		Name: name,
	}

	if ownerID != "" {
		bike.OwnerID = Ref(ownerID)
	}

	if colorID != "" {
		bike.ColorID = Ref(colorID)
	}

	return bike
}

func (b *Bike) HasOwner() bool {
	return b.OwnerID != nil
}

func (b *Bike) HasColor() bool {
	return b.ColorID != nil
}

// BikeCondition is a node of a bike filter tree.
type BikeCondition interface {
	isBikeCondition()
}

type (
	BikeName struct {
		Predicate Predicate[string]
	}

	// BikeColorName filters on the name of the bike's color. Bikes without a color
	// carry a NULL color name.
	BikeColorName struct {
		Predicate Predicate[string]
	}

	BikeOwnerID struct {
		Predicate Predicate[string]
	}

	BikeColorID struct {
		Predicate Predicate[string]
	}

	// BikeOwner matches bikes whose owner satisfies every condition.
	BikeOwner struct {
		Conditions []PersonCondition
	}

	// BikeColor matches bikes whose color satisfies every condition.
	BikeColor struct {
		Conditions []ColorCondition
	}

	// BikeTrips matches bikes with at least one trip that satisfies every condition.
	BikeTrips struct {
		Conditions []BikeTripCondition
	}

	BikeAnd struct {
		Conditions []BikeCondition
	}

	BikeOr struct {
		Conditions []BikeCondition
	}
)

func (BikeName) isBikeCondition()      {}
func (BikeColorName) isBikeCondition() {}
func (BikeOwnerID) isBikeCondition()   {}
func (BikeColorID) isBikeCondition()   {}
func (BikeOwner) isBikeCondition()     {}
func (BikeColor) isBikeCondition()     {}
func (BikeTrips) isBikeCondition()     {}
func (BikeAnd) isBikeCondition()       {}
func (BikeOr) isBikeCondition()        {}
