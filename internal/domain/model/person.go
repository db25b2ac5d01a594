package model

type Person struct {
	ID   string
	Name string
}

func NewPerson(name string) *Person {
	return &Person{
		ID:   NewID(),
		Name: name,
	}
}

// PersonCondition is a node of a person filter tree. The set of implementations is closed.
type PersonCondition interface {
	isPersonCondition()
}

type (
	PersonName struct {
		Predicate Predicate[string]
	}

	// PersonBikes matches persons owning at least one bike that satisfies every condition.
	PersonBikes struct {
		Conditions []BikeCondition
	}

	PersonAnd struct {
		Conditions []PersonCondition
	}

	PersonOr struct {
		Conditions []PersonCondition
	}
)

func (PersonName) isPersonCondition()  {}
func (PersonBikes) isPersonCondition() {}
func (PersonAnd) isPersonCondition()   {}
func (PersonOr) isPersonCondition()    {}
