package model

type Color struct {
	ID   string
	Name string
}

func NewColor(name string) *Color {
	return &Color{
		ID:   NewID(),
		Name: name,
	}
}

// ColorCondition is a node of a color filter tree.
type ColorCondition interface {
	isColorCondition()
}

type (
	ColorName struct {
		Predicate Predicate[string]
	}

	// ColorBikes matches colors used by at least one bike that satisfies every condition.
	ColorBikes struct {
		Conditions []BikeCondition
	}

	ColorAnd struct {
		Conditions []ColorCondition
	}

	ColorOr struct {
		Conditions []ColorCondition
	}
)

func (ColorName) isColorCondition()  {}
func (ColorBikes) isColorCondition() {}
func (ColorAnd) isColorCondition()   {}
func (ColorOr) isColorCondition()    {}
