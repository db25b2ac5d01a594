// Package query compiles entity condition trees into store-agnostic scans.
//
// Compilation is pure: no I/O, no errors. A condition list is folded left to
// right; conditions that lower to nothing (an empty And or Or, at any depth)
// are skipped rather than turned into a true or false constant, so an empty
// list always yields an unfiltered scan.
package query

// Compiler builds a filtered scan of one entity from its conditions. Compilers
// depend on each other only through this interface to resolve cross-entity
// conditions.
type Compiler[C any] interface {
	Compile(conditions []C) Scan
}

type Compilers struct {
	Person   *PersonCompiler
	Color    *ColorCompiler
	Bike     *BikeCompiler
	BikeTrip *BikeTripCompiler
}

// NewCompilers wires the four entity compilers to each other.
func NewCompilers() *Compilers {
	person := &PersonCompiler{}
	color := &ColorCompiler{}
	bike := &BikeCompiler{}
	trip := &BikeTripCompiler{}

	person.bikes = bike
	color.bikes = bike
	bike.owners = person
	bike.colors = color
	bike.trips = trip
	trip.bikes = bike

	return &Compilers{
		Person:   person,
		Color:    color,
		Bike:     bike,
		BikeTrip: trip,
	}
}

// fold lowers every condition and joins the present results with logic.
// It returns nil when nothing constrains the rows.
func fold[C any](conditions []C, logic Logic, lower func(C) Expr) Expr {
	var acc Expr

	for _, condition := range conditions {
		expr := lower(condition)
		if expr == nil {
			continue
		}

		if acc == nil {
			acc = expr

			continue
		}

		acc = combine(acc, expr, logic)
	}

	return acc
}

// deref lowers a condition passed by pointer like its value form.
func deref[C any, T any](ref *T, lower func(C) Expr) Expr {
	if ref == nil {
		return nil
	}

	value, ok := any(*ref).(C)
	if !ok {
		return nil
	}

	return lower(value)
}
