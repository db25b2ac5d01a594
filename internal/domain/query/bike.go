package query

import "github.com/architeacher/pedalpal/internal/domain/model"

type BikeCompiler struct {
	owners Compiler[model.PersonCondition]
	colors Compiler[model.ColorCondition]
	trips  Compiler[model.BikeTripCondition]
}

func NewBikeCompiler(
	owners Compiler[model.PersonCondition],
	colors Compiler[model.ColorCondition],
	trips Compiler[model.BikeTripCondition],
) *BikeCompiler {
	return &BikeCompiler{
		owners: owners,
		colors: colors,
		trips:  trips,
	}
}

func (c *BikeCompiler) Compile(conditions []model.BikeCondition) Scan {
	scan := bikeScan()
	scan.Where = c.filter(conditions, And)

	return scan
}

func (c *BikeCompiler) filter(conditions []model.BikeCondition, logic Logic) Expr {
	return fold(conditions, logic, c.lower)
}

func (c *BikeCompiler) lower(condition model.BikeCondition) Expr {
	switch cond := condition.(type) {
	case model.BikeName:
		return compare(BikeName, cond.Predicate)
	case model.BikeColorName:
		return compare(ColorName, cond.Predicate)
	case model.BikeOwnerID:
		return compare(BikeOwnerID, cond.Predicate)
	case model.BikeColorID:
		return compare(BikeColorID, cond.Predicate)
	case model.BikeOwner:
		return member(BikeOwnerID, c.owners.Compile(cond.Conditions), PersonID)
	case model.BikeColor:
		return member(BikeColorID, c.colors.Compile(cond.Conditions), ColorID)
	case model.BikeTrips:
		return member(BikeID, c.trips.Compile(cond.Conditions), BikeTripBikeID)
	case model.BikeAnd:
		return c.filter(cond.Conditions, And)
	case model.BikeOr:
		return c.filter(cond.Conditions, Or)
	case *model.BikeName:
		return deref(cond, c.lower)
	case *model.BikeColorName:
		return deref(cond, c.lower)
	case *model.BikeOwnerID:
		return deref(cond, c.lower)
	case *model.BikeColorID:
		return deref(cond, c.lower)
	case *model.BikeOwner:
		return deref(cond, c.lower)
	case *model.BikeColor:
		return deref(cond, c.lower)
	case *model.BikeTrips:
		return deref(cond, c.lower)
	case *model.BikeAnd:
		return deref(cond, c.lower)
	case *model.BikeOr:
		return deref(cond, c.lower)
	}

	return nil
}
