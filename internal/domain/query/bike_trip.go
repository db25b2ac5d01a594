package query

import "github.com/architeacher/pedalpal/internal/domain/model"

type BikeTripCompiler struct {
	bikes Compiler[model.BikeCondition]
}

func NewBikeTripCompiler(bikes Compiler[model.BikeCondition]) *BikeTripCompiler {
	return &BikeTripCompiler{bikes: bikes}
}

func (c *BikeTripCompiler) Compile(conditions []model.BikeTripCondition) Scan {
	scan := bikeTripScan()
	scan.Where = c.filter(conditions, And)

	return scan
}

func (c *BikeTripCompiler) filter(conditions []model.BikeTripCondition, logic Logic) Expr {
	return fold(conditions, logic, c.lower)
}

func (c *BikeTripCompiler) lower(condition model.BikeTripCondition) Expr {
	switch cond := condition.(type) {
	case model.BikeTripName:
		return compare(BikeTripName, cond.Predicate)
	case model.BikeTripBikeID:
		return compare(BikeTripBikeID, cond.Predicate)
	case model.BikeTripBike:
		return member(BikeTripBikeID, c.bikes.Compile(cond.Conditions), BikeID)
	case model.BikeTripAnd:
		return c.filter(cond.Conditions, And)
	case model.BikeTripOr:
		return c.filter(cond.Conditions, Or)
	case *model.BikeTripName:
		return deref(cond, c.lower)
	case *model.BikeTripBikeID:
		return deref(cond, c.lower)
	case *model.BikeTripBike:
		return deref(cond, c.lower)
	case *model.BikeTripAnd:
		return deref(cond, c.lower)
	case *model.BikeTripOr:
		return deref(cond, c.lower)
	}

	return nil
}
