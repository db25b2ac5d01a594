package query

import "github.com/architeacher/pedalpal/internal/domain/model"

type PersonCompiler struct {
	bikes Compiler[model.BikeCondition]
}

func NewPersonCompiler(bikes Compiler[model.BikeCondition]) *PersonCompiler {
	return &PersonCompiler{bikes: bikes}
}

func (c *PersonCompiler) Compile(conditions []model.PersonCondition) Scan {
	scan := personScan()
	scan.Where = c.filter(conditions, And)

	return scan
}

func (c *PersonCompiler) filter(conditions []model.PersonCondition, logic Logic) Expr {
	return fold(conditions, logic, c.lower)
}

func (c *PersonCompiler) lower(condition model.PersonCondition) Expr {
	switch cond := condition.(type) {
	case model.PersonName:
		return compare(PersonName, cond.Predicate)
	case model.PersonBikes:
		return member(PersonID, c.bikes.Compile(cond.Conditions), BikeOwnerID)
	case model.PersonAnd:
		return c.filter(cond.Conditions, And)
	case model.PersonOr:
		return c.filter(cond.Conditions, Or)
	case *model.PersonName:
		return deref(cond, c.lower)
	case *model.PersonBikes:
		return deref(cond, c.lower)
	case *model.PersonAnd:
		return deref(cond, c.lower)
	case *model.PersonOr:
		return deref(cond, c.lower)
	}

	return nil
}
