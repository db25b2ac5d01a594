package query

import "github.com/architeacher/pedalpal/internal/domain/model"

type ColorCompiler struct {
	bikes Compiler[model.BikeCondition]
}

func NewColorCompiler(bikes Compiler[model.BikeCondition]) *ColorCompiler {
	return &ColorCompiler{bikes: bikes}
}

func (c *ColorCompiler) Compile(conditions []model.ColorCondition) Scan {
	scan := colorScan()
	scan.Where = c.filter(conditions, And)

	return scan
}

func (c *ColorCompiler) filter(conditions []model.ColorCondition, logic Logic) Expr {
	return fold(conditions, logic, c.lower)
}

func (c *ColorCompiler) lower(condition model.ColorCondition) Expr {
	switch cond := condition.(type) {
	case model.ColorName:
		return compare(ColorName, cond.Predicate)
	case model.ColorBikes:
		return member(ColorID, c.bikes.Compile(cond.Conditions), BikeColorID)
	case model.ColorAnd:
		return c.filter(cond.Conditions, And)
	case model.ColorOr:
		return c.filter(cond.Conditions, Or)
	case *model.ColorName:
		return deref(cond, c.lower)
	case *model.ColorBikes:
		return deref(cond, c.lower)
	case *model.ColorAnd:
		return deref(cond, c.lower)
	case *model.ColorOr:
		return deref(cond, c.lower)
	}

	return nil
}
