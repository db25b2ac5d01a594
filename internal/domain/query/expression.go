package query

import "github.com/architeacher/pedalpal/internal/domain/model"

type Logic string

const (
	And Logic = "AND"
	Or  Logic = "OR"
)

// Expr is a node of a compiled, store-agnostic boolean filter.
type Expr interface {
	isExpr()
}

type (
	// Comparison applies a single predicate operator to one column.
	Comparison struct {
		Column   Column
		Operator model.Operator
		Value    any
	}

	// Junction joins two or more expressions with the same logical operator.
	Junction struct {
		Logic Logic
		Exprs []Expr
	}

	// Membership holds when Column is among the values projected by Subquery.
	Membership struct {
		Column   Column
		Subquery Scan
	}
)

func (Comparison) isExpr() {}
func (Junction) isExpr()   {}
func (Membership) isExpr() {}

func compare[T any](column Column, predicate model.Predicate[T]) Expr {
	return Comparison{
		Column:   column,
		Operator: predicate.Operator(),
		Value:    predicate.Operand(),
	}
}

func member(column Column, subquery Scan, projection Column) Expr {
	return Membership{
		Column:   column,
		Subquery: subquery.Project(projection),
	}
}

// combine never mutates acc; flattening is safe because AND and OR are associative.
func combine(acc, next Expr, logic Logic) Expr {
	if junction, ok := acc.(Junction); ok && junction.Logic == logic {
		exprs := make([]Expr, 0, len(junction.Exprs)+1)
		exprs = append(exprs, junction.Exprs...)

		return Junction{Logic: logic, Exprs: append(exprs, next)}
	}

	return Junction{Logic: logic, Exprs: []Expr{acc, next}}
}
