package model

type Operator string

const (
	OpEqual     Operator = "eq"
	OpNotEqual  Operator = "neq"
	OpLike      Operator = "like"
	OpIn        Operator = "in"
	OpGreater   Operator = "gt"
	OpLess      Operator = "lt"
	OpIsNull    Operator = "is_null"
	OpIsNotNull Operator = "not_null"
	OpTrue      Operator = "true"
	OpFalse     Operator = "false"
)

type (
	// Number is the set of column types that accept ordering predicates.
	Number interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
			~float32 | ~float64
	}

	// Predicate is a single comparison applied to one column whose Go type is T.
	// The zero value is not a valid predicate; use the constructors below.
	Predicate[T any] struct {
		op     Operator
		value  T
		values []T
	}
)

func Equal[T any](value T) Predicate[T] {
	return Predicate[T]{op: OpEqual, value: value}
}

func NotEqual[T any](value T) Predicate[T] {
	return Predicate[T]{op: OpNotEqual, value: value}
}

// Like matches a SQL LIKE pattern. Case sensitivity follows the store; PostgreSQL is case sensitive.
func Like(pattern string) Predicate[string] {
	return Predicate[string]{op: OpLike, value: pattern}
}

// In matches any of values. An empty list matches no rows.
func In[T any](values ...T) Predicate[T] {
	if values == nil {
		values = []T{}
	}

	return Predicate[T]{op: OpIn, values: values}
}

func GreaterThan[T Number](value T) Predicate[T] {
	return Predicate[T]{op: OpGreater, value: value}
}

func LessThan[T Number](value T) Predicate[T] {
	return Predicate[T]{op: OpLess, value: value}
}

func IsNull[T any]() Predicate[T] {
	return Predicate[T]{op: OpIsNull}
}

func IsNotNull[T any]() Predicate[T] {
	return Predicate[T]{op: OpIsNotNull}
}

func True() Predicate[bool] {
	return Predicate[bool]{op: OpTrue, value: true}
}

func False() Predicate[bool] {
	return Predicate[bool]{op: OpFalse, value: false}
}

func (p Predicate[T]) Operator() Operator { return p.op }

// Operand returns the comparison value: T for scalar operators, []T for OpIn
// and nil for the null checks.
func (p Predicate[T]) Operand() any {
	switch p.op {
	case OpIn:
		return p.values
	case OpIsNull, OpIsNotNull:
		return nil
	default:
		return p.value
	}
}
