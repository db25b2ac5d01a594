package query_test

import (
	"testing"

	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
	"github.com/stretchr/testify/require"
)

type stubBikeCompiler struct {
	calls [][]model.BikeCondition
	scan  query.Scan
}

func (s *stubBikeCompiler) Compile(conditions []model.BikeCondition) query.Scan {
	s.calls = append(s.calls, conditions)

	return s.scan
}

func nameIs(name string) query.Expr {
	return query.Comparison{Column: query.PersonName, Operator: model.OpEqual, Value: name}
}

func TestPersonCompiler_Compile(t *testing.T) {
	t.Parallel()

	alice := model.PersonName{Predicate: model.Equal("Alice")}
	bob := model.PersonName{Predicate: model.Equal("Bob")}
	carol := model.PersonName{Predicate: model.Equal("Carol")}

	cases := []struct {
		name       string
		conditions []model.PersonCondition
		expected   query.Expr
	}{
		{
			name:       "nil list is unfiltered",
			conditions: nil,
			expected:   nil,
		},
		{
			name:       "empty list is unfiltered",
			conditions: []model.PersonCondition{},
			expected:   nil,
		},
		{
			name:       "single predicate is the filter itself",
			conditions: []model.PersonCondition{alice},
			expected:   nameIs("Alice"),
		},
		{
			name:       "top level conditions are joined with AND",
			conditions: []model.PersonCondition{alice, bob, carol},
			expected: query.Junction{
				Logic: query.And,
				Exprs: []query.Expr{nameIs("Alice"), nameIs("Bob"), nameIs("Carol")},
			},
		},
		{
			name:       "duplicate condition is joined with itself",
			conditions: []model.PersonCondition{alice, alice},
			expected: query.Junction{
				Logic: query.And,
				Exprs: []query.Expr{nameIs("Alice"), nameIs("Alice")},
			},
		},
		{
			name: "or node joins with OR",
			conditions: []model.PersonCondition{
				model.PersonOr{Conditions: []model.PersonCondition{alice, bob}},
			},
			expected: query.Junction{
				Logic: query.Or,
				Exprs: []query.Expr{nameIs("Alice"), nameIs("Bob")},
			},
		},
		{
			name: "or nested in and keeps its grouping",
			conditions: []model.PersonCondition{
				carol,
				model.PersonOr{Conditions: []model.PersonCondition{alice, bob}},
			},
			expected: query.Junction{
				Logic: query.And,
				Exprs: []query.Expr{
					nameIs("Carol"),
					query.Junction{Logic: query.Or, Exprs: []query.Expr{nameIs("Alice"), nameIs("Bob")}},
				},
			},
		},
		{
			name:       "empty and is absorbed",
			conditions: []model.PersonCondition{model.PersonAnd{}},
			expected:   nil,
		},
		{
			name:       "empty or is absorbed, not a contradiction",
			conditions: []model.PersonCondition{model.PersonOr{}, alice},
			expected:   nameIs("Alice"),
		},
		{
			name: "nested empty nodes are absorbed at every depth",
			conditions: []model.PersonCondition{
				model.PersonAnd{Conditions: []model.PersonCondition{
					model.PersonOr{Conditions: []model.PersonCondition{model.PersonAnd{}}},
				}},
				model.PersonOr{Conditions: []model.PersonCondition{model.PersonOr{}, bob}},
			},
			expected: nameIs("Bob"),
		},
		{
			name:       "pointer conditions lower like values",
			conditions: []model.PersonCondition{&alice, &model.PersonOr{}},
			expected:   nameIs("Alice"),
		},
		{
			name:       "nil pointer condition is absorbed",
			conditions: []model.PersonCondition{(*model.PersonName)(nil), bob},
			expected:   nameIs("Bob"),
		},
	}

	compilers := query.NewCompilers()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			scan := compilers.Person.Compile(tc.conditions)

			require.Equal(t, query.TablePerson, scan.Table)
			require.Equal(t, query.PersonColumns, scan.Columns)
			require.Nil(t, scan.Join)
			require.Equal(t, tc.expected, scan.Where)
			require.Equal(t, tc.expected != nil, scan.Filtered())
		})
	}
}

func TestPersonCompiler_CrossEntityDelegatesToBikeCompiler(t *testing.T) {
	t.Parallel()

	bikeScan := query.Scan{
		Table:   query.TableBike,
		Columns: query.BikeColumns,
		Where:   query.Comparison{Column: query.BikeName, Operator: model.OpLike, Value: "%Road%"},
	}
	bikes := &stubBikeCompiler{scan: bikeScan}
	compiler := query.NewPersonCompiler(bikes)

	inner := []model.BikeCondition{model.BikeName{Predicate: model.Like("%Road%")}}
	scan := compiler.Compile([]model.PersonCondition{model.PersonBikes{Conditions: inner}})

	require.Equal(t, [][]model.BikeCondition{inner}, bikes.calls)
	require.Equal(t, query.Membership{
		Column:   query.PersonID,
		Subquery: bikeScan.Project(query.BikeOwnerID),
	}, scan.Where)
}

func TestPersonCompiler_CrossEntityComposesWithOr(t *testing.T) {
	t.Parallel()

	compilers := query.NewCompilers()

	scan := compilers.Person.Compile([]model.PersonCondition{
		model.PersonOr{Conditions: []model.PersonCondition{
			model.PersonName{Predicate: model.Equal("Charlie")},
			model.PersonBikes{Conditions: []model.BikeCondition{
				model.BikeColorName{Predicate: model.Equal("Red")},
			}},
		}},
	})

	junction, ok := scan.Where.(query.Junction)
	require.True(t, ok)
	require.Equal(t, query.Or, junction.Logic)
	require.Len(t, junction.Exprs, 2)

	membership, ok := junction.Exprs[1].(query.Membership)
	require.True(t, ok)
	require.Equal(t, query.PersonID, membership.Column)
	require.Equal(t, query.TableBike, membership.Subquery.Table)
	require.Equal(t, []query.Column{query.BikeOwnerID}, membership.Subquery.Columns)
	require.NotNil(t, membership.Subquery.Join)
	require.Equal(t, query.Comparison{
		Column:   query.ColorName,
		Operator: model.OpEqual,
		Value:    "Red",
	}, membership.Subquery.Where)
}

func TestBikeCompiler_Compile(t *testing.T) {
	t.Parallel()

	compilers := query.NewCompilers()

	cases := []struct {
		name       string
		conditions []model.BikeCondition
		expected   query.Expr
	}{
		{
			name:       "empty list keeps the join but no filter",
			conditions: nil,
			expected:   nil,
		},
		{
			name: "name and color name",
			conditions: []model.BikeCondition{
				model.BikeName{Predicate: model.Equal("City Bike")},
				model.BikeColorName{Predicate: model.Equal("Green")},
			},
			expected: query.Junction{
				Logic: query.And,
				Exprs: []query.Expr{
					query.Comparison{Column: query.BikeName, Operator: model.OpEqual, Value: "City Bike"},
					query.Comparison{Column: query.ColorName, Operator: model.OpEqual, Value: "Green"},
				},
			},
		},
		{
			name:       "unset owner",
			conditions: []model.BikeCondition{model.BikeOwnerID{Predicate: model.IsNull[string]()}},
			expected:   query.Comparison{Column: query.BikeOwnerID, Operator: model.OpIsNull},
		},
		{
			name:       "color id in list",
			conditions: []model.BikeCondition{model.BikeColorID{Predicate: model.In("c1", "c2")}},
			expected: query.Comparison{
				Column:   query.BikeColorID,
				Operator: model.OpIn,
				Value:    []string{"c1", "c2"},
			},
		},
		{
			name: "owner conditions become a person subquery",
			conditions: []model.BikeCondition{
				model.BikeOwner{Conditions: []model.PersonCondition{model.PersonName{Predicate: model.Equal("Alice")}}},
			},
			expected: query.Membership{
				Column: query.BikeOwnerID,
				Subquery: query.Scan{
					Table:   query.TablePerson,
					Columns: []query.Column{query.PersonID},
					Where:   nameIs("Alice"),
				},
			},
		},
		{
			name: "color conditions become a color subquery",
			conditions: []model.BikeCondition{
				model.BikeColor{Conditions: []model.ColorCondition{model.ColorName{Predicate: model.NotEqual("Red")}}},
			},
			expected: query.Membership{
				Column: query.BikeColorID,
				Subquery: query.Scan{
					Table:   query.TableColor,
					Columns: []query.Column{query.ColorID},
					Where:   query.Comparison{Column: query.ColorName, Operator: model.OpNotEqual, Value: "Red"},
				},
			},
		},
		{
			name: "trip conditions become a trip subquery",
			conditions: []model.BikeCondition{
				model.BikeTrips{Conditions: []model.BikeTripCondition{model.BikeTripName{Predicate: model.Like("Trip%")}}},
			},
			expected: query.Membership{
				Column: query.BikeID,
				Subquery: query.Scan{
					Table:   query.TableBikeTrip,
					Columns: []query.Column{query.BikeTripBikeID},
					Where:   query.Comparison{Column: query.BikeTripName, Operator: model.OpLike, Value: "Trip%"},
				},
			},
		},
		{
			name: "empty cross entity list matches any related row",
			conditions: []model.BikeCondition{
				model.BikeTrips{},
			},
			expected: query.Membership{
				Column: query.BikeID,
				Subquery: query.Scan{
					Table:   query.TableBikeTrip,
					Columns: []query.Column{query.BikeTripBikeID},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			scan := compilers.Bike.Compile(tc.conditions)

			require.Equal(t, query.TableBike, scan.Table)
			require.Equal(t, query.BikeColumns, scan.Columns)
			require.Equal(t, &query.LeftJoin{
				Table: query.TableColor,
				Left:  query.ColorID,
				Right: query.BikeColorID,
			}, scan.Join)
			require.Equal(t, tc.expected, scan.Where)
		})
	}
}

func TestColorCompiler_Compile(t *testing.T) {
	t.Parallel()

	compilers := query.NewCompilers()

	scan := compilers.Color.Compile([]model.ColorCondition{
		model.ColorAnd{Conditions: []model.ColorCondition{
			model.ColorName{Predicate: model.In("Red", "Blue")},
			model.ColorBikes{Conditions: []model.BikeCondition{model.BikeOwnerID{Predicate: model.IsNotNull[string]()}}},
		}},
	})

	require.Equal(t, query.TableColor, scan.Table)
	require.Equal(t, query.Junction{
		Logic: query.And,
		Exprs: []query.Expr{
			query.Comparison{Column: query.ColorName, Operator: model.OpIn, Value: []string{"Red", "Blue"}},
			query.Membership{
				Column: query.ColorID,
				Subquery: query.Scan{
					Table:   query.TableBike,
					Columns: []query.Column{query.BikeColorID},
					Join: &query.LeftJoin{
						Table: query.TableColor,
						Left:  query.ColorID,
						Right: query.BikeColorID,
					},
					Where: query.Comparison{Column: query.BikeOwnerID, Operator: model.OpIsNotNull},
				},
			},
		},
	}, scan.Where)
}

func TestBikeTripCompiler_Compile(t *testing.T) {
	t.Parallel()

	bikes := &stubBikeCompiler{scan: query.Scan{Table: query.TableBike, Columns: query.BikeColumns}}
	compiler := query.NewBikeTripCompiler(bikes)

	scan := compiler.Compile([]model.BikeTripCondition{
		model.BikeTripOr{Conditions: []model.BikeTripCondition{
			model.BikeTripBikeID{Predicate: model.IsNull[string]()},
			model.BikeTripBike{Conditions: []model.BikeCondition{model.BikeName{Predicate: model.Equal("Mountain Bike")}}},
		}},
		model.BikeTripAnd{},
	})

	require.Len(t, bikes.calls, 1)
	require.Equal(t, query.TableBikeTrip, scan.Table)
	require.Equal(t, query.Junction{
		Logic: query.Or,
		Exprs: []query.Expr{
			query.Comparison{Column: query.BikeTripBikeID, Operator: model.OpIsNull},
			query.Membership{
				Column:   query.BikeTripBikeID,
				Subquery: query.Scan{Table: query.TableBike, Columns: []query.Column{query.BikeID}},
			},
		},
	}, scan.Where)
}

func TestScan_ProjectAndUnique(t *testing.T) {
	t.Parallel()

	scan := query.NewCompilers().Person.Compile(nil).Unique()
	require.True(t, scan.Distinct)

	projected := scan.Project(query.PersonID)
	require.False(t, projected.Distinct)
	require.Equal(t, []query.Column{query.PersonID}, projected.Columns)
	require.Equal(t, query.PersonColumns, scan.Columns)
	require.Equal(t, "person.id", query.PersonID.String())
}
