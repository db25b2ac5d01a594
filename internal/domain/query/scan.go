package query

const (
	TablePerson   = "person"
	TableColor    = "color"
	TableBike     = "bike"
	TableBikeTrip = "bike_trip"
)

type Column struct {
	Table string
	Name  string
}

var (
	PersonID   = Column{Table: TablePerson, Name: "id"}
	PersonName = Column{Table: TablePerson, Name: "name"}

	ColorID   = Column{Table: TableColor, Name: "id"}
	ColorName = Column{Table: TableColor, Name: "name"}

	BikeID      = Column{Table: TableBike, Name: "id"}
	BikeName    = Column{Table: TableBike, Name: "name"}
	BikeOwnerID = Column{Table: TableBike, Name: "owner_id"}
	BikeColorID = Column{Table: TableBike, Name: "color_id"}

	BikeTripID     = Column{Table: TableBikeTrip, Name: "id"}
	BikeTripName   = Column{Table: TableBikeTrip, Name: "name"}
	BikeTripBikeID = Column{Table: TableBikeTrip, Name: "bike_id"}
)

var (
	PersonColumns   = []Column{PersonID, PersonName}
	ColorColumns    = []Column{ColorID, ColorName}
	BikeColumns     = []Column{BikeID, BikeName, BikeOwnerID, BikeColorID}
	BikeTripColumns = []Column{BikeTripID, BikeTripName, BikeTripBikeID}
)

// String returns the table qualified column name.
func (c Column) String() string {
	return c.Table + "." + c.Name
}

type (
	// LeftJoin keeps every row of the scanned table, matching Table on Left = Right.
	LeftJoin struct {
		Table string
		Left  Column
		Right Column
	}

	// Scan is an unexecuted read of one table. A nil Where selects every row.
	Scan struct {
		Table    string
		Columns  []Column
		Join     *LeftJoin
		Where    Expr
		Distinct bool
	}
)

func (s Scan) Filtered() bool {
	return s.Where != nil
}

// Project returns a copy of the scan selecting only columns.
func (s Scan) Project(columns ...Column) Scan {
	s.Columns = columns
	s.Distinct = false

	return s
}

// Unique returns a copy of the scan that eliminates duplicate rows.
func (s Scan) Unique() Scan {
	s.Distinct = true

	return s
}

func personScan() Scan {
	return Scan{Table: TablePerson, Columns: PersonColumns}
}

func colorScan() Scan {
	return Scan{Table: TableColor, Columns: ColorColumns}
}

// bikeScan left joins color so BikeColorName can filter on it while bikes
// without a color still appear.
func bikeScan() Scan {
	return Scan{
		Table:   TableBike,
		Columns: BikeColumns,
		Join: &LeftJoin{
			Table: TableColor,
			Left:  ColorID,
			Right: BikeColorID,
		},
	}
}

func bikeTripScan() Scan {
	return Scan{Table: TableBikeTrip, Columns: BikeTripColumns}
}
