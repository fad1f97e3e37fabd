package data

import "fmt"

// Columns is the number of formation columns per side.
const Columns = 5

// Row is a formation row. Rows affect physical damage dealt and taken.
type Row int8

const (
	RowFront Row = 1
	RowMid   Row = 2
	RowRear  Row = 3
)

func (r Row) String() string {
	switch r {
	case RowFront:
		return "front"
	case RowMid:
		return "mid"
	case RowRear:
		return "rear"
	}
	return fmt.Sprintf("Row(%d)", int8(r))
}

// FormationType names a fixed column → row layout.
type FormationType int8

const (
	FormationSkein FormationType = iota + 1
	FormationValley
	FormationTooth
	FormationWave
	FormationFront
	FormationMid
	FormationRear
	FormationPike
	FormationShield
	FormationPincer
	FormationSaw
	FormationHydra
)

var formationRows = map[FormationType][Columns]Row{
	FormationSkein:  {RowRear, RowMid, RowFront, RowMid, RowRear},
	FormationValley: {RowFront, RowMid, RowRear, RowMid, RowFront},
	FormationTooth:  {RowFront, RowRear, RowFront, RowRear, RowFront},
	FormationWave:   {RowRear, RowFront, RowMid, RowFront, RowRear},
	FormationFront:  {RowFront, RowFront, RowFront, RowFront, RowFront},
	FormationMid:    {RowMid, RowMid, RowMid, RowMid, RowMid},
	FormationRear:   {RowRear, RowRear, RowRear, RowRear, RowRear},
	FormationPike:   {RowRear, RowRear, RowFront, RowRear, RowRear},
	FormationShield: {RowFront, RowFront, RowRear, RowFront, RowFront},
	FormationPincer: {RowRear, RowFront, RowRear, RowFront, RowRear},
	FormationSaw:    {RowFront, RowRear, RowMid, RowRear, RowFront},
	FormationHydra:  {RowRear, RowRear, RowFront, RowFront, RowFront},
}

var formationNames = map[string]FormationType{
	"skein":  FormationSkein,
	"valley": FormationValley,
	"tooth":  FormationTooth,
	"wave":   FormationWave,
	"front":  FormationFront,
	"mid":    FormationMid,
	"rear":   FormationRear,
	"pike":   FormationPike,
	"shield": FormationShield,
	"pincer": FormationPincer,
	"saw":    FormationSaw,
	"hydra":  FormationHydra,
}

// ParseFormation returns the formation with the given lowercase name.
func ParseFormation(name string) (FormationType, error) {
	f, ok := formationNames[name]
	if !ok {
		return 0, fmt.Errorf("formation %q: %w", name, ErrInvalidEnum)
	}
	return f, nil
}

func (f FormationType) Valid() bool {
	_, ok := formationRows[f]
	return ok
}

func (f FormationType) String() string {
	for name, ft := range formationNames {
		if ft == f {
			return name
		}
	}
	return fmt.Sprintf("FormationType(%d)", int8(f))
}

// Row returns the row of the given column.
func (f FormationType) Row(column int) (Row, error) {
	rows, ok := formationRows[f]
	if !ok {
		return 0, fmt.Errorf("formation %d: %w", f, ErrInvalidEnum)
	}
	if column < 0 || column >= Columns {
		return 0, fmt.Errorf("formation column %d out of range [0,%d)", column, Columns)
	}
	return rows[column], nil
}

// ProcOrder is the fixed slot permutation used to resolve opening skills.
type ProcOrder int8

const (
	ProcOrderAndroid ProcOrder = iota
	ProcOrderIOS
)

var (
	androidProcIndex = map[Row][Columns]int{
		RowFront: {11, 15, 14, 13, 12},
		RowMid:   {6, 10, 9, 8, 7},
		RowRear:  {1, 5, 4, 3, 2},
	}
	iosProcIndex = map[Row][Columns]int{
		RowFront: {11, 12, 13, 14, 15},
		RowMid:   {6, 7, 8, 9, 10},
		RowRear:  {1, 2, 3, 4, 5},
	}
)

// ParseProcOrder parses "android" or "ios".
func ParseProcOrder(s string) (ProcOrder, error) {
	switch s {
	case "", "android":
		return ProcOrderAndroid, nil
	case "ios":
		return ProcOrderIOS, nil
	}
	return 0, fmt.Errorf("proc order %q: %w", s, ErrInvalidEnum)
}

func (p ProcOrder) String() string {
	if p == ProcOrderIOS {
		return "ios"
	}
	return "android"
}

// ProcIndex returns the opening-phase priority of a slot. Lower goes first.
func (p ProcOrder) ProcIndex(row Row, column int) (int, error) {
	table := androidProcIndex
	if p == ProcOrderIOS {
		table = iosProcIndex
	}
	idx, ok := table[row]
	if !ok {
		return 0, fmt.Errorf("proc order row %d: %w", row, ErrInvalidEnum)
	}
	if column < 0 || column >= Columns {
		return 0, fmt.Errorf("proc order column %d out of range [0,%d)", column, Columns)
	}
	return idx[column], nil
}
