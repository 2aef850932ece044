package nmrtab

// Shift-file schema markers.
const (
	columnResid    = "RESID"
	columnResname  = "RESNAME"
	columnAtomname = "ATOMNAME"
	columnShift    = "SHIFT"
)

// defaultChainCode is used whenever a format carries no chain information.
const defaultChainCode = "A"

// ReadShifts interprets a parsed gdb/tab document as a chemical-shift list.
// Shift files carry no chain information, so every residue is tagged with
// the given chain code ("A" when empty). The source format carries no shift
// uncertainties, so every ShiftData.Error is nil.
func ReadShifts(db *DBFile, chainCode string) (*ShiftList, error) {
	if chainCode == "" {
		chainCode = defaultChainCode
	}

	columns, err := db.Columns()
	if err != nil {
		return nil, err
	}
	lookup := newColumnLookup(db, columns)

	shifts := make([]ShiftData, 0)
	for _, record := range db.Select(RecordValue, nil) {
		residue, err := lookup.intValue(record, columnResid)
		if err != nil {
			return nil, err
		}
		residueName, err := lookup.stringValue(record, columnResname)
		if err != nil {
			return nil, err
		}
		atomName, err := lookup.stringValue(record, columnAtomname)
		if err != nil {
			return nil, err
		}
		shift, err := lookup.floatValue(record, columnShift)
		if err != nil {
			return nil, err
		}

		shifts = append(shifts, ShiftData{
			Atom: AtomLabel{
				ChainCode:    chainCode,
				SequenceCode: residue,
				ResidueName:  residueName,
				AtomName:     atomName,
			},
			Shift: shift,
		})
	}

	return &ShiftList{Shifts: shifts}, nil
}
