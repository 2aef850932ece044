package nmrtab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shiftListText = `REMARK chemical shifts

VARS   RESID RESNAME ATOMNAME SHIFT
FORMAT %5d %6s %6s %9.3f

1 ALA H 8.234
1 ALA N 123.9
2 GLY CA 45.212
`

func TestReadShifts(t *testing.T) {
	t.Parallel()

	t.Run("rows become shifts with the chain code stamped on", func(t *testing.T) {
		t.Parallel()

		db, err := ReadDBFile(strings.NewReader(shiftListText), "shifts.tab")
		require.NoError(t, err)

		shifts, err := ReadShifts(db, "A")
		require.NoError(t, err)

		require.Len(t, shifts.Shifts, 3)
		assert.Equal(t, ShiftData{
			Atom:  AtomLabel{ChainCode: "A", SequenceCode: 1, ResidueName: "ALA", AtomName: "H"},
			Shift: 8.234,
		}, shifts.Shifts[0])
		assert.Equal(t, AtomLabel{ChainCode: "A", SequenceCode: 2, ResidueName: "GLY", AtomName: "CA"},
			shifts.Shifts[2].Atom)
		assert.InDelta(t, 45.212, shifts.Shifts[2].Shift, 1e-12)
	})

	t.Run("empty chain code defaults to A", func(t *testing.T) {
		t.Parallel()

		db, err := ReadDBFile(strings.NewReader(shiftListText), "shifts.tab")
		require.NoError(t, err)

		shifts, err := ReadShifts(db, "")
		require.NoError(t, err)
		assert.Equal(t, "A", shifts.Shifts[0].Atom.ChainCode)
	})

	t.Run("the source format carries no uncertainties", func(t *testing.T) {
		t.Parallel()

		db, err := ReadDBFile(strings.NewReader(shiftListText), "shifts.tab")
		require.NoError(t, err)

		shifts, err := ReadShifts(db, "A")
		require.NoError(t, err)
		for _, shift := range shifts.Shifts {
			assert.Nil(t, shift.Error)
		}
	})

	t.Run("missing shift column is reported", func(t *testing.T) {
		t.Parallel()

		text := "VARS RESID RESNAME ATOMNAME\nFORMAT %5d %6s %6s\n1 ALA H\n"
		db, err := ReadDBFile(strings.NewReader(text), "shifts.tab")
		require.NoError(t, err)

		_, err = ReadShifts(db, "A")
		require.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "SHIFT")
	})
}
