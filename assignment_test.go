package nmrtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAssignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  []string
	}{
		{name: "residue number and atom", token: "A2CA", want: []string{"A", "2", "CA"}},
		{name: "atom with trailing digit", token: "A2HB2", want: []string{"A", "2", "HB2"}},
		{name: "bare atom name", token: "CB", want: []string{"CB"}},
		{name: "number only", token: "12", want: []string{"", "12", ""}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, splitAssignment(tt.token))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	t.Run("residue propagates to bare atom names", func(t *testing.T) {
		t.Parallel()

		labels := ParseAssignments("A2CA-CB", 2, "A")

		assert.Equal(t, AtomLabel{ChainCode: "A", SequenceCode: 2, ResidueName: "A", AtomName: "CA"}, labels[0])
		assert.Equal(t, AtomLabel{ChainCode: "A", SequenceCode: 2, ResidueName: "A", AtomName: "CB"}, labels[1])
	})

	t.Run("each axis may name its own residue", func(t *testing.T) {
		t.Parallel()

		labels := ParseAssignments("A2HN-G3N", 2, "B")

		assert.Equal(t, AtomLabel{ChainCode: "B", SequenceCode: 2, ResidueName: "A", AtomName: "HN"}, labels[0])
		assert.Equal(t, AtomLabel{ChainCode: "B", SequenceCode: 3, ResidueName: "G", AtomName: "N"}, labels[1])
	})

	t.Run("propagation carries the latest residue forward", func(t *testing.T) {
		t.Parallel()

		labels := ParseAssignments("A2CA-G5CB-CG", 3, "A")

		assert.Equal(t, 5, labels[2].SequenceCode)
		assert.Equal(t, "G", labels[2].ResidueName)
		assert.Equal(t, "CG", labels[2].AtomName)
	})

	t.Run("axes beyond the assignment stay empty", func(t *testing.T) {
		t.Parallel()

		labels := ParseAssignments("A2CA", 3, "A")

		assert.Len(t, labels, 3)
		assert.False(t, labels[0].IsZero())
		assert.True(t, labels[1].IsZero())
		assert.True(t, labels[2].IsZero())
	})

	t.Run("extra tokens beyond the dimensions are dropped", func(t *testing.T) {
		t.Parallel()

		labels := ParseAssignments("A2CA-A2CB-A2CG", 2, "A")
		assert.Len(t, labels, 2)
	})
}
