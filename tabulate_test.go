package nmrtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabulate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "columns pad to the widest cell",
			rows: [][]string{
				{"VARS", "RESID", "SHIFT"},
				{"", "1", "8.234"},
			},
			want: "VARS  RESID  SHIFT\n      1      8.234",
		},
		{
			name: "ragged rows",
			rows: [][]string{
				{"a", "bb"},
				{"ccc", "d", "e"},
			},
			want: "a    bb\nccc  d   e",
		},
		{
			name: "no trailing whitespace",
			rows: [][]string{
				{"long-cell", "x"},
				{"a"},
			},
			want: "long-cell  x\na",
		},
		{
			name: "empty input",
			rows: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tabulate(tt.rows))
		})
	}
}
