package nmrtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsotopeForAtom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		atomName string
		want     Isotope
		wantErr  bool
	}{
		{atomName: "HN", want: Isotope1H},
		{atomName: "ha", want: Isotope1H},
		{atomName: "CA", want: Isotope13C},
		{atomName: "N", want: Isotope15N},
		{atomName: "P", want: Isotope31P},
		{atomName: "XX", wantErr: true},
		{atomName: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.atomName, func(t *testing.T) {
			t.Parallel()

			isotope, err := IsotopeForAtom(tt.atomName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, isotope)
		})
	}
}

func TestParseAxisCodes(t *testing.T) {
	t.Parallel()

	t.Run("one isotope per axis", func(t *testing.T) {
		t.Parallel()

		isotopes, err := ParseAxisCodes("1H.1H.15N", 3)
		require.NoError(t, err)
		assert.Equal(t, []Isotope{Isotope1H, Isotope1H, Isotope15N}, isotopes)
	})

	t.Run("too few codes", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAxisCodes("1H", 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "axis 2")
	})

	t.Run("unknown isotope", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAxisCodes("1H.99X", 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "axis 2")
	})

	t.Run("extra codes beyond dimensions are ignored", func(t *testing.T) {
		t.Parallel()

		isotopes, err := ParseAxisCodes("1H.15N.13C", 2)
		require.NoError(t, err)
		assert.Len(t, isotopes, 2)
	})
}

func TestSpectrometerFrequency(t *testing.T) {
	t.Parallel()

	frequency, err := SpectrometerFrequency(Isotope1H, 600.0)
	require.NoError(t, err)
	assert.InDelta(t, 600.0, frequency, 1e-12)

	frequency, err = SpectrometerFrequency(Isotope15N, 600.0)
	require.NoError(t, err)
	assert.InDelta(t, 60.820887, frequency, 1e-3)

	_, err = SpectrometerFrequency(Isotope("99X"), 600.0)
	assert.Error(t, err)
}
