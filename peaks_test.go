package nmrtab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peakFileHeader = `VARS   INDEX X_AXIS Y_AXIS DX DY X_PPM Y_PPM X_HZ Y_HZ HEIGHT DHEIGHT VOL TYPE ASS
FORMAT %5d %9.3f %9.3f %6.3f %6.3f %8.3f %8.3f %9.3f %9.3f %e %e %e %d %s
`

const peakFileText = peakFileHeader + `
1 400.0 200.0 0.4 0.2 8.0 120.0 4800.0 7296.0 2.0 0.2 4.0 1 A2HN-N
2 500.0 100.0 0.5 0.1 7.5 110.0 4500.3 6688.0 1.0 0.1 2.0 2 A3HN-A3N
`

func parsePeakFile(t *testing.T, text string) *DBFile {
	t.Helper()
	db, err := ReadDBFile(strings.NewReader(text), "peaks.tab")
	require.NoError(t, err)
	return db
}

func TestReadPeaks(t *testing.T) {
	t.Parallel()

	t.Run("axes come from the _AXIS columns", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileText), ReadPeaksOptions{})
		require.NoError(t, err)

		assert.Equal(t, 2, peaks.Data.NumAxis)
		assert.Equal(t, []string{"X", "Y"}, peaks.Data.AxisLabels)
		assert.Len(t, peaks.Peaks, 2)
	})

	t.Run("assignments expand across axes", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileText), ReadPeaksOptions{})
		require.NoError(t, err)

		first := peaks.Peaks[0]
		require.Len(t, first.Axes, 2)
		require.Len(t, first.Axes[0].AtomLabels, 1)
		require.Len(t, first.Axes[1].AtomLabels, 1)

		assert.Equal(t, AtomLabel{ChainCode: "A", SequenceCode: 2, ResidueName: "A", AtomName: "HN"},
			first.Axes[0].AtomLabels[0])
		// the bare N on the second axis inherits residue A2
		assert.Equal(t, AtomLabel{ChainCode: "A", SequenceCode: 2, ResidueName: "A", AtomName: "N"},
			first.Axes[1].AtomLabels[0])
	})

	t.Run("positions and propagated errors", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileText), ReadPeaksOptions{})
		require.NoError(t, err)

		first := peaks.Peaks[0]
		assert.InDelta(t, 8.0, first.Axes[0].PPM, 1e-12)
		assert.InDelta(t, 120.0, first.Axes[1].PPM, 1e-12)

		// DX/X_AXIS * X_PPM = 0.4/400 * 8.0
		require.NotNil(t, first.Axes[0].PPMError)
		assert.InDelta(t, 0.008, *first.Axes[0].PPMError, 1e-9)
		// DY/Y_AXIS * Y_PPM = 0.2/200 * 120.0
		require.NotNil(t, first.Axes[1].PPMError)
		assert.InDelta(t, 0.12, *first.Axes[1].PPMError, 1e-9)

		// DHEIGHT/HEIGHT = 0.1 relative error
		assert.InDelta(t, 2.0, first.Values.Intensity, 1e-12)
		require.NotNil(t, first.Values.IntensityError)
		assert.InDelta(t, 0.2, *first.Values.IntensityError, 1e-9)
		assert.InDelta(t, 4.0, first.Values.Volume, 1e-12)
		require.NotNil(t, first.Values.VolumeError)
		assert.InDelta(t, 0.4, *first.Values.VolumeError, 1e-9)

		assert.Equal(t, 1, first.Values.Index)
	})

	t.Run("spectrometer frequency is the mean of HZ/PPM across rows", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileText), ReadPeaksOptions{})
		require.NoError(t, err)

		require.Len(t, peaks.Data.SpectrometerFrequencies, 2)
		// (4800/8 + 4500.3/7.5) / 2
		assert.InDelta(t, 600.02, peaks.Data.SpectrometerFrequencies[0], 1e-9)
		// (7296/120 + 6688/110) / 2
		assert.InDelta(t, (7296.0/120.0+6688.0/110.0)/2, peaks.Data.SpectrometerFrequencies[1], 1e-9)
	})

	t.Run("noise filtering skips rows whose TYPE is not a peak", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileText), ReadPeaksOptions{FilterNoise: true})
		require.NoError(t, err)

		require.Len(t, peaks.Peaks, 1)
		assert.Equal(t, 1, peaks.Peaks[0].Values.Index)
		// only the first row contributes to the frequency means
		assert.InDelta(t, 600.0, peaks.Data.SpectrometerFrequencies[0], 1e-9)
	})

	t.Run("chain code is stamped on every label", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileText), ReadPeaksOptions{ChainCode: "B"})
		require.NoError(t, err)

		assert.Equal(t, "B", peaks.Peaks[0].Axes[0].AtomLabels[0].ChainCode)
	})

	t.Run("zero height is a hard failure", func(t *testing.T) {
		t.Parallel()

		text := peakFileHeader + "1 400.0 200.0 0.4 0.2 8.0 120.0 4800.0 7296.0 0.0 0.2 4.0 1 A2HN-N\n"
		_, err := ReadPeaks(parsePeakFile(t, text), ReadPeaksOptions{})
		require.ErrorIs(t, err, ErrZeroDivisor)
		assert.Contains(t, err.Error(), "HEIGHT")
	})

	t.Run("zero chemical shift is a hard failure", func(t *testing.T) {
		t.Parallel()

		text := peakFileHeader + "1 400.0 200.0 0.4 0.2 0.0 120.0 4800.0 7296.0 2.0 0.2 4.0 1 A2HN-N\n"
		_, err := ReadPeaks(parsePeakFile(t, text), ReadPeaksOptions{})
		require.ErrorIs(t, err, ErrZeroDivisor)
		assert.Contains(t, err.Error(), "X_PPM")
	})

	t.Run("zero point value is a hard failure", func(t *testing.T) {
		t.Parallel()

		text := peakFileHeader + "1 0.0 200.0 0.4 0.2 8.0 120.0 4800.0 7296.0 2.0 0.2 4.0 1 A2HN-N\n"
		_, err := ReadPeaks(parsePeakFile(t, text), ReadPeaksOptions{})
		require.ErrorIs(t, err, ErrZeroDivisor)
		assert.Contains(t, err.Error(), "X_AXIS")
	})

	t.Run("a list with no rows has no frequencies", func(t *testing.T) {
		t.Parallel()

		peaks, err := ReadPeaks(parsePeakFile(t, peakFileHeader), ReadPeaksOptions{})
		require.NoError(t, err)

		assert.Empty(t, peaks.Peaks)
		assert.Empty(t, peaks.Data.SpectrometerFrequencies)
	})

	t.Run("filtering away every row leaves no frequencies", func(t *testing.T) {
		t.Parallel()

		text := peakFileHeader + "2 500.0 100.0 0.5 0.1 7.5 110.0 4500.3 6688.0 1.0 0.1 2.0 2 A3HN-A3N\n"
		peaks, err := ReadPeaks(parsePeakFile(t, text), ReadPeaksOptions{FilterNoise: true})
		require.NoError(t, err)

		assert.Empty(t, peaks.Peaks)
		assert.Empty(t, peaks.Data.SpectrometerFrequencies)
	})

	t.Run("file without axis columns is rejected", func(t *testing.T) {
		t.Parallel()

		text := "VARS RESID RESNAME ATOMNAME SHIFT\nFORMAT %5d %6s %6s %9.3f\n1 ALA H 8.234\n"
		_, err := ReadPeaks(parsePeakFile(t, text), ReadPeaksOptions{})
		assert.ErrorIs(t, err, ErrMissingColumn)
	})
}
