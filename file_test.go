package nmrtab

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestDetectFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want FileType
	}{
		{path: "peaks.tab", want: FileTypeGDB},
		{path: "shifts.gdb", want: FileTypeGDB},
		{path: "peaks.TAB", want: FileTypeGDB},
		{path: "peaks.tab.gz", want: FileTypeGDB},
		{path: "peaks.tab.zst", want: FileTypeGDB},
		{path: "peaks.xpk", want: FileTypeNMRViewPeaks},
		{path: "protein.seq", want: FileTypeNMRViewSeq},
		{path: "protein.fasta", want: FileTypeFasta},
		{path: "protein.fa.bz2", want: FileTypeFasta},
		{path: "entry.nef", want: FileTypeNEF},
		{path: "data.csv", want: FileTypeUnsupported},
		{path: "noext", want: FileTypeUnsupported},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectFileType(tt.path))
		})
	}
}

func TestFileTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gdb", FileTypeGDB.String())
	assert.Equal(t, "nmrview-peaks", FileTypeNMRViewPeaks.String())
	assert.Equal(t, "unsupported", FileTypeUnsupported.String())
	assert.Equal(t, "FileType(99)", FileType(99).String())
}

func TestDetectCompressionType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CompressionGZ, detectCompressionType("a.tab.gz"))
	assert.Equal(t, CompressionBZ2, detectCompressionType("a.tab.bz2"))
	assert.Equal(t, CompressionXZ, detectCompressionType("a.tab.xz"))
	assert.Equal(t, CompressionZSTD, detectCompressionType("a.tab.zst"))
	assert.Equal(t, CompressionNone, detectCompressionType("a.tab"))
}

func TestCompressionTypeExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".gz", CompressionGZ.Extension())
	assert.Equal(t, "", CompressionNone.Extension())
}

// writeCompressed writes content to path, compressing to match the path's
// extension.
func writeCompressed(t *testing.T, path, content string) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, file.Close()) }()

	switch detectCompressionType(path) {
	case CompressionGZ:
		writer := gzip.NewWriter(file)
		_, err = writer.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
	case CompressionXZ:
		writer, err := xz.NewWriter(file)
		require.NoError(t, err)
		_, err = writer.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
	case CompressionZSTD:
		writer, err := zstd.NewWriter(file)
		require.NoError(t, err)
		_, err = writer.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
	default:
		_, err = file.WriteString(content)
		require.NoError(t, err)
	}
}

func TestOpenDBFile(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"", ".gz", ".xz", ".zst"} {
		ext := ext
		t.Run("extension "+ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "shifts.tab"+ext)
			writeCompressed(t, path, shiftListText)

			db, err := OpenDBFile(path)
			require.NoError(t, err)
			assert.Equal(t, "shifts.tab"+ext, db.Name)
			assert.Len(t, db.Select(RecordValue, nil), 3)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := OpenDBFile(filepath.Join(t.TempDir(), "absent.tab"))
		assert.Error(t, err)
	})
}

func TestOpenShifts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shifts.tab")
	writeCompressed(t, path, shiftListText)

	shifts, err := OpenShifts(path, "B")
	require.NoError(t, err)
	require.Len(t, shifts.Shifts, 3)
	assert.Equal(t, "B", shifts.Shifts[0].Atom.ChainCode)
}

func TestOpenPeaks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "peaks.tab.gz")
	writeCompressed(t, path, peakFileText)

	peaks, err := OpenPeaks(path, ReadPeaksOptions{})
	require.NoError(t, err)
	assert.Len(t, peaks.Peaks, 2)
}

func TestOpenNMRViewPeaks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.xpk")
	writeCompressed(t, path, xpkText)

	peaks, err := OpenNMRViewPeaks(path, ReadNMRViewPeaksOptions{})
	require.NoError(t, err)
	assert.Len(t, peaks.Peaks, 2)
}

func TestOpenNMRViewSequence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "protein.seq")
	writeCompressed(t, path, "ala 3\ngly\n")

	residues, err := OpenNMRViewSequence(path, "")
	require.NoError(t, err)
	require.Len(t, residues, 2)
	assert.Equal(t, 3, residues[0].SequenceCode)
}

func TestSaveFastaRoundTrip(t *testing.T) {
	t.Parallel()

	records := []FastaRecord{{Comment: "one", Sequence: "MKVILFAG"}}

	for _, ext := range []string{"", ".gz", ".xz", ".zst"} {
		ext := ext
		t.Run("extension "+ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.fasta"+ext)
			require.NoError(t, SaveFasta(path, records))

			parsed, err := OpenFasta(path)
			require.NoError(t, err)
			assert.Equal(t, records, parsed)
		})
	}

	t.Run("bzip2 writing is unsupported", func(t *testing.T) {
		t.Parallel()

		err := SaveFasta(filepath.Join(t.TempDir(), "out.fasta.bz2"), records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bzip2")
	})
}

func TestSavePalesTemplate(t *testing.T) {
	t.Parallel()

	sequence := Sequence3LetToResidues([]string{"MET", "LYS"}, "A", 1)
	restraints := BuildTemplateRestraints(sequence, defaultTemplateAtoms)
	weights, err := ParseRdcWeights(nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "template.tab")
	require.NoError(t, SavePalesTemplate(path, sequence, restraints, weights))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "DATA SEQUENCE MK")
}
