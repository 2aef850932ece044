package nmrtab

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FileType represents the NMR exchange formats recognised by their file
// extension, before any compression extension.
type FileType int

const (
	// FileTypeGDB represents an NMRPipe gdb/tab file (.tab, .gdb)
	FileTypeGDB FileType = iota
	// FileTypeNMRViewPeaks represents an NMRView peak list (.xpk)
	FileTypeNMRViewPeaks
	// FileTypeNMRViewSeq represents an NMRView sequence file (.seq)
	FileTypeNMRViewSeq
	// FileTypeFasta represents a FASTA sequence file (.fasta, .fa)
	FileTypeFasta
	// FileTypeNEF represents an NEF entry (.nef)
	FileTypeNEF
	// FileTypeUnsupported represents an unsupported file type
	FileTypeUnsupported
)

// Format file extensions
const (
	extTab   = ".tab"
	extGDB   = ".gdb"
	extXPK   = ".xpk"
	extSeq   = ".seq"
	extFasta = ".fasta"
	extFa    = ".fa"
	extNEF   = ".nef"
)

// DetectFileType determines the file type from a path, looking through any
// compression extension ("peaks.tab.gz" is a gdb/tab file).
func DetectFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(removeCompressionExtension(path)))
	switch ext {
	case extTab, extGDB:
		return FileTypeGDB
	case extXPK:
		return FileTypeNMRViewPeaks
	case extSeq:
		return FileTypeNMRViewSeq
	case extFasta, extFa:
		return FileTypeFasta
	case extNEF:
		return FileTypeNEF
	default:
		return FileTypeUnsupported
	}
}

// OpenDBFile opens and parses an NMRPipe gdb/tab file, transparently
// decompressing gzip, bzip2, xz and zstd by extension.
func OpenDBFile(path string) (*DBFile, error) {
	var db *DBFile
	err := withFileReader(path, func(r io.Reader) error {
		var err error
		db, err = ReadDBFile(r, filepath.Base(path))
		return err
	})
	return db, err
}

// OpenPeaks opens an NMRPipe peak-list file.
func OpenPeaks(path string, opts ReadPeaksOptions) (*PeakList, error) {
	db, err := OpenDBFile(path)
	if err != nil {
		return nil, err
	}
	return ReadPeaks(db, opts)
}

// OpenShifts opens an NMRPipe chemical-shift file.
func OpenShifts(path, chainCode string) (*ShiftList, error) {
	db, err := OpenDBFile(path)
	if err != nil {
		return nil, err
	}
	return ReadShifts(db, chainCode)
}

// OpenNMRViewPeaks opens an NMRView .xpk peak list.
func OpenNMRViewPeaks(path string, opts ReadNMRViewPeaksOptions) (*PeakList, error) {
	var peaks *PeakList
	err := withFileReader(path, func(r io.Reader) error {
		var err error
		peaks, err = ReadNMRViewPeaks(r, filepath.Base(path), opts)
		return err
	})
	return peaks, err
}

// OpenNMRViewSequence opens an NMRView .seq file.
func OpenNMRViewSequence(path, chainCode string) ([]SequenceResidue, error) {
	var residues []SequenceResidue
	err := withFileReader(path, func(r io.Reader) error {
		var err error
		residues, err = ReadNMRViewSequence(r, chainCode)
		return err
	})
	return residues, err
}

// OpenFasta opens a FASTA file.
func OpenFasta(path string) ([]FastaRecord, error) {
	var records []FastaRecord
	err := withFileReader(path, func(r io.Reader) error {
		var err error
		records, err = ReadFasta(r)
		return err
	})
	return records, err
}

// withFileReader runs read over a transparently decompressed file reader.
func withFileReader(path string, read func(io.Reader) error) error {
	reader, cleanup, err := openFileReader(path)
	if err != nil {
		return err
	}
	readErr := read(reader)
	if cleanupErr := cleanup(); cleanupErr != nil && readErr == nil {
		readErr = cleanupErr
	}
	return readErr
}

// writeFile runs write over a transparently compressing file writer.
func writeFile(path string, write func(io.Writer) error) error {
	writer, cleanup, err := createFileWriter(path)
	if err != nil {
		return err
	}
	writeErr := write(writer)
	if cleanupErr := cleanup(); cleanupErr != nil && writeErr == nil {
		writeErr = cleanupErr
	}
	return writeErr
}

// SavePalesTemplate writes a PALES template file, compressing by extension.
func SavePalesTemplate(path string, sequence []SequenceResidue, restraints []RdcRestraint, weights RdcWeights) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePalesTemplate(w, sequence, restraints, weights)
	})
}

// SaveFasta writes FASTA records to a file, compressing by extension.
func SaveFasta(path string, records []FastaRecord) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteFasta(w, records)
	})
}

// String returns the name of the file type.
func (t FileType) String() string {
	switch t {
	case FileTypeGDB:
		return "gdb"
	case FileTypeNMRViewPeaks:
		return "nmrview-peaks"
	case FileTypeNMRViewSeq:
		return "nmrview-seq"
	case FileTypeFasta:
		return "fasta"
	case FileTypeNEF:
		return "nef"
	case FileTypeUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("FileType(%d)", int(t))
	}
}
