// Package nmrtab converts between the data-exchange formats used in NMR
// structural-biology pipelines: NMRPipe gdb/tab files, NMRView peak lists
// and sequence files, FASTA sequences, PALES templates and NEF entries.
//
// The core is a strict streaming parser for NMRPipe's gdb/tab text format.
// A gdb file declares its own schema in a header (a VARS line naming the
// columns and a FORMAT line typing them) which every following data row
// must satisfy:
//
//	VARS   RESID RESNAME ATOMNAME SHIFT
//	FORMAT %5d   %6s     %6s      %9.3f
//	1 ALA H 8.234
//
// ReadDBFile parses such a file into a DBFile of typed records in a single
// forward pass. Parsing is fail-fast: the first malformed line aborts with
// an error in the ErrBadNmrPipeFile family whose message pinpoints the file
// and line, and for field errors the exact character span of the offending
// token. No partial document is ever returned.
//
// Higher-level readers project a DBFile onto domain objects: ReadPeaks
// builds a PeakList (decomposing compound assignment strings such as
// "A2CA-A2CB" into per-axis atom labels), ReadShifts builds a ShiftList and
// ReadSequence extracts the molecular sequence from DATA SEQUENCE records.
//
// # Files and compression
//
// The Open* helpers read files directly and transparently decompress gzip,
// bzip2, xz and zstandard inputs by extension:
//
//	peaks, err := nmrtab.OpenPeaks("peaks.tab.gz", nmrtab.ReadPeaksOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Converting to NEF
//
// The converters in this package build saveframes of the NMR Exchange
// Format from the domain objects; the nef subpackage holds the entry store
// and its text form:
//
//	entry := nef.NewEntry("shifts")
//	entry.AddSaveframe(nmrtab.HeaderFrame())
//	entry.AddSaveframe(nmrtab.ShiftFrame(shifts, "default"))
//	fmt.Print(entry)
//
// The exporters run the other way: WritePalesTemplate renders a sequence
// and template restraints for PALES, and WriteFasta renders sequences as
// FASTA.
//
// This package performs no NMR computation; it only transcodes structured
// records between textual representations.
package nmrtab
