package nmrtab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// fastaLineWidth is the wrap width used when writing sequences.
const fastaLineWidth = 60

// ErrBadFasta indicates a malformed FASTA stream.
var ErrBadFasta = errors.New("nmrtab: bad fasta file")

// FastaRecord is one FASTA entry: the text of its ">" header line (without
// the marker) and the concatenated sequence letters.
type FastaRecord struct {
	Comment  string
	Sequence string
}

// ReadFasta reads all entries of a FASTA stream. Sequence lines are
// concatenated with internal whitespace removed; text before the first ">"
// header is an error.
func ReadFasta(r io.Reader) ([]FastaRecord, error) {
	records := make([]FastaRecord, 0)
	var current *FastaRecord
	var sequence strings.Builder

	flush := func() {
		if current != nil {
			current.Sequence = sequence.String()
			records = append(records, *current)
			sequence.Reset()
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case len(line) == 0:
			continue
		case line[0] == '>':
			flush()
			current = &FastaRecord{Comment: strings.TrimSpace(line[1:])}
		case current == nil:
			return nil, fmt.Errorf("%w: sequence data before any \">\" header at line %d", ErrBadFasta, lineNo)
		default:
			sequence.WriteString(strings.Join(strings.Fields(line), ""))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("nmrtab: failed to read fasta: %w", err)
	}
	flush()

	return records, nil
}

// FastaToResidues assigns chain codes and start numbers to FASTA entries and
// expands them into sequence residues. Chain codes are taken from the
// requested list first, then generated alphabetically; entries beyond the
// starts list begin at 1.
func FastaToResidues(records []FastaRecord, chainCodes []string, starts []int) []SequenceResidue {
	chains := newChainCodeIter(chainCodes)

	residues := make([]SequenceResidue, 0)
	for i, record := range records {
		start := 1
		if i < len(starts) {
			start = starts[i]
		}
		codes := Translate1To3(record.Sequence, nil, "")
		residues = append(residues, Sequence3LetToResidues(codes, chains.Next(), start)...)
	}
	return residues
}

// ResiduesToFasta groups residues by chain, in first-seen order, into one
// FASTA entry per chain.
func ResiduesToFasta(residues []SequenceResidue, entryName string) []FastaRecord {
	chains := make([]string, 0)
	byChain := make(map[string][]SequenceResidue)
	for _, residue := range residues {
		if _, seen := byChain[residue.ChainCode]; !seen {
			chains = append(chains, residue.ChainCode)
		}
		byChain[residue.ChainCode] = append(byChain[residue.ChainCode], residue)
	}

	records := make([]FastaRecord, 0, len(chains))
	for _, chain := range chains {
		chainResidues := byChain[chain]
		records = append(records, FastaRecord{
			Comment:  fmt.Sprintf("%s chain %s start %d", entryName, chain, chainResidues[0].SequenceCode),
			Sequence: Translate3To1(ResiduesToSequence3Let(chainResidues)),
		})
	}
	return records
}

// WriteFasta writes FASTA entries with sequences wrapped at 60 columns.
func WriteFasta(w io.Writer, records []FastaRecord) error {
	for _, record := range records {
		if _, err := fmt.Fprintf(w, ">%s\n", record.Comment); err != nil {
			return fmt.Errorf("nmrtab: failed to write fasta: %w", err)
		}
		sequence := record.Sequence
		for len(sequence) > 0 {
			width := min(fastaLineWidth, len(sequence))
			if _, err := fmt.Fprintln(w, sequence[:width]); err != nil {
				return fmt.Errorf("nmrtab: failed to write fasta: %w", err)
			}
			sequence = sequence[width:]
		}
	}
	return nil
}
