package nmrtab

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadWeight indicates a malformed RDC weight option.
var ErrBadWeight = errors.New("nmrtab: bad rdc weight")

// Default atoms an RDC template restraint is built between. PALES is an NIH
// program, so xplor atom names are used.
var defaultTemplateAtoms = [2]string{"HN", "N"}

// palesSequenceChunk and palesSequenceLine shape the DATA SEQUENCE layout:
// blocks of ten residues, up to one hundred residues per line.
const (
	palesSequenceChunk = 10
	palesSequenceLine  = 100
)

// RdcWeights maps an unordered atom-name pair to the weight of restraints
// between those atoms.
type RdcWeights map[[2]string]float64

// weightsKey builds the canonical (sorted) key of an atom pair.
func weightsKey(atom1, atom2 string) [2]string {
	if atom1 > atom2 {
		atom1, atom2 = atom2, atom1
	}
	return [2]string{atom1, atom2}
}

// ParseRdcWeights parses weight options given as comma-separated triples of
// two atom names and a weight, such as "HN,N,1.0". The HN/N pair defaults to
// weight 1 when not given.
func ParseRdcWeights(rawWeights []string) (RdcWeights, error) {
	result := make(RdcWeights, len(rawWeights)+1)
	for _, raw := range rawWeights {
		fields := strings.Split(raw, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %q should have 3 comma separated fields [no spaces]: atom_1,atom_2,weight e.g. HN,N,1.0", ErrBadWeight, raw)
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q has weight %q which is not a float", ErrBadWeight, raw, fields[2])
		}
		result[weightsKey(fields[0], fields[1])] = weight
	}

	defaultKey := weightsKey(defaultTemplateAtoms[0], defaultTemplateAtoms[1])
	if _, ok := result[defaultKey]; !ok {
		result[defaultKey] = 1.0
	}
	return result, nil
}

// BuildTemplateRestraints builds one zero-valued RDC restraint per residue
// between the two given atoms, for use as a PALES prediction template.
// Prolines have no HN, so they are skipped when HN is one of the atoms.
func BuildTemplateRestraints(sequence []SequenceResidue, atoms [2]string) []RdcRestraint {
	restraints := make([]RdcRestraint, 0, len(sequence))
	for _, residue := range sequence {
		if strings.EqualFold(residue.ResidueName, "PRO") && (atoms[0] == "HN" || atoms[1] == "HN") {
			continue
		}
		atom1 := AtomLabel{ChainCode: residue.ChainCode, SequenceCode: residue.SequenceCode,
			ResidueName: residue.ResidueName, AtomName: atoms[0]}
		atom2 := AtomLabel{ChainCode: residue.ChainCode, SequenceCode: residue.SequenceCode,
			ResidueName: residue.ResidueName, AtomName: atoms[1]}
		restraints = append(restraints, RdcRestraint{Atom1: atom1, Atom2: atom2})
	}
	return restraints
}

// WritePalesTemplate writes a PALES template: remarks naming the chain and
// first residue, the sequence in DATA SEQUENCE lines and the restraint table
// under its VARS/FORMAT header.
func WritePalesTemplate(w io.Writer, sequence []SequenceResidue, restraints []RdcRestraint, weights RdcWeights) error {
	if len(sequence) == 0 {
		return errors.New("nmrtab: empty sequence for pales template")
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "REMARK NEF CHAIN %s\n", sequence[0].ChainCode)
	fmt.Fprintf(&builder, "REMARK NEF START RESIDUE %d\n\n", sequence[0].SequenceCode)

	oneLetter := Translate3To1(ResiduesToSequence3Let(sequence))
	writePipeSequence(&builder, oneLetter)
	builder.WriteByte('\n')

	if err := writePalesRestraints(&builder, restraints, weights); err != nil {
		return err
	}

	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("nmrtab: failed to write pales template: %w", err)
	}
	return nil
}

// writePipeSequence writes a one-letter sequence in the NMRPipe DATA
// SEQUENCE layout: space-separated blocks of ten, one hundred residues per
// line.
func writePipeSequence(builder *strings.Builder, sequence string) {
	for start := 0; start < len(sequence); start += palesSequenceLine {
		line := sequence[start:min(start+palesSequenceLine, len(sequence))]
		blocks := make([]string, 0, palesSequenceLine/palesSequenceChunk)
		for i := 0; i < len(line); i += palesSequenceChunk {
			blocks = append(blocks, line[i:min(i+palesSequenceChunk, len(line))])
		}
		fmt.Fprintf(builder, "DATA SEQUENCE %s\n", strings.Join(blocks, " "))
	}
}

// writePalesRestraints writes the restraint table as an aligned plain table
// under its VARS/FORMAT header.
func writePalesRestraints(builder *strings.Builder, restraints []RdcRestraint, weights RdcWeights) error {
	table := [][]string{
		strings.Fields("VARS   RESID_I RESNAME_I ATOMNAME_I RESID_J RESNAME_J ATOMNAME_J D DD W"),
		strings.Fields("FORMAT %5d     %6s       %6s        %5d     %6s    %6s %9.3f %9.3f %.2f"),
	}

	for _, restraint := range restraints {
		weight, ok := weights[weightsKey(restraint.Atom1.AtomName, restraint.Atom2.AtomName)]
		if !ok {
			return fmt.Errorf("%w: no weight for atom pair %s,%s",
				ErrBadWeight, restraint.Atom1.AtomName, restraint.Atom2.AtomName)
		}
		table = append(table, []string{
			"",
			strconv.Itoa(restraint.Atom1.SequenceCode),
			restraint.Atom1.ResidueName,
			restraint.Atom1.AtomName,
			strconv.Itoa(restraint.Atom2.SequenceCode),
			restraint.Atom2.ResidueName,
			restraint.Atom2.AtomName,
			formatFloat(restraint.RDC, 3),
			formatFloat(restraint.RDCError, 3),
			formatFloat(weight, 2),
		})
	}

	builder.WriteString(tabulate(table))
	builder.WriteByte('\n')
	return nil
}

// formatFloat renders a float with a fixed number of decimals.
func formatFloat(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}
