package nmrtab

import "strings"

// UnknownResidue is the placeholder used when a one-letter residue code has
// no three-letter translation.
const UnknownResidue = "."

// Translations1To3 maps one-letter amino-acid codes to their three-letter
// equivalents.
var Translations1To3 = map[byte]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
}

// translations3To1 is the inverse of Translations1To3, built once at package
// initialisation.
var translations3To1 = func() map[string]byte {
	result := make(map[string]byte, len(Translations1To3))
	for one, three := range Translations1To3 {
		result[three] = one
	}
	return result
}()

// Translate1To3 translates a one-letter sequence into three-letter residue
// codes using the given translation table (Translations1To3 when nil).
// Unknown codes map to the placeholder ("." when empty).
func Translate1To3(sequence string, translations map[byte]string, placeholder string) []string {
	if translations == nil {
		translations = Translations1To3
	}
	if placeholder == "" {
		placeholder = UnknownResidue
	}

	result := make([]string, 0, len(sequence))
	for i := 0; i < len(sequence); i++ {
		code := sequence[i] &^ 0x20 // upper-case ASCII letters
		if three, ok := translations[code]; ok {
			result = append(result, three)
		} else {
			result = append(result, placeholder)
		}
	}
	return result
}

// Translate3To1 translates three-letter residue codes into a one-letter
// sequence; unknown codes become "X".
func Translate3To1(residues []string) string {
	var builder strings.Builder
	for _, residue := range residues {
		if one, ok := translations3To1[strings.ToUpper(residue)]; ok {
			builder.WriteByte(one)
		} else {
			builder.WriteByte('X')
		}
	}
	return builder.String()
}

// ReadSequence concatenates the one-letter residue codes of all
// "DATA SEQUENCE" records of a gdb/tab document, in file order.
func ReadSequence(db *DBFile) string {
	var builder strings.Builder
	records := db.Select(RecordData, func(record Record) bool {
		first, ok := record.String(0)
		return ok && first == keywordSequence
	})
	for _, record := range records {
		for _, value := range record.Strings()[1:] {
			builder.WriteString(value)
		}
	}
	return builder.String()
}

// ReadSequence3Let extracts the sequence of a gdb/tab document as
// three-letter residue codes.
func ReadSequence3Let(db *DBFile) []string {
	return Translate1To3(ReadSequence(db), nil, "")
}

// Sequence3LetToResidues numbers three-letter residue codes into sequence
// residues for one chain, starting at the given sequence code.
func Sequence3LetToResidues(codes []string, chainCode string, start int) []SequenceResidue {
	if chainCode == "" {
		chainCode = defaultChainCode
	}
	result := make([]SequenceResidue, 0, len(codes))
	for i, code := range codes {
		result = append(result, SequenceResidue{
			ChainCode:    chainCode,
			SequenceCode: start + i,
			ResidueName:  code,
		})
	}
	return result
}

// ResiduesToSequence3Let returns the residue names of a chain in order.
func ResiduesToSequence3Let(residues []SequenceResidue) []string {
	result := make([]string, 0, len(residues))
	for _, residue := range residues {
		result = append(result, residue.ResidueName)
	}
	return result
}

// OffsetChainResidues shifts the sequence codes of each chain by the offset
// given for it; chains without an entry are untouched.
func OffsetChainResidues(residues []SequenceResidue, offsets map[string]int) []SequenceResidue {
	result := make([]SequenceResidue, 0, len(residues))
	for _, residue := range residues {
		residue.SequenceCode += offsets[residue.ChainCode]
		result = append(result, residue)
	}
	return result
}

// chainCodeIter hands out chain codes: first the requested ones, then
// successive upper-case letters skipping any already handed out.
type chainCodeIter struct {
	requested []string
	used      map[string]bool
	next      rune
}

func newChainCodeIter(requested []string) *chainCodeIter {
	return &chainCodeIter{
		requested: requested,
		used:      make(map[string]bool),
		next:      'A',
	}
}

func (c *chainCodeIter) Next() string {
	if len(c.requested) > 0 {
		code := c.requested[0]
		c.requested = c.requested[1:]
		c.used[code] = true
		return code
	}
	for c.used[string(c.next)] {
		c.next++
	}
	code := string(c.next)
	c.used[code] = true
	return code
}
