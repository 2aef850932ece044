package nmrtab

import "strings"

// splitAssignment splits one per-axis assignment token at the boundaries
// between letters and digits into at most three pieces: residue letter,
// residue number and the remainder as the atom name. A token with no digits
// is a bare atom name and comes back as a single piece.
//
//	"A2CA"  -> ["A", "2", "CA"]
//	"A2HB2" -> ["A", "2", "HB2"]
//	"CB"    -> ["CB"]
func splitAssignment(token string) []string {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }

	start := 0
	for start < len(token) && !isDigit(token[start]) {
		start++
	}
	end := start
	for end < len(token) && isDigit(token[end]) {
		end++
	}
	if start == end {
		return []string{token}
	}
	return []string{token[:start], token[start:end], token[end:]}
}

// ParseAssignments expands the hyphen-joined axis assignments of one peak
// (for example "A2CA-A2CB") into one AtomLabel per axis, padded with zero
// labels up to dimensions. An axis whose token is a bare atom name inherits
// the residue of the nearest earlier axis that named one, so "A2CA-CB"
// assigns both atoms to residue A2. All labels carry the given chain code.
func ParseAssignments(assignment string, dimensions int, chainCode string) []AtomLabel {
	labels := make([]AtomLabel, dimensions)

	var residueName, sequence string
	for axis, token := range strings.Split(assignment, "-") {
		if axis >= dimensions {
			break
		}
		if token == "" {
			continue
		}

		pieces := splitAssignment(token)
		atomName := pieces[0]
		if len(pieces) == 3 {
			residueName, sequence = pieces[0], pieces[1]
			atomName = pieces[2]
		}

		labels[axis] = AtomLabel{
			ChainCode:    chainCode,
			SequenceCode: atoiOrZero(sequence),
			ResidueName:  residueName,
			AtomName:     atomName,
		}
	}
	return labels
}

func atoiOrZero(s string) int {
	result := 0
	for i := 0; i < len(s); i++ {
		result = result*10 + int(s[i]-'0')
	}
	return result
}
