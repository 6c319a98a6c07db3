package trnaspace

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// UnknownIndex marks a residue whose structural index was not assigned
// by the annotator and could not be inferred from its neighbors.
const UnknownIndex = -1

// Residue is one nucleotide position of one molecule, plus the
// coordinates the pipeline assigns to it.
type Residue struct {
	MoleculeID string
	SourceFile string

	// 1-based position along the molecule, 5'→3'
	SeqIndex int

	// canonical structural index from the annotator (or inferred), or UnknownIndex
	StructIndex int

	// structural label text, "" when the annotator gave none
	Label string

	// nucleotide character
	Base string

	// global label ordinal, 0 when the residue has no usable label
	Ordinal int

	// per-molecule continuous coordinate, NaN when undefined
	Continuous float64

	// final shared integer coordinate, 0 before assignment
	GlobalIndex int

	// structural region tag, filled at output time
	Region string
}

// Molecule is one annotated tRNA with its residues in sequence order.
type Molecule struct {
	ID       string
	Source   string
	Residues []*Residue
}

// PreferredLabel is the label a residue is ordered by: the annotator's
// text label when present, else the structural index when it is within
// the canonical range, else "".
func (r *Residue) PreferredLabel(canonicalMax int) string {
	if lbl := strings.TrimSpace(r.Label); lbl != "" && lbl != "nan" {
		return lbl
	}
	if r.StructIndex >= 1 && r.StructIndex <= canonicalMax {
		return strconv.Itoa(r.StructIndex)
	}
	return ""
}

// FillStructIndices completes missing structural indices along one
// molecule by two-pass monotonic inference: a forward pass counts up
// from the last annotated index and a backward pass counts down from
// the next one. A gap position is accepted only where the passes agree
// (or only one side is known) and the value stays within
// 1..canonicalMax; everything else keeps the unknown sentinel rather
// than a guess that could corrupt ordering. Returns the number of
// positions left unresolved.
func FillStructIndices(res []*Residue, canonicalMax int) (unresolved int) {
	sort.SliceStable(res, func(i, j int) bool { return res[i].SeqIndex < res[j].SeqIndex })
	n := len(res)

	fwd := make([]int, n)
	last := UnknownIndex
	for i := 0; i < n; i++ {
		switch {
		case res[i].StructIndex >= 1:
			fwd[i] = res[i].StructIndex
			last = res[i].StructIndex
		case last != UnknownIndex:
			last++
			fwd[i] = last
		default:
			fwd[i] = UnknownIndex
		}
	}

	bwd := make([]int, n)
	next := UnknownIndex
	hasNext := false
	for i := n - 1; i >= 0; i-- {
		switch {
		case res[i].StructIndex >= 1:
			bwd[i] = res[i].StructIndex
			next = res[i].StructIndex
			hasNext = true
		case hasNext:
			next--
			bwd[i] = next
		default:
			bwd[i] = UnknownIndex
		}
	}

	inRange := func(v int) bool { return v >= 1 && v <= canonicalMax }
	for i := 0; i < n; i++ {
		if res[i].StructIndex >= 1 {
			continue
		}
		f, b := fwd[i], bwd[i]
		switch {
		case f != UnknownIndex && b != UnknownIndex && f == b && inRange(f):
			res[i].StructIndex = f
		case f != UnknownIndex && b == UnknownIndex && inRange(f):
			res[i].StructIndex = f
		case b != UnknownIndex && f == UnknownIndex && inRange(b):
			res[i].StructIndex = b
		default:
			res[i].StructIndex = UnknownIndex
			unresolved++
		}
	}

	return unresolved
}

// StructuralType buckets molecules by variable arm architecture.
type StructuralType int

const (
	// TypeExcluded molecules cannot share a coordinate space with
	// standard nuclear tRNAs
	TypeExcluded StructuralType = iota

	// TypeI is the standard 76nt architecture with a short variable region
	TypeI

	// TypeII carries an extended variable arm (Leu, Ser, Tyr) with
	// e-positions
	TypeII
)

func (t StructuralType) String() string {
	switch t {
	case TypeI:
		return "type1"
	case TypeII:
		return "type2"
	default:
		return "exclude"
	}
}

// exclusion markers for molecules whose architecture defeats a shared
// coordinate space: selenocysteine tRNAs (extended ~95nt, SECIS
// coupled), initiator methionine tRNAs (modified for ribosome binding)
var exclusionMarkers = []string{"SEC", "SELENOCYSTEINE", "IMET", "INITIAT", "FMET"}

// Excluded reports whether a molecule's identity matches an exclusion
// rule, the built-ins or the user-configured extra keywords. Exclusion
// happens before any ordering because one incompatible molecule can
// poison the entire shared label space.
func Excluded(moleculeID string, extra []string) bool {
	id := strings.ToUpper(moleculeID)

	for _, marker := range exclusionMarkers {
		if strings.Contains(id, marker) {
			return true
		}
	}
	for _, marker := range extra {
		if marker != "" && strings.Contains(id, strings.ToUpper(marker)) {
			return true
		}
	}

	// mitochondrial tRNAs have a different architecture (often <76nt,
	// can lack the D-loop entirely)
	return strings.Contains(id, "MITO-TRNA") || strings.HasPrefix(id, "MITO-")
}

// typeIIIsotypes are the amino acids whose tRNAs carry extended
// variable arms
var typeIIIsotypes = []string{"LEU", "SER", "TYR"}

// Classify buckets a molecule into a structural type by its identity.
func Classify(moleculeID string, extra []string) StructuralType {
	if Excluded(moleculeID, extra) {
		return TypeExcluded
	}
	id := strings.ToUpper(moleculeID)
	for _, aa := range typeIIIsotypes {
		if strings.Contains(id, aa) {
			return TypeII
		}
	}
	return TypeI
}

// LabelingOffset estimates the constant shift between a molecule's
// canonical labels and its template indices using the conserved D-loop
// window (labels 15..25) and majority vote. ok is false when no
// position in the window is informative; such molecules cannot be
// placed in an offset partition.
func LabelingOffset(m *Molecule) (offset int, ok bool) {
	counts := make(map[int]int)
	for _, r := range m.Residues {
		n, err := strconv.Atoi(strings.TrimSpace(r.Label))
		if err != nil || r.StructIndex < 1 {
			continue
		}
		if n >= 15 && n <= 25 {
			counts[n-r.StructIndex]++
		}
	}
	if len(counts) == 0 {
		return 0, false
	}

	best, bestCount := 0, 0
	first := true
	for off, c := range counts {
		if first || c > bestCount || (c == bestCount && off < best) {
			best, bestCount = off, c
			first = false
		}
	}
	return best, true
}

// resetCoordinates clears everything the pipeline assigns, so a
// molecule can be re-unified from its raw annotation (reindex).
func (m *Molecule) resetCoordinates() {
	for _, r := range m.Residues {
		r.Ordinal = 0
		r.Continuous = math.NaN()
		r.GlobalIndex = 0
		r.Region = ""
	}
}
