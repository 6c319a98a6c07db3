package trnaspace

import (
	"fmt"
	"math"
)

// Interpolate assigns each residue of one molecule a continuous
// coordinate from the shared label order: labeled residues get their
// ordinal as an exact float, and each maximal unlabeled run is spread
// as evenly spaced fractions strictly between its labeled neighbors
// (or strictly beyond the edge ordinal for leading/trailing runs).
// Residues in runs with no labeled neighbor on either side stay NaN
// and are counted in undefined; a molecule where every residue is
// undefined contributes nothing to the shared index space and should
// be flagged by the caller.
func Interpolate(m *Molecule, order *Order, canonicalMax int) (undefined int) {
	n := len(m.Residues)
	ords := make([]int, n) // 0 = no usable label
	for i, r := range m.Residues {
		r.Ordinal = 0
		if lbl := r.PreferredLabel(canonicalMax); lbl != "" {
			r.Ordinal = order.Ordinals[lbl]
		}
		ords[i] = r.Ordinal
	}

	i := 0
	for i < n {
		if ords[i] > 0 {
			m.Residues[i].Continuous = float64(ords[i])
			i++
			continue
		}

		// maximal unlabeled run [i, j)
		j := i
		for j < n && ords[j] == 0 {
			j++
		}
		k := j - i

		left, right := 0, 0
		if i > 0 {
			left = ords[i-1]
		}
		if j < n {
			right = ords[j]
		}

		switch {
		case left > 0 && right > left:
			for t := 0; t < k; t++ {
				m.Residues[i+t].Continuous = float64(left) + float64(t+1)/float64(k+1)
			}
		case left == 0 && right > 0:
			for t := 0; t < k; t++ {
				m.Residues[i+t].Continuous = float64(right) - float64(k-t)/float64(k+1)
			}
		case left > 0 && right == 0:
			for t := 0; t < k; t++ {
				m.Residues[i+t].Continuous = float64(left) + float64(t+1)/float64(k+1)
			}
		default:
			// no labeled neighbor on either side, or the neighbors are
			// out of order (an upstream ordering bug): leave undefined
			for t := 0; t < k; t++ {
				m.Residues[i+t].Continuous = math.NaN()
				undefined++
			}
		}

		i = j
	}

	return undefined
}

// CheckMonotonic verifies that a molecule's defined coordinates are
// strictly increasing in sequence order. A violation means the label
// ordering is wrong for this molecule (historically: a bad variable
// arm traversal).
func CheckMonotonic(m *Molecule) error {
	prev := math.Inf(-1)
	prevSeq := 0
	for _, r := range m.Residues {
		if math.IsNaN(r.Continuous) {
			continue
		}
		if r.Continuous <= prev {
			return fmt.Errorf(
				"failed monotonicity for %s: coordinate %v at seq %d follows %v at seq %d",
				m.ID, r.Continuous, r.SeqIndex, prev, prevSeq,
			)
		}
		prev = r.Continuous
		prevSeq = r.SeqIndex
	}
	return nil
}
