package trnaspace

import (
	"strconv"
	"strings"
)

// Region names the structural sub-region a canonical position belongs
// to. Buckets follow the canonical numbering and are robust to
// insertions, which inherit the region of their base position.
func Region(base int) string {
	p := base
	switch {
	case p < 1:
		return "unknown"
	case (1 <= p && p <= 7) || (66 <= p && p <= 72):
		return "acceptor-stem"
	case p >= 73:
		return "acceptor-tail" // includes the CCA tail when present
	case (10 <= p && p <= 13) || (22 <= p && p <= 25):
		return "D-stem"
	case 14 <= p && p <= 21:
		return "D-loop"
	case (27 <= p && p <= 31) || (39 <= p && p <= 43):
		return "anticodon-stem"
	case 32 <= p && p <= 38:
		return "anticodon-loop"
	case 44 <= p && p <= 46:
		return "variable-region"
	case p > 46 && p < 49:
		return "variable-arm"
	case (49 <= p && p <= 53) || (61 <= p && p <= 65):
		return "T-stem"
	case 54 <= p && p <= 60:
		return "T-loop"
	default:
		return "unknown"
	}
}

// ResidueRegion tags one residue with its structural region: extended
// arm labels are always variable-arm, otherwise the label's leading
// number wins and the structural index is the fallback.
func ResidueRegion(r *Residue, canonicalMax int) string {
	lbl := strings.TrimSpace(r.Label)
	if armLabel.MatchString(lbl) {
		return "variable-arm"
	}
	if m := leadingInt.FindStringSubmatch(lbl); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Region(n)
	}
	if r.StructIndex >= 1 && r.StructIndex <= canonicalMax {
		return Region(r.StructIndex)
	}
	return "unknown"
}
