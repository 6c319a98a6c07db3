package trnaspace

import "sort"

// Order is the batch-scoped ranking of every distinct structural label
// seen across the molecules being unified. It is built once per batch
// (or per partition) and read-only afterwards: the interpolator and
// the index assignment receive it by argument, never as ambient state.
type Order struct {
	// Labels holds the distinct labels in sorted order; Labels[i] has
	// ordinal i+1
	Labels []string

	// Ordinals maps a label to its dense ordinal in 1..K
	Ordinals map[string]int
}

// BuildOrder collects the distinct non-empty preferred labels across
// all molecules, sorts them with the label comparator, and assigns
// dense ordinals 1..K. The sort is stable and exact-key ties fall back
// to the raw label string, so the assignment is bit-for-bit
// reproducible across runs. Variable arm labels outside the canonical
// traversal are logged as annotation anomalies.
func BuildOrder(mols []*Molecule, canonicalMax int) *Order {
	set := make(map[string]bool)
	for _, m := range mols {
		for _, r := range m.Residues {
			if lbl := r.PreferredLabel(canonicalMax); lbl != "" {
				set[lbl] = true
			}
		}
	}

	labels := make([]string, 0, len(set))
	for lbl := range set {
		labels = append(labels, lbl)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		a, b := ParseLabel(labels[i]), ParseLabel(labels[j])
		if c := a.Compare(b); c != 0 {
			return c < 0
		}
		return labels[i] < labels[j]
	})

	ordinals := make(map[string]int, len(labels))
	for i, lbl := range labels {
		ordinals[lbl] = i + 1
		if anomalousArm(lbl) {
			stderr.Printf("warning: variable arm label %q outside the canonical traversal, ranked after it", lbl)
		}
	}

	return &Order{Labels: labels, Ordinals: ordinals}
}

// Len returns K, the number of distinct labels in the order.
func (o *Order) Len() int { return len(o.Labels) }
