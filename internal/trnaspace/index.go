package trnaspace

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Assignment is the batch-wide mapping from rounded continuous
// coordinates to dense global indices 1..K.
type Assignment struct {
	// Precision is the number of decimal places coordinates were
	// rounded to before deduplication
	Precision int

	keys  []int64       // sorted quantized coordinates
	index map[int64]int // quantized coordinate -> 1..K
}

// quantize rounds v half away from zero at p decimal places and
// returns it as an integer key, so float jitter below the precision
// can never split one coordinate into two bins.
func quantize(v float64, p int) int64 {
	return int64(math.Round(v * math.Pow10(p)))
}

// AssignGlobalIndex rounds every defined coordinate across the batch,
// dedups the values into one sorted set, assigns each a dense ordinal
// 1..K, and stamps every residue with the ordinal of its bin. Residues
// without a coordinate keep GlobalIndex 0.
func AssignGlobalIndex(mols []*Molecule, precision int) *Assignment {
	seen := make(map[int64]bool)
	for _, m := range mols {
		for _, r := range m.Residues {
			if !math.IsNaN(r.Continuous) {
				seen[quantize(r.Continuous, precision)] = true
			}
		}
	}

	keys := make([]int64, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	index := make(map[int64]int, len(keys))
	for i, k := range keys {
		index[k] = i + 1
	}

	for _, m := range mols {
		for _, r := range m.Residues {
			if math.IsNaN(r.Continuous) {
				r.GlobalIndex = 0
				continue
			}
			r.GlobalIndex = index[quantize(r.Continuous, precision)]
		}
	}

	return &Assignment{Precision: precision, keys: keys, index: index}
}

// Positions returns K, the number of distinct shared coordinates.
func (a *Assignment) Positions() int { return len(a.keys) }

// Collision is one global index claimed by more than one distinct
// structural label.
type Collision struct {
	GlobalIndex int

	// Labels are the distinct labels sharing the index, sorted
	Labels []string

	// Examples maps each label to up to three molecule ids carrying it
	// at this index, for diagnosis
	Examples map[string][]string
}

// CollisionError is the fatal validation failure: the shared axis has
// conflated distinct structural positions, and downstream
// cross-molecule comparisons would silently be wrong.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "global index collisions detected (%d):\n", len(e.Collisions))
	for _, c := range e.Collisions {
		fmt.Fprintf(&b, "  global_index %d:\n", c.GlobalIndex)
		for _, lbl := range c.Labels {
			fmt.Fprintf(&b, "    - position %q (examples: %s)\n", lbl, strings.Join(c.Examples[lbl], ", "))
		}
	}
	b.WriteString("the coordinate system cannot align every structure in this batch: " +
		"filter more molecule classes, fix the label ordering, or partition the batch")
	return b.String()
}

// ValidateNoCollisions groups all residues by global index and fails
// when any group spans more than one distinct non-empty preferred
// label. Every colliding group is reported, not just the first.
func ValidateNoCollisions(mols []*Molecule, canonicalMax int) error {
	byIndex := make(map[int]map[string][]string) // index -> label -> example molecule ids
	for _, m := range mols {
		for _, r := range m.Residues {
			if r.GlobalIndex == 0 {
				continue
			}
			lbl := r.PreferredLabel(canonicalMax)
			if lbl == "" {
				continue
			}

			group := byIndex[r.GlobalIndex]
			if group == nil {
				group = make(map[string][]string)
				byIndex[r.GlobalIndex] = group
			}
			examples := group[lbl]
			if len(examples) < 3 && !containsString(examples, m.ID) {
				group[lbl] = append(examples, m.ID)
			}
		}
	}

	var collisions []Collision
	for idx, group := range byIndex {
		if len(group) < 2 {
			continue
		}
		labels := make([]string, 0, len(group))
		for lbl := range group {
			labels = append(labels, lbl)
		}
		sort.Strings(labels)
		collisions = append(collisions, Collision{GlobalIndex: idx, Labels: labels, Examples: group})
	}
	if len(collisions) == 0 {
		return nil
	}

	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].GlobalIndex < collisions[j].GlobalIndex
	})
	return &CollisionError{Collisions: collisions}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
