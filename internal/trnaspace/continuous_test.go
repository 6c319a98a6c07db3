package trnaspace

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderFor builds the label order over the given molecules; most tests
// here only need it as the ordinal lookup
func orderFor(mols ...*Molecule) *Order {
	return BuildOrder(mols, 76)
}

func Test_Interpolate_internalRun(t *testing.T) {
	// two unlabeled residues between ordinals 5 and 6 must land at
	// 5+1/3 and 5+2/3
	m := testMolecule(
		"a",
		[]int{1, 2, 3, 4, 5, -1, -1, 6},
		[]string{"1", "2", "3", "4", "5", "", "", "6"},
	)
	order := orderFor(m)

	undefined := Interpolate(m, order, 76)
	assert.Equal(t, 0, undefined)

	assert.InDelta(t, 5.0, m.Residues[4].Continuous, 1e-12)
	assert.InDelta(t, 5.0+1.0/3.0, m.Residues[5].Continuous, 1e-12)
	assert.InDelta(t, 5.0+2.0/3.0, m.Residues[6].Continuous, 1e-12)
	assert.InDelta(t, 6.0, m.Residues[7].Continuous, 1e-12)
}

func Test_Interpolate_leadingRun(t *testing.T) {
	m := testMolecule(
		"a",
		[]int{-1, -1, 1, 2},
		[]string{"", "", "3", "4"},
	)
	order := orderFor(m)

	undefined := Interpolate(m, order, 76)
	assert.Equal(t, 0, undefined)

	// right ordinal is 1 ("3" is the first label in this order)
	right := float64(order.Ordinals["3"])
	assert.InDelta(t, right-2.0/3.0, m.Residues[0].Continuous, 1e-12)
	assert.InDelta(t, right-1.0/3.0, m.Residues[1].Continuous, 1e-12)
	assert.Less(t, m.Residues[0].Continuous, m.Residues[1].Continuous)
	assert.Less(t, m.Residues[1].Continuous, right)
}

func Test_Interpolate_trailingRun(t *testing.T) {
	m := testMolecule(
		"a",
		[]int{1, 2, -1, -1, -1},
		[]string{"75", "76", "", "", ""},
	)
	order := orderFor(m)

	undefined := Interpolate(m, order, 76)
	assert.Equal(t, 0, undefined)

	left := float64(order.Ordinals["76"])
	assert.InDelta(t, left+1.0/4.0, m.Residues[2].Continuous, 1e-12)
	assert.InDelta(t, left+2.0/4.0, m.Residues[3].Continuous, 1e-12)
	assert.InDelta(t, left+3.0/4.0, m.Residues[4].Continuous, 1e-12)
}

func Test_Interpolate_fullyUnlabeled(t *testing.T) {
	m := testMolecule("a", []int{-1, -1, -1}, []string{"", "", ""})
	order := orderFor(m)

	undefined := Interpolate(m, order, 76)
	assert.Equal(t, 3, undefined)
	for _, r := range m.Residues {
		assert.True(t, math.IsNaN(r.Continuous), "seq %d should stay undefined", r.SeqIndex)
	}
}

// coordinates must strictly increase in sequence order for any gap
// pattern over an increasing ordinal backbone
func Test_Interpolate_monotonicProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 10 + rng.Intn(70)

		// walk a strictly increasing label sequence with random gaps
		var indices []int
		var labels []string
		next := 1 + rng.Intn(3)
		for i := 0; i < n; i++ {
			if rng.Float64() < 0.35 || next > 76 {
				indices = append(indices, UnknownIndex)
				labels = append(labels, "")
				continue
			}
			indices = append(indices, next)
			labels = append(labels, strconv.Itoa(next))
			next += 1 + rng.Intn(3)
		}

		m := testMolecule("a", indices, labels)
		order := orderFor(m)
		if order.Len() == 0 {
			continue
		}
		Interpolate(m, order, 76)

		require.NoError(t, CheckMonotonic(m), "trial %d", trial)
	}
}

func Test_CheckMonotonic(t *testing.T) {
	m := testMolecule("a", []int{1, 2}, []string{"1", "2"})
	m.Residues[0].Continuous = 2
	m.Residues[1].Continuous = 1

	if err := CheckMonotonic(m); err == nil {
		t.Error("CheckMonotonic() = nil for a decreasing sequence, want error")
	}

	m.Residues[0].Continuous = 1
	m.Residues[1].Continuous = 2
	if err := CheckMonotonic(m); err != nil {
		t.Errorf("CheckMonotonic() = %v, want nil", err)
	}
}
