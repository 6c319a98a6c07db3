package trnaspace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel base buckets for labels without a real structural position.
// unknownBase holds unparseable labels, emptyBase holds missing ones;
// both sort after every canonical position, empty last of all.
const (
	unknownBase = 1<<30 - 1
	emptyBase   = 1 << 30
)

// variableArmEntry is the canonical position that anchors the extended
// variable arm: e-labels sort as one block immediately after this base
// and before the next numeric position.
const variableArmEntry = 46

// Tiers within one base bucket: the plain position sorts before its
// suffixed/dotted insertions, which sort before the reserved block.
const (
	tierPlain = iota
	tierInsertion
	tierReserved
)

// variableArmOrder is the 5'→3' biological traversal of the extended
// variable arm: up the ascending strand (e11..e17), across the loop
// apex (e1..e5), down the descending strand (e27..e21). This is domain
// knowledge from the Sprinzl numbering scheme and cannot be derived
// from the label text.
var variableArmOrder = []string{
	"e11", "e12", "e13", "e14", "e15", "e16", "e17",
	"e1", "e2", "e3", "e4", "e5",
	"e27", "e26", "e25", "e24", "e23", "e22", "e21",
}

var variableArmRank = func() map[string]int {
	ranks := make(map[string]int, len(variableArmOrder))
	for i, lbl := range variableArmOrder {
		ranks[lbl] = i
	}
	return ranks
}()

var (
	armLabel    = regexp.MustCompile(`^e(\d+)$`)
	alnumLabel  = regexp.MustCompile(`^(\d+)([A-Za-z]+)?$`)
	dottedLabel = regexp.MustCompile(`^(\d+)\.(\d+)$`)
	leadingInt  = regexp.MustCompile(`^(\d+)`)
)

// LabelKey is the comparable form of a structural label. Every parse
// branch fills the same three fields with the same types (ints plus a
// zero-padded or uppercased string) so comparisons stay homogeneous
// across branches.
type LabelKey struct {
	base     int
	tier     int
	suborder string
}

// ParseLabel turns a raw structural label into its sort key. It is a
// pure function and never fails: malformed labels land in a reserved
// bucket near the end so one bad annotation cannot abort a batch.
func ParseLabel(label string) LabelKey {
	s := strings.TrimSpace(label)
	if s == "" || s == "nan" {
		return LabelKey{base: emptyBase, tier: tierReserved}
	}

	if m := armLabel.FindStringSubmatch(s); m != nil {
		rank, known := variableArmRank[s]
		if !known {
			// Outside the canonical arm traversal (e6-e10, e18-e20, or
			// past e27): rank deterministically after the known block.
			n, _ := strconv.Atoi(m[1])
			rank = len(variableArmOrder) + n
		}
		return LabelKey{base: variableArmEntry, tier: tierReserved, suborder: fmt.Sprintf("%03d", rank)}
	}

	if m := dottedLabel.FindStringSubmatch(s); m != nil {
		base, _ := strconv.Atoi(m[1])
		frac, _ := strconv.Atoi(m[2])
		if frac == 0 {
			// "N.0" is just the plain position N
			return LabelKey{base: base, tier: tierPlain}
		}
		return LabelKey{base: base, tier: tierInsertion, suborder: fmt.Sprintf("%04d", frac)}
	}

	if m := alnumLabel.FindStringSubmatch(s); m != nil {
		base, _ := strconv.Atoi(m[1])
		if m[2] == "" {
			return LabelKey{base: base, tier: tierPlain}
		}
		return LabelKey{base: base, tier: tierInsertion, suborder: strings.ToUpper(m[2])}
	}

	return LabelKey{base: unknownBase, tier: tierReserved, suborder: s}
}

// Compare orders two parsed labels, returning -1, 0 or +1.
func (k LabelKey) Compare(o LabelKey) int {
	switch {
	case k.base != o.base:
		if k.base < o.base {
			return -1
		}
		return 1
	case k.tier != o.tier:
		if k.tier < o.tier {
			return -1
		}
		return 1
	default:
		return strings.Compare(k.suborder, o.suborder)
	}
}

// LessLabel reports whether label a sorts before label b in the global
// label order.
func LessLabel(a, b string) bool {
	return ParseLabel(a).Compare(ParseLabel(b)) < 0
}

// anomalousArm reports whether s is a variable arm label that is not
// part of the canonical traversal. Such labels still get a
// deterministic position but should be surfaced as annotation
// anomalies by the caller.
func anomalousArm(s string) bool {
	s = strings.TrimSpace(s)
	if !armLabel.MatchString(s) {
		return false
	}
	_, known := variableArmRank[s]
	return !known
}
