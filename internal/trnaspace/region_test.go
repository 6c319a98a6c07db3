package trnaspace

import "testing"

func Test_Region(t *testing.T) {
	tests := []struct {
		pos  int
		want string
	}{
		{1, "acceptor-stem"},
		{7, "acceptor-stem"},
		{8, "unknown"},
		{10, "D-stem"},
		{14, "D-loop"},
		{21, "D-loop"},
		{22, "D-stem"},
		{26, "unknown"},
		{27, "anticodon-stem"},
		{34, "anticodon-loop"},
		{43, "anticodon-stem"},
		{44, "variable-region"},
		{46, "variable-region"},
		{47, "variable-arm"},
		{48, "variable-arm"},
		{49, "T-stem"},
		{54, "T-loop"},
		{60, "T-loop"},
		{65, "T-stem"},
		{66, "acceptor-stem"},
		{72, "acceptor-stem"},
		{73, "acceptor-tail"},
		{76, "acceptor-tail"},
		{-1, "unknown"},
	}

	for _, tt := range tests {
		if got := Region(tt.pos); got != tt.want {
			t.Errorf("Region(%d) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func Test_ResidueRegion(t *testing.T) {
	tests := []struct {
		name string
		r    Residue
		want string
	}{
		{"extended arm label", Residue{Label: "e5", StructIndex: 12}, "variable-arm"},
		{"label leading number wins", Residue{Label: "20A", StructIndex: 34}, "D-loop"},
		{"index fallback", Residue{Label: "", StructIndex: 34}, "anticodon-loop"},
		{"out of range index", Residue{Label: "", StructIndex: 90}, "unknown"},
		{"nothing known", Residue{Label: "", StructIndex: UnknownIndex}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResidueRegion(&tt.r, 76); got != tt.want {
				t.Errorf("ResidueRegion() = %q, want %q", got, tt.want)
			}
		})
	}
}
