package trnaspace

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// enrichedSuffix is the filename suffix the external annotator gives
// its per-molecule drawing files.
const enrichedSuffix = ".enriched.json"

// enrichedDrawing mirrors the slice of an annotator drawing file the
// pipeline needs: the first molecule's per-residue entries with their
// template (canonical numbering) metadata. Everything else in the
// drawing is opaque to the core.
type enrichedDrawing struct {
	RNAComplexes []struct {
		RNAMolecules []struct {
			Sequence []drawingResidue `json:"sequence"`
		} `json:"rnaMolecules"`
	} `json:"rnaComplexes"`
}

type drawingResidue struct {
	ResidueName  string       `json:"residueName"`
	ResidueIndex int          `json:"residueIndex"`
	Info         *drawingInfo `json:"info"`
}

type drawingInfo struct {
	// raw because the annotator sometimes emits null or non-integer
	// values here; anything that is not an integer becomes the
	// unknown sentinel rather than failing the file
	TemplateResidueIndex   json.RawMessage `json:"templateResidueIndex"`
	TemplateNumberingLabel string          `json:"templateNumberingLabel"`
}

// templateSuffix strips "-B_His" style template suffixes appended by
// the annotator to the molecule name.
var templateSuffix = regexp.MustCompile(`^(.*?)-[A-Z]_[A-Za-z0-9]+$`)

// MoleculeIDFromPath infers the molecule identity from an annotation
// file path.
func MoleculeIDFromPath(path string) string {
	name := filepath.Base(path)
	for _, suffix := range []string{enrichedSuffix, ".json"} {
		if strings.HasSuffix(name, suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	if m := templateSuffix.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// ReadEnrichedJSON reads one annotator drawing file into a Molecule,
// skipping the 5'/3' pseudo-residues the annotator adds around the
// sequence.
func ReadEnrichedJSON(path string) (*Molecule, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %v", err)
	}

	var drawing enrichedDrawing
	if err := json.Unmarshal(dat, &drawing); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	if len(drawing.RNAComplexes) < 1 || len(drawing.RNAComplexes[0].RNAMolecules) < 1 {
		return nil, fmt.Errorf("failed to parse %s: no molecule in drawing", path)
	}

	id := MoleculeIDFromPath(path)
	source := filepath.Base(path)

	mol := &Molecule{ID: id, Source: source}
	for _, s := range drawing.RNAComplexes[0].RNAMolecules[0].Sequence {
		if s.ResidueName == "5'" || s.ResidueName == "3'" {
			continue
		}

		structIndex := UnknownIndex
		label := ""
		if s.Info != nil {
			if v, err := strconv.Atoi(strings.TrimSpace(string(s.Info.TemplateResidueIndex))); err == nil {
				structIndex = v
			}
			label = strings.TrimSpace(s.Info.TemplateNumberingLabel)
		}

		mol.Residues = append(mol.Residues, &Residue{
			MoleculeID:  id,
			SourceFile:  source,
			SeqIndex:    s.ResidueIndex,
			StructIndex: structIndex,
			Label:       label,
			Base:        s.ResidueName,
			Continuous:  math.NaN(),
		})
	}

	if len(mol.Residues) == 0 {
		return nil, fmt.Errorf("failed to parse %s: no residues in drawing", path)
	}

	return mol, nil
}

// FindAnnotations returns the sorted paths of every annotator drawing
// file under dir, searched recursively.
func FindAnnotations(dir string) (paths []string, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, enrichedSuffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for annotations: %v", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
