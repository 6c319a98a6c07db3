package trnaspace

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lkwhite/tRNAs-in-space/config"
	"golang.org/x/sync/errgroup"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Summary reports what one unification run produced for one partition.
type Summary struct {
	// RunID identifies this run in logs and downstream audits
	RunID string `json:"runId"`

	// Partition names the coordinate space ("" for a unified run)
	Partition string `json:"partition"`

	// Output is the coordinate table written for this partition
	Output string `json:"output"`

	Molecules       int `json:"molecules"`
	Excluded        int `json:"excluded"`
	Rows            int `json:"rows"`
	UnresolvedRows  int `json:"unresolvedRows"`
	UndefinedCoords int `json:"undefinedCoords"`
	UniqueLabels    int `json:"uniqueLabels"`
	GlobalPositions int `json:"globalPositions"`
}

// Batch is the set of molecules unified together, after exclusion
// filtering, plus the batch-level diagnostics accumulated while
// loading them.
type Batch struct {
	Molecules []*Molecule

	// Excluded molecules dropped by the identity filter
	Excluded int

	// Skipped annotation files that could not be parsed
	Skipped int

	// UnresolvedRows whose structural index survived neither
	// annotation nor two-pass inference
	UnresolvedRows int
}

// LoadAnnotations reads every annotation file under dir into a Batch:
// parse and gap-fill run per molecule with bounded parallel fan-out
// (no shared mutable state), then the exclusion filter drops
// incompatible molecules before any batch-wide step sees them.
func LoadAnnotations(dir string, conf *config.Config) (*Batch, error) {
	paths, err := FindAnnotations(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("failed to find any %s files under %s", enrichedSuffix, dir)
	}

	mols := make([]*Molecule, len(paths))
	unresolved := make([]int, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			mol, err := ReadEnrichedJSON(path)
			if err != nil {
				// a malformed drawing must not abort the whole batch
				stderr.Printf("warning: skipping %s: %v", path, err)
				return nil
			}
			unresolved[i] = FillStructIndices(mol.Residues, conf.CanonicalMax)
			mols[i] = mol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &Batch{}
	exclude := conf.Exclusions()
	for i, mol := range mols {
		if mol == nil {
			batch.Skipped++
			continue
		}
		if Excluded(mol.ID, exclude) {
			stderr.Printf("excluding incompatible molecule: %s", mol.ID)
			batch.Excluded++
			continue
		}
		batch.Molecules = append(batch.Molecules, mol)
		batch.UnresolvedRows += unresolved[i]
	}

	stderr.Printf("annotation files parsed: %d | skipped: %d | excluded: %d",
		len(paths), batch.Skipped, batch.Excluded)
	return batch, nil
}

// partitionKey identifies one independent coordinate space within a
// run. Each partition gets its own label order and global index.
type partitionKey struct {
	structuralType StructuralType
	offset         int
	hasOffset      bool
}

// suffix is appended to the output filename, e.g. "_type1" or
// "_offset+1_type2". A unified run has no suffix.
func (k partitionKey) suffix() string {
	var parts []string
	if k.hasOffset {
		if k.offset > 0 {
			parts = append(parts, fmt.Sprintf("offset+%d", k.offset))
		} else {
			parts = append(parts, fmt.Sprintf("offset%d", k.offset))
		}
	}
	if k.structuralType != TypeExcluded {
		parts = append(parts, k.structuralType.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return "_" + strings.Join(parts, "_")
}

// partition splits a batch's molecules into independent coordinate
// spaces per the configured mode. Molecules whose labeling offset
// cannot be determined are dropped from offset partitioning with a
// diagnostic.
func partition(batch *Batch, conf *config.Config) map[partitionKey][]*Molecule {
	groups := make(map[partitionKey][]*Molecule)
	exclude := conf.Exclusions()

	mode := conf.Partition
	if conf.OnlyType != "" {
		// restricting to one structural type implies type partitioning
		mode = config.PartitionType
	}

	switch mode {
	case config.PartitionType:
		for _, m := range batch.Molecules {
			t := Classify(m.ID, exclude)
			if conf.OnlyType != "" && t.String() != conf.OnlyType {
				continue
			}
			key := partitionKey{structuralType: t}
			groups[key] = append(groups[key], m)
		}

	case config.PartitionOffsetType:
		undetermined := 0
		for _, m := range batch.Molecules {
			offset, ok := LabelingOffset(m)
			if !ok {
				stderr.Printf("undetermined labeling offset, dropping from partitioning: %s", m.ID)
				undetermined++
				continue
			}
			key := partitionKey{
				structuralType: Classify(m.ID, exclude),
				offset:         offset,
				hasOffset:      true,
			}
			groups[key] = append(groups[key], m)
		}
		if undetermined > 0 {
			stderr.Printf("molecules with undetermined offset: %d", undetermined)
		}

	default:
		// one shared space for every surviving molecule; partitioned
		// runs avoid the cross-type collisions this can produce
		stderr.Printf("using a unified coordinate system; consider --partition type for mixed batches")
		groups[partitionKey{}] = batch.Molecules
	}

	return groups
}

// warnUnexpectedArmLabels reports extended variable arm labels found
// in molecules whose structural class should never contain them; the
// labels still get a deterministic position, but the annotation is
// suspect.
func warnUnexpectedArmLabels(mols []*Molecule) {
	for _, m := range mols {
		for _, r := range m.Residues {
			if lbl := strings.TrimSpace(r.Label); armLabel.MatchString(lbl) {
				stderr.Printf("warning: extended arm label %q in type1 molecule %s", lbl, m.ID)
			}
		}
	}
}

// Unify runs the whole pipeline over a directory of enriched
// annotations and writes one coordinate table per partition. The first
// global index collision aborts the run unless collisions are
// explicitly allowed.
func Unify(inDir, outPath string, conf *config.Config) ([]Summary, error) {
	switch conf.OnlyType {
	case "", TypeI.String(), TypeII.String():
	default:
		return nil, fmt.Errorf("failed to parse type %q: must be %s or %s", conf.OnlyType, TypeI, TypeII)
	}

	batch, err := LoadAnnotations(inDir, conf)
	if err != nil {
		return nil, err
	}
	if len(batch.Molecules) == 0 {
		stderr.Printf("no molecules survive exclusion; nothing to unify")
		return nil, nil
	}

	groups := partition(batch, conf)
	if len(groups) == 0 {
		stderr.Printf("no molecules match the requested partitioning; nothing to unify")
		return nil, nil
	}

	keys := make([]partitionKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].suffix() < keys[j].suffix() })

	base := strings.TrimSuffix(outPath, ".tsv")
	var summaries []Summary
	for _, key := range keys {
		mols := groups[key]
		if len(mols) == 0 {
			continue
		}
		if key.structuralType == TypeI {
			warnUnexpectedArmLabels(mols)
		}

		out := base + key.suffix() + ".tsv"
		summary, err := unifyPartition(mols, key.suffix(), out, conf)
		if err != nil {
			return summaries, err
		}
		summary.Excluded = batch.Excluded
		summary.UnresolvedRows = batch.UnresolvedRows
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// unifyPartition runs ordering, interpolation, index assignment,
// validation and region tagging over one partition's molecules, then
// writes its coordinate table.
func unifyPartition(mols []*Molecule, name, outFile string, conf *config.Config) (Summary, error) {
	order := BuildOrder(mols, conf.CanonicalMax)
	if order.Len() == 0 {
		stderr.Printf("no structural labels in partition %q; skipping", name)
		return Summary{RunID: uuid.NewString(), Partition: name}, nil
	}

	// per-molecule interpolation is independent: fan out, join before
	// the batch-wide index assignment
	undefined := make([]int, len(mols))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range mols {
		i, m := i, m
		g.Go(func() error {
			undefined[i] = Interpolate(m, order, conf.CanonicalMax)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	undefinedTotal := 0
	for i, m := range mols {
		undefinedTotal += undefined[i]
		if undefined[i] == len(m.Residues) {
			stderr.Printf("warning: no labeled residues in %s; it contributes nothing to the shared index", m.ID)
		}
		if err := CheckMonotonic(m); err != nil {
			stderr.Printf("warning: %v", err)
		}
	}

	assignment := AssignGlobalIndex(mols, conf.Precision)

	if conf.AllowCollisions {
		stderr.Printf("collision validation BYPASSED for partition %q (--allow-collisions)", name)
	} else if err := ValidateNoCollisions(mols, conf.CanonicalMax); err != nil {
		return Summary{}, err
	}

	rows := 0
	for _, m := range mols {
		for _, r := range m.Residues {
			r.Region = ResidueRegion(r, conf.CanonicalMax)
			rows++
		}
	}

	if err := WriteTSV(outFile, mols); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		RunID:           uuid.NewString(),
		Partition:       name,
		Output:          outFile,
		Molecules:       len(mols),
		Rows:            rows,
		UndefinedCoords: undefinedTotal,
		UniqueLabels:    order.Len(),
		GlobalPositions: assignment.Positions(),
	}

	stderr.Printf("[ok] wrote %s", outFile)
	stderr.Printf("  rows: %d | molecules: %d", summary.Rows, summary.Molecules)
	stderr.Printf("  unique labeled bins: %d", summary.UniqueLabels)
	stderr.Printf("  unique global positions (K): %d | rounding=%d d.p.", summary.GlobalPositions, conf.Precision)
	return summary, nil
}

// Reindex recomputes ordinals, continuous coordinates, global indices
// and regions for an existing coordinate table, e.g. after the label
// ordering changed.
func Reindex(inPath, outPath string, conf *config.Config) (Summary, error) {
	mols, err := ReadTSV(inPath)
	if err != nil {
		return Summary{}, err
	}
	if len(mols) == 0 {
		stderr.Printf("no molecules in %s; nothing to reindex", inPath)
		return Summary{RunID: uuid.NewString()}, nil
	}

	for _, m := range mols {
		m.resetCoordinates()
	}

	return unifyPartition(mols, "reindex", outPath, conf)
}
