package trnaspace

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// tsvColumns is the output contract consumed by reporting and
// visualization downstream; reindex reads the same columns back.
var tsvColumns = []string{
	"trna_id",
	"source_file",
	"seq_index",
	"sprinzl_index",
	"sprinzl_label",
	"residue",
	"sprinzl_ordinal",
	"sprinzl_continuous",
	"global_index",
	"region",
}

// WriteTSV writes one flat row per residue per molecule to filename.
// Unknown structural indices are written as -1; unset ordinals,
// coordinates and global indices as empty cells.
func WriteTSV(filename string, mols []*Molecule) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(tsvColumns); err != nil {
		return fmt.Errorf("failed to write the output header: %v", err)
	}

	for _, m := range mols {
		for _, r := range m.Residues {
			ordinal := ""
			if r.Ordinal > 0 {
				ordinal = strconv.Itoa(r.Ordinal)
			}
			continuous := ""
			if !math.IsNaN(r.Continuous) {
				continuous = strconv.FormatFloat(r.Continuous, 'f', -1, 64)
			}
			globalIndex := ""
			if r.GlobalIndex > 0 {
				globalIndex = strconv.Itoa(r.GlobalIndex)
			}

			row := []string{
				r.MoleculeID,
				r.SourceFile,
				strconv.Itoa(r.SeqIndex),
				strconv.Itoa(r.StructIndex),
				r.Label,
				r.Base,
				ordinal,
				continuous,
				globalIndex,
				r.Region,
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write the output: %v", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}

// ReadTSV reads a previously written coordinate table back into
// molecules, grouped by id in encounter order. Only the raw annotation
// columns are kept; derived coordinates are recomputed by reindexing.
func ReadTSV(filename string) ([]*Molecule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", filename, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse %s: empty file", filename)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"trna_id", "seq_index", "sprinzl_index", "sprinzl_label", "residue"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("failed to parse %s: missing column %q", filename, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var mols []*Molecule
	byID := make(map[string]*Molecule)
	for _, record := range records[1:] {
		id := field(record, "trna_id")
		if id == "" {
			continue
		}

		seqIndex, err := strconv.Atoi(field(record, "seq_index"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: bad seq_index %q for %s", filename, field(record, "seq_index"), id)
		}
		structIndex, err := strconv.Atoi(field(record, "sprinzl_index"))
		if err != nil {
			structIndex = UnknownIndex
		}

		m := byID[id]
		if m == nil {
			m = &Molecule{ID: id, Source: field(record, "source_file")}
			byID[id] = m
			mols = append(mols, m)
		}

		m.Residues = append(m.Residues, &Residue{
			MoleculeID:  id,
			SourceFile:  field(record, "source_file"),
			SeqIndex:    seqIndex,
			StructIndex: structIndex,
			Label:       strings.TrimSpace(field(record, "sprinzl_label")),
			Base:        field(record, "residue"),
			Continuous:  math.NaN(),
		})
	}

	return mols, nil
}
