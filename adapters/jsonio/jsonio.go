// Package jsonio is a minimal reference Reader/Writer pair (spec §6): JSON
// rather than the original spreadsheet format, since workbook I/O is
// explicitly out of core scope. It is intentionally thin, not a full
// tabular-I/O subsystem; no package in this module imports it (the
// solve tests build tables in-process and cmd/planner decodes its input
// through run.CLI).
package jsonio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nextmv-community/network-planner/tables"
)

// document is the on-disk shape: a single JSON object with one key per
// table name, each holding a list of flat row objects — the JSON analogue
// of one worksheet per table in the original Excel workbook.
type document map[string][]map[string]string

// Reader reads a tables.Set from a single JSON file at Path.
type Reader struct {
	Path string
}

func (r Reader) Read(ctx context.Context) (tables.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("jsonio: opening %s: %w", r.Path, err)
	}
	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonio: decoding %s: %w", r.Path, err)
	}

	set := make(tables.Set, len(doc))
	for name, rows := range doc {
		t := tables.Table{Name: name}
		seen := map[string]bool{}
		for _, row := range rows {
			r := make(tables.Row, len(row))
			for k, v := range row {
				r[k] = v
				if !seen[k] {
					seen[k] = true
					t.Columns = append(t.Columns, k)
				}
			}
			t.Rows = append(t.Rows, r)
		}
		set[name] = t
	}
	return set, nil
}

// Writer writes a sheets map to a single JSON file at Path.
type Writer struct {
	Path string
}

func (w Writer) Write(ctx context.Context, sheets map[string]tables.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := make(document, len(sheets))
	for name, t := range sheets {
		rows := make([]map[string]string, 0, len(t.Rows))
		for _, r := range t.Rows {
			row := make(map[string]string, len(r))
			for k, v := range r {
				row[k] = v
			}
			rows = append(rows, row)
		}
		doc[name] = rows
	}

	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("jsonio: creating %s: %w", w.Path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("jsonio: encoding %s: %w", w.Path, err)
	}
	return nil
}
