// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package triplet

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// A Row is a single taxon triplet
// extracted from an orthogroup tree.
type Row struct {
	// Orthogroup ID of the source tree.
	OG string

	// Gene names of the triplet.
	Ingroup  string
	Sister   string
	Outgroup string

	// Grouping IDs assigned by Assemble:
	// rows share a SameSister ID
	// if and only if their sister names are equal,
	// and a SameSisterOG ID
	// if and only if both their sister
	// and outgroup names are equal.
	SameSister   int
	SameSisterOG int
}

// Assemble sorts the rows of an orthogroup table
// by (sister, outgroup, ingroup)
// and assigns the grouping IDs
// by first appearance in the sorted order.
// It is a pure function:
// the input slice is not modified.
// It returns nil on an empty input.
func Assemble(rows []Row) []Row {
	if len(rows) == 0 {
		return nil
	}

	rs := slices.Clone(rows)
	slices.SortFunc(rs, func(a, b Row) int {
		if c := cmp.Compare(a.Sister, b.Sister); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Outgroup, b.Outgroup); c != 0 {
			return c
		}
		return cmp.Compare(a.Ingroup, b.Ingroup)
	})

	sis := 0
	sisOG := 0
	for i := range rs {
		if i > 0 {
			if rs[i].Sister != rs[i-1].Sister {
				sis++
				sisOG++
			} else if rs[i].Outgroup != rs[i-1].Outgroup {
				sisOG++
			}
		}
		rs[i].SameSister = sis
		rs[i].SameSisterOG = sisOG
	}
	return rs
}

// A Table is a collection of assembled triplet rows
// from one or more orthogroup trees.
// Row positions restart from zero
// on each orthogroup table.
type Table struct {
	tables [][]Row
	n      int
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// Append adds the assembled rows
// of a single orthogroup tree
// (i.e. the result of Extract)
// at the end of the table.
// An empty row set is ignored.
func (tb *Table) Append(rows []Row) {
	if len(rows) == 0 {
		return
	}
	tb.tables = append(tb.tables, rows)
	tb.n += len(rows)
}

// Len returns the number of rows in the table.
func (tb *Table) Len() int {
	return tb.n
}

var header = []string{
	"row",
	"OG",
	"ingroup",
	"sister",
	"outgroup",
	"same_sister",
	"same_sister_and_og",
}

// TSV writes the table
// as tab-delimited values.
func (tb *Table) TSV(w io.Writer) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, rows := range tb.tables {
		for i, r := range rows {
			row := []string{
				strconv.Itoa(i),
				r.OG,
				r.Ingroup,
				r.Sister,
				r.Outgroup,
				strconv.Itoa(r.SameSister),
				strconv.Itoa(r.SameSisterOG),
			}
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("on orthogroup %q: %v", r.OG, err)
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
