// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package triplet extracts taxon triplets
// (an ingroup tip,
// its closest sister-clade tip,
// and its closest outgroup-clade tip)
// from a rooted orthogroup gene tree.
//
// Tips are classified into roles
// by gene name prefixes.
// For each ingroup tip,
// the tree is walked toward the root,
// scanning the sibling subtrees at each step,
// first for the closest sister tips,
// and then for the closest outgroup tips.
package triplet

import (
	"strings"

	"github.com/js-arias/ogtrio/genetree"
)

// A Role is the classification of a tree tip
// for the triplet search.
type Role int

// Valid tip roles.
const (
	Unclassified Role = iota
	Ingroup
	Sister
	Outgroup
)

func (r Role) String() string {
	switch r {
	case Ingroup:
		return "ingroup"
	case Sister:
		return "sister"
	case Outgroup:
		return "outgroup"
	}
	return "unclassified"
}

// Roles contains the gene name prefixes
// that assign a role to a tree tip.
type Roles struct {
	Ingroup  string
	Sister   string
	Outgroup string
}

// Classify returns the role of a gene name.
// If the name matches more than one prefix,
// the first match
// in ingroup-sister-outgroup order
// wins.
func (r Roles) Classify(name string) Role {
	switch {
	case r.Ingroup != "" && strings.HasPrefix(name, r.Ingroup):
		return Ingroup
	case r.Sister != "" && strings.HasPrefix(name, r.Sister):
		return Sister
	case r.Outgroup != "" && strings.HasPrefix(name, r.Outgroup):
		return Outgroup
	}
	return Unclassified
}

// A Policy defines how the sister search reacts
// to an outgroup tip found
// before any sister tip.
type Policy int

const (
	// Strict aborts the sister search
	// when an outgroup tip is found
	// in a sibling subtree
	// before any sister tip:
	// the whole ascent step is invalidated,
	// even if other sibling subtrees
	// at the same step contain sisters.
	Strict Policy = iota

	// Lenient ignores outgroup tips
	// during the sister search.
	Lenient
)

// Extract returns the triplet table
// for a single orthogroup tree,
// sorted by (sister, outgroup, ingroup)
// and with the grouping IDs assigned.
// A nil result means that the tree
// contains no valid triplet;
// that is a normal outcome,
// not an error.
//
// If relabel is true,
// the first underscore of each emitted name
// is removed
// (e.g. "A_in_gene1" becomes "Ain_gene1");
// the tree itself is never modified.
func Extract(og string, t *genetree.Tree, r Roles, relabel bool, p Policy) []Row {
	return Assemble(Collect(og, t, r, relabel, p))
}

// Collect returns the triplet rows
// of an orthogroup tree
// in discovery order,
// without grouping IDs.
// It returns nil if the tree
// contains no valid triplet;
// a tree with no ingroup tips,
// or an empty role prefix,
// always yields nil.
func Collect(og string, t *genetree.Tree, r Roles, relabel bool, p Policy) []Row {
	if r.Ingroup == "" || r.Sister == "" || r.Outgroup == "" {
		return nil
	}

	var rows []Row
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		name := t.Taxon(id)
		if !strings.HasPrefix(name, r.Ingroup) {
			continue
		}

		sisters, trace := sisterSearch(t, id, r, p)
		if len(sisters) == 0 {
			continue
		}
		outgroups := outgroupSearch(t, trace, r)
		if len(outgroups) == 0 {
			continue
		}

		for _, sis := range sisters {
			for _, out := range outgroups {
				in, s, o := name, sis, out
				if relabel {
					in = strings.Replace(in, "_", "", 1)
					s = strings.Replace(s, "_", "", 1)
					o = strings.Replace(o, "_", "", 1)
				}
				rows = append(rows, Row{
					OG:       og,
					Ingroup:  in,
					Sister:   s,
					Outgroup: o,
				})
			}
		}
	}
	return rows
}

// SisterSearch ascends from the tip
// at the indicated node,
// scanning the sibling subtrees
// at each ascent step,
// and collecting the sister tips
// of the first step that yields any.
// It returns the collected sisters
// and the node at which the ascent stopped,
// i.e. the starting point
// for the outgroup search.
//
// Under the Strict policy,
// an outgroup tip found in a sibling subtree
// before any sister
// invalidates the whole step
// and aborts the search.
func sisterSearch(t *genetree.Tree, id int, r Roles, p Policy) ([]string, int) {
	cur := id
	for !t.IsRoot(cur) {
		var sisters []string
		tooSoon := false
		for _, sib := range siblings(t, cur) {
			tips := t.SubTerms(sib)
			if p == Strict && hasPrefix(tips, r.Outgroup) {
				tooSoon = true
				break
			}
			sisters = append(sisters, withPrefix(tips, r.Sister)...)
		}
		cur = t.Parent(cur)
		if tooSoon {
			return nil, cur
		}
		if len(sisters) > 0 {
			return sisters, cur
		}
	}
	return nil, cur
}

// OutgroupSearch ascends from the indicated node,
// the one at which the sister search stopped,
// and collects the outgroup tips
// of the first ascent step that yields any.
// The sibling subtrees scanned
// during the sister search
// are never rescanned.
func outgroupSearch(t *genetree.Tree, from int, r Roles) []string {
	cur := from
	for !t.IsRoot(cur) {
		var outgroups []string
		for _, sib := range siblings(t, cur) {
			outgroups = append(outgroups, withPrefix(t.SubTerms(sib), r.Outgroup)...)
		}
		cur = t.Parent(cur)
		if len(outgroups) > 0 {
			return outgroups
		}
	}
	return nil
}

// Siblings returns the IDs of the children
// of the parent of the indicated node,
// excluding the node itself.
func siblings(t *genetree.Tree, id int) []int {
	p := t.Parent(id)
	if p < 0 {
		return nil
	}
	var sibs []int
	for _, c := range t.Children(p) {
		if c != id {
			sibs = append(sibs, c)
		}
	}
	return sibs
}

func withPrefix(names []string, prefix string) []string {
	var match []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			match = append(match, n)
		}
	}
	return match
}

func hasPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}
