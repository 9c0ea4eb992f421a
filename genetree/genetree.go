// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package genetree provides a representation
// of a rooted phylogenetic gene tree,
// as produced for an orthogroup
// by a gene tree reconciliation program.
//
// Each node in a tree is identified
// by an integer ID,
// with the root always at ID 0.
// Only terminal nodes are expected to be named
// (each name is a gene,
// prefixed by the taxon that bears it).
// Trees are read-only after parsing.
package genetree

import "slices"

// A Tree is a rooted phylogenetic gene tree.
type Tree struct {
	name  string
	nodes []node
}

type node struct {
	parent   int
	children []int
	taxon    string
	brLen    float64
}

// Name returns the name of the tree,
// usually the orthogroup ID.
func (t *Tree) Name() string {
	return t.name
}

// SetName sets the name of the tree.
func (t *Tree) SetName(name string) {
	t.name = name
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return 0
}

// Nodes returns the IDs of all nodes in the tree,
// in ascending order,
// so the root is always first,
// and any parent appears before its children.
func (t *Tree) Nodes() []int {
	ids := make([]int, len(t.nodes))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Parent returns the ID of the parent
// of the indicated node.
// It returns -1 for the root
// or an invalid node.
func (t *Tree) Parent(id int) int {
	if id < 0 || id >= len(t.nodes) {
		return -1
	}
	return t.nodes[id].parent
}

// Children returns the IDs of the children
// of the indicated node,
// in the order they were read.
func (t *Tree) Children(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	return slices.Clone(t.nodes[id].children)
}

// IsRoot returns true if the indicated node
// is the root of the tree.
func (t *Tree) IsRoot(id int) bool {
	if id < 0 || id >= len(t.nodes) {
		return false
	}
	return t.nodes[id].parent < 0
}

// IsTerm returns true if the indicated node
// is a terminal (i.e. a tip) of the tree.
func (t *Tree) IsTerm(id int) bool {
	if id < 0 || id >= len(t.nodes) {
		return false
	}
	return len(t.nodes[id].children) == 0
}

// Taxon returns the gene name
// of the indicated node.
// In a gene tree only terminals are expected
// to have non-empty names.
func (t *Tree) Taxon(id int) string {
	if id < 0 || id >= len(t.nodes) {
		return ""
	}
	return t.nodes[id].taxon
}

// LenBr returns the length of the branch
// that connects the indicated node
// with its parent.
// It returns 0 for the root,
// or if the source tree has no branch lengths.
func (t *Tree) LenBr(id int) float64 {
	if id < 0 || id >= len(t.nodes) {
		return 0
	}
	return t.nodes[id].brLen
}

// Terms returns the names of all terminals
// of the tree,
// in alphabetical order.
func (t *Tree) Terms() []string {
	var terms []string
	for _, n := range t.nodes {
		if len(n.children) > 0 {
			continue
		}
		if n.taxon == "" {
			continue
		}
		terms = append(terms, n.taxon)
	}
	slices.Sort(terms)
	return terms
}

// SubTerms returns the names of the terminals
// found in the subtree rooted
// at the indicated node,
// in tree traversal order.
func (t *Tree) SubTerms(id int) []string {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}

	var terms []string
	stack := []int{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := t.nodes[n]
		if len(nd.children) == 0 {
			if nd.taxon != "" {
				terms = append(terms, nd.taxon)
			}
			continue
		}
		for i := len(nd.children) - 1; i >= 0; i-- {
			stack = append(stack, nd.children[i])
		}
	}
	return terms
}

// AddNode adds a new node as a child
// of the indicated parent node
// and returns the ID of the new node.
// To create the root use -1 as the parent
// on an empty tree.
func (t *Tree) addNode(parent int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{parent: parent})
	if parent >= 0 {
		p := &t.nodes[parent]
		p.children = append(p.children, id)
	}
	return id
}
