// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package genetree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Newick reads the first tree
// found on a newick (i.e. parenthetical) file
// and returns it with the given name.
//
// Labels are expected for terminals only;
// internal node labels (e.g. support values)
// are read and stored but otherwise ignored.
// Branch lengths are optional
// and stored as given.
// Square bracket comments are skipped.
func Newick(r io.Reader, name string) (*Tree, error) {
	br := bufio.NewReader(r)

	t := &Tree{name: name}
	if err := skipSpaces(br); err != nil {
		return nil, fmt.Errorf("newick: tree %q: empty input", name)
	}
	if err := readNode(br, t, -1); err != nil {
		return nil, fmt.Errorf("newick: tree %q: %v", name, err)
	}

	if err := skipSpaces(br); err != nil {
		return nil, fmt.Errorf("newick: tree %q: expecting %q", name, ";")
	}
	c, _, err := br.ReadRune()
	if err != nil || c != ';' {
		return nil, fmt.Errorf("newick: tree %q: expecting %q", name, ";")
	}
	return t, nil
}

// ReadNode reads a subtree
// (either a terminal or a parenthesized group)
// and adds it to the tree
// as a child of the indicated parent.
func readNode(r *bufio.Reader, t *Tree, parent int) error {
	if err := skipSpaces(r); err != nil {
		return errors.New("unexpected end of file")
	}

	id := t.addNode(parent)

	c, _, err := r.ReadRune()
	if err != nil {
		return errors.New("unexpected end of file")
	}
	if c == '(' {
		for {
			if err := readNode(r, t, id); err != nil {
				return err
			}
			if err := skipSpaces(r); err != nil {
				return errors.New("unexpected end of file")
			}
			c, _, err := r.ReadRune()
			if err != nil {
				return errors.New("unexpected end of file")
			}
			if c == ',' {
				continue
			}
			if c == ')' {
				break
			}
			return fmt.Errorf("got %q, expecting %q or %q", c, ",", ")")
		}
	} else {
		r.UnreadRune()
	}

	label := readLabel(r)
	if t.IsTerm(id) && label == "" {
		return errors.New("expecting terminal name")
	}
	t.nodes[id].taxon = label

	if err := skipSpaces(r); err != nil {
		if parent < 0 {
			return nil
		}
		return errors.New("unexpected end of file")
	}
	c, _, err = r.ReadRune()
	if err != nil {
		if parent < 0 {
			return nil
		}
		return errors.New("unexpected end of file")
	}
	if c != ':' {
		r.UnreadRune()
		return nil
	}

	brLen, err := readLength(r)
	if err != nil {
		return fmt.Errorf("node %q: %v", label, err)
	}
	t.nodes[id].brLen = brLen
	return nil
}

// SkipSpaces consumes whitespace
// and square bracket comments,
// leaving the reader at the next
// syntactically meaningful rune.
func skipSpaces(r *bufio.Reader) error {
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			return err
		}
		if unicode.IsSpace(c) {
			continue
		}
		if c == '[' {
			for c != ']' {
				c, _, err = r.ReadRune()
				if err != nil {
					return err
				}
			}
			continue
		}
		return r.UnreadRune()
	}
}

func readLabel(r *bufio.Reader) string {
	var b strings.Builder
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			break
		}
		if unicode.IsSpace(c) || strings.ContainsRune("(),:;[", c) {
			r.UnreadRune()
			break
		}
		b.WriteRune(c)
	}
	return b.String()
}

func readLength(r *bufio.Reader) (float64, error) {
	var b strings.Builder
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			break
		}
		if unicode.IsSpace(c) || strings.ContainsRune("(),:;[", c) {
			r.UnreadRune()
			break
		}
		b.WriteRune(c)
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid branch length %q", b.String())
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid branch length %q", b.String())
	}
	return v, nil
}
