// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals
// in a set of orthogroup gene trees.
package terms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/ogtrio/genetree"
	"github.com/js-arias/ogtrio/triplet"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: `terms [-i|--ingroup <prefix>]
	[-s|--sister <prefix>] [-o|--outgroup <prefix>]
	<tree-file>...`,
	Short: "print a list of tree terminals",
	Long: `
Command terms reads one or more rooted gene trees in newick format and prints
the names of the terminals in the standard output.

One or more tree files must be given as arguments, either as file names or as
glob patterns. The printed list is the sorted union of the terminals of all
trees.

If any of the role prefixes is defined, with the flags -i (or --ingroup), -s
(or --sister), and -o (or --outgroup), the role of each terminal under those
prefixes will be printed next to its name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var inPrefix string
var sisPrefix string
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&inPrefix, "ingroup", "", "")
	c.Flags().StringVar(&inPrefix, "i", "", "")
	c.Flags().StringVar(&sisPrefix, "sister", "", "")
	c.Flags().StringVar(&sisPrefix, "s", "", "")
	c.Flags().StringVar(&outPrefix, "outgroup", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting one or more tree files")
	}

	files, err := listFiles(args)
	if err != nil {
		return err
	}

	ls, err := makeTermList(files)
	if err != nil {
		return err
	}

	roles := triplet.Roles{
		Ingroup:  inPrefix,
		Sister:   sisPrefix,
		Outgroup: outPrefix,
	}
	withRoles := inPrefix != "" || sisPrefix != "" || outPrefix != ""

	for _, term := range ls {
		if withRoles {
			fmt.Fprintf(c.Stdout(), "%s\t%s\n", term, roles.Classify(term))
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}
	return nil
}

func makeTermList(files []string) ([]string, error) {
	terms := make(map[string]bool)
	for _, fn := range files {
		t, err := readTree(fn)
		if err != nil {
			return nil, err
		}
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	return termList, nil
}

// ListFiles resolves the command arguments
// as plain file names or glob patterns.
func listFiles(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		if !strings.ContainsAny(a, "*?[") {
			if _, err := os.Stat(a); err != nil {
				return nil, err
			}
			files = append(files, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %v", a, err)
		}
		files = append(files, m...)
	}
	return files, nil
}

func readTree(name string) (*genetree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := filepath.Base(name)
	tn := strings.TrimSuffix(base, filepath.Ext(base))

	t, err := genetree.Newick(f, tn)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}
