// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package table implements a command to extract
// a table of taxon triplets
// from a set of orthogroup gene trees.
package table

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/ogtrio/genetree"
	"github.com/js-arias/ogtrio/triplet"
)

var Command = &command.Command{
	Usage: `table -i|--ingroup <prefix>
	-s|--sister <prefix> -o|--outgroup <prefix>
	[--relabel] [--lenient] [--dirname]
	[--cpu <number>]
	<tree-file>...`,
	Short: "extract a triplet table from orthogroup trees",
	Long: `
Command table reads one or more rooted gene trees in newick format, extracts
all taxon triplets (an ingroup tip, its closest sister-clade tip, and its
closest outgroup-clade tip) from each tree, and prints the resulting table as
tab-delimited values in the standard output.

One or more tree files must be given as arguments, either as file names or as
glob patterns (e.g. "trees/*.nwk"). Each file is expected to contain the gene
tree of a single orthogroup; the orthogroup ID is taken from the file name,
without directory and extension. If the flag --dirname is given, the name of
the parent directory of each file will be used instead (useful when trees are
stored as one directory per orthogroup).

Tips are assigned to roles by gene name prefix. The flags -i (or --ingroup),
-s (or --sister), and -o (or --outgroup) define the prefixes and must all be
given. For each ingroup tip, the tree is walked toward the root; at each step
the sibling subtrees are scanned, first for the closest sister tips, and then,
continuing the walk, for the closest outgroup tips. A triplet row is produced
for every sister-outgroup pair found for an ingroup tip. By default, an
outgroup tip found before any sister invalidates the search for that ingroup
tip; use the flag --lenient to ignore outgroup tips during the sister search.

A tree without valid triplets produces no rows, which is a normal outcome; an
error is reported only if no file produces any row at all.

If the flag --relabel is given, the first underscore of each reported gene
name will be removed (e.g. "A_in_gene1" becomes "Ain_gene1").

Trees are processed concurrently, one tree per process. Use the flag --cpu to
set the number of processes; the default uses all available processors. The
output order is always the input file order.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var inPrefix string
var sisPrefix string
var outPrefix string
var relabel bool
var lenient bool
var dirName bool
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&inPrefix, "ingroup", "", "")
	c.Flags().StringVar(&inPrefix, "i", "", "")
	c.Flags().StringVar(&sisPrefix, "sister", "", "")
	c.Flags().StringVar(&sisPrefix, "s", "", "")
	c.Flags().StringVar(&outPrefix, "outgroup", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
	c.Flags().BoolVar(&relabel, "relabel", false, "")
	c.Flags().BoolVar(&lenient, "lenient", false, "")
	c.Flags().BoolVar(&dirName, "dirname", false, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting one or more tree files")
	}
	if inPrefix == "" || sisPrefix == "" || outPrefix == "" {
		return c.UsageError("ingroup, sister, and outgroup prefixes must be defined")
	}

	files, err := listFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no input trees found")
	}

	roles := triplet.Roles{
		Ingroup:  inPrefix,
		Sister:   sisPrefix,
		Outgroup: outPrefix,
	}
	pol := triplet.Strict
	if lenient {
		pol = triplet.Lenient
	}

	tables, err := extractAll(files, roles, pol)
	if err != nil {
		return err
	}

	tb := triplet.NewTable()
	for _, rows := range tables {
		tb.Append(rows)
	}
	if tb.Len() == 0 {
		return errors.New("no triplets found in any input tree")
	}

	if err := tb.TSV(c.Stdout()); err != nil {
		return fmt.Errorf("while writing table: %v", err)
	}
	return nil
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

type answer struct {
	pos  int
	rows []triplet.Row
	err  error
}

// ExtractAll runs the triplet extraction
// over every tree file,
// one tree per process,
// and returns the per-tree row sets
// in input order.
func extractAll(files []string, roles triplet.Roles, pol triplet.Policy) ([][]triplet.Row, error) {
	cpu := numCPU
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	jobs := make(chan int, cpu*2)
	ans := make(chan answer)
	for c := 0; c < cpu; c++ {
		go func() {
			for i := range jobs {
				rows, err := extractFile(files[i], roles, pol)
				ans <- answer{pos: i, rows: rows, err: err}
			}
		}()
	}
	go func() {
		for i := range files {
			jobs <- i
		}
		close(jobs)
	}()

	tables := make([][]triplet.Row, len(files))
	var last error
	for range files {
		a := <-ans
		if a.err != nil {
			last = a.err
			continue
		}
		tables[a.pos] = a.rows
	}
	close(ans)

	if last != nil {
		return nil, last
	}
	return tables, nil
}

func extractFile(name string, roles triplet.Roles, pol triplet.Policy) ([]triplet.Row, error) {
	og := orthogroupID(name)
	t, err := readTree(name, og)
	if err != nil {
		return nil, err
	}
	return triplet.Extract(og, t, roles, relabel, pol), nil
}

// OrthogroupID derives the orthogroup ID
// of a tree file,
// either from the file base name
// without extension,
// or from the parent directory name
// if the --dirname flag is given.
func orthogroupID(name string) string {
	if dirName {
		return filepath.Base(filepath.Dir(name))
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readTree(name, treeName string) (*genetree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := genetree.Newick(f, treeName)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}
