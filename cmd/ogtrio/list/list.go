// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of trees
// in a set of orthogroup tree files.
package list

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/ogtrio/genetree"
)

var Command = &command.Command{
	Usage: "list <tree-file>...",
	Short: "print a list of orthogroup trees",
	Long: `
Command list reads one or more rooted gene trees in newick format and prints
the orthogroup ID (i.e. the file base name without extension) and the number
of terminals of each tree in the standard output.

One or more tree files must be given as arguments, either as file names or as
glob patterns.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting one or more tree files")
	}

	files, err := listFiles(args)
	if err != nil {
		return err
	}

	for _, fn := range files {
		t, err := readTree(fn)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\n", t.Name(), len(t.Terms()))
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
