// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// orthogroup gene trees as SVG files.
package draw

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/ogtrio/genetree"
)

var Command = &command.Command{
	Usage: `draw [--step <value>] [--nonodes]
	[-o|--output <out-prefix>]
	<tree-file>...`,
	Short: "draw orthogroup trees as SVG files",
	Long: `
Command draw reads one or more rooted gene trees in newick format and draws
each tree into an SVG-encoded file.

One or more tree files must be given as arguments, either as file names or as
glob patterns.

Branch lengths are drawn proportional to the lengths given in the source
file; if a tree has no branch lengths, each branch will be drawn with a unit
length. By default, 10 pixel units will be used per length unit; use the flag
--step to define a different value (it can have decimal points).

By default, internal node IDs will be drawn. If the flag --nonodes is given,
then it will draw the tree without node IDs.

By default, the orthogroup IDs (i.e. the file base names without extension)
will be used as the output file names. Use the flag -o, or --output, to
define a prefix for the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var noNodes bool
var stepX float64
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&noNodes, "nonodes", false, "")
	c.Flags().Float64Var(&stepX, "step", 10, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
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

	for _, fn := range files {
		t, err := readTree(fn)
		if err != nil {
			return err
		}
		if err := writeSVG(t.Name(), copyTree(t, stepX, !noNodes)); err != nil {
			return err
		}
	}
	return nil
}

func writeSVG(name string, t svgTree) (err error) {
	if outPrefix != "" {
		name = fmt.Sprintf("%s-%s.svg", outPrefix, name)
	} else {
		name += ".svg"
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
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
