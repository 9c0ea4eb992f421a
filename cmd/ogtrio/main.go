// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// OGTrio is a tool to extract taxon triplets
// from rooted orthogroup gene trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/ogtrio/cmd/ogtrio/draw"
	"github.com/js-arias/ogtrio/cmd/ogtrio/list"
	"github.com/js-arias/ogtrio/cmd/ogtrio/table"
	"github.com/js-arias/ogtrio/cmd/ogtrio/terms"
)

var app = &command.Command{
	Usage: "ogtrio <command> [<argument>...]",
	Short: "a tool to extract taxon triplets from orthogroup gene trees",
}

func init() {
	app.Add(draw.Command)
	app.Add(list.Command)
	app.Add(table.Command)
	app.Add(terms.Command)
}

func main() {
	app.Main()
}
