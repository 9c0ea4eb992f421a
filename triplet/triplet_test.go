// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package triplet_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/ogtrio/genetree"
	"github.com/js-arias/ogtrio/triplet"
)

var defRoles = triplet.Roles{
	Ingroup:  "A_in",
	Sister:   "C_sis",
	Outgroup: "G_out",
}

type extractTest struct {
	newick  string
	roles   triplet.Roles
	relabel bool
	policy  triplet.Policy
	want    []triplet.Row
}

var extractTests = map[string]extractTest{
	"single triplet": {
		newick: "((A_in1,C_sis1),G_out1);",
		roles:  defRoles,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out1"},
		},
	},
	"two ingroup tips": {
		newick: "(((A_in1,A_in2),C_sis1),G_out1);",
		roles:  defRoles,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out1"},
			{OG: "og", Ingroup: "A_in2", Sister: "C_sis1", Outgroup: "G_out1"},
		},
	},
	"cross product": {
		newick: "((A_in1,(C_sis1,C_sis2)),(G_out1,G_out2));",
		roles:  defRoles,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out1"},
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out2", SameSisterOG: 1},
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis2", Outgroup: "G_out1", SameSister: 1, SameSisterOG: 2},
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis2", Outgroup: "G_out2", SameSister: 1, SameSisterOG: 3},
		},
	},
	"closest sister wins": {
		newick: "(((A_in1,C_sis1),C_sis2),G_out1);",
		roles:  defRoles,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out1"},
		},
	},
	"unclassified tips are traversed": {
		newick: "(((A_in1,X_other),C_sis1),G_out1);",
		roles:  defRoles,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out1"},
		},
	},
	"outgroup arrived too soon": {
		newick: "((A_in1,G_out1),C_sis1);",
		roles:  defRoles,
		want:   nil,
	},
	"outgroup too soon on a deeper tree": {
		newick: "(((A_in1,G_out1),C_sis1),G_out2);",
		roles:  defRoles,
		want:   nil,
	},
	"lenient ignores early outgroups": {
		newick: "(((A_in1,G_out1),C_sis1),G_out2);",
		roles:  defRoles,
		policy: triplet.Lenient,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out2"},
		},
	},
	"outgroup and sister on the same step": {
		newick: "((A_in1,(C_sis1,G_out1)),G_out2);",
		roles:  defRoles,
		want:   nil,
	},
	"lenient on outgroup and sister on the same step": {
		newick: "((A_in1,(C_sis1,G_out1)),G_out2);",
		roles:  defRoles,
		policy: triplet.Lenient,
		want: []triplet.Row{
			{OG: "og", Ingroup: "A_in1", Sister: "C_sis1", Outgroup: "G_out2"},
		},
	},
	"relabel": {
		newick:  "((A_in_gene1,C_sis_gene1),G_out_gene1);",
		roles:   defRoles,
		relabel: true,
		want: []triplet.Row{
			{OG: "og", Ingroup: "Ain_gene1", Sister: "Csis_gene1", Outgroup: "Gout_gene1"},
		},
	},
	"no ingroup tips": {
		newick: "((X_a,C_sis1),G_out1);",
		roles:  defRoles,
		want:   nil,
	},
	"no sister": {
		newick: "((A_in1,X_a),G_out1);",
		roles:  defRoles,
		want:   nil,
	},
	"no outgroup": {
		newick: "((A_in1,C_sis1),X_a);",
		roles:  defRoles,
		want:   nil,
	},
	"empty prefix": {
		newick: "((A_in1,C_sis1),G_out1);",
		roles:  triplet.Roles{Sister: "C_sis", Outgroup: "G_out"},
		want:   nil,
	},
}

func TestExtract(t *testing.T) {
	for name, test := range extractTests {
		tree := newTree(t, test.newick)
		got := triplet.Extract("og", tree, test.roles, test.relabel, test.policy)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestExtractProperties(t *testing.T) {
	nwk := "(((A_in1,(C_sis2,C_sis1)),((A_in2,C_sis3),G_out2)),(G_out1,X_a));"
	tree := newTree(t, nwk)

	rows := triplet.Extract("og", tree, defRoles, false, triplet.Strict)
	if rows == nil {
		t.Fatalf("expecting rows from tree %q", nwk)
	}

	again := triplet.Extract("og", tree, defRoles, false, triplet.Strict)
	if !reflect.DeepEqual(again, rows) {
		t.Errorf("extraction is not idempotent: got %v, want %v", again, rows)
	}

	for i, r := range rows {
		if !strings.HasPrefix(r.Ingroup, defRoles.Ingroup) {
			t.Errorf("row %d: ingroup %q without prefix %q", i, r.Ingroup, defRoles.Ingroup)
		}
		if !strings.HasPrefix(r.Sister, defRoles.Sister) {
			t.Errorf("row %d: sister %q without prefix %q", i, r.Sister, defRoles.Sister)
		}
		if !strings.HasPrefix(r.Outgroup, defRoles.Outgroup) {
			t.Errorf("row %d: outgroup %q without prefix %q", i, r.Outgroup, defRoles.Outgroup)
		}
		if i == 0 {
			continue
		}

		p := rows[i-1]
		if p.Sister > r.Sister {
			t.Errorf("row %d: unsorted sister %q after %q", i, r.Sister, p.Sister)
		}
		if p.Sister == r.Sister && p.Outgroup > r.Outgroup {
			t.Errorf("row %d: unsorted outgroup %q after %q", i, r.Outgroup, p.Outgroup)
		}
		if p.Sister == r.Sister && p.Outgroup == r.Outgroup && p.Ingroup > r.Ingroup {
			t.Errorf("row %d: unsorted ingroup %q after %q", i, r.Ingroup, p.Ingroup)
		}

		if same := p.Sister == r.Sister; same != (p.SameSister == r.SameSister) {
			t.Errorf("row %d: same_sister %d after %d for sisters %q, %q", i, r.SameSister, p.SameSister, r.Sister, p.Sister)
		}
		sameOG := p.Sister == r.Sister && p.Outgroup == r.Outgroup
		if sameOG != (p.SameSisterOG == r.SameSisterOG) {
			t.Errorf("row %d: same_sister_and_og %d after %d", i, r.SameSisterOG, p.SameSisterOG)
		}
	}
}

func TestClassify(t *testing.T) {
	names := map[string]triplet.Role{
		"A_in_gene1":  triplet.Ingroup,
		"C_sis_gene1": triplet.Sister,
		"G_out_gene1": triplet.Outgroup,
		"X_other":     triplet.Unclassified,
		"":            triplet.Unclassified,
	}
	for name, want := range names {
		if r := defRoles.Classify(name); r != want {
			t.Errorf("name %q: got role %q, want %q", name, r, want)
		}
	}
}

func newTree(t testing.TB, nwk string) *genetree.Tree {
	t.Helper()

	tree, err := genetree.Newick(strings.NewReader(nwk), "og")
	if err != nil {
		t.Fatalf("tree %q: unexpected error: %v", nwk, err)
	}
	return tree
}
