package closure

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/dbgtools/closetig/pkg/bcalm"
	"github.com/dbgtools/closetig/pkg/dbg"
)

// chainInput is a single record whose counts descend towards the left end:
// AAC(5) ACC(5) CCA(6) CAT(7). CAT is stored canonically as ATG.
const chainInput = ">0 LN:i:6 ab:Z:5 5 6 7\nAACCAT\n"

// linkedInput extends chainInput with a count-9 k-mer (ATT, canonical AAT)
// behind the high end and a count-2 k-mer (ATA) behind that.
const linkedInput = `>0 LN:i:6 ab:Z:5 5 6 7 L:+:1:+
AACCAT
>1 LN:i:3 ab:Z:9 L:-:0:- L:-:2:+
ATT
>2 LN:i:3 ab:Z:2 L:-:1:+
ATA
`

// cycleInput is a circular unitig: the self-link joins GAA back to AAG.
const cycleInput = ">0 LN:i:6 ab:Z:4 4 4 4 L:+:0:+\nAAGGAA\n"

func buildGraph(t *testing.T, input string) *dbg.Graph {
	t.Helper()
	records, err := bcalm.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	g, err := dbg.Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

// lookup resolves canonical k-mers to ids so expectations can be written in
// terms of sequences instead of arena positions.
func lookup(t *testing.T, g *dbg.Graph, canon string) int32 {
	t.Helper()
	id, ok := g.Lookup(canon)
	if !ok {
		t.Fatalf("Lookup(%q) = false, want node", canon)
	}
	return id
}

func ids(t *testing.T, g *dbg.Graph, kmers ...string) []int32 {
	t.Helper()
	out := make([]int32, len(kmers))
	for i, km := range kmers {
		out[i] = lookup(t, g, km)
	}
	return out
}

func TestDecomposeChain(t *testing.T) {
	g := buildGraph(t, chainInput)

	comps, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	want := []Component{
		{Support: 7, Members: ids(t, g, "ATG")},
		{Support: 6, Members: ids(t, g, "CCA", "ATG")},
		{Support: 5, Members: ids(t, g, "AAC", "ACC", "CCA", "ATG")},
	}
	assertComponents(t, comps, want)
}

func TestDecomposeLinked(t *testing.T) {
	g := buildGraph(t, linkedInput)

	comps, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	// The count-9 component never retires: it keeps absorbing lower batches
	// and is re-emitted at each support value it reaches.
	want := []Component{
		{Support: 9, Members: ids(t, g, "AAT")},
		{Support: 7, Members: ids(t, g, "ATG", "AAT")},
		{Support: 6, Members: ids(t, g, "CCA", "ATG", "AAT")},
		{Support: 5, Members: ids(t, g, "AAC", "ACC", "CCA", "ATG", "AAT")},
		{Support: 2, Members: ids(t, g, "AAC", "ACC", "CCA", "ATG", "AAT", "ATA")},
	}
	assertComponents(t, comps, want)
}

func TestDecomposeCycle(t *testing.T) {
	g := buildGraph(t, cycleInput)

	comps, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}

	if len(comps) != 1 {
		t.Fatalf("Decompose() returned %d components, want 1", len(comps))
	}
	if comps[0].Support != 4 {
		t.Errorf("Support = %d, want 4", comps[0].Support)
	}
	if len(comps[0].Members) != 4 {
		t.Errorf("len(Members) = %d, want 4", len(comps[0].Members))
	}
}

func TestDecomposeEmpty(t *testing.T) {
	g, err := dbg.Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) error = %v", err)
	}
	comps, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	if comps != nil {
		t.Errorf("Decompose() = %v, want nil for an empty graph", comps)
	}
}

func TestDecomposeDeterministic(t *testing.T) {
	g := buildGraph(t, linkedInput)

	first, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Decompose(g)
		if err != nil {
			t.Fatalf("Decompose() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

// assertComponents compares emitted components against expectations, treating
// member lists as sets ordered ascending (the emission contract).
func assertComponents(t *testing.T, got, want []Component) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d components, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Support != want[i].Support {
			t.Errorf("component %d support = %d, want %d", i, got[i].Support, want[i].Support)
		}
		wm := slices.Clone(want[i].Members)
		slices.Sort(wm)
		if !reflect.DeepEqual(got[i].Members, wm) {
			t.Errorf("component %d members = %v, want %v", i, got[i].Members, wm)
		}
	}
}
