package render

import (
	"strings"
	"testing"

	"github.com/dbgtools/closetig/pkg/bcalm"
	"github.com/dbgtools/closetig/pkg/dbg"
)

func buildGraph(t *testing.T) *dbg.Graph {
	t.Helper()
	records, err := bcalm.Read(strings.NewReader(">0 LN:i:6 ab:Z:5 5 6 7\nAACCAT\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	g, err := dbg.Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("missing graph header: %q", dot)
	}
	for _, km := range []string{"AAC", "ACC", "CCA", "ATG"} {
		if !strings.Contains(dot, km) {
			t.Errorf("missing node label %s", km)
		}
	}

	// Three undirected edges, each emitted once.
	if n := strings.Count(dot, " -- "); n != 3 {
		t.Errorf("edge count = %d, want 3", n)
	}

	// The CCA-ATG edge flips strands: CCA forward overlaps ATG reversed.
	if !strings.Contains(dot, `[label="+-"]`) {
		t.Errorf("missing strand-flip edge label: %q", dot)
	}
}

func TestToDOTCounts(t *testing.T) {
	g := buildGraph(t)

	plain := ToDOT(g, Options{})
	if strings.Contains(plain, `\n7`) {
		t.Error("counts rendered without Options.Counts")
	}

	counted := ToDOT(g, Options{Counts: true})
	if !strings.Contains(counted, `ATG\n7`) {
		t.Errorf("missing count label: %q", counted)
	}
}
