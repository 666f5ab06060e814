package dbg

import (
	"sort"

	"github.com/dbgtools/closetig/pkg/bcalm"
	"github.com/dbgtools/closetig/pkg/errors"
	"github.com/dbgtools/closetig/pkg/kmer"
)

// position locates one k-mer occurrence inside a record: the arena node it
// resolved to and whether the record spells it in canonical orientation.
type position struct {
	id  int32
	fwd bool
}

// Build turns assembler records into a finalized canonical k-mer graph.
//
// Adjacency between consecutive positions of one record is implicit in the
// abundance array; boundary adjacency comes from the record links, with the
// link orientation deciding whether the neighboring k-mer is taken forward
// or reverse complemented. The k-mer length is inferred from the first
// record (len(seq) - len(counts) + 1).
//
// A record whose abundance array does not match its sequence length fails
// with FORMAT_ERROR; a link naming an unknown record, or whose endpoints do
// not actually overlap by k-1 bases, fails with GRAPH_INTEGRITY. Both abort
// with no partial graph.
func Build(records []bcalm.Record) (*Graph, error) {
	g := &Graph{}
	if len(records) == 0 {
		return g, nil
	}

	first := records[0]
	g.k = len(first.Seq) - len(first.Counts) + 1
	if g.k < 1 || len(first.Counts) == 0 {
		return nil, errors.New(errors.ErrCodeFormat,
			"record 0: cannot infer k from %d bases and %d abundance values", len(first.Seq), len(first.Counts))
	}

	index := make(map[string]int32)
	g.index = index
	positions := make([][]position, len(records))

	for ri, rec := range records {
		want := len(rec.Seq) - g.k + 1
		if want < 1 || len(rec.Counts) != want {
			return nil, errors.New(errors.ErrCodeFormat,
				"record %d: %d abundance values for %d k-mer positions", rec.ID, len(rec.Counts), want)
		}
		positions[ri] = make([]position, want)
		for i := 0; i < want; i++ {
			sub := rec.Seq[i : i+g.k]
			canon, fwd := kmer.Canonical(sub)
			id, ok := index[canon]
			if !ok {
				id = int32(len(g.nodes))
				index[canon] = id
				g.nodes = append(g.nodes, Node{Kmer: canon, Count: rec.Counts[i]})
			}
			positions[ri][i] = position{id: id, fwd: fwd}
		}
	}

	// Implicit adjacency along each record.
	for ri := range records {
		pos := positions[ri]
		for i := 0; i+1 < len(pos); i++ {
			g.addArc(pos[i].id, pos[i+1].id, pos[i].fwd, pos[i+1].fwd)
		}
	}

	// Boundary adjacency from links.
	for ri, rec := range records {
		for _, l := range rec.Links {
			if l.To < 0 || l.To >= len(records) {
				return nil, errors.New(errors.ErrCodeGraphIntegrity,
					"record %d: link references unknown record %d", rec.ID, l.To)
			}
			src := positions[ri][len(positions[ri])-1]
			srcFwd := src.fwd
			if !l.FromPlus {
				src = positions[ri][0]
				srcFwd = !src.fwd
			}
			tgtPos := positions[l.To]
			tgt := tgtPos[0]
			tgtFwd := tgt.fwd
			if !l.ToPlus {
				tgt = tgtPos[len(tgtPos)-1]
				tgtFwd = !tgt.fwd
			}
			if err := g.checkOverlap(rec.ID, src.id, srcFwd, tgt.id, tgtFwd); err != nil {
				return nil, err
			}
			g.addArc(src.id, tgt.id, srcFwd, tgtFwd)
		}
	}

	g.finalize()
	return g, nil
}

// addArc records an undirected edge with both strand orientations.
// Self-loops are skipped: a k-mer overlapping itself (or its own reverse
// complement) never extends a unitig.
func (g *Graph) addArc(u, v int32, uFwd, vFwd bool) {
	if u == v {
		return
	}
	g.nodes[u].Arcs = append(g.nodes[u].Arcs, Arc{To: v, FromFwd: uFwd, ToFwd: vFwd})
	g.nodes[v].Arcs = append(g.nodes[v].Arcs, Arc{To: u, FromFwd: !vFwd, ToFwd: !uFwd})
}

// checkOverlap verifies that the oriented source k-mer and oriented target
// k-mer actually overlap by k-1 bases, i.e. that the assembler link is
// internally consistent.
func (g *Graph) checkOverlap(recID int, u int32, uFwd bool, v int32, vFwd bool) error {
	if u == v {
		return nil
	}
	a := g.oriented(u, uFwd)
	b := g.oriented(v, vFwd)
	if a[1:] != b[:len(b)-1] {
		return errors.New(errors.ErrCodeGraphIntegrity,
			"record %d: link endpoints %s and %s do not overlap", recID, a, b)
	}
	return nil
}

// oriented returns the node's k-mer in the requested orientation.
func (g *Graph) oriented(id int32, fwd bool) string {
	if fwd {
		return g.nodes[id].Kmer
	}
	return kmer.ReverseComplement(g.nodes[id].Kmer)
}

// finalize sorts and deduplicates each node's arcs. The assembler lists
// every link on both participating records, so boundary edges arrive twice.
func (g *Graph) finalize() {
	for i := range g.nodes {
		arcs := g.nodes[i].Arcs
		sort.Slice(arcs, func(a, b int) bool {
			if arcs[a].To != arcs[b].To {
				return arcs[a].To < arcs[b].To
			}
			if arcs[a].FromFwd != arcs[b].FromFwd {
				return arcs[a].FromFwd
			}
			return arcs[a].ToFwd && !arcs[b].ToFwd
		})
		out := arcs[:0]
		for _, a := range arcs {
			if len(out) == 0 || out[len(out)-1] != a {
				out = append(out, a)
			}
		}
		g.nodes[i].Arcs = out
	}
}
