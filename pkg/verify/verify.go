// Package verify recomputes the reconstruction law over an emitted unitig
// set: for every original k-mer, the maximum support among emitted unitigs
// containing it must equal the original count. A mismatch always signals an
// implementation defect, never a legitimate input condition.
package verify

import (
	"github.com/dbgtools/closetig/pkg/closure"
	"github.com/dbgtools/closetig/pkg/dbg"
	"github.com/dbgtools/closetig/pkg/errors"
	"github.com/dbgtools/closetig/pkg/kmer"
)

// Check validates the emitted unitigs against the original graph.
//
// Three properties are enforced:
//   - antimonotonicity: every k-mer of a unitig has a count at least the
//     unitig's support (so no unitig claims a support above its members);
//   - no fabrication: every k-mer substring of every unitig exists in the
//     original graph;
//   - reconstruction: the maximum support over unitigs containing a k-mer
//     equals its original count, for every k-mer in the graph.
//
// The first violation is returned as a RECONSTRUCTION_MISMATCH error.
func Check(g *dbg.Graph, unitigs []closure.Unitig) error {
	k := g.K()
	best := make([]uint32, g.NodeCount())
	covered := make([]bool, g.NodeCount())

	for _, u := range unitigs {
		if len(u.Seq) < k {
			return errors.New(errors.ErrCodeReconstruction,
				"unitig %q shorter than k=%d", u.Seq, k)
		}
		for i := 0; i+k <= len(u.Seq); i++ {
			canon, _ := kmer.Canonical(u.Seq[i : i+k])
			id, ok := g.Lookup(canon)
			if !ok {
				return errors.New(errors.ErrCodeReconstruction,
					"unitig contains fabricated k-mer %s", canon)
			}
			if g.Count(id) < u.Support {
				return errors.New(errors.ErrCodeReconstruction,
					"k-mer %s has count %d below support %d of a containing unitig",
					canon, g.Count(id), u.Support)
			}
			covered[id] = true
			if u.Support > best[id] {
				best[id] = u.Support
			}
		}
	}

	for id := 0; id < g.NodeCount(); id++ {
		if !covered[id] {
			return errors.New(errors.ErrCodeReconstruction,
				"k-mer %s missing from every emitted unitig", g.Kmer(int32(id)))
		}
		if best[id] != g.Count(int32(id)) {
			return errors.New(errors.ErrCodeReconstruction,
				"k-mer %s reconstructs to %d, original count is %d",
				g.Kmer(int32(id)), best[id], g.Count(int32(id)))
		}
	}
	return nil
}
