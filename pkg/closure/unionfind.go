package closure

// unionFind tracks components of activated nodes with per-root aggregates:
// the minimum count seen (the component's provisional support) and the member
// list. Components are created, merged, and snapshotted — never split.
type unionFind struct {
	parent  []int32   // parent[i] == -1 means not yet activated
	size    []int32   // valid at roots
	support []uint32  // minimum member count, valid at roots
	members [][]int32 // valid at roots
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent:  make([]int32, n),
		size:    make([]int32, n),
		support: make([]uint32, n),
		members: make([][]int32, n),
	}
	for i := range uf.parent {
		uf.parent[i] = -1
	}
	return uf
}

// active reports whether the node has been activated.
func (uf *unionFind) active(id int32) bool { return uf.parent[id] >= 0 }

// activate creates a singleton component for the node.
func (uf *unionFind) activate(id int32, count uint32) {
	uf.parent[id] = id
	uf.size[id] = 1
	uf.support[id] = count
	uf.members[id] = append(uf.members[id][:0], id)
}

// find returns the root of the node's component, compressing the path.
func (uf *unionFind) find(id int32) int32 {
	root := id
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[id] != root {
		id, uf.parent[id] = uf.parent[id], root
	}
	return root
}

// union merges the components of a and b, returning the surviving root.
// The merged support is the minimum of both supports. Union by size keeps
// member-list concatenation linear overall.
func (uf *unionFind) union(a, b int32) int32 {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return ra
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
	if uf.support[rb] < uf.support[ra] {
		uf.support[ra] = uf.support[rb]
	}
	uf.members[ra] = append(uf.members[ra], uf.members[rb]...)
	uf.members[rb] = nil
	return ra
}
