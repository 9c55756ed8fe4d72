package container

import "github.com/mfkiwl/flowgrid/internal/gridpath"

// AdjacencyList is a set of directed (ID, ID) edges.
type AdjacencyList gridpath.IdPairSet

// Connect returns a copy of a with the edge src->dst added.
func (a AdjacencyList) Connect(src, dst uint32) AdjacencyList {
	out := a.clone()
	out[gridpath.IDPair{From: src, To: dst}] = struct{}{}
	return out
}

// Disconnect returns a copy of a with the edge src->dst removed.
func (a AdjacencyList) Disconnect(src, dst uint32) AdjacencyList {
	out := a.clone()
	delete(out, gridpath.IDPair{From: src, To: dst})
	return out
}

// Toggle flips the edge src->dst.
func (a AdjacencyList) Toggle(src, dst uint32) AdjacencyList {
	if a.IsConnected(src, dst) {
		return a.Disconnect(src, dst)
	}
	return a.Connect(src, dst)
}

// IsConnected reports whether the direct edge src->dst exists.
func (a AdjacencyList) IsConnected(src, dst uint32) bool {
	_, ok := a[gridpath.IDPair{From: src, To: dst}]
	return ok
}

func (a AdjacencyList) clone() AdjacencyList {
	out := make(AdjacencyList, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// HasPath reports whether dst is reachable from src via a non-recursive
// depth-first search. Nodes in disabled are excluded from traversal (no
// edge may be followed out of them) but remain valid as the destination
// itself — i.e. a disabled src or dst still participates as an endpoint.
func (a AdjacencyList) HasPath(src, dst uint32, disabled map[uint32]struct{}) bool {
	if src == dst {
		return true
	}
	adj := make(map[uint32][]uint32, len(a))
	for pair := range a {
		adj[pair.From] = append(adj[pair.From], pair.To)
	}

	visited := map[uint32]struct{}{src: {}}
	stack := []uint32{src}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, isDisabled := disabled[n]; isDisabled && n != src {
			continue
		}
		for _, next := range adj[n] {
			if next == dst {
				return true
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return false
}
