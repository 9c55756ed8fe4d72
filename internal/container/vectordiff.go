package container

import "github.com/mfkiwl/flowgrid/internal/patch"

// VectorOp is one positional edit an ordered Vector<u32> diff emits:
// either Remove the element currently at Index, or Add Value at Index.
// Replace never appears here since this is a pure structural (LCS-based)
// edit script, not a per-element value comparison.
type VectorOp struct {
	Op    patch.Op
	Index int
	Value uint32
}

// DiffVector computes the minimal ordered edit script turning a into b,
// via the textbook longest-common-subsequence backtrack. This resolves the
// "immutable-vector diff is TODO-commented" gap: the store's generic Diff
// cannot emit per-index ops for an ordered Vector (it only has per-key
// primitive and per-element-unordered-set diffing), so Vector containers
// route through this instead.
func DiffVector(a, b Vector) []VectorOp {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var rev []VectorOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			rev = append(rev, VectorOp{Op: patch.OpRemove, Index: i, Value: a[i]})
			i++
		default:
			rev = append(rev, VectorOp{Op: patch.OpAdd, Index: j, Value: b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		rev = append(rev, VectorOp{Op: patch.OpRemove, Index: i, Value: a[i]})
	}
	for ; j < m; j++ {
		rev = append(rev, VectorOp{Op: patch.OpAdd, Index: j, Value: b[j]})
	}
	return rev
}

// ApplyVectorOps replays ops (as produced by DiffVector, in order) onto a,
// reproducing b. It relies on the invariant that, immediately before any
// op, len(out) equals the target index reached so far: Remove's Index is
// an a-index marking where the unchanged run since the last op ends (and
// the element to drop), Add's Index is that same b-index for the run's
// end before the inserted value.
func ApplyVectorOps(a Vector, ops []VectorOp) Vector {
	out := make(Vector, 0, len(a))
	ai := 0
	for _, op := range ops {
		switch op.Op {
		case patch.OpRemove:
			keep := op.Index - ai
			out = append(out, a[ai:ai+keep]...)
			ai += keep + 1
		case patch.OpAdd:
			keep := op.Index - len(out)
			out = append(out, a[ai:ai+keep]...)
			ai += keep
			out = append(out, op.Value)
		}
	}
	out = append(out, a[ai:]...)
	return out
}
