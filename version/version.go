// Package version implements pure frontier algebra consumed by the
// replay engine: expansion into full ancestor sets and symmetric
// difference between two frontiers. Neither function has side
// effects or knowledge of operation payloads, only of the parent
// edges a ParentsFunc exposes.
package version

import (
	"sort"

	"github.com/textcrdt/textcrdt/oplog"
)

// ParentsFunc returns the parent LVs of a given LV, as oplog.OpLog
// does for its own operations. Traversal terminates because LVs
// strictly decrease along parent edges, the DAG's acyclicity
// invariant.
type ParentsFunc func(oplog.LV) []oplog.LV

// Expand returns the reflexive-transitive closure of frontier over
// parent edges: frontier itself plus every ancestor.
func Expand(parentsOf ParentsFunc, frontier []oplog.LV) map[oplog.LV]struct{} {
	visited := make(map[oplog.LV]struct{}, len(frontier)*2)
	stack := append([]oplog.LV(nil), frontier...)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v < 0 {
			continue // sentinel / root, not a real LV
		}
		if _, ok := visited[v]; ok {
			continue
		}
		visited[v] = struct{}{}
		stack = append(stack, parentsOf(v)...)
	}
	return visited
}

// Diff returns (expand(a) \ expand(b), expand(b) \ expand(a)), both
// ascending-sorted.
func Diff(parentsOf ParentsFunc, a, b []oplog.LV) (aOnly, bOnly []oplog.LV) {
	ea := Expand(parentsOf, a)
	eb := Expand(parentsOf, b)

	for v := range ea {
		if _, ok := eb[v]; !ok {
			aOnly = append(aOnly, v)
		}
	}
	for v := range eb {
		if _, ok := ea[v]; !ok {
			bOnly = append(bOnly, v)
		}
	}
	sort.Slice(aOnly, func(i, j int) bool { return aOnly[i] < aOnly[j] })
	sort.Slice(bOnly, func(i, j int) bool { return bOnly[i] < bOnly[j] })
	return aOnly, bOnly
}
