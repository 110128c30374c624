package oplog

import (
	"fmt"
	"sort"

	multierror "github.com/hashicorp/go-multierror"
)

// Validate walks the whole log checking structural invariants that
// need no replay (unique ids, known op kinds, ascending in-range
// parents that precede the op, contiguous per-agent seqs, and the
// version map), aggregating every violation it finds instead of
// stopping at the first. The frontier is not checked. Useful for a host auditing a
// log received from an untrusted or buggy transport before handing it
// to the replay engine.
func Validate(l *OpLog) error {
	var result *multierror.Error

	maxSeq := make(map[string]int)
	seen := make(map[ID]bool, len(l.ops))

	for lv, op := range l.ops {
		if seen[op.ID] {
			result = multierror.Append(result, fmt.Errorf("lv %d: duplicate id %s:%d", lv, op.ID.Agent, op.ID.Seq))
		}
		seen[op.ID] = true

		if op.Kind != OpInsert && op.Kind != OpDelete {
			result = multierror.Append(result, fmt.Errorf("lv %d: unknown op kind %q", lv, op.Kind))
		}

		if !sort.IntsAreSorted(lvInts(op.Parents)) {
			result = multierror.Append(result, fmt.Errorf("lv %d: parents not ascending: %v", lv, op.Parents))
		}
		for _, p := range op.Parents {
			if p < 0 || int(p) >= len(l.ops) {
				result = multierror.Append(result, fmt.Errorf("lv %d: parent lv %d out of range", lv, p))
				continue
			}
			if int(p) >= lv {
				result = multierror.Append(result, fmt.Errorf("lv %d: parent lv %d is not < self", lv, p))
			}
		}

		if s, ok := maxSeq[op.ID.Agent]; ok && op.ID.Seq != s+1 {
			result = multierror.Append(result, fmt.Errorf("lv %d: agent %s seq %d follows %d, not contiguous", lv, op.ID.Agent, op.ID.Seq, s))
		} else if !ok && op.ID.Seq != 0 {
			result = multierror.Append(result, fmt.Errorf("lv %d: agent %s first seq is %d, not 0", lv, op.ID.Agent, op.ID.Seq))
		}
		maxSeq[op.ID.Agent] = op.ID.Seq
	}

	for agent, want := range maxSeq {
		if got, ok := l.version[agent]; !ok || got != want {
			result = multierror.Append(result, fmt.Errorf("agent %s: version[%s]=%d, want %d", agent, agent, got, want))
		}
	}

	if result != nil {
		return result.ErrorOrNil()
	}
	return nil
}

func lvInts(lvs []LV) []int {
	out := make([]int, len(lvs))
	for i, v := range lvs {
		out[i] = int(v)
	}
	return out
}
