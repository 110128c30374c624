// Package oplog implements the append-only event store the replay
// engine walks: the operation array plus two views of the current
// tip, a local DAG frontier and a per-agent high-water mark.
package oplog

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/textcrdt/textcrdt/errs"
)

// OpLog is an append-only sequence of Ops indexed by LV, together with
// the frontier (ascending-sorted set of LVs with no observed
// descendants) and the per-agent version high-water mark.
type OpLog struct {
	ops      []Op
	frontier []LV
	version  map[string]int // agent -> highest accepted seq
	idIndex  map[ID]LV
}

// New returns an empty OpLog.
func New() *OpLog {
	return &OpLog{
		version: make(map[string]int),
		idIndex: make(map[ID]LV),
	}
}

// Len returns the number of operations in the log.
func (l *OpLog) Len() int { return len(l.ops) }

// Op returns a copy of the operation at lv. Parents is shared
// read-only backing storage; callers must not mutate it.
func (l *OpLog) Op(lv LV) Op { return l.ops[lv] }

// Frontier returns a copy of the current DAG tip set, ascending.
func (l *OpLog) Frontier() []LV {
	return append([]LV(nil), l.frontier...)
}

// Version returns a copy of the per-agent high-water mark.
func (l *OpLog) Version() map[string]int {
	out := make(map[string]int, len(l.version))
	for k, v := range l.version {
		out[k] = v
	}
	return out
}

// ParentsOf implements version.ParentsFunc for this log.
func (l *OpLog) ParentsOf(lv LV) []LV {
	if lv < 0 || int(lv) >= len(l.ops) {
		return nil
	}
	return l.ops[lv].Parents
}

// IDOf returns the ID of the op at lv.
func (l *OpLog) IDOf(lv LV) ID { return l.ops[lv].ID }

// LVOf translates an ID to its LV in this log.
func (l *OpLog) LVOf(id ID) (LV, bool) {
	lv, ok := l.idIndex[id]
	return lv, ok
}

// AppendLocal assigns the next seq for agent, records the op with
// parents set to the current frontier, and sets the frontier to the
// single new LV. Returns the new LV.
func (l *OpLog) AppendLocal(agent string, kind Kind, pos int, content rune) LV {
	seq := 0
	if v, ok := l.version[agent]; ok {
		seq = v + 1
	}
	parents := append([]LV(nil), l.frontier...)
	id := ID{Agent: agent, Seq: seq}
	lv := LV(len(l.ops))

	l.ops = append(l.ops, Op{Kind: kind, Pos: pos, Content: content, ID: id, Parents: parents})
	l.idIndex[id] = lv
	l.frontier = []LV{lv}
	l.version[agent] = seq
	return lv
}

// AppendRemote integrates an operation produced by another replica.
// parentIDs are translated to LVs through this log's id index; an
// unknown parent returns ErrIDUnknown and leaves the log unchanged. A
// (agent, seq) already accepted returns ErrDuplicate, also a no-op. A
// seq that skips ahead of version[agent]+1 returns ErrSeqGap. On
// success the frontier is advanced (the new LV's parents are removed,
// the new LV is added) and the new LV is returned.
func (l *OpLog) AppendRemote(id ID, kind Kind, pos int, content rune, parentIDs []ID) (LV, error) {
	if v, ok := l.version[id.Agent]; ok && v >= id.Seq {
		return -1, errs.ErrDuplicate
	}
	expectedSeq := 0
	if v, ok := l.version[id.Agent]; ok {
		expectedSeq = v + 1
	}
	if id.Seq != expectedSeq {
		return -1, errors.Wrapf(errs.ErrSeqGap, "agent %s: expected seq %d, got %d", id.Agent, expectedSeq, id.Seq)
	}

	var parents []LV
	for _, pid := range parentIDs {
		lv, ok := l.idIndex[pid]
		if !ok {
			return -1, errors.Wrapf(errs.ErrIDUnknown, "parent %s:%d not found", pid.Agent, pid.Seq)
		}
		parents = append(parents, lv)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })

	lv := LV(len(l.ops))
	l.ops = append(l.ops, Op{Kind: kind, Pos: pos, Content: content, ID: id, Parents: parents})
	l.idIndex[id] = lv
	l.frontier = advanceFrontier(l.frontier, lv, parents)
	l.version[id.Agent] = id.Seq
	return lv, nil
}

// advanceFrontier computes sort((frontier \ parents) ∪ {v}).
func advanceFrontier(frontier []LV, v LV, parents []LV) []LV {
	inParents := make(map[LV]bool, len(parents))
	for _, p := range parents {
		inParents[p] = true
	}
	out := make([]LV, 0, len(frontier)+1)
	for _, f := range frontier {
		if !inParents[f] {
			out = append(out, f)
		}
	}
	out = append(out, v)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MergeFrom iterates other's ops in order, translating parents through
// other's id table and calling AppendRemote on this log. Iteration
// order guarantees causal readiness: an op's parents always precede
// it in its owning log. Duplicates are absorbed silently; any other
// failure aborts the merge and is returned wrapped with the op it
// happened on.
func (l *OpLog) MergeFrom(other *OpLog) error {
	for lv := LV(0); lv < LV(len(other.ops)); lv++ {
		op := other.ops[lv]
		parentIDs := make([]ID, len(op.Parents))
		for i, p := range op.Parents {
			parentIDs[i] = other.ops[p].ID
		}
		_, err := l.AppendRemote(op.ID, op.Kind, op.Pos, op.Content, parentIDs)
		if err != nil {
			if errors.Is(err, errs.ErrDuplicate) {
				continue
			}
			return errors.Wrapf(err, "mergeFrom: op %s:%d", op.ID.Agent, op.ID.Seq)
		}
	}
	return nil
}
