package oplog

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// wireID is the transport-safe (agent, seq) pair. LVs never cross the
// wire since they are local to a replica.
type wireID struct {
	Agent string `json:"agent"`
	Seq   int    `json:"seq"`
}

// wireOp is one operation as carried over transport: agent, seq,
// kind, pos, content (insert-only), and parent ids in the sender's
// natural log order, which is always causally sound.
type wireOp struct {
	Agent     string   `json:"agent"`
	Seq       int      `json:"seq"`
	Kind      Kind     `json:"kind"`
	Pos       int      `json:"pos"`
	Content   *string  `json:"content,omitempty"`
	ParentIDs []wireID `json:"parent_ids"`
}

// Encode renders the log to the wire contract. Byte layout beyond
// "valid JSON" is not part of the contract; this is the format the
// CLI's merge/lint subcommands read and write.
func Encode(l *OpLog) ([]byte, error) {
	wire := make([]wireOp, len(l.ops))
	for lv, op := range l.ops {
		w := wireOp{
			Agent: op.ID.Agent,
			Seq:   op.ID.Seq,
			Kind:  op.Kind,
			Pos:   op.Pos,
		}
		if op.Kind == OpInsert {
			s := string(op.Content)
			w.Content = &s
		}
		w.ParentIDs = make([]wireID, len(op.Parents))
		for i, p := range op.Parents {
			id := l.ops[p].ID
			w.ParentIDs[i] = wireID{Agent: id.Agent, Seq: id.Seq}
		}
		wire[lv] = w
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "oplog: encode")
	}
	return data, nil
}

// Decode reconstructs an OpLog from the wire contract by replaying
// each wireOp through AppendRemote, resolving parent ids by lookup.
// The caller must ship ops in causal order (parents before children);
// Encode always produces such an order.
func Decode(data []byte) (*OpLog, error) {
	var wire []wireOp
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "oplog: decode")
	}
	l := New()
	for _, w := range wire {
		var content rune
		if w.Content != nil {
			runes := []rune(*w.Content)
			if len(runes) > 0 {
				content = runes[0]
			}
		}
		parentIDs := make([]ID, len(w.ParentIDs))
		for i, p := range w.ParentIDs {
			parentIDs[i] = ID{Agent: p.Agent, Seq: p.Seq}
		}
		id := ID{Agent: w.Agent, Seq: w.Seq}
		if _, err := l.AppendRemote(id, w.Kind, w.Pos, content, parentIDs); err != nil {
			return nil, errors.Wrapf(err, "oplog: decode op %s:%d", w.Agent, w.Seq)
		}
	}
	return l, nil
}
