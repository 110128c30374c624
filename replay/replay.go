// Package replay is the CRDT core: it walks an oplog's operation DAG,
// maintaining a per-item state machine as the frontier is retreated
// and advanced across non-linear histories, and integrates concurrent
// inserts into a total order using the Yjs-style originLeft/originRight
// tie-breaking rule.
package replay

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/textcrdt/textcrdt/errs"
	"github.com/textcrdt/textcrdt/oplog"
	"github.com/textcrdt/textcrdt/version"
)

// Materialize replays l from an empty state and returns the resulting
// Doc. Different log orderings sharing the same DAG produce identical
// output. The procedure is deterministic in the oplog's contents, not
// its storage order.
func Materialize(l *oplog.OpLog) (*Doc, error) {
	d := NewDoc()
	for lv := oplog.LV(0); lv < oplog.LV(l.Len()); lv++ {
		if err := d.step(l, lv); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// step is one iteration of the apply driver: rewind to op's parent
// frontier, then integrate the operation.
func (d *Doc) step(l *oplog.OpLog, lv oplog.LV) error {
	op := l.Op(lv)
	aOnly, bOnly := version.Diff(l.ParentsOf, d.curVersion, op.Parents)

	sort.Slice(aOnly, func(i, j int) bool { return aOnly[i] > aOnly[j] }) // descending
	for _, v := range aOnly {
		if err := d.retreat(l, v); err != nil {
			return err
		}
	}

	sort.Slice(bOnly, func(i, j int) bool { return bOnly[i] < bOnly[j] }) // ascending
	for _, v := range bOnly {
		if err := d.advance(l, v); err != nil {
			return err
		}
	}

	if err := d.apply(l, lv); err != nil {
		return err
	}
	d.curVersion = []oplog.LV{lv}
	return nil
}

// targetOf resolves the item an op's retreat/advance acts on: itself
// for INSERT, its recorded delTarget for DELETE.
func (d *Doc) targetOf(l *oplog.OpLog, lv oplog.LV) (*item, error) {
	op := l.Op(lv)
	switch op.Kind {
	case oplog.OpInsert:
		it, ok := d.itemByLV[lv]
		if !ok {
			return nil, errors.Wrapf(errs.ErrReplayInvariant, "ITEM_NOT_FOUND: insert lv=%d has no item", lv)
		}
		return it, nil
	case oplog.OpDelete:
		tlv, ok := d.delTarget[lv]
		if !ok {
			return nil, errors.Wrapf(errs.ErrReplayInvariant, "ITEM_NOT_FOUND: delete lv=%d has no recorded target", lv)
		}
		it, ok := d.itemByLV[tlv]
		if !ok {
			return nil, errors.Wrapf(errs.ErrReplayInvariant, "ITEM_NOT_FOUND: delete target lv=%d missing", tlv)
		}
		return it, nil
	default:
		return nil, errors.Wrapf(errs.ErrReplayInvariant, "lv=%d: unknown op kind %q", lv, op.Kind)
	}
}

// retreat decrements the targeted item's state, moving the replay's
// logical frontier backward by one op without touching the item order.
func (d *Doc) retreat(l *oplog.OpLog, lv oplog.LV) error {
	it, err := d.targetOf(l, lv)
	if err != nil {
		return err
	}
	if it.state <= NotYetInserted {
		return errors.Wrapf(errs.ErrReplayInvariant, "lv=%d: retreat underflow (state=%d)", lv, it.state)
	}
	it.state--
	return nil
}

// advance increments the targeted item's state. Symmetric to retreat.
func (d *Doc) advance(l *oplog.OpLog, lv oplog.LV) error {
	it, err := d.targetOf(l, lv)
	if err != nil {
		return err
	}
	it.state++
	return nil
}

// apply performs the first execution of op_lv.
func (d *Doc) apply(l *oplog.OpLog, lv oplog.LV) error {
	op := l.Op(lv)
	switch op.Kind {
	case oplog.OpInsert:
		return d.applyInsert(l, lv, op)
	case oplog.OpDelete:
		return d.applyDelete(lv, op)
	default:
		return errors.Wrapf(errs.ErrReplayInvariant, "lv=%d: unknown op kind %q", lv, op.Kind)
	}
}

// walk performs the current-position scan: curPos counts items with
// state == Inserted, endPos counts items that are not (permanently)
// tombstoned. It stops the instant curPos reaches targetPos and
// returns the item-array index plus the corresponding snapshot index.
func (d *Doc) walk(targetPos int) (idx int, endPos int, err error) {
	curPos := 0
	for curPos < targetPos {
		if idx >= len(d.items) {
			return 0, 0, errors.Wrapf(errs.ErrReplayInvariant, "WALKED_PAST_END: target pos %d with %d items", targetPos, len(d.items))
		}
		it := d.items[idx]
		if it.state == Inserted {
			curPos++
		}
		if !it.deleted {
			endPos++
		}
		idx++
	}
	return idx, endPos, nil
}

func (d *Doc) applyInsert(l *oplog.OpLog, lv oplog.LV, op oplog.Op) error {
	idx, endPos, err := d.walk(op.Pos)
	if err != nil {
		return err
	}

	originLeft := oplog.LV(oplog.SentinelLeft)
	if idx > 0 {
		left := d.items[idx-1]
		if left.state != Inserted {
			return errors.Wrapf(errs.ErrReplayInvariant, "LEFT_NOT_INSERTED: lv=%d pos=%d", lv, op.Pos)
		}
		originLeft = left.lv
	}

	originRight := oplog.LV(oplog.SentinelRight)
	for i := idx; i < len(d.items); i++ {
		if d.items[i].state != NotYetInserted {
			originRight = d.items[i].lv
			break
		}
	}

	newItem := &item{lv: lv, originLeft: originLeft, originRight: originRight, deleted: false, state: Inserted}

	finalIdx, finalEndPos, err := d.integrate(l, newItem, idx, endPos)
	if err != nil {
		return err
	}

	d.items = append(d.items, nil)
	copy(d.items[finalIdx+1:], d.items[finalIdx:])
	d.items[finalIdx] = newItem
	d.itemByLV[lv] = newItem

	d.snapshot = append(d.snapshot, 0)
	copy(d.snapshot[finalEndPos+1:], d.snapshot[finalEndPos:])
	d.snapshot[finalEndPos] = op.Content
	return nil
}

func (d *Doc) applyDelete(lv oplog.LV, op oplog.Op) error {
	idx, endPos, err := d.walk(op.Pos)
	if err != nil {
		return err
	}
	for idx < len(d.items) && d.items[idx].state != Inserted {
		if !d.items[idx].deleted {
			endPos++
		}
		idx++
	}
	if idx >= len(d.items) {
		return errors.Wrapf(errs.ErrReplayInvariant, "WALKED_PAST_END: delete target at pos=%d", op.Pos)
	}

	target := d.items[idx]
	d.delTarget[lv] = target.lv

	target.state++
	if !target.deleted {
		target.deleted = true
		d.snapshot = append(d.snapshot[:endPos], d.snapshot[endPos+1:]...)
	}
	return nil
}

// indexOfLV finds the current item-array index of lv by linear scan.
// Acceptable per the reference algorithm's O(N)-per-apply budget; a
// position-accelerated index is a permitted but unimplemented
// optimization.
func (d *Doc) indexOfLV(lv oplog.LV) (int, bool) {
	for i, it := range d.items {
		if it.lv == lv {
			return i, true
		}
	}
	return -1, false
}

// integrate decides where a newly-applied insert belongs relative to
// concurrently-produced items, implementing the Yjs-style
// originLeft/originRight ordering rule. idx/endPos are the
// current-position walk's preferred insertion point; integrate may
// move the item rightward past concurrent inserts that must sort
// before it.
func (d *Doc) integrate(l *oplog.OpLog, newItem *item, idx, endPos int) (int, int, error) {
	left := idx - 1
	right := len(d.items)
	if newItem.originRight != oplog.SentinelRight {
		ri, ok := d.indexOfLV(newItem.originRight)
		if !ok {
			return 0, 0, errors.Wrapf(errs.ErrReplayInvariant, "ITEM_NOT_FOUND: originRight lv=%d", newItem.originRight)
		}
		right = ri
	}

	newAgent := l.IDOf(newItem.lv).Agent

	scanIdx, scanEndPos := idx, endPos
	committedIdx, committedEndPos := idx, endPos
	scanning := false

	for scanIdx < right {
		other := d.items[scanIdx]
		if other.state != NotYetInserted {
			break
		}

		oleft := -1
		if other.originLeft != oplog.SentinelLeft {
			oi, ok := d.indexOfLV(other.originLeft)
			if !ok {
				return 0, 0, errors.Wrapf(errs.ErrReplayInvariant, "ITEM_NOT_FOUND: originLeft lv=%d", other.originLeft)
			}
			oleft = oi
		}
		oright := len(d.items)
		if other.originRight != oplog.SentinelRight {
			oi, ok := d.indexOfLV(other.originRight)
			if !ok {
				return 0, 0, errors.Wrapf(errs.ErrReplayInvariant, "ITEM_NOT_FOUND: originRight lv=%d", other.originRight)
			}
			oright = oi
		}

		if oleft < left {
			break // new item goes strictly before other
		}
		otherAgent := l.IDOf(other.lv).Agent
		if oleft == left && oright == right && newAgent < otherAgent {
			break // lexicographic agent tie-break at identical origins
		}

		if oleft == left {
			scanning = oright < right
		}

		if !other.deleted {
			scanEndPos++
		}
		scanIdx++

		if !scanning {
			committedIdx = scanIdx
			committedEndPos = scanEndPos
		}
	}

	return committedIdx, committedEndPos, nil
}
