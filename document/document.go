// Package document provides the thin façade a host programs against:
// an oplog, an agent identifier, and a cached snapshot. Local edits
// mutate the snapshot directly; merging from a peer triggers a full
// replay and replaces it.
package document

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/textcrdt/textcrdt/errs"
	"github.com/textcrdt/textcrdt/oplog"
	"github.com/textcrdt/textcrdt/replay"
)

// Doc is a single collaboratively-edited document bound to one agent.
//
// Insert/Delete take the fast path: they append to the oplog and
// splice the cached snapshot directly, without going through the
// replay engine. This is safe only while the local op truly extends
// the current frontier. If the host calls Insert/Delete against a
// stale frontier (e.g. right after absorbing a merge the snapshot
// hasn't caught up with yet), the cached snapshot can silently
// diverge from what a replay would produce. Check() exists to detect
// exactly that; Doc does not prevent it.
type Doc struct {
	agent    string
	log      *oplog.OpLog
	snapshot []rune
}

// New returns an empty document bound to agent.
func New(agent string) *Doc {
	return &Doc{agent: agent, log: oplog.New()}
}

// FromLog returns a document bound to agent whose oplog is l, with
// the cached snapshot materialized by a full replay of l. Use this to
// resume work against an oplog loaded from storage or transport,
// where the in-memory fast-path snapshot doesn't exist yet.
func FromLog(agent string, l *oplog.OpLog) (*Doc, error) {
	rdoc, err := replay.Materialize(l)
	if err != nil {
		return nil, errors.Wrap(err, "document: replay loaded log")
	}
	return &Doc{agent: agent, log: l, snapshot: rdoc.Snapshot()}, nil
}

// Agent returns the agent identifier this document produces ops as.
func (d *Doc) Agent() string { return d.agent }

// OpLog returns the underlying oplog, e.g. for serialization or
// merging into another replica.
func (d *Doc) OpLog() *oplog.OpLog { return d.log }

// Insert splices content into the document at pos, producing one
// INSERT op per code point at increasing positions.
func (d *Doc) Insert(pos int, content string) error {
	if pos < 0 || pos > len(d.snapshot) {
		return errors.Errorf("document: insert pos %d out of bounds (len %d)", pos, len(d.snapshot))
	}
	for i, r := range []rune(content) {
		at := pos + i
		d.log.AppendLocal(d.agent, oplog.OpInsert, at, r)
		d.snapshot = append(d.snapshot, 0)
		copy(d.snapshot[at+1:], d.snapshot[at:])
		d.snapshot[at] = r
	}
	return nil
}

// Delete removes length code points starting at pos, producing one
// DELETE op per removed unit.
func (d *Doc) Delete(pos, length int) error {
	if pos < 0 || length < 0 || pos+length > len(d.snapshot) {
		return errors.Errorf("document: delete [%d,%d) out of bounds (len %d)", pos, pos+length, len(d.snapshot))
	}
	for i := 0; i < length; i++ {
		d.log.AppendLocal(d.agent, oplog.OpDelete, pos, 0)
		d.snapshot = append(d.snapshot[:pos], d.snapshot[pos+1:]...)
	}
	return nil
}

// MergeFrom absorbs other's oplog into this one and replays from
// scratch, replacing the cached snapshot with the replayed result.
func (d *Doc) MergeFrom(other *Doc) error {
	if err := d.log.MergeFrom(other.log); err != nil {
		return errors.Wrap(err, "document: mergeFrom")
	}
	rdoc, err := replay.Materialize(d.log)
	if err != nil {
		return errors.Wrap(err, "document: replay after merge")
	}
	d.snapshot = rdoc.Snapshot()
	return nil
}

// GetText returns the cached snapshot as a string.
func (d *Doc) GetText() string { return string(d.snapshot) }

// Check runs a full replay and compares it against the cached
// snapshot, returning ErrOutOfSync if they differ.
func (d *Doc) Check() error {
	rdoc, err := replay.Materialize(d.log)
	if err != nil {
		return errors.Wrap(err, "document: check replay")
	}
	want := rdoc.Text()
	got := d.GetText()
	if want != got {
		slog.Warn("document: snapshot desync detected", "cached", got, "replayed", want)
		return errors.Wrapf(errs.ErrOutOfSync, "cached %q != replayed %q", got, want)
	}
	return nil
}
