package replay

import "github.com/textcrdt/textcrdt/oplog"

// Item state values. An INSERT's own retreat/advance moves its item
// between NotYetInserted and Inserted; each currently-applied DELETE
// that targets the item raises its state by one above Inserted (1
// after one delete, 2 after two concurrent deletes). state therefore
// counts how many currently-applied DELETEs point at the item, so
// retreat/advance remain correct no matter which DAG path visits it.
const (
	NotYetInserted = -1
	Inserted       = 0
)

// item is the unit the replay engine sorts into a total order: one
// per inserted character, including tombstones. Never removed once
// created; within a single replay deleted only ever goes from false
// to true, while state moves up and down with advance/retreat. Both
// are discarded between replays (replay always starts from empty
// state).
type item struct {
	lv          oplog.LV
	originLeft  oplog.LV
	originRight oplog.LV
	deleted     bool
	state       int
}

// Doc is the replay engine's working state: the total item order, the
// lookup tables a replay needs, the frontier it is currently
// positioned at, and the materialized snapshot. Doc is not safe for
// concurrent use.
type Doc struct {
	items      []*item
	itemByLV   map[oplog.LV]*item
	delTarget  map[oplog.LV]oplog.LV
	curVersion []oplog.LV
	snapshot   []rune
}

// NewDoc returns a replay state positioned at the empty frontier.
func NewDoc() *Doc {
	return &Doc{
		itemByLV:  make(map[oplog.LV]*item),
		delTarget: make(map[oplog.LV]oplog.LV),
	}
}

// Snapshot returns a copy of the materialized content units.
func (d *Doc) Snapshot() []rune { return append([]rune(nil), d.snapshot...) }

// Text returns the materialized content as a string.
func (d *Doc) Text() string { return string(d.snapshot) }

// Version returns a copy of the frontier the replay is positioned at.
func (d *Doc) Version() []oplog.LV { return append([]oplog.LV(nil), d.curVersion...) }
