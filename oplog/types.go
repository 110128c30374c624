package oplog

// LV is a local version: the index of an operation in its owning
// oplog's operation array. LVs are local to a replica. The same
// logical operation has a different LV in every replica that holds
// it.
type LV int

const (
	// SentinelLeft marks an insert produced at the very start of the
	// document (no item immediately to its left at creation time).
	SentinelLeft LV = -1
	// SentinelRight marks an insert produced at the very end of the
	// document. Numerically identical to SentinelLeft but kept as a
	// separate name: the two anchor conceptually different ends of
	// the item order and a reader should never have to infer which
	// from the bare value -1.
	SentinelRight LV = -1
)

// ID is a globally unique (agent, seq) pair identifying an operation
// wherever it travels, independent of any one replica's LV numbering.
type ID struct {
	Agent string
	Seq   int
}

// Kind discriminates the two operation payloads a replica can produce.
type Kind string

const (
	OpInsert Kind = "ins"
	OpDelete Kind = "del"
)

// Op is a tagged record for one insert or delete, as seen by its
// originating replica. Pos is the 0-based position in the document at
// the moment the operation was produced; Content holds the inserted
// code point and is meaningless for OpDelete. Parents is the
// ascending-sorted frontier the originating replica held immediately
// before producing the op; empty means it was produced against an
// empty document.
type Op struct {
	Kind    Kind
	Pos     int
	Content rune
	ID      ID
	Parents []LV
}
