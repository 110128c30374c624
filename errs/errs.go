// Package errs holds the sentinel error kinds surfaced by the oplog,
// replay, and document layers. Callers test for a specific kind with
// errors.Is. Apart from ErrDuplicate, which AppendRemote returns bare,
// the sentinels are returned wrapped with a stack trace via
// github.com/pkg/errors so a verbose caller can pinpoint where in a
// walk or append an invariant broke.
package errs

import "errors"

var (
	// ErrIDUnknown: an op's parent Id was not present in the log when
	// AppendRemote ran. The caller must ship ops causally.
	ErrIDUnknown = errors.New("oplog: ID_UNKNOWN")

	// ErrSeqGap: a remote op's seq skipped ahead of version[agent]+1.
	ErrSeqGap = errors.New("oplog: SEQ_GAP")

	// ErrDuplicate: the (agent, seq) pair was already present. Not a
	// failure. Callers absorb it silently and continue.
	ErrDuplicate = errors.New("oplog: DUPLICATE_OP")

	// ErrReplayInvariant covers ITEM_NOT_FOUND, WALKED_PAST_END,
	// LEFT_NOT_INSERTED, state-underflow, and delete-on-insert-kind.
	// All are non-recoverable: the replay aborts.
	ErrReplayInvariant = errors.New("replay: REPLAY_INVARIANT")

	// ErrOutOfSync: Check() found the cached snapshot diverged from a
	// fresh replay. Indicates a bug in the local fast-path mutator.
	ErrOutOfSync = errors.New("document: OUT_OF_SYNC")
)
