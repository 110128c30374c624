package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textcrdt/textcrdt/oplog"
)

func TestMaterialize_SoloAuthor(t *testing.T) {
	l := oplog.New()
	l.AppendLocal("s", oplog.OpInsert, 0, 'h')
	l.AppendLocal("s", oplog.OpInsert, 1, 'i')
	l.AppendLocal("s", oplog.OpInsert, 2, '!')

	d, err := Materialize(l)
	require.NoError(t, err)
	assert.Equal(t, "hi!", d.Text())
}

func TestMaterialize_SoloAuthorWithDelete(t *testing.T) {
	l := oplog.New()
	l.AppendLocal("s", oplog.OpInsert, 0, 'a')
	l.AppendLocal("s", oplog.OpInsert, 1, 'b')
	l.AppendLocal("s", oplog.OpInsert, 2, 'c')
	l.AppendLocal("s", oplog.OpDelete, 1, 0)

	d, err := Materialize(l)
	require.NoError(t, err)
	assert.Equal(t, "ac", d.Text())
}

func TestMaterialize_ConcurrentPrepend_AgentTieBreak(t *testing.T) {
	// a and b both insert at the document start concurrently.
	// Lexicographically lower agent ("a" < "b") wins the left slot.
	a := oplog.New()
	a.AppendLocal("a", oplog.OpInsert, 0, 'h')
	a.AppendLocal("a", oplog.OpInsert, 1, 'i')

	b := oplog.New()
	b.AppendLocal("b", oplog.OpInsert, 0, 'y')
	b.AppendLocal("b", oplog.OpInsert, 1, 'o')

	merged := oplog.New()
	require.NoError(t, merged.MergeFrom(a))
	require.NoError(t, merged.MergeFrom(b))

	d, err := Materialize(merged)
	require.NoError(t, err)
	assert.Equal(t, "hiyo", d.Text())
}

func TestMaterialize_InterleavedAuthorsAtIdenticalOrigin(t *testing.T) {
	a := oplog.New()
	a.AppendLocal("a", oplog.OpInsert, 0, 'A')

	b := oplog.New()
	b.AppendLocal("b", oplog.OpInsert, 0, 'B')

	merged := oplog.New()
	require.NoError(t, merged.MergeFrom(a))
	require.NoError(t, merged.MergeFrom(b))

	d, err := Materialize(merged)
	require.NoError(t, err)
	assert.Equal(t, "AB", d.Text())
}

func TestMaterialize_DeleteWithConcurrentInsertInTheHole(t *testing.T) {
	a := oplog.New()
	a.AppendLocal("a", oplog.OpInsert, 0, 'a')
	a.AppendLocal("a", oplog.OpInsert, 1, 'b')
	a.AppendLocal("a", oplog.OpInsert, 2, 'c')

	b := oplog.New()
	require.NoError(t, b.MergeFrom(a))

	a.AppendLocal("a", oplog.OpDelete, 1, 0) // deletes 'b'
	b.AppendLocal("b", oplog.OpInsert, 2, 'X')

	merged := oplog.New()
	require.NoError(t, merged.MergeFrom(a))
	require.NoError(t, merged.MergeFrom(b))

	d, err := Materialize(merged)
	require.NoError(t, err)
	assert.Equal(t, "aXc", d.Text())
}

func TestMaterialize_OrderIndependence(t *testing.T) {
	a := oplog.New()
	a.AppendLocal("a", oplog.OpInsert, 0, 'a')
	a.AppendLocal("a", oplog.OpInsert, 1, 'b')

	b := oplog.New()
	require.NoError(t, b.MergeFrom(a))
	a.AppendLocal("a", oplog.OpDelete, 1, 0)
	b.AppendLocal("b", oplog.OpInsert, 2, 'X')

	// Linearization 1: merge a into fresh, then b.
	l1 := oplog.New()
	require.NoError(t, l1.MergeFrom(a))
	require.NoError(t, l1.MergeFrom(b))

	// Linearization 2: merge b into fresh, then a.
	l2 := oplog.New()
	require.NoError(t, l2.MergeFrom(b))
	require.NoError(t, l2.MergeFrom(a))

	d1, err := Materialize(l1)
	require.NoError(t, err)
	d2, err := Materialize(l2)
	require.NoError(t, err)
	assert.Equal(t, d1.Text(), d2.Text())
}

func TestMaterialize_MonotoneGrowth(t *testing.T) {
	l := oplog.New()
	l.AppendLocal("s", oplog.OpInsert, 0, 'a')
	l.AppendLocal("s", oplog.OpInsert, 1, 'b')
	l.AppendLocal("s", oplog.OpDelete, 0, 0)

	d, err := Materialize(l)
	require.NoError(t, err)
	assert.Len(t, d.items, 2, "tombstones are never reclaimed")
	for _, it := range d.items {
		if it.lv == 0 {
			assert.True(t, it.deleted)
		}
	}
}
