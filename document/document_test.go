package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertDelete_SoloAuthor(t *testing.T) {
	d := New("s")
	require.NoError(t, d.Insert(0, "hi"))
	require.NoError(t, d.Insert(2, "!"))
	assert.Equal(t, "hi!", d.GetText())
	require.NoError(t, d.Check())

	require.NoError(t, d.Delete(2, 1))
	assert.Equal(t, "hi", d.GetText())
	require.NoError(t, d.Check())
}

func TestInsert_OutOfBounds(t *testing.T) {
	d := New("s")
	require.NoError(t, d.Insert(0, "hi"))
	assert.Error(t, d.Insert(10, "x"))
	assert.Error(t, d.Insert(-1, "x"))
}

func TestDelete_OutOfBounds(t *testing.T) {
	d := New("s")
	require.NoError(t, d.Insert(0, "hi"))
	assert.Error(t, d.Delete(1, 5))
	assert.Error(t, d.Delete(-1, 1))
}

func TestMergeFrom_ConcurrentPrepend(t *testing.T) {
	a := New("a")
	b := New("b")
	require.NoError(t, a.Insert(0, "hi"))
	require.NoError(t, b.Insert(0, "yo"))

	require.NoError(t, a.MergeFrom(b))
	require.NoError(t, b.MergeFrom(a))

	assert.Equal(t, a.GetText(), b.GetText())
	assert.Equal(t, "hiyo", a.GetText())
	require.NoError(t, a.Check())
	require.NoError(t, b.Check())
}

func TestMergeFrom_ConcurrentInsertAfterMerge(t *testing.T) {
	a := New("a")
	b := New("b")
	require.NoError(t, a.Insert(0, "hi"))
	require.NoError(t, b.Insert(0, "yo"))
	require.NoError(t, a.MergeFrom(b))
	require.NoError(t, b.MergeFrom(a))

	require.NoError(t, a.Insert(4, "x"))
	require.NoError(t, b.MergeFrom(a))

	assert.Equal(t, "hiyox", a.GetText())
	assert.Equal(t, "hiyox", b.GetText())
}

func TestMergeFrom_IdempotentReMerge(t *testing.T) {
	a := New("a")
	b := New("b")
	require.NoError(t, a.Insert(0, "hi"))
	require.NoError(t, b.MergeFrom(a))
	before := b.GetText()

	require.NoError(t, b.MergeFrom(a))
	assert.Equal(t, before, b.GetText())
}

func TestFromLog_ResumesWithMaterializedSnapshot(t *testing.T) {
	a := New("a")
	require.NoError(t, a.Insert(0, "hi"))
	require.NoError(t, a.Insert(2, "!"))

	resumed, err := FromLog("a", a.OpLog())
	require.NoError(t, err)
	assert.Equal(t, "hi!", resumed.GetText())
}

func TestCheck_DetectsOutOfSync(t *testing.T) {
	d := New("s")
	require.NoError(t, d.Insert(0, "hi"))
	d.snapshot[0] = 'X' // corrupt the cache directly, bypassing the fast path
	err := d.Check()
	assert.Error(t, err)
}
