package version

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/textcrdt/textcrdt/oplog"
)

// linearParents wraps a literal LV -> parents map as a ParentsFunc.
func linearParents(parents map[oplog.LV][]oplog.LV) ParentsFunc {
	return func(lv oplog.LV) []oplog.LV { return parents[lv] }
}

func TestExpand_Linear(t *testing.T) {
	parentsOf := linearParents(map[oplog.LV][]oplog.LV{
		0: nil,
		1: {0},
		2: {1},
	})
	got := Expand(parentsOf, []oplog.LV{2})
	assert.Equal(t, map[oplog.LV]struct{}{0: {}, 1: {}, 2: {}}, got)
}

func TestExpand_EmptyFrontier(t *testing.T) {
	parentsOf := linearParents(nil)
	got := Expand(parentsOf, nil)
	assert.Empty(t, got)
}

func TestDiff_Diamond(t *testing.T) {
	// 0 is root; 1 and 2 both descend from 0; 3 merges 1 and 2.
	parentsOf := linearParents(map[oplog.LV][]oplog.LV{
		0: nil,
		1: {0},
		2: {0},
		3: {1, 2},
	})

	aOnly, bOnly := Diff(parentsOf, []oplog.LV{1}, []oplog.LV{2})
	assert.Equal(t, []oplog.LV{1}, aOnly)
	assert.Equal(t, []oplog.LV{2}, bOnly)

	// A frontier that dominates the other yields one empty side.
	aOnly, bOnly = Diff(parentsOf, []oplog.LV{3}, []oplog.LV{1})
	assert.Equal(t, []oplog.LV{2, 3}, aOnly)
	assert.Empty(t, bOnly)
}

func TestDiff_Equal(t *testing.T) {
	parentsOf := linearParents(map[oplog.LV][]oplog.LV{0: nil, 1: {0}})
	aOnly, bOnly := Diff(parentsOf, []oplog.LV{1}, []oplog.LV{1})
	assert.Empty(t, aOnly)
	assert.Empty(t, bOnly)
}
