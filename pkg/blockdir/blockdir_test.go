package blockdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowstore/pkg/accessor"
	"rowstore/pkg/schema"
	"rowstore/pkg/subblock"
)

func newTestBlock(t *testing.T, capacity int) *subblock.SubBlock {
	t.Helper()
	rel, err := schema.NewBuilder().Add("a", schema.Int32, 0, false).Build()
	require.NoError(t, err)
	region := make([]byte, subblock.HeaderSize+capacity*rel.FixedByteLength())
	sb, err := subblock.New(rel, subblock.PackedRowStoreDescriptor(), true, region)
	require.NoError(t, err)
	return sb
}

func TestRegisterAssignsIncreasingIDs(t *testing.T) {
	dir := New()
	id0 := dir.Register(newTestBlock(t, 4))
	id1 := dir.Register(newTestBlock(t, 4))
	assert.Equal(t, BlockID(0), id0)
	assert.Equal(t, BlockID(1), id1)
	assert.Equal(t, 2, dir.Len())
}

func TestGetAndRemove(t *testing.T) {
	dir := New()
	sb := newTestBlock(t, 4)
	id := dir.Register(sb)

	got, err := dir.Get(id)
	require.NoError(t, err)
	assert.Same(t, sb, got)

	dir.Remove(id)
	_, err = dir.Get(id)
	assert.Error(t, err)
}

func TestAscendVisitsInOrder(t *testing.T) {
	dir := New()
	for i := 0; i < 3; i++ {
		dir.Register(newTestBlock(t, 4))
	}

	var seen []BlockID
	dir.Ascend(func(id BlockID, sb *subblock.SubBlock) bool {
		seen = append(seen, id)
		return true
	})
	assert.Equal(t, []BlockID{0, 1, 2}, seen)
}

func TestLastNonFullSkipsFullBlocks(t *testing.T) {
	dir := New()
	full := newTestBlock(t, 1)
	full.InsertOne(accessor.TupleLiteral{Values: []accessor.TupleValue{{Data: []byte{1, 0, 0, 0}}}})
	dir.Register(full)

	open := newTestBlock(t, 4)
	openID := dir.Register(open)

	id, sb, ok := dir.LastNonFull(1)
	require.True(t, ok)
	assert.Equal(t, openID, id)
	assert.Same(t, open, sb)
}
