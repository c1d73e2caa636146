package runplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowstore/pkg/schema"
)

func buildRelation(t *testing.T, widths []int, nullable []bool) *schema.Relation {
	t.Helper()
	b := schema.NewBuilder()
	for i, w := range widths {
		n := nullable != nil && nullable[i]
		b.Add("a", schema.CharN, w, n)
	}
	rel, err := b.Build()
	require.NoError(t, err)
	return rel
}

func TestPlanMergesContiguousSourceRunIntoOneCopy(t *testing.T) {
	rel := buildRelation(t, []int{4, 4, 8}, nil)
	runs := Plan(rel, []schema.AttributeID{5, 6, 7}, false, true)

	require.Len(t, runs, 1)
	assert.Equal(t, ContiguousAttributes, runs[0].Type)
	assert.Equal(t, schema.AttributeID(5), runs[0].SourceAttrID)
	assert.Equal(t, 16, runs[0].BytesToCopy)
	assert.Equal(t, 16, runs[0].BytesToAdvance)
}

func TestPlanEmitsOneRunPerNullableAttributeRegardlessOfMerge(t *testing.T) {
	rel := buildRelation(t, []int{4, 4, 4}, []bool{true, true, true})
	runs := Plan(rel, []schema.AttributeID{2, 0, 1}, false, true)

	require.Len(t, runs, 3)
	for i, want := range []struct {
		src schema.AttributeID
		idx int
	}{{2, 0}, {0, 1}, {1, 2}} {
		assert.Equal(t, NullableAttribute, runs[i].Type)
		assert.Equal(t, want.src, runs[i].SourceAttrID)
		assert.Equal(t, want.idx, runs[i].NullableIndex)
		assert.Equal(t, 4, runs[i].BytesToCopy)
		assert.Equal(t, 4, runs[i].BytesToAdvance)
	}
}

func TestPlanAbsorbsLeadingAndTrailingGapsWithoutCopying(t *testing.T) {
	rel := buildRelation(t, []int{4, 4, 4, 4}, nil)
	runs := Plan(rel, []schema.AttributeID{
		schema.InvalidAttributeID,
		schema.InvalidAttributeID,
		3,
		schema.InvalidAttributeID,
	}, true, true)

	require.Len(t, runs, 2)

	assert.Equal(t, Gap, runs[0].Type)
	assert.Equal(t, 8, runs[0].BytesToAdvance)
	assert.Equal(t, 0, runs[0].BytesToCopy)

	assert.Equal(t, ContiguousAttributes, runs[1].Type)
	assert.Equal(t, schema.AttributeID(3), runs[1].SourceAttrID)
	assert.Equal(t, 4, runs[1].BytesToCopy)
	assert.Equal(t, 8, runs[1].BytesToAdvance)
}

func TestPlanWithoutMergeEmitsOneRunPerAttribute(t *testing.T) {
	rel := buildRelation(t, []int{4, 4}, nil)
	runs := Plan(rel, []schema.AttributeID{5, 6}, false, false)

	require.Len(t, runs, 2)
	assert.Equal(t, schema.AttributeID(5), runs[0].SourceAttrID)
	assert.Equal(t, schema.AttributeID(6), runs[1].SourceAttrID)
}
