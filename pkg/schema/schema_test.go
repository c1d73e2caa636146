package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, b *Builder) *Relation {
	rel, err := b.Build()
	require.NoError(t, err)
	return rel
}

func TestBuilderDerivesOffsetsAndNullableIndex(t *testing.T) {
	rel := mustBuild(t, NewBuilder().
		Add("a", Int32, 0, false).
		Add("b", Int64, 0, true).
		Add("c", CharN, 12, false).
		Add("d", Float64, 0, true))

	assert.Equal(t, 4, rel.AttributeCount())
	assert.Equal(t, 4+8+12+8, rel.FixedByteLength())
	assert.Equal(t, 2, rel.NumNullableAttributes())
	assert.True(t, rel.HasNullableAttributes())

	a, err := rel.AttributeByID(0)
	require.NoError(t, err)
	assert.Equal(t, 0, a.FixedOffset)
	assert.Equal(t, InvalidAttributeID, AttributeID(a.NullableIndex))

	b, err := rel.AttributeByID(1)
	require.NoError(t, err)
	assert.Equal(t, 4, b.FixedOffset)
	assert.Equal(t, 0, b.NullableIndex)

	c, err := rel.AttributeByID(2)
	require.NoError(t, err)
	assert.Equal(t, 12, c.FixedOffset)

	d, err := rel.AttributeByID(3)
	require.NoError(t, err)
	assert.Equal(t, 24, d.FixedOffset)
	assert.Equal(t, 1, d.NullableIndex)
}

func TestBuilderRejectsNegativeCharNWidth(t *testing.T) {
	_, err := NewBuilder().Add("s", CharN, -1, false).Build()
	assert.Error(t, err)
}

func TestBuilderRejectsEmptyRelation(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.Error(t, err)
}

func TestRelationAttributeByIDOutOfRange(t *testing.T) {
	rel := mustBuild(t, NewBuilder().Add("a", Int32, 0, false))
	_, err := rel.AttributeByID(5)
	assert.Error(t, err)
	assert.False(t, rel.HasAttributeWithID(5))
	assert.True(t, rel.HasAttributeWithID(0))
}

func TestMaximumAttributeByteLengths(t *testing.T) {
	rel := mustBuild(t, NewBuilder().
		Add("a", Int32, 0, false).
		Add("b", CharN, 20, true))
	assert.Equal(t, []int{4, 20}, rel.MaximumAttributeByteLengths())
}

func TestAllNullTypeRelationHasZeroWidth(t *testing.T) {
	rel := mustBuild(t, NewBuilder().Add("void", NullType, 0, true))
	assert.Equal(t, 0, rel.FixedByteLength())
	assert.Equal(t, 1, rel.NumNullableAttributes())
}
