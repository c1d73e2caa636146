package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowstore/pkg/schema"
)

type fakeReader struct {
	numTuples int
	// values[tupleID][attrID] == nil means null
	values [][][]byte
}

func (f *fakeReader) NumTuples() int { return f.numTuples }

func (f *fakeReader) GetAttributeValue(tupleID int, attrID schema.AttributeID) ([]byte, bool) {
	v := f.values[tupleID][int(attrID)]
	return v, v != nil
}

func TestPackedRowStoreValueAccessorIteratesInOrder(t *testing.T) {
	reader := &fakeReader{
		numTuples: 3,
		values: [][][]byte{
			{{1}, nil},
			{{2}, {20}},
			{{3}, nil},
		},
	}

	acc := NewPackedRowStoreValueAccessor(reader, reader.numTuples)
	assert.False(t, acc.IterationFinished())

	var seen []byte
	for acc.Next() {
		v := acc.GetUntypedValue(0)
		seen = append(seen, v[0])
	}
	assert.Equal(t, []byte{1, 2, 3}, seen)
	assert.True(t, acc.IterationFinished())
}

func TestPackedRowStoreValueAccessorNullableLookup(t *testing.T) {
	reader := &fakeReader{
		numTuples: 1,
		values:    [][][]byte{{{1}, nil}},
	}
	acc := NewPackedRowStoreValueAccessor(reader, reader.numTuples)
	require.True(t, acc.Next())

	_, ok := acc.GetUntypedValueNullable(1)
	assert.False(t, ok)

	v, ok := acc.GetUntypedValueNullable(0)
	require.True(t, ok)
	assert.Equal(t, []byte{1}, v)
}

func TestTupleIDSequenceAdapterVisitsOnlyListedIDsInOrder(t *testing.T) {
	reader := &fakeReader{
		numTuples: 5,
		values: [][][]byte{
			{{0}}, {{1}}, {{2}}, {{3}}, {{4}},
		},
	}
	base := NewPackedRowStoreValueAccessor(reader, reader.numTuples)

	seq := NewTupleIDSequence()
	seq.Add(3)
	seq.Add(1)

	adapter := NewTupleIDSequenceAdapter(base, seq)

	var seen []byte
	for adapter.Next() {
		seen = append(seen, adapter.GetUntypedValue(0)[0])
	}
	assert.Equal(t, []byte{1, 3}, seen)
	assert.True(t, adapter.IterationFinished())
}

func TestTupleIDSequenceIsContiguousSuffixOf(t *testing.T) {
	seq := NewTupleIDSequence()
	seq.Add(3)
	seq.Add(4)
	seq.Add(5)
	assert.True(t, seq.IsContiguousSuffixOf(6))
	assert.False(t, seq.IsContiguousSuffixOf(7))

	gappy := NewTupleIDSequence()
	gappy.Add(3)
	gappy.Add(5)
	assert.False(t, gappy.IsContiguousSuffixOf(6))
}
