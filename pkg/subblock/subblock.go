// Package subblock implements the packed (non-split) fixed-width
// row-store tuple storage engine: one sub-block packs each tuple's
// attribute bytes contiguously, with a single shared bitmap tracking
// which attributes of which tuples are null.
//
// Layout and bulk-insert logic are a direct transliteration of
// _examples/original_source/storage/PackedRowStoreTupleStorageSubBlock.cpp,
// generalized where the teacher repo's idiom called for it (error
// returns instead of CHECK-fatal, an explicit Descriptor instead of a
// protobuf message).
package subblock

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"rowstore/pkg/bitmap"
	"rowstore/pkg/schema"
)

// degenerateRowCapacity is the fallback row count used only when a
// relation's fixed width and nullable-attribute count are both zero:
// every attribute is a non-nullable NullType column, so no region byte
// or bitmap bit constrains how many tuples fit. This is a pathological
// relation (no real catalog would build one) but the constructor still
// needs a defined answer.
const degenerateRowCapacity = 1<<31 - 1

// SubBlock is a packed row-store tuple storage sub-block built over a
// fixed-size memory region. The region's first HeaderSize bytes hold the
// header, followed by the null bitmap (if the relation has any nullable
// attributes), followed by the packed tuple slots.
type SubBlock struct {
	relation *schema.Relation
	region   []byte
	header   header

	nullBitmapBytes int
	nullBitmap      *bitmap.NullBitmap // nil if relation has no nullable attributes

	tupleBase   int // byte offset of slot 0 within region
	rowCapacity int // R
}

// New builds a SubBlock over region for relation. newBlock must be true
// when region has never held this sub-block's data before (the header
// and null bitmap are zeroed); it must be false when region already
// holds a previously persisted sub-block, in which case the existing
// header and bitmap contents are trusted as-is.
func New(relation *schema.Relation, descriptor Descriptor, newBlock bool, region []byte) (*SubBlock, error) {
	if !descriptor.Initialized || descriptor.Kind != PackedRowStore {
		return nil, fmt.Errorf("%w: packed row store requires an initialized PackedRowStore descriptor", ErrInvalidDescriptor)
	}
	if len(region) < HeaderSize {
		return nil, fmt.Errorf("%w: region is %d bytes, header alone needs %d", ErrBlockMemoryTooSmall, len(region), HeaderSize)
	}

	w := relation.FixedByteLength()
	nNull := relation.NumNullableAttributes()
	available := len(region) - HeaderSize

	var rowCapacity, nullBitmapBytes int
	denom := w*8 + nNull
	if denom == 0 {
		rowCapacity = degenerateRowCapacity
		nullBitmapBytes = 0
	} else {
		rowCapacity = (available * 8) / denom
		if nNull > 0 {
			nullBitmapBytes = bitmap.BytesNeeded(rowCapacity * nNull)
		}
	}

	tupleBase := HeaderSize + nullBitmapBytes
	if rowCapacity*w+tupleBase > len(region) {
		// The closed form above already keeps rowCapacity*w plus the
		// rounded-up bitmap bytes within the region; this guard only
		// re-checks that invariant, shrinking by one row if it fails.
		rowCapacity--
		if nNull > 0 {
			nullBitmapBytes = bitmap.BytesNeeded(rowCapacity * nNull)
			tupleBase = HeaderSize + nullBitmapBytes
		}
	}
	if rowCapacity <= 0 {
		return nil, fmt.Errorf("%w: region of %d bytes cannot hold even one tuple of width %d with %d nullable attributes", ErrBlockMemoryTooSmall, len(region), w, nNull)
	}

	sb := &SubBlock{
		relation:        relation,
		region:          region,
		header:          header{region: region[:HeaderSize]},
		nullBitmapBytes: nullBitmapBytes,
		tupleBase:       tupleBase,
		rowCapacity:     rowCapacity,
	}
	if nNull > 0 {
		sb.nullBitmap = bitmap.New(region[HeaderSize:tupleBase], rowCapacity*nNull)
	}

	if newBlock {
		sb.header.setNumTuples(0)
		if sb.nullBitmap != nil {
			sb.nullBitmap.Clear()
		}
	}

	logrus.Debugf("subblock: built over %d-byte region, row capacity %d, width %d, %d nullable attributes", len(region), rowCapacity, w, nNull)
	return sb, nil
}

// NumTuples returns the number of visible tuples. Tuples written by
// BulkInsertPartialTuples are not counted until CommitInserted.
func (s *SubBlock) NumTuples() int {
	return s.header.numTuples()
}

// RowCapacity returns R, the maximum number of tuples the region can hold.
func (s *SubBlock) RowCapacity() int {
	return s.rowCapacity
}

func (s *SubBlock) slotOffset(tupleID int) int {
	return s.tupleBase + tupleID*s.relation.FixedByteLength()
}

func (s *SubBlock) slot(tupleID int) []byte {
	w := s.relation.FixedByteLength()
	off := s.slotOffset(tupleID)
	return s.region[off : off+w]
}

// EstimateBytesPerTuple returns an upper bound on the region bytes a
// single inserted tuple of relation consumes: its fixed width plus its
// null bits rounded up to whole bytes.
func EstimateBytesPerTuple(relation *schema.Relation) int {
	w := relation.FixedByteLength()
	nNull := relation.NumNullableAttributes()
	return w + (nNull+7)/8
}

// HasSpaceToInsert reports whether numTuples additional tuples can be
// inserted without reorganizing the block.
func (s *SubBlock) HasSpaceToInsert(numTuples int) bool {
	if s.header.numTuples()+numTuples > s.rowCapacity {
		return false
	}
	if s.nullBitmap != nil {
		// The null bitmap must also hold a bit for every nullable
		// attribute of every tuple after the insert.
		return (s.header.numTuples()+numTuples)*s.relation.NumNullableAttributes() <= s.nullBitmap.Size()
	}
	return true
}

func (s *SubBlock) estimateNumTuplesInsertable() int {
	w := s.relation.FixedByteLength()
	used := s.header.numTuples()
	byBytes := s.rowCapacity - used
	if w == 0 {
		return byBytes
	}
	if s.nullBitmap == nil {
		return byBytes
	}
	nNull := s.relation.NumNullableAttributes()
	remainingBits := s.nullBitmap.Size() - used*nNull
	byBits := degenerateRowCapacity
	if nNull > 0 {
		byBits = remainingBits / nNull
	}
	if byBytes < byBits {
		return byBytes
	}
	return byBits
}
