package subblock

import (
	"rowstore/pkg/accessor"
	"rowstore/pkg/schema"
)

// GetAttributeValue returns attrID's bytes for tupleID, or ok=false if
// the attribute is nullable and currently null. SubBlock satisfies
// accessor.TupleReader through this method and NumTuples, structurally:
// this package never imports accessor to avoid a cycle (accessor returns
// ValueAccessor values built over sub-blocks).
func (s *SubBlock) GetAttributeValue(tupleID int, attrID schema.AttributeID) ([]byte, bool) {
	assertf(tupleID >= 0 && tupleID < s.header.numTuples(), "subblock: tuple id %d out of range [0, %d)", tupleID, s.header.numTuples())

	attr, err := s.relation.AttributeByID(attrID)
	assertf(err == nil, "subblock: %v", err)

	if attr.Nullable && s.isNull(tupleID, attr.NullableIndex) {
		return nil, false
	}
	slot := s.slot(tupleID)
	return slot[attr.FixedOffset : attr.FixedOffset+attr.MaxByteLength], true
}

// GetRawSpan returns numBytes contiguous bytes starting at startAttrID's
// offset within tupleID's slot, satisfying accessor.RawSpanReader. It
// does not check nullability; the bulk-insert kernel only uses this for
// runs the run planner has already classified as a non-nullable
// contiguous span, possibly merging several attributes.
func (s *SubBlock) GetRawSpan(tupleID int, startAttrID schema.AttributeID, numBytes int) []byte {
	attr, err := s.relation.AttributeByID(startAttrID)
	assertf(err == nil, "subblock: %v", err)
	slot := s.slot(tupleID)
	return slot[attr.FixedOffset : attr.FixedOffset+numBytes]
}

func (s *SubBlock) isNull(tupleID, nullableIndex int) bool {
	return s.nullBitmap.Get(tupleID*s.relation.NumNullableAttributes() + nullableIndex)
}

func (s *SubBlock) setNull(tupleID, nullableIndex int, value bool) {
	s.nullBitmap.Set(tupleID*s.relation.NumNullableAttributes()+nullableIndex, value)
}

// SetAttributeValueInPlaceTyped overwrites attrID's value for an
// existing, already-visible tupleID. The new value's byte length must
// equal the attribute's fixed width.
func (s *SubBlock) SetAttributeValueInPlaceTyped(tupleID int, attrID schema.AttributeID, value accessor.TupleValue) error {
	assertf(tupleID >= 0 && tupleID < s.header.numTuples(), "subblock: tuple id %d out of range [0, %d)", tupleID, s.header.numTuples())
	attr, err := s.relation.AttributeByID(attrID)
	assertf(err == nil, "subblock: %v", err)

	if value.IsNull() {
		assertf(attr.Nullable, "subblock: attribute %q is not nullable", attr.Name)
		s.setNull(tupleID, attr.NullableIndex, true)
		return nil
	}

	slot := s.slot(tupleID)
	value.CopyInto(slot[attr.FixedOffset : attr.FixedOffset+attr.MaxByteLength])
	if attr.Nullable {
		s.setNull(tupleID, attr.NullableIndex, false)
	}
	return nil
}

// CreateValueAccessor returns a ValueAccessor over this sub-block's live
// tuples, in tuple-id order. If seq is non-nil, the returned accessor
// visits only the tuple ids it names.
func (s *SubBlock) CreateValueAccessor(seq *accessor.TupleIDSequence) accessor.ValueAccessor {
	base := accessor.NewPackedRowStoreValueAccessor(s, s.header.numTuples())
	if seq == nil {
		return base
	}
	return accessor.NewTupleIDSequenceAdapter(base, seq)
}
