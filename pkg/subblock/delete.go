package subblock

import "rowstore/pkg/accessor"

// DeleteTuple removes tupleID, sliding every tuple after it down by one
// slot to keep the block dense. It returns false both when tupleID is out
// of range and when tupleID was the last tuple (dropping the header count
// by one needs no byte or bitmap movement); it returns true only when a
// shift of the following tuples actually happened.
func (s *SubBlock) DeleteTuple(tupleID int) bool {
	numTuples := s.header.numTuples()
	if tupleID < 0 || tupleID >= numTuples {
		return false
	}

	if tupleID == numTuples-1 {
		s.header.setNumTuples(numTuples - 1)
		return false
	}

	copy(s.region[s.slotOffset(tupleID):s.slotOffset(numTuples-1)], s.region[s.slotOffset(tupleID+1):s.slotOffset(numTuples)])
	if s.nullBitmap != nil {
		nNull := s.relation.NumNullableAttributes()
		s.nullBitmap.ShiftTailForward(tupleID*nNull, nNull)
	}

	s.header.setNumTuples(numTuples - 1)
	return true
}

// BulkDeleteTuples removes every tuple id in seq, compacting the
// survivors forward. It returns false when there was nothing to do (seq
// empty) or when seq names exactly the tail of the block (the common
// "delete everything from id N onward" case degenerates to a header
// update with no byte or bitmap movement); it returns true only when it
// actually repacked surviving tuples.
func (s *SubBlock) BulkDeleteTuples(seq *accessor.TupleIDSequence) bool {
	if seq.Empty() {
		return false
	}

	numTuples := s.header.numTuples()
	if seq.IsContiguousSuffixOf(numTuples) {
		s.header.setNumTuples(seq.Front())
		return false
	}

	ids := seq.SortedIDs()
	nNull := 0
	if s.nullBitmap != nil {
		nNull = s.relation.NumNullableAttributes()
	}

	writePos := ids[0]
	delIdx := 0
	for readPos := ids[0]; readPos < numTuples; readPos++ {
		if delIdx < len(ids) && readPos == ids[delIdx] {
			delIdx++
			continue
		}
		copy(s.slot(writePos), s.slot(readPos))
		for k := 0; k < nNull; k++ {
			s.nullBitmap.Set(writePos*nNull+k, s.nullBitmap.Get(readPos*nNull+k))
		}
		writePos++
	}

	s.header.setNumTuples(writePos)
	return true
}
