package accessor

import "github.com/RoaringBitmap/roaring"

// TupleIDSequence is a sorted set of tuple ids: the "external tuple-id
// selection" §4.4/§4.5 of the originating spec names as the optional
// filter for CreateValueAccessor and the input to BulkDeleteTuples.
//
// Backed by a RoaringBitmap, repurposed from the teacher's own use of
// roaring.Bitmap for MVCC delete-mask tracking
// (XuPeng-SH-tae_design/pkg/txn/blkupdates.go: baseDeletes/localDeletes)
// into a general sorted row-id set: the same "compact set of dense
// integers" shape, a different job.
type TupleIDSequence struct {
	bm *roaring.Bitmap
}

// NewTupleIDSequence returns an empty sequence.
func NewTupleIDSequence() *TupleIDSequence {
	return &TupleIDSequence{bm: roaring.NewBitmap()}
}

// Add inserts tupleID into the sequence.
func (s *TupleIDSequence) Add(tupleID int) {
	s.bm.Add(uint32(tupleID))
}

// Contains reports whether tupleID is in the sequence.
func (s *TupleIDSequence) Contains(tupleID int) bool {
	return s.bm.Contains(uint32(tupleID))
}

// Empty reports whether the sequence has no members.
func (s *TupleIDSequence) Empty() bool {
	return s.bm.IsEmpty()
}

// NumTuples returns the cardinality of the sequence.
func (s *TupleIDSequence) NumTuples() int {
	return int(s.bm.GetCardinality())
}

// Front returns the smallest tuple id in the sequence. Undefined if Empty().
func (s *TupleIDSequence) Front() int {
	return int(s.bm.Minimum())
}

// Back returns the largest tuple id in the sequence. Undefined if Empty().
func (s *TupleIDSequence) Back() int {
	return int(s.bm.Maximum())
}

// SortedIDs returns the sequence's members in ascending order.
func (s *TupleIDSequence) SortedIDs() []int {
	raw := s.bm.ToArray()
	ids := make([]int, len(raw))
	for i, v := range raw {
		ids[i] = int(v)
	}
	return ids
}

// IsContiguousSuffixOf reports whether the sequence is exactly the
// contiguous run [front, numTuples), which lets BulkDeleteTuples truncate
// instead of repacking.
func (s *TupleIDSequence) IsContiguousSuffixOf(numTuples int) bool {
	if s.Empty() {
		return false
	}
	return s.Back() == numTuples-1 && s.Back()-s.Front() == s.NumTuples()-1
}
