package accessor

import "rowstore/pkg/schema"

// seekable is satisfied by ValueAccessor implementations that support
// direct positioning by tuple id, which a TupleIDSequenceAdapter needs to
// visit an arbitrary, non-contiguous id list.
type seekable interface {
	Seek(tupleID int)
}

// TupleIDSequenceAdapter wraps a base ValueAccessor and visits only the
// tuple ids named by a TupleIDSequence, in ascending order. This is the
// "wraps the base iterator and visits only the listed ids" adapter
// createValueAccessor returns when given a selection.
type TupleIDSequenceAdapter struct {
	base ValueAccessor
	seek seekable
	ids  []int
	pos  int // index into ids, -1 before the first Next()
}

// NewTupleIDSequenceAdapter builds an adapter over base, which must also
// implement seekable (PackedRowStoreValueAccessor does).
func NewTupleIDSequenceAdapter(base ValueAccessor, seq *TupleIDSequence) *TupleIDSequenceAdapter {
	seeker, ok := base.(seekable)
	if !ok {
		panic("accessor: base ValueAccessor does not support seeking, cannot filter by tuple id sequence")
	}
	return &TupleIDSequenceAdapter{base: base, seek: seeker, ids: seq.SortedIDs(), pos: -1}
}

func (a *TupleIDSequenceAdapter) Next() bool {
	if a.pos+1 >= len(a.ids) {
		return false
	}
	a.pos++
	a.seek.Seek(a.ids[a.pos])
	return true
}

func (a *TupleIDSequenceAdapter) IterationFinished() bool {
	return a.pos+1 >= len(a.ids)
}

func (a *TupleIDSequenceAdapter) GetUntypedValueNullable(attrID schema.AttributeID) ([]byte, bool) {
	return a.base.GetUntypedValueNullable(attrID)
}

func (a *TupleIDSequenceAdapter) GetUntypedValue(attrID schema.AttributeID) []byte {
	return a.base.GetUntypedValue(attrID)
}

func (a *TupleIDSequenceAdapter) ImplementationKind() ImplementationKind {
	return a.base.ImplementationKind()
}
