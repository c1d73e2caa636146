// Package accessor implements the value-accessor contract the tuple
// storage engine's bulk-insert path consumes (§6 of the originating
// specification), plus two concrete streaming sources the engine was
// designed to optimize for: a row-store view over an existing sub-block,
// and a tuple-id-sequence filter over either kind.
package accessor

import "rowstore/pkg/schema"

// ImplementationKind hints at the shape of a ValueAccessor's backing
// storage so the bulk-insert dispatcher can decide whether contiguous
// source attributes are worth merging into one copy.
type ImplementationKind int

const (
	PackedRowStore ImplementationKind = iota
	SplitRowStore
	ColumnStore
	Other
)

// ValueAccessor is the source of bulk inserts: a cursor over source
// tuples with untyped, per-attribute byte access.
type ValueAccessor interface {
	// Next advances to the next source tuple, returning false when
	// iteration is finished.
	Next() bool
	// IterationFinished reports whether Next would return false.
	IterationFinished() bool
	// GetUntypedValueNullable returns the bytes of a (possibly nullable)
	// attribute at the current cursor position, or ok=false if null.
	GetUntypedValueNullable(attrID schema.AttributeID) (value []byte, ok bool)
	// GetUntypedValue returns the bytes of a non-nullable attribute at the
	// current cursor position. Behavior is undefined if attrID is
	// nullable and the value is null; callers only call this for
	// attributes the run planner has already classified as non-nullable.
	GetUntypedValue(attrID schema.AttributeID) []byte
	// ImplementationKind reports the shape hint used by the bulk-insert
	// dispatcher.
	ImplementationKind() ImplementationKind
}

// TupleReader is the minimal read surface a row-store sub-block exposes to
// build a PackedRowStoreValueAccessor over it, without accessor needing to
// import the sub-block package (which itself returns ValueAccessor values).
type TupleReader interface {
	NumTuples() int
	GetAttributeValue(tupleID int, attrID schema.AttributeID) (value []byte, present bool)
}

// RawSpanReader is implemented by TupleReaders whose storage packs an
// entire tuple's attributes contiguously, letting numBytes span several
// consecutive attributes starting at startAttrID in one read.
// GetRawSpan does not consult the null bitmap; callers only use it for
// runs the run planner has already classified as non-nullable.
type RawSpanReader interface {
	GetRawSpan(tupleID int, startAttrID schema.AttributeID, numBytes int) []byte
}

// RawSpanSource is the accessor-side counterpart of RawSpanReader. The
// bulk-insert kernel checks for it before trusting a compiled
// ContiguousAttributes run to copy more bytes than a single
// GetUntypedValue call would return: only an accessor backed by another
// packed row store can honor a multi-attribute span, since only there are
// consecutive attributes actually adjacent in memory.
type RawSpanSource interface {
	GetUntypedSpan(startAttrID schema.AttributeID, numBytes int) []byte
}

// PackedRowStoreValueAccessor is a cursor over a TupleReader's live tuples,
// in tuple-id order. This is the accessor createValueAccessor returns for
// the row-store sub-block itself.
type PackedRowStoreValueAccessor struct {
	reader    TupleReader
	numTuples int
	cursor    int // -1 before the first call to Next
}

// NewPackedRowStoreValueAccessor wraps reader as a ValueAccessor over its
// first numTuples rows.
func NewPackedRowStoreValueAccessor(reader TupleReader, numTuples int) *PackedRowStoreValueAccessor {
	return &PackedRowStoreValueAccessor{reader: reader, numTuples: numTuples, cursor: -1}
}

func (a *PackedRowStoreValueAccessor) Next() bool {
	if a.cursor+1 >= a.numTuples {
		return false
	}
	a.cursor++
	return true
}

func (a *PackedRowStoreValueAccessor) IterationFinished() bool {
	return a.cursor+1 >= a.numTuples
}

func (a *PackedRowStoreValueAccessor) GetUntypedValueNullable(attrID schema.AttributeID) ([]byte, bool) {
	return a.reader.GetAttributeValue(a.cursor, attrID)
}

func (a *PackedRowStoreValueAccessor) GetUntypedValue(attrID schema.AttributeID) []byte {
	v, _ := a.reader.GetAttributeValue(a.cursor, attrID)
	return v
}

func (a *PackedRowStoreValueAccessor) ImplementationKind() ImplementationKind {
	return PackedRowStore
}

// GetUntypedSpan returns numBytes contiguous bytes starting at
// startAttrID's offset within the current tuple. It panics if the
// underlying reader does not implement RawSpanReader; the bulk-insert
// kernel only calls this after confirming that via an interface check.
func (a *PackedRowStoreValueAccessor) GetUntypedSpan(startAttrID schema.AttributeID, numBytes int) []byte {
	spanner, ok := a.reader.(RawSpanReader)
	if !ok {
		panic("accessor: underlying reader does not support raw contiguous spans")
	}
	return spanner.GetRawSpan(a.cursor, startAttrID, numBytes)
}

// Seek repositions the cursor directly at tupleID. Used by
// TupleIDSequenceAdapter, which drives iteration by id rather than by
// linear advance and therefore never calls Next() on the underlying
// accessor itself.
func (a *PackedRowStoreValueAccessor) Seek(tupleID int) {
	a.cursor = tupleID
}
