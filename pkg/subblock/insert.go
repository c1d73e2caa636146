package subblock

import (
	"github.com/sirupsen/logrus"

	"rowstore/pkg/accessor"
	"rowstore/pkg/schema"
	"rowstore/pkg/subblock/runplan"
)

// InsertResult reports the outcome of a single-tuple insert.
type InsertResult struct {
	// TupleID is the id the tuple was assigned, or -1 if the block had no
	// space.
	TupleID int
	// Reorganized is always false for this implementation: a packed
	// row-store sub-block never reorganizes itself on insert, it simply
	// refuses once full. The field exists so callers written against
	// sub-block kinds that do reorganize (a split row store, say) can
	// share one result type.
	Reorganized bool
}

// InsertOne appends a single tuple, immediately visible. tuple.Values
// must have one entry per attribute of the relation, in attribute order.
func (s *SubBlock) InsertOne(tuple accessor.TupleLiteral) InsertResult {
	if !s.HasSpaceToInsert(1) {
		logrus.Warnf("subblock: insert refused, block full at %d/%d tuples", s.header.numTuples(), s.rowCapacity)
		return InsertResult{TupleID: -1}
	}

	tupleID := s.header.numTuples()
	attrs := s.relation.Attributes()
	assertf(len(tuple.Values) == len(attrs), "subblock: tuple has %d values, relation has %d attributes", len(tuple.Values), len(attrs))

	slot := s.slot(tupleID)
	for i, attr := range attrs {
		v := tuple.Values[i]
		if v.IsNull() {
			s.setNull(tupleID, attr.NullableIndex, true)
			continue
		}
		v.CopyInto(slot[attr.FixedOffset : attr.FixedOffset+attr.MaxByteLength])
		if attr.Nullable {
			s.setNull(tupleID, attr.NullableIndex, false)
		}
	}

	s.header.setNumTuples(tupleID + 1)
	return InsertResult{TupleID: tupleID}
}

func containsGap(attributeMap []schema.AttributeID) bool {
	for _, a := range attributeMap {
		if a == schema.InvalidAttributeID {
			return true
		}
	}
	return false
}

func identityAttributeMap(n int) []schema.AttributeID {
	m := make([]schema.AttributeID, n)
	for i := range m {
		m[i] = schema.AttributeID(i)
	}
	return m
}

// BulkInsertTuples appends every remaining tuple of acc, mapping source
// attributes onto destination attributes 1:1 by position, and commits
// them immediately. It returns the number of tuples actually inserted,
// which is less than the number acc had remaining only if the block
// filled up first.
func (s *SubBlock) BulkInsertTuples(acc accessor.ValueAccessor) int {
	n := s.bulkInsertKernel(identityAttributeMap(s.relation.AttributeCount()), acc, false, degenerateRowCapacity)
	s.CommitInserted(n)
	return n
}

// BulkInsertTuplesWithRemappedAttributes is BulkInsertTuples with an
// explicit destination-position -> source-attribute-id map: attributeMap[i]
// names the source attribute that fills destination attribute i. Every
// entry must be a valid source attribute id; attributeMap must not
// contain schema.InvalidAttributeID, since this entry point always
// compiles its run plan with has_gaps fixed at false. A caller that needs
// to leave some destination attributes untouched wants
// BulkInsertPartialTuples instead.
func (s *SubBlock) BulkInsertTuplesWithRemappedAttributes(attributeMap []schema.AttributeID, acc accessor.ValueAccessor) int {
	n := s.bulkInsertKernel(attributeMap, acc, false, degenerateRowCapacity)
	s.CommitInserted(n)
	return n
}

// BulkInsertPartialTuples inserts at most maxInsert tuples from acc,
// using attributeMap exactly as BulkInsertTuplesWithRemappedAttributes
// does, but does not make them visible: NumTuples is unchanged until the
// caller calls CommitInserted. This is the primitive a caller splitting
// one oversized batch across several sub-blocks uses: write into this
// block up to its remaining capacity, decide how many of those writes to
// keep, then commit.
func (s *SubBlock) BulkInsertPartialTuples(attributeMap []schema.AttributeID, acc accessor.ValueAccessor, maxInsert int) int {
	return s.bulkInsertKernel(attributeMap, acc, containsGap(attributeMap), maxInsert)
}

// CommitInserted advances NumTuples by n, making tuples written by a
// prior BulkInsertPartialTuples call visible. Passing a larger n than
// was actually written corrupts the block; this is a caller contract,
// not something CommitInserted can check.
func (s *SubBlock) CommitInserted(n int) {
	if n <= 0 {
		return
	}
	s.header.setNumTuples(s.header.numTuples() + n)
}

// bulkInsertKernel is the one loop every bulk-insert entry point above
// funnels through: compile attributeMap into a run sequence once, then
// walk acc tuple by tuple, executing the compiled runs against a
// destination cursor that starts at offset 0 of each new tuple's slot.
func (s *SubBlock) bulkInsertKernel(attributeMap []schema.AttributeID, acc accessor.ValueAccessor, hasGaps bool, maxInsert int) int {
	spanSrc, hasSpan := acc.(accessor.RawSpanSource)
	mergeContiguousAttrs := hasSpan && (acc.ImplementationKind() == accessor.PackedRowStore || acc.ImplementationKind() == accessor.SplitRowStore)
	runs := runplan.Plan(s.relation, attributeMap, hasGaps, mergeContiguousAttrs)

	baseNumTuples := s.header.numTuples()
	roomLeft := s.estimateNumTuplesInsertable()
	limit := maxInsert
	if roomLeft < limit {
		limit = roomLeft
	}

	numInserted := 0
	for numInserted < limit && !acc.IterationFinished() {
		if !acc.Next() {
			break
		}
		tupleID := baseNumTuples + numInserted
		dest := s.slot(tupleID)
		cursor := 0

		for _, run := range runs {
			switch run.Type {
			case runplan.Gap:
				cursor += run.BytesToAdvance
			case runplan.ContiguousAttributes:
				if run.BytesToCopy > 0 {
					var src []byte
					if hasSpan {
						src = spanSrc.GetUntypedSpan(run.SourceAttrID, run.BytesToCopy)
					} else {
						src = acc.GetUntypedValue(run.SourceAttrID)
					}
					copy(dest[cursor:cursor+run.BytesToCopy], src)
				}
				cursor += run.BytesToAdvance
			case runplan.NullableAttribute:
				value, ok := acc.GetUntypedValueNullable(run.SourceAttrID)
				if ok {
					copy(dest[cursor:cursor+run.BytesToCopy], value)
				}
				s.setNull(tupleID, run.NullableIndex, !ok)
				cursor += run.BytesToAdvance
			}
		}

		numInserted++
	}

	if numInserted == roomLeft && roomLeft < maxInsert && !acc.IterationFinished() {
		logrus.Warnf("subblock: bulk insert stopped at capacity, wrote %d tuples with source rows still remaining", numInserted)
	}

	return numInserted
}
