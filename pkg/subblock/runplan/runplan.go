// Package runplan compiles an attribute-remapping vector into a minimal
// sequence of copy/null/gap runs for the bulk-insert kernel.
//
// This is a direct transliteration of the anonymous-namespace Run struct
// and getRunsForAttributeMap<...> template in
// _examples/original_source/storage/PackedRowStoreTupleStorageSubBlock.cpp.
// The three template bools (has_nullable_attrs, has_gaps,
// merge_contiguous_attrs) become three ordinary bool parameters, per the
// spec's own guidance for implementers without templates: collapse to one
// variant guarded by loop-invariant booleans rather than generating eight
// copies of the function.
package runplan

import "rowstore/pkg/schema"

// RunType tags the action a Run performs against the destination cursor.
type RunType int

const (
	ContiguousAttributes RunType = iota
	NullableAttribute
	Gap
)

// Run is a single compiled instruction consumed by the bulk-insert kernel.
// A five-field tagged struct is adequate (spec.md §9 "Run representation");
// the planner runs once per bulk call and the kernel reads the sequence
// straight through, so a more compact encoding buys nothing measurable.
type Run struct {
	Type            RunType
	SourceAttrID    schema.AttributeID // meaningful for ContiguousAttributes/NullableAttribute
	BytesToCopy     int
	BytesToAdvance  int
	NullableIndex   int // meaningful for NullableAttribute; -1 otherwise
}

func isNullable(relation *schema.Relation, attrID schema.AttributeID) (nullableIdx int, ok bool) {
	attr, err := relation.AttributeByID(attrID)
	if err != nil || !attr.Nullable {
		return int(schema.InvalidAttributeID), false
	}
	return attr.NullableIndex, true
}

// contiguousRun builds a ContiguousAttributes run spanning numContiguous
// attributes starting at startIdx (an index into attributeMap), absorbing
// numGaps trailing gap entries into BytesToAdvance only.
func contiguousRun(attributeMap []schema.AttributeID, widths []int, startIdx, numContiguous, numGaps int) Run {
	bytesToCopy := 0
	for i := 0; i < numContiguous; i++ {
		bytesToCopy += widths[startIdx+i]
	}
	bytesToAdvance := bytesToCopy
	gapStart := startIdx + numContiguous
	for i := 0; i < numGaps; i++ {
		bytesToAdvance += widths[gapStart+i]
	}
	return Run{
		Type:           ContiguousAttributes,
		SourceAttrID:   attributeMap[startIdx],
		BytesToCopy:    bytesToCopy,
		BytesToAdvance: bytesToAdvance,
		NullableIndex:  int(schema.InvalidAttributeID),
	}
}

func nullableRun(attributeMap []schema.AttributeID, widths []int, attrIdx, nullableIdx, numGaps int) Run {
	bytesToCopy := widths[attrIdx]
	bytesToAdvance := bytesToCopy
	gapStart := attrIdx + 1
	for i := 0; i < numGaps; i++ {
		bytesToAdvance += widths[gapStart+i]
	}
	return Run{
		Type:           NullableAttribute,
		SourceAttrID:   attributeMap[attrIdx],
		BytesToCopy:    bytesToCopy,
		BytesToAdvance: bytesToAdvance,
		NullableIndex:  nullableIdx,
	}
}

func emptyNullableRun(attributeMap []schema.AttributeID, attrIdx, nullableIdx int) Run {
	return Run{
		Type:          NullableAttribute,
		SourceAttrID:  attributeMap[attrIdx],
		NullableIndex: nullableIdx,
	}
}

func gapRun(widths []int, numGaps int) Run {
	bytesToAdvance := 0
	for i := 0; i < numGaps; i++ {
		bytesToAdvance += widths[i]
	}
	return Run{
		Type:           Gap,
		SourceAttrID:   schema.InvalidAttributeID,
		BytesToAdvance: bytesToAdvance,
		NullableIndex:  int(schema.InvalidAttributeID),
	}
}

// Plan compiles attributeMap (destination attribute position -> source
// attribute id, or schema.InvalidAttributeID for a gap) against relation
// (the *destination* relation, whose nullable-index map the kernel checks
// against) into a run sequence.
//
// hasGaps must be true only when attributeMap may contain
// schema.InvalidAttributeID entries (the partial bulk-insert path).
// mergeContiguousAttrs must be true only when the source is itself a row
// store, so that destination attributes whose source ids are consecutive
// get coalesced into one copy.
func Plan(relation *schema.Relation, attributeMap []schema.AttributeID, hasGaps, mergeContiguousAttrs bool) []Run {
	widths := relation.MaximumAttributeByteLengths()
	numAttrs := len(attributeMap)
	runs := make([]Run, 0, numAttrs)

	myAttr := 0

	if hasGaps && mergeContiguousAttrs {
		for myAttr < numAttrs && attributeMap[myAttr] == schema.InvalidAttributeID {
			myAttr++
		}
		if myAttr > 0 {
			runs = append(runs, gapRun(widths, myAttr))
		}
	}

	for myAttr < numAttrs {
		runStart := myAttr
		nullableIdx, nullable := isNullable(relation, schema.AttributeID(myAttr))

		if !nullable {
			myAttr++
			if mergeContiguousAttrs {
				for myAttr < numAttrs &&
					attributeMap[myAttr] != schema.InvalidAttributeID &&
					attributeMap[myAttr] == attributeMap[myAttr-1]+1 {
					myAttr++
				}
			}
			gapStart := myAttr
			if hasGaps {
				for myAttr < numAttrs && attributeMap[myAttr] == schema.InvalidAttributeID {
					myAttr++
				}
			}

			runs = append(runs, contiguousRun(attributeMap, widths, runStart, gapStart-runStart, myAttr-gapStart))

			for a := runStart + 1; a < gapStart; a++ {
				if idx, ok := isNullable(relation, schema.AttributeID(a)); ok {
					runs = append(runs, emptyNullableRun(attributeMap, a, idx))
				}
			}
		} else {
			myAttr++
			gapStart := myAttr
			if hasGaps {
				for myAttr < numAttrs && attributeMap[myAttr] == schema.InvalidAttributeID {
					myAttr++
				}
			}
			runs = append(runs, nullableRun(attributeMap, widths, runStart, nullableIdx, myAttr-gapStart))
		}
	}

	return runs
}
