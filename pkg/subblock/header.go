package subblock

import "encoding/binary"

// HeaderSize is H: the fixed leading region holding only num_tuples, a
// single 64-bit little-endian field (spec.md §6's persisted-state layout).
const HeaderSize = 8

// header is a thin view over region[0:HeaderSize].
type header struct {
	region []byte
}

func (h header) numTuples() int {
	return int(binary.LittleEndian.Uint64(h.region))
}

func (h header) setNumTuples(n int) {
	binary.LittleEndian.PutUint64(h.region, uint64(n))
}

// DescriptorKind names the tuple-storage sub-block kind a Descriptor
// claims to describe. This package only ever accepts PackedRowStore.
type DescriptorKind int

const (
	PackedRowStore DescriptorKind = iota
	SplitRowStore
	ColumnStore
)

// Descriptor is the minimal construction-time contract spec.md §4.2
// validates before building a SubBlock: an initialized marker and a kind
// tag.
type Descriptor struct {
	Initialized bool
	Kind        DescriptorKind
}

// PackedRowStoreDescriptor returns a valid descriptor for this package's
// own kind.
func PackedRowStoreDescriptor() Descriptor {
	return Descriptor{Initialized: true, Kind: PackedRowStore}
}
