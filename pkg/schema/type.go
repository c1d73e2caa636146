package schema

import "fmt"

// TypeTag is a closed enum of the fixed-byte-length attribute types this
// storage engine knows how to size and null-check. The SQL type system
// proper lives in the catalog metadata service, which this package only
// consumes through a read-only relation schema contract; TypeTag is the
// minimal fixture needed to exercise that contract independently.
type TypeTag int

const (
	Int32 TypeTag = iota
	Int64
	Float64
	CharN
	// NullType has a fixed byte width of zero. A relation built entirely
	// of nullable NullType attributes is the degenerate W=0 case in the
	// layout arithmetic.
	NullType
)

func (t TypeTag) String() string {
	switch t {
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float64:
		return "FLOAT64"
	case CharN:
		return "CHAR"
	case NullType:
		return "NULLTYPE"
	default:
		return fmt.Sprintf("TypeTag(%d)", int(t))
	}
}

// FixedByteLength returns the storage width in bytes for a scalar instance
// of t. CharN's width is not fixed by the tag alone; callers pass it
// explicitly when building the attribute (see Builder.Add).
func (t TypeTag) FixedByteLength(declaredWidth int) (int, error) {
	switch t {
	case Int32:
		return 4, nil
	case Int64:
		return 8, nil
	case Float64:
		return 8, nil
	case NullType:
		return 0, nil
	case CharN:
		if declaredWidth < 0 {
			return 0, fmt.Errorf("schema: CharN attribute needs a non-negative declared width")
		}
		return declaredWidth, nil
	default:
		return 0, fmt.Errorf("schema: unknown type tag %v", t)
	}
}
