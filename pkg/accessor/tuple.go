package accessor

// TupleLiteral is the source of a single-tuple insert: an ordered list of
// values, one per destination attribute, each either present (Data holds
// its bytes) or null.
type TupleLiteral struct {
	Values []TupleValue
}

// TupleValue is one attribute value within a TupleLiteral.
type TupleValue struct {
	Null bool
	Data []byte
}

// IsNull reports whether this value is null.
func (v TupleValue) IsNull() bool { return v.Null }

// CopyInto copies this value's bytes into dst, which must be at least
// len(v.Data) bytes. Behavior is undefined if v is null.
func (v TupleValue) CopyInto(dst []byte) {
	copy(dst, v.Data)
}
