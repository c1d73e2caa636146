package schema

import "fmt"

// Builder accumulates attributes in declared order and freezes them into
// an immutable *Relation. Offsets and the nullable index are derived once,
// at Build time, not maintained incrementally.
type Builder struct {
	attrs []Attribute
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a fixed-length attribute. declaredWidth is only consulted
// for CharN; pass 0 for every other type tag.
func (b *Builder) Add(name string, t TypeTag, declaredWidth int, nullable bool) *Builder {
	if b.err != nil {
		return b
	}
	width, err := t.FixedByteLength(declaredWidth)
	if err != nil {
		b.err = err
		return b
	}
	b.attrs = append(b.attrs, Attribute{
		ID:            AttributeID(len(b.attrs)),
		Name:          name,
		Type:          t,
		MaxByteLength: width,
		Nullable:      nullable,
	})
	return b
}

// Build freezes the accumulated attributes into a *Relation, deriving
// fixed offsets (strictly increasing, no aliasing) and the nullable index
// subsequence.
func (b *Builder) Build() (*Relation, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.attrs) == 0 {
		return nil, fmt.Errorf("schema: relation must have at least one attribute")
	}

	attrs := make([]Attribute, len(b.attrs))
	copy(attrs, b.attrs)

	offset := 0
	nullableIdx := 0
	for i := range attrs {
		attrs[i].FixedOffset = offset
		offset += attrs[i].MaxByteLength
		if attrs[i].Nullable {
			attrs[i].NullableIndex = nullableIdx
			nullableIdx++
		} else {
			attrs[i].NullableIndex = int(InvalidAttributeID)
		}
	}

	return &Relation{
		attrs:           attrs,
		fixedByteLength: offset,
		numNullable:     nullableIdx,
		variableLength:  false,
	}, nil
}
