package main

import (
	"math/rand"

	"rowstore/pkg/accessor"
	"rowstore/pkg/schema"
)

// generatorAccessor synthesizes n random tuples matching relation on the
// fly, standing in for whatever upstream operator would normally hand
// BulkInsertTuples a batch of real rows.
type generatorAccessor struct {
	relation  *schema.Relation
	rnd       *rand.Rand
	remaining int
	current   accessor.TupleLiteral
}

func newGeneratorAccessor(relation *schema.Relation, rnd *rand.Rand, n int) *generatorAccessor {
	return &generatorAccessor{relation: relation, rnd: rnd, remaining: n}
}

func (g *generatorAccessor) Next() bool {
	if g.remaining <= 0 {
		return false
	}
	g.remaining--
	g.current = randomTuple(g.relation, g.rnd)
	return true
}

func (g *generatorAccessor) IterationFinished() bool {
	return g.remaining <= 0
}

func (g *generatorAccessor) GetUntypedValueNullable(attrID schema.AttributeID) ([]byte, bool) {
	v := g.current.Values[attrID]
	return v.Data, !v.Null
}

func (g *generatorAccessor) GetUntypedValue(attrID schema.AttributeID) []byte {
	return g.current.Values[attrID].Data
}

func (g *generatorAccessor) ImplementationKind() accessor.ImplementationKind {
	return accessor.Other
}

func randomTuple(relation *schema.Relation, rnd *rand.Rand) accessor.TupleLiteral {
	attrs := relation.Attributes()
	values := make([]accessor.TupleValue, len(attrs))
	for i, attr := range attrs {
		if attr.Nullable && rnd.Intn(10) == 0 {
			values[i] = accessor.TupleValue{Null: true}
			continue
		}
		values[i] = accessor.TupleValue{Data: randomBytes(attr.Type, attr.MaxByteLength, rnd)}
	}
	return accessor.TupleLiteral{Values: values}
}

func randomBytes(t schema.TypeTag, width int, rnd *rand.Rand) []byte {
	b := make([]byte, width)
	switch t {
	case schema.Int32, schema.Int64, schema.Float64:
		rnd.Read(b)
	case schema.CharN:
		const alphabet = "abcdefghijklmnopqrstuvwxyz"
		for i := range b {
			b[i] = alphabet[rnd.Intn(len(alphabet))]
		}
	}
	return b
}
