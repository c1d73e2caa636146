package accessor

import (
	queue "github.com/yireyun/go-queue"
	"rowstore/pkg/schema"
)

// Row is one source tuple pushed through a QueueAccessor's backing queue:
// an ordered, per-attribute byte slice with a parallel null mask.
type Row struct {
	Values [][]byte
	Null   []bool
}

// QueueAccessor is a ValueAccessor over a lock-free queue fed by an
// external producer goroutine — the concrete "heterogeneous source
// iterator" the bulk-insert run planner is built to optimize for, given a
// streaming instead of a random-access source. Grounded on
// github.com/yireyun/go-queue's ring-buffer Put/Get contract, an indirect
// dependency of the teacher promoted here to direct use.
type QueueAccessor struct {
	q       *queue.EsQueue
	kind    ImplementationKind
	current *Row
	done    bool
}

// NewQueueAccessor wraps an existing queue. kind should describe the shape
// of the rows the producer pushes (typically Other, since a queue source
// has no natural row-store/column-store layout for the dispatcher to
// exploit via contiguous-attribute merging).
func NewQueueAccessor(q *queue.EsQueue, kind ImplementationKind) *QueueAccessor {
	return &QueueAccessor{q: q, kind: kind}
}

// Next pops the next row off the queue. It never blocks: it returns false
// as soon as the queue is empty or yields the nil sentinel Close pushes,
// and every later call returns false too. IterationFinished reports true
// only after Next has returned false.
func (a *QueueAccessor) Next() bool {
	if a.done {
		return false
	}
	val, ok, _ := a.q.Get()
	if !ok {
		a.done = true
		return false
	}
	row, ok := val.(*Row)
	if !ok || row == nil {
		a.done = true
		return false
	}
	a.current = row
	return true
}

func (a *QueueAccessor) IterationFinished() bool {
	return a.done
}

func (a *QueueAccessor) GetUntypedValueNullable(attrID schema.AttributeID) ([]byte, bool) {
	i := int(attrID)
	if a.current == nil || i >= len(a.current.Null) || a.current.Null[i] {
		return nil, false
	}
	return a.current.Values[i], true
}

func (a *QueueAccessor) GetUntypedValue(attrID schema.AttributeID) []byte {
	return a.current.Values[int(attrID)]
}

func (a *QueueAccessor) ImplementationKind() ImplementationKind {
	return a.kind
}

// Close marks the producer side finished; Next stops at the sentinel it
// pushes even if rows are pushed after it.
func (a *QueueAccessor) Close() {
	// The queue itself has no explicit close signal; a sentinel nil Row
	// pushed by the producer after its last real row tells Next to stop.
	a.q.Put((*Row)(nil))
}
