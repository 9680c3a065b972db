package sim

import "container/heap"

// delivery is a message waiting in the System for its delivery tick.
type delivery struct {
	at  int64   // tick at which the message becomes deliverable
	seq uint64  // send sequence number, unique per System
	to  ActorID // target actor
	msg Message
}

// deliveryQueue implements a priority queue with deterministic ordering.
// Ordering: delivery tick → send sequence.
// Two messages to the same target are therefore delivered in send order.
type deliveryQueue struct {
	items []*delivery
}

func newDeliveryQueue() *deliveryQueue {
	q := &deliveryQueue{
		items: make([]*delivery, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *deliveryQueue) Len() int {
	return len(q.items)
}

// Less implements heap.Interface with deterministic ordering
func (q *deliveryQueue) Less(i, j int) bool {
	di, dj := q.items[i], q.items[j]
	if di.at != dj.at {
		return di.at < dj.at
	}
	return di.seq < dj.seq
}

// Swap implements heap.Interface
func (q *deliveryQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// Push implements heap.Interface
func (q *deliveryQueue) Push(x any) {
	q.items = append(q.items, x.(*delivery))
}

// Pop implements heap.Interface
func (q *deliveryQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[0 : n-1]
	return item
}

func (q *deliveryQueue) schedule(d *delivery) {
	heap.Push(q, d)
}

// popDue removes and returns the next delivery due at or before now,
// or nil when nothing is due.
func (q *deliveryQueue) popDue(now int64) *delivery {
	if q.Len() == 0 || q.items[0].at > now {
		return nil
	}
	return heap.Pop(q).(*delivery)
}
