package datastructure

import "math"

const QUEUE_NONE Index = math.MaxUint32

/*
ActiveQueue is the FIFO of active nodes used by the tree-growth phase. links live in a
per-node next array: next[u] == QUEUE_NONE means u is not queued and next[u] == u marks the
last element. nodes activated while the current stage is drained go to a second stage,
which becomes the current one when the first runs dry, so every node is scanned in rounds.
*/
type ActiveQueue struct {
	next  []Index
	first [2]Index
	last  [2]Index
}

func NewActiveQueue(n int) *ActiveQueue {
	next := make([]Index, n)
	for i := range next {
		next[i] = QUEUE_NONE
	}
	return &ActiveQueue{
		next:  next,
		first: [2]Index{QUEUE_NONE, QUEUE_NONE},
		last:  [2]Index{QUEUE_NONE, QUEUE_NONE},
	}
}

// SetActive appends u unless it is already queued or held.
func (q *ActiveQueue) SetActive(u Index) {
	if q.next[u] != QUEUE_NONE {
		return
	}
	if q.last[1] != QUEUE_NONE {
		q.next[q.last[1]] = u
	} else {
		q.first[1] = u
	}
	q.last[1] = u
	q.next[u] = u
}

// Pop removes and returns the oldest queued node.
func (q *ActiveQueue) Pop() (Index, bool) {
	u := q.first[0]
	if u == QUEUE_NONE {
		q.first[0], q.last[0] = q.first[1], q.last[1]
		q.first[1], q.last[1] = QUEUE_NONE, QUEUE_NONE
		u = q.first[0]
		if u == QUEUE_NONE {
			return 0, false
		}
	}

	if q.next[u] == u {
		q.first[0], q.last[0] = QUEUE_NONE, QUEUE_NONE
	} else {
		q.first[0] = q.next[u]
	}
	q.next[u] = QUEUE_NONE
	return u, true
}

// Hold flags u as active without linking it, so SetActive does not queue it twice while the
// caller keeps working on it.
func (q *ActiveQueue) Hold(u Index) {
	q.next[u] = u
}

// Release clears a flag set by Hold.
func (q *ActiveQueue) Release(u Index) {
	q.next[u] = QUEUE_NONE
}

func (q *ActiveQueue) IsActive(u Index) bool {
	return q.next[u] != QUEUE_NONE
}

// OrphanQueue is a FIFO of orphaned nodes. the backing slice is reused across augmentations.
type OrphanQueue struct {
	items []Index
	head  int
}

func NewOrphanQueue(capacityHint int) *OrphanQueue {
	return &OrphanQueue{items: make([]Index, 0, capacityHint)}
}

func (oq *OrphanQueue) Push(u Index) {
	oq.items = append(oq.items, u)
}

func (oq *OrphanQueue) Pop() (Index, bool) {
	if oq.head == len(oq.items) {
		oq.items = oq.items[:0]
		oq.head = 0
		return 0, false
	}
	u := oq.items[oq.head]
	oq.head++
	return u, true
}

func (oq *OrphanQueue) Len() int {
	return len(oq.items) - oq.head
}
