package search

import "container/heap"

// openEntry is one frontier record. seq is the insertion sequence and
// breaks ties between equal keys in FIFO order.
type openEntry struct {
	key  float64
	seq  uint64
	node int32
}

// openHeap implements heap.Interface ordered by (key, seq).
type openHeap []openEntry

func (h openHeap) Len() int { return len(h) }

func (h openHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].seq < h[j].seq
}

func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *openHeap) Push(x interface{}) {
	*h = append(*h, x.(openEntry))
}

func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// openSet is the search frontier.
//
// Decrease-key is realised by lazy deletion: an improved state gets a new
// node and a new entry, and the engine discards entries whose node no
// longer owns its state when they surface. Extraction therefore always
// yields the live minimum once stale entries are skipped.
type openSet struct {
	heap openHeap
	seq  uint64
}

// insert adds node with the given priority key.
func (o *openSet) insert(node int32, key float64) {
	heap.Push(&o.heap, openEntry{key: key, seq: o.seq, node: node})
	o.seq++
}

// extractMin removes the entry with the smallest (key, seq).
func (o *openSet) extractMin() (openEntry, bool) {
	if len(o.heap) == 0 {
		return openEntry{}, false
	}
	return heap.Pop(&o.heap).(openEntry), true
}

// restore puts back an entry taken by extractMin, keeping its original
// sequence so it regains its exact position.
func (o *openSet) restore(e openEntry) {
	heap.Push(&o.heap, e)
}

func (o *openSet) len() int { return len(o.heap) }

func (o *openSet) reset() {
	o.heap = o.heap[:0]
	o.seq = 0
}

func (o *openSet) release() {
	o.heap = nil
	o.seq = 0
}
