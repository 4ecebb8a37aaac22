package search

// Outcome is the result of offering a path cost to the visited store.
type Outcome int

const (
	// Inserted means the state had not been seen before.
	Inserted Outcome = iota
	// Improved means the state was known and the new cost is strictly lower.
	Improved
	// Rejected means an equal or cheaper path is already known.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Improved:
		return "improved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type slot[S any] struct {
	state S
	g     float64
	node  int32
}

// visitedStore maps states to their best known cost and owning node.
// Buckets are keyed by Policy.Hash; Compare resolves collisions.
type visitedStore[S any] struct {
	policy  Policy[S]
	buckets map[uint64][]slot[S]
	size    int
}

func newVisitedStore[S any](p Policy[S]) *visitedStore[S] {
	return &visitedStore[S]{
		policy:  p,
		buckets: make(map[uint64][]slot[S]),
	}
}

func (v *visitedStore[S]) find(s S) (uint64, int) {
	h := v.policy.Hash(s)
	for i, sl := range v.buckets[h] {
		if v.policy.Compare(sl.state, s) == 0 {
			return h, i
		}
	}
	return h, -1
}

// lookup returns the best known cost and node for s.
func (v *visitedStore[S]) lookup(s S) (g float64, node int32, ok bool) {
	h, i := v.find(s)
	if i < 0 {
		return 0, -1, false
	}
	sl := v.buckets[h][i]
	return sl.g, sl.node, true
}

// recordOrImprove is the single authority on whether a path to s is worth
// exploring. best g per state only ever decreases.
func (v *visitedStore[S]) recordOrImprove(s S, g float64, node int32) Outcome {
	h, i := v.find(s)
	if i < 0 {
		v.buckets[h] = append(v.buckets[h], slot[S]{state: s, g: g, node: node})
		v.size++
		return Inserted
	}

	sl := &v.buckets[h][i]
	if g < sl.g {
		sl.g = g
		sl.node = node
		return Improved
	}
	return Rejected
}

// owner returns the node currently recorded for s, or -1.
func (v *visitedStore[S]) owner(s S) int32 {
	_, node, ok := v.lookup(s)
	if !ok {
		return -1
	}
	return node
}

func (v *visitedStore[S]) len() int { return v.size }

func (v *visitedStore[S]) reset() {
	clear(v.buckets)
	v.size = 0
}
