package planning

import (
	"container/heap"

	"github.com/aisimcore/simcore/internal/domain"
)

// goapAlpha is the implementation constant α in the effective-cost
// formula base_cost*(1+alpha*failure_count). Chosen so
// that a handful of recorded failures make a "safe" low-base-cost
// action cheaper than a "risky" high-base-cost one, per S4/S7-style
// expectations, without ever making cost non-monotonic in failure
// count.
const goapAlpha = 0.5

// defaultMaxIterations bounds the A* search so a disconnected goal
// returns None rather than hanging.
const defaultMaxIterations = 10_000

// FailureHistory tracks per-action failure counters that scale
// effective edge cost. Failures never decay
// on their own; only an explicit RecordSuccess decrements a counter,
// floored at zero (Open Question decision, documented in DESIGN.md).
type FailureHistory struct {
	counts map[string]int
}

// NewFailureHistory creates an empty history.
func NewFailureHistory() *FailureHistory {
	return &FailureHistory{counts: make(map[string]int)}
}

// RecordFailure increments action's failure counter.
func (h *FailureHistory) RecordFailure(action string) {
	h.counts[action]++
}

// RecordSuccess decrements action's failure counter, floored at 0.
func (h *FailureHistory) RecordSuccess(action string) {
	if h.counts[action] > 0 {
		h.counts[action]--
	}
}

// Count returns the current failure count for action.
func (h *FailureHistory) Count(action string) int {
	return h.counts[action]
}

// EffectiveCost applies the α-scaled failure penalty to an action's
// base cost.
func (h *FailureHistory) EffectiveCost(a domain.GOAPAction) float64 {
	return float64(a.BaseCost) * (1 + goapAlpha*float64(h.Count(a.Name)))
}

// GOAPPlanner performs A* search over domain.GOAPState nodes to reach
// a goal state using a fixed action set.
type GOAPPlanner struct {
	actions       []domain.GOAPAction
	history       *FailureHistory
	maxIterations int
}

// NewGOAPPlanner creates a GOAPPlanner over the given action set. A
// nil history is replaced with a fresh, empty one.
func NewGOAPPlanner(actions []domain.GOAPAction, history *FailureHistory) *GOAPPlanner {
	if history == nil {
		history = NewFailureHistory()
	}
	return &GOAPPlanner{actions: actions, history: history, maxIterations: defaultMaxIterations}
}

// WithMaxIterations returns a copy of p bounded by n iterations instead
// of the default.
func (p *GOAPPlanner) WithMaxIterations(n int) *GOAPPlanner {
	cp := *p
	cp.maxIterations = n
	return &cp
}

// History returns the planner's failure-learning history so callers
// can call RecordFailure/RecordSuccess after executing a plan.
func (p *GOAPPlanner) History() *FailureHistory { return p.history }

// FindPlan runs A* from start to goal and returns the optimal
// action-name sequence, or (nil, false) if goal is unreachable within
// maxIterations expansions.
func (p *GOAPPlanner) FindPlan(start, goal domain.GOAPState) ([]string, bool) {
	open := &goapOpenSet{}
	heap.Init(open)

	startSig := start.Signature()
	gScore := map[string]float64{startSig: 0}
	cameFrom := map[string]goapEdge{}
	stateOf := map[string]domain.GOAPState{startSig: start}

	heap.Push(open, &goapNode{
		state: start,
		sig:   startSig,
		g:     0,
		f:     float64(start.UnsatisfiedCount(goal)),
	})

	closed := map[string]bool{}
	iterations := 0

	for open.Len() > 0 {
		iterations++
		if iterations > p.maxIterations {
			return nil, false
		}

		current := heap.Pop(open).(*goapNode)
		if closed[current.sig] {
			continue
		}
		if current.state.Satisfies(goal) {
			return p.reconstruct(cameFrom, current.sig), true
		}
		closed[current.sig] = true

		for _, action := range p.actions {
			if !action.PreconditionsMet(current.state) {
				continue
			}
			next := action.Apply(current.state)
			nextSig := next.Signature()
			if closed[nextSig] {
				continue
			}

			tentativeG := current.g + p.history.EffectiveCost(action)
			best, seen := gScore[nextSig]
			if seen && tentativeG >= best {
				continue
			}

			gScore[nextSig] = tentativeG
			stateOf[nextSig] = next
			cameFrom[nextSig] = goapEdge{fromSig: current.sig, action: action.Name}

			h := float64(next.UnsatisfiedCount(goal))
			heap.Push(open, &goapNode{
				state: next,
				sig:   nextSig,
				g:     tentativeG,
				f:     tentativeG + h,
			})
		}
	}

	return nil, false
}

func (p *GOAPPlanner) reconstruct(cameFrom map[string]goapEdge, sig string) []string {
	var names []string
	for {
		edge, ok := cameFrom[sig]
		if !ok {
			break
		}
		names = append([]string{edge.action}, names...)
		sig = edge.fromSig
	}
	return names
}

type goapEdge struct {
	fromSig string
	action  string
}

type goapNode struct {
	state domain.GOAPState
	sig   string
	g     float64
	f     float64
}

// goapOpenSet is a binary min-heap ordered by (f ascending, signature
// ascending) — the tie-break that keeps expansion order deterministic
// when two nodes share an f-score.
type goapOpenSet []*goapNode

func (s goapOpenSet) Len() int { return len(s) }
func (s goapOpenSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].sig < s[j].sig
}
func (s goapOpenSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s *goapOpenSet) Push(x any)   { *s = append(*s, x.(*goapNode)) }
func (s *goapOpenSet) Pop() any {
	old := *s
	n := len(old)
	item := old[n-1]
	*s = old[:n-1]
	return item
}
