package domain

import (
	"fmt"
	"sort"
	"strings"
)

// GOAPValueKind tags the variant stored in a GOAPState value.
type GOAPValueKind int

const (
	GOAPBool GOAPValueKind = iota
	GOAPInt
	GOAPFloat
	GOAPString
	GOAPIntRange
)

// GOAPValue is a tagged value variant:
// {Bool, Int, Float(ordered), String, IntRange(lo,hi)}.
type GOAPValue struct {
	Kind GOAPValueKind
	B    bool
	I    int
	F    float64
	S    string
	Lo   int
	Hi   int
}

func VBool(b bool) GOAPValue        { return GOAPValue{Kind: GOAPBool, B: b} }
func VInt(i int) GOAPValue          { return GOAPValue{Kind: GOAPInt, I: i} }
func VFloat(f float64) GOAPValue    { return GOAPValue{Kind: GOAPFloat, F: f} }
func VString(s string) GOAPValue    { return GOAPValue{Kind: GOAPString, S: s} }
func VIntRange(lo, hi int) GOAPValue { return GOAPValue{Kind: GOAPIntRange, Lo: lo, Hi: hi} }

// Satisfies reports whether actual satisfies the predicate expressed by
// want: equality for Bool/Int/Float/String, containment for IntRange
// evaluated against actual.I.
func (want GOAPValue) Satisfies(actual GOAPValue) bool {
	switch want.Kind {
	case GOAPBool:
		return actual.Kind == GOAPBool && actual.B == want.B
	case GOAPInt:
		return actual.Kind == GOAPInt && actual.I == want.I
	case GOAPFloat:
		return actual.Kind == GOAPFloat && actual.F == want.F
	case GOAPString:
		return actual.Kind == GOAPString && actual.S == want.S
	case GOAPIntRange:
		var v int
		switch actual.Kind {
		case GOAPInt:
			v = actual.I
		case GOAPIntRange:
			v = actual.Lo
		default:
			return false
		}
		return v >= want.Lo && v <= want.Hi
	default:
		return false
	}
}

func (v GOAPValue) String() string {
	switch v.Kind {
	case GOAPBool:
		return fmt.Sprintf("b:%t", v.B)
	case GOAPInt:
		return fmt.Sprintf("i:%d", v.I)
	case GOAPFloat:
		return fmt.Sprintf("f:%g", v.F)
	case GOAPString:
		return fmt.Sprintf("s:%s", v.S)
	case GOAPIntRange:
		return fmt.Sprintf("r:%d..%d", v.Lo, v.Hi)
	default:
		return "?"
	}
}

// GOAPState is a sorted mapping string key -> GOAPValue.
// The zero value is a usable empty state.
type GOAPState map[string]GOAPValue

// Clone returns an independent copy.
func (s GOAPState) Clone() GOAPState {
	out := make(GOAPState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy of s with key set to v (used when applying an
// action's effects without mutating the predecessor node's state).
func (s GOAPState) With(key string, v GOAPValue) GOAPState {
	out := s.Clone()
	out[key] = v
	return out
}

// Signature returns a canonical, order-independent string encoding of
// the state, used as the A* closed-set / open-set key: node equality
// is by canonical (sorted-key) hash of the world-state, so
// semantically identical states collide regardless of insertion
// order.
func (s GOAPState) Signature() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s[k].String())
		b.WriteByte(';')
	}
	return b.String()
}

// Satisfies reports whether every predicate in goal holds against s.
func (s GOAPState) Satisfies(goal GOAPState) bool {
	for k, want := range goal {
		actual, ok := s[k]
		if !ok {
			return false
		}
		if !want.Satisfies(actual) {
			return false
		}
	}
	return true
}

// UnsatisfiedCount counts goal predicates that do not currently hold —
// the GOAP heuristic.
func (s GOAPState) UnsatisfiedCount(goal GOAPState) int {
	n := 0
	for k, want := range goal {
		actual, ok := s[k]
		if !ok || !want.Satisfies(actual) {
			n++
		}
	}
	return n
}

// GOAPAction is one precondition/effect-annotated action. BaseCost is the unit-less cost before failure-history scaling.
type GOAPAction struct {
	Name          string
	Preconditions GOAPState
	Effects       GOAPState
	BaseCost      float32
}

// PreconditionsMet reports whether every precondition holds against s.
func (a GOAPAction) PreconditionsMet(s GOAPState) bool {
	return s.Satisfies(a.Preconditions)
}

// Apply returns the successor state after a's effects are merged onto s.
func (a GOAPAction) Apply(s GOAPState) GOAPState {
	out := s.Clone()
	for k, v := range a.Effects {
		out[k] = v
	}
	return out
}
