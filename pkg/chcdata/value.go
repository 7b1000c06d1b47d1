package chcdata

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// ValKind discriminates the shape of a hashconsed Val.
type ValKind uint8

const (
	// KindBot is the unknown value of a given sort (⊥).
	KindBot ValKind = iota
	KindBool
	KindInt
	KindRat
	KindADT
	KindArray
)

// Val is a hashconsed, immutable partial value over one of the background
// theories named in the CHC solver's scope: booleans, integers, rationals,
// algebraic datatypes, and arrays. Two structurally equal values always
// share the same *Val identity, so equality is pointer equality once a
// value has been interned through one of the constructors (Bot, BoolV,
// IntV, RatV, ADTV, ArrayV).
//
// A Val is partial iff any position transitively below it is Bot; see
// IsPartial.
type Val struct {
	kind ValKind
	sort Sort

	b bool
	i *big.Int
	r *big.Rat

	ctor string
	args []*Val // ADT constructor arguments

	def *Val // Array default value

	key string // canonical encoding, used for hashconsing
}

// Sort returns the background theory of v.
func (v *Val) Sort() Sort { return v.sort }

// Kind returns the shape discriminator of v.
func (v *Val) Kind() ValKind { return v.kind }

// IsBot reports whether v is the unknown value of its sort.
func (v *Val) IsBot() bool { return v.kind == KindBot }

// BoolVal returns the boolean payload; only meaningful when Kind()==KindBool.
func (v *Val) BoolVal() bool { return v.b }

// IntVal returns the integer payload; only meaningful when Kind()==KindInt.
func (v *Val) IntVal() *big.Int { return v.i }

// RatVal returns the rational payload; only meaningful when Kind()==KindRat.
func (v *Val) RatVal() *big.Rat { return v.r }

// Ctor returns the ADT constructor name; only meaningful when Kind()==KindADT.
func (v *Val) Ctor() string { return v.ctor }

// ADTArgs returns the ADT constructor's arguments; only meaningful when
// Kind()==KindADT.
func (v *Val) ADTArgs() []*Val { return v.args }

// ArrayDefault returns the array's default value; only meaningful when
// Kind()==KindArray.
func (v *Val) ArrayDefault() *Val { return v.def }

// String renders v for debug output.
func (v *Val) String() string {
	switch v.kind {
	case KindBot:
		return "_"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return v.i.String()
	case KindRat:
		return v.r.RatString()
	case KindADT:
		parts := make([]string, len(v.args))
		for i, a := range v.args {
			parts[i] = a.String()
		}
		if len(parts) == 0 {
			return v.ctor
		}
		return fmt.Sprintf("(%s %s)", v.ctor, strings.Join(parts, " "))
	case KindArray:
		return fmt.Sprintf("((as const) %s)", v.def.String())
	default:
		return "?val"
	}
}

// IsPartial reports whether v or any value transitively nested inside it
// is Bot.
func (v *Val) IsPartial() bool {
	switch v.kind {
	case KindBot:
		return true
	case KindADT:
		for _, a := range v.args {
			if a.IsPartial() {
				return true
			}
		}
		return false
	case KindArray:
		return v.def.IsPartial()
	default:
		return false
	}
}

// valPool is the global hashcons table for Val, keyed by canonical
// encoding. An immutable radix tree gives cheap, correct-by-construction
// snapshots: interning never invalidates a pointer a concurrent reader may
// already hold, and the tree itself can be handed to a reader as an O(1)
// clone.
type valPool struct {
	mu   sync.Mutex
	tree *iradix.Tree
}

var globalVals = &valPool{tree: iradix.New()}

func (p *valPool) intern(v *Val) *Val {
	key := []byte(v.key)
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.tree.Get(key); ok {
		return existing.(*Val)
	}
	txn := p.tree.Txn()
	txn.Insert(key, v)
	p.tree = txn.Commit()
	return v
}

// Bot returns the hashconsed unknown value of the given sort.
func Bot(s Sort) *Val {
	return globalVals.intern(&Val{kind: KindBot, sort: s, key: "_:" + s.String()})
}

// BoolV returns the hashconsed boolean value b.
func BoolV(b bool) *Val {
	return globalVals.intern(&Val{kind: KindBool, sort: BoolSort, b: b, key: fmt.Sprintf("b:%t", b)})
}

// IntV returns the hashconsed integer value n.
func IntV(n *big.Int) *Val {
	nn := new(big.Int).Set(n)
	return globalVals.intern(&Val{kind: KindInt, sort: IntSort, i: nn, key: "i:" + nn.String()})
}

// IntVFromInt64 is a convenience wrapper around IntV for small literals.
func IntVFromInt64(n int64) *Val { return IntV(big.NewInt(n)) }

// RatV returns the hashconsed rational value q.
func RatV(q *big.Rat) *Val {
	qq := new(big.Rat).Set(q)
	return globalVals.intern(&Val{kind: KindRat, sort: RatSort, r: qq, key: "r:" + qq.RatString()})
}

// ADTV returns the hashconsed ADT value built from ctor applied to args.
func ADTV(adtSort string, ctor string, args ...*Val) *Val {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.key
	}
	key := fmt.Sprintf("a:%s:%s(%s)", adtSort, ctor, strings.Join(parts, ","))
	cloned := make([]*Val, len(args))
	copy(cloned, args)
	return globalVals.intern(&Val{
		kind: KindADT, sort: ADTSort(adtSort), ctor: ctor, args: cloned, key: key,
	})
}

// ArrayV returns the hashconsed constant-array value whose every cell
// holds def.
func ArrayV(elemSort Sort, def *Val) *Val {
	key := fmt.Sprintf("arr:%s:%s", elemSort, def.key)
	return globalVals.intern(&Val{kind: KindArray, sort: ArraySort(elemSort), def: def, key: key})
}

// Ordering is the result of comparing two values or tuples under the
// subsumption preorder ⊑.
type Ordering int

const (
	// Equal means the two operands are the same hashconsed value/tuple.
	Equal Ordering = iota
	// Less means the first operand is strictly more general (a ⊑ b, a != b).
	Less
	// Greater means the first operand is strictly less general (b ⊑ a, a != b).
	Greater
	// Incomparable means neither operand subsumes the other.
	Incomparable
)

// String renders the ordering for debug output.
func (o Ordering) String() string {
	switch o {
	case Equal:
		return "Equal"
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

// ValSubsumes reports whether a ⊑ b: a is Bot, or a and b are the same
// hashconsed value, or (for ADT/Array) a and b share the same shape and
// every sub-value of a subsumes the corresponding sub-value of b.
//
// This recursive generalization of ⊑ inside compound values is used only
// by ValCompare (IsPartial walks the value on its own); the
// Args-level subsumption used by the sample store is defined purely
// positionally instead — see ArgsSubsumes — and deliberately does not
// recurse into ADT/Array structure.
func ValSubsumes(a, b *Val) bool {
	if a == b {
		return true
	}
	if a.kind == KindBot {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindADT:
		if a.ctor != b.ctor || len(a.args) != len(b.args) {
			return false
		}
		for i := range a.args {
			if !ValSubsumes(a.args[i], b.args[i]) {
				return false
			}
		}
		return true
	case KindArray:
		return ValSubsumes(a.def, b.def)
	default:
		return false
	}
}

// ValCompare compares a and b under ⊑, returning Incomparable when neither
// subsumes the other.
func ValCompare(a, b *Val) Ordering {
	if a == b {
		return Equal
	}
	if ValSubsumes(a, b) {
		return Less
	}
	if ValSubsumes(b, a) {
		return Greater
	}
	return Incomparable
}
