package chcdata

import (
	"strings"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Args is an immutable, hashconsed argument tuple, one per predicate
// application. Equality is pointer equality once interned via NewArgs.
type Args struct {
	vals []*Val
	key  string
}

// Len returns the arity of the tuple.
func (a *Args) Len() int { return len(a.vals) }

// At returns the value at position i.
func (a *Args) At(i int) *Val { return a.vals[i] }

// Vals returns the tuple's values. The returned slice must not be mutated.
func (a *Args) Vals() []*Val { return a.vals }

// String renders the tuple for debug output.
func (a *Args) String() string {
	parts := make([]string, len(a.vals))
	for i, v := range a.vals {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// IsPartial reports whether any position of a is (transitively) Bot.
func (a *Args) IsPartial() bool {
	for _, v := range a.vals {
		if v.IsPartial() {
			return true
		}
	}
	return false
}

type argsPool struct {
	mu   sync.Mutex
	tree *iradix.Tree
}

var globalArgs = &argsPool{tree: iradix.New()}

// NewArgs hashcons-interns a tuple of values, returning a canonical
// pointer shared by every caller that builds the structurally identical
// tuple.
func NewArgs(vals ...*Val) *Args {
	var key strings.Builder
	for i, v := range vals {
		if i > 0 {
			key.WriteByte(0)
		}
		key.WriteString(v.key)
	}
	keyBytes := []byte(key.String())

	globalArgs.mu.Lock()
	defer globalArgs.mu.Unlock()
	if existing, ok := globalArgs.tree.Get(keyBytes); ok {
		return existing.(*Args)
	}
	cloned := make([]*Val, len(vals))
	copy(cloned, vals)
	a := &Args{vals: cloned, key: key.String()}
	txn := globalArgs.tree.Txn()
	txn.Insert(keyBytes, a)
	globalArgs.tree = txn.Commit()
	return a
}

// ArgsSubsumes reports whether a ⊑ b: for every position i, either
// a[i] == b[i] (by hashcons identity) or a[i] is Bot. This is a purely
// positional relation — it does not look inside compound (ADT/Array)
// values the way ValSubsumes does, keeping the store's hot-path
// comparison a cheap pointer/Bot check.
func ArgsSubsumes(a, b *Args) bool {
	if a == b {
		return true
	}
	if len(a.vals) != len(b.vals) {
		return false
	}
	for i := range a.vals {
		if a.vals[i] == b.vals[i] {
			continue
		}
		if a.vals[i].IsBot() {
			continue
		}
		return false
	}
	return true
}

// ArgsCompare compares a and b under ⊑, returning Incomparable when
// neither subsumes the other.
func ArgsCompare(a, b *Args) Ordering {
	if a == b {
		return Equal
	}
	if ArgsSubsumes(a, b) {
		return Less
	}
	if ArgsSubsumes(b, a) {
		return Greater
	}
	return Incomparable
}
