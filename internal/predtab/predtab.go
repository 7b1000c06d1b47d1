// Package predtab provides minimal, in-memory implementations of the
// predicate and clause tables chcdata.Data needs as required external
// services: a fixed registry of predicate arities/sorts, and of clause
// head/lhs shapes for dependency-graph bookkeeping.
package predtab

import (
	"fmt"

	"github.com/icelearn/hoicedata/pkg/chcdata"
)

// Predicates is a fixed, append-only registry of predicate signatures,
// keyed by insertion order. It implements chcdata.PredTable.
type Predicates struct {
	sorts [][]chcdata.Sort
}

// New returns an empty predicate registry.
func New() *Predicates {
	return &Predicates{}
}

// Declare registers a new predicate with the given argument sorts and
// returns its PredId.
func (p *Predicates) Declare(sorts ...chcdata.Sort) chcdata.PredId {
	id := chcdata.PredId(len(p.sorts))
	cp := make([]chcdata.Sort, len(sorts))
	copy(cp, sorts)
	p.sorts = append(p.sorts, cp)
	return id
}

// Arity implements chcdata.PredTable.
func (p *Predicates) Arity(id chcdata.PredId) int {
	return len(p.sortsOrPanic(id))
}

// Sorts implements chcdata.PredTable.
func (p *Predicates) Sorts(id chcdata.PredId) []chcdata.Sort {
	return p.sortsOrPanic(id)
}

func (p *Predicates) sortsOrPanic(id chcdata.PredId) []chcdata.Sort {
	if int(id) < 0 || int(id) >= len(p.sorts) {
		panic(fmt.Sprintf("predtab: unknown predicate %d", id))
	}
	return p.sorts[id]
}

// Len returns the number of declared predicates.
func (p *Predicates) Len() int { return len(p.sorts) }

// clauseEntry holds one clause's head and lhs groups, in clause-local
// formal-argument numbering.
type clauseEntry struct {
	head chcdata.FormalSample
	lhs  []chcdata.FormalGroup
}

// Clauses is a fixed, append-only registry of clause shapes. It implements
// chcdata.ClauseTable, which chcdata.New accepts but does not read.
type Clauses struct {
	entries []clauseEntry
}

// NewClauses returns an empty clause registry.
func NewClauses() *Clauses {
	return &Clauses{}
}

// Declare registers a new clause's head and lhs groups and returns its
// ClauseId.
func (c *Clauses) Declare(head chcdata.FormalSample, lhs []chcdata.FormalGroup) chcdata.ClauseId {
	id := chcdata.ClauseId(len(c.entries))
	c.entries = append(c.entries, clauseEntry{head: head, lhs: lhs})
	return id
}

// Head implements chcdata.ClauseTable.
func (c *Clauses) Head(id chcdata.ClauseId) (chcdata.FormalSample, bool) {
	if int(id) < 0 || int(id) >= len(c.entries) {
		return chcdata.FormalSample{}, false
	}
	return c.entries[id].head, true
}

// LhsGroups implements chcdata.ClauseTable.
func (c *Clauses) LhsGroups(id chcdata.ClauseId) []chcdata.FormalGroup {
	if int(id) < 0 || int(id) >= len(c.entries) {
		return nil
	}
	return c.entries[id].lhs
}
