package chcdata

// PredId is an opaque dense index into a fixed predicate table carrying
// each predicate's arity and argument sort tuple.
type PredId int32

// ClauseId is an opaque dense index into the fixed clause table.
type ClauseId int32

// CstrId is a dense index into the append-only constraint vector.
// Constraints are never removed; a "deleted" constraint is flagged
// tautology in place so prior indices remain stable.
type CstrId int32

// FormalArgs identifies a formal argument position of a clause's lhs
// predicate group or head, as held by a ClauseTable.
type FormalArgs int32
