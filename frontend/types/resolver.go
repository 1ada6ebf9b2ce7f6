package types

import (
	"github.com/cottand/inferred/internal/log"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "resolver")

type Options struct {
	// CollapseInferredUnions makes `inferred | inferred` reduce to a single inferred.
	// By default the two occurrences are kept, since they may come from
	// instantiations with different constraints.
	CollapseInferredUnions bool
}

// Resolver computes how types combine when one of them may be inferred.
//
// A Resolver holds no mutable state: its methods are pure and may be
// called concurrently.
type Resolver struct {
	opts Options
}

func NewResolver(opts Options) Resolver {
	return Resolver{opts: opts}
}

// Intersect corresponds to `a & b`.
//
// inferred is absorbed by any other operand, except any and unknown which absorb inferred.
// Chains compose left to right, so `inferred & null & undefined` is
// `null & undefined`, which is never.
func (r Resolver) Intersect(a, b Type) Type {
	aInferred, bInferred := isInferred(a), isInferred(b)
	switch {
	case aInferred && bInferred:
		return a
	case aInferred:
		return r.intersectInferred(b)
	case bInferred:
		return r.intersectInferred(a)
	}

	// (A | B) & C = (A & C) | (B & C)
	if u, ok := a.(UnionType); ok {
		return r.distribute(u, b)
	}
	if u, ok := b.(UnionType); ok {
		return r.distribute(u, a)
	}
	return r.intersectionOf(a, b)
}

func (r Resolver) intersectInferred(other Type) Type {
	switch other.Kind() {
	case KindAny, KindUnknown, KindNever:
		logger.Debug("inferred absorbed by extreme type in intersection", "other", other)
	}
	return other
}

func (r Resolver) distribute(u UnionType, other Type) Type {
	var acc Type = Never
	for _, m := range u.Members {
		acc = r.Union(acc, r.Intersect(m, other))
	}
	return acc
}

// intersectionOf is the intersection of two types, neither of which is inferred or a union
func (r Resolver) intersectionOf(a, b Type) Type {
	switch {
	case a.Kind() == KindNever || b.Kind() == KindNever:
		return Never
	case a.Kind() == KindAny || b.Kind() == KindAny:
		return Any
	case a.Kind() == KindUnknown:
		return b
	case b.Kind() == KindUnknown:
		return a
	case Equal(a, b):
		return a
	case disjoint(a, b):
		logger.Debug("disjoint intersection", "lhs", a, "rhs", b)
		return Never
	case r.IsAssignable(a, b):
		return a
	case r.IsAssignable(b, a):
		return b
	}

	members := make([]Type, 0, 2)
	for _, m := range append(membersOf(a), membersOf(b)...) {
		if !containsEqual(members, m) {
			members = append(members, m)
		}
	}
	return IntersectionType{Members: members}
}

func containsEqual(ts []Type, t Type) bool {
	for _, other := range ts {
		if Equal(other, t) {
			return true
		}
	}
	return false
}

// IntersectAll folds Intersect over ts from the left. It returns unknown for no types.
func (r Resolver) IntersectAll(ts ...Type) Type {
	if len(ts) == 0 {
		return Unknown
	}
	acc := ts[0]
	for _, t := range ts[1:] {
		acc = r.Intersect(acc, t)
	}
	return acc
}

// Union corresponds to `a | b`.
//
// inferred absorbs JSON-compatible members, but not non-JSON ones like
// undefined or functions. Two inferred are kept as `inferred | inferred`
// unless Options.CollapseInferredUnions is set.
func (r Resolver) Union(a, b Type) Type {
	switch {
	case a.Kind() == KindAny || b.Kind() == KindAny:
		return Any
	case a.Kind() == KindUnknown || b.Kind() == KindUnknown:
		return Unknown
	case a.Kind() == KindNever:
		return b
	case b.Kind() == KindNever:
		return a
	}
	var members []Type
	for _, t := range []Type{a, b} {
		if u, ok := t.(UnionType); ok {
			members = append(members, u.Members...)
		} else {
			members = append(members, t)
		}
	}
	return r.unionOfMembers(members)
}

func (r Resolver) unionOfMembers(members []Type) Type {
	hasInferred := false
	widened := set.New[Kind](0)
	for _, m := range members {
		if isInferred(m) {
			hasInferred = true
		}
		switch m.Kind() {
		case KindNumber, KindString, KindBoolean:
			widened.Insert(m.Kind())
		}
	}

	seen := set.NewHashSet[Type, uint64](len(members))
	seenInferred := false
	result := make([]Type, 0, len(members))
	for _, m := range members {
		switch {
		case isInferred(m):
			if seenInferred && r.opts.CollapseInferredUnions {
				continue
			}
			seenInferred = true
		case hasInferred && IsJSONCompatible(m):
			logger.Debug("JSON type absorbed by inferred in union", "member", m)
			continue
		case m.Kind() == KindLiteral && widened.Contains(m.(LiteralType).Base):
			continue
		case !seen.Insert(m):
			continue
		}
		result = append(result, m)
	}
	if len(result) == 1 {
		return result[0]
	}
	return UnionType{Members: result}
}

// UnionAll folds Union over ts from the left. It returns never for no types.
func (r Resolver) UnionAll(ts ...Type) Type {
	var acc Type = Never
	for _, t := range ts {
		acc = r.Union(acc, t)
	}
	return acc
}
