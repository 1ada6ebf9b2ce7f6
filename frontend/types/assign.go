package types

import (
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
)

// IsAssignable reports whether a value of type source may be stored in a location of type target.
//
// inferred accepts every JSON-compatible type, any, and never.
// inferred may be assigned to any, unknown, itself, `object`, `{}`, and
// every JSON-compatible type, but not to undefined, functions, or classes.
func (r Resolver) IsAssignable(source, target Type) bool {
	if Equal(source, target) {
		return true
	}
	switch {
	case source.Kind() == KindNever:
		return true
	case target.Kind() == KindAny || target.Kind() == KindUnknown:
		return true
	case source.Kind() == KindAny:
		return target.Kind() != KindNever
	case target.Kind() == KindNever:
		return false
	}

	if u, ok := source.(UnionType); ok {
		for _, m := range u.Members {
			if !r.IsAssignable(m, target) {
				return false
			}
		}
		return true
	}
	if i, ok := target.(IntersectionType); ok {
		for _, m := range i.Members {
			if !r.IsAssignable(source, m) {
				return false
			}
		}
		return true
	}
	if u, ok := target.(UnionType); ok {
		for _, m := range u.Members {
			if r.IsAssignable(source, m) {
				return true
			}
		}
		return false
	}
	if i, ok := source.(IntersectionType); ok {
		for _, m := range i.Members {
			if r.IsAssignable(m, target) {
				return true
			}
		}
		return false
	}

	if isInferred(source) {
		return inferredAssignableTo(target)
	}
	if isInferred(target) {
		return IsJSONCompatible(source)
	}
	return r.structurallyAssignable(source, target)
}

func inferredAssignableTo(target Type) bool {
	switch t := target.(type) {
	case ObjectType:
		if t.IsEmpty() {
			return true
		}
	case basicType:
		if t.kind == KindNonPrimitive {
			return true
		}
	}
	return IsJSONCompatible(target)
}

func (r Resolver) structurallyAssignable(source, target Type) bool {
	if lit, ok := source.(LiteralType); ok {
		if target.Kind() == KindLiteral {
			return false
		}
		return r.IsAssignable(lit.Widened(), target)
	}

	switch t := target.(type) {
	case basicType:
		switch t.kind {
		case KindVoid:
			return source.Kind() == KindUndefined
		case KindNonPrimitive:
			switch source.Kind() {
			case KindArray, KindObject, KindFunc, KindClass:
				return true
			}
		}
		return false
	case ArrayType:
		s, ok := source.(ArrayType)
		return ok && r.IsAssignable(s.Elem, t.Elem)
	case ObjectType:
		if t.IsEmpty() {
			return !isNullish(source)
		}
		for _, f := range t.Fields {
			sf, ok := propertyOf(source, f.Name)
			if !ok || !r.IsAssignable(sf, f.Type) {
				return false
			}
		}
		return true
	case FuncType:
		s, ok := source.(FuncType)
		return ok && r.funcAssignable(s, t)
	case *ClassType:
		switch s := source.(type) {
		case *ClassType:
			return s.Extends(t)
		case FuncType:
			return t.Name == FunctionClass.Name || t.Name == ObjectClass.Name
		case ArrayType, ObjectType:
			return t.Name == ObjectClass.Name && !isNullish(source)
		}
		return false
	}
	return false
}

// funcAssignable checks parameters contravariantly and returns covariantly.
// A source may take fewer parameters than the target, and a void target return accepts anything.
func (r Resolver) funcAssignable(source, target FuncType) bool {
	if len(source.Params) > len(target.Params) {
		return false
	}
	for i, p := range source.Params {
		if !r.IsAssignable(target.Params[i].Type, p.Type) {
			return false
		}
	}
	if target.Ret.Kind() == KindVoid {
		return true
	}
	return r.IsAssignable(source.Ret, target.Ret)
}

func isNullish(t Type) bool {
	switch t.Kind() {
	case KindNull, KindUndefined, KindVoid:
		return true
	}
	return false
}

// CheckAssignable is IsAssignable, reporting an ilerr.TypeMismatch at `at` when the assignment is not allowed
func (r Resolver) CheckAssignable(source, target Type, at ast.Positioner) ilerr.IleError {
	if r.IsAssignable(source, target) {
		return nil
	}
	return ilerr.New(ilerr.NewTypeMismatch{
		Positioner: ast.RangeOf(at),
		Source:     source,
		Target:     target,
	})
}

// RequiresDefiniteAssignment reports whether a variable of type t must be
// assigned before it is read. Types that admit undefined do not need it.
//
// inferred does require it: a declared but unassigned inferred local is not a JSON value.
func RequiresDefiniteAssignment(t Type) bool {
	return !admitsUndefined(t)
}

func admitsUndefined(t Type) bool {
	switch t.Kind() {
	case KindUndefined, KindVoid, KindAny, KindUnknown:
		return true
	case KindUnion:
		for _, m := range t.(UnionType).Members {
			if admitsUndefined(m) {
				return true
			}
		}
	}
	return false
}
