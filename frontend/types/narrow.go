package types

// NarrowingGuard is a runtime check that refines the type of a variable
// in the code it guards
type NarrowingGuard interface {
	isGuard()
}

// InstanceOfGuard is `x instanceof Constructor`
type InstanceOfGuard struct {
	Constructor *ClassType
}

func (InstanceOfGuard) isGuard() {}

// Narrow refines t under guard.
//
// inferred and any are not narrowed by `instanceof Function` or
// `instanceof Object`, but are narrowed to the instance type of any other constructor.
func (r Resolver) Narrow(t Type, guard NarrowingGuard) Type {
	switch g := guard.(type) {
	case InstanceOfGuard:
		return r.narrowInstanceOf(t, g.Constructor)
	}
	return t
}

func (r Resolver) narrowInstanceOf(t Type, ctor *ClassType) Type {
	switch t.Kind() {
	case KindInferred, KindAny:
		if ctor.Name == FunctionClass.Name || ctor.Name == ObjectClass.Name {
			return t
		}
		return ctor
	case KindUnion:
		var acc Type = Never
		for _, m := range t.(UnionType).Members {
			acc = r.Union(acc, r.narrowInstanceOf(m, ctor))
		}
		return acc
	}
	if r.IsAssignable(t, ctor) {
		return t
	}
	if r.IsAssignable(ctor, t) {
		return ctor
	}
	return r.Intersect(t, ctor)
}
