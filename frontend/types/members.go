package types

// Property returns the type of t.name, if t is known to have that property.
//
// It does not handle inferred or any, whose properties are untyped;
// see Resolver.OperatorResult for those.
func Property(t Type, name string) (Type, bool) {
	return propertyOf(t, name)
}

func propertyOf(t Type, name string) (Type, bool) {
	switch t := t.(type) {
	case ObjectType:
		return lookupField(t.Fields, name)
	case *ClassType:
		return t.Field(name)
	case ArrayType:
		if name == "length" {
			return Number, true
		}
	case FuncType:
		return FunctionClass.Field(name)
	case LiteralType:
		return propertyOf(t.Widened(), name)
	case basicType:
		if t.kind == KindString && name == "length" {
			return Number, true
		}
	case IntersectionType:
		for _, m := range t.Members {
			if ft, ok := propertyOf(m, name); ok {
				return ft, true
			}
		}
	}
	return nil, false
}

// Element returns the type of t[i] for arrays and strings
func Element(t Type) (Type, bool) {
	switch t := t.(type) {
	case ArrayType:
		return t.Elem, true
	case LiteralType:
		return Element(t.Widened())
	case basicType:
		if t.kind == KindString {
			return String, true
		}
	}
	return nil, false
}
