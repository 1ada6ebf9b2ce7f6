package types

// IsJSONCompatible reports whether every value of t is a JSON value:
// a number, string, boolean, null, an array of JSON values, or an
// object shape whose fields are JSON values.
//
// inferred itself is JSON-compatible, and so is never, vacuously.
func IsJSONCompatible(t Type) bool {
	switch t := t.(type) {
	case basicType:
		switch t.kind {
		case KindNumber, KindString, KindBoolean, KindNull, KindNever:
			return true
		}
		return false
	case InferredType, LiteralType:
		return true
	case ArrayType:
		return IsJSONCompatible(t.Elem)
	case ObjectType:
		for _, f := range t.Fields {
			if !IsJSONCompatible(f.Type) {
				return false
			}
		}
		return true
	case UnionType:
		for _, m := range t.Members {
			if !IsJSONCompatible(m) {
				return false
			}
		}
		return true
	case IntersectionType:
		// an intersection is narrower than any of its members
		for _, m := range t.Members {
			if IsJSONCompatible(m) {
				return true
			}
		}
		return false
	}
	return false
}
