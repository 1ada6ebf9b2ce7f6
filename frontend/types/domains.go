package types

import (
	"github.com/xtgo/set"
	"slices"
)

// domain is a family of runtime values. Two types whose domains do not
// overlap have no value in common, so their intersection is never.
type domain uint8

const (
	domString domain = iota
	domNumber
	domBoolean
	domNull
	domUndefined
	domObject
	domFunction
)

// domains is an ordered set of domain, as required by xtgo/set
type domains []domain

func (d domains) Len() int           { return len(d) }
func (d domains) Less(i, j int) bool { return d[i] < d[j] }
func (d domains) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }

var (
	allDomains     = domains{domString, domNumber, domBoolean, domNull, domUndefined, domObject, domFunction}
	jsonDomains    = domains{domString, domNumber, domBoolean, domNull, domObject}
	nonNullDomains = domains{domString, domNumber, domBoolean, domObject, domFunction}
	objectDomains  = domains{domObject, domFunction}
)

func interDomains(a, b domains) domains {
	data := append(slices.Clone(a), b...)
	return data[:set.Inter(data, len(a))]
}

func unionDomains(a, b domains) domains {
	data := append(slices.Clone(a), b...)
	return data[:set.Union(data, len(a))]
}

// disjoint returns true when no value can belong to both a and b
func disjoint(a, b Type) bool {
	return len(interDomains(domainsOf(a), domainsOf(b))) == 0
}

func domainsOf(t Type) domains {
	switch t := t.(type) {
	case basicType:
		switch t.kind {
		case KindNever:
			return domains{}
		case KindNumber:
			return domains{domNumber}
		case KindString:
			return domains{domString}
		case KindBoolean:
			return domains{domBoolean}
		case KindNull:
			return domains{domNull}
		case KindUndefined, KindVoid:
			return domains{domUndefined}
		case KindNonPrimitive:
			return objectDomains
		}
		return allDomains
	case InferredType:
		return jsonDomains
	case LiteralType:
		return domainsOf(t.Widened())
	case ArrayType:
		return domains{domObject}
	case ObjectType:
		if t.IsEmpty() {
			return nonNullDomains
		}
		return domains{domObject}
	case FuncType:
		return domains{domFunction}
	case *ClassType:
		switch t.Name {
		case FunctionClass.Name:
			return domains{domFunction}
		case ObjectClass.Name:
			return objectDomains
		}
		return domains{domObject}
	case UnionType:
		acc := domains{}
		for _, m := range t.Members {
			acc = unionDomains(acc, domainsOf(m))
		}
		return acc
	case IntersectionType:
		acc := allDomains
		for _, m := range t.Members {
			acc = interDomains(acc, domainsOf(m))
		}
		return acc
	}
	return allDomains
}
