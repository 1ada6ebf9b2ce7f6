package types

import (
	"encoding/binary"
	"fmt"
	"github.com/cottand/inferred/frontend/ast"
	"github.com/hashicorp/go-set/v3"
	"hash/fnv"
	"strings"
)

// Kind is the discriminant every resolver rule switches on before
// looking at the structure of a Type
type Kind int

const (
	KindNever Kind = iota
	KindUnknown
	KindAny
	KindInferred
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindUndefined
	KindVoid
	KindLiteral
	KindArray
	KindObject
	KindNonPrimitive
	KindFunc
	KindClass
	KindUnion
	KindIntersection
)

// Type is an immutable, resolved type.
//
// Two Types are considered the same when their Hash is the same, see Equal.
type Type interface {
	fmt.Stringer
	Hash() uint64
	Kind() Kind
}

var (
	_ Type = basicType{}
	_ Type = InferredType{}
	_ Type = LiteralType{}
	_ Type = ArrayType{}
	_ Type = ObjectType{}
	_ Type = FuncType{}
	_ Type = (*ClassType)(nil)
	_ Type = UnionType{}
	_ Type = IntersectionType{}
)

// Equal can be used to compare Type instances for equality.
// Occurrences of inferred are Equal regardless of where they come from.
func Equal[H, HH set.Hasher[uint64]](this H, other HH) bool {
	return this.Hash() == other.Hash()
}

func hashOf(kind Kind, parts ...uint64) uint64 {
	h := fnv.New64a()
	arr := binary.LittleEndian.AppendUint64(nil, uint64(kind))
	for _, p := range parts {
		arr = binary.LittleEndian.AppendUint64(arr, p)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// basicType covers the keyword types, which have no structure
type basicType struct {
	kind Kind
	name string
}

func (t basicType) Kind() Kind     { return t.kind }
func (t basicType) String() string { return t.name }
func (t basicType) Hash() uint64   { return hashOf(t.kind) }

var (
	// Never is the bottom type
	Never Type = basicType{KindNever, "never"}
	// Unknown is the top type
	Unknown Type = basicType{KindUnknown, "unknown"}
	// Any is the dynamic type
	Any          Type = basicType{KindAny, "any"}
	Number       Type = basicType{KindNumber, "number"}
	String       Type = basicType{KindString, "string"}
	Boolean      Type = basicType{KindBoolean, "boolean"}
	Null         Type = basicType{KindNull, "null"}
	Undefined    Type = basicType{KindUndefined, "undefined"}
	Void         Type = basicType{KindVoid, "void"}
	NonPrimitive Type = basicType{KindNonPrimitive, "object"}
)

// InferredType stands for any valid JSON value.
//
// The zero Origin is the nominal inferred type; a non-zero Origin marks an
// occurrence of inferred written at that range. Origin is ignored by Hash,
// so occurrences are Equal to each other and to the nominal type.
type InferredType struct {
	Origin ast.Range
}

// Inferred is the nominal inferred type
var Inferred = InferredType{}

// InferredAt returns an occurrence of inferred found at p
func InferredAt(p ast.Positioner) InferredType {
	return InferredType{Origin: ast.RangeOf(p)}
}

func (t InferredType) Kind() Kind         { return KindInferred }
func (t InferredType) String() string     { return "inferred" }
func (t InferredType) Hash() uint64       { return hashOf(KindInferred) }
func (t InferredType) IsOccurrence() bool { return !t.Origin.IsZero() }

func isInferred(t Type) bool {
	return t.Kind() == KindInferred
}

// LiteralType is a literal like 123, "hello", or true.
// Text is kept as written (strings include their quotes).
type LiteralType struct {
	Base Kind
	Text string
}

func NumberLiteral(text string) LiteralType  { return LiteralType{Base: KindNumber, Text: text} }
func BooleanLiteral(v bool) LiteralType      { return LiteralType{Base: KindBoolean, Text: fmt.Sprint(v)} }
func StringLiteral(value string) LiteralType { return LiteralType{Base: KindString, Text: fmt.Sprintf("%q", value)} }

func (t LiteralType) Kind() Kind     { return KindLiteral }
func (t LiteralType) String() string { return t.Text }
func (t LiteralType) Hash() uint64   { return hashOf(KindLiteral, uint64(t.Base), hashString(t.Text)) }

// Widened returns the primitive type this literal belongs to
func (t LiteralType) Widened() Type {
	switch t.Base {
	case KindNumber:
		return Number
	case KindString:
		return String
	case KindBoolean:
		return Boolean
	}
	panic(fmt.Sprintf("literal %s of unexpected base kind %d", t.Text, t.Base))
}

type ArrayType struct {
	Elem Type
}

func (t ArrayType) Kind() Kind   { return KindArray }
func (t ArrayType) Hash() uint64 { return hashOf(KindArray, t.Elem.Hash()) }
func (t ArrayType) String() string {
	switch t.Elem.Kind() {
	case KindUnion, KindIntersection, KindFunc:
		return "(" + t.Elem.String() + ")[]"
	}
	return t.Elem.String() + "[]"
}

type Field struct {
	Name string
	Type Type
}

func fieldsHash(fields []Field) []uint64 {
	parts := make([]uint64, 0, 2*len(fields))
	for _, f := range fields {
		parts = append(parts, hashString(f.Name), f.Type.Hash())
	}
	return parts
}

func lookupField(fields []Field, name string) (Type, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// ObjectType is a structural object shape. The empty shape is `{}`.
type ObjectType struct {
	Fields []Field
}

// EmptyObject is `{}`
var EmptyObject = ObjectType{}

func (t ObjectType) Kind() Kind    { return KindObject }
func (t ObjectType) Hash() uint64  { return hashOf(KindObject, fieldsHash(t.Fields)...) }
func (t ObjectType) IsEmpty() bool { return len(t.Fields) == 0 }
func (t ObjectType) String() string {
	if t.IsEmpty() {
		return "{}"
	}
	sb := &strings.Builder{}
	sb.WriteString("{ ")
	for _, f := range t.Fields {
		sb.WriteString(f.Name + ": " + f.Type.String() + "; ")
	}
	sb.WriteString("}")
	return sb.String()
}

type Param struct {
	Name string
	Type Type
}

type FuncType struct {
	Params []Param
	Ret    Type
}

func (t FuncType) Kind() Kind { return KindFunc }
func (t FuncType) Hash() uint64 {
	parts := make([]uint64, 0, len(t.Params)+1)
	for _, p := range t.Params {
		parts = append(parts, p.Type.Hash())
	}
	parts = append(parts, t.Ret.Hash())
	return hashOf(KindFunc, parts...)
}
func (t FuncType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		params[i] = name + ": " + p.Type.String()
	}
	return "(" + strings.Join(params, ", ") + ") => " + t.Ret.String()
}

// ClassType is a nominal type: two classes are only the same if they have the same name.
// A ClassType is both the constructor's type and the type of its instances.
type ClassType struct {
	Name   string
	Parent *ClassType
	Fields []Field
}

func (t *ClassType) Kind() Kind     { return KindClass }
func (t *ClassType) String() string { return t.Name }
func (t *ClassType) Hash() uint64   { return hashOf(KindClass, hashString(t.Name)) }

// Field looks up name in this class and then in its parents
func (t *ClassType) Field(name string) (Type, bool) {
	for c := t; c != nil; c = c.Parent {
		if ft, ok := lookupField(c.Fields, name); ok {
			return ft, true
		}
	}
	return nil, false
}

// Extends returns true if t is other or a descendant of other
func (t *ClassType) Extends(other *ClassType) bool {
	for c := t; c != nil; c = c.Parent {
		if c.Name == other.Name {
			return true
		}
	}
	return false
}

// UnionType has at least two flattened members, built through Resolver.Union
type UnionType struct {
	Members []Type
}

// IntersectionType has at least two flattened members, built through Resolver.Intersect
type IntersectionType struct {
	Members []Type
}

func (t UnionType) Kind() Kind            { return KindUnion }
func (t UnionType) Hash() uint64          { return hashOf(KindUnion, commutativeHash(t.Members)) }
func (t UnionType) String() string        { return joinMembers(t.Members, " | ") }
func (t IntersectionType) Kind() Kind     { return KindIntersection }
func (t IntersectionType) Hash() uint64   { return hashOf(KindIntersection, commutativeHash(t.Members)) }
func (t IntersectionType) String() string { return joinMembers(t.Members, " & ") }

// commutativeHash does not depend on the order of members, but does depend
// on how many times each member appears, so `inferred | inferred` is not `inferred`
func commutativeHash(members []Type) uint64 {
	var sum uint64
	for _, m := range members {
		sum += hashOf(KindUnion, m.Hash())
	}
	return sum
}

func joinMembers(members []Type, sep string) string {
	strs := make([]string, len(members))
	for i, m := range members {
		switch m.Kind() {
		case KindFunc, KindUnion, KindIntersection:
			strs[i] = "(" + m.String() + ")"
		default:
			strs[i] = m.String()
		}
	}
	return strings.Join(strs, sep)
}

func membersOf(t Type) []Type {
	switch t := t.(type) {
	case UnionType:
		return t.Members
	case IntersectionType:
		return t.Members
	}
	return []Type{t}
}
