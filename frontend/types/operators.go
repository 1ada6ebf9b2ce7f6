package types

import (
	"fmt"
	"github.com/cottand/inferred/frontend/ast"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/hashicorp/go-set/v3"
)

type OperatorKind int

const (
	OpEquality OperatorKind = iota
	OpRelational
	OpPropertyAccess
	OpIndexedAccess
	OpArithmetic
	OpBitwise
	OpIncrementDecrement
	OpUnaryPlusMinus
	OpCall
	OpCallWithTypeArgs
	OpConstruct
	OpConstructWithTypeArgs
	OpTaggedTemplate
)

var operatorNames = [...]string{
	OpEquality:              "equality",
	OpRelational:            "relational comparison",
	OpPropertyAccess:        "property access",
	OpIndexedAccess:         "indexed access",
	OpArithmetic:            "arithmetic",
	OpBitwise:               "bitwise operation",
	OpIncrementDecrement:    "increment/decrement",
	OpUnaryPlusMinus:        "unary plus/minus",
	OpCall:                  "call",
	OpCallWithTypeArgs:      "call with type arguments",
	OpConstruct:             "construction",
	OpConstructWithTypeArgs: "construction with type arguments",
	OpTaggedTemplate:        "tagged template",
}

func (op OperatorKind) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("OperatorKind(%d)", int(op))
}

func allOperators() []OperatorKind {
	ops := make([]OperatorKind, 0, len(operatorNames))
	for op := range operatorNames {
		ops = append(ops, OperatorKind(op))
	}
	return ops
}

// forbiddenOnInferred are the call forms inferred does not support:
// its shape is closed JSON, so it cannot be explicitly instantiated
var forbiddenOnInferred = set.From([]OperatorKind{OpCallWithTypeArgs, OpConstructWithTypeArgs, OpTaggedTemplate})

var numericOperators = []OperatorKind{
	OpEquality, OpRelational, OpPropertyAccess, OpIndexedAccess,
	OpArithmetic, OpBitwise, OpIncrementDecrement, OpUnaryPlusMinus,
}

var callOperators = []OperatorKind{
	OpCall, OpCallWithTypeArgs, OpConstruct, OpConstructWithTypeArgs, OpTaggedTemplate,
}

// ApplicableOperators returns the operators that may be applied to an operand of type t
func (r Resolver) ApplicableOperators(t Type) set.Collection[OperatorKind] {
	switch t.Kind() {
	case KindAny:
		return set.From(allOperators())
	case KindInferred:
		return set.From(allOperators()).Difference(forbiddenOnInferred)
	case KindNever:
		return set.New[OperatorKind](0)
	case KindNumber, KindLiteral:
		return set.From(numericOperators)
	case KindString:
		return set.From([]OperatorKind{OpEquality, OpRelational, OpPropertyAccess, OpIndexedAccess, OpArithmetic})
	case KindFunc:
		return set.From(append([]OperatorKind{OpEquality, OpPropertyAccess}, callOperators...))
	case KindClass:
		ops := set.From([]OperatorKind{OpEquality, OpPropertyAccess})
		if t.(*ClassType).Extends(FunctionClass) {
			ops.InsertSlice(callOperators)
		}
		return ops
	case KindUnion:
		// an operator applies to a union when it applies to every member
		var acc set.Collection[OperatorKind]
		for _, m := range t.(UnionType).Members {
			if acc == nil {
				acc = r.ApplicableOperators(m)
				continue
			}
			acc = acc.Intersect(r.ApplicableOperators(m))
		}
		return acc
	}
	return set.From([]OperatorKind{OpEquality, OpPropertyAccess, OpIndexedAccess})
}

// operandOf describes the position of an operand for TypeMismatch errors
type operandOf OperatorKind

func (o operandOf) String() string {
	return "operand of " + OperatorKind(o).String()
}

// CheckOperator returns nil when op can be applied to an operand of type t.
// Otherwise, it reports
//   - ilerr.DisallowedTypeArguments for calls or constructions with explicit type arguments on
//     types that otherwise allow untyped calls (like inferred),
//   - ilerr.NotCallable for other call forms,
//   - ilerr.TypeMismatch for everything else.
func (r Resolver) CheckOperator(t Type, op OperatorKind, at ast.Positioner) ilerr.IleError {
	applicable := r.ApplicableOperators(t)
	if applicable.Contains(op) {
		return nil
	}
	pos := ast.RangeOf(at)
	switch op {
	case OpCallWithTypeArgs:
		if applicable.Contains(OpCall) {
			return ilerr.New(ilerr.NewDisallowedTypeArguments{Positioner: pos, Callee: t})
		}
		return ilerr.New(ilerr.NewNotCallable{Positioner: pos, Callee: t, Form: "function"})
	case OpConstructWithTypeArgs:
		if applicable.Contains(OpConstruct) {
			return ilerr.New(ilerr.NewDisallowedTypeArguments{Positioner: pos, Callee: t})
		}
		return ilerr.New(ilerr.NewNotCallable{Positioner: pos, Callee: t, Form: "constructor"})
	case OpCall:
		return ilerr.New(ilerr.NewNotCallable{Positioner: pos, Callee: t, Form: "function"})
	case OpConstruct:
		return ilerr.New(ilerr.NewNotCallable{Positioner: pos, Callee: t, Form: "constructor"})
	case OpTaggedTemplate:
		return ilerr.New(ilerr.NewNotCallable{Positioner: pos, Callee: t, Form: "template tag"})
	}
	return ilerr.New(ilerr.NewTypeMismatch{Positioner: pos, Source: t, Target: operandOf(op)})
}

// OperatorResult is the type of applying op (written as operator in the source, like "+=")
// when at least one of the operands is inferred or any.
//
// For inferred subjects, accessing or calling produces inferred again.
func (r Resolver) OperatorResult(op OperatorKind, operator string, operands ...Type) Type {
	anyOperand, inferredOperand, stringOperand := false, false, false
	for _, o := range operands {
		switch o.Kind() {
		case KindAny:
			anyOperand = true
		case KindInferred:
			inferredOperand = true
		case KindString:
			stringOperand = true
		case KindLiteral:
			stringOperand = stringOperand || o.(LiteralType).Base == KindString
		}
	}

	switch op {
	case OpEquality, OpRelational:
		return Boolean
	case OpArithmetic:
		if operator != "+" && operator != "+=" {
			return Number
		}
		switch {
		case stringOperand:
			return String
		case anyOperand:
			return Any
		case inferredOperand:
			return r.Union(String, Number)
		}
		return Number
	case OpBitwise, OpIncrementDecrement, OpUnaryPlusMinus:
		return Number
	case OpPropertyAccess, OpIndexedAccess, OpCall, OpCallWithTypeArgs, OpConstruct, OpConstructWithTypeArgs, OpTaggedTemplate:
		if anyOperand {
			return Any
		}
		if inferredOperand {
			return Inferred
		}
	}
	return Unknown
}
