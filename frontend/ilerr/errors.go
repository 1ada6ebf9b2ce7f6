package ilerr

import (
	"fmt"
	"github.com/cottand/inferred/frontend/ast"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	Syntax
	TypeMismatch
	NotCallable
	DisallowedTypeArguments
	UseBeforeAssigned
	UndefinedVariable
	UndefinedType
	PropertyNotFound
)

var codeNames = map[ErrCode]string{
	None:                    "None",
	Syntax:                  "Syntax",
	TypeMismatch:            "TypeMismatch",
	NotCallable:             "NotCallable",
	DisallowedTypeArguments: "DisallowedTypeArguments",
	UseBeforeAssigned:       "UseBeforeAssigned",
	UndefinedVariable:       "UndefinedVariable",
	UndefinedType:           "UndefinedType",
	PropertyNotFound:        "PropertyNotFound",
}

func (c ErrCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrCode(%d)", int(c))
}

// ParseErrCode is the inverse of ErrCode.String
func ParseErrCode(name string) (ErrCode, bool) {
	for code, codeName := range codeNames {
		if codeName == name {
			return code, true
		}
	}
	return None, false
}

// IleError is a diagnostic found while checking a file.
// IleErrors are values that get collected in Errors, and never stop checking.
type IleError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithPosition prefixes FormatWithCode with file:line:column when e can be located in file
func FormatWithPosition(e IleError, file *ast.File) string {
	if file == nil {
		return FormatWithCode(e)
	}
	pos := file.Position(e)
	if !pos.IsValid() {
		return FormatWithCode(e)
	}
	return fmt.Sprintf("%s: %s", pos, FormatWithCode(e))
}

// FormatWithCodeAndSource is FormatWithPosition followed by the offending
// source line, with a caret under the column of e
func FormatWithCodeAndSource(e IleError, file *ast.File) string {
	header := FormatWithPosition(e, file)
	if file == nil || file.Source == "" {
		return header
	}
	pos := file.Position(e)
	lines := strings.Split(file.Source, "\n")
	if !pos.IsValid() || pos.Line > len(lines) {
		return header
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")
	prefix := line[:min(pos.Column-1, len(line))]
	// keep tabs so that the caret lines up with the source
	marker := strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, prefix)
	return fmt.Sprintf("%s\n    %s\n    %s^", header, line, marker)
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type NewSyntax struct {
	ast.Positioner
	ParserMessage string
	stack         []byte
}

func (e NewSyntax) Error() string    { return e.ParserMessage }
func (e NewSyntax) Code() ErrCode    { return Syntax }
func (e NewSyntax) getStack() []byte { return e.stack }
func (e NewSyntax) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewTypeMismatch is reported when Source is not assignable to Target
type NewTypeMismatch struct {
	ast.Positioner
	Source fmt.Stringer
	Target fmt.Stringer
	stack  []byte
}

func (e NewTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: type '%v' is not assignable to type '%v'", e.Source, e.Target)
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewNotCallable struct {
	ast.Positioner
	Callee fmt.Stringer
	// Form describes the call syntax that was used, like "tagged template"
	Form  string
	stack []byte
}

func (e NewNotCallable) Error() string {
	return fmt.Sprintf("type '%v' cannot be invoked as a %s", e.Callee, e.Form)
}
func (e NewNotCallable) Code() ErrCode    { return NotCallable }
func (e NewNotCallable) getStack() []byte { return e.stack }
func (e NewNotCallable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewDisallowedTypeArguments struct {
	ast.Positioner
	Callee fmt.Stringer
	stack  []byte
}

func (e NewDisallowedTypeArguments) Error() string {
	return fmt.Sprintf("untyped call on type '%v' may not accept type arguments", e.Callee)
}
func (e NewDisallowedTypeArguments) Code() ErrCode    { return DisallowedTypeArguments }
func (e NewDisallowedTypeArguments) getStack() []byte { return e.stack }
func (e NewDisallowedTypeArguments) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUseBeforeAssigned struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUseBeforeAssigned) Error() string {
	return fmt.Sprintf("variable '%s' is used before being assigned", e.Name)
}
func (e NewUseBeforeAssigned) Code() ErrCode    { return UseBeforeAssigned }
func (e NewUseBeforeAssigned) getStack() []byte { return e.stack }
func (e NewUseBeforeAssigned) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUndefinedVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedVariable) Code() ErrCode { return UndefinedVariable }
func (e NewUndefinedVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUndefinedVariable) getStack() []byte { return e.stack }
func (e NewUndefinedVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUndefinedType struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedType) Code() ErrCode { return UndefinedType }
func (e NewUndefinedType) Error() string {
	return fmt.Sprintf("type '%s' is not defined", e.Name)
}
func (e NewUndefinedType) getStack() []byte { return e.stack }
func (e NewUndefinedType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewPropertyNotFound struct {
	ast.Positioner
	Property string
	On       fmt.Stringer
	stack    []byte
}

func (e NewPropertyNotFound) Code() ErrCode { return PropertyNotFound }
func (e NewPropertyNotFound) Error() string {
	return fmt.Sprintf("property '%s' does not exist on type '%v'", e.Property, e.On)
}
func (e NewPropertyNotFound) getStack() []byte { return e.stack }
func (e NewPropertyNotFound) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
