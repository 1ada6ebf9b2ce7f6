//go:build js && wasm

package inferred

import (
	"fmt"
	"github.com/cottand/inferred/frontend/types"
	"syscall/js"
)

// CheckAndShowTypes type-checks program and prints the types of its
// declarations, or alternatively displays error messages if the
// program does not type-check or parse
func CheckAndShowTypes(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "checker panicked: " + fmt.Sprint(r)
		}
	}()

	program := args[0].String()
	collapse := len(args) > 1 && args[1].Truthy()
	file, err := NewFileFromBytes([]byte(program), "program.ts", types.Options{CollapseInferredUnions: collapse})
	if err != nil {
		return fmt.Sprintf("the checker encountered a failure:\n\n%s", err)
	}
	if file.Errors().HasError() {
		return "the program has the following errors:\n" + file.DisplayErrors()
	}
	return file.DisplayTypes()
}
