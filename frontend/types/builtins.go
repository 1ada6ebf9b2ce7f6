package types

// ObjectClass is the root of every class. `x instanceof Object` does not narrow inferred.
var ObjectClass = &ClassType{Name: "Object"}

// FunctionClass does not narrow inferred either
var FunctionClass = &ClassType{
	Name:   "Function",
	Parent: ObjectClass,
	Fields: []Field{
		{Name: "length", Type: Number},
		{Name: "name", Type: String},
	},
}

var ErrorClass = &ClassType{
	Name:   "Error",
	Parent: ObjectClass,
	Fields: []Field{
		{Name: "name", Type: String},
		{Name: "message", Type: String},
	},
}

var DateClass = &ClassType{
	Name:   "Date",
	Parent: ObjectClass,
	Fields: []Field{
		{Name: "getDate", Type: FuncType{Ret: Number}},
		{Name: "getDay", Type: FuncType{Ret: Number}},
		{Name: "getFullYear", Type: FuncType{Ret: Number}},
		{Name: "getHours", Type: FuncType{Ret: Number}},
		{Name: "getTime", Type: FuncType{Ret: Number}},
		{Name: "toISOString", Type: FuncType{Ret: String}},
	},
}

// Keywords are the types that can be referred to by a reserved name
var Keywords = map[string]Type{
	"never":     Never,
	"unknown":   Unknown,
	"any":       Any,
	"inferred":  Inferred,
	"number":    Number,
	"string":    String,
	"boolean":   Boolean,
	"null":      Null,
	"undefined": Undefined,
	"void":      Void,
	"object":    NonPrimitive,
}

// BuiltinClasses are declared in every file
var BuiltinClasses = []*ClassType{
	ObjectClass,
	FunctionClass,
	ErrorClass,
	DateClass,
}
