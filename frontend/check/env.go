package check

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/inferred/frontend/types"
)

// binding is a value in scope
type binding struct {
	id   int
	name string
	// t is the type of reads, which narrowing may refine
	t types.Type
	// declared is the type that assignments are checked against
	declared types.Type
	// class is set when the binding is a class constructor, like Error
	class *types.ClassType
	// depth is how many functions deep the binding was declared
	depth int
}

// env is a lexical scope. Scopes nest by deriving a new env, which leaves
// the enclosing one untouched.
type env struct {
	values *immutable.Map[string, *binding]
	types  *immutable.Map[string, types.Type]
}

func (e env) withValue(b *binding) env {
	e.values = e.values.Set(b.name, b)
	return e
}

func (e env) withType(name string, t types.Type) env {
	e.types = e.types.Set(name, t)
	return e
}

func (c *fileChecker) newBinding(name string, t types.Type) *binding {
	c.nextID++
	return &binding{id: c.nextID, name: name, t: t, declared: t, depth: c.depth()}
}

func (c *fileChecker) markAssigned(b *binding) {
	c.assigned = c.assigned.Set(b.id, struct{}{})
}

func (c *fileChecker) isAssigned(b *binding) bool {
	_, ok := c.assigned.Get(b.id)
	return ok
}

// constructorType is the type of a class used as a value
func constructorType(class *types.ClassType) types.Type {
	return types.FuncType{Ret: class}
}

func (c *fileChecker) declareClass(e env, class *types.ClassType) env {
	ctor := c.newBinding(class.Name, constructorType(class))
	ctor.class = class
	c.markAssigned(ctor)
	return e.withValue(ctor).withType(class.Name, class)
}

func (c *fileChecker) builtinEnv() env {
	e := env{
		values: immutable.NewMap[string, *binding](immutable.NewHasher("")),
		types:  immutable.NewMap[string, types.Type](immutable.NewHasher("")),
	}
	for _, class := range types.BuiltinClasses {
		e = c.declareClass(e, class)
	}
	undefined := c.newBinding("undefined", types.Undefined)
	c.markAssigned(undefined)
	return e.withValue(undefined)
}

// intersectAssigned keeps the assignments that happened in both branches
func intersectAssigned(a, b *immutable.Map[int, struct{}]) *immutable.Map[int, struct{}] {
	result := immutable.NewMap[int, struct{}](immutable.NewHasher(0))
	itr := a.Iterator()
	for !itr.Done() {
		id, _, _ := itr.Next()
		if _, ok := b.Get(id); ok {
			result = result.Set(id, struct{}{})
		}
	}
	return result
}
