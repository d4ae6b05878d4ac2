package host

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/bpp/runtime"
)

// MethodFunc is the Go implementation of a host method. It receives the raw
// (unwrapped) arguments: int64 for script integers, the host value for objects.
type MethodFunc func(args []interface{}) (interface{}, error)

// Method is a single overload of a host method.
type Method struct {
	name   string
	params []runtime.Type
	fn     MethodFunc
}

// Name returns the method's name.
func (m *Method) Name() string {
	return m.name
}

// Params returns the declared parameter types of an overload.
func (m *Method) Params() []runtime.Type {
	return m.params
}

// Matches is a predicate: does the overload accept the given arguments, in order?
func (m *Method) Matches(args []runtime.Argument) bool {
	if len(args) != len(m.params) {
		return false
	}
	for i, p := range m.params {
		if !p.Accepts(args[i].DeclaredType()) {
			return false
		}
	}
	return true
}

// Signature returns a readable signature, e.g. "show(object,int)".
func (m *Method) Signature() string {
	p := make([]string, len(m.params))
	for i, t := range m.params {
		p[i] = t.String()
	}
	return m.name + "(" + strings.Join(p, ",") + ")"
}

// --- Classes ---------------------------------------------------------------

// Class is a host class exposed to scripts.
type Class struct {
	name    string
	fields  *treemap.Map // name -> value
	methods *treemap.Map // name -> *arraylist.List of *Method
}

func newClass(name string) *Class {
	return &Class{
		name:    name,
		fields:  treemap.NewWithStringComparator(),
		methods: treemap.NewWithStringComparator(),
	}
}

// Name returns the qualified name of a class.
func (c *Class) Name() string {
	return c.name
}

func (c *Class) String() string {
	return fmt.Sprintf("<class %s>", c.name)
}

// Field registers a public field. If the value is itself a *Class, host-call
// chains continue resolving members against that class.
// Field returns c to allow chaining.
func (c *Class) Field(name string, value interface{}) *Class {
	c.fields.Put(name, value)
	return c
}

// Method registers an overload of a public static method. Overloads of the same
// name are told apart by their parameter types.
// Method returns c to allow chaining.
func (c *Class) Method(name string, fn MethodFunc, params ...runtime.Type) *Class {
	var overloads *arraylist.List
	if l, found := c.methods.Get(name); found {
		overloads = l.(*arraylist.List)
	} else {
		overloads = arraylist.New()
		c.methods.Put(name, overloads)
	}
	overloads.Add(&Method{name: name, params: params, fn: fn})
	return c
}

// HasField is a predicate: is there a public field of the given name?
func (c *Class) HasField(name string) bool {
	_, found := c.fields.Get(name)
	return found
}

// FieldValue returns the value of a field.
func (c *Class) FieldValue(name string) (interface{}, bool) {
	return c.fields.Get(name)
}

// FindMethod selects the first overload of a method matching the arguments.
func (c *Class) FindMethod(name string, args []runtime.Argument) (*Method, bool) {
	l, found := c.methods.Get(name)
	if !found {
		return nil, false
	}
	it := l.(*arraylist.List).Iterator()
	for it.Next() {
		if m := it.Value().(*Method); m.Matches(args) {
			return m, true
		}
	}
	return nil, false
}

// Fields returns the names of all fields, sorted.
func (c *Class) Fields() []string {
	return stringKeys(c.fields)
}

// Methods returns all method overloads, sorted by name, overloads in
// registration order.
func (c *Class) Methods() []*Method {
	var all []*Method
	for _, l := range c.methods.Values() {
		for _, m := range l.(*arraylist.List).Values() {
			all = append(all, m.(*Method))
		}
	}
	return all
}

// --- Capability table ------------------------------------------------------

// Table is a capability table: the set of host classes scripts may use.
// It is built by the host application before scripts are run and should not
// be modified while scripts are running.
type Table struct {
	classes *treemap.Map // qualified name -> *Class
}

// NewTable creates an empty capability table.
func NewTable() *Table {
	return &Table{classes: treemap.NewWithStringComparator()}
}

// Class returns the class of the given qualified name, creating it if necessary.
func (t *Table) Class(qualifiedName string) *Class {
	if c, found := t.classes.Get(qualifiedName); found {
		return c.(*Class)
	}
	c := newClass(qualifiedName)
	t.classes.Put(qualifiedName, c)
	tracer().Debugf("capability table: new class %s", qualifiedName)
	return c
}

// Lookup finds a class by its qualified name.
func (t *Table) Lookup(qualifiedName string) (*Class, bool) {
	if c, found := t.classes.Get(qualifiedName); found {
		return c.(*Class), true
	}
	return nil, false
}

// Classes returns the qualified names of all classes, sorted.
func (t *Table) Classes() []string {
	return stringKeys(t.classes)
}

// Size returns the number of classes.
func (t *Table) Size() int {
	return t.classes.Size()
}

func stringKeys(m *treemap.Map) []string {
	keys := make([]string, 0, m.Size())
	for _, k := range m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}
