package host

import (
	"fmt"

	"github.com/npillmayer/bpp/runtime"
)

// Bridge resolves and invokes host capabilities on behalf of a script run.
// A bridge is not safe for concurrent use; every script context owns its own
// bridge and namespace registry, while the capability table may be shared.
type Bridge struct {
	table  *Table
	ns     *Namespaces
	onMiss func(*Miss)
}

// NewBridge creates a bridge for a capability table, with an empty namespace
// registry. table may be nil, which results in every class lookup missing.
func NewBridge(table *Table) *Bridge {
	if table == nil {
		table = NewTable()
	}
	return &Bridge{
		table: table,
		ns:    NewNamespaces(),
	}
}

// SetMissHandler sets a function to be called for each silent miss.
func (b *Bridge) SetMissHandler(h func(*Miss)) {
	b.onMiss = h
}

// Namespaces returns the bridge's namespace registry.
func (b *Bridge) Namespaces() *Namespaces {
	return b.ns
}

// Table returns the bridge's capability table.
func (b *Bridge) Table() *Table {
	return b.table
}

// Report traces a silent miss and hands it to the miss handler, if any.
func (b *Bridge) Report(m *Miss) {
	tracer().Infof("silent miss: %v", m)
	if b.onMiss != nil {
		b.onMiss(m)
	}
}

// RegisterNamespace appends a namespace prefix to the registry. It returns
// false if the prefix is malformed.
func (b *Bridge) RegisterNamespace(prefix string) bool {
	if miss := b.ns.Register(prefix); miss != nil {
		b.Report(miss)
		return false
	}
	tracer().Infof("namespace %s registered", prefix)
	return true
}

// ResolveClass tries the short name with every registered prefix, in
// registration order, and returns the first class found. Unqualified names
// are never tried.
func (b *Bridge) ResolveClass(short string) (*Class, bool) {
	for _, qn := range b.ns.Qualify(short) {
		if c, found := b.table.Lookup(qn); found {
			tracer().Debugf("class %s resolved to %s", short, qn)
			return c, true
		}
	}
	b.Report(&Miss{Kind: NoClass, Name: short})
	return nil, false
}

// FieldExists is a predicate: does class c have a public field name?
func (b *Bridge) FieldExists(c *Class, name string) bool {
	return c != nil && c.HasField(name)
}

// ReadField reads a public field. A missing field is a silent miss.
func (b *Bridge) ReadField(c *Class, name string) (interface{}, bool) {
	if c != nil {
		if v, found := c.FieldValue(name); found {
			return v, true
		}
	}
	b.Report(&Miss{Kind: NoField, Name: memberName(c, name)})
	return nil, false
}

// MethodExists is a predicate: does class c have a public method name with
// parameter types matching the declared types of args, in order?
func (b *Bridge) MethodExists(c *Class, name string, args []runtime.Argument) bool {
	if c == nil {
		return false
	}
	_, found := c.FindMethod(name, args)
	return found
}

// InvokeStaticMethod selects a matching overload and calls it with the raw
// arguments. The host's result is returned as is. A missing method, an error
// returned by the method, or a panic inside the method are silent misses.
func (b *Bridge) InvokeStaticMethod(c *Class, name string, args []runtime.Argument) (result interface{}, ok bool) {
	var m *Method
	if c != nil {
		m, ok = c.FindMethod(name, args)
	}
	if !ok {
		b.Report(&Miss{Kind: NoMethod, Name: memberName(c, name) + signatureOf(args)})
		return nil, false
	}
	raw := make([]interface{}, len(args))
	for i, a := range args {
		raw[i] = a.Unwrap()
	}
	defer func() {
		if r := recover(); r != nil {
			b.Report(&Miss{Kind: InvokeFailed, Name: memberName(c, m.Signature()),
				Cause: fmt.Errorf("panic: %v", r)})
			result, ok = nil, false
		}
	}()
	tracer().Infof("invoke %s.%s", c.Name(), m.Signature())
	result, err := m.fn(raw)
	if err != nil {
		b.Report(&Miss{Kind: InvokeFailed, Name: memberName(c, m.Signature()), Cause: err})
		return nil, false
	}
	return result, true
}

func memberName(c *Class, name string) string {
	if c == nil {
		return name
	}
	return c.Name() + "." + name
}

func signatureOf(args []runtime.Argument) string {
	s := "("
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		s += a.DeclaredType().String()
	}
	return s + ")"
}
