package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
)

// === Scopes ================================================================

// ScopeID is the index of a scope within its scope tree.
type ScopeID int

// NoScope is the parent index of a root scope.
const NoScope ScopeID = -1

// frame is an arena entry: a named scope with a symbol table and a link to
// its parent scope.
type frame struct {
	name   string
	parent ScopeID
	serial uint64
	symtab *SymbolTable
}

// Scope is a handle to a scope living in a ScopeTree. Handles are small values
// and may be copied freely. A handle is valid until its scope is popped.
type Scope struct {
	tree   *ScopeTree
	id     ScopeID
	serial uint64
}

// ID returns the arena index of a scope.
func (s Scope) ID() ScopeID {
	return s.id
}

// IsValid is a predicate: does the handle refer to a live scope?
func (s Scope) IsValid() bool {
	if s.tree == nil {
		return false
	}
	f := s.tree.frameAt(s.id)
	return f != nil && f.serial == s.serial
}

func (s Scope) frame() *frame {
	if s.tree == nil {
		panic("attempt to access scope without scope tree")
	}
	f := s.tree.frameAt(s.id)
	if f == nil || f.serial != s.serial {
		panic(fmt.Sprintf("attempt to access stale scope #%d", s.id))
	}
	return f
}

// Name returns the name of a scope.
func (s Scope) Name() string {
	return s.frame().name
}

// Prettyfied Stringer.
func (s Scope) String() string {
	if !s.IsValid() {
		return "<scope ?>"
	}
	return fmt.Sprintf("<scope %s#%d>", s.frame().name, s.id)
}

// Parent returns the enclosing scope, if any.
func (s Scope) Parent() (Scope, bool) {
	f := s.frame()
	if f.parent == NoScope {
		return Scope{}, false
	}
	return s.tree.handle(f.parent), true
}

// Bindings returns the symbol table of a scope.
func (s Scope) Bindings() *SymbolTable {
	return s.frame().symtab
}

// Declare defines a variable in this scope. An existing variable of the same
// name in this scope is overwritten; variables in enclosing scopes are shadowed,
// never touched.
func (s Scope) Declare(name string, val ScriptValue) *Variable {
	v, existed := s.frame().symtab.Define(name, val)
	tracer().P("scope", s.id).Debugf("declare %s = %s (redeclared=%v)", name, val, existed)
	return v
}

// Lookup finds a variable, searching this scope first and then all enclosing
// scopes. Returns the variable and the scope it was found in.
func (s Scope) Lookup(name string) (*Variable, Scope, bool) {
	for cur, ok := s, true; ok; cur, ok = cur.Parent() {
		if v := cur.frame().symtab.Resolve(name); v != nil {
			return v, cur, true
		}
	}
	return nil, Scope{}, false
}

// Exists is a predicate: is name visible from this scope?
func (s Scope) Exists(name string) bool {
	_, _, found := s.Lookup(name)
	return found
}

// Assign replaces the value of the nearest visible variable of the given name.
// If no such variable exists, nothing happens and false is returned.
func (s Scope) Assign(name string, val ScriptValue) bool {
	v, where, found := s.Lookup(name)
	if !found {
		return false
	}
	v.Set(val)
	tracer().P("scope", where.id).Debugf("assign %s = %s", name, val)
	return true
}

// ---------------------------------------------------------------------------

// ScopeTree is an arena of scopes. Scopes are pushed when a block is entered and
// popped when it is left, thus the arena is always a path of the scope tree,
// from the outermost scope (index 0) to the current scope (top of stack).
type ScopeTree struct {
	arena  *arraylist.List // of *frame
	serial uint64
}

// NewScopeTree creates an empty scope tree.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{
		arena: arraylist.New(),
	}
}

func (st *ScopeTree) frameAt(id ScopeID) *frame {
	if f, ok := st.arena.Get(int(id)); ok {
		return f.(*frame)
	}
	return nil
}

func (st *ScopeTree) handle(id ScopeID) Scope {
	return Scope{tree: st, id: id, serial: st.frameAt(id).serial}
}

// Depth returns the number of live scopes.
func (st *ScopeTree) Depth() int {
	return st.arena.Size()
}

// Current gets the current scope of a stack (TOS).
func (st *ScopeTree) Current() Scope {
	if st.arena.Empty() {
		panic("attempt to access scope from empty stack")
	}
	return st.handle(ScopeID(st.arena.Size() - 1))
}

// Globals gets the outermost scope.
func (st *ScopeTree) Globals() Scope {
	if st.arena.Empty() {
		panic("attempt to access global scope from empty stack")
	}
	return st.handle(0)
}

// PushNewScope pushes a scope onto the stack of scopes. The new scope is a
// child of the current scope, or the root if the tree is empty.
func (st *ScopeTree) PushNewScope(nm string) Scope {
	parent := NoScope
	if !st.arena.Empty() {
		parent = ScopeID(st.arena.Size() - 1)
	}
	st.serial++
	st.arena.Add(&frame{
		name:   nm,
		parent: parent,
		serial: st.serial,
		symtab: NewSymbolTable(),
	})
	sc := st.Current()
	tracer().P("scope", nm).Debugf("pushing new scope #%d", sc.id)
	return sc
}

// PopScope pops the top-most (recent) scope and discards its bindings.
// Handles to the popped scope become invalid.
func (st *ScopeTree) PopScope() {
	if st.arena.Empty() {
		panic("attempt to pop scope from empty stack")
	}
	top := st.arena.Size() - 1
	f := st.frameAt(ScopeID(top))
	tracer().Debugf("popping scope [%s#%d] with %d bindings", f.name, top, f.symtab.Size())
	f.symtab.clear()
	st.arena.Remove(top)
}
