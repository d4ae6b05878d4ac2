package runtime

import (
	"fmt"
)

// Symbol table for variables. Symbol tables are attached to scopes.

// --- Variables -------------------------------------------------------------

// Variable is a named, mutable slot for a script value. Assignment replaces
// the value wholesale.
type Variable struct {
	name  string
	value ScriptValue
}

// NewVariable creates a new variable holding an initial value.
func NewVariable(nm string, v ScriptValue) *Variable {
	return &Variable{
		name:  nm,
		value: v,
	}
}

// Name gets the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Value gets the variable's current value.
func (v *Variable) Value() ScriptValue {
	return v.value
}

// Set replaces the variable's value.
func (v *Variable) Set(val ScriptValue) {
	v.value = val
}

// String is a debug Stringer for variables.
func (v *Variable) String() string {
	return fmt.Sprintf("<var '%s'=%s>", v.name, v.value)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store variables (map-like semantics).
type SymbolTable struct {
	Table map[string]*Variable
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	var symtab = SymbolTable{
		Table: make(map[string]*Variable),
	}
	return &symtab
}

// Resolve checks for a variable in the symbol table.
// Returns a variable or nil.
func (t *SymbolTable) Resolve(name string) *Variable {
	return t.Table[name]
}

// Define stores a value under a name. If a variable of this name is already
// present, its value is overwritten and the existing variable is kept.
// Returns the variable and a flag, signalling wether it has already been present.
// The name may not be empty.
func (t *SymbolTable) Define(name string, val ScriptValue) (*Variable, bool) {
	if len(name) == 0 {
		return nil, false
	}
	if v := t.Resolve(name); v != nil {
		v.Set(val)
		return v, true
	}
	v := NewVariable(name, val)
	t.Table[name] = v
	return v, false
}

// Size counts the variables in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each variable in the table, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Variable)) {
	for k, v := range t.Table {
		mapper(k, v)
	}
}

// clear drops all variables.
func (t *SymbolTable) clear() {
	for k := range t.Table {
		delete(t.Table, k)
	}
}
