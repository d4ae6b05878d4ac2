package runtime

import (
	"testing"
)

func TestNewSymTab(t *testing.T) {
	symtab := NewSymbolTable()
	if symtab == nil {
		t.Error("no symbol table created")
	}
}

func TestNewVariable(t *testing.T) {
	symtab := NewSymbolTable()
	v, existed := symtab.Define("x", Integer(5))
	if v == nil || existed {
		t.Fatal("no fresh variable created for table")
	}
	v.Set(Integer(6))
	if v.Value().Raw() != 6 {
		t.Errorf("Set does not work")
	}
}

func TestEmptyNameRejected(t *testing.T) {
	symtab := NewSymbolTable()
	if v, _ := symtab.Define("", Integer(1)); v != nil {
		t.Errorf("expected empty name to be rejected")
	}
	if symtab.Size() != 0 {
		t.Errorf("expected table to be empty, has %d entries", symtab.Size())
	}
}

func TestTwoVariablesDistinct(t *testing.T) {
	symtab := NewSymbolTable()
	v1, _ := symtab.Define("x1", Integer(1))
	v2, _ := symtab.Define("x2", Integer(1))
	if v1 == v2 {
		t.Error("2 variables with equal identity")
	}
}

func TestResolve(t *testing.T) {
	symtab := NewSymbolTable()
	v, _ := symtab.Define("x", Integer(1))
	if r := symtab.Resolve(v.Name()); r != v {
		t.Error("cannot find stored variable in table")
	}
	if r := symtab.Resolve("y"); r != nil {
		t.Errorf("expected y to be unknown, is %v", r)
	}
}

func TestRedefineKeepsVariable(t *testing.T) {
	symtab := NewSymbolTable()
	v, _ := symtab.Define("x", Integer(1))
	w, existed := symtab.Define("x", Integer(2))
	if !existed || w != v {
		t.Error("redefinition should overwrite the existing variable")
	}
	if symtab.Size() != 1 || v.Value().Raw() != 2 {
		t.Errorf("expected 1 variable with value 2, have %d / %s", symtab.Size(), v.Value())
	}
}
