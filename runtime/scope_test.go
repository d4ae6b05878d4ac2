package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.runtime")
	defer teardown()
	//
	st := NewScopeTree()
	parent := st.PushNewScope("parent")
	scope := st.PushNewScope("current")
	parent.Declare("x", Integer(5))
	v, where, ok := scope.Lookup("x")
	if !ok {
		t.Fatal("expected x to be found in parent scope")
	}
	if where.ID() != parent.ID() || v.Value().Raw() != 5 {
		t.Errorf("expected x=5 from parent scope, have %v in %v", v, where)
	}
	if !scope.Exists("x") || scope.Exists("y") {
		t.Errorf("Exists is broken")
	}
}

func TestScopeShadowing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.runtime")
	defer teardown()
	//
	st := NewScopeTree()
	outer := st.PushNewScope("outer")
	outer.Declare("x", Integer(5))
	inner := st.PushNewScope("inner")
	inner.Declare("x", Integer(7))
	if v, _, _ := inner.Lookup("x"); v.Value().Raw() != 7 {
		t.Errorf("expected inner x to be 7, is %s", v.Value())
	}
	st.PopScope()
	if v, _, _ := outer.Lookup("x"); v.Value().Raw() != 5 {
		t.Errorf("expected outer x to stay 5, is %s", v.Value())
	}
}

func TestScopeAssign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.runtime")
	defer teardown()
	//
	st := NewScopeTree()
	outer := st.PushNewScope("outer")
	outer.Declare("x", Integer(1))
	inner := st.PushNewScope("inner")
	if !inner.Assign("x", Integer(2)) {
		t.Fatal("expected assignment to outer x to succeed")
	}
	if inner.Bindings().Size() != 0 {
		t.Errorf("assignment must not create a binding in the inner scope")
	}
	if v, _, _ := outer.Lookup("x"); v.Value().Raw() != 2 {
		t.Errorf("expected x=2, is %s", v.Value())
	}
	if inner.Assign("nope", Integer(3)) {
		t.Errorf("expected assignment to undeclared variable to fail")
	}
	if inner.Exists("nope") {
		t.Errorf("failed assignment must not create a binding")
	}
}

func TestScopeTreeStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bpp.runtime")
	defer teardown()
	//
	st := NewScopeTree()
	g := st.PushNewScope("globals")
	c := st.PushNewScope("child")
	if st.Depth() != 2 || st.Current().ID() != c.ID() || st.Globals().ID() != g.ID() {
		t.Fatalf("unexpected arena layout, depth=%d", st.Depth())
	}
	if p, ok := c.Parent(); !ok || p.ID() != g.ID() {
		t.Errorf("expected parent of child to be globals")
	}
	if _, ok := g.Parent(); ok {
		t.Errorf("globals should have no parent")
	}
	st.PopScope()
	if c.IsValid() {
		t.Errorf("handle of popped scope should be invalid")
	}
	c2 := st.PushNewScope("child2")
	if c2.ID() != c.ID() || c.IsValid() {
		t.Errorf("expected arena slot to be re-used by a fresh scope")
	}
	if c2.Exists("x") {
		t.Errorf("re-used slot must start without bindings")
	}
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected pop from empty tree to panic")
		}
	}()
	NewScopeTree().PopScope()
}
