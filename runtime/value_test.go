package runtime

import "testing"

func TestIntegerValue(t *testing.T) {
	v := Integer(-42)
	if !v.IsInteger() || v.Raw() != -42 || v.DeclaredType() != IntegerType {
		t.Errorf("unexpected script value %v", v)
	}
	if raw, ok := v.Unwrap().(int64); !ok || raw != -42 {
		t.Errorf("expected value to unwrap to int64, is %T", v.Unwrap())
	}
	if v.String() != "-42" {
		t.Errorf("expected \"-42\", have %q", v.String())
	}
	var zero ScriptValue
	if zero.IsInteger() {
		t.Errorf("zero script value should not be an integer")
	}
}

func TestTypeAccepts(t *testing.T) {
	for i, test := range []struct {
		param, arg Type
		ok         bool
	}{
		{IntegerType, IntegerType, true},
		{IntegerType, ObjectType, false},
		{ObjectType, ObjectType, true},
		{AnyType, IntegerType, true},
		{AnyType, ObjectType, true},
		{ObjectType, IntegerType, false},
	} {
		if test.param.Accepts(test.arg) != test.ok {
			t.Errorf("test %d: %s accepts %s should be %v", i, test.param, test.arg, test.ok)
		}
	}
}

func TestHostObject(t *testing.T) {
	o := Object("editor")
	if o.DeclaredType() != ObjectType || o.Unwrap() != "editor" {
		t.Errorf("unexpected host object %v", o)
	}
}
