package interp

import "testing"

func TestSymbolTableDeclareAndFind(t *testing.T) {
	st := NewSymbolTable()
	v := NewUndefined(nil)
	if _, ok := st.Declare("x", v); !ok {
		t.Fatal("Declare should succeed for a fresh name")
	}
	sym, ok := st.Find("x")
	if !ok || sym.Variant != v {
		t.Fatal("Find should return the declared symbol")
	}
}

func TestSymbolTableFindIsCaseInsensitive(t *testing.T) {
	st := NewSymbolTable()
	st.Declare("Count", NewUndefined(nil))
	if _, ok := st.Find("count"); !ok {
		t.Error("Find should be case-insensitive")
	}
	if _, ok := st.Find("COUNT"); !ok {
		t.Error("Find should be case-insensitive")
	}
}

func TestSymbolTableDeclareDuplicateFails(t *testing.T) {
	st := NewSymbolTable()
	st.Declare("x", NewUndefined(nil))
	if _, ok := st.Declare("x", NewUndefined(nil)); ok {
		t.Error("Declare should fail for a name already bound in this scope")
	}
}

func TestSymbolTableLocalShadowsGlobal(t *testing.T) {
	st := NewSymbolTable()
	global := NewUndefined(nil)
	st.Declare("x", global)

	st.PushStack(LocalScope)
	local := NewUndefined(nil)
	st.Declare("x", local)

	sym, ok := st.Find("x")
	if !ok || sym.Variant != local {
		t.Fatal("Find inside a call frame should prefer the local binding")
	}

	st.PopStack()
	sym, ok = st.Find("x")
	if !ok || sym.Variant != global {
		t.Fatal("Find after popping the frame should fall back to globals")
	}
}

func TestSymbolTablePushPopScope(t *testing.T) {
	st := NewSymbolTable()
	st.PushStack(LocalScope)
	st.PushScope(ConditionalScope)
	st.Declare("inner", NewUndefined(nil))
	if _, ok := st.Find("inner"); !ok {
		t.Fatal("inner should be visible before PopScope")
	}
	st.PopScope()
	if _, ok := st.Find("inner"); ok {
		t.Fatal("inner should not be visible after PopScope")
	}
	st.PopStack()
}

func TestSymbolTableInLoopScope(t *testing.T) {
	st := NewSymbolTable()
	if st.InLoopScope() {
		t.Error("globals should never report being in a loop scope")
	}

	st.PushStack(LocalScope)
	if st.InLoopScope() {
		t.Error("a plain local frame is not a loop scope")
	}
	st.PushScope(LoopScope)
	if !st.InLoopScope() {
		t.Error("expected InLoopScope true once a LoopScope is pushed")
	}
	st.PopScope()
	st.PopStack()
}

func TestSymbolTableFindMissing(t *testing.T) {
	st := NewSymbolTable()
	if _, ok := st.Find("nosuch"); ok {
		t.Error("Find should fail for an undeclared name")
	}
}
