package interp

import "testing"

func TestFunctionTableBindAndLookup(t *testing.T) {
	ft := NewFunctionTable()
	ft.Bind("", "greet", "", []Formal{{Name: "who", TypeName: "string", Mode: ModeIn}}, nil)

	entry, ok := ft.Lookup("", "greet")
	if !ok {
		t.Fatal("Lookup should find the bound entry")
	}
	if len(entry.Formals) != 1 || entry.Formals[0].Name != "who" {
		t.Errorf("Formals = %+v, want one formal named who", entry.Formals)
	}
}

func TestFunctionTableLookupCaseInsensitive(t *testing.T) {
	ft := NewFunctionTable()
	ft.Bind("List", "Append", "", nil, nil)

	if !ft.Has("list", "append") {
		t.Error("Has should be case-insensitive on both bucket and name")
	}
	if !ft.Has("LIST", "APPEND") {
		t.Error("Has should be case-insensitive on both bucket and name")
	}
}

func TestFunctionTableLookupMissing(t *testing.T) {
	ft := NewFunctionTable()
	if ft.Has("", "nosuch") {
		t.Error("Has should report false for an unbound name")
	}
}

func TestFunctionTableFirstMatchWins(t *testing.T) {
	ft := NewFunctionTable()
	ft.Bind("", "f", "", []Formal{{Name: "a", TypeName: "natural", Mode: ModeIn}}, nil)
	ft.Bind("", "f", "", []Formal{{Name: "a", TypeName: "string", Mode: ModeIn}}, nil)

	entry, ok := ft.Lookup("", "f")
	if !ok {
		t.Fatal("Lookup should find an entry")
	}
	if entry.Formals[0].TypeName != "natural" {
		t.Errorf("expected the first-registered overload to win, got %s", entry.Formals[0].TypeName)
	}
}

func TestFunctionTableBindFncAndBindPrc(t *testing.T) {
	ft := NewFunctionTable()
	ft.BindFnc("string", "length", nil, func(args map[string]*Variant) (*Variant, error) {
		return nil, nil
	})
	ft.BindPrc("list", "append", nil, func(args map[string]*Variant) error { return nil })

	fnEntry, ok := ft.Lookup("string", "length")
	if !ok || fnEntry.Native == nil {
		t.Fatal("expected a native function entry")
	}
	if fnEntry.IsProcedure() {
		t.Error("a native function entry should not report IsProcedure")
	}

	prcEntry, ok := ft.Lookup("list", "append")
	if !ok || prcEntry.NativeProc == nil {
		t.Fatal("expected a native procedure entry")
	}
}

func TestFuncEntryIsProcedure(t *testing.T) {
	scriptProc := &FuncEntry{ReturnType: "", Formals: nil}
	if !scriptProc.IsProcedure() {
		t.Error("a script entry with no return type and no Native should be a procedure")
	}

	scriptFunc := &FuncEntry{ReturnType: "natural"}
	if scriptFunc.IsProcedure() {
		t.Error("a script entry with a return type should not be a procedure")
	}
}
