package neoada

import "testing"

func TestRuntimeRunScript(t *testing.T) {
	rt := New()
	if _, err := rt.RunScript(`declare x : natural := 21 + 21;`); err != nil {
		t.Fatalf("RunScript error: %v", err)
	}
	v, ok := rt.State().Value("x")
	if !ok || v.String() != "42" {
		t.Fatalf("x = %v (ok=%v), want 42", v, ok)
	}
}

func TestRuntimeDefineAndBindFnc(t *testing.T) {
	rt := New()
	st := rt.State()
	st.Define("greeting", "string", false)
	st.BindFnc("", "shout", []Formal{{Name: "s", TypeName: "string", Mode: In}}, func(args map[string]*Variant) (*Variant, error) {
		return args["s"], nil
	})

	if _, err := rt.RunScript(`greeting := shout("hi");`); err != nil {
		t.Fatalf("RunScript error: %v", err)
	}
	v, _ := st.Value("greeting")
	if v.String() != "hi" {
		t.Errorf("greeting = %s, want hi", v.String())
	}
}

func TestRuntimeParseReturnsAST(t *testing.T) {
	rt := New()
	program, errs := rt.Parse(`declare x : natural := 1;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if program == nil {
		t.Fatal("expected a non-nil program node")
	}
}

func TestRuntimeParseReportsStaticErrors(t *testing.T) {
	rt := New()
	_, errs := rt.Parse(`declare x : := 1;`)
	if len(errs) == 0 {
		t.Fatal("expected static errors for malformed source")
	}
}

func TestRuntimeResetClearsGlobals(t *testing.T) {
	rt := New()
	rt.RunScript(`declare x : natural := 1;`)
	rt.Reset()
	if _, ok := rt.State().Value("x"); ok {
		t.Error("x should not survive a Reset")
	}
}

func TestRuntimeLoadAddonAdaList(t *testing.T) {
	rt := New()
	rt.LoadAddonAdaList()
	if _, err := rt.RunScript(`
declare l : list := [1, 2, 3];
declare n : natural := l:length();`); err != nil {
		t.Fatalf("RunScript error: %v", err)
	}
	n, _ := rt.State().Value("n")
	if n.String() != "3" {
		t.Errorf("n = %s, want 3", n.String())
	}
}
