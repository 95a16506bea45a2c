package interp

import "testing"

func TestRegisterListAddonLength(t *testing.T) {
	st := NewState()
	RegisterListAddon(st)

	natType := st.Types.MustLookup("natural")
	l := NewList(st.Types.MustLookup("list"), []*Variant{NewNatural(natType, 1), NewNatural(natType, 2)})

	entry, ok := st.Functions.Lookup("list", "length")
	if !ok {
		t.Fatal("expected list.length to be registered")
	}
	result, err := entry.Native(map[string]*Variant{"this": l})
	if err != nil {
		t.Fatalf("list.length error: %v", err)
	}
	if result.String() != "2" {
		t.Errorf("list.length() = %s, want 2", result.String())
	}
}

func TestRegisterListAddonAppend(t *testing.T) {
	st := NewState()
	RegisterListAddon(st)

	natType := st.Types.MustLookup("natural")
	l := NewList(st.Types.MustLookup("list"), []*Variant{NewNatural(natType, 1)})

	entry, ok := st.Functions.Lookup("list", "append")
	if !ok {
		t.Fatal("expected list.append to be registered")
	}
	if err := entry.NativeProc(map[string]*Variant{"this": l, "v": NewNatural(natType, 9)}); err != nil {
		t.Fatalf("list.append error: %v", err)
	}
	if l.String() != "[1, 9]" {
		t.Errorf("l = %s, want [1, 9]", l.String())
	}
}

func TestRegisterListAddonInsert(t *testing.T) {
	st := NewState()
	RegisterListAddon(st)

	natType := st.Types.MustLookup("natural")
	l := NewList(st.Types.MustLookup("list"), []*Variant{NewNatural(natType, 1), NewNatural(natType, 3)})

	entry, ok := st.Functions.Lookup("list", "insert")
	if !ok {
		t.Fatal("expected list.insert to be registered")
	}
	if err := entry.NativeProc(map[string]*Variant{
		"this": l,
		"p":    NewNumber(st.Types.MustLookup("number"), 1),
		"v":    NewNatural(natType, 2),
	}); err != nil {
		t.Fatalf("list.insert error: %v", err)
	}
	if l.String() != "[1, 2, 3]" {
		t.Errorf("l = %s, want [1, 2, 3]", l.String())
	}
}

func TestRegisterListAddonInsertRejectsInvalidPosition(t *testing.T) {
	st := NewState()
	RegisterListAddon(st)

	natType := st.Types.MustLookup("natural")
	l := NewList(st.Types.MustLookup("list"), nil)

	entry, _ := st.Functions.Lookup("list", "insert")
	err := entry.NativeProc(map[string]*Variant{
		"this": l,
		"p":    NewNumber(st.Types.MustLookup("number"), -1),
		"v":    NewNatural(natType, 1),
	})
	if err == nil {
		t.Fatal("expected InvalidAccessValue for a negative insert position")
	}
}

func TestRegisterListAddonConcat(t *testing.T) {
	st := NewState()
	RegisterListAddon(st)

	natType := st.Types.MustLookup("natural")
	a := NewList(st.Types.MustLookup("list"), []*Variant{NewNatural(natType, 1)})
	b := NewList(st.Types.MustLookup("list"), []*Variant{NewNatural(natType, 2), NewNatural(natType, 3)})

	entry, _ := st.Functions.Lookup("list", "concat")
	if err := entry.NativeProc(map[string]*Variant{"this": a, "v": b}); err != nil {
		t.Fatalf("list.concat error: %v", err)
	}
	if a.String() != "[1, 2, 3]" {
		t.Errorf("a = %s, want [1, 2, 3]", a.String())
	}
}

func TestRegisterListAddonMethodsIgnoreNonListSelf(t *testing.T) {
	st := NewState()
	RegisterListAddon(st)
	notAList := NewNatural(st.Types.MustLookup("natural"), 1)

	lengthEntry, _ := st.Functions.Lookup("list", "length")
	result, err := lengthEntry.Native(map[string]*Variant{"this": notAList})
	if err != nil {
		t.Fatalf("length on a non-list self should not error: %v", err)
	}
	if result.String() != "" {
		t.Errorf("expected an undefined result for a non-list self, got %s", result.String())
	}
}

func TestRegisterStringAddonLength(t *testing.T) {
	st := NewState()
	RegisterStringAddon(st)

	s := NewString(st.Types.MustLookup("string"), "neoada")
	entry, ok := st.Functions.Lookup("string", "length")
	if !ok {
		t.Fatal("expected string.length to be registered")
	}
	result, err := entry.Native(map[string]*Variant{"this": s})
	if err != nil {
		t.Fatalf("string.length error: %v", err)
	}
	if result.String() != "6" {
		t.Errorf("string.length() = %s, want 6", result.String())
	}
}
