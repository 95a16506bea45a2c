package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solarix95/neoada/internal/interp"
)

func TestReadInputEvalFlagTakesPriority(t *testing.T) {
	evalExpr = `declare x : natural := 1;`
	defer func() { evalExpr = "" }()

	input, filename, err := readInput([]string{"ignored.ada"})
	if err != nil {
		t.Fatalf("readInput error: %v", err)
	}
	if input != evalExpr || filename != "<eval>" {
		t.Errorf("got (%q, %q), want (%q, <eval>)", input, filename, evalExpr)
	}
}

func TestReadInputReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.ada")
	if err := os.WriteFile(path, []byte("declare n : natural := 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	input, filename, err := readInput([]string{path})
	if err != nil {
		t.Fatalf("readInput error: %v", err)
	}
	if input != "declare n : natural := 1;" || filename != path {
		t.Errorf("got (%q, %q), want source content and %q", input, filename, path)
	}
}

func TestReadInputMissingFileErrors(t *testing.T) {
	if _, _, err := readInput([]string{"/no/such/file.ada"}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRegisterHostProcsPrint(t *testing.T) {
	st := interp.NewState()
	registerHostProcs(st)

	entry, ok := st.Functions.Lookup("", "print")
	if !ok {
		t.Fatal("expected the print procedure to be registered")
	}
	msg := interp.NewString(st.Types.MustLookup("string"), "hello")
	if err := entry.NativeProc(map[string]*interp.Variant{"message": msg}); err != nil {
		t.Fatalf("print error: %v", err)
	}
}

func TestRegisterHostProcsPrintNilMessage(t *testing.T) {
	st := interp.NewState()
	registerHostProcs(st)

	entry, _ := st.Functions.Lookup("", "print")
	if err := entry.NativeProc(map[string]*interp.Variant{}); err != nil {
		t.Fatalf("print with no message error: %v", err)
	}
}
