package parser

import (
	"context"
	"testing"

	"github.com/zirlang/zir/zir"
)

func mustParse(t *testing.T, src string) *zir.Module {
	t.Helper()

	mod, err := Parse(context.Background(), []byte(src+"\x00"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	return mod
}

func TestEmptyModule(t *testing.T) {
	mod := mustParse(t, "")

	if len(mod.Decls) != 0 {
		t.Errorf("decls = %d, want 0", len(mod.Decls))
	}

	if len(mod.Errors) != 0 {
		t.Errorf("errors = %v, want none", mod.Errors)
	}
}

func TestSingleString(t *testing.T) {
	mod := mustParse(t, `@0 = str("hi")`)

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	if len(mod.Decls) != 1 {
		t.Fatalf("decls = %d, want 1", len(mod.Decls))
	}

	d := mod.Decls[0]
	if d.Tag != zir.TagStr {
		t.Errorf("tag = %v, want str", d.Tag)
	}

	if d.Pos[0].Str != "hi" {
		t.Errorf("bytes = %q, want %q", d.Pos[0].Str, "hi")
	}
}

func TestUnknownPrimitive(t *testing.T) {
	mod := mustParse(t, `@0 = primitive(i32)`)

	if len(mod.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", mod.Errors)
	}

	want := "tag 'i32' not a member of enum 'BuiltinType'"
	if mod.Errors[0].Msg != want {
		t.Errorf("msg = %q, want %q", mod.Errors[0].Msg, want)
	}
}

func TestFunctionWithBody(t *testing.T) {
	src := "@0 = primitive(void)\n" +
		"@1 = fntype([], @0)\n" +
		"@2 = fn(@1, {\n" +
		"  %0 = unreachable()\n" +
		"})\n"

	mod := mustParse(t, src)

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	if len(mod.Decls) != 3 {
		t.Fatalf("decls = %d, want 3", len(mod.Decls))
	}

	fn := mod.Decls[2]
	if fn.Tag != zir.TagFn {
		t.Fatalf("tag = %v, want fn", fn.Tag)
	}

	body := fn.Arg("body").Block
	if len(body.Code) != 1 {
		t.Fatalf("body code = %d, want 1", len(body.Code))
	}

	if body.Code[0].Tag != zir.TagUnreachable {
		t.Errorf("body[0].Tag = %v, want unreachable", body.Code[0].Tag)
	}
}

func TestCrossScopeReference(t *testing.T) {
	mod := mustParse(t, `@0 = ptrtoint(%7)`)

	if len(mod.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", mod.Errors)
	}

	want := "referencing a % instruction in global scope"
	if mod.Errors[0].Msg != want {
		t.Errorf("msg = %q, want %q", mod.Errors[0].Msg, want)
	}
}

func TestDuplicateIdentifier(t *testing.T) {
	src := "@x = primitive(bool)\n@x = primitive(void)\n"

	mod := mustParse(t, src)

	if len(mod.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", mod.Errors)
	}

	want := "redefinition of identifier 'x'"
	if mod.Errors[0].Msg != want {
		t.Errorf("msg = %q, want %q", mod.Errors[0].Msg, want)
	}

	if len(mod.Decls) != 2 {
		t.Fatalf("decls = %d, want 2 (both decls still parsed)", len(mod.Decls))
	}
}

func TestAsmVolatileDefaultOmitted(t *testing.T) {
	src := `@0 = str("")` + "\n" +
		`@1 = primitive(void)` + "\n" +
		`@2 = asm(@0, @1)` + "\n"

	mod := mustParse(t, src)

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	asm := mod.Decls[2]

	if asm.Kw["volatile"].Bool != false {
		t.Errorf("volatile = %v, want false (default)", asm.Kw["volatile"].Bool)
	}

	if asm.Kw["output"].Inst != nil {
		t.Errorf("output = %v, want absent", asm.Kw["output"].Inst)
	}

	if len(asm.Kw["inputs"].List) != 0 {
		t.Errorf("inputs = %v, want empty", asm.Kw["inputs"].List)
	}
}

func TestAsmVolatileExplicit(t *testing.T) {
	src := `@0 = str("")` + "\n" +
		`@1 = primitive(void)` + "\n" +
		`@2 = asm(@0, @1, volatile=1)` + "\n"

	mod := mustParse(t, src)

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	if !mod.Decls[2].Kw["volatile"].Bool {
		t.Errorf("volatile = false, want true")
	}
}

func TestUnknownInstructionRecovers(t *testing.T) {
	src := "@0 = bogus(1, 2, 3)\n@1 = primitive(void)\n"

	mod := mustParse(t, src)

	if len(mod.Decls) != 1 {
		t.Fatalf("decls = %d, want 1 (only @1 survives)", len(mod.Decls))
	}

	found := false

	for _, e := range mod.Errors {
		if e.Msg == "unknown instruction 'bogus'" {
			found = true
		}
	}

	if !found {
		t.Errorf("errors = %v, want unknown instruction diagnostic", mod.Errors)
	}
}

func TestForwardReferenceInBlockFails(t *testing.T) {
	src := "@0 = primitive(void)\n" +
		"@1 = fntype([], @0)\n" +
		"@2 = fn(@1, {\n" +
		"  %0 = ptrtoint(%1)\n" +
		"  %1 = unreachable()\n" +
		"})\n"

	mod := mustParse(t, src)

	found := false

	for _, e := range mod.Errors {
		if e.Msg == "unrecognized identifier '1'" {
			found = true
		}
	}

	if !found {
		t.Errorf("errors = %v, want unrecognized identifier '1'", mod.Errors)
	}
}
