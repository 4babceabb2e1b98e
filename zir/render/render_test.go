package render

import (
	"context"
	"testing"

	"github.com/zirlang/zir/zir/parser"
)

func TestRenderSingleString(t *testing.T) {
	src := "@0 = str(\"hi\")\n"

	mod, err := parser.Parse(context.Background(), []byte(src+"\x00"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	out, err := String(mod)
	if err != nil {
		t.Fatalf("String: %v", err)
	}

	if out != src {
		t.Errorf("render = %q, want %q", out, src)
	}
}

func TestRenderParseFixedPoint(t *testing.T) {
	src := "@0 = primitive(void)\n" +
		"@1 = fntype([], @0)\n" +
		"@2 = fn(@1, {\n" +
		"  %0 = unreachable()\n" +
		"})\n"

	mod, err := parser.Parse(context.Background(), []byte(src+"\x00"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	out, err := String(mod)
	if err != nil {
		t.Fatalf("String: %v", err)
	}

	if out != src {
		t.Errorf("render = %q, want %q", out, src)
	}

	mod2, err := parser.Parse(context.Background(), []byte(out+"\x00"))
	if err != nil {
		t.Fatalf("Parse (2nd): %v", err)
	}

	out2, err := String(mod2)
	if err != nil {
		t.Fatalf("String (2nd): %v", err)
	}

	if out2 != out {
		t.Errorf("render is not a fixed point: %q != %q", out2, out)
	}
}

func TestRenderOmitsDefaultKeyword(t *testing.T) {
	src := "@0 = str(\"\")\n" +
		"@1 = primitive(void)\n" +
		"@2 = asm(@0, @1, volatile=1)\n"

	mod, err := parser.Parse(context.Background(), []byte(src+"\x00"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(mod.Errors) != 0 {
		t.Fatalf("errors = %v", mod.Errors)
	}

	out, err := String(mod)
	if err != nil {
		t.Fatalf("String: %v", err)
	}

	if out != src {
		t.Errorf("render = %q, want %q", out, src)
	}

	src2 := "@0 = str(\"\")\n" +
		"@1 = primitive(void)\n" +
		"@2 = asm(@0, @1, volatile=0)\n"

	mod2, err := parser.Parse(context.Background(), []byte(src2+"\x00"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out2, err := String(mod2)
	if err != nil {
		t.Fatalf("String: %v", err)
	}

	want2 := "@0 = str(\"\")\n" +
		"@1 = primitive(void)\n" +
		"@2 = asm(@0, @1)\n"

	if out2 != want2 {
		t.Errorf("render = %q, want %q (default keyword omitted)", out2, want2)
	}
}
