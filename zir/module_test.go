package zir

import "testing"

func TestModuleAddDeclIndexing(t *testing.T) {
	m := NewModule()

	a := m.NewInstruction(TagUnreachable, 0)
	b := m.NewInstruction(TagUnreachable, 1)

	if i := m.AddDecl(a); i != 0 {
		t.Errorf("index of a = %d, want 0", i)
	}

	if i := m.AddDecl(b); i != 1 {
		t.Errorf("index of b = %d, want 1", i)
	}

	if len(m.Decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(m.Decls))
	}
}

func TestModuleDestroyClearsState(t *testing.T) {
	m := NewModule()
	m.AddDecl(m.NewInstruction(TagUnreachable, 0))
	m.AddError(0, "boom")

	m.Destroy()

	if m.Decls != nil {
		t.Errorf("Decls = %v, want nil after Destroy", m.Decls)
	}

	if m.Errors != nil {
		t.Errorf("Errors = %v, want nil after Destroy", m.Errors)
	}
}

func TestSchemaCoversEveryTag(t *testing.T) {
	for tag := Tag(0); tag < numTags; tag++ {
		if SchemaFor(tag) == nil {
			t.Errorf("no schema for tag %v", tag)
		}
	}
}

func TestSchemaByNameRoundTrip(t *testing.T) {
	for tag := Tag(0); tag < numTags; tag++ {
		name := tag.String()

		s, ok := SchemaByName(name)
		if !ok {
			t.Errorf("SchemaByName(%q) not found", name)
			continue
		}

		if s.Tag != tag {
			t.Errorf("SchemaByName(%q).Tag = %v, want %v", name, s.Tag, tag)
		}
	}
}
