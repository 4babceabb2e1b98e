package zir

type ArgSpec struct {
	Name     string
	Kind     ArgKind
	Vocab    EnumVocab
	Optional bool
	Default  func() Value
}

type Schema struct {
	Tag         Tag
	Name        string
	Positionals []ArgSpec
	Keywords    []ArgSpec
}

var schemas [numTags]*Schema

var schemaByName map[string]*Schema

func init() {
	schemas[TagStr] = &Schema{
		Tag:  TagStr,
		Name: "str",
		Positionals: []ArgSpec{
			{Name: "bytes", Kind: KindString},
		},
	}

	schemas[TagInt] = &Schema{
		Tag:  TagInt,
		Name: "int",
		Positionals: []ArgSpec{
			{Name: "int", Kind: KindBigInt},
		},
	}

	schemas[TagPrimitive] = &Schema{
		Tag:  TagPrimitive,
		Name: "primitive",
		Positionals: []ArgSpec{
			{Name: "tag", Kind: KindEnum, Vocab: VocabBuiltinType},
		},
	}

	schemas[TagFnType] = &Schema{
		Tag:  TagFnType,
		Name: "fntype",
		Positionals: []ArgSpec{
			{Name: "param_types", Kind: KindInstList},
			{Name: "return_type", Kind: KindInst},
		},
		Keywords: []ArgSpec{
			{Name: "cc", Kind: KindEnum, Vocab: VocabCallingConv, Default: func() Value { return EnumValue(CCUnspecified.String()) }},
		},
	}

	schemas[TagFn] = &Schema{
		Tag:  TagFn,
		Name: "fn",
		Positionals: []ArgSpec{
			{Name: "fn_type", Kind: KindInst},
			{Name: "body", Kind: KindBlock},
		},
	}

	schemas[TagExport] = &Schema{
		Tag:  TagExport,
		Name: "export",
		Positionals: []ArgSpec{
			{Name: "symbol_name", Kind: KindInst},
			{Name: "value", Kind: KindInst},
		},
	}

	schemas[TagAsm] = &Schema{
		Tag:  TagAsm,
		Name: "asm",
		Positionals: []ArgSpec{
			{Name: "asm_source", Kind: KindInst},
			{Name: "return_type", Kind: KindInst},
		},
		Keywords: []ArgSpec{
			{Name: "volatile", Kind: KindBool, Default: func() Value { return BoolValue(false) }},
			{Name: "output", Kind: KindInst, Optional: true, Default: func() Value { return Value{Kind: KindInst} }},
			{Name: "inputs", Kind: KindInstList, Default: func() Value { return ListValue(nil) }},
			{Name: "clobbers", Kind: KindInstList, Default: func() Value { return ListValue(nil) }},
			{Name: "args", Kind: KindInstList, Default: func() Value { return ListValue(nil) }},
		},
	}

	schemas[TagAs] = &Schema{
		Tag:  TagAs,
		Name: "as",
		Positionals: []ArgSpec{
			{Name: "dest_type", Kind: KindInst},
			{Name: "value", Kind: KindInst},
		},
	}

	schemas[TagIntCast] = &Schema{
		Tag:  TagIntCast,
		Name: "intcast",
		Positionals: []ArgSpec{
			{Name: "dest_type", Kind: KindInst},
			{Name: "value", Kind: KindInst},
		},
	}

	schemas[TagBitCast] = &Schema{
		Tag:  TagBitCast,
		Name: "bitcast",
		Positionals: []ArgSpec{
			{Name: "dest_type", Kind: KindInst},
			{Name: "operand", Kind: KindInst},
		},
	}

	schemas[TagPtrToInt] = &Schema{
		Tag:  TagPtrToInt,
		Name: "ptrtoint",
		Positionals: []ArgSpec{
			{Name: "ptr", Kind: KindInst},
		},
	}

	schemas[TagDeref] = &Schema{
		Tag:  TagDeref,
		Name: "deref",
		Positionals: []ArgSpec{
			{Name: "ptr", Kind: KindInst},
		},
	}

	schemas[TagFieldPtr] = &Schema{
		Tag:  TagFieldPtr,
		Name: "fieldptr",
		Positionals: []ArgSpec{
			{Name: "object_ptr", Kind: KindInst},
			{Name: "field_name", Kind: KindInst},
		},
	}

	schemas[TagElemPtr] = &Schema{
		Tag:  TagElemPtr,
		Name: "elemptr",
		Positionals: []ArgSpec{
			{Name: "array_ptr", Kind: KindInst},
			{Name: "index", Kind: KindInst},
		},
	}

	schemas[TagAdd] = &Schema{
		Tag:  TagAdd,
		Name: "add",
		Positionals: []ArgSpec{
			{Name: "lhs", Kind: KindInst},
			{Name: "rhs", Kind: KindInst},
		},
	}

	schemas[TagUnreachable] = &Schema{
		Tag:  TagUnreachable,
		Name: "unreachable",
	}

	schemaByName = make(map[string]*Schema, numTags)
	for _, s := range schemas {
		schemaByName[s.Name] = s
	}
}

func SchemaFor(t Tag) *Schema {
	return schemas[t]
}

func SchemaByName(name string) (*Schema, bool) {
	s, ok := schemaByName[name]
	return s, ok
}

func (s *Schema) Keyword(name string) (ArgSpec, bool) {
	for _, k := range s.Keywords {
		if k.Name == name {
			return k, true
		}
	}

	return ArgSpec{}, false
}
