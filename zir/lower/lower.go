package lower

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/zirlang/zir/zir"
	"github.com/zirlang/zir/zir/typed"
)

type lowerer struct {
	mod  *zir.Module
	memo map[*typed.Value]*zir.Instruction
}

func Lower(ctx context.Context, tm *typed.Module) (mod *zir.Module, err error) {
	lw := &lowerer{
		mod:  zir.NewModule(),
		memo: make(map[*typed.Value]*zir.Instruction),
	}

	for _, exp := range tm.Exports {
		if err := lw.lowerExport(exp); err != nil {
			return nil, errors.Wrap(err, "export %s", exp.Symbol)
		}
	}

	tlog.SpanFromContext(ctx).Printw("lowered typed ir", "exports", len(tm.Exports), "decls", len(lw.mod.Decls), "from", loc.Caller(1))

	return lw.mod, nil
}

func (lw *lowerer) lowerExport(exp *typed.Export) error {
	valInst, err := lw.lowerValue(exp.Value)
	if err != nil {
		return err
	}

	symInst := lw.mod.NewInstruction(zir.TagStr, exp.Offset)
	symInst.Pos = []zir.Value{zir.StringValue(exp.Symbol)}
	lw.mod.AddDecl(symInst)

	expInst := lw.mod.NewInstruction(zir.TagExport, exp.Offset)
	expInst.Pos = []zir.Value{zir.InstValue(symInst), zir.InstValue(valInst)}
	lw.mod.AddDecl(expInst)

	return nil
}

func (lw *lowerer) lowerValue(v *typed.Value) (*zir.Instruction, error) {
	if inst, ok := lw.memo[v]; ok {
		return inst, nil
	}

	var (
		inst *zir.Instruction
		err  error
	)

	switch v.Category {
	case typed.ValuePointerToByteArray:
		inst = lw.mod.NewInstruction(zir.TagStr, 0)
		inst.Pos = []zir.Value{zir.StringValue(string(v.Bytes))}
		lw.mod.AddDecl(inst)

	case typed.ValueComptimeInt:
		inst = lw.mod.NewInstruction(zir.TagInt, 0)
		inst.Pos = []zir.Value{zir.BigIntValue(v.Int)}
		lw.mod.AddDecl(inst)

	case typed.ValueSizedInt:
		comptimeInst := lw.mod.NewInstruction(zir.TagInt, 0)
		comptimeInst.Pos = []zir.Value{zir.BigIntValue(v.Int)}
		lw.mod.AddDecl(comptimeInst)

		destInst, derr := lw.lowerType(v.IntType)
		if derr != nil {
			return nil, derr
		}

		inst = lw.mod.NewInstruction(zir.TagAs, 0)
		inst.Pos = []zir.Value{zir.InstValue(destInst), zir.InstValue(comptimeInst)}
		lw.mod.AddDecl(inst)

	case typed.ValueType:
		inst, err = lw.lowerType(v.Type)
		if err != nil {
			return nil, err
		}

	case typed.ValueFunction:
		inst, err = lw.lowerFunction(v.Func)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.New("not yet supported: value category %d", v.Category)
	}

	lw.memo[v] = inst

	return inst, nil
}

func (lw *lowerer) lowerType(t *typed.Type) (*zir.Instruction, error) {
	switch t.Tag {
	case typed.TypePrimitive:
		bt, ok := zir.LookupBuiltinType(string(t.Builtin))
		if !ok {
			return nil, errors.New("not yet supported: builtin type %q", t.Builtin)
		}

		inst := lw.mod.NewInstruction(zir.TagPrimitive, 0)
		inst.Pos = []zir.Value{zir.EnumValue(bt.String())}
		lw.mod.AddDecl(inst)

		return inst, nil

	case typed.TypeFn:
		params := make([]*zir.Instruction, len(t.Params))

		for i, p := range t.Params {
			pi, err := lw.lowerType(p)
			if err != nil {
				return nil, err
			}

			params[i] = pi
		}

		ret, err := lw.lowerType(t.Return)
		if err != nil {
			return nil, err
		}

		cc, ok := zir.LookupCallingConvention(string(t.CC))
		if !ok {
			cc = zir.CCUnspecified
		}

		inst := lw.mod.NewInstruction(zir.TagFnType, 0)
		inst.Pos = []zir.Value{zir.ListValue(params), zir.InstValue(ret)}
		inst.Kw = map[string]zir.Value{"cc": zir.EnumValue(cc.String())}
		lw.mod.AddDecl(inst)

		return inst, nil

	default:
		return nil, errors.New("not yet supported: type tag %d", t.Tag)
	}
}

func (lw *lowerer) lowerFunction(f *typed.Function) (*zir.Instruction, error) {
	fnTypeInst, err := lw.lowerType(f.Type)
	if err != nil {
		return nil, err
	}

	block := lw.mod.NewBlock()
	instMap := make(map[*typed.Instruction]*zir.Instruction, len(f.Code))

	for _, ti := range f.Code {
		zi, err := lw.lowerBodyInst(ti, instMap)
		if err != nil {
			return nil, errors.Wrap(err, "function %s", f.Name)
		}

		instMap[ti] = zi
		block.Code = append(block.Code, zi)
	}

	fnInst := lw.mod.NewInstruction(zir.TagFn, 0)
	fnInst.Pos = []zir.Value{zir.InstValue(fnTypeInst), zir.BlockValue(block)}
	lw.mod.AddDecl(fnInst)

	return fnInst, nil
}

func (lw *lowerer) lowerBodyInst(ti *typed.Instruction, instMap map[*typed.Instruction]*zir.Instruction) (*zir.Instruction, error) {
	resolve := func(x *typed.Instruction) (*zir.Instruction, error) {
		if x.Kind == typed.InstConstant {
			return lw.lowerValue(x.Value)
		}

		zi, ok := instMap[x]
		if !ok {
			return nil, errors.New("operand references an instruction not yet emitted")
		}

		return zi, nil
	}

	resolveList := func(xs []*typed.Instruction) ([]*zir.Instruction, error) {
		out := make([]*zir.Instruction, len(xs))

		for i, x := range xs {
			zi, err := resolve(x)
			if err != nil {
				return nil, err
			}

			out[i] = zi
		}

		return out, nil
	}

	switch ti.Kind {
	case typed.InstUnreach:
		return lw.mod.NewInstruction(zir.TagUnreachable, 0), nil

	case typed.InstAssembly:
		srcInst := lw.mod.NewInstruction(zir.TagStr, 0)
		srcInst.Pos = []zir.Value{zir.StringValue(ti.AsmSource)}
		lw.mod.AddDecl(srcInst)

		retTypeInst, err := lw.lowerType(ti.AsmReturnType)
		if err != nil {
			return nil, err
		}

		outputVal := zir.Value{Kind: zir.KindInst}

		if ti.Output != nil {
			out, err := resolve(ti.Output)
			if err != nil {
				return nil, err
			}

			outputVal = zir.InstValue(out)
		}

		inputs, err := resolveList(ti.Inputs)
		if err != nil {
			return nil, err
		}

		clobbers, err := resolveList(ti.Clobbers)
		if err != nil {
			return nil, err
		}

		args, err := resolveList(ti.Args)
		if err != nil {
			return nil, err
		}

		zi := lw.mod.NewInstruction(zir.TagAsm, 0)
		zi.Pos = []zir.Value{zir.InstValue(srcInst), zir.InstValue(retTypeInst)}
		zi.Kw = map[string]zir.Value{
			"volatile": zir.BoolValue(ti.Volatile),
			"output":   outputVal,
			"inputs":   zir.ListValue(inputs),
			"clobbers": zir.ListValue(clobbers),
			"args":     zir.ListValue(args),
		}

		return zi, nil

	case typed.InstPtrToInt:
		operand, err := resolve(ti.Operand)
		if err != nil {
			return nil, err
		}

		zi := lw.mod.NewInstruction(zir.TagPtrToInt, 0)
		zi.Pos = []zir.Value{zir.InstValue(operand)}

		return zi, nil

	case typed.InstBitCast:
		operand, err := resolve(ti.Operand)
		if err != nil {
			return nil, err
		}

		destInst, err := lw.lowerType(ti.DestType)
		if err != nil {
			return nil, err
		}

		zi := lw.mod.NewInstruction(zir.TagBitCast, 0)
		zi.Pos = []zir.Value{zir.InstValue(destInst), zir.InstValue(operand)}

		return zi, nil

	case typed.InstConstant:
		panic("zir/lower: constant instruction must not appear in a function body")

	default:
		return nil, errors.New("not yet supported: instruction kind %d", ti.Kind)
	}
}
