package render

import (
	"bytes"
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/zirlang/zir/zir"
	"github.com/zirlang/zir/zir/strlit"
)

func Render(ctx context.Context, b []byte, m *zir.Module) (_ []byte, err error) {
	idx := newIndex(m)

	for i, decl := range m.Decls {
		b = fmt.Appendf(b, "@%d = ", i)

		b, err = renderInstruction(b, decl, idx)
		if err != nil {
			return nil, errors.Wrap(err, "decl %d", i)
		}

		b = append(b, '\n')
	}

	tlog.SpanFromContext(ctx).Printw("rendered zir module", "decls", len(m.Decls), "bytes", len(b), "from", loc.Caller(1))

	return b, nil
}

func String(m *zir.Module) (string, error) {
	b, err := Render(context.Background(), nil, m)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func renderInstruction(b []byte, inst *zir.Instruction, idx *index) ([]byte, error) {
	schema := zir.SchemaFor(inst.Tag)
	if schema == nil {
		return nil, errors.New("unknown tag %v", inst.Tag)
	}

	b = append(b, schema.Name...)
	b = append(b, '(')

	first := true

	var err error

	for i, spec := range schema.Positionals {
		if !first {
			b = append(b, ", "...)
		}

		first = false

		b, err = renderValue(b, inst.Pos[i], idx)
		if err != nil {
			return nil, errors.Wrap(err, "positional %s of %s", spec.Name, schema.Name)
		}
	}

	for _, spec := range schema.Keywords {
		val := inst.Kw[spec.Name]

		if val.Equal(spec.Default()) {
			continue
		}

		if !first {
			b = append(b, ", "...)
		}

		first = false

		b = append(b, spec.Name...)
		b = append(b, '=')

		b, err = renderValue(b, val, idx)
		if err != nil {
			return nil, errors.Wrap(err, "keyword %s of %s", spec.Name, schema.Name)
		}
	}

	b = append(b, ')')

	return b, nil
}

func renderValue(b []byte, v zir.Value, idx *index) ([]byte, error) {
	switch v.Kind {
	case zir.KindInst:
		return renderInstRef(b, v.Inst, idx)
	case zir.KindInstList:
		b = append(b, '[')

		for i, x := range v.List {
			if i > 0 {
				b = append(b, ", "...)
			}

			var err error

			b, err = renderInstRef(b, x, idx)
			if err != nil {
				return nil, err
			}
		}

		b = append(b, ']')

		return b, nil
	case zir.KindString:
		b = append(b, '"')

		var buf bytes.Buffer

		strlit.Escape(&buf, []byte(v.Str))
		b = append(b, buf.Bytes()...)
		b = append(b, '"')

		return b, nil
	case zir.KindBigInt:
		if v.Int == nil {
			return append(b, '0'), nil
		}

		return append(b, v.Int.Text(10)...), nil
	case zir.KindBool:
		if v.Bool {
			return append(b, '1'), nil
		}

		return append(b, '0'), nil
	case zir.KindEnum:
		return append(b, v.Enum...), nil
	case zir.KindBlock:
		return renderBlock(b, v.Block, idx)
	default:
		return nil, errors.New("unknown argument kind %d", v.Kind)
	}
}

func renderInstRef(b []byte, inst *zir.Instruction, idx *index) ([]byte, error) {
	if inst == nil {
		return nil, errors.New("nil instruction reference")
	}

	if i, ok := idx.declIndex[inst]; ok {
		return fmt.Appendf(b, "@%d", i), nil
	}

	if i, ok := idx.blockIndex[inst]; ok {
		return fmt.Appendf(b, "%%%d", i), nil
	}

	return nil, errors.New("reference to instruction outside module")
}

func renderBlock(b []byte, blk *zir.Block, idx *index) ([]byte, error) {
	b = append(b, "{\n"...)

	for i, inst := range blk.Code {
		b = fmt.Appendf(b, "  %%%d = ", i)

		var err error

		b, err = renderInstruction(b, inst, idx)
		if err != nil {
			return nil, errors.Wrap(err, "block instruction %d", i)
		}

		b = append(b, '\n')
	}

	b = append(b, '}')

	return b, nil
}
