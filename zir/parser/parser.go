package parser

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/zirlang/zir/zir"
)

type Parser struct {
	src []byte
	pos int

	mod *zir.Module

	moduleScope map[string]*zir.Instruction
	blockScope  map[string]*zir.Instruction
}

func Parse(ctx context.Context, src []byte) (mod *zir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			mod = nil
			err = errors.New("internal parser error: %v", r)
		}
	}()

	p := &Parser{
		src:         src,
		mod:         zir.NewModule(),
		moduleScope: make(map[string]*zir.Instruction),
	}

	p.run()

	tlog.SpanFromContext(ctx).Printw("parsed zir module", "decls", len(p.mod.Decls), "errors", len(p.mod.Errors), "from", loc.Caller(1))

	return p.mod, nil
}

func (p *Parser) errorf(offset int, format string, args ...any) {
	p.mod.AddError(offset, format, args...)
}

func (p *Parser) run() {
	for {
		c := p.cur()

		switch {
		case c == ';':
			p.skipLineComment()
		case c == '@':
			p.parseDecl()
		case c == ' ' || c == '\n':
			p.pos++
		case c == 0:
			return
		default:
			p.errorf(p.pos, "unexpected byte %q", c)
			p.pos++
		}
	}
}

func (p *Parser) parseDecl() {
	declOffset := p.pos

	p.pos++ // consume '@'

	nameStart := p.pos
	for !isNameTerminator(p.cur()) {
		p.pos++
	}

	name := string(p.src[nameStart:p.pos])
	if name == "" {
		p.errorf(declOffset, "expected identifier after '@'")
		p.pos++

		return
	}

	p.skipSpace()

	if !p.requireByte('=') {
		return
	}

	p.skipSpace()

	inst, ok := p.parseInstruction()
	if !ok || inst == nil {
		// resume at the next line that starts a declaration
		for p.cur() != 0 && !(p.cur() == '@' && p.src[p.pos-1] == '\n') {
			p.pos++
		}

		return
	}

	p.mod.AddDecl(inst)

	if _, dup := p.moduleScope[name]; dup {
		p.errorf(declOffset, "redefinition of identifier '%s'", name)
		return
	}

	p.moduleScope[name] = inst
}

func (p *Parser) parseInstruction() (*zir.Instruction, bool) {
	offset := p.pos

	nameStart := p.pos
	for p.cur() != '(' && p.cur() != 0 && p.cur() != ' ' && p.cur() != '\n' {
		p.pos++
	}

	name := string(p.src[nameStart:p.pos])

	p.skipSpace()

	if !p.requireByte('(') {
		return nil, false
	}

	schema, ok := zir.SchemaByName(name)
	if !ok {
		p.errorf(offset, "unknown instruction '%s'", name)
		p.pos = nameStart + len(name) // rewind to just after name

		if p.cur() == '(' {
			p.skipBalanced()
		}

		return nil, false
	}

	inst := p.mod.NewInstruction(schema.Tag, offset)
	inst.Pos = make([]zir.Value, len(schema.Positionals))

	for i, spec := range schema.Positionals {
		p.skipSpace()

		if p.cur() == ')' {
			p.errorf(offset, "missing argument '%s'", spec.Name)

			return inst, false
		}

		val, ok := p.parseValue(spec)
		if !ok {
			return inst, false
		}

		inst.Pos[i] = val

		p.skipSpace()
		p.eatByte(',')
	}

	inst.Kw = make(map[string]zir.Value, len(schema.Keywords))
	for _, spec := range schema.Keywords {
		inst.Kw[spec.Name] = spec.Default()
	}

	for {
		p.skipSpace()

		if p.cur() == ')' || p.cur() == 0 {
			break
		}

		kwStart := p.pos
		for !isNameTerminator(p.cur()) {
			p.pos++
		}

		kwName := string(p.src[kwStart:p.pos])

		if !p.requireByte('=') {
			return inst, false
		}

		spec, known := schema.Keyword(kwName)
		if !known {
			p.errorf(kwStart, "unrecognized keyword '%s'", kwName)
			p.skipUnknownValue()
		} else {
			val, ok := p.parseValue(spec)
			if ok {
				inst.Kw[kwName] = val
			}
		}

		p.skipSpace()

		if !p.eatByte(',') {
			break
		}
	}

	p.skipSpace()
	p.requireByte(')')

	return inst, true
}

func (p *Parser) skipUnknownValue() {
	switch p.cur() {
	case '[':
		p.skipBalanced()
	case '{':
		p.skipBalanced()
	case '"':
		p.pos++

		for p.cur() != '"' && p.cur() != 0 {
			if p.cur() == '\\' {
				p.pos++
			}

			p.pos++
		}

		if p.cur() == '"' {
			p.pos++
		}
	default:
		for p.cur() != ',' && p.cur() != ')' && p.cur() != 0 {
			p.pos++
		}
	}
}
