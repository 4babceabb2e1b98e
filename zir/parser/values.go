package parser

import (
	"math/big"

	"github.com/zirlang/zir/zir"
	"github.com/zirlang/zir/zir/strlit"
)

func (p *Parser) parseValue(spec zir.ArgSpec) (zir.Value, bool) {
	switch spec.Kind {
	case zir.KindInst:
		return p.parseInstRef()
	case zir.KindInstList:
		return p.parseInstList()
	case zir.KindString:
		return p.parseString()
	case zir.KindBigInt:
		return p.parseBigInt()
	case zir.KindBool:
		return p.parseBool()
	case zir.KindEnum:
		return p.parseEnum(spec.Vocab)
	case zir.KindBlock:
		return p.parseBlock()
	default:
		p.errorf(p.pos, "internal: unknown argument kind %d", spec.Kind)
		return zir.Value{}, false
	}
}

func (p *Parser) parseInstRef() (zir.Value, bool) {
	offset := p.pos

	c := p.cur()
	if c != '@' && c != '%' {
		p.errorf(offset, "expected instruction reference, found %q", c)
		return zir.Value{}, false
	}

	moduleScope := c == '@'
	p.pos++

	nameStart := p.pos
	for !isRefTerminator(p.cur()) {
		p.pos++
	}

	name := string(p.src[nameStart:p.pos])
	if name == "" {
		p.errorf(offset, "expected identifier")
		return zir.Value{}, false
	}

	if !moduleScope && p.blockScope == nil {
		p.errorf(offset, "referencing a %% instruction in global scope")
		return zir.Value{}, false
	}

	scope := p.moduleScope
	if !moduleScope {
		scope = p.blockScope
	}

	inst, ok := scope[name]
	if !ok {
		p.errorf(offset, "unrecognized identifier '%s'", name)
		return zir.Value{}, false
	}

	return zir.InstValue(inst), true
}

func (p *Parser) parseInstList() (zir.Value, bool) {
	if !p.requireByte('[') {
		return zir.Value{}, false
	}

	var list []*zir.Instruction

	p.skipSpace()

	if p.eatByte(']') {
		return zir.ListValue(list), true
	}

	for {
		p.skipSpace()

		v, ok := p.parseInstRef()
		if !ok {
			p.skipBalanced()
			return zir.ListValue(list), false
		}

		list = append(list, v.Inst)

		p.skipSpace()

		if !p.eatByte(',') {
			break
		}
	}

	p.skipSpace()

	if !p.requireByte(']') {
		return zir.ListValue(list), false
	}

	return zir.ListValue(list), true
}

func (p *Parser) parseString() (zir.Value, bool) {
	offset := p.pos

	if !p.requireByte('"') {
		return zir.Value{}, false
	}

	start := p.pos

	for {
		c := p.cur()

		if c == 0 {
			p.errorf(offset, "unexpected EOF in string literal")
			return zir.Value{}, false
		}

		if c == '"' {
			break
		}

		if c == '\\' {
			p.pos++
		}

		p.pos++
	}

	raw := p.src[start:p.pos]
	p.pos++ // consume closing quote

	decoded, err := strlit.Unescape(raw)
	if err != nil {
		at := start

		if oe, ok := err.(interface{ Offset() int }); ok {
			at += oe.Offset()
		}

		p.errorf(at, "invalid string literal: %v", err)

		return zir.Value{}, false
	}

	return zir.StringValue(string(decoded)), true
}

func (p *Parser) parseBigInt() (zir.Value, bool) {
	offset := p.pos

	neg := p.eatByte('-')
	start := p.pos

	for p.cur() >= '0' && p.cur() <= '9' {
		p.pos++
	}

	if p.pos == start {
		p.errorf(offset, "invalid integer literal")
		return zir.Value{}, false
	}

	n := new(big.Int)
	if _, ok := n.SetString(string(p.src[start:p.pos]), 10); !ok {
		p.errorf(offset, "invalid integer literal '%s'", p.src[start:p.pos])
		return zir.Value{}, false
	}

	if neg {
		n.Neg(n)
	}

	return zir.BigIntValue(n), true
}

func (p *Parser) parseBool() (zir.Value, bool) {
	offset := p.pos

	c := p.cur()
	if c != '0' && c != '1' {
		p.errorf(offset, "expected '0' or '1', found %q", c)
		return zir.Value{}, false
	}

	p.pos++

	return zir.BoolValue(c == '1'), true
}

func (p *Parser) parseEnum(vocab zir.EnumVocab) (zir.Value, bool) {
	offset := p.pos

	start := p.pos
	for !isEnumTerminator(p.cur()) {
		p.pos++
	}

	name := string(p.src[start:p.pos])
	if name == "" {
		p.errorf(offset, "expected enum identifier")
		return zir.Value{}, false
	}

	switch vocab {
	case zir.VocabBuiltinType:
		if _, ok := zir.LookupBuiltinType(name); !ok {
			p.errorf(offset, "tag '%s' not a member of enum 'BuiltinType'", name)
			return zir.Value{}, false
		}
	case zir.VocabCallingConv:
		if _, ok := zir.LookupCallingConvention(name); !ok {
			p.errorf(offset, "tag '%s' not a member of enum 'CallingConvention'", name)
			return zir.Value{}, false
		}
	}

	return zir.EnumValue(name), true
}

func (p *Parser) parseBlock() (zir.Value, bool) {
	offset := p.pos

	if !p.requireByte('{') {
		return zir.Value{}, false
	}

	block := p.mod.NewBlock()

	prevScope := p.blockScope
	p.blockScope = make(map[string]*zir.Instruction)

	defer func() { p.blockScope = prevScope }()

	for {
		c := p.cur()

		switch {
		case c == ';':
			p.skipLineComment()
		case c == '%':
			p.parseBlockDef(block)
		case c == ' ' || c == '\n':
			p.pos++
		case c == '}':
			p.pos++
			return zir.BlockValue(block), true
		case c == 0:
			p.errorf(offset, "unexpected EOF in block")
			return zir.BlockValue(block), false
		default:
			p.errorf(p.pos, "unexpected byte %q in block", c)
			p.pos++
		}
	}
}

func (p *Parser) parseBlockDef(block *zir.Block) {
	nameOffset := p.pos

	p.pos++ // consume '%'

	nameStart := p.pos
	for !isNameTerminator(p.cur()) {
		p.pos++
	}

	name := string(p.src[nameStart:p.pos])
	if name == "" {
		p.errorf(nameOffset, "expected identifier after '%%'")
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
		return
	}

	block.Code = append(block.Code, inst)

	if _, dup := p.blockScope[name]; dup {
		p.errorf(nameOffset, "redefinition of identifier '%s'", name)
		return
	}

	p.blockScope[name] = inst
}
