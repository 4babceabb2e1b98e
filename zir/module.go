package zir

import "fmt"

type ErrorMsg struct {
	Offset int
	Msg    string
}

func (e ErrorMsg) String() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Msg)
}

type Module struct {
	Decls  []*Instruction
	Errors []ErrorMsg

	arena *arena
}

func NewModule() *Module {
	return &Module{arena: &arena{}}
}

func (m *Module) NewInstruction(tag Tag, offset int) *Instruction {
	return m.arena.newInst(tag, offset)
}

func (m *Module) NewBlock() *Block {
	return m.arena.newBlock()
}

func (m *Module) AddDecl(inst *Instruction) int {
	i := len(m.Decls)
	m.Decls = append(m.Decls, inst)

	return i
}

func (m *Module) AddError(offset int, format string, args ...any) {
	m.Errors = append(m.Errors, ErrorMsg{
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (m *Module) Destroy() {
	m.Decls = nil
	m.Errors = nil

	if m.arena != nil {
		m.arena.destroy()
		m.arena = nil
	}
}
