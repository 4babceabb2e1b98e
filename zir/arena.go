package zir

type arena struct {
	insts  []*Instruction
	blocks []*Block
}

func (a *arena) newInst(tag Tag, offset int) *Instruction {
	inst := &Instruction{Tag: tag, Offset: offset}
	a.insts = append(a.insts, inst)

	return inst
}

func (a *arena) newBlock() *Block {
	b := &Block{}
	a.blocks = append(a.blocks, b)

	return b
}

func (a *arena) destroy() {
	a.insts = nil
	a.blocks = nil
}
