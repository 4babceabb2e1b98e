package render

import "github.com/zirlang/zir/zir"

type index struct {
	declIndex  map[*zir.Instruction]int
	blockIndex map[*zir.Instruction]int
}

func newIndex(m *zir.Module) *index {
	idx := &index{
		declIndex:  make(map[*zir.Instruction]int, len(m.Decls)),
		blockIndex: make(map[*zir.Instruction]int),
	}

	for i, d := range m.Decls {
		idx.declIndex[d] = i
		idx.walkBlocks(d)
	}

	return idx
}

func (idx *index) walkBlocks(inst *zir.Instruction) {
	schema := zir.SchemaFor(inst.Tag)
	if schema == nil {
		return
	}

	for i, spec := range schema.Positionals {
		if spec.Kind == zir.KindBlock {
			idx.indexBlock(inst.Pos[i].Block)
		}
	}

	for _, spec := range schema.Keywords {
		if spec.Kind == zir.KindBlock {
			idx.indexBlock(inst.Kw[spec.Name].Block)
		}
	}
}

func (idx *index) indexBlock(blk *zir.Block) {
	if blk == nil {
		return
	}

	for i, inst := range blk.Code {
		idx.blockIndex[inst] = i
		idx.walkBlocks(inst)
	}
}
