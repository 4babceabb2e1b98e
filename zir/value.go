package zir

import "math/big"

type ArgKind int

const (
	KindInst ArgKind = iota
	KindInstList
	KindString
	KindBigInt
	KindBool
	KindEnum
	KindBlock
)

type EnumVocab int

const (
	VocabNone EnumVocab = iota
	VocabBuiltinType
	VocabCallingConv
)

type Value struct {
	Kind ArgKind

	Inst  *Instruction
	List  []*Instruction
	Str   string
	Int   *big.Int
	Bool  bool
	Enum  string
	Block *Block
}

func InstValue(i *Instruction) Value   { return Value{Kind: KindInst, Inst: i} }
func ListValue(l []*Instruction) Value { return Value{Kind: KindInstList, List: l} }
func StringValue(s string) Value       { return Value{Kind: KindString, Str: s} }
func BigIntValue(n *big.Int) Value     { return Value{Kind: KindBigInt, Int: n} }
func BoolValue(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func EnumValue(name string) Value      { return Value{Kind: KindEnum, Enum: name} }
func BlockValue(b *Block) Value        { return Value{Kind: KindBlock, Block: b} }

func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindInst:
		return v.Inst == o.Inst
	case KindInstList:
		if len(v.List) != len(o.List) {
			return false
		}

		for i, x := range v.List {
			if x != o.List[i] {
				return false
			}
		}

		return true
	case KindString:
		return v.Str == o.Str
	case KindBigInt:
		if v.Int == nil || o.Int == nil {
			return v.Int == o.Int
		}

		return v.Int.Cmp(o.Int) == 0
	case KindBool:
		return v.Bool == o.Bool
	case KindEnum:
		return v.Enum == o.Enum
	case KindBlock:
		return v.Block == o.Block
	default:
		return false
	}
}
