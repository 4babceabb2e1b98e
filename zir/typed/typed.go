package typed

import "math/big"

type ValueCategory int

const (
	ValueOther ValueCategory = iota
	ValuePointerToByteArray
	ValueComptimeInt
	ValueSizedInt
	ValueType
	ValueFunction
)

type TypeTag int

const (
	TypePrimitive TypeTag = iota
	TypeFn
	TypeUnsupported
)

type Type struct {
	Tag TypeTag

	Builtin BuiltinType

	Params []*Type
	Return *Type
	CC     CallingConvention
}

type BuiltinType string

type CallingConvention string

type Value struct {
	Category ValueCategory

	Bytes   []byte
	Int     *big.Int
	IntType *Type
	Type    *Type
	Func    *Function
}

type Export struct {
	Offset int
	Symbol string
	Value  *Value
}

type InstKind int

const (
	InstUnreach InstKind = iota
	InstAssembly
	InstPtrToInt
	InstBitCast
	InstConstant
)

type Instruction struct {
	Kind InstKind

	Value *Value

	AsmSource     string
	AsmReturnType *Type
	Volatile      bool
	Output        *Instruction
	Inputs        []*Instruction
	Clobbers      []*Instruction
	Args          []*Instruction

	Operand  *Instruction
	DestType *Type
}

type Function struct {
	Name string
	Type *Type
	Code []*Instruction
}

type Module struct {
	Exports []*Export
}
