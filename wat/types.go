package wat

// ID is a WAT identifier, stored verbatim including its leading '$'.
type ID = []byte

// ValType is one of the four WebAssembly value types this grammar covers.
type ValType int

const (
	ValTypeI32 ValType = iota
	ValTypeI64
	ValTypeF32
	ValTypeF64
)

func (v ValType) String() string {
	switch v {
	case ValTypeI32:
		return "i32"
	case ValTypeI64:
		return "i64"
	case ValTypeF32:
		return "f32"
	case ValTypeF64:
		return "f64"
	default:
		return "unknown"
	}
}

// Param is one parameter of a typeuse, optionally named.
type Param struct {
	ID      ID
	ValType ValType
}

// Result is one result of a typeuse. Results are never named.
type Result struct {
	ValType ValType
}

// Local is one local declared inside a function body, optionally named.
type Local struct {
	ID      ID
	ValType ValType
}

// Typeuse is a function signature reference: either a named type id, or the
// inline param/result groups that spell the signature out directly.
type Typeuse struct {
	ID      ID
	Params  []Param
	Results []Result
}

func emptyTypeuse() Typeuse {
	return Typeuse{}
}

// Limits bounds a memory or table: a required minimum and an optional
// maximum.
type Limits struct {
	Min uint32
	Max *uint32
}

// MemType is the interior shape of a memory import or definition.
type MemType struct {
	Limits Limits
	Shared bool
}

// TableType is a reserved, empty shape. The parser never produces it: an
// import with a table descriptor is reported as a parse error.
type TableType struct{}

// GlobalType is a reserved, empty shape. The parser never produces it: an
// import with a global descriptor is reported as a parse error.
type GlobalType struct{}

// ImportKindTag discriminates the ImportKind sum type.
type ImportKindTag int

const (
	ImportFunc ImportKindTag = iota
	ImportTable
	ImportMemory
	ImportGlobal
)

// ImportKind is the interior of an Import event: which kind of external
// value is being imported, and its type-specific payload. Only Func and
// Memory have defined payloads in this grammar; Table and Global are
// reserved shapes for future work.
type ImportKind struct {
	Tag        ImportKindTag
	ID         ID
	Typeuse    Typeuse    // valid when Tag == ImportFunc
	MemType    MemType    // valid when Tag == ImportMemory
	TableType  TableType  // valid when Tag == ImportTable
	GlobalType GlobalType // valid when Tag == ImportGlobal
}

// Sign is the sign of a Signed integer or float literal.
type Sign int

const (
	SignPositive Sign = iota
	SignNegative
)

func (s Sign) String() string {
	if s == SignNegative {
		return "-"
	}
	return "+"
}

// FloatKind discriminates the FloatLit sum type.
type FloatKind int

const (
	FloatNumber FloatKind = iota
	FloatNaN
	FloatInf
)

// FloatLit is a decoded float literal: an ordinary number with a mantissa
// and exponent, a (possibly payload-carrying) NaN, or an infinity.
type FloatLit struct {
	Kind     FloatKind
	Sign     Sign
	Mantissa []byte // valid when Kind == FloatNumber
	Exponent int32   // valid when Kind == FloatNumber
	Payload  []byte  // optional, valid only when Kind == FloatNaN
}

// ArgKind discriminates the InstructionArg sum type.
type ArgKind int

const (
	ArgID ArgKind = iota
	ArgUnsigned
	ArgSigned
	ArgFloat
	ArgFlags
)

// InstructionArg is one argument attached to a CodeOperator event: an
// operand id, an integer literal, a float literal, or a memarg flag.
type InstructionArg struct {
	Kind      ArgKind
	ID        ID       // valid when Kind == ArgID
	Data      []byte   // valid when Kind == ArgUnsigned or ArgSigned
	Sign      Sign     // valid when Kind == ArgSigned
	Float     FloatLit // valid when Kind == ArgFloat
	FlagName  []byte   // valid when Kind == ArgFlags
	FlagValue uint32   // valid when Kind == ArgFlags
}
