package wat

import (
	"fmt"

	"github.com/watlex/watlex/internal/watcodec"
)

// StateKind discriminates the ParserState sum type: the kind of parse event
// most recently produced by Step.
type StateKind int

const (
	StateInitial StateKind = iota
	StateStartModule
	StateEndModule
	StateImport
	StateStartFunc
	StateEndFunc
	StateCodeOperator
	StateCodeOperatorEnd
	StateEnd
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateInitial:
		return "Initial"
	case StateStartModule:
		return "StartModule"
	case StateEndModule:
		return "EndModule"
	case StateImport:
		return "Import"
	case StateStartFunc:
		return "StartFunc"
	case StateEndFunc:
		return "EndFunc"
	case StateCodeOperator:
		return "CodeOperator"
	case StateCodeOperatorEnd:
		return "CodeOperatorEnd"
	case StateEnd:
		return "End"
	case StateError:
		return "Error"
	default:
		return "unknown"
	}
}

// ParserState is the parser's observable state: a tagged union modeled as a
// Go struct, with payload fields that are meaningful only for the Kinds that
// use them.
type ParserState struct {
	Kind StateKind

	// StartModule, StartFunc
	ModuleID ID
	FuncID   ID

	// Import
	ModName   string
	FieldName string
	Import    ImportKind

	// StartFunc
	ExportName *string
	Typeuse    Typeuse
	Locals     []Local

	// CodeOperator
	Instruction []byte
	Args        []InstructionArg
	Group       bool
	OpPosition  Position

	// Error
	Err *ParserError
}

// Parser is an event-driven state machine over a Lexer. Each call to
// Step advances the parse by one observable event.
type Parser struct {
	lexer     *Lexer
	state     ParserState
	funcDepth *int
}

// NewParser constructs a Parser over source, in the Initial state.
func NewParser(source []byte) *Parser {
	return &Parser{lexer: NewLexer(source), state: ParserState{Kind: StateInitial}}
}

// State returns the parser's current state without advancing it.
func (p *Parser) State() *ParserState {
	return &p.state
}

func (p *Parser) setFuncDepth(v int) {
	p.funcDepth = &v
}

func (p *Parser) currentToken() *Token {
	return p.lexer.CurrentToken()
}

func (p *Parser) currentTokenContent() []byte {
	return p.lexer.CurrentTokenContent()
}

func (p *Parser) createError(message string) *ParserError {
	pos := p.currentToken().Start
	return &ParserError{Message: message, Line: pos.Line, Col: pos.Col}
}

func (p *Parser) advance() error {
	if _, err := p.lexer.Next(); err != nil {
		if lexErr, ok := err.(*LexError); ok {
			return wrapLexError(lexErr)
		}
		return err
	}
	return nil
}

func (p *Parser) rewindToken() {
	p.lexer.Rewind()
}

func (p *Parser) maybeOpenParen() (bool, error) {
	if p.currentToken().Kind == TokenLParen {
		if err := p.advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (p *Parser) expectOpenParen() error {
	ok, err := p.maybeOpenParen()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return p.createError("( is expected")
}

func (p *Parser) maybeCloseParen() (bool, error) {
	if p.currentToken().Kind == TokenRParen {
		if err := p.advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (p *Parser) expectCloseParen() error {
	ok, err := p.maybeCloseParen()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return p.createError(") is expected")
}

func (p *Parser) maybeExactKeyword(keyword string) (bool, error) {
	if p.currentToken().Kind == TokenKeyword && string(p.currentTokenContent()) == keyword {
		if err := p.advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (p *Parser) expectExactKeyword(keyword string) error {
	ok, err := p.maybeExactKeyword(keyword)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return p.createError(fmt.Sprintf("%q keyword is expected", keyword))
}

func (p *Parser) isKeyword() bool {
	return p.currentToken().Kind == TokenKeyword
}

func (p *Parser) getKeyword() ([]byte, error) {
	if p.isKeyword() {
		return p.currentTokenContent(), nil
	}
	return nil, p.createError("a keyword is expected")
}

func (p *Parser) isMemargFlag() (bool, error) {
	content, err := p.getKeyword()
	if err != nil {
		return false, err
	}
	return len(content) > 7 && string(content[:7]) == "offset=" ||
		len(content) > 6 && string(content[:6]) == "flags=", nil
}

func (p *Parser) maybeID() (ID, error) {
	if p.currentToken().Kind == TokenID {
		id := append(ID(nil), p.currentTokenContent()...)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return id, nil
	}
	return nil, nil
}

func (p *Parser) readID() (ID, error) {
	id, err := p.maybeID()
	if err != nil {
		return nil, err
	}
	if id != nil {
		return id, nil
	}
	return nil, p.createError("id is expected")
}

func (p *Parser) readU32() (uint32, error) {
	if p.currentToken().Kind != TokenUnsigned {
		return 0, p.createError("u32 is expected")
	}
	n, ok := watcodec.ParseU32(p.currentTokenContent())
	if !ok {
		return 0, p.createError("unable to read u32")
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *Parser) readName() (string, error) {
	if p.currentToken().Kind != TokenString {
		return "", p.createError("name is expected")
	}
	name := decodeString(p.currentTokenContent())
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) readKeyword() ([]byte, error) {
	if p.currentToken().Kind != TokenKeyword {
		return nil, p.createError("a keyword is expected")
	}
	kw := append([]byte(nil), p.currentTokenContent()...)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return kw, nil
}

func (p *Parser) readLimits() (Limits, error) {
	min, err := p.readU32()
	if err != nil {
		return Limits{}, err
	}
	var max *uint32
	if p.currentToken().Kind == TokenUnsigned {
		m, err := p.readU32()
		if err != nil {
			return Limits{}, err
		}
		max = &m
	}
	return Limits{Min: min, Max: max}, nil
}

func (p *Parser) readMemType() (MemType, error) {
	open, err := p.maybeOpenParen()
	if err != nil {
		return MemType{}, err
	}
	if open {
		if err := p.expectExactKeyword("shared"); err != nil {
			return MemType{}, err
		}
		limits, err := p.readLimits()
		if err != nil {
			return MemType{}, err
		}
		if err := p.expectCloseParen(); err != nil {
			return MemType{}, err
		}
		return MemType{Limits: limits, Shared: true}, nil
	}
	limits, err := p.readLimits()
	if err != nil {
		return MemType{}, err
	}
	return MemType{Limits: limits, Shared: false}, nil
}

func (p *Parser) readStartModule() error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectOpenParen(); err != nil {
		return err
	}
	if err := p.expectExactKeyword("module"); err != nil {
		return err
	}
	id, err := p.maybeID()
	if err != nil {
		return err
	}
	p.state = ParserState{Kind: StateStartModule, ModuleID: id}
	return nil
}

func (p *Parser) readMemoryImport() (ImportKind, error) {
	if err := p.advance(); err != nil {
		return ImportKind{}, err
	}
	id, err := p.maybeID()
	if err != nil {
		return ImportKind{}, err
	}
	memType, err := p.readMemType()
	if err != nil {
		return ImportKind{}, err
	}
	return ImportKind{Tag: ImportMemory, ID: id, MemType: memType}, nil
}

func (p *Parser) readImport() error {
	if err := p.advance(); err != nil {
		return err
	}
	modname, err := p.readName()
	if err != nil {
		return err
	}
	fieldname, err := p.readName()
	if err != nil {
		return err
	}
	if err := p.expectOpenParen(); err != nil {
		return err
	}
	kw, err := p.getKeyword()
	if err != nil {
		return err
	}
	var imp ImportKind
	switch string(kw) {
	case "memory":
		imp, err = p.readMemoryImport()
		if err != nil {
			return err
		}
	default:
		return p.createError("not yet implemented: " + string(kw))
	}
	if err := p.expectCloseParen(); err != nil {
		return err
	}
	if err := p.expectCloseParen(); err != nil {
		return err
	}
	p.state = ParserState{Kind: StateImport, ModName: modname, FieldName: fieldname, Import: imp}
	return nil
}

func (p *Parser) readValType() (ValType, error) {
	kw, err := p.getKeyword()
	if err != nil {
		return 0, err
	}
	var vt ValType
	switch string(kw) {
	case "i32":
		vt = ValTypeI32
	case "i64":
		vt = ValTypeI64
	case "f32":
		vt = ValTypeF32
	case "f64":
		vt = ValTypeF64
	default:
		return 0, p.createError("not yet implemented: " + string(kw))
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	return vt, nil
}

// readTypeuseAfterOpenParen parses the typeuse grammar starting just past an
// already-consumed '('. It returns whether the parse stopped after
// consuming an opening '(' that turned out not to belong to typeuse, in
// which case the caller must Rewind to return that '(' to the stream.
func (p *Parser) readTypeuseAfterOpenParen() (Typeuse, bool, error) {
	var id ID
	hasType, err := p.maybeExactKeyword("type")
	if err != nil {
		return Typeuse{}, false, err
	}
	if hasType {
		id, err = p.maybeID()
		if err != nil {
			return Typeuse{}, false, err
		}
		if id == nil {
			return Typeuse{}, false, p.createError("id is expected for typeuse")
		}
		if err := p.expectCloseParen(); err != nil {
			return Typeuse{}, false, err
		}
		open, err := p.maybeOpenParen()
		if err != nil {
			return Typeuse{}, false, err
		}
		if !open {
			return Typeuse{ID: id}, false, nil
		}
	}

	var params []Param
	for {
		ok, err := p.maybeExactKeyword("param")
		if err != nil {
			return Typeuse{}, false, err
		}
		if !ok {
			break
		}
		paramID, err := p.maybeID()
		if err != nil {
			return Typeuse{}, false, err
		}
		noID := paramID == nil
		vt, err := p.readValType()
		if err != nil {
			return Typeuse{}, false, err
		}
		params = append(params, Param{ID: paramID, ValType: vt})
		for noID && p.isKeyword() {
			vt, err := p.readValType()
			if err != nil {
				return Typeuse{}, false, err
			}
			params = append(params, Param{ValType: vt})
		}
		if err := p.expectCloseParen(); err != nil {
			return Typeuse{}, false, err
		}
		open, err := p.maybeOpenParen()
		if err != nil {
			return Typeuse{}, false, err
		}
		if !open {
			return Typeuse{ID: id, Params: params}, false, nil
		}
	}

	var results []Result
	for {
		ok, err := p.maybeExactKeyword("result")
		if err != nil {
			return Typeuse{}, false, err
		}
		if !ok {
			break
		}
		vt, err := p.readValType()
		if err != nil {
			return Typeuse{}, false, err
		}
		results = append(results, Result{ValType: vt})
		for p.isKeyword() {
			vt, err := p.readValType()
			if err != nil {
				return Typeuse{}, false, err
			}
			results = append(results, Result{ValType: vt})
		}
		if err := p.expectCloseParen(); err != nil {
			return Typeuse{}, false, err
		}
		open, err := p.maybeOpenParen()
		if err != nil {
			return Typeuse{}, false, err
		}
		if !open {
			return Typeuse{ID: id, Params: params, Results: results}, false, nil
		}
	}

	return Typeuse{ID: id, Params: params, Results: results}, true, nil
}

func (p *Parser) readTypeuse() (Typeuse, error) {
	open, err := p.maybeOpenParen()
	if err != nil {
		return Typeuse{}, err
	}
	if open {
		typeuse, keywordExpected, err := p.readTypeuseAfterOpenParen()
		if err != nil {
			return Typeuse{}, err
		}
		if keywordExpected {
			p.rewindToken()
		}
		return typeuse, nil
	}
	return emptyTypeuse(), nil
}

func (p *Parser) readLocalsAfterOpenParen() ([]Local, bool, error) {
	var locals []Local
	for {
		ok, err := p.maybeExactKeyword("local")
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		id, err := p.maybeID()
		if err != nil {
			return nil, false, err
		}
		noID := id == nil
		vt, err := p.readValType()
		if err != nil {
			return nil, false, err
		}
		locals = append(locals, Local{ID: id, ValType: vt})
		for noID && p.isKeyword() {
			vt, err := p.readValType()
			if err != nil {
				return nil, false, err
			}
			locals = append(locals, Local{ValType: vt})
		}
		if err := p.expectCloseParen(); err != nil {
			return nil, false, err
		}
		open, err := p.maybeOpenParen()
		if err != nil {
			return nil, false, err
		}
		if !open {
			return locals, false, nil
		}
	}
	return locals, true, nil
}

// readFunc parses a module's (func ...) field, which abbreviates three
// distinct shapes: an inline import, an inline export, or a direct
// typeuse/locals/body definition.
func (p *Parser) readFunc() error {
	if err := p.advance(); err != nil {
		return err
	}
	id, err := p.maybeID()
	if err != nil {
		return err
	}

	var exportName *string
	var typeuse Typeuse
	var locals []Local

	open, err := p.maybeOpenParen()
	if err != nil {
		return err
	}
	if open {
		isImport, err := p.maybeExactKeyword("import")
		if err != nil {
			return err
		}
		if isImport {
			modname, err := p.readName()
			if err != nil {
				return err
			}
			fieldname, err := p.readName()
			if err != nil {
				return err
			}
			if err := p.expectCloseParen(); err != nil {
				return err
			}
			tu, err := p.readTypeuse()
			if err != nil {
				return err
			}
			if err := p.expectCloseParen(); err != nil {
				return err
			}
			p.state = ParserState{
				Kind:      StateImport,
				ModName:   modname,
				FieldName: fieldname,
				Import:    ImportKind{Tag: ImportFunc, ID: id, Typeuse: tu},
			}
			return nil
		}

		isExport, err := p.maybeExactKeyword("export")
		if err != nil {
			return err
		}
		if isExport {
			name, err := p.readName()
			if err != nil {
				return err
			}
			exportName = &name
			if err := p.expectCloseParen(); err != nil {
				return err
			}
			more, err := p.maybeOpenParen()
			if err != nil {
				return err
			}
			if !more {
				p.state = ParserState{Kind: StateStartFunc, FuncID: id, ExportName: exportName, Typeuse: emptyTypeuse()}
				p.setFuncDepth(0)
				return nil
			}
		}

		tu, keywordExpected, err := p.readTypeuseAfterOpenParen()
		if err != nil {
			return err
		}
		typeuse = tu
		if keywordExpected {
			loc, keywordExpected2, err := p.readLocalsAfterOpenParen()
			if err != nil {
				return err
			}
			locals = loc
			if keywordExpected2 {
				p.rewindToken()
			}
		}
	} else {
		typeuse = emptyTypeuse()
	}

	p.state = ParserState{Kind: StateStartFunc, FuncID: id, ExportName: exportName, Typeuse: typeuse, Locals: locals}
	p.setFuncDepth(0)
	return nil
}

func (p *Parser) readMemargFlag() (InstructionArg, error) {
	kw, err := p.readKeyword()
	if err != nil {
		return InstructionArg{}, err
	}
	eqIdx := -1
	for i, b := range kw {
		if b == '=' {
			eqIdx = i
			break
		}
	}
	var value uint32
	if eqIdx >= 0 {
		if v, ok := watcodec.ParseU32(kw[eqIdx+1:]); ok {
			value = v
		}
	}
	return InstructionArg{Kind: ArgFlags, FlagName: kw, FlagValue: value}, nil
}

func (p *Parser) readArgID() (InstructionArg, error) {
	id, err := p.readID()
	if err != nil {
		return InstructionArg{}, err
	}
	return InstructionArg{Kind: ArgID, ID: id}, nil
}

func (p *Parser) readArgSigned() (InstructionArg, error) {
	content := p.currentTokenContent()
	sign := SignPositive
	if content[0] == '-' {
		sign = SignNegative
	}
	data, ok := watcodec.ParseNum(content[1:])
	if !ok {
		return InstructionArg{}, p.createError("Unable to parse signed")
	}
	if err := p.advance(); err != nil {
		return InstructionArg{}, err
	}
	return InstructionArg{Kind: ArgSigned, Sign: sign, Data: data}, nil
}

func (p *Parser) readArgUnsigned() (InstructionArg, error) {
	data, ok := watcodec.ParseNum(p.currentTokenContent())
	if !ok {
		return InstructionArg{}, p.createError("Unable to parse unsigned")
	}
	if err := p.advance(); err != nil {
		return InstructionArg{}, err
	}
	return InstructionArg{Kind: ArgUnsigned, Data: data}, nil
}

func (p *Parser) readArgFloat() (InstructionArg, error) {
	lit, ok := decodeFloat(p.currentTokenContent())
	if !ok {
		return InstructionArg{}, p.createError("Unable to parse float")
	}
	if err := p.advance(); err != nil {
		return InstructionArg{}, err
	}
	return InstructionArg{Kind: ArgFloat, Float: lit}, nil
}

func (p *Parser) readFuncBody() error {
	closed, err := p.maybeCloseParen()
	if err != nil {
		return err
	}
	if closed {
		if *p.funcDepth == 0 {
			p.state = ParserState{Kind: StateEndFunc}
			p.funcDepth = nil
			return nil
		}
		p.state = ParserState{Kind: StateCodeOperatorEnd}
		*p.funcDepth--
		return nil
	}

	group, err := p.maybeOpenParen()
	if err != nil {
		return err
	}
	position := p.currentToken().Start
	instruction, err := p.readKeyword()
	if err != nil {
		return err
	}

	var args []InstructionArg
loop:
	for {
		switch p.currentToken().Kind {
		case TokenEnd:
			break loop
		case TokenKeyword:
			isFlag, err := p.isMemargFlag()
			if err != nil {
				return err
			}
			if !isFlag {
				break loop
			}
			arg, err := p.readMemargFlag()
			if err != nil {
				return err
			}
			args = append(args, arg)
		case TokenLParen, TokenRParen:
			break loop
		case TokenID:
			arg, err := p.readArgID()
			if err != nil {
				return err
			}
			args = append(args, arg)
		case TokenSigned:
			arg, err := p.readArgSigned()
			if err != nil {
				return err
			}
			args = append(args, arg)
		case TokenUnsigned:
			arg, err := p.readArgUnsigned()
			if err != nil {
				return err
			}
			args = append(args, arg)
		case TokenFloat:
			arg, err := p.readArgFloat()
			if err != nil {
				return err
			}
			args = append(args, arg)
		default:
			return p.createError("unexpected token in the instruction")
		}
	}

	if group {
		*p.funcDepth++
	}
	p.state = ParserState{Kind: StateCodeOperator, Instruction: instruction, Args: args, Group: group, OpPosition: position}
	return nil
}

func (p *Parser) readModuleField() error {
	closed, err := p.maybeCloseParen()
	if err != nil {
		return err
	}
	if closed {
		p.state = ParserState{Kind: StateEndModule}
		return nil
	}
	if err := p.expectOpenParen(); err != nil {
		return err
	}
	kw, err := p.getKeyword()
	if err != nil {
		return err
	}
	switch string(kw) {
	case "import":
		return p.readImport()
	case "func":
		return p.readFunc()
	default:
		return p.createError("not yet implemented: " + string(kw))
	}
}

func (p *Parser) findEnd() error {
	if p.currentToken().Kind == TokenEnd {
		p.state = ParserState{Kind: StateEnd}
		return nil
	}
	return p.createError("unexpected content after the module")
}

// Step advances the parse by one observable event and returns the parser's
// new state. Calling Step again after State().Kind is End or Error is a
// contract violation and panics.
func (p *Parser) Step() *ParserState {
	var err error
	switch p.state.Kind {
	case StateEnd, StateError:
		panic("wat: Step called after a terminal parser state")
	case StateEndModule:
		err = p.findEnd()
	case StateInitial:
		err = p.readStartModule()
	case StateStartModule, StateEndFunc, StateImport:
		err = p.readModuleField()
	case StateStartFunc, StateCodeOperator, StateCodeOperatorEnd:
		err = p.readFuncBody()
	default:
		panic("wat: unreachable parser state")
	}
	if err != nil {
		perr, ok := err.(*ParserError)
		if !ok {
			perr = &ParserError{Message: err.Error()}
		}
		p.state = ParserState{Kind: StateError, Err: perr}
	}
	return &p.state
}
