package ast

import (
	"fmt"

	"github.com/YulinWu/interpreter/pkg/types"
)

type NodeType string

const (
	NodeProgram              NodeType = "Program"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileStatement       NodeType = "WhileStatement"
	NodeForStatement         NodeType = "ForStatement"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeArrayDeclaration     NodeType = "ArrayDeclaration"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeParameter            NodeType = "Parameter"
	NodeIdentifier           NodeType = "Identifier"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeIncrementExpression  NodeType = "IncrementExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeIndexExpression      NodeType = "IndexExpression"
)

// Position is a 1-based source location. The zero value means "unknown".
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) IsValid() bool { return p.Line > 0 }

type Node interface {
	NodeType() NodeType
	Pos() Position
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	pos  Position
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType   { return n.Type }
func (n nodeImpl) Pos() Position        { return n.pos }
func (nodeImpl) isNode()                {}
func (n *nodeImpl) setPos(pos Position) { n.pos = pos }

type positioned interface {
	setPos(Position)
}

// SetPos records the source position of node and returns it.
func SetPos[N Node](node N, pos Position) N {
	if p, ok := any(node).(positioned); ok {
		p.setPos(pos)
	}
	return node
}

// Marker interfaces.

// Every expression may stand alone as a statement.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Operators.

const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
	OpMod = "%"
	OpLt  = "<"
	OpLe  = "<="
	OpGt  = ">"
	OpGe  = ">="
	OpEq  = "=="
	OpNe  = "!="
	OpAnd = "&&"
	OpOr  = "||"
	OpNot = "!"
	OpNeg = "-"
	OpInc = "++"
	OpDec = "--"
)

// Program

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Functions returns the top-level function declarations in source order.
func (p *Program) Functions() []*FunctionDeclaration {
	var fns []*FunctionDeclaration
	for _, stmt := range p.Body {
		if fn, ok := stmt.(*FunctionDeclaration); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Statements

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, els Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// ForStatement clauses are all optional; a nil Condition loops forever.
type ForStatement struct {
	nodeImpl
	statementMarker

	Init      Expression `json:"init,omitempty"`
	Condition Expression `json:"condition,omitempty"`
	Update    Expression `json:"update,omitempty"`
	Body      Statement  `json:"body"`
}

func NewForStatement(init, condition, update Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Condition: condition, Update: update, Body: body}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name        *Identifier `json:"name"`
	Type        types.Type  `json:"-"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewVariableDeclaration(name *Identifier, typ types.Type, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Type: typ, Initializer: initializer}
}

type ArrayDeclaration struct {
	nodeImpl
	statementMarker

	Name        *Identifier  `json:"name"`
	ElementType types.Type   `json:"-"`
	Dimensions  []Expression `json:"dimensions"`
}

func NewArrayDeclaration(name *Identifier, elementType types.Type, dimensions []Expression) *ArrayDeclaration {
	return &ArrayDeclaration{nodeImpl: newNodeImpl(NodeArrayDeclaration), Name: name, ElementType: elementType, Dimensions: dimensions}
}

// ArrayType is the declared type of the array variable.
func (d *ArrayDeclaration) ArrayType() types.Type {
	return types.ArrayOf(d.ElementType, len(d.Dimensions))
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewPrintStatement(argument Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Argument: argument}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type Parameter struct {
	nodeImpl

	Name *Identifier `json:"name"`
	Type types.Type  `json:"-"`
}

func NewParameter(name *Identifier, typ types.Type) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Type: typ}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name       *Identifier     `json:"name"`
	Params     []*Parameter    `json:"params"`
	ReturnType types.Type      `json:"-"`
	Body       *BlockStatement `json:"body"`
}

func NewFunctionDeclaration(name *Identifier, params []*Parameter, returnType types.Type, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, ReturnType: returnType, Body: body}
}

// Expressions

// Identifier is both a binding name and, in expression position, a variable
// reference.
type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewAssignmentExpression(left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Left: left, Right: right}
}

// IncrementExpression covers ++ and --, prefix and postfix.
type IncrementExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Operand  Expression `json:"operand"`
}

func NewIncrementExpression(operator string, prefix bool, operand Expression) *IncrementExpression {
	return &IncrementExpression{nodeImpl: newNodeImpl(NodeIncrementExpression), Operator: operator, Prefix: prefix, Operand: operand}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, arguments []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: arguments}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Array   *Identifier  `json:"array"`
	Indices []Expression `json:"indices"`
}

func NewIndexExpression(array *Identifier, indices []Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Array: array, Indices: indices}
}

// IsLValue reports whether expr denotes an assignable location.
func IsLValue(expr Expression) bool {
	switch expr.(type) {
	case *Identifier, *IndexExpression:
		return true
	default:
		return false
	}
}

// HasSideEffect reports whether expr, used as a statement, does observable
// work: assignment, increment/decrement or a call.
func HasSideEffect(expr Expression) bool {
	switch expr.(type) {
	case *AssignmentExpression, *IncrementExpression, *FunctionCall:
		return true
	default:
		return false
	}
}
