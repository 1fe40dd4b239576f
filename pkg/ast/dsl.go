package ast

import "github.com/YulinWu/interpreter/pkg/types"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

// Expression helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(OpNeg, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(OpNot, operand)
}

func Assign(left, right Expression) *AssignmentExpression {
	return NewAssignmentExpression(left, right)
}

func AssignName(name string, right Expression) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), right)
}

func PreInc(operand Expression) *IncrementExpression {
	return NewIncrementExpression(OpInc, true, operand)
}

func PostInc(operand Expression) *IncrementExpression {
	return NewIncrementExpression(OpInc, false, operand)
}

func PreDec(operand Expression) *IncrementExpression {
	return NewIncrementExpression(OpDec, true, operand)
}

func PostDec(operand Expression) *IncrementExpression {
	return NewIncrementExpression(OpDec, false, operand)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Index(name string, indices ...Expression) *IndexExpression {
	return NewIndexExpression(ID(name), indices)
}

// Statement helpers.

func Block(stmts ...Statement) *BlockStatement {
	return NewBlockStatement(stmts)
}

func If(cond Expression, then Statement, els Statement) *IfStatement {
	return NewIfStatement(cond, then, els)
}

func While(cond Expression, body Statement) *WhileStatement {
	return NewWhileStatement(cond, body)
}

func For(init, cond, update Expression, body Statement) *ForStatement {
	return NewForStatement(init, cond, update, body)
}

func VarDecl(typ types.Type, name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), typ, init)
}

func ArrDecl(elem types.Type, name string, dims ...Expression) *ArrayDeclaration {
	return NewArrayDeclaration(ID(name), elem, dims)
}

func Print(arg Expression) *PrintStatement {
	return NewPrintStatement(arg)
}

func Ret(arg Expression) *ReturnStatement {
	return NewReturnStatement(arg)
}

func Param(typ types.Type, name string) *Parameter {
	return NewParameter(ID(name), typ)
}

func Fn(ret types.Type, name string, params []*Parameter, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, ret, Block(body...))
}

func Prog(stmts ...Statement) *Program {
	return NewProgram(stmts)
}
