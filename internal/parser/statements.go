package parser

import (
	"github.com/cwbudde/go-ecma/pkg/ast"

	"github.com/cwbudde/go-ecma/internal/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isPunct(";"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.EmptyStatement{}, nil
	case p.isKeyword("var"), p.isKeyword("let"), p.isKeyword("const"):
		d, err := p.parseVariableDeclaration()
		if err != nil {
			return nil, err
		}
		return d, p.consumeSemicolon()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("do"):
		return p.parseDoWhile()
	case p.isKeyword("break"):
		return p.parseBreakContinue(true)
	case p.isKeyword("continue"):
		return p.parseBreakContinue(false)
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("throw"):
		return p.parseThrow()
	case p.isKeyword("try"):
		return p.parseTry()
	case p.isKeyword("switch"):
		return p.parseSwitch()
	case p.isKeyword("with"):
		return p.parseWith()
	case p.isKeyword("function"):
		return p.parseFunctionDeclaration()
	case p.cur.Kind == lexer.Identifier && p.peek.Kind == lexer.Punct && p.peek.Value == ":":
		return p.parseLabeled()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.consumeSemicolon(); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: expr}, nil
	}
}

func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.isPunct("}") && p.cur.Kind != lexer.EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Body: body}, nil
}

func (p *Parser) declKindFromCur() ast.DeclKind {
	switch p.cur.Value {
	case "let":
		return ast.DeclLet
	case "const":
		return ast.DeclConst
	default:
		return ast.DeclVar
	}
}

func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	kind := p.declKindFromCur()
	if err := p.advance(); err != nil {
		return nil, err
	}
	var decls []*ast.VariableDeclaratorNode
	for {
		target, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.isPunct("=") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			init, err = p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
		}
		decls = append(decls, &ast.VariableDeclaratorNode{ID: target, Init: init})
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return &ast.VariableDeclaration{DKind: kind, Declarations: decls}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var alt ast.Statement
	if p.isKeyword("else") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		alt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStatement{Test: test, Consequent: cons, Alternate: alt}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Test: test, Body: body}, nil
}

func (p *Parser) parseDoWhile() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("while"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{Body: body, Test: test}, nil
}

// parseFor implements ForStatement/ForInStatement/ForOfStatement,
// disambiguated after parsing the init clause by checking for `in`/`of`
// (§4.5).
func (p *Parser) parseFor() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var initNode ast.Node
	if p.isPunct(";") {
		initNode = nil
	} else if p.isKeyword("var") || p.isKeyword("let") || p.isKeyword("const") {
		kind := p.declKindFromCur()
		if err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("in") || (p.cur.Kind == lexer.Identifier && p.cur.Value == "of") {
			isOf := p.cur.Value == "of"
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			left := ast.Node(&ast.VariableDeclaration{DKind: kind, Declarations: []*ast.VariableDeclaratorNode{{ID: target}}})
			if isOf {
				return &ast.ForOfStatement{Left: left, Right: right, Body: body}, nil
			}
			return &ast.ForInStatement{Left: left, Right: right, Body: body}, nil
		}
		var init ast.Expression
		if p.isPunct("=") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			init, err = p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
		}
		decls := []*ast.VariableDeclaratorNode{{ID: target, Init: init}}
		for p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			t2, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			var i2 ast.Expression
			if p.isPunct("=") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				i2, err = p.parseAssignmentExpr()
				if err != nil {
					return nil, err
				}
			}
			decls = append(decls, &ast.VariableDeclaratorNode{ID: t2, Init: i2})
		}
		initNode = &ast.VariableDeclaration{DKind: kind, Declarations: decls}
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("in") || (p.cur.Kind == lexer.Identifier && p.cur.Value == "of") {
			isOf := p.cur.Value == "of"
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			left := exprToPattern(expr)
			if isOf {
				return &ast.ForOfStatement{Left: left, Right: right, Body: body}, nil
			}
			return &ast.ForInStatement{Left: left, Right: right, Body: body}, nil
		}
		initNode = expr
	}

	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	var test ast.Expression
	if !p.isPunct(";") {
		t, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		test = t
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	var update ast.Expression
	if !p.isPunct(")") {
		u, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		update = u
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Init: initNode, Test: test, Update: update, Body: body}, nil
}

func (p *Parser) parseBreakContinue(isBreak bool) (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	label := ""
	if p.cur.Kind == lexer.Identifier {
		label = p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	if isBreak {
		return &ast.BreakStatement{Label: label}, nil
	}
	return &ast.ContinueStatement{Label: label}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var arg ast.Expression
	if !p.isPunct(";") && !p.isPunct("}") && p.cur.Kind != lexer.EOF {
		a, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg = a
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Argument: arg}, nil
}

func (p *Parser) parseThrow() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{Argument: arg}, nil
}

func (p *Parser) parseTry() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var handler *ast.CatchClause
	var finalizer *ast.BlockStatement
	if p.isKeyword("catch") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var param ast.Pattern
		if p.isPunct("(") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			param, err = p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		handler = &ast.CatchClause{Param: param, Body: body}
	}
	if p.isKeyword("finally") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		finalizer, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer}, nil
}

func (p *Parser) parseSwitch() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var cases []*ast.SwitchCase
	for !p.isPunct("}") && p.cur.Kind != lexer.EOF {
		var test ast.Expression
		if p.isKeyword("case") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			test, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		} else {
			if err := p.expectKeyword("default"); err != nil {
				return nil, err
			}
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		var body []ast.Statement
		for !p.isPunct("}") && !p.isKeyword("case") && !p.isKeyword("default") && p.cur.Kind != lexer.EOF {
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, s)
		}
		cases = append(cases, &ast.SwitchCase{Test: test, Consequent: body})
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.SwitchStatement{Discriminant: disc, Cases: cases}, nil
}

func (p *Parser) parseWith() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	obj, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WithStatement{Object: obj, Body: body}, nil
}

func (p *Parser) parseLabeled() (ast.Statement, error) {
	label := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // consume ':'
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.LabeledStatement{Label: label, Body: body}, nil
}

func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.Identifier {
		return nil, p.errf("expected function name")
	}
	name := &ast.Identifier{Name: p.cur.Value}
	if err := p.advance(); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{ID: name, Params: params, Body: body}, nil
}

// exprToPattern converts an already-parsed expression (the `for (x in y)`
// / `for ([a,b] of y)` assignment-target form) into a Pattern, for the
// non-declaration form of for-in/for-of.
func exprToPattern(e ast.Expression) ast.Node {
	if pat, ok := e.(ast.Pattern); ok {
		return pat
	}
	return e
}
