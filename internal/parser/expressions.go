package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/cwbudde/go-ecma/pkg/ast"

	"github.com/cwbudde/go-ecma/internal/lexer"
)

// parseExpression parses the comma operator (lowest precedence).
func (p *Parser) parseExpression() (ast.Expression, error) {
	first, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, err
	}
	if !p.isPunct(",") {
		return first, nil
	}
	exprs := []ast.Expression{first}
	for p.isPunct(",") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &ast.SequenceExpression{Expressions: exprs}, nil
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true,
	"^=": true, "&&=": true, "||=": true, "??=": true,
}

// parseAssignmentExpr handles assignment, arrow functions, and falls
// through to the conditional-expression chain (§4.4 AssignmentExpression).
func (p *Parser) parseAssignmentExpr() (ast.Expression, error) {
	if arrow, ok, err := p.tryParseArrowFunction(); err != nil {
		return nil, err
	} else if ok {
		return arrow, nil
	}

	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == lexer.Punct && assignOps[p.cur.Value] {
		op := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}
		var target ast.Node = left
		if op == "=" {
			target = exprToAssignTarget(left)
		}
		return &ast.AssignmentExpression{Operator: op, Left: target, Right: right}, nil
	}
	return left, nil
}

// tryParseArrowFunction speculatively parses `(params) => body` or
// `ident => body`, backtracking via snapshot/restore if the lookahead
// doesn't pan out (the teacher's speculative-parse-and-backtrack shape,
// generalised to ECMAScript's arrow-vs-parenthesized-expression ambiguity).
func (p *Parser) tryParseArrowFunction() (ast.Expression, bool, error) {
	if p.cur.Kind == lexer.Identifier && p.peek.Kind == lexer.Punct && p.peek.Value == "=>" {
		param := &ast.Identifier{Name: p.cur.Value}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		if err := p.advance(); err != nil { // consume '=>'
			return nil, false, err
		}
		return p.finishArrowBody([]ast.Pattern{param})
	}

	if !p.isPunct("(") {
		return nil, false, nil
	}

	snap := p.snapshot()
	params, err := p.parseParamList()
	if err != nil {
		p.restore(snap)
		return nil, false, nil
	}
	if !p.isPunct("=>") {
		p.restore(snap)
		return nil, false, nil
	}
	if err := p.advance(); err != nil {
		return nil, false, err
	}
	return p.finishArrowBody(params)
}

func (p *Parser) finishArrowBody(params []ast.Pattern) (ast.Expression, bool, error) {
	if p.isPunct("{") {
		body, err := p.parseBlock()
		if err != nil {
			return nil, false, err
		}
		return &ast.ArrowFunctionExpression{Params: params, Body: body, ExpressionBody: false}, true, nil
	}
	body, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, false, err
	}
	return &ast.ArrowFunctionExpression{Params: params, Body: body, ExpressionBody: true}, true, nil
}

// parseParamList parses a parenthesized, comma-separated parameter list,
// where each parameter is itself a binding target (possibly with a
// default value or a `...rest` prefix).
func (p *Parser) parseParamList() ([]ast.Pattern, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []ast.Pattern
	for !p.isPunct(")") {
		if p.isPunct("...") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			t, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.RestElement{Argument: t})
			break
		}
		t, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		if p.isPunct("=") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			def, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			t = &ast.AssignmentPattern{Left: t, Right: def}
		}
		params = append(params, t)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	test, err := p.parseNullish()
	if err != nil {
		return nil, err
	}
	if !p.isPunct("?") {
		return test, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	cons, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil
}

func (p *Parser) parseNullish() (ast.Expression, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	for p.isPunct("??") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Operator: "??", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isPunct("||") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Operator: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseBitwiseOr()
	if err != nil {
		return nil, err
	}
	for p.isPunct("&&") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBitwiseOr()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Operator: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBinaryLevel(next func() (ast.Expression, error), ops ...string) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := ""
		for _, op := range ops {
			if p.isPunct(op) || p.isKeyword(op) {
				matched = op
				break
			}
		}
		if matched == "" {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Operator: matched, Left: left, Right: right}
	}
}

func (p *Parser) parseBitwiseOr() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseBitwiseXor, "|")
}

func (p *Parser) parseBitwiseXor() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseBitwiseAnd, "^")
}

func (p *Parser) parseBitwiseAnd() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseEquality, "&")
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseRelational, "==", "!=", "===", "!==")
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseShift, "<", ">", "<=", ">=", "instanceof", "in")
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseAdditive, "<<", ">>", ">>>")
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseExponent, "*", "/", "%")
}

// parseExponent is right-associative, per `**`'s grammar (unlike every
// other binary level here).
func (p *Parser) parseExponent() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.isPunct("**") {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Operator: "**", Left: left, Right: right}, nil
}

var unaryOps = map[string]bool{
	"!": true, "~": true, "+": true, "-": true,
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.cur.Kind == lexer.Punct && unaryOps[p.cur.Value] {
		op := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: op, Argument: arg, Prefix: true}, nil
	}
	if p.isKeyword("typeof") || p.isKeyword("void") || p.isKeyword("delete") {
		op := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: op, Argument: arg, Prefix: true}, nil
	}
	if p.isPunct("++") || p.isPunct("--") {
		op := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UpdateExpression{Operator: op, Argument: arg, Prefix: true}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parseCallOrMember()
	if err != nil {
		return nil, err
	}
	if p.isPunct("++") || p.isPunct("--") {
		op := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.UpdateExpression{Operator: op, Argument: expr, Prefix: false}, nil
	}
	return expr, nil
}

func (p *Parser) parseCallOrMember() (ast.Expression, error) {
	var expr ast.Expression
	var err error
	if p.isKeyword("new") {
		expr, err = p.parseNewExpression()
	} else {
		expr, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isPunct("."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind != lexer.Identifier && p.cur.Kind != lexer.Keyword {
				return nil, p.errf("expected property name after '.'")
			}
			prop := &ast.Identifier{Name: p.cur.Value}
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: false}
		case p.isPunct("?."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.isPunct("(") {
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				expr = &ast.CallExpression{Callee: expr, Args: args, Optional: true}
				continue
			}
			if p.isPunct("[") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				prop, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if err := p.expectPunct("]"); err != nil {
					return nil, err
				}
				expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: true, Optional: true}
				continue
			}
			if p.cur.Kind != lexer.Identifier && p.cur.Kind != lexer.Keyword {
				return nil, p.errf("expected property name after '?.'")
			}
			prop := &ast.Identifier{Name: p.cur.Value}
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: false, Optional: true}
		case p.isPunct("["):
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
		case p.isPunct("("):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseNewExpression() (ast.Expression, error) {
	if err := p.advance(); err != nil { // consume 'new'
		return nil, err
	}
	var callee ast.Expression
	var err error
	if p.isKeyword("new") {
		callee, err = p.parseNewExpression()
	} else {
		callee, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for {
		if p.isPunct(".") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind != lexer.Identifier && p.cur.Kind != lexer.Keyword {
				return nil, p.errf("expected property name after '.'")
			}
			prop := &ast.Identifier{Name: p.cur.Value}
			if err := p.advance(); err != nil {
				return nil, err
			}
			callee = &ast.MemberExpression{Object: callee, Property: prop, Computed: false}
			continue
		}
		if p.isPunct("[") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			callee = &ast.MemberExpression{Object: callee, Property: prop, Computed: true}
			continue
		}
		break
	}
	var args []ast.Expression
	if p.isPunct("(") {
		a, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		args = a
	}
	return &ast.NewExpression{Callee: callee, Args: args}, nil
}

func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.isPunct(")") {
		if p.isPunct("...") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			a, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, &ast.SpreadElement{Argument: a})
		} else {
			a, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch {
	case p.cur.Kind == lexer.Number:
		return p.parseNumberLiteral()
	case p.cur.Kind == lexer.BigIntLiteral:
		return p.parseBigIntLiteral()
	case p.cur.Kind == lexer.String:
		v := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{LKind: ast.LitString, Value: v, Raw: v}, nil
	case p.cur.Kind == lexer.Template:
		return p.parseTemplateLiteral()
	case p.isKeyword("true"), p.isKeyword("false"):
		v := p.cur.Value == "true"
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{LKind: ast.LitBoolean, Value: v, Raw: p.cur.Value}, nil
	case p.isKeyword("null"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{LKind: ast.LitNull, Value: nil, Raw: "null"}, nil
	case p.isKeyword("undefined"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: "undefined"}, nil
	case p.isKeyword("this"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ThisExpression{}, nil
	case p.isKeyword("function"):
		return p.parseFunctionExpression()
	case p.cur.Kind == lexer.Identifier:
		name := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: name}, nil
	case p.isPunct("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.isPunct("["):
		return p.parseArrayLiteral()
	case p.isPunct("{"):
		return p.parseObjectLiteral()
	default:
		return nil, p.errf("unexpected token %q", p.cur.Value)
	}
}

func (p *Parser) parseNumberLiteral() (ast.Expression, error) {
	raw := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	var f float64
	var err error
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		var i int64
		i, err = strconv.ParseInt(raw[2:], 16, 64)
		f = float64(i)
	} else {
		f, err = strconv.ParseFloat(raw, 64)
	}
	if err != nil {
		return nil, p.errf("invalid number literal %q", raw)
	}
	return &ast.Literal{LKind: ast.LitNumber, Value: f, Raw: raw}, nil
}

func (p *Parser) parseBigIntLiteral() (ast.Expression, error) {
	raw := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	n := new(big.Int)
	base := 10
	digits := raw
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		base = 16
		digits = raw[2:]
	}
	if _, ok := n.SetString(digits, base); !ok {
		return nil, p.errf("invalid bigint literal %q", raw)
	}
	return &ast.Literal{LKind: ast.LitBigInt, Value: n, Raw: raw + "n"}, nil
}

func (p *Parser) parseFunctionExpression() (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var name *ast.Identifier
	if p.cur.Kind == lexer.Identifier {
		name = &ast.Identifier{Name: p.cur.Value}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpression{ID: name, Params: params, Body: body}, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	for !p.isPunct("]") {
		if p.isPunct(",") {
			elems = append(elems, nil) // elision
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.isPunct("...") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, &ast.SpreadElement{Argument: e})
		} else {
			e, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{Elements: elems}, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var props []*ast.Property
	for !p.isPunct("}") {
		prop, err := p.parseObjectProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.ObjectExpression{Properties: props}, nil
}

func (p *Parser) parseObjectProperty() (*ast.Property, error) {
	if (p.cur.Value == "get" || p.cur.Value == "set") && p.cur.Kind == lexer.Identifier &&
		!(p.peek.Kind == lexer.Punct && (p.peek.Value == "," || p.peek.Value == ":" || p.peek.Value == "}" || p.peek.Value == "(")) {
		kind := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		key, computed, err := p.parsePropertyKey()
		if err != nil {
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
		fn := &ast.FunctionExpression{Params: params, Body: body}
		return &ast.Property{Key: key, Value: fn, Computed: computed, Kind: kind}, nil
	}

	if p.isPunct("...") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Property{Key: nil, Value: &ast.SpreadElement{Argument: arg}, Kind: "spread"}, nil
	}

	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}
	if p.isPunct("(") {
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn := &ast.FunctionExpression{Params: params, Body: body}
		return &ast.Property{Key: key, Value: fn, Computed: computed, Kind: "init"}, nil
	}
	if p.isPunct(":") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Property{Key: key, Value: val, Computed: computed, Kind: "init"}, nil
	}
	// shorthand `{ a }` or `{ a = default }` (object-pattern-in-disguise,
	// resolved to an AssignmentPattern only when used as a binding target).
	if p.isPunct("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		def, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Property{Key: key, Value: &ast.AssignmentExpression{Operator: "=", Left: key, Right: def}, Shorthand: true, Kind: "init"}, nil
	}
	return &ast.Property{Key: key, Value: key, Shorthand: true, Kind: "init"}, nil
}

func (p *Parser) parsePropertyKey() (ast.Expression, bool, error) {
	if p.isPunct("[") {
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		e, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, false, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, false, err
		}
		return e, true, nil
	}
	if p.cur.Kind == lexer.String {
		v := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &ast.Literal{LKind: ast.LitString, Value: v, Raw: v}, false, nil
	}
	if p.cur.Kind == lexer.Number {
		lit, err := p.parseNumberLiteral()
		return lit, false, err
	}
	name := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, false, err
	}
	return &ast.Identifier{Name: name}, false, nil
}

// parseTemplateLiteral cooks the lexer's raw captured template text: it
// splits on `${...}` substitutions at nesting depth 0, processes escapes
// in the literal segments, and recursively parses each substitution's
// source text with a fresh Parser.
func (p *Parser) parseTemplateLiteral() (ast.Expression, error) {
	raw := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	quasis, exprSrcs := splitTemplate(raw)
	cooked := make([]string, len(quasis))
	for i, q := range quasis {
		cooked[i] = cookTemplateChunk(q)
	}
	exprs := make([]ast.Expression, len(exprSrcs))
	for i, src := range exprSrcs {
		e, err := parseExpressionSource(src)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return &ast.TemplateLiteral{Quasis: cooked, Expressions: exprs}, nil
}

// parseExpressionSource parses a standalone expression from a
// substring of the original source (a template literal's `${...}` body).
func parseExpressionSource(src string) (ast.Expression, error) {
	sub, err := New(src)
	if err != nil {
		return nil, err
	}
	return sub.parseExpression()
}

// splitTemplate splits raw template text on `${...}` boundaries at
// nesting depth 0, honoring backslash escapes so an escaped `$` or
// backtick inside a literal segment doesn't confuse the split.
func splitTemplate(raw string) (quasis []string, exprs []string) {
	var cur strings.Builder
	runes := []rune(raw)
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			cur.WriteRune(r)
			cur.WriteRune(runes[i+1])
			i += 2
			continue
		}
		if r == '$' && i+1 < len(runes) && runes[i+1] == '{' {
			quasis = append(quasis, cur.String())
			cur.Reset()
			i += 2
			depth := 1
			var exprBuf strings.Builder
			for i < len(runes) && depth > 0 {
				if runes[i] == '{' {
					depth++
				} else if runes[i] == '}' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				exprBuf.WriteRune(runes[i])
				i++
			}
			exprs = append(exprs, exprBuf.String())
			continue
		}
		cur.WriteRune(r)
		i++
	}
	quasis = append(quasis, cur.String())
	return quasis, exprs
}

// cookTemplateChunk processes backslash escapes in a literal template
// segment, mirroring internal/lexer's string-escape handling.
func cookTemplateChunk(chunk string) string {
	var sb strings.Builder
	runes := []rune(chunk)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			sb.WriteRune('\n')
		case 't':
			sb.WriteRune('\t')
		case 'r':
			sb.WriteRune('\r')
		case 'b':
			sb.WriteRune('\b')
		case 'f':
			sb.WriteRune('\f')
		case 'v':
			sb.WriteRune('\v')
		case '`':
			sb.WriteRune('`')
		case '$':
			sb.WriteRune('$')
		case '\\':
			sb.WriteRune('\\')
		default:
			sb.WriteRune(runes[i])
		}
	}
	return sb.String()
}

// exprToAssignTarget converts a parsed expression into the Pattern the
// evaluator's destructuring-assignment path expects, when the left side
// of a plain `=` is array/object literal syntax rather than a simple
// reference.
func exprToAssignTarget(e ast.Expression) ast.Node {
	switch v := e.(type) {
	case *ast.ArrayExpression:
		elems := make([]ast.Pattern, len(v.Elements))
		for i, el := range v.Elements {
			if el == nil {
				continue
			}
			if se, ok := el.(*ast.SpreadElement); ok {
				elems[i] = &ast.RestElement{Argument: exprToPattern2(se.Argument)}
				continue
			}
			elems[i] = exprToPattern2(el)
		}
		return &ast.ArrayPattern{Elements: elems}
	case *ast.ObjectExpression:
		var props []*ast.ObjectPatternProperty
		var rest *ast.RestElement
		for _, prop := range v.Properties {
			if se, ok := prop.Value.(*ast.SpreadElement); ok {
				rest = &ast.RestElement{Argument: exprToPattern2(se.Argument)}
				continue
			}
			props = append(props, &ast.ObjectPatternProperty{
				Key:      prop.Key,
				Value:    exprToPattern2(prop.Value),
				Computed: prop.Computed,
			})
		}
		return &ast.ObjectPattern{Properties: props, Rest: rest}
	default:
		return e
	}
}

func exprToPattern2(e ast.Expression) ast.Pattern {
	if ae, ok := e.(*ast.AssignmentExpression); ok {
		if left, ok := ae.Left.(ast.Pattern); ok {
			return &ast.AssignmentPattern{Left: left, Right: ae.Right}
		}
	}
	if pat, ok := e.(ast.Pattern); ok {
		return pat
	}
	if target := exprToAssignTarget(e); target != nil {
		if pat, ok := target.(ast.Pattern); ok {
			return pat
		}
	}
	return nil
}
