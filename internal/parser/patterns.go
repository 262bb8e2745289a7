package parser

import (
	"github.com/cwbudde/go-ecma/pkg/ast"

	"github.com/cwbudde/go-ecma/internal/lexer"
)

// parseBindingTarget parses a single binding target: a plain identifier,
// or an array/object destructuring pattern, each possibly wrapped in an
// AssignmentPattern default by the caller (parseParamList, parseVariable
// Declaration).
func (p *Parser) parseBindingTarget() (ast.Pattern, error) {
	switch {
	case p.isPunct("["):
		return p.parseArrayPattern()
	case p.isPunct("{"):
		return p.parseObjectPattern()
	case p.cur.Kind == lexer.Identifier:
		name := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: name}, nil
	default:
		return nil, p.errf("expected binding target, got %q", p.cur.Value)
	}
}

func (p *Parser) parseArrayPattern() (ast.Pattern, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var elems []ast.Pattern
	for !p.isPunct("]") {
		if p.isPunct(",") {
			elems = append(elems, nil)
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.isPunct("...") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			t, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			elems = append(elems, &ast.RestElement{Argument: t})
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
		elems = append(elems, t)
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
	return &ast.ArrayPattern{Elements: elems}, nil
}

func (p *Parser) parseObjectPattern() (ast.Pattern, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var props []*ast.ObjectPatternProperty
	var rest *ast.RestElement
	for !p.isPunct("}") {
		if p.isPunct("...") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			t, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			rest = &ast.RestElement{Argument: t}
			break
		}
		key, computed, err := p.parsePropertyKey()
		if err != nil {
			return nil, err
		}
		var value ast.Pattern
		if p.isPunct(":") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			value, err = p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
		} else if id, ok := key.(*ast.Identifier); ok {
			value = id
		} else {
			return nil, p.errf("expected ':' in destructuring pattern")
		}
		if p.isPunct("=") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			def, err := p.parseAssignmentExpr()
			if err != nil {
				return nil, err
			}
			value = &ast.AssignmentPattern{Left: value, Right: def}
		}
		props = append(props, &ast.ObjectPatternProperty{Key: key, Value: value, Computed: computed})
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
	return &ast.ObjectPattern{Properties: props, Rest: rest}, nil
}
