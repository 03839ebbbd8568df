package parser

import (
	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/lexer"
)

// parseType parses a type expression: a primitive keyword, Array<T>,
// Map<K,V>, Object{ fields... }, or Enum[ "a", "b", ... ].
func (p *Parser) parseType() ast.TypeExpr {
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_INTEGER:
		p.advance()
		return &ast.PrimitiveType{Kind: ast.KindInteger, Span: ast.FromToken(tok)}
	case lexer.TOKEN_FLOAT:
		p.advance()
		return &ast.PrimitiveType{Kind: ast.KindFloat, Span: ast.FromToken(tok)}
	case lexer.TOKEN_STRING:
		p.advance()
		return &ast.PrimitiveType{Kind: ast.KindString, Span: ast.FromToken(tok)}
	case lexer.TOKEN_BOOLEAN:
		p.advance()
		return &ast.PrimitiveType{Kind: ast.KindBoolean, Span: ast.FromToken(tok)}
	case lexer.TOKEN_ISO8601:
		p.advance()
		return &ast.PrimitiveType{Kind: ast.KindISO8601, Span: ast.FromToken(tok)}
	case lexer.TOKEN_UUID:
		p.advance()
		return &ast.PrimitiveType{Kind: ast.KindUUID, Span: ast.FromToken(tok)}
	case lexer.TOKEN_ARRAY:
		p.advance()
		if !p.match(lexer.TOKEN_LT) {
			p.error(ErrSyntax, p.peek(), "Expected '<' after 'Array'")
			return nil
		}
		elem := p.parseType()
		if p.failed() {
			return nil
		}
		if !p.match(lexer.TOKEN_GT) {
			p.error(ErrSyntax, p.peek(), "Expected '>' to close Array<...>")
			return nil
		}
		return &ast.ArrayType{Element: elem, Span: ast.FromToken(tok)}
	case lexer.TOKEN_MAP:
		p.advance()
		if !p.match(lexer.TOKEN_LT) {
			p.error(ErrSyntax, p.peek(), "Expected '<' after 'Map'")
			return nil
		}
		key := p.parseType()
		if p.failed() {
			return nil
		}
		if !p.match(lexer.TOKEN_COMMA) {
			p.error(ErrSyntax, p.peek(), "Expected ',' between Map key and value types")
			return nil
		}
		value := p.parseType()
		if p.failed() {
			return nil
		}
		if !p.match(lexer.TOKEN_GT) {
			p.error(ErrSyntax, p.peek(), "Expected '>' to close Map<...>")
			return nil
		}
		return &ast.MapType{Key: key, Value: value, Span: ast.FromToken(tok)}
	case lexer.TOKEN_OBJECT:
		p.advance()
		if !p.match(lexer.TOKEN_LBRACE) {
			p.error(ErrSyntax, p.peek(), "Expected '{' after 'Object'")
			return nil
		}
		fields := p.parseStateFields(lexer.TOKEN_RBRACE)
		if p.failed() {
			return nil
		}
		if !p.match(lexer.TOKEN_RBRACE) {
			p.error(ErrSyntax, p.peek(), "Expected '}' to close Object{...}")
			return nil
		}
		return &ast.ObjectType{Fields: fields, Span: ast.FromToken(tok)}
	case lexer.TOKEN_ENUM:
		p.advance()
		if !p.match(lexer.TOKEN_LBRACKET) {
			p.error(ErrSyntax, p.peek(), "Expected '[' after 'Enum'")
			return nil
		}
		variants := make([]string, 0)
		first := true
		for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
			if !first {
				if !p.match(lexer.TOKEN_COMMA) {
					p.error(ErrSyntax, p.peek(), "Expected ',' between Enum variants")
					return nil
				}
				if p.check(lexer.TOKEN_RBRACKET) {
					break
				}
			}
			first = false
			variantTok := p.consumeStringLiteral("Expected string literal Enum variant")
			if p.failed() {
				return nil
			}
			variants = append(variants, stringLiteral(variantTok))
		}
		if !p.match(lexer.TOKEN_RBRACKET) {
			p.error(ErrSyntax, p.peek(), "Expected ']' to close Enum[...]")
			return nil
		}
		return &ast.EnumType{Variants: variants, Span: ast.FromToken(tok)}
	default:
		p.error(ErrSyntax, tok, "Expected a type expression")
		return nil
	}
}

// parseLiteral parses a literal value: string, integer, float, boolean, or
// a bracketed array of literals.
func (p *Parser) parseLiteral() ast.LiteralValue {
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		return ast.LiteralValue{Kind: ast.LitString, Str: stringLiteral(tok), Span: ast.FromToken(tok)}
	case lexer.TOKEN_INTEGER_LITERAL:
		p.advance()
		return ast.LiteralValue{Kind: ast.LitInteger, Int: intLiteral(tok), Span: ast.FromToken(tok)}
	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		f, _ := tok.Literal.(float64)
		return ast.LiteralValue{Kind: ast.LitFloat, Float: f, Span: ast.FromToken(tok)}
	case lexer.TOKEN_BOOLEAN_LITERAL:
		p.advance()
		b, _ := tok.Literal.(bool)
		return ast.LiteralValue{Kind: ast.LitBoolean, Bool: b, Span: ast.FromToken(tok)}
	case lexer.TOKEN_LBRACKET:
		p.advance()
		items := make([]ast.LiteralValue, 0)
		first := true
		for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
			if !first {
				if !p.match(lexer.TOKEN_COMMA) {
					p.error(ErrSyntax, p.peek(), "Expected ',' between array literal elements")
					return ast.LiteralValue{}
				}
				if p.check(lexer.TOKEN_RBRACKET) {
					break
				}
			}
			first = false
			item := p.parseLiteral()
			if p.failed() {
				return ast.LiteralValue{}
			}
			items = append(items, item)
		}
		if !p.match(lexer.TOKEN_RBRACKET) {
			p.error(ErrSyntax, p.peek(), "Expected ']' to close array literal")
			return ast.LiteralValue{}
		}
		return ast.LiteralValue{Kind: ast.LitArray, Array: items, Span: ast.FromToken(tok)}
	default:
		p.error(ErrSyntax, tok, "Expected a literal value")
		return ast.LiteralValue{}
	}
}
