package parser

import (
	"fmt"

	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/lexer"
)

// Parser transforms a token stream into a ContractNode AST.
type Parser struct {
	tokens  []lexer.Token
	current int
	fatal   *ParseError
}

// New creates a parser over the given token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the token stream into a ContractNode. It stops at the first
// fatal error.
func (p *Parser) Parse() (*ast.ContractNode, *ParseError) {
	contract := p.parseContract()
	if p.fatal != nil {
		return nil, p.fatal
	}
	return contract, nil
}

// ParseSource tokenizes and parses source text in one call.
func ParseSource(source string) (*ast.ContractNode, *ParseError) {
	lex := lexer.New(source)
	tokens, lexErrs := lex.ScanTokens()
	if len(lexErrs) > 0 {
		e := lexErrs[0]
		return nil, &ParseError{Kind: ErrSyntax, Message: e.Message, Span: ast.Span{Line: e.Span.Line, Column: e.Span.Column, Offset: e.Span.Offset}}
	}
	return New(tokens).Parse()
}

func (p *Parser) parseContract() *ast.ContractNode {
	contractTok := p.consume(lexer.TOKEN_CONTRACT, "Expected 'Contract' keyword")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'Contract'")
		return nil
	}

	contract := &ast.ContractNode{Span: ast.FromToken(contractTok)}

	contract.Identity = p.parseIdentity()
	if p.failed() {
		return nil
	}
	contract.PurposeStatement = p.parsePurposeStatement()
	if p.failed() {
		return nil
	}
	contract.DataSemantics = p.parseDataSemantics()
	if p.failed() {
		return nil
	}
	contract.BehavioralSemantics = p.parseBehavioralSemantics()
	if p.failed() {
		return nil
	}
	contract.ExecutionConstraints = p.parseExecutionConstraints()
	if p.failed() {
		return nil
	}
	contract.HumanMachineContract = p.parseHumanMachineContract()
	if p.failed() {
		return nil
	}

	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close Contract")
		return nil
	}

	if p.check(lexer.TOKEN_EXTENSIONS) {
		contract.Extensions = p.parseExtensions()
		if p.failed() {
			return nil
		}
	}

	if !p.check(lexer.TOKEN_EOF) {
		p.error(ErrSyntax, p.peek(), "Unexpected trailing content after Contract")
		return nil
	}

	return contract
}

// fieldSet tracks which required fields of a section have been seen.
type fieldSet map[string]bool

func (fs fieldSet) requireAll(p *Parser, tok lexer.Token, section string, required []string) bool {
	for _, name := range required {
		if !fs[name] {
			p.error(ErrSyntax, tok, fmt.Sprintf("%s is missing required field %q", section, name))
			return false
		}
	}
	return true
}

// ---- Identity ----

func (p *Parser) parseIdentity() *ast.IdentityNode {
	headerTok := p.consume(lexer.TOKEN_IDENTITY, "Expected 'Identity' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'Identity'")
		return nil
	}

	node := &ast.IdentityNode{Span: ast.FromToken(headerTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "stable_id":
			tok := p.consumeStringLiteral("stable_id must be a string literal")
			node.StableID = stringLiteral(tok)
			node.StableIDSpan = ast.FromToken(tok)
		case "version":
			tok := p.consume(lexer.TOKEN_INTEGER_LITERAL, "version must be an integer literal")
			node.Version = intLiteral(tok)
			node.VersionSpan = ast.FromToken(tok)
		case "created_timestamp":
			tok := p.consumeStringLiteral("created_timestamp must be a string literal")
			node.CreatedTimestamp = stringLiteral(tok)
			node.CreatedTimestampSpan = ast.FromToken(tok)
		case "owner":
			tok := p.consumeStringLiteral("owner must be a string literal")
			node.Owner = stringLiteral(tok)
			node.OwnerSpan = ast.FromToken(tok)
		case "semantic_hash":
			tok := p.consumeStringLiteral("semantic_hash must be a string literal")
			node.SemanticHash = stringLiteral(tok)
			node.SemanticHashSpan = ast.FromToken(tok)
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown Identity field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate Identity field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, headerTok, "Identity", []string{"stable_id", "version", "created_timestamp", "owner", "semantic_hash"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close Identity")
		return nil
	}
	return node
}

// ---- PurposeStatement ----

func (p *Parser) parsePurposeStatement() *ast.PurposeStatementNode {
	headerTok := p.consume(lexer.TOKEN_PURPOSE_STATEMENT, "Expected 'PurposeStatement' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'PurposeStatement'")
		return nil
	}

	node := &ast.PurposeStatementNode{Span: ast.FromToken(headerTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "narrative":
			tok := p.consumeStringLiteral("narrative must be a string literal")
			node.Narrative = stringLiteral(tok)
			node.NarrativeSpan = ast.FromToken(tok)
		case "intent_source":
			tok := p.consumeStringLiteral("intent_source must be a string literal")
			node.IntentSource = stringLiteral(tok)
		case "confidence_level":
			tok, value := p.consumeNumber("confidence_level must be numeric")
			node.ConfidenceLevel = value
			node.ConfidenceSpan = ast.FromToken(tok)
			if value < 0.0 || value > 1.0 {
				p.error(ErrValidation, tok, fmt.Sprintf("confidence_level %v out of range [0.0, 1.0]", value))
				return
			}
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown PurposeStatement field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate PurposeStatement field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, headerTok, "PurposeStatement", []string{"narrative", "intent_source", "confidence_level"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close PurposeStatement")
		return nil
	}
	return node
}

// ---- DataSemantics ----

func (p *Parser) parseDataSemantics() *ast.DataSemanticsNode {
	headerTok := p.consume(lexer.TOKEN_DATA_SEMANTICS, "Expected 'DataSemantics' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'DataSemantics'")
		return nil
	}

	node := &ast.DataSemanticsNode{Span: ast.FromToken(headerTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "state":
			if !p.match(lexer.TOKEN_LBRACE) {
				p.error(ErrSyntax, p.peek(), "Expected '{' after 'state:'")
				return
			}
			node.State = p.parseStateFields(lexer.TOKEN_RBRACE)
			if p.failed() {
				return
			}
			if !p.match(lexer.TOKEN_RBRACE) {
				p.error(ErrSyntax, p.peek(), "Expected '}' to close state")
				return
			}
		case "invariants":
			node.Invariants = p.parseStringList()
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown DataSemantics field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate DataSemantics field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, headerTok, "DataSemantics", []string{"state", "invariants"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close DataSemantics")
		return nil
	}
	return node
}

// ---- BehavioralSemantics ----

func (p *Parser) parseBehavioralSemantics() *ast.BehavioralSemanticsNode {
	headerTok := p.consume(lexer.TOKEN_BEHAVIORAL_SEMANTICS, "Expected 'BehavioralSemantics' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'BehavioralSemantics'")
		return nil
	}

	node := &ast.BehavioralSemanticsNode{Span: ast.FromToken(headerTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "operations":
			if !p.match(lexer.TOKEN_LBRACKET) {
				p.error(ErrSyntax, p.peek(), "Expected '[' after 'operations:'")
				return
			}
			ops := make([]*ast.OperationNode, 0)
			first := true
			for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
				if !first {
					if !p.match(lexer.TOKEN_COMMA) {
						p.error(ErrSyntax, p.peek(), "Expected ',' between operations")
						return
					}
					if p.check(lexer.TOKEN_RBRACKET) {
						break
					}
				}
				first = false
				op := p.parseOperation()
				if p.failed() {
					return
				}
				ops = append(ops, op)
			}
			if p.failed() {
				return
			}
			if !p.match(lexer.TOKEN_RBRACKET) {
				p.error(ErrSyntax, p.peek(), "Expected ']' to close operations")
				return
			}
			node.Operations = ops
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown BehavioralSemantics field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate BehavioralSemantics field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, headerTok, "BehavioralSemantics", []string{"operations"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close BehavioralSemantics")
		return nil
	}
	return node
}

func (p *Parser) parseOperation() *ast.OperationNode {
	openTok := p.peek()
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' to start operation")
		return nil
	}

	op := &ast.OperationNode{Span: ast.FromToken(openTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "name":
			tok := p.consumeStringLiteral("name must be a string literal")
			op.Name = stringLiteral(tok)
		case "precondition":
			tok := p.consumeStringLiteral("precondition must be a string literal")
			op.Precondition = stringLiteral(tok)
		case "parameters":
			if !p.match(lexer.TOKEN_LBRACE) {
				p.error(ErrSyntax, p.peek(), "Expected '{' after 'parameters:'")
				return
			}
			op.Parameters = p.parseStateFields(lexer.TOKEN_RBRACE)
			if p.failed() {
				return
			}
			if !p.match(lexer.TOKEN_RBRACE) {
				p.error(ErrSyntax, p.peek(), "Expected '}' to close parameters")
				return
			}
		case "postcondition":
			tok := p.consumeStringLiteral("postcondition must be a string literal")
			op.Postcondition = stringLiteral(tok)
		case "side_effects":
			op.SideEffects = p.parseStringList()
		case "idempotence":
			tok := p.consumeStringLiteral("idempotence must be a string literal")
			op.Idempotence = stringLiteral(tok)
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown operation field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate operation field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, openTok, "operation", []string{"name", "precondition", "parameters", "postcondition", "side_effects", "idempotence"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close operation")
		return nil
	}
	return op
}

// ---- ExecutionConstraints ----

func (p *Parser) parseExecutionConstraints() *ast.ExecutionConstraintsNode {
	headerTok := p.consume(lexer.TOKEN_EXECUTION_CONSTRAINTS, "Expected 'ExecutionConstraints' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'ExecutionConstraints'")
		return nil
	}

	node := &ast.ExecutionConstraintsNode{Span: ast.FromToken(headerTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "trigger_types":
			node.TriggerTypes = p.parseStringList()
		case "resource_limits":
			node.ResourceLimits = p.parseResourceLimits()
		case "external_permissions":
			node.ExternalPermissions = p.parseStringList()
		case "sandbox_mode":
			tok := p.consumeStringLiteral("sandbox_mode must be a string literal")
			node.SandboxMode = stringLiteral(tok)
			node.SandboxModeSpan = ast.FromToken(tok)
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown ExecutionConstraints field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate ExecutionConstraints field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, headerTok, "ExecutionConstraints", []string{"trigger_types", "resource_limits", "external_permissions", "sandbox_mode"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close ExecutionConstraints")
		return nil
	}
	return node
}

func (p *Parser) parseResourceLimits() *ast.ResourceLimitsNode {
	openTok := p.peek()
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'resource_limits:'")
		return nil
	}
	node := &ast.ResourceLimitsNode{Span: ast.FromToken(openTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "max_memory_bytes":
			tok := p.consume(lexer.TOKEN_INTEGER_LITERAL, "max_memory_bytes must be an integer literal")
			node.MaxMemoryBytes = intLiteral(tok)
		case "computation_timeout_ms":
			tok := p.consume(lexer.TOKEN_INTEGER_LITERAL, "computation_timeout_ms must be an integer literal")
			node.ComputationTimeoutMs = intLiteral(tok)
		case "max_state_size_bytes":
			tok := p.consume(lexer.TOKEN_INTEGER_LITERAL, "max_state_size_bytes must be an integer literal")
			node.MaxStateSizeBytes = intLiteral(tok)
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown resource_limits field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate resource_limits field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, openTok, "resource_limits", []string{"max_memory_bytes", "computation_timeout_ms", "max_state_size_bytes"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close resource_limits")
		return nil
	}
	return node
}

// ---- HumanMachineContract ----

func (p *Parser) parseHumanMachineContract() *ast.HumanMachineContractNode {
	headerTok := p.consume(lexer.TOKEN_HUMAN_MACHINE_CONTRACT, "Expected 'HumanMachineContract' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'HumanMachineContract'")
		return nil
	}

	node := &ast.HumanMachineContractNode{Span: ast.FromToken(headerTok)}
	seen := fieldSet{}

	p.forEachField(lexer.TOKEN_RBRACE, func(name string, nameTok lexer.Token) {
		switch name {
		case "system_commitments":
			node.SystemCommitments = p.parseStringList()
		case "system_refusals":
			node.SystemRefusals = p.parseStringList()
		case "user_obligations":
			node.UserObligations = p.parseStringList()
		default:
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Unknown HumanMachineContract field %q", name))
			return
		}
		if seen[name] {
			p.error(ErrSyntax, nameTok, fmt.Sprintf("Duplicate HumanMachineContract field %q", name))
			return
		}
		seen[name] = true
	})
	if p.failed() {
		return nil
	}
	if !seen.requireAll(p, headerTok, "HumanMachineContract", []string{"system_commitments", "system_refusals", "user_obligations"}) {
		return nil
	}
	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close HumanMachineContract")
		return nil
	}
	return node
}

// ---- Extensions ----

func (p *Parser) parseExtensions() *ast.ExtensionsNode {
	headerTok := p.consume(lexer.TOKEN_EXTENSIONS, "Expected 'Extensions' section")
	if p.failed() {
		return nil
	}
	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '{' after 'Extensions'")
		return nil
	}

	node := &ast.ExtensionsNode{Span: ast.FromToken(headerTok)}

	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		sysNameTok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected extension system name")
		if p.failed() {
			return nil
		}
		if !p.match(lexer.TOKEN_LBRACE) {
			p.error(ErrSyntax, p.peek(), "Expected '{' after extension system name")
			return nil
		}
		sys := &ast.SystemExtensionNode{Name: sysNameTok.Lexeme, Span: ast.FromToken(sysNameTok)}

		first := true
		for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
			if !first {
				if p.check(lexer.TOKEN_COMMA) {
					p.advance()
					if p.check(lexer.TOKEN_RBRACE) {
						break
					}
				}
			}
			first = false
			fieldNameTok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected extension field name")
			if p.failed() {
				return nil
			}
			if !p.match(lexer.TOKEN_COLON) {
				p.error(ErrSyntax, p.peek(), "Expected ':' after extension field name")
				return nil
			}
			value := p.parseLiteral()
			if p.failed() {
				return nil
			}
			sys.Fields = append(sys.Fields, ast.ExtensionField{Name: fieldNameTok.Lexeme, Value: value})
		}
		if !p.match(lexer.TOKEN_RBRACE) {
			p.error(ErrSyntax, p.peek(), "Expected '}' to close extension system")
			return nil
		}
		node.Systems = append(node.Systems, sys)
	}

	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(ErrSyntax, p.peek(), "Expected '}' to close Extensions")
		return nil
	}
	return node
}

// ---- Low-level helpers ----

// forEachField iterates "name : <handled-by-dispatch>" entries separated by
// commas until the end token, tolerating a single trailing comma. The
// dispatch callback is responsible for consuming the field's value; it does
// not consume the following comma.
func (p *Parser) forEachField(end lexer.TokenType, dispatch func(name string, nameTok lexer.Token)) {
	first := true
	for !p.check(end) && !p.isAtEnd() {
		if !first {
			if !p.match(lexer.TOKEN_COMMA) {
				p.error(ErrSyntax, p.peek(), "Expected ',' between fields")
				return
			}
			if p.check(end) {
				break
			}
		}
		first = false

		nameTok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected field name")
		if p.failed() {
			return
		}
		if !p.match(lexer.TOKEN_COLON) {
			p.error(ErrSyntax, p.peek(), "Expected ':' after field name")
			return
		}
		dispatch(nameTok.Lexeme, nameTok)
		if p.failed() {
			return
		}
	}
}

func (p *Parser) parseStateFields(end lexer.TokenType) []*ast.StateFieldNode {
	fields := make([]*ast.StateFieldNode, 0)
	first := true
	for !p.check(end) && !p.isAtEnd() {
		if !first {
			if !p.match(lexer.TOKEN_COMMA) {
				p.error(ErrSyntax, p.peek(), "Expected ',' between state fields")
				return nil
			}
			if p.check(end) {
				break
			}
		}
		first = false

		nameTok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected field name")
		if p.failed() {
			return nil
		}
		if !p.match(lexer.TOKEN_COLON) {
			p.error(ErrSyntax, p.peek(), "Expected ':' after field name")
			return nil
		}
		typeExpr := p.parseType()
		if p.failed() {
			return nil
		}

		field := &ast.StateFieldNode{Name: nameTok.Lexeme, Type: typeExpr, Span: ast.FromToken(nameTok)}
		if p.match(lexer.TOKEN_EQUALS) {
			lit := p.parseLiteral()
			if p.failed() {
				return nil
			}
			field.Default = &lit
		}
		fields = append(fields, field)
	}
	return fields
}

func (p *Parser) parseStringList() []string {
	if !p.match(lexer.TOKEN_LBRACKET) {
		p.error(ErrSyntax, p.peek(), "Expected '['")
		return nil
	}
	items := make([]string, 0)
	first := true
	for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
		if !first {
			if !p.match(lexer.TOKEN_COMMA) {
				p.error(ErrSyntax, p.peek(), "Expected ',' between list items")
				return nil
			}
			if p.check(lexer.TOKEN_RBRACKET) {
				break
			}
		}
		first = false
		tok := p.consumeStringLiteral("Expected string literal in list")
		if p.failed() {
			return nil
		}
		items = append(items, stringLiteral(tok))
	}
	if !p.match(lexer.TOKEN_RBRACKET) {
		p.error(ErrSyntax, p.peek(), "Expected ']' to close list")
		return nil
	}
	return items
}

// ---- Cursor primitives ----

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(ErrSyntax, p.peek(), message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

func (p *Parser) consumeStringLiteral(message string) lexer.Token {
	return p.consume(lexer.TOKEN_STRING_LITERAL, message)
}

func (p *Parser) consumeNumber(message string) (lexer.Token, float64) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INTEGER_LITERAL:
		p.advance()
		return tok, float64(intLiteral(tok))
	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		return tok, tok.Literal.(float64)
	default:
		p.error(ErrSyntax, tok, message)
		return tok, 0
	}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

func (p *Parser) error(kind ErrorKind, tok lexer.Token, message string) {
	if p.fatal == nil {
		p.fatal = newParseError(kind, message, tok)
	}
}

func (p *Parser) failed() bool {
	return p.fatal != nil
}

func stringLiteral(tok lexer.Token) string {
	if s, ok := tok.Literal.(string); ok {
		return s
	}
	return tok.Lexeme
}

func intLiteral(tok lexer.Token) int64 {
	if v, ok := tok.Literal.(int64); ok {
		return v
	}
	return 0
}
