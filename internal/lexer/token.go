// Package lexer tokenizes Intent Contract Language source text.
package lexer

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Section keywords
	TOKEN_CONTRACT
	TOKEN_IDENTITY
	TOKEN_PURPOSE_STATEMENT
	TOKEN_DATA_SEMANTICS
	TOKEN_BEHAVIORAL_SEMANTICS
	TOKEN_EXECUTION_CONSTRAINTS
	TOKEN_HUMAN_MACHINE_CONTRACT
	TOKEN_EXTENSIONS

	// Type keywords
	TOKEN_INTEGER
	TOKEN_FLOAT
	TOKEN_STRING
	TOKEN_BOOLEAN
	TOKEN_ISO8601
	TOKEN_UUID
	TOKEN_ARRAY
	TOKEN_MAP
	TOKEN_OBJECT
	TOKEN_ENUM

	// Literals
	TOKEN_STRING_LITERAL
	TOKEN_INTEGER_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_BOOLEAN_LITERAL

	// Symbols
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_LT       // <
	TOKEN_GT       // >
	TOKEN_COLON    // :
	TOKEN_COMMA    // ,
	TOKEN_EQUALS   // =

	TOKEN_IDENTIFIER
)

// TokenTypeNames maps token types to their string representations.
var TokenTypeNames = map[TokenType]string{
	TOKEN_EOF:                    "EOF",
	TOKEN_ERROR:                  "ERROR",
	TOKEN_CONTRACT:               "CONTRACT",
	TOKEN_IDENTITY:               "IDENTITY",
	TOKEN_PURPOSE_STATEMENT:      "PURPOSE_STATEMENT",
	TOKEN_DATA_SEMANTICS:         "DATA_SEMANTICS",
	TOKEN_BEHAVIORAL_SEMANTICS:   "BEHAVIORAL_SEMANTICS",
	TOKEN_EXECUTION_CONSTRAINTS:  "EXECUTION_CONSTRAINTS",
	TOKEN_HUMAN_MACHINE_CONTRACT: "HUMAN_MACHINE_CONTRACT",
	TOKEN_EXTENSIONS:             "EXTENSIONS",
	TOKEN_INTEGER:                "INTEGER",
	TOKEN_FLOAT:                  "FLOAT",
	TOKEN_STRING:                 "STRING",
	TOKEN_BOOLEAN:                "BOOLEAN",
	TOKEN_ISO8601:                "ISO8601",
	TOKEN_UUID:                   "UUID",
	TOKEN_ARRAY:                  "ARRAY",
	TOKEN_MAP:                    "MAP",
	TOKEN_OBJECT:                 "OBJECT",
	TOKEN_ENUM:                   "ENUM",
	TOKEN_STRING_LITERAL:         "STRING_LITERAL",
	TOKEN_INTEGER_LITERAL:        "INTEGER_LITERAL",
	TOKEN_FLOAT_LITERAL:          "FLOAT_LITERAL",
	TOKEN_BOOLEAN_LITERAL:        "BOOLEAN_LITERAL",
	TOKEN_LBRACE:                 "LBRACE",
	TOKEN_RBRACE:                 "RBRACE",
	TOKEN_LBRACKET:               "LBRACKET",
	TOKEN_RBRACKET:               "RBRACKET",
	TOKEN_LT:                     "LT",
	TOKEN_GT:                     "GT",
	TOKEN_COLON:                  "COLON",
	TOKEN_COMMA:                  "COMMA",
	TOKEN_EQUALS:                 "EQUALS",
	TOKEN_IDENTIFIER:             "IDENTIFIER",
}

// String returns the name of a token type.
func (t TokenType) String() string {
	if name, ok := TokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// Span records a token's position: 1-based line/column, 0-based byte offset.
type Span struct {
	Line   int
	Column int
	Offset int
}

// Token is a single lexical token with its originating span.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Span    Span
}

// String renders a token for diagnostics and test failure messages.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q (%v) at %d:%d", t.Type, t.Lexeme, t.Literal, t.Span.Line, t.Span.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Span.Line, t.Span.Column)
}

// SectionKeywords maps the fixed section keyword identifiers to their token type.
var SectionKeywords = map[string]TokenType{
	"Contract":              TOKEN_CONTRACT,
	"Identity":              TOKEN_IDENTITY,
	"PurposeStatement":      TOKEN_PURPOSE_STATEMENT,
	"DataSemantics":         TOKEN_DATA_SEMANTICS,
	"BehavioralSemantics":   TOKEN_BEHAVIORAL_SEMANTICS,
	"ExecutionConstraints":  TOKEN_EXECUTION_CONSTRAINTS,
	"HumanMachineContract":  TOKEN_HUMAN_MACHINE_CONTRACT,
	"Extensions":            TOKEN_EXTENSIONS,
}

// TypeKeywords maps the fixed type keyword identifiers to their token type.
var TypeKeywords = map[string]TokenType{
	"Integer": TOKEN_INTEGER,
	"Float":   TOKEN_FLOAT,
	"String":  TOKEN_STRING,
	"Boolean": TOKEN_BOOLEAN,
	"ISO8601": TOKEN_ISO8601,
	"UUID":    TOKEN_UUID,
	"Array":   TOKEN_ARRAY,
	"Map":     TOKEN_MAP,
	"Object":  TOKEN_OBJECT,
	"Enum":    TOKEN_ENUM,
}

// Keywords is the union of section and type keywords, used by the lexer's
// single identifier-dispatch path.
var Keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, len(SectionKeywords)+len(TypeKeywords))
	for k, v := range SectionKeywords {
		m[k] = v
	}
	for k, v := range TypeKeywords {
		m[k] = v
	}
	return m
}()

// LexError is a lexical error with the span at which it was detected.
type LexError struct {
	Message string
	Span    Span
	Lexeme  string
}

// Error implements the error interface.
func (e LexError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: %s (near %q)", e.Span.Line, e.Span.Column, e.Message, e.Lexeme)
}

// IsKeyword reports whether s is a recognized section or type keyword.
func IsKeyword(s string) bool {
	_, ok := Keywords[s]
	return ok
}
