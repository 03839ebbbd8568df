// Package tooling provides a programmatic, thread-safe API over the core
// toolchain for IDE integration via LSP: per-document parse/verify state,
// diagnostics, and hover text, backed by a bounded LRU cache keyed by
// document URI.
package tooling

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/lowering"
	"github.com/icl-lang/icl/internal/parser"
	"github.com/icl-lang/icl/internal/verify"
)

// Document is the cached parse/verify state for one open editor buffer.
type Document struct {
	URI     string
	Content string
	Version int

	Contract *ast.ContractNode
	ParseErr *parser.ParseError

	Lowered     *lowering.Contract
	Diagnostics *verify.Result
}

// Config bounds the API's document cache.
type Config struct {
	// CacheSize is the maximum number of documents held in memory at once.
	CacheSize int
}

// API is the facade the LSP server drives. It owns one LRU cache per
// instance — never a process-wide cache — so multiple API instances (e.g.
// under test) never share state.
type API struct {
	documents *lru.Cache
}

// NewAPI constructs an API with a default 100-document cache.
func NewAPI() *API {
	return NewAPIWithConfig(Config{CacheSize: 100})
}

// NewAPIWithConfig constructs an API with a custom cache bound.
func NewAPIWithConfig(cfg Config) *API {
	size := cfg.CacheSize
	if size <= 0 {
		size = 100
	}
	cache, err := lru.New(size)
	if err != nil {
		// Only returns an error for a non-positive size, already guarded above.
		panic(err)
	}
	return &API{documents: cache}
}

// ParseFile parses and verifies content, caching the result under uri.
func (a *API) ParseFile(uri, content string) (*Document, error) {
	return a.update(uri, content, 1)
}

// UpdateDocument re-parses content under uri at the given version, skipping
// the work entirely if content is unchanged from the cached copy.
func (a *API) UpdateDocument(uri, content string, version int) (*Document, error) {
	if cached, ok := a.GetDocument(uri); ok && cached.Content == content {
		cached.Version = version
		return cached, nil
	}
	return a.update(uri, content, version)
}

func (a *API) update(uri, content string, version int) (*Document, error) {
	doc := &Document{URI: uri, Content: content, Version: version}

	contract, parseErr := parser.ParseSource(content)
	doc.Contract = contract
	doc.ParseErr = parseErr

	if parseErr == nil {
		doc.Lowered = lowering.Lower(contract)
		doc.Diagnostics = verify.Verify(contract)
	}

	a.documents.Add(uri, doc)
	return doc, nil
}

// GetDocument retrieves a cached document.
func (a *API) GetDocument(uri string) (*Document, bool) {
	v, ok := a.documents.Get(uri)
	if !ok {
		return nil, false
	}
	return v.(*Document), true
}

// CloseDocument evicts a document from the cache.
func (a *API) CloseDocument(uri string) {
	a.documents.Remove(uri)
}

// GetDiagnostics returns the LSP-ready diagnostics for a cached document:
// the parse error if parsing failed, otherwise the verifier's findings.
func (a *API) GetDiagnostics(uri string) []Diagnostic {
	doc, ok := a.GetDocument(uri)
	if !ok {
		return nil
	}

	if doc.ParseErr != nil {
		return []Diagnostic{{
			Range:    rangeFromSpan(doc.ParseErr.Span),
			Severity: DiagnosticSeverityError,
			Code:     "parse_error",
			Message:  doc.ParseErr.Error(),
			Source:   "icl",
		}}
	}

	if doc.Diagnostics == nil {
		return nil
	}

	out := make([]Diagnostic, 0, len(doc.Diagnostics.Diagnostics))
	for _, d := range doc.Diagnostics.Diagnostics {
		out = append(out, Diagnostic{
			Range:    rangeFromSpan(d.Span),
			Severity: severityFromVerify(d.Severity),
			Code:     string(d.Kind),
			Message:  d.Message,
			Source:   "icl",
		})
	}
	return out
}

// GetHover returns hover text for a position, resolving the field (state or
// operation parameter) whose span contains pos.
func (a *API) GetHover(uri string, pos Position) (*Hover, error) {
	doc, ok := a.GetDocument(uri)
	if !ok {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	if doc.Contract == nil {
		return nil, nil //nolint:nilnil // no hover target while the document fails to parse
	}

	if field, span := findFieldAtPosition(doc.Contract, pos); field != nil {
		return &Hover{
			Contents: fmt.Sprintf("```icl\n%s: %s\n```", field.Name, lowering.TypeString(field.Type)),
			Range:    rangeFromSpan(span),
		}, nil
	}

	return nil, nil //nolint:nilnil // position does not land on a known field
}

func severityFromVerify(s verify.Severity) DiagnosticSeverity {
	if s == verify.SeverityWarning {
		return DiagnosticSeverityWarning
	}
	return DiagnosticSeverityError
}
