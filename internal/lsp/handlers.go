package lsp

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/icl-lang/icl/internal/tooling"
)

func (s *Server) handleTextDocumentDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didOpen params")
	}

	docURI := string(params.TextDocument.URI)
	content := params.TextDocument.Text
	version := int(params.TextDocument.Version)

	s.logger.Printf("Document opened: %s (version %d)", docURI, version)

	if _, err := s.api.ParseFile(docURI, content); err != nil {
		s.logger.Printf("Error parsing document: %v", err)
	}

	s.publishDiagnostics(ctx, docURI)

	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didChange params")
	}

	docURI := string(params.TextDocument.URI)
	version := int(params.TextDocument.Version)

	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	content := params.ContentChanges[len(params.ContentChanges)-1].Text

	s.logger.Printf("Document changed: %s (version %d)", docURI, version)

	if _, err := s.api.UpdateDocument(docURI, content, version); err != nil {
		s.logger.Printf("Error updating document: %v", err)
	}

	s.publishDiagnostics(ctx, docURI)

	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didClose params")
	}

	docURI := string(params.TextDocument.URI)
	s.logger.Printf("Document closed: %s", docURI)

	s.api.CloseDocument(docURI)

	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didSave params")
	}

	docURI := string(params.TextDocument.URI)
	s.logger.Printf("Document saved: %s", docURI)

	s.publishDiagnostics(ctx, docURI)

	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse hover params")
	}

	docURI := string(params.TextDocument.URI)
	pos := tooling.Position{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}

	hover, err := s.api.GetHover(docURI, pos)
	if err != nil {
		s.logger.Printf("Error getting hover: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get hover information")
	}

	if hover == nil {
		return reply(ctx, nil, nil)
	}

	result := protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hover.Contents,
		},
		Range: &protocol.Range{
			Start: protocol.Position{
				Line:      uint32(hover.Range.Start.Line),
				Character: uint32(hover.Range.Start.Character),
			},
			End: protocol.Position{
				Line:      uint32(hover.Range.End.Line),
				Character: uint32(hover.Range.End.Character),
			},
		},
	}

	return reply(ctx, result, nil)
}
