package lsp

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/conduit-lang/propls/internal/tooling"
)

// handleTextDocumentCompletion handles completion requests
func (s *Server) handleTextDocumentCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse completion params")
	}

	docURI := string(params.TextDocument.URI)
	completions, err := s.api.GetCompletions(docURI, convertPosition(params.Position))
	if err != nil {
		s.logger.Warn("error getting completions", zap.String("uri", docURI), zap.Error(err))
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get completions")
	}

	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		item := protocol.CompletionItem{
			Label:      c.Label,
			Kind:       convertCompletionKind(c.Kind),
			Detail:     c.Detail,
			FilterText: c.Label,
			SortText:   c.SortText,
			TextEdit: &protocol.TextEdit{
				Range:   convertRange(c.Range),
				NewText: c.InsertText,
			},
		}
		if c.Documentation != "" {
			item.Documentation = protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: c.Documentation,
			}
		}

		if c.Snippet {
			item.InsertTextFormat = protocol.InsertTextFormatSnippet
		} else {
			item.InsertTextFormat = protocol.InsertTextFormatPlainText
		}
		items = append(items, item)
	}

	result := protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentHover handles hover requests
func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse hover params")
	}

	docURI := string(params.TextDocument.URI)
	hover, err := s.api.GetHover(docURI, convertPosition(params.Position))
	if err != nil {
		s.logger.Warn("error getting hover", zap.String("uri", docURI), zap.Error(err))
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get hover information")
	}

	if hover == nil {
		return reply(ctx, nil, nil)
	}

	r := convertRange(hover.Range)
	result := protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hover.Contents,
		},
		Range: &r,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentDocumentSymbol handles document symbol requests
func (s *Server) handleTextDocumentDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse document symbol params")
	}

	docURI := string(params.TextDocument.URI)
	symbols, err := s.api.GetDocumentSymbols(docURI)
	if err != nil {
		s.logger.Warn("error getting document symbols", zap.String("uri", docURI), zap.Error(err))
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get document symbols")
	}

	lspSymbols := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		lspSymbols = append(lspSymbols, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           convertSymbolKind(sym.Kind),
			Detail:         sym.Detail,
			Range:          convertRange(sym.Range),
			SelectionRange: convertRange(sym.SelectionRange),
		})
	}

	return reply(ctx, lspSymbols, nil)
}

// settings is the part of workspace/didChangeConfiguration the server reads.
type settings struct {
	Settings struct {
		Propls struct {
			Completion struct {
				Snippets *bool `json:"snippets"`
			} `json:"completion"`
		} `json:"propls"`
	} `json:"settings"`
}

// handleDidChangeConfiguration applies client settings. Unknown settings are
// ignored.
func (s *Server) handleDidChangeConfiguration(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params settings
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		s.logger.Debug("ignoring configuration change", zap.Error(err))
		return reply(ctx, nil, nil)
	}

	if enabled := params.Settings.Propls.Completion.Snippets; enabled != nil {
		s.logger.Debug("snippets setting changed", zap.Bool("enabled", *enabled))
		s.api.SetSnippetsEnabled(*enabled)
	}

	return reply(ctx, nil, nil)
}

// Helper functions to convert between tooling and LSP types

func convertPosition(pos protocol.Position) tooling.Position {
	return tooling.Position{
		Line:      int(pos.Line),
		Character: int(pos.Character),
	}
}

func convertRange(r tooling.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(r.Start.Line),
			Character: uint32(r.Start.Character),
		},
		End: protocol.Position{
			Line:      uint32(r.End.Line),
			Character: uint32(r.End.Character),
		},
	}
}

func convertCompletionKind(kind tooling.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case tooling.CompletionKindProperty:
		return protocol.CompletionItemKindProperty
	case tooling.CompletionKindValue:
		return protocol.CompletionItemKindValue
	case tooling.CompletionKindSnippet:
		return protocol.CompletionItemKindSnippet
	default:
		return protocol.CompletionItemKindText
	}
}

func convertSymbolKind(kind tooling.SymbolKind) protocol.SymbolKind {
	switch kind {
	case tooling.SymbolKindProperty:
		return protocol.SymbolKindProperty
	case tooling.SymbolKindProfileProperty:
		return protocol.SymbolKindKey
	default:
		return protocol.SymbolKindObject
	}
}
