package lsp

import (
	"context"

	"github.com/fork-tongue/ruff-cgx/internal/diagnostics"
	"github.com/fork-tongue/ruff-cgx/internal/document"
	"github.com/fork-tongue/ruff-cgx/internal/log"
	"github.com/fork-tongue/ruff-cgx/internal/position"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) didOpen(glspCtx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	td := params.TextDocument
	if err := s.documents.DidOpen(td.URI, td.LanguageID, int(td.Version), td.Text); err != nil {
		return err
	}
	s.publishDiagnostics(glspCtx, td.URI, td.Text)
	return nil
}

func (s *Server) didChange(glspCtx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	err := s.documents.DidChange(uri, int(params.TextDocument.Version), params.ContentChanges)
	if err != nil {
		log.Warn("didChange for %s: %v", uri, err)
		return err
	}
	if doc := s.documents.Get(uri); doc != nil {
		s.publishDiagnostics(glspCtx, uri, doc.Content())
	}
	return nil
}

func (s *Server) didClose(glspCtx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	if err := s.documents.DidClose(uri); err != nil {
		return err
	}
	// Clear stale diagnostics for the closed document.
	glspCtx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) didSave(glspCtx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil
	}
	content := doc.Content()
	if params.Text != nil {
		content = *params.Text
	}
	s.publishDiagnostics(glspCtx, uri, content)
	return nil
}

// formatting handles textDocument/formatting with a single whole-document
// edit. Formatting never fails: on any internal error the document content
// is returned unchanged, so the edit is simply empty.
func (s *Server) formatting(glspCtx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil, nil
	}

	content := doc.Content()
	formatted := s.tool.FormatContent(context.Background(), content)
	if formatted == content {
		return nil, nil
	}

	return []protocol.TextEdit{
		{
			Range:   FullRange(content),
			NewText: formatted,
		},
	}, nil
}

func (s *Server) publishDiagnostics(glspCtx *glsp.Context, uri string, content string) {
	diags := s.tool.LintContent(context.Background(), content)
	glspCtx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: ToProtocolDiagnostics(content, diags),
	})
}

// FullRange covers the whole document, for whole-document replacement edits.
func FullRange(content string) protocol.Range {
	lines := document.SplitLines(content)
	end := protocol.Position{Line: protocol.UInteger(len(lines)), Character: 0}
	if n := len(lines); n > 0 && !endsWithNewline(lines[n-1]) {
		end = protocol.Position{
			Line:      protocol.UInteger(n - 1),
			Character: protocol.UInteger(position.UTF16Len(lines[n-1])),
		}
	}
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   end,
	}
}

func endsWithNewline(line string) bool {
	return len(line) > 0 && line[len(line)-1] == '\n'
}

// ToProtocolDiagnostics converts lint diagnostics into LSP diagnostics.
// Diagnostic columns are byte offsets; LSP characters are UTF-16 code units,
// so each column is converted against the line it points into.
func ToProtocolDiagnostics(content string, diags []diagnostics.Diagnostic) []protocol.Diagnostic {
	source := "ruff-cgx"
	lines := document.SplitLines(content)
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := severityFor(d.Severity)
		pd := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      protocol.UInteger(d.Line),
					Character: utf16Character(lines, d.Line, d.Column),
				},
				End: protocol.Position{
					Line:      protocol.UInteger(d.EndLine),
					Character: utf16Character(lines, d.EndLine, d.EndColumn),
				},
			},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		}
		if d.Code != "" {
			pd.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		out = append(out, pd)
	}
	return out
}

func utf16Character(lines []string, line, byteCol int) protocol.UInteger {
	if line < 0 || line >= len(lines) {
		return protocol.UInteger(max(byteCol, 0))
	}
	return protocol.UInteger(position.ByteOffsetToUTF16(lines[line], byteCol))
}

func severityFor(s diagnostics.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnostics.SeverityError:
		return protocol.DiagnosticSeverityError
	case diagnostics.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
