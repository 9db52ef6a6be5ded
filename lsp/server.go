// Package lsp implements a language server for CGX single-file components.
// It formats documents on request and publishes lint diagnostics whenever a
// document is opened, changed, or saved.
package lsp

import (
	cgx "github.com/fork-tongue/ruff-cgx"
	"github.com/fork-tongue/ruff-cgx/internal/documents"
	"github.com/fork-tongue/ruff-cgx/internal/log"
	"github.com/fork-tongue/ruff-cgx/internal/version"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const serverName = "ruff-cgx"

// Server wires document sync to the formatter and linter over LSP.
type Server struct {
	documents  *documents.Manager
	tool       *cgx.Tool
	glspServer *server.Server
}

// NewServer creates an LSP server around the given tool.
func NewServer(tool *cgx.Tool) *Server {
	s := &Server{
		documents: documents.NewManager(),
		tool:      tool,
	}

	handler := protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentDidSave:    s.didSave,
		TextDocumentFormatting: s.formatting,
	}

	s.glspServer = server.NewServer(&handler, serverName, false)
	return s
}

// RunStdio starts the server on stdin/stdout and blocks until the client
// disconnects.
func (s *Server) RunStdio() error {
	log.Info("starting %s %s on stdio", serverName, version.GetVersion())
	return s.glspServer.RunStdio()
}

// Documents returns the document manager, exposed for tests.
func (s *Server) Documents() *documents.Manager {
	return s.documents
}

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		log.Info("initializing for client %s", params.ClientInfo.Name)
	}

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
			Save:      boolPtr(true),
		},
		DocumentFormattingProvider: true,
	}

	v := version.GetVersion()
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &v,
		},
	}, nil
}

func (s *Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	log.Info("shutting down")
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
