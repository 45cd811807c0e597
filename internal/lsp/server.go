// Package lsp serves member reorganization to editors over the language server protocol.
package lsp

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/griffnb/core-maid/internal/membertype"
	"github.com/griffnb/core-maid/internal/reorganize"
)

// Name is reported to clients in the initialize result.
const Name = "core-maid-lsp"

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Settings is the "coreMaid" section clients send in workspace configuration
// or initialization options. Unset fields leave the current value alone.
type Settings struct {
	MemberTypes []string `json:"memberTypes"`
	Alphabetize *bool    `json:"alphabetize"`
	Regions     *bool    `json:"regions"`
}

// Server holds open documents and the member type settings used to format them.
type Server struct {
	version string
	store   *Store
	debug   Debugger

	mu       sync.RWMutex
	settings *membertype.Settings
	opts     reorganize.Options
}

// NewServer creates a server. A nil settings catalogue means the defaults.
func NewServer(version string, settings *membertype.Settings, opts reorganize.Options, debug Debugger) *Server {
	if settings == nil {
		settings = membertype.DefaultSettings()
	}
	return &Server{
		version:  version,
		store:    NewStore(),
		debug:    debug,
		settings: settings,
		opts:     opts,
	}
}

// Handler wires the server into a glsp protocol handler.
func (s *Server) Handler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		TextDocumentDidOpen:             s.textDocumentDidOpen,
		TextDocumentDidChange:           s.textDocumentDidChange,
		TextDocumentDidClose:            s.textDocumentDidClose,
		TextDocumentFormatting:          s.textDocumentFormatting,
		WorkspaceDidChangeConfiguration: s.workspaceDidChangeConfiguration,
	}
}

// Current returns the settings catalogue and options in effect.
func (s *Server) Current() (*membertype.Settings, reorganize.Options) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.opts
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.InitializationOptions != nil {
		s.applySettings(params.InitializationOptions)
	}

	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
		},
		DocumentFormattingProvider: true,
	}

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.store.Set(string(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	text, ok := extractFullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		return nil
	}
	s.store.Set(string(params.TextDocument.URI), text)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.store.Delete(string(params.TextDocument.URI))
	return nil
}

func (s *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	if !strings.HasSuffix(strings.ToLower(uri), ".go") {
		return []protocol.TextEdit{}, nil
	}

	text, ok := s.store.Get(uri)
	if !ok {
		return []protocol.TextEdit{}, nil
	}

	settings, opts := s.Current()
	out, err := reorganize.File([]byte(text), settings, opts)
	if err != nil {
		// half typed code does not parse, which is normal while editing
		s.printf("not reorganizing %s: %v", uri, err)
		return []protocol.TextEdit{}, nil
	}
	if string(out) == text {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range:   FullDocumentRange(text),
		NewText: string(out),
	}}, nil
}

func (s *Server) workspaceDidChangeConfiguration(ctx *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	s.applySettings(params.Settings)
	return nil
}

// applySettings accepts either {"coreMaid": {...}} or the section itself.
func (s *Server) applySettings(raw any) {
	b, err := json.Marshal(raw)
	if err != nil {
		s.printf("ignoring configuration: %v", err)
		return
	}

	var wrapped struct {
		CoreMaid *Settings `json:"coreMaid"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		s.printf("ignoring configuration: %v", err)
		return
	}
	section := wrapped.CoreMaid
	if section == nil {
		section = &Settings{}
		if err := json.Unmarshal(b, section); err != nil {
			s.printf("ignoring configuration: %v", err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if section.MemberTypes != nil {
		s.settings = membertype.LoadSettings(section.MemberTypes, s.debug)
	}
	if section.Alphabetize != nil {
		s.opts.Alphabetize = *section.Alphabetize
	}
	if section.Regions != nil {
		s.opts.Regions = *section.Regions
	}
}

func (s *Server) printf(format string, v ...interface{}) {
	if s.debug != nil {
		s.debug.Printf(format, v...)
	}
}

func extractFullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		// only full sync is advertised, a ranged edit cannot be applied to the store
		if typed.Range != nil {
			return "", false
		}
		return typed.Text, true
	default:
		return "", false
	}
}
