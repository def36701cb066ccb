// Package lsp serves editor diagnostics for blueprints and Java sources
// over the Language Server Protocol.
package lsp

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jcm/blueprint"
	"github.com/dhamidi/jcm/classpath"
	"github.com/dhamidi/jcm/codemodel"
	"github.com/dhamidi/jcm/syntax"
)

const lsName = "jcm"

var log = commonlog.GetLogger("jcm.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	loader  classpath.Loader

	mu   sync.Mutex
	docs map[string][]byte
}

// NewServer returns a server that resolves referenced classes with loader.
func NewServer(version string, loader classpath.Loader) *Server {
	ls := &Server{
		version: version,
		loader:  loader,
		docs:    map[string][]byte{},
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKind(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	ls.mu.Lock()
	ls.docs[uri] = content
	ls.mu.Unlock()

	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("%s: %s", uri, err)
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnose(path, content, ls.loader),
	})
}

// textDocumentCompletion offers class names in blueprints: the types the
// open blueprint declares followed by the classes the loader knows about.
func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	ls.mu.Lock()
	content, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	path, err := uriToPath(params.TextDocument.URI)
	if !ok || err != nil || blueprintFormat(path) == "" {
		return nil, nil
	}

	var items []protocol.CompletionItem
	kind := protocol.CompletionItemKindClass
	for _, name := range CompletionNames(path, content) {
		detail := name
		items = append(items, protocol.CompletionItem{
			Label:  name[strings.LastIndexByte(name, '.')+1:],
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items, nil
}

// CompletionNames lists the fully qualified names worth completing in a
// blueprint: its own types first, then the built-in classes.
func CompletionNames(path string, content []byte) []string {
	var names []string
	if bp, err := blueprint.Read(bytes.NewReader(content), blueprintFormat(path)); err == nil {
		for i := range bp.Types {
			names = append(names, bp.Types[i].FullName(bp.Package))
		}
	}
	var known []string
	for name := range classpath.Bootstrap() {
		known = append(known, strings.ReplaceAll(name, "$", "."))
	}
	sort.Strings(known)
	return append(names, known...)
}

// Diagnose checks one document. Java sources are parsed; blueprints are
// decoded, validated and generated into a scratch model.
func Diagnose(path string, content []byte, loader classpath.Loader) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	if strings.HasSuffix(path, ".java") {
		problems, err := syntax.Check(path, content)
		if err != nil {
			return append(diags, diagnostic(0, 0, err.Error()))
		}
		for _, p := range problems {
			msg := "unexpected " + p.Text
			if p.Missing {
				msg = "missing " + p.Text
			}
			diags = append(diags, diagnostic(p.Line-1, p.Column-1, msg))
		}
		return diags
	}

	format := blueprintFormat(path)
	if format == "" {
		return diags
	}
	bp, err := blueprint.Read(bytes.NewReader(content), format)
	if err != nil {
		return append(diags, diagnostic(0, 0, err.Error()))
	}
	bp.Source = path
	m := codemodel.New(codemodel.WithClassLoader(loader))
	if err := blueprint.Generate(context.Background(), m, bp); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			diags = append(diags, diagnostic(0, 0, line))
		}
	}
	return diags
}

func diagnostic(line, col int, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	pos := protocol.Position{Line: protocol.UInteger(max(line, 0)), Character: protocol.UInteger(max(col, 0))}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

func blueprintFormat(path string) string {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	}
	return ""
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
