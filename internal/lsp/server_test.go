package lsp

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/conduit-lang/propls/internal/tooling"
)

const testCatalog = `{
  "properties": [
    {"name": "quarkus.http.port", "type": "int", "description": "The HTTP port", "defaultValue": "8080"},
    {"name": "quarkus.datasource.{*}.jdbc.url", "type": "java.lang.String", "description": "The datasource URL"},
    {"name": "quarkus.ssl.native", "type": "boolean"}
  ]
}`

const testDocURI = "file:///app/application.properties"

// fakeClient records published diagnostics.
type fakeClient struct {
	protocol.Client

	mu        sync.Mutex
	published []*protocol.PublishDiagnosticsParams
}

func (c *fakeClient) PublishDiagnostics(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, params)
	return nil
}

func (c *fakeClient) last() *protocol.PublishDiagnosticsParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.published) == 0 {
		return nil
	}
	return c.published[len(c.published)-1]
}

func (c *fakeClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.published)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestServer(t *testing.T, opts Options) (*Server, *fakeClient) {
	t.Helper()
	if opts.CatalogPaths == nil {
		opts.CatalogPaths = []string{writeFile(t, t.TempDir(), "catalog.json", testCatalog)}
	}
	server, err := NewServer(opts)
	require.NoError(t, err)

	client := &fakeClient{}
	server.client = client
	return server, client
}

func call(t *testing.T, s *Server, method string, params interface{}) (interface{}, error) {
	t.Helper()
	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), method, params)
	require.NoError(t, err)

	var (
		result   interface{}
		replyErr error
	)
	reply := func(_ context.Context, r interface{}, e error) error {
		result, replyErr = r, e
		return nil
	}
	require.NoError(t, s.handler()(context.Background(), reply, req))
	return result, replyErr
}

func notify(t *testing.T, s *Server, method string, params interface{}) {
	t.Helper()
	req, err := jsonrpc2.NewNotification(method, params)
	require.NoError(t, err)

	reply := func(context.Context, interface{}, error) error { return nil }
	require.NoError(t, s.handler()(context.Background(), reply, req))
}

func openDocument(t *testing.T, s *Server, text string) {
	t.Helper()
	notify(t, s, protocol.MethodTextDocumentDidOpen, protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     testDocURI,
			Version: 1,
			Text:    text,
		},
	})
}

func TestServerInitialization(t *testing.T) {
	server, _ := newTestServer(t, Options{Snippets: true})

	require.NotNil(t, server.api)
	require.NotNil(t, server.store)
	require.NotNil(t, server.logger)

	caps := server.capabilities
	require.NotNil(t, caps.CompletionProvider)
	assert.Equal(t, []string{".", "=", "%"}, caps.CompletionProvider.TriggerCharacters)
	assert.Equal(t, true, caps.HoverProvider)
	assert.Equal(t, true, caps.DocumentSymbolProvider)
}

func TestNewServerInvalidRules(t *testing.T) {
	rules := writeFile(t, t.TempDir(), "rules.yaml", "rules:\n  - matcher: {}\n    values:\n      - value: a\n")

	_, err := NewServer(Options{RulesPath: rules})
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	server, _ := newTestServer(t, Options{Snippets: true, Version: "1.2.3"})

	result, err := call(t, server, protocol.MethodInitialize, protocol.InitializeParams{
		RootURI: "file:///workspace",
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				Completion: &protocol.CompletionTextDocumentClientCapabilities{
					CompletionItem: &protocol.CompletionTextDocumentClientCapabilitiesItem{
						SnippetSupport: true,
					},
				},
			},
		},
	})
	require.NoError(t, err)

	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, ServerName, initResult.ServerInfo.Name)
	assert.Equal(t, "1.2.3", initResult.ServerInfo.Version)
	assert.Equal(t, "/workspace", server.workspaceRoot)
}

func TestInitializeWithoutSnippetSupport(t *testing.T) {
	server, _ := newTestServer(t, Options{Snippets: true})

	_, err := call(t, server, protocol.MethodInitialize, protocol.InitializeParams{})
	require.NoError(t, err)

	openDocument(t, server, "")
	result, err := call(t, server, protocol.MethodTextDocumentCompletion, protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testDocURI},
		},
	})
	require.NoError(t, err)

	for _, item := range result.(protocol.CompletionList).Items {
		assert.Equal(t, protocol.InsertTextFormatPlainText, item.InsertTextFormat, item.Label)
	}
}

func TestUnknownMethod(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	_, err := call(t, server, "textDocument/definition", nil)
	assert.ErrorIs(t, err, jsonrpc2.ErrMethodNotFound)
}

func TestDocumentSyncPublishesDiagnostics(t *testing.T) {
	server, client := newTestServer(t, Options{})

	openDocument(t, server, "quarkus.http.prot=8080")
	published := client.last()
	require.NotNil(t, published)
	assert.Equal(t, protocol.DocumentURI(testDocURI), published.URI)
	require.Len(t, published.Diagnostics, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, published.Diagnostics[0].Severity)
	assert.Equal(t, tooling.CodeUnknownProperty, published.Diagnostics[0].Code)
	assert.Equal(t, tooling.DefaultSource, published.Diagnostics[0].Source)

	notify(t, server, protocol.MethodTextDocumentDidChange, protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testDocURI},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "quarkus.http.port=8080"}},
	})
	published = client.last()
	require.NotNil(t, published)
	assert.Empty(t, published.Diagnostics)

	doc, ok := server.api.GetDocument(testDocURI)
	require.True(t, ok)
	assert.Equal(t, 2, doc.Version)

	notify(t, server, protocol.MethodTextDocumentDidSave, protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testDocURI},
	})
	assert.Equal(t, 3, client.count())

	notify(t, server, protocol.MethodTextDocumentDidClose, protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testDocURI},
	})
	_, ok = server.api.GetDocument(testDocURI)
	assert.False(t, ok)
}

func TestReloadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catalog.json", `{"properties": [{"name": "a.b"}]}`)
	server, client := newTestServer(t, Options{CatalogPaths: []string{path}})

	openDocument(t, server, "c.d=1")
	require.Len(t, client.last().Diagnostics, 1)

	writeFile(t, dir, "catalog.json", `{"properties": [{"name": "c.d"}]}`)
	require.NoError(t, server.reload(context.Background(), server.store.Paths()))
	assert.Empty(t, client.last().Diagnostics)
}

func TestReloadRules(t *testing.T) {
	dir := t.TempDir()
	rules := writeFile(t, dir, "rules.yaml", "rules:\n  - matcher:\n      names: [quarkus.http.port]\n    values:\n      - value: \"80\"\n")
	server, client := newTestServer(t, Options{RulesPath: rules})

	openDocument(t, server, "quarkus.http.port=8080")
	require.Len(t, client.last().Diagnostics, 1)

	writeFile(t, dir, "rules.yaml", "rules:\n  - matcher:\n      names: [quarkus.http.port]\n    values:\n      - value: \"8080\"\n")
	require.NoError(t, server.reload(context.Background(), []string{server.opts.RulesPath}))
	assert.Empty(t, client.last().Diagnostics)
}

func TestReloadBrokenRulesStillReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catalog.json", `{"properties": [{"name": "a.b"}]}`)
	rules := writeFile(t, dir, "rules.yaml", "rules:\n  - matcher:\n      names: [a.b]\n    values:\n      - value: x\n")
	server, client := newTestServer(t, Options{CatalogPaths: []string{path}, RulesPath: rules})

	openDocument(t, server, "c.d=1")
	require.Len(t, client.last().Diagnostics, 1)
	published := client.count()

	writeFile(t, dir, "rules.yaml", "rules: [")
	writeFile(t, dir, "catalog.json", `{"properties": [{"name": "c.d"}]}`)
	err := server.reload(context.Background(), []string{server.opts.RulesPath, server.store.Paths()[0]})
	require.Error(t, err)

	assert.Greater(t, client.count(), published)
	assert.Empty(t, client.last().Diagnostics)
}

func TestWatcherReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catalog.json", `{"properties": [{"name": "a.b"}]}`)
	server, client := newTestServer(t, Options{CatalogPaths: []string{path}, Watch: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, server.startWatcher(ctx))
	defer func() { _ = server.watcher.Stop() }()

	openDocument(t, server, "c.d=1")
	require.Len(t, client.last().Diagnostics, 1)

	writeFile(t, dir, "catalog.json", `{"properties": [{"name": "c.d"}]}`)
	assert.Eventually(t, func() bool {
		last := client.last()
		return last != nil && len(last.Diagnostics) == 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestConvertSeverity(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.DiagnosticSeverity
		expected protocol.DiagnosticSeverity
	}{
		{"Error severity", tooling.DiagnosticSeverityError, protocol.DiagnosticSeverityError},
		{"Warning severity", tooling.DiagnosticSeverityWarning, protocol.DiagnosticSeverityWarning},
		{"Info severity", tooling.DiagnosticSeverityInfo, protocol.DiagnosticSeverityInformation},
		{"Hint severity", tooling.DiagnosticSeverityHint, protocol.DiagnosticSeverityHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, convertSeverity(tt.input))
		})
	}
}
