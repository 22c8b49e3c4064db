package tooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionByLabel(items []CompletionItem, label string) (CompletionItem, bool) {
	for _, item := range items {
		if item.Label == label {
			return item, true
		}
	}
	return CompletionItem{}, false
}

func TestKeyCompletions(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "quarkus.http.port=8080\nquark", 1)

	items, err := api.GetCompletions(testURI, Position{Line: 1, Character: 5})
	require.NoError(t, err)

	_, found := completionByLabel(items, "quarkus.http.port")
	assert.False(t, found, "properties already defined are not proposed again")

	url, found := completionByLabel(items, "quarkus.datasource.{*}.jdbc.url")
	require.True(t, found)
	assert.Equal(t, "quarkus.datasource.${1:key}.jdbc.url=$0", url.InsertText)
	assert.Equal(t, CompletionKindSnippet, url.Kind)
	assert.True(t, url.Snippet)
	assert.Equal(t, Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 5}}, url.Range)
	assert.Contains(t, url.Documentation, `**quarkus.datasource.\{\*\}.jdbc.url**`)

	kind, found := completionByLabel(items, "quarkus.datasource.{*}.db-kind")
	require.True(t, found)
	assert.Equal(t, "quarkus.datasource.${1:key}.db-kind=${2|h2,postgresql|}", kind.InsertText)

	ssl, found := completionByLabel(items, "quarkus.ssl.native")
	require.True(t, found)
	assert.Equal(t, "quarkus.ssl.native=${1|true,false|}", ssl.InsertText)

	level, found := completionByLabel(items, "quarkus.log.level")
	require.True(t, found)
	assert.Contains(t, level.InsertText, "${1|OFF,FATAL,ERROR,WARN,INFO,DEBUG,TRACE,ALL|}")
}

func TestKeyCompletionsDefaultValue(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "", 1)

	items, err := api.GetCompletions(testURI, Position{Line: 0, Character: 0})
	require.NoError(t, err)

	port, found := completionByLabel(items, "quarkus.http.port")
	require.True(t, found)
	assert.Equal(t, "quarkus.http.port=${1:8080}", port.InsertText)
	assert.Equal(t, "int", port.Detail)
}

func TestKeyCompletionsWithoutSnippets(t *testing.T) {
	api := newTestAPI()
	api.SetSnippetsEnabled(false)
	api.OpenDocument(testURI, "", 1)

	items, err := api.GetCompletions(testURI, Position{})
	require.NoError(t, err)

	url, found := completionByLabel(items, "quarkus.datasource.{*}.jdbc.url")
	require.True(t, found)
	assert.Equal(t, "quarkus.datasource.key.jdbc.url=", url.InsertText)
	assert.Equal(t, CompletionKindProperty, url.Kind)
	assert.False(t, url.Snippet)

	port, found := completionByLabel(items, "quarkus.http.port")
	require.True(t, found)
	assert.Equal(t, "quarkus.http.port=8080", port.InsertText)
}

func TestKeyCompletionsWithProfile(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "quarkus.http.port=8080\n%dev.quar", 1)

	items, err := api.GetCompletions(testURI, Position{Line: 1, Character: 9})
	require.NoError(t, err)

	port, found := completionByLabel(items, "%dev.quarkus.http.port")
	require.True(t, found, "a property defined without profile may be redefined for a profile")
	assert.Equal(t, "%dev.quarkus.http.port=${1:8080}", port.InsertText)
}

func TestMappedPropertiesAreAlwaysProposed(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "quarkus.datasource.{*}.jdbc.url=x\n", 1)

	items, err := api.GetCompletions(testURI, Position{Line: 1, Character: 0})
	require.NoError(t, err)

	_, found := completionByLabel(items, "quarkus.datasource.{*}.jdbc.url")
	assert.True(t, found)
}

func TestValueCompletions(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "quarkus.datasource.mydb.db-kind=\nquarkus.ssl.native = \nquarkus.http.port=", 1)

	items, err := api.GetCompletions(testURI, Position{Line: 0, Character: 32})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "h2", items[0].Label)
	assert.Equal(t, "H2 in-memory database", items[0].Documentation)
	assert.Equal(t, CompletionKindValue, items[0].Kind)
	assert.Equal(t, "postgresql", items[1].Label)
	assert.Less(t, items[0].SortText, items[1].SortText)

	items, err = api.GetCompletions(testURI, Position{Line: 1, Character: 20})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "true", items[0].Label)
	assert.Equal(t, "false", items[1].Label)

	items, err = api.GetCompletions(testURI, Position{Line: 2, Character: 18})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCompletionsInComment(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "# quarkus", 1)

	items, err := api.GetCompletions(testURI, Position{Line: 0, Character: 9})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = api.GetCompletions(testURI, Position{Line: 5, Character: 0})
	require.NoError(t, err)
	assert.Empty(t, items)
}
