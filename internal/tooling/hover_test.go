package tooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/propls/internal/properties"
)

func TestHoverOnKey(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "%dev.quarkus.http.port=9090", 1)

	hover, err := api.GetHover(testURI, Position{Line: 0, Character: 8})
	require.NoError(t, err)
	require.NotNil(t, hover)

	assert.Contains(t, hover.Contents, "**quarkus.http.port**")
	assert.Contains(t, hover.Contents, "The HTTP port")
	assert.Contains(t, hover.Contents, " * Profile: `dev`")
	assert.Contains(t, hover.Contents, " * Type: `int`")
	assert.Contains(t, hover.Contents, " * Default: `8080`")
	assert.Contains(t, hover.Contents, " * Value: `9090`")
	assert.Contains(t, hover.Contents, " * Extension: `quarkus-vertx-http`")
	assert.Contains(t, hover.Contents, " * Source: `io.quarkus.vertx.http.runtime.HttpConfiguration#port`")
	assert.Equal(t, Range{End: Position{Character: 22}}, hover.Range)
}

func TestHoverOnMappedKey(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "quarkus.datasource.\"my.db\".jdbc.url=jdbc:h2:mem", 1)

	hover, err := api.GetHover(testURI, Position{Line: 0, Character: 3})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents, `**quarkus.datasource.\{\*\}.jdbc.url**`)
}

func TestHoverOnValue(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "quarkus.datasource.default.db-kind=h2\nquarkus.log.level=DEBUG", 1)

	hover, err := api.GetHover(testURI, Position{Line: 0, Character: 36})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, "**h2**\n\nH2 in-memory database", hover.Contents)

	hover, err = api.GetHover(testURI, Position{Line: 1, Character: 20})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents, "**DEBUG**")
}

func TestHoverNothing(t *testing.T) {
	api := newTestAPI()
	api.OpenDocument(testURI, "# comment\nunknown.key=1\nquarkus.http.port=8080", 1)

	tests := []struct {
		name string
		pos  Position
	}{
		{"comment", Position{Line: 0, Character: 3}},
		{"unknown property", Position{Line: 1, Character: 3}},
		{"value without enums", Position{Line: 2, Character: 19}},
		{"past the end", Position{Line: 9, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hover, err := api.GetHover(testURI, tt.pos)
			require.NoError(t, err)
			assert.Nil(t, hover)
		})
	}
}

func TestPropertyDocumentation(t *testing.T) {
	item := &properties.ItemMetadata{Name: "a.b", Required: true, SourceType: "com.Example", SourceMethod: "b()"}

	doc := propertyDocumentation(item, "", "")
	assert.Equal(t, "**a.b**\n\n * Required\n * Source: `com.Example#b()`", doc)
}
