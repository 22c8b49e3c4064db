package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/propls/internal/properties"
)

func TestLoadFileJSON(t *testing.T) {
	metadata, err := LoadFile("testdata/quarkus.json")
	require.NoError(t, err)
	require.Len(t, metadata.Items, 3)
	require.Len(t, metadata.Hints, 1)

	port := metadata.Items[0]
	assert.Equal(t, "quarkus.http.port", port.Name)
	assert.Equal(t, "8080", port.DefaultValue)
	assert.Equal(t, "quarkus-vertx-http", port.ExtensionName)

	assert.Equal(t, "quarkus-agroal", metadata.Items[1].ExtensionName)
	assert.True(t, metadata.Items[2].IsBooleanType())
}

func TestLoadFileYAML(t *testing.T) {
	metadata, err := LoadFile("testdata/logging.yaml")
	require.NoError(t, err)
	require.Len(t, metadata.Items, 2)

	level := metadata.Items[0]
	assert.Equal(t, "quarkus.log.category.{*}.level", level.Name)
	assert.Equal(t, "log-level", level.HintName)
	assert.Equal(t, "quarkus-core", level.ExtensionName)

	hint := metadata.GetHint(level)
	require.NotNil(t, hint)
	assert.Len(t, hint.Values, 2)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("testdata/catalog.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile("testdata/missing.json")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	metadata, err := Decode(strings.NewReader(""), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, metadata.Items)

	_, err = Decode(strings.NewReader("{"), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"a.json", FormatJSON, false},
		{"a.yml", FormatYAML, false},
		{"A.YAML", FormatYAML, false},
		{"a.properties", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestMergeKeepsOrder(t *testing.T) {
	first := &properties.ConfigurationMetadata{Items: []*properties.ItemMetadata{{Name: "a.{*}.b"}}}
	second := &properties.ConfigurationMetadata{Items: []*properties.ItemMetadata{{Name: "a.x.b"}}}

	merged := Merge(first, nil, second)
	require.Len(t, merged.Items, 2)

	p, err := properties.FindProperty("a.x.b", merged)
	require.NoError(t, err)
	assert.Same(t, first.Items[0], p)
}

func TestExtensionName(t *testing.T) {
	tests := []struct {
		location string
		expected string
	}{
		{"C:/Users/azerr/.m2/repository/io/quarkus/quarkus-core/0.21.1/quarkus-core-0.21.1.jar", "quarkus-core"},
		{"/repo/io/quarkus/quarkus-arc-deployment/0.21.1/quarkus-arc-deployment-0.21.1.jar", "quarkus-arc"},
		{"/repo/lib/plain.jar", "plain"},
		{"/my-repo/lib/plain.jar", ""},
		{"/repo/lib/classes", ""},
		{"plain-1.0.jar", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtensionName(tt.location))
		})
	}
}
