package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/properties"
	"github.com/conduit-lang/propls/internal/snippets"
)

var (
	formatMode  string
	formatStart int
)

// NewFormatCommand creates the format command
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <pattern>",
		Short: "Render a property pattern for documentation or completion",
		Long: `Render the "{*}" wildcards of a property pattern.

Modes:
  markdown     escape wildcards as \{\*\}
  completion   turn wildcards into numbered snippet placeholders ${n:key}
  plain        replace wildcards with "key"`,
		Example: `  propls format 'quarkus.datasource.{*}.jdbc.url' --mode completion
  propls format 'quarkus.log.handler.{*}.{*}.level' --mode completion --start 3`,
		Args: cobra.ExactArgs(1),
		RunE: runFormat,
	}

	cmd.Flags().StringVar(&formatMode, "mode", "markdown", "Rendering: markdown, completion or plain")
	cmd.Flags().IntVar(&formatStart, "start", 1, "First placeholder index in completion mode")

	return cmd
}

type formatResult struct {
	Pattern              string `json:"pattern"`
	Mode                 string `json:"mode"`
	Text                 string `json:"text"`
	MappedParameterCount int    `json:"mappedParameterCount"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	var formatted properties.FormattedProperty
	switch formatMode {
	case "markdown":
		formatted = properties.FormatProperty(pattern, properties.MarkdownFormatter{})
	case "completion":
		if formatStart < 0 {
			return fmt.Errorf("--start must not be negative, got: %d", formatStart)
		}
		formatted = properties.FormatPropertyForCompletion(pattern, snippets.NewCounter(formatStart))
	case "plain":
		formatted = properties.FormatProperty(pattern, properties.WildcardFormatterFunc(func(_ int, b *strings.Builder) {
			b.WriteString(properties.CompletionMappedKey)
		}))
	default:
		return fmt.Errorf("unknown mode %q: use markdown, completion or plain", formatMode)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return writeJSON(out, formatResult{
			Pattern:              pattern,
			Mode:                 formatMode,
			Text:                 formatted.Name,
			MappedParameterCount: formatted.MappedParameterCount,
		})
	}

	fmt.Fprintln(out, formatted.Name)
	return nil
}
