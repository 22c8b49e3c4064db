package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/cli/ui"
	"github.com/conduit-lang/propls/internal/properties"
)

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <name> <pattern>",
		Short: "Check whether a property key matches a catalog pattern",
		Long: `Check whether a property key matches a catalog pattern.

A "{*}" in the pattern matches exactly one map key of the name: a quoted key
such as "my.key" including its quotes, or an unquoted key up to the next dot
that is not escaped by a backslash. Everything else must match literally.`,
		Example: `  propls match quarkus.log.category.io.level 'quarkus.log.category.{*}.level'
  propls match 'quarkus.log.category."io.quarkus".level' 'quarkus.log.category.{*}.level'`,
		Args: cobra.ExactArgs(2),
		RunE: runMatch,
	}
}

type matchResult struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Match   bool   `json:"match"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	result := matchResult{
		Name:    args[0],
		Pattern: args[1],
		Match:   properties.Match(args[0], args[1]),
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return writeJSON(out, result)
	}

	if result.Match {
		ui.WriteSuccess(out, fmt.Sprintf("%s matches %s", result.Name, result.Pattern), noColor)
	} else {
		color.New(color.FgRed).Fprintf(out, "✗ %s does not match %s\n", result.Name, result.Pattern)
	}
	return nil
}
