package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/cli/ui"
	"github.com/conduit-lang/propls/internal/model"
	"github.com/conduit-lang/propls/internal/properties"
	"github.com/conduit-lang/propls/internal/util/fuzzy"
)

var resolveAll bool

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Find the catalog property of a key",
		Long: `Find the catalog property a properties file key refers to.

Catalog entries are tried in order and the first matching one wins. A profile
prefix such as "%dev." is ignored. When nothing matches, the closest catalog
names are suggested.`,
		Example: `  propls resolve quarkus.datasource.users.jdbc.url
  propls resolve %dev.quarkus.http.port --format json
  propls resolve quarkus.log.category.io.level --all`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().BoolVar(&resolveAll, "all", false, "Show every matching catalog entry, not only the first")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	_, name := model.SplitProfile(args[0])
	found, err := properties.FindProperties(name, env.metadata)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		suggestions := fuzzy.FindSimilar(name, catalogNames(env.metadata), nil)
		fmt.Fprint(cmd.ErrOrStderr(), ui.PropertyNotFoundError(name, suggestions, noColor))
		return fmt.Errorf("unknown property: %s", name)
	}
	if !resolveAll {
		found = found[:1]
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		if resolveAll {
			return writeJSON(out, found)
		}
		return writeJSON(out, found[0])
	}

	for i, item := range found {
		if i > 0 {
			fmt.Fprintln(out)
		}
		kv := ui.NewKeyValueTable(out, noColor)
		kv.AddRow("Property", item.Name)
		kv.AddRow("Match", describeMatch(name, item))
		kv.AddRow("Type", item.Type)
		kv.AddRow("Description", item.Description)
		kv.AddRow("Default", item.DefaultValue)
		kv.AddRow("Extension", item.ExtensionName)
		if item.Required {
			kv.AddRow("Required", "yes")
		}
		kv.Render()
	}
	return nil
}

func catalogNames(metadata *properties.ConfigurationMetadata) []string {
	names := make([]string, 0, len(metadata.Properties()))
	for _, item := range metadata.Properties() {
		if item != nil {
			names = append(names, item.Name)
		}
	}
	return names
}

// describeMatch tells how name matched the catalog entry.
func describeMatch(name string, item *properties.ItemMetadata) string {
	if item.Name == name {
		return "exact"
	}
	return fmt.Sprintf("%d map key(s)", properties.CountMappedKeys(item.Name))
}
