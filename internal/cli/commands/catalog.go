package commands

import (
	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/cli/ui"
	"github.com/conduit-lang/propls/internal/properties"
)

var catalogMapped bool

// NewCatalogCommand creates the catalog command group
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the property catalog",
		Long: `Inspect the property catalog configured in propls.yml.

Catalog files are JSON or YAML documents with "properties" and "hints" lists.
Files are merged in order; earlier entries win when several match a key.`,
	}

	cmd.AddCommand(newCatalogListCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog properties",
		Example: `  propls catalog list
  propls catalog list --mapped
  propls catalog list --catalog target/quarkus-metadata.json --format json`,
		Args: cobra.NoArgs,
		RunE: runCatalogList,
	}

	cmd.Flags().BoolVar(&catalogMapped, "mapped", false, "Only list properties with map keys")

	return cmd
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	items := make([]*properties.ItemMetadata, 0, len(env.metadata.Items))
	for _, item := range env.metadata.Properties() {
		if item == nil || (catalogMapped && !item.IsMapped()) {
			continue
		}
		items = append(items, item)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		return writeJSON(out, items)
	}

	table := ui.NewTable(out, []string{"Name", "Type", "Default", "Extension"}, &ui.TableOptions{NoColor: noColor, MaxCellWidth: 60})
	for _, item := range items {
		table.AddRow(item.Name, item.Type, item.DefaultValue, item.ExtensionName)
	}
	table.Render()
	return nil
}
