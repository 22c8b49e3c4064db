package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/cli/ui"
	"github.com/conduit-lang/propls/internal/model"
	"github.com/conduit-lang/propls/internal/properties"
	"github.com/conduit-lang/propls/internal/util/fuzzy"
)

// NewValuesCommand creates the values command
func NewValuesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "values <name>",
		Short: "List the allowed values of a property",
		Long: `List the allowed values of a property.

Values come from the catalog hint of the property, then from the boolean
convention (true, false), then from the values rules.`,
		Example: `  propls values quarkus.log.level
  propls values quarkus.datasource.users.db-kind --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runValues,
	}
}

func runValues(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	_, name := model.SplitProfile(args[0])
	item, err := properties.FindProperty(name, env.metadata)
	if err != nil {
		return err
	}
	if item == nil {
		suggestions := fuzzy.FindSimilar(name, catalogNames(env.metadata), nil)
		fmt.Fprint(cmd.ErrOrStderr(), ui.PropertyNotFoundError(name, suggestions, noColor))
		return fmt.Errorf("unknown property: %s", name)
	}

	enums := properties.GetEnums(item, env.metadata, nil, env.rules)

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		if enums == nil {
			enums = []properties.ValueHint{}
		}
		return writeJSON(out, enums)
	}

	if len(enums) == 0 {
		fmt.Fprint(out, ui.Info(fmt.Sprintf("%s accepts any value", item.Name), noColor))
		return nil
	}

	table := ui.NewTable(out, []string{"Value", "Description"}, &ui.TableOptions{NoColor: noColor, MaxCellWidth: 80})
	for _, e := range enums {
		table.AddRow(e.Value, e.Description)
	}
	table.Render()
	return nil
}
