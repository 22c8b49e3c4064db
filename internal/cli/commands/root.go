package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/propls/internal/cli/ui"
	"github.com/conduit-lang/propls/internal/util/fuzzy"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	// Global flags
	configDir    string
	catalogPaths []string
	rulesPath    string
	outputFormat string
	noColor      bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "propls",
		Short: "Configuration property catalog tooling and language server",
		Long: color.CyanString(`propls - configuration property tooling

propls resolves keys of properties files against a catalog of known
configuration properties. Catalog names may contain "{*}" wildcards that stand
for one map key, quoted ("a.b") or not.

Features:
  • Match keys against wildcard patterns
  • Resolve keys to their catalog entry
  • Render patterns for documentation and snippet completion
  • Enumerate allowed values
  • Language server for properties files`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			return validateOutputFormat(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "Directory holding propls.yml (default: nearest parent with one)")
	flags.StringSliceVar(&catalogPaths, "catalog", nil, "Catalog file, repeatable (overrides catalog.paths)")
	flags.StringVar(&rulesPath, "rules", "", "Values rules file (overrides rules.path)")
	flags.StringVar(&outputFormat, "format", "table", "Output format: table or json")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewMatchCommand())
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewFormatCommand())
	rootCmd.AddCommand(NewValuesCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewLSPCommand())

	return rootCmd
}

// outputFormats are the values accepted by --format.
var outputFormats = []string{"table", "json"}

func validateOutputFormat(errOut io.Writer) error {
	for _, f := range outputFormats {
		if outputFormat == f {
			return nil
		}
	}

	var suggestions []string
	if best := fuzzy.FindBestMatch(outputFormat, outputFormats, nil); best != "" {
		suggestions = []string{best}
	}
	fmt.Fprint(errOut, ui.ConfigError(fmt.Sprintf("Unknown output format '%s'.", outputFormat), suggestions, noColor))
	return fmt.Errorf("unknown output format %q: use table or json", outputFormat)
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the propls version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(out, "propls version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
