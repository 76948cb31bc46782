package catalog

import (
	"fmt"
	"html"
	"io"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"apmdigest/internal/domain/localization"
	"apmdigest/internal/interfaces/cli/bootstrap"
)

var (
	configPath string
	asTOML     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog <locale>",
		Short: "Print the resolved label catalog for a locale",
		Long: `Resolve the digest labels for a locale the same way a run does and print them.
With --toml the output is a translation document that can be placed in the localization directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runCatalog,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print unescaped values as a TOML translation document")

	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Load(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	c := app.Resolver().Resolve(cmd.Context(), args[0])

	if asTOML {
		return WriteTOML(cmd.OutOrStdout(), c)
	}
	return WriteTable(cmd.OutOrStdout(), c)
}

// WriteTable prints one "key  value" line per label, values as rendered.
func WriteTable(w io.Writer, c localization.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range localization.Keys() {
		fmt.Fprintf(tw, "%s\t%s\n", k, c.Get(k))
	}
	return tw.Flush()
}

// WriteTOML prints the catalog as a flat TOML document with HTML entities
// decoded, so reading it back yields the same catalog.
func WriteTOML(w io.Writer, c localization.Catalog) error {
	doc := make(map[string]string, len(localization.Keys()))
	for _, k := range localization.Keys() {
		doc[k.String()] = html.UnescapeString(c.Get(k))
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	_, err = w.Write(data)
	return err
}
