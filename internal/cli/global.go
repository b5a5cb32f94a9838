// Package cli implements the drycalc command line.
package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"drying-engine/internal/catalog"
	"drying-engine/internal/drying"
)

const (
	textFormat = "text"
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var legalOutputTypes = []string{textFormat, jsonFormat, yamlFormat}

// GlobalOptions are shared by every subcommand that runs the engine
type GlobalOptions struct {
	ConfigFile  string
	CatalogFile string
	Output      string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Output: textFormat,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Engine constants YAML overlaid on the reference configuration")
	fs.StringVar(&o.CatalogFile, "catalog", o.CatalogFile, "Equipment catalog YAML; the built-in reference catalog when empty")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.Output = strings.ToLower(o.Output)
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if !slices.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// Catalog loads the selected equipment catalog
func (o *GlobalOptions) Catalog() (*catalog.Catalog, error) {
	if o.CatalogFile == "" {
		return catalog.Reference(), nil
	}
	return catalog.LoadFile(o.CatalogFile)
}

// Engine builds an engine from the selected configuration and catalog
func (o *GlobalOptions) Engine() (*drying.Engine, error) {
	cfg, err := drying.LoadConfig(o.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading engine configuration: %w", err)
	}

	c, err := o.Catalog()
	if err != nil {
		return nil, fmt.Errorf("loading equipment catalog: %w", err)
	}

	return drying.New(cfg, c)
}

// NewRootCommand assembles the drycalc command tree writing to out
func NewRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "drycalc",
		Short:         "drycalc sizes drying equipment for water-damage jobs.",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(out)

	cmd.AddCommand(NewCmdAssess())
	cmd.AddCommand(NewCmdPsychro())
	cmd.AddCommand(NewCmdCatalog())

	return cmd
}
