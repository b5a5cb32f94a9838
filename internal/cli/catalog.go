package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"drying-engine/internal/catalog"
)

type CatalogOptions struct {
	GlobalOptions
}

func NewCmdCatalog() *cobra.Command {
	o := &CatalogOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the equipment catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *CatalogOptions) Run(ctx context.Context, out io.Writer) error {
	c, err := o.Catalog()
	if err != nil {
		return err
	}

	switch o.Output {
	case yamlFormat:
		data, err := catalog.Marshal(c)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case jsonFormat:
		return printStructured(out, jsonFormat, c.Specs())
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tCAPACITY (L/day)\tAIRFLOW (CFM)\tAMPS")
	for _, spec := range c.Specs() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n",
			spec.ID, spec.Kind, blankIfZero(spec.RatedCapacityLitresPerDay), blankIfZero(spec.RatedAirflow), spec.AmpDraw)
	}
	return w.Flush()
}

func blankIfZero(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}
