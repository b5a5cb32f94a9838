package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"drying-engine/internal/drying"
	"drying-engine/internal/models"
)

type PsychroOptions struct {
	GlobalOptions

	Temperature float64
	Humidity    float64
	System      string
}

func DefaultPsychroOptions() *PsychroOptions {
	return &PsychroOptions{
		GlobalOptions: DefaultGlobalOptions(),
		System:        string(models.SystemOpen),
	}
}

func NewCmdPsychro() *cobra.Command {
	o := DefaultPsychroOptions()
	cmd := &cobra.Command{
		Use:   "psychro --temp C --rh PCT [--system OPEN|CLOSED]",
		Short: "Classify one ambient reading.",
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
	_ = cmd.MarkFlagRequired("temp")
	_ = cmd.MarkFlagRequired("rh")
	return cmd
}

func (o *PsychroOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.Float64Var(&o.Temperature, "temp", o.Temperature, "Ambient temperature in °C")
	fs.Float64Var(&o.Humidity, "rh", o.Humidity, "Relative humidity in percent")
	fs.StringVar(&o.System, "system", o.System, "Chamber type: OPEN or CLOSED")
}

func (o *PsychroOptions) Run(ctx context.Context, out io.Writer) error {
	system, err := models.ParseSystemType(o.System)
	if err != nil {
		return err
	}

	engine, err := o.Engine()
	if err != nil {
		return err
	}

	reading, err := engine.Assess(drying.Ambient{
		TemperatureCelsius:      o.Temperature,
		RelativeHumidityPercent: o.Humidity,
		SystemType:              system,
	})
	if err != nil {
		return err
	}

	if o.Output == textFormat {
		_, err := fmt.Fprintf(out, "Drying index: %.1f (%s)\n", reading.DryingIndex, reading.Status)
		return err
	}
	return printStructured(out, o.Output, reading)
}
