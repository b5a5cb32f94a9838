package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"drying-engine/internal/drying"
	"drying-engine/internal/validation"
)

type AssessOptions struct {
	GlobalOptions

	InputFile string
}

func DefaultAssessOptions() *AssessOptions {
	return &AssessOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdAssess() *cobra.Command {
	o := DefaultAssessOptions()
	cmd := &cobra.Command{
		Use:   "assess -f FILE",
		Short: "Run a full drying assessment from a YAML or JSON input file.",
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

func (o *AssessOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.InputFile, "file", "f", o.InputFile, "Assessment input, \"-\" for stdin")
}

func (o *AssessOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.InputFile == "" {
		return fmt.Errorf("an input file is required, use -f")
	}
	return nil
}

func (o *AssessOptions) Run(ctx context.Context, out io.Writer) error {
	in, err := readInput(o.InputFile)
	if err != nil {
		return err
	}

	if err := validation.New().Struct(&in); err != nil {
		return err
	}

	engine, err := o.Engine()
	if err != nil {
		return err
	}

	result, err := engine.Run(in)
	if err != nil {
		return err
	}

	if o.Output == textFormat {
		return printAssessment(out, result)
	}
	return printStructured(out, o.Output, result)
}

func readInput(path string) (drying.AssessmentInput, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return drying.AssessmentInput{}, fmt.Errorf("reading input: %w", err)
	}

	var in drying.AssessmentInput
	if err := yaml.UnmarshalStrict(data, &in); err != nil {
		return drying.AssessmentInput{}, fmt.Errorf("parsing input: %w", err)
	}
	return in, nil
}
