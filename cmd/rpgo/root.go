package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/output"
	"github.com/rpgo/savings-projector/internal/server"
	"github.com/rpgo/savings-projector/internal/validation"
)

type globalOptions struct {
	verbose   bool
	format    string
	output    string
	outputDir string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "rpgo",
		Short:         "Project the growth of a retirement savings account",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log engine activity to stderr")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "console", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "write output to this file instead of stdout")
	root.PersistentFlags().StringVarP(&opts.outputDir, "output-dir", "d", "", "write timestamped report files into this directory (--format all writes every format)")

	root.AddCommand(
		newProjectCmd(opts),
		newCompareCmd(opts),
		newValidateCmd(),
		newExampleCmd(),
		newFormatsCmd(),
		newServeCmd(),
	)
	return root
}

func (o *globalOptions) logger(stderr io.Writer) calculation.Logger {
	if !o.verbose {
		return calculation.NopLogger{}
	}
	return calculation.NewWriterLogger(stderr, calculation.LevelDebug)
}

// emit formats report and writes it to --output or the command's stdout. With
// --output-dir, or --format all, it writes report files instead.
func (o *globalOptions) emit(cmd *cobra.Command, report *domain.ProjectionReport) error {
	if o.outputDir != "" || output.NormalizeFormatName(o.format) == "all" {
		if o.output != "" {
			return fmt.Errorf("--output cannot be combined with --output-dir or --format all")
		}
		files, err := output.GenerateReport(report, o.format, o.outputDir)
		for _, name := range files {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", name)
		}
		return err
	}
	f, err := output.Lookup(o.format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if o.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s report to %s\n", f.Name(), o.output)
	return nil
}

func newProjectCmd(opts *globalOptions) *cobra.Command {
	var (
		autofill  bool
		name      string
		birthDate string
		fields    = map[validation.Field]*string{}
	)
	flagNames := map[validation.Field]string{
		validation.CurrentAge:         "current-age",
		validation.RetirementAge:      "retirement-age",
		validation.CurrentSavings:     "current-savings",
		validation.AnnualContribution: "annual-contribution",
		validation.ExpectedReturn:     "expected-return",
		validation.TaxRate:            "tax-rate",
	}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a single projection from flags",
		Example: "  rpgo project --current-age 30 --retirement-age 65 --current-savings 50000 \\\n" +
			"    --annual-contribution 10000 --expected-return 7 --tax-rate 15\n" +
			"  rpgo project --autofill --format html -o projection.html\n" +
			"  rpgo project --autofill --format all -d reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := validation.NewForm()
			if autofill {
				form = validation.Autofill()
			}
			if birthDate != "" {
				age, _, err := calculation.AgeFromBirthDate(birthDate, "")
				if err != nil {
					return err
				}
				form = form.With(validation.CurrentAge, strconv.Itoa(age))
			}
			for _, f := range validation.Fields {
				if cmd.Flags().Changed(flagNames[f]) {
					form = form.With(f, *fields[f])
				}
			}
			in, err := form.Submit()
			if err != nil {
				return err
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(opts.logger(cmd.ErrOrStderr()))
			report, err := engine.RunScenarios(cmd.Context(), &domain.Configuration{
				Scenarios: []domain.Scenario{{Name: name, BirthDate: birthDate, Input: in}},
			})
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
	for _, f := range validation.Fields {
		fields[f] = new(string)
		cmd.Flags().StringVar(fields[f], flagNames[f], "", string(f))
	}
	cmd.Flags().BoolVar(&autofill, "autofill", false, "start from a typical saver (30, 65, 50000, 10000, 7%, 15%)")
	cmd.Flags().StringVar(&name, "name", "Projection", "scenario name shown in reports")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "derive the current age from a YYYY-MM-DD birth date")
	cmd.MarkFlagsMutuallyExclusive("birth-date", flagNames[validation.CurrentAge])
	return cmd
}

func newCompareCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <scenarios.yaml>",
		Short: "Project every scenario in a YAML file and compare them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine := calculation.NewProjectionEngine()
			engine.SetLogger(opts.logger(cmd.ErrOrStderr()))
			report, err := engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenarios.yaml>",
		Short: "Check a scenario file without projecting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scenario(s) OK\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example <file>",
		Short: "Write an example scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(cfg, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote example configuration to %s\n", args[0])
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintln(out, "Aliases:", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API (configured via RPGO_* environment variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			level, err := calculation.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := calculation.NewWriterLogger(cmd.ErrOrStderr(), level)
			return server.New(cfg, logger).Run(cmd.Context())
		},
	}
}
