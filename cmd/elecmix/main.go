// Package main provides the CLI entry point for elecmix.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/elecmix-go/pkg/elecmix"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/output"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/preview"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/workbook"
)

var (
	outputPath   string
	format       string
	dpi          float64
	width        float64
	height       float64
	configPath   string
	sheet        string
	workbookPath string
	panelsDir    string
	show         bool
	verbose      bool

	indicator string
	pretty    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := elecmix.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "elecmix [input.csv|input.xlsx]",
		Short: "Render the electricity production mix report",
		Long: `elecmix reads a World Development Indicators export and renders a
five-panel report on electricity production by source.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", defaults.Output, "Report image path")
	flags.StringVar(&format, "format", "", "Image format: png, jpg, tiff, svg, pdf (default: from output extension)")
	flags.Float64Var(&dpi, "dpi", defaults.DPI, "Resolution for raster formats")
	flags.Float64Var(&width, "width", defaults.Width, "Figure width in inches")
	flags.Float64Var(&height, "height", defaults.Height, "Figure height in inches")
	flags.StringVar(&configPath, "config", "", "TOML report definition (default: built-in report)")
	flags.StringVar(&workbookPath, "workbook", "", "Also export tables and native charts to this .xlsx")
	flags.StringVar(&panelsDir, "panels-dir", "", "Directory for one image per panel")
	flags.BoolVar(&show, "show", false, "Open the report in the system viewer")

	rootCmd.PersistentFlags().StringVar(&sheet, "sheet", "", "Sheet to read from an .xlsx input (default: first sheet)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newPreviewCmd(), newInspectCmd())
	return rootCmd
}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [input]",
		Short: "Print one indicator as a year-major table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	cmd.Flags().StringVar(&indicator, "indicator", elecmix.IndicatorCoal, "Series Name to reshape")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML report definition supplying the year range")
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [report.xlsx]",
		Short: "List the charts of an exported workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	opts := elecmix.DefaultOptions()
	opts.Input = inputArg(args, opts.Input)
	opts.Sheet = sheet
	opts.Output = outputPath
	opts.Format = elecmix.Format(format)
	opts.DPI = dpi
	opts.Width = width
	opts.Height = height
	opts.WorkbookPath = workbookPath
	opts.PanelsDir = panelsDir
	opts.Logger = newLogger()

	def, err := definition()
	if err != nil {
		return err
	}

	report, err := elecmix.Generate(opts, def)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if verbose {
		data, err := output.ReportToJSON(report, true)
		if err != nil {
			return err
		}
		opts.Logger.Printf("report: %s", data)
	}

	if show {
		return openViewer(opts.Output)
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	def, err := definition()
	if err != nil {
		return err
	}
	input := inputArg(args, elecmix.DefaultOptions().Input)
	newLogger().Printf("previewing %q from %s", indicator, input)

	yt, err := elecmix.PreviewTable(input, sheet, indicator, def.YearRange())
	if err != nil {
		return err
	}
	return preview.Write(cmd.OutOrStdout(), yt)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", elecmix.ErrFileNotFound, args[0])
	}

	charts, err := workbook.InspectCharts(args[0])
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}
	jsonData, err := output.ChartsToJSON(charts, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func definition() (models.Definition, error) {
	if configPath == "" {
		return elecmix.DefaultDefinition(), nil
	}
	return elecmix.LoadDefinition(configPath)
}

func inputArg(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "elecmix: ", log.LstdFlags)
}
