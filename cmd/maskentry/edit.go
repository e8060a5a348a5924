package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/discovery"
	"github.com/muurk/maskentry/internal/mask"
	"github.com/muurk/maskentry/internal/maskinput"
	"github.com/muurk/maskentry/internal/tui"
	"github.com/muurk/maskentry/internal/ui"
)

// Editor command flags
var (
	editMask   string
	editPreset string
	editValue  string
	editLabel  string
	editFormat string
)

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&editMask, "mask", "", "Mask pattern to edit with")
	cmd.Flags().StringVar(&editPreset, "preset", "", "Named preset to edit with")
	cmd.Flags().StringVar(&editValue, "value", "", "Initial value, typed through the mask")
	cmd.Flags().StringVar(&editLabel, "label", "Value", "Label shown before the input")
	cmd.Flags().StringVar(&editFormat, "format", "text", "Output format (text, json)")
	cmd.MarkFlagsMutuallyExclusive("mask", "preset")
}

func init() {
	addEditFlags(editCmd)
	formCmd.Flags().StringVar(&editFormat, "format", "text", "Output format (text, json)")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(formCmd)
}

// editCmd opens the interactive editor
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a value through a mask",
	Long: `Open the interactive editor.

With --mask or --preset the editor opens directly on one input. Without
either, a preset picker is shown first; press 'm' there to type a mask.

The submitted value is printed when the editor closes.`,
	Example: `  # Pick a preset interactively
  maskentry edit

  # Edit a date
  maskentry edit --preset date

  # Edit a custom mask with a starting value, print JSON
  maskentry edit --mask "LL-000000" --value "AB12" --format json`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

// formCmd edits a saved form
var formCmd = &cobra.Command{
	Use:   "form [NAME]",
	Short: "Edit a saved multi-input form",
	Long: `Open a form defined in the configuration file.

Each form is an ordered list of labelled inputs, each with its own mask or
preset. Tab past the last field of an input moves to the next input.

Without NAME the saved forms are listed.`,
	Example: `  # List saved forms
  maskentry form

  # Edit the example form written by 'maskentry config init'
  maskentry form contact`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForm,
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := checkFormat(editFormat); err != nil {
		return err
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	pattern, name := editMask, "custom mask"
	if editPreset != "" {
		preset, ok := reg.GetPreset(editPreset)
		if !ok {
			return fmt.Errorf("unknown preset %q (see 'maskentry presets list')", editPreset)
		}
		pattern, name = preset.Mask, editPreset
	}

	opts := appOptions(reg)
	if pattern != "" {
		if _, err := mask.Compile(pattern); err != nil {
			return fmt.Errorf("invalid mask: %w", err)
		}
		opts.Title = "Edit " + name
		opts.Inputs = []tui.InputSpec{{Label: editLabel, Mask: pattern, Value: editValue}}
	}

	return runApp(cmd.OutOrStdout(), opts)
}

func runForm(cmd *cobra.Command, args []string) error {
	if err := checkFormat(editFormat); err != nil {
		return err
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(args) == 0 {
		return listForms(cmd.OutOrStdout(), reg)
	}

	title, specs, err := tui.SpecsFromForm(reg, args[0])
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("form %q has no inputs", args[0])
	}

	opts := appOptions(reg)
	opts.Title = title
	opts.Inputs = specs
	return runApp(cmd.OutOrStdout(), opts)
}

func listForms(out io.Writer, reg *config.Registry) error {
	names := reg.FormNames()
	printer := ui.NewPrinter(out)
	if len(names) == 0 {
		printer.PrintWarning("No saved forms",
			ui.Detail{Key: "Hint", Value: "'maskentry config init' writes an example form"},
		)
		return nil
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		form := reg.GetForm(name)
		labels := make([]string, 0, len(form.Inputs))
		for _, in := range form.Inputs {
			labels = append(labels, in.Label)
		}
		rows = append(rows, []string{name, form.Title, strings.Join(labels, ", ")})
	}
	printer.PrintTable([]string{"NAME", "TITLE", "INPUTS"}, rows)
	return nil
}

// appOptions fills the options every interactive command shares.
func appOptions(reg *config.Registry) tui.Options {
	scanner := discovery.NewScanner()
	if reg.Preferences != nil && reg.Preferences.ScanTimeout > 0 {
		scanner.Timeout = time.Duration(reg.Preferences.ScanTimeout) * time.Second
	}
	return tui.Options{
		Registry:  reg,
		Scan:      scanner.Scan,
		Clipboard: maskinput.SystemClipboard{},
	}
}

// runApp runs the terminal UI and prints what was submitted.
func runApp(out io.Writer, opts tui.Options) error {
	p := tea.NewProgram(tui.NewAppModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	app, ok := final.(tui.AppModel)
	if !ok || app.Cancelled || len(app.Results) == 0 {
		if opts.Start != tui.ScreenScan {
			ui.NewPrinter(out).PrintWarning("Nothing submitted")
		}
		return nil
	}
	return printResults(out, app.Results, editFormat)
}

func printResults(out io.Writer, results []tui.FormResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	details := make([]ui.Detail, 0, len(results))
	for _, r := range results {
		value := r.Value
		if !r.Complete {
			value += " (incomplete)"
		}
		details = append(details, ui.Detail{Key: r.Label, Value: value})
	}
	ui.NewPrinter(out).PrintSuccess("Submitted", details...)
	return nil
}

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json)", format)
	}
}
