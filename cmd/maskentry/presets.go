package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/ui"
)

// Preset command flags
var (
	presetDescription string
	presetYes         bool
)

func init() {
	presetsAddCmd.Flags().StringVar(&presetDescription, "description", "", "Description shown in listings")
	presetsRemoveCmd.Flags().BoolVarP(&presetYes, "yes", "y", false, "Do not ask for confirmation")

	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsAddCmd)
	presetsCmd.AddCommand(presetsRemoveCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage named masks",
	Long: `List, add and remove named masks.

Built-in presets are always available. Presets added here are stored in the
configuration file and take precedence over a built-in preset of the same
name.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsAddCmd = &cobra.Command{
	Use:   "add NAME MASK",
	Short: "Add or replace a user preset",
	Example: `  # A product code: two letters, a dash and four digits
  maskentry presets add product "LL-0000" --description "Product code"`,
	Args: cobra.ExactArgs(2),
	RunE: runPresetsAdd,
}

var presetsRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a user preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsRemove,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if err := config.CreateDefaultConfig(path); err != nil {
			return err
		}
		reg, err := config.ReloadRegistry()
		if err != nil {
			return fmt.Errorf("written configuration does not load: %w", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration created",
			ui.Detail{Key: "Path", Value: path},
			ui.Detail{Key: "Forms", Value: strings.Join(reg.FormNames(), ", ")},
		)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rows := make([][]string, 0)
	for _, name := range reg.PresetNames() {
		p, _ := reg.GetPreset(name)
		source := "user"
		if reg.IsBuiltin(name) {
			source = "built-in"
		}
		rows = append(rows, []string{name, p.Mask, p.Example, source, p.Description})
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintTable(
		[]string{"NAME", "MASK", "EXAMPLE", "SOURCE", "DESCRIPTION"},
		rows,
	)
	return nil
}

func runPresetsAdd(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	name, pattern := args[0], args[1]
	if err := reg.SetPreset(name, pattern, presetDescription); err != nil {
		return err
	}
	if err := config.SaveGlobal(); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Preset saved",
		ui.Detail{Key: "Name", Value: name},
		ui.Detail{Key: "Mask", Value: pattern},
	)
	return nil
}

func runPresetsRemove(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	name := args[0]
	if p, ok := reg.Presets[name]; ok && !presetYes {
		warnings := []string{"Mask: " + p.Mask}
		if _, builtin := config.BuiltinPresets[name]; builtin {
			warnings = append(warnings, "The built-in preset of the same name will be used again")
		}
		if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Remove preset "+name+"?", warnings) {
			ui.NewPrinter(cmd.OutOrStdout()).PrintWarning("Preset kept", ui.Detail{Key: "Name", Value: name})
			return nil
		}
	}

	if err := reg.RemovePreset(name); err != nil {
		return err
	}
	if err := config.SaveGlobal(); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Preset removed", ui.Detail{Key: "Name", Value: name})
	return nil
}
