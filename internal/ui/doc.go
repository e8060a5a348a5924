// Package ui provides terminal output components for the maskentry CLI.
//
// This package uses Lipgloss to render polished, non-interactive output:
// command headers, result boxes, aligned tables and masked values. The
// interactive screens live in internal/tui and reuse the palette and the
// masked-value renderer defined here.
//
// # Components
//
//   - Header: Command banner showing operation name and parameters
//   - Result: Success/failure/warning boxes with ordered details
//   - Printer: Writes components to an io.Writer at the terminal width
//   - MaskView: Draws a masked buffer with literal, placeholder, cursor
//     and selection styling
//   - Confirm: Yes/no prompt behind a warning box
//
// Example:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintSuccess("Keystrokes applied",
//	    ui.Detail{Key: "Mask", Value: "0000-00-00"},
//	    ui.Detail{Key: "Value", Value: ui.RenderMasked(pattern, text)},
//	)
//
// # Logging Integration
//
// This package expects logging to be controlled via the MASKENTRY_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui
