// Package tui implements the full-screen terminal interface of maskentry.
//
// Built on Bubble Tea, it follows the Elm architecture: every screen is a
// value model with Update and View, and AppModel coordinates the
// transitions between them.
//
// # Screens
//
//   - Picker: choose a preset (bubbles/list) or type a mask pattern
//     (bubbles/textinput)
//   - Form: labelled masked inputs (internal/maskinput) with a completion
//     bar (bubbles/progress)
//   - Scan: browse the network for editing servers (bubbles/spinner)
//   - Done: the submitted values
//
// All screens render through RenderApplicationContainer for a consistent
// header and a context-sensitive help footer (bubbles/help).
//
// # Usage Example
//
//	app := tui.NewAppModel(tui.Options{Registry: reg})
//	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
//	if err != nil {
//	    return err
//	}
//	results := final.(tui.AppModel).Results
//
// # Focus Flow
//
// Tab walks the fields of the focused input. Tabbing past its last field
// makes the input emit maskinput.LeaveMsg and the form focuses the next
// input, wrapping around at either end; shift+tab does the same backwards.
package tui
