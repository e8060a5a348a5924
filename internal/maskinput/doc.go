// Package maskinput is a Bubble Tea text input bound to a mask.Editor.
//
// The input keeps its text in a small buffer that implements mask.Widget;
// every keystroke is turned into an insert or delete intent and handed to
// the editor, which rewrites the buffer in one step. Refused keystrokes
// produce a RejectMsg and briefly flash the value. Tabbing past either end
// of the mask produces a LeaveMsg so a containing form can move focus.
//
//	in := maskinput.New(maskinput.Config{Mask: "0000-00-00", Prompt: "Date: "})
//	in, _ = in.Focus()
//
//	// in the parent's Update:
//	in, cmd = in.Update(msg)
//
// Pasted text is NFC-normalized first so composed characters reach the
// mask as single code points.
package maskinput
