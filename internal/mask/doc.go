// Package mask implements positional input masks for single-line text entry.
//
// A mask such as "0000-00-00" is compiled into a Pattern: one Validator per
// rune (a character class or a literal) and the list of fields, the maximal
// runs of class validators. The buffer bound to a mask always has exactly
// Pattern.Len() runes; blank class slots hold a space and literals never move.
//
// # Mask Syntax
//
//	0  digit
//	L  ASCII letter (a-z, A-Z)
//	&  letter, any script
//	a  letter or digit, any script
//	A  letter or digit, any script
//
// Any other rune is a literal that must appear verbatim at its position.
//
// # Editing
//
// The edit functions are pure: Pattern.Insert and Pattern.Delete take a
// State snapshot (text and cursor) and return the authoritative replacement.
// Inserted text is processed one rune at a time; runes that cannot be placed
// are collected in Result.Rejects and the rest of the batch continues.
//
//	p, err := mask.Compile("0000-00-00")
//	if err != nil {
//	    return err
//	}
//	res := p.Insert(mask.State{Text: p.Blank()}, "20240115")
//	fmt.Println(res.Text) // 2024-01-15
//
// # Binding a Widget
//
// Editor binds a Pattern to a host Widget. The host forwards its raw edit
// intents (HandleInsert, HandleDelete) and focus or cursor events; the editor
// vetoes or rewrites them and writes the result back in one step. Writes made
// by the editor itself are guarded so they never re-enter the interceptor.
//
// # Thread Safety
//
// Pattern is immutable and safe for concurrent use. Editor is not; each one
// belongs to the goroutine driving its widget.
package mask
