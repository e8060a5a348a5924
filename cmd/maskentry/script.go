package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// keyKind identifies one scripted keystroke.
type keyKind int

const (
	keyRune keyKind = iota
	keyBackspace
	keyDelete
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyTab
	keyShiftTab
)

// namedKeys maps the names accepted between angle brackets.
var namedKeys = map[string]keyKind{
	"bs":    keyBackspace,
	"del":   keyDelete,
	"left":  keyLeft,
	"right": keyRight,
	"home":  keyHome,
	"end":   keyEnd,
	"tab":   keyTab,
	"stab":  keyShiftTab,
}

type keystroke struct {
	kind keyKind
	r    rune // set for keyRune
}

func (k keystroke) String() string {
	if k.kind == keyRune {
		return string(k.r)
	}
	for name, kind := range namedKeys {
		if kind == k.kind {
			return "<" + name + ">"
		}
	}
	return "<?>"
}

// parseScript splits a key script into keystrokes. Plain runes are typed one
// at a time; <name> is a named key and <lt> types a literal '<'.
func parseScript(script string) ([]keystroke, error) {
	runes := []rune(script)
	keys := make([]keystroke, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '<' {
			keys = append(keys, keystroke{kind: keyRune, r: r})
			continue
		}

		end := i + 1
		for end < len(runes) && runes[end] != '>' {
			end++
		}
		if end == len(runes) {
			return nil, fmt.Errorf("unterminated key name at offset %d", i)
		}
		name := strings.ToLower(string(runes[i+1 : end]))
		i = end

		if name == "lt" {
			keys = append(keys, keystroke{kind: keyRune, r: '<'})
			continue
		}
		kind, ok := namedKeys[name]
		if !ok {
			return nil, fmt.Errorf("unknown key <%s>", name)
		}
		keys = append(keys, keystroke{kind: kind})
	}
	return keys, nil
}

// msg returns the terminal key message the keystroke stands for.
func (k keystroke) msg() tea.KeyMsg {
	switch k.kind {
	case keyBackspace:
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case keyDelete:
		return tea.KeyMsg{Type: tea.KeyDelete}
	case keyLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}
	case keyRight:
		return tea.KeyMsg{Type: tea.KeyRight}
	case keyHome:
		return tea.KeyMsg{Type: tea.KeyHome}
	case keyEnd:
		return tea.KeyMsg{Type: tea.KeyEnd}
	case keyTab:
		return tea.KeyMsg{Type: tea.KeyTab}
	case keyShiftTab:
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	if k.r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{k.r}}
}
