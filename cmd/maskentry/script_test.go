package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []keystroke
	}{
		{"empty", "", []keystroke{}},
		{"runes", "12", []keystroke{{kind: keyRune, r: '1'}, {kind: keyRune, r: '2'}}},
		{"named keys", "<bs><DEL><tab><stab>", []keystroke{
			{kind: keyBackspace}, {kind: keyDelete}, {kind: keyTab}, {kind: keyShiftTab},
		}},
		{"mixed", "a<left>b", []keystroke{{kind: keyRune, r: 'a'}, {kind: keyLeft}, {kind: keyRune, r: 'b'}}},
		{"literal angle bracket", "<lt>x>", []keystroke{
			{kind: keyRune, r: '<'}, {kind: keyRune, r: 'x'}, {kind: keyRune, r: '>'},
		}},
		{"multibyte", "é<end>", []keystroke{{kind: keyRune, r: 'é'}, {kind: keyEnd}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScript(tt.script)
			if err != nil {
				t.Fatalf("parseScript(%q) error = %v", tt.script, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseScript(%q) = %v, want %v", tt.script, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("key %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, script := range []string{"<bs", "12<", "<enter>", "<>"} {
		if _, err := parseScript(script); err == nil {
			t.Errorf("parseScript(%q) expected error", script)
		}
	}
}

func TestKeystrokeMsg(t *testing.T) {
	tests := []struct {
		key  keystroke
		want string
	}{
		{keystroke{kind: keyRune, r: '7'}, "7"},
		{keystroke{kind: keyRune, r: ' '}, " "},
		{keystroke{kind: keyBackspace}, "backspace"},
		{keystroke{kind: keyDelete}, "delete"},
		{keystroke{kind: keyHome}, "home"},
		{keystroke{kind: keyEnd}, "end"},
		{keystroke{kind: keyTab}, "tab"},
		{keystroke{kind: keyShiftTab}, "shift+tab"},
	}
	for _, tt := range tests {
		if got := tt.key.msg().String(); got != tt.want {
			t.Errorf("%v.msg() = %q, want %q", tt.key, got, tt.want)
		}
	}

	if msg := (keystroke{kind: keyRune, r: ' '}).msg(); msg.Type != tea.KeySpace {
		t.Errorf("space key type = %v, want KeySpace", msg.Type)
	}
}

func TestKeystrokeString(t *testing.T) {
	if got := (keystroke{kind: keyLeft}).String(); got != "<left>" {
		t.Errorf("String() = %q, want <left>", got)
	}
	if got := (keystroke{kind: keyRune, r: 'x'}).String(); got != "x" {
		t.Errorf("String() = %q, want x", got)
	}
}
