package config

import (
	"fmt"
	"sort"

	"github.com/muurk/maskentry/internal/mask"
)

// Registry represents the entire user configuration file.
// It stores mask presets, saved forms and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Presets     map[string]*Preset `yaml:"presets,omitempty"` // Keyed by preset name
	Forms       map[string]*Form   `yaml:"forms,omitempty"`   // Keyed by form name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Preset is a named mask pattern.
type Preset struct {
	Mask        string `yaml:"mask"`
	Description string `yaml:"description,omitempty"`
	Example     string `yaml:"example,omitempty"` // A value that fits the mask, shown in listings
}

// Form is an ordered set of labelled masked inputs edited together.
type Form struct {
	Title  string       `yaml:"title,omitempty"`
	Inputs []*FormInput `yaml:"inputs"`
}

// FormInput is one input of a Form. Exactly one of Preset or Mask is set.
type FormInput struct {
	Label  string `yaml:"label"`
	Preset string `yaml:"preset,omitempty"` // Name of a preset
	Mask   string `yaml:"mask,omitempty"`   // Inline mask pattern
	Value  string `yaml:"value,omitempty"`  // Initial value, typed through the mask
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultPreset string `yaml:"default_preset,omitempty"` // Preset used by `edit` when none is given
	SelectOnFocus bool   `yaml:"select_on_focus"`          // Select field content when tabbing into it
	ServerHost    string `yaml:"server_host"`              // Default listen host for `serve`
	ServerPort    int    `yaml:"server_port"`              // Default listen port for `serve`
	ScanTimeout   int    `yaml:"scan_timeout"`             // mDNS scan timeout in seconds
}

// BuiltinPresets are always available. A user preset with the same name
// takes precedence.
var BuiltinPresets = map[string]*Preset{
	"date":     {Mask: "0000-00-00", Description: "ISO 8601 calendar date", Example: "2024-01-15"},
	"time":     {Mask: "00:00:00", Description: "24-hour time", Example: "13:45:00"},
	"ipv4":     {Mask: "000.000.000.000", Description: "IPv4 address", Example: "192.168.100.200"},
	"mac":      {Mask: "aa:aa:aa:aa:aa:aa", Description: "MAC address", Example: "3c:22:fb:0a:1b:7e"},
	"phone-us": {Mask: "(000) 000-0000", Description: "North American phone number", Example: "(555) 123-4567"},
	"card":     {Mask: "0000 0000 0000 0000", Description: "Payment card number", Example: "4111 1111 1111 1111"},
	"expiry":   {Mask: "00/00", Description: "Card expiry month/year", Example: "09/27"},
	"postcode": {Mask: "LLAA ALL", Description: "UK postcode", Example: "SW1A 1AA"},
}

// Built-in preferences.
const (
	DefaultServerHost  = "127.0.0.1"
	DefaultServerPort  = 8765
	DefaultScanTimeout = 5
)

func defaultPreferences() *Preferences {
	return &Preferences{
		DefaultPreset: "date",
		SelectOnFocus: true,
		ServerHost:    DefaultServerHost,
		ServerPort:    DefaultServerPort,
		ScanTimeout:   DefaultScanTimeout,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Presets:     make(map[string]*Preset),
		Forms:       make(map[string]*Form),
		Preferences: defaultPreferences(),
	}
}

// GetPreset looks a preset up by name, user presets first, then built-ins.
func (r *Registry) GetPreset(name string) (*Preset, bool) {
	if p, ok := r.Presets[name]; ok {
		return p, true
	}
	p, ok := BuiltinPresets[name]
	return p, ok
}

// IsBuiltin reports whether name is a built-in preset that no user preset
// overrides.
func (r *Registry) IsBuiltin(name string) bool {
	if _, ok := r.Presets[name]; ok {
		return false
	}
	_, ok := BuiltinPresets[name]
	return ok
}

// PresetNames returns the names of all available presets, sorted.
func (r *Registry) PresetNames() []string {
	seen := make(map[string]bool, len(BuiltinPresets)+len(r.Presets))
	var names []string
	for name := range BuiltinPresets {
		seen[name] = true
		names = append(names, name)
	}
	for name := range r.Presets {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SetPreset adds or replaces a user preset. The mask is compiled first so an
// invalid pattern never reaches the file.
func (r *Registry) SetPreset(name, pattern, description string) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if _, err := mask.Compile(pattern); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	if r.Presets == nil {
		r.Presets = make(map[string]*Preset)
	}
	r.Presets[name] = &Preset{Mask: pattern, Description: description}
	return nil
}

// RemovePreset deletes a user preset. Built-in presets cannot be removed.
func (r *Registry) RemovePreset(name string) error {
	if _, ok := r.Presets[name]; ok {
		delete(r.Presets, name)
		return nil
	}
	if _, ok := BuiltinPresets[name]; ok {
		return fmt.Errorf("preset %q is built in and cannot be removed", name)
	}
	return fmt.Errorf("preset %q not found", name)
}

// GetForm retrieves a saved form by name.
// Returns nil if the form doesn't exist in the registry.
func (r *Registry) GetForm(name string) *Form {
	return r.Forms[name]
}

// FormNames returns the names of all saved forms, sorted.
func (r *Registry) FormNames() []string {
	names := make([]string, 0, len(r.Forms))
	for name := range r.Forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetForm validates f and stores it under name.
func (r *Registry) SetForm(name string, f *Form) error {
	if name == "" {
		return fmt.Errorf("form name cannot be empty")
	}
	if len(f.Inputs) == 0 {
		return fmt.Errorf("form %q has no inputs", name)
	}
	for i, in := range f.Inputs {
		if _, err := r.ResolveMask(in); err != nil {
			return fmt.Errorf("form %q input %d: %w", name, i+1, err)
		}
	}
	if r.Forms == nil {
		r.Forms = make(map[string]*Form)
	}
	r.Forms[name] = f
	return nil
}

// ResolveMask returns the mask pattern an input edits with.
func (r *Registry) ResolveMask(in *FormInput) (string, error) {
	switch {
	case in.Mask != "" && in.Preset != "":
		return "", fmt.Errorf("input %q sets both mask and preset", in.Label)
	case in.Mask != "":
		if _, err := mask.Compile(in.Mask); err != nil {
			return "", err
		}
		return in.Mask, nil
	case in.Preset != "":
		p, ok := r.GetPreset(in.Preset)
		if !ok {
			return "", fmt.Errorf("unknown preset %q", in.Preset)
		}
		return p.Mask, nil
	default:
		return "", fmt.Errorf("input %q needs a mask or a preset", in.Label)
	}
}
