package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/maskentry/internal/mask"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "maskentry") {
		t.Errorf("GetConfigDir() = %v, should contain 'maskentry'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "maskentry"); got != want {
		t.Errorf("GetConfigDir() = %v, want %v", got, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(PathEnvVar, "")

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestGetConfigPathOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(PathEnvVar, want)

	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if got != want {
		t.Errorf("GetConfigPath() = %v, want %v", got, want)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Presets == nil || reg.Forms == nil {
		t.Error("NewRegistry() maps should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.ServerPort != DefaultServerPort {
		t.Errorf("ServerPort = %v, want %v", reg.Preferences.ServerPort, DefaultServerPort)
	}
	if !reg.Preferences.SelectOnFocus {
		t.Error("SelectOnFocus should be true by default")
	}
}

func TestBuiltinPresetsCompile(t *testing.T) {
	reg := NewRegistry()
	for name, p := range BuiltinPresets {
		in := &FormInput{Label: name, Preset: name}
		pattern, err := reg.ResolveMask(in)
		if err != nil {
			t.Errorf("preset %q: %v", name, err)
			continue
		}
		if pattern != p.Mask {
			t.Errorf("preset %q resolved to %q, want %q", name, pattern, p.Mask)
		}
		if !mask.MustCompile(p.Mask).Conforms(p.Example) {
			t.Errorf("preset %q example %q does not fit mask %q", name, p.Example, p.Mask)
		}
	}
}

func TestRegistryPresets(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.GetPreset("date"); !ok {
		t.Fatal("built-in preset 'date' should be available")
	}
	if !reg.IsBuiltin("date") {
		t.Error("IsBuiltin(date) = false, want true")
	}

	if err := reg.SetPreset("date", "00/00/0000", "day first"); err != nil {
		t.Fatalf("SetPreset() error = %v", err)
	}
	p, _ := reg.GetPreset("date")
	if p.Mask != "00/00/0000" {
		t.Errorf("user preset should shadow built-in, got %q", p.Mask)
	}
	if reg.IsBuiltin("date") {
		t.Error("IsBuiltin(date) = true after override")
	}

	if err := reg.RemovePreset("date"); err != nil {
		t.Fatalf("RemovePreset() error = %v", err)
	}
	p, _ = reg.GetPreset("date")
	if p.Mask != "0000-00-00" {
		t.Errorf("built-in should reappear after removal, got %q", p.Mask)
	}

	if err := reg.RemovePreset("date"); err == nil {
		t.Error("removing a built-in preset should fail")
	}
	if err := reg.RemovePreset("nope"); err == nil {
		t.Error("removing an unknown preset should fail")
	}
}

func TestRegistrySetPresetValidation(t *testing.T) {
	reg := NewRegistry()

	if err := reg.SetPreset("", "00", ""); err == nil {
		t.Error("empty name should fail")
	}
	if err := reg.SetPreset("bad", "", ""); err == nil {
		t.Error("empty mask should fail")
	}
	if _, ok := reg.Presets["bad"]; ok {
		t.Error("invalid preset should not be stored")
	}
}

func TestRegistryPresetNames(t *testing.T) {
	reg := NewRegistry()
	_ = reg.SetPreset("zip", "00000", "")
	_ = reg.SetPreset("date", "00/00/0000", "")

	names := reg.PresetNames()
	if len(names) != len(BuiltinPresets)+1 {
		t.Fatalf("PresetNames() returned %d names, want %d", len(names), len(BuiltinPresets)+1)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("PresetNames() not sorted: %v", names)
		}
	}
}

func TestResolveMask(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name    string
		in      FormInput
		want    string
		wantErr bool
	}{
		{"preset", FormInput{Label: "d", Preset: "time"}, "00:00:00", false},
		{"inline", FormInput{Label: "c", Mask: "LL-00"}, "LL-00", false},
		{"both", FormInput{Label: "x", Preset: "time", Mask: "00"}, "", true},
		{"neither", FormInput{Label: "x"}, "", true},
		{"unknown preset", FormInput{Label: "x", Preset: "nope"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			got, err := reg.ResolveMask(&in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveMask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveMask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistrySetForm(t *testing.T) {
	reg := NewRegistry()

	good := &Form{Inputs: []*FormInput{{Label: "When", Preset: "date"}}}
	if err := reg.SetForm("booking", good); err != nil {
		t.Fatalf("SetForm() error = %v", err)
	}
	if reg.GetForm("booking") != good {
		t.Error("GetForm() should return the stored form")
	}

	if err := reg.SetForm("empty", &Form{}); err == nil {
		t.Error("form without inputs should fail")
	}
	bad := &Form{Inputs: []*FormInput{{Label: "x", Preset: "missing"}}}
	if err := reg.SetForm("bad", bad); err == nil {
		t.Error("form with unknown preset should fail")
	}
	if names := reg.FormNames(); len(names) != 1 || names[0] != "booking" {
		t.Errorf("FormNames() = %v", names)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg := NewRegistry()
	if err := reg.SetPreset("order", "LL-000000", "order number"); err != nil {
		t.Fatal(err)
	}
	if err := reg.SetForm("contact", &Form{
		Title:  "Contact",
		Inputs: []*FormInput{{Label: "Phone", Preset: "phone-us", Value: "5551234567"}},
	}); err != nil {
		t.Fatal(err)
	}
	reg.Preferences.ServerPort = 9000

	if err := reg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	p, ok := loaded.GetPreset("order")
	if !ok || p.Mask != "LL-000000" || p.Description != "order number" {
		t.Errorf("loaded preset = %+v", p)
	}
	f := loaded.GetForm("contact")
	if f == nil || len(f.Inputs) != 1 || f.Inputs[0].Value != "5551234567" {
		t.Errorf("loaded form = %+v", f)
	}
	if loaded.Preferences.ServerPort != 9000 {
		t.Errorf("ServerPort = %v, want 9000", loaded.Preferences.ServerPort)
	}
}

func TestLoadFileMissing(t *testing.T) {
	reg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if reg.Version != 1 || reg.Preferences == nil {
		t.Errorf("missing file should yield defaults, got %+v", reg)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "minimal",
			doc:  "version: 1\n",
		},
		{
			name:    "wrong version",
			doc:     "version: 2\n",
			wantErr: "unsupported config version",
		},
		{
			name:    "bad yaml",
			doc:     "version: [",
			wantErr: "failed to parse",
		},
		{
			name:    "empty preset mask",
			doc:     "version: 1\npresets:\n  x:\n    mask: \"\"\n",
			wantErr: `preset "x"`,
		},
		{
			name:    "form with unknown preset",
			doc:     "version: 1\nforms:\n  f:\n    inputs:\n      - label: A\n        preset: missing\n",
			wantErr: `form "f" input 1`,
		},
		{
			name: "form using user preset",
			doc:  "version: 1\npresets:\n  code:\n    mask: LL00\nforms:\n  f:\n    inputs:\n      - label: A\n        preset: code\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := Parse([]byte(tt.doc))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				if reg.Preferences == nil || reg.Presets == nil || reg.Forms == nil {
					t.Error("Parse() should initialize defaults")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := CreateDefaultConfig(path); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if reg.GetForm("contact") == nil {
		t.Error("default config should contain the example form")
	}
	if err := CreateDefaultConfig(path); err == nil {
		t.Error("CreateDefaultConfig() should refuse to overwrite")
	}
}

func TestReloadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(PathEnvVar, path)

	reg, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if err := reg.SetPreset("pin", "0000", ""); err != nil {
		t.Fatal(err)
	}
	if err := SaveGlobal(); err != nil {
		t.Fatalf("SaveGlobal() error = %v", err)
	}

	reloaded, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if _, ok := reloaded.GetPreset("pin"); !ok {
		t.Error("reloaded registry should contain the saved preset")
	}
}

func BenchmarkPresetNames(b *testing.B) {
	reg := NewRegistry()
	for i := 0; i < b.N; i++ {
		_ = reg.PresetNames()
	}
}
