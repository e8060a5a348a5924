// Package config provides user configuration management for maskentry.
//
// This package manages a YAML-based configuration file holding named mask
// presets, saved multi-input forms and application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/maskentry/config.yaml or $HOME/.config/maskentry/config.yaml
//   - macOS: $HOME/.config/maskentry/config.yaml
//   - Windows: %LOCALAPPDATA%\maskentry\config.yaml
//
// MASKENTRY_CONFIG overrides the location.
//
// # File Format
//
//	version: 1
//	presets:
//	  order-id:
//	    mask: LL-000000
//	    description: Two letters and six digits
//	forms:
//	  contact:
//	    title: Contact details
//	    inputs:
//	      - label: Phone
//	        preset: phone-us
//	      - label: Order
//	        mask: LL-000000
//	preferences:
//	  default_preset: date
//	  select_on_focus: true
//	  server_host: 127.0.0.1
//	  server_port: 8765
//	  scan_timeout: 5
//
// Every mask is compiled on load, so a registry returned by LoadRegistry
// only holds valid patterns. Built-in presets (BuiltinPresets) are always
// available and are shadowed by user presets of the same name.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//
//	if err := registry.SetPreset("order-id", "LL-000000", ""); err != nil {
//	    return err
//	}
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
