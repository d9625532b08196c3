// Package formats renders engine results for terminal output. A small
// registry maps format names to renderers; "text" produces
// human-readable output for the known result types, "json" and "yaml"
// serialize any value.
package formats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Renderer converts an engine result into output text.
type Renderer struct {
	// Name is the format identifier (lowercase alphanumeric with
	// dashes and underscores).
	Name string

	// Render converts a value into the formatted output string.
	Render func(v interface{}) (string, error)
}

var registry = make(map[string]*Renderer)

// Register adds a renderer to the registry.
func Register(r *Renderer) error {
	if !isValidFormatName(r.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", r.Name)
	}
	if _, exists := registry[r.Name]; exists {
		return fmt.Errorf("format %q already registered", r.Name)
	}
	registry[r.Name] = r
	return nil
}

// Get returns a renderer by name.
func Get(name string) (*Renderer, error) {
	r, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return r, nil
}

// List returns the registered format names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render looks up a format by name and renders the value with it.
func Render(name string, v interface{}) (string, error) {
	r, err := Get(name)
	if err != nil {
		return "", err
	}
	return r.Render(v)
}

func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func init() {
	// Registration of the built-in renderers cannot fail: the names
	// are valid and unique.
	_ = Register(&Renderer{Name: "text", Render: renderText})
	_ = Register(&Renderer{Name: "json", Render: func(v interface{}) (string, error) {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}})
	_ = Register(&Renderer{Name: "yaml", Render: func(v interface{}) (string, error) {
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\n"), nil
	}})
}
