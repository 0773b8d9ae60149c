// Package inventory reads the component registry of a project.
//
// Components are declared as [[component]] tables in hydrate.toml at the
// project root:
//
//	[[component]]
//	path = "src/http/get-index"
//	views = true
//
//	[[component]]
//	path = "src/events/ingest"
//	disabled = true
//
// Only enabled components are hydrated. Components with views = true also
// receive a copy of src/views during shared hydration.
package inventory

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hydrate/pkg/errors"
)

// DefaultFile is the inventory file name looked up in the project root.
const DefaultFile = "hydrate.toml"

// Component is one registered, independently deployable unit.
type Component struct {
	Path     string `toml:"path"`     // Relative to the project root, slash separated
	Views    bool   `toml:"views"`    // Receives src/views during shared hydration
	Disabled bool   `toml:"disabled"` // Registered but not hydrated
}

type inventoryFile struct {
	Components []Component `toml:"component"`
}

// Inventory is the parsed component registry.
type Inventory struct {
	Components []Component
}

// Load reads the inventory at filename. A missing file is reported with
// code NOT_FOUND so callers can fall back to an empty inventory.
func Load(filename string) (*Inventory, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "inventory %s", filename)
		}
		return nil, errors.Wrap(errors.ErrCodeInventory, err, "read inventory %s", filename)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInventory, err, "inventory %s", filename)
	}
	return inv, nil
}

// LoadDir reads DefaultFile from root, returning an empty inventory when
// the file does not exist.
func LoadDir(root string) (*Inventory, error) {
	inv, err := Load(filepath.Join(root, DefaultFile))
	if errors.Is(err, errors.ErrCodeNotFound) {
		return &Inventory{}, nil
	}
	return inv, err
}

// Parse decodes and validates inventory TOML. Component paths are cleaned;
// empty, absolute, escaping and duplicate paths are rejected.
func Parse(data []byte) (*Inventory, error) {
	var f inventoryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode inventory")
	}

	seen := make(map[string]bool, len(f.Components))
	for i := range f.Components {
		c := &f.Components[i]
		p := strings.TrimSpace(filepath.ToSlash(c.Path))
		if p == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "component %d: path is required", i+1)
		}
		p = path.Clean(p)
		if err := errors.ValidatePath(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "component %d: path %q", i+1, c.Path)
		}
		if seen[p] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "component %d: duplicate path %q", i+1, p)
		}
		seen[p] = true
		c.Path = p
	}
	return &Inventory{Components: f.Components}, nil
}

// ComponentPaths returns the paths of enabled components in file order.
func (inv *Inventory) ComponentPaths(context.Context) ([]string, error) {
	return inv.paths(func(Component) bool { return true }), nil
}

// ViewPaths returns the paths of enabled components that receive src/views.
func (inv *Inventory) ViewPaths(context.Context) ([]string, error) {
	return inv.paths(func(c Component) bool { return c.Views }), nil
}

func (inv *Inventory) paths(match func(Component) bool) []string {
	var out []string
	for _, c := range inv.Components {
		if !c.Disabled && match(c) {
			out = append(out, c.Path)
		}
	}
	return out
}
