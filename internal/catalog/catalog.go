// Package catalog holds equipment reference data as an immutable lookup.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"drying-engine/internal/models"
)

// Catalog is a read-only set of equipment specs keyed by id. It is safe for
// concurrent use; a changed catalog is a new Catalog.
type Catalog struct {
	specs map[string]models.EquipmentSpec
	ids   []string
}

// New validates specs and builds a catalog. Duplicate ids are rejected.
func New(specs []models.EquipmentSpec) (*Catalog, error) {
	c := &Catalog{
		specs: make(map[string]models.EquipmentSpec, len(specs)),
		ids:   make([]string, 0, len(specs)),
	}

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.specs[spec.ID]; exists {
			return nil, &models.ValidationError{Field: "id", Value: spec.ID, Message: "duplicate equipment id"}
		}
		c.specs[spec.ID] = spec
		c.ids = append(c.ids, spec.ID)
	}

	sort.Strings(c.ids)
	return c, nil
}

// Lookup returns the catalog entry for id
func (c *Catalog) Lookup(id string) (models.EquipmentSpec, bool) {
	spec, ok := c.specs[id]
	return spec, ok
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Specs returns a copy of every entry, ordered by id
func (c *Catalog) Specs() []models.EquipmentSpec {
	out := make([]models.EquipmentSpec, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.specs[id])
	}
	return out
}

// file is the on-disk layout of a catalog
type file struct {
	Equipment []models.EquipmentSpec `json:"equipment"`
}

// Parse reads a YAML or JSON catalog document
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse equipment catalog: %w", err)
	}

	for i := range f.Equipment {
		kind, err := models.ParseEquipmentKind(string(f.Equipment[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("equipment %q: %w", f.Equipment[i].ID, err)
		}
		f.Equipment[i].Kind = kind
	}

	return New(f.Equipment)
}

// LoadFile reads a catalog file from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read equipment catalog: %w", err)
	}
	return Parse(data)
}

// Marshal renders c in the format Parse reads
func Marshal(c *Catalog) ([]byte, error) {
	return yaml.Marshal(file{Equipment: c.Specs()})
}
