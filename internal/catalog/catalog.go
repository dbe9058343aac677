// Package catalog holds the static, read-only location reference data.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when an identifier does not resolve to a location.
var ErrNotFound = errors.New("location not found")

//go:embed data/catalog.yaml
var defaultCatalog []byte

// City is one entry of a state's city list.
type City struct {
	Name string   `yaml:"name" json:"name"`
	Slug string   `yaml:"slug" json:"slug"`
	Lat  *float64 `yaml:"lat" json:"lat"`
	Lng  *float64 `yaml:"lng" json:"lng"`
}

// State groups the cities of one state.
type State struct {
	Name   string `yaml:"name" json:"name"`
	Slug   string `yaml:"slug" json:"slug"`
	Cities []City `yaml:"cities" json:"cities"`
}

// Location is a city resolved together with its state.
type Location struct {
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	State     string   `json:"state"`
	StateSlug string   `json:"state_slug"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// Catalog indexes locations by slug and by lower-cased name.
type Catalog struct {
	states []State
	all    []Location
	index  map[string]Location
}

// Load reads a catalog YAML file; an empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a Catalog from YAML of the form {states: [{name, slug, cities: [...]}]}.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		States []State `yaml:"states"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.States), nil
}

// New indexes the given states.
func New(states []State) *Catalog {
	c := &Catalog{
		states: states,
		index:  make(map[string]Location),
	}
	for _, s := range states {
		for _, city := range s.Cities {
			loc := Location{
				Name:      city.Name,
				Slug:      city.Slug,
				State:     s.Name,
				StateSlug: s.Slug,
				Lat:       city.Lat,
				Lng:       city.Lng,
			}
			c.index[city.Slug] = loc
			c.index[strings.ToLower(city.Name)] = loc
			c.all = append(c.all, loc)
		}
	}
	return c
}

// Find resolves a slug or city name. It tries the identifier as given,
// lower-cased, with spaces turned into dashes, and with an "-aqi" suffix.
func (c *Catalog) Find(id string) (Location, error) {
	lower := strings.ToLower(strings.TrimSpace(id))
	slug := strings.ReplaceAll(lower, " ", "-")
	for _, key := range []string{id, lower, slug, slug + "-aqi"} {
		if loc, ok := c.index[key]; ok {
			return loc, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// All returns every location in catalog order.
func (c *Catalog) All() []Location {
	out := make([]Location, len(c.all))
	copy(out, c.all)
	return out
}

// States returns the states as loaded.
func (c *Catalog) States() []State {
	return c.states
}
