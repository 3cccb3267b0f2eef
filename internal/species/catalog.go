// Package species provides the read-only care guide catalog.
package species

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Names holds the display names of a species.
type Names struct {
	TR string `yaml:"tr" json:"tr"`
	EN string `yaml:"en" json:"en"`
}

// Care is the routine care guide for a species.
type Care struct {
	Water      string `yaml:"water" json:"water"`
	Light      string `yaml:"light" json:"light"`
	Fertilizer string `yaml:"fertilizer" json:"fertilizer"`
	Pruning    string `yaml:"pruning" json:"pruning"`
}

// Entry is one species in the catalog.
type Entry struct {
	Slug       string            `yaml:"slug" json:"slug"`
	Names      Names             `yaml:"names" json:"names"`
	Care       Care              `yaml:"care" json:"care"`
	Treatments map[string]string `yaml:"treatments" json:"treatments,omitempty"`
}

// Catalog is an immutable, slug-indexed set of entries.
type Catalog struct {
	entries []Entry
	bySlug  map[string]int
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// MustDefault is Default for program start-up.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from a YAML list of entries.
func Parse(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse species catalog: %w", err)
	}

	c := &Catalog{bySlug: make(map[string]int, len(entries))}
	for _, e := range entries {
		e.Slug = strings.ToLower(strings.TrimSpace(e.Slug))
		if e.Slug == "" {
			return nil, fmt.Errorf("species catalog entry %q has no slug", e.Names.EN)
		}
		if _, dup := c.bySlug[e.Slug]; dup {
			return nil, fmt.Errorf("duplicate species slug %q", e.Slug)
		}
		c.bySlug[e.Slug] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// List returns every entry in catalog order.
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Get(slug string) (*Entry, error) {
	i, ok := c.bySlug[strings.ToLower(slug)]
	if !ok {
		return nil, models.NewNotFoundError("Species", slug)
	}
	e := c.entries[i]
	return &e, nil
}

func (c *Catalog) Care(slug string) (Care, error) {
	e, err := c.Get(slug)
	if err != nil {
		return Care{}, err
	}
	return e.Care, nil
}

// Issues returns the issue keys that have a treatment, sorted.
func (c *Catalog) Issues(slug string) ([]string, error) {
	e, err := c.Get(slug)
	if err != nil {
		return nil, err
	}
	issues := make([]string, 0, len(e.Treatments))
	for k := range e.Treatments {
		issues = append(issues, k)
	}
	sort.Strings(issues)
	return issues, nil
}

func (c *Catalog) Treatment(slug, issue string) (string, error) {
	e, err := c.Get(slug)
	if err != nil {
		return "", err
	}
	text, ok := e.Treatments[issue]
	if !ok {
		return "", models.NewNotFoundError("Treatment", slug+"/"+issue)
	}
	return text, nil
}

// Match finds the entry for a free-text species name, comparing
// case-insensitively against the slug and both display names.
func (c *Catalog) Match(species string) (*Entry, bool) {
	s := strings.ToLower(strings.TrimSpace(species))
	if s == "" {
		return nil, false
	}
	for i := range c.entries {
		e := &c.entries[i]
		if s == e.Slug || s == strings.ToLower(e.Names.TR) || s == strings.ToLower(e.Names.EN) {
			found := *e
			return &found, true
		}
	}
	return nil, false
}
