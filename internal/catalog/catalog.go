// Package catalog names the analytical queries the tool ships with and
// merges in user-supplied ones from a YAML catalog file.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Query is one named, labeled SQL statement.
type Query struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	SQL   string `yaml:"sql"`
}

// Catalog maps query names to their definitions.
type Catalog struct {
	queries map[string]Query
}

type catalogFile struct {
	Queries []Query `yaml:"queries"`
}

// Builtin returns the catalog of shipped queries.
func Builtin() *Catalog {
	c := &Catalog{queries: make(map[string]Query)}
	for _, q := range builtinQueries {
		c.queries[q.Name] = q
	}
	return c
}

// Load returns the builtin catalog merged with the queries in the YAML file
// at path. File entries win on name collision. An empty path returns the
// builtins unchanged.
func Load(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse query catalog: %w", err)
	}

	for _, q := range file.Queries {
		if q.Name == "" {
			return nil, fmt.Errorf("query catalog entry is missing a name")
		}
		if q.SQL == "" {
			return nil, fmt.Errorf("query %q has no sql", q.Name)
		}
		c.queries[q.Name] = q
	}

	return c, nil
}

// Get looks up a query by name.
func (c *Catalog) Get(name string) (Query, bool) {
	q, ok := c.queries[name]
	return q, ok
}

// Names returns all query names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.queries))
	for name := range c.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of queries in the catalog.
func (c *Catalog) Len() int {
	return len(c.queries)
}
