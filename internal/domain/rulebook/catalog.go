package rulebook

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

//go:embed data/classes.yaml
var defaultClasses []byte

// Catalog is a concurrency-safe lookup of classes by key
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

type catalogFile struct {
	Classes []*Class `yaml:"classes"`
}

// NewCatalog creates a catalog holding classes
func NewCatalog(classes ...*Class) (*Catalog, error) {
	c := &Catalog{classes: make(map[string]*Class)}
	for _, class := range classes {
		if err := c.Add(class); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ParseCatalog reads a YAML document with a top-level "classes" list
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, dnderr.Wrap(err, "failed to parse class catalog")
	}
	return NewCatalog(file.Classes...)
}

// LoadCatalogFile reads a catalog from a YAML file
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded SRD class catalog
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultClasses)
	if err != nil {
		panic(fmt.Sprintf("embedded class catalog is invalid: %v", err))
	}
	return c
}

// Add registers or replaces a class
func (c *Catalog) Add(class *Class) error {
	if class == nil {
		return dnderr.InvalidArgument("class is required")
	}
	key := strings.ToLower(strings.TrimSpace(class.Key))
	if key == "" {
		return dnderr.InvalidArgument("class key is required")
	}
	if class.HitDie < 2 {
		return dnderr.InvalidArgumentf("class %s: hit die must be at least 2, got %d", key, class.HitDie)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	class.Key = key
	c.classes[key] = class
	return nil
}

// Get looks a class up by key, case-insensitively
func (c *Catalog) Get(key string) (*Class, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	class, ok := c.classes[strings.ToLower(strings.TrimSpace(key))]
	return class, ok
}

// Keys returns the sorted class keys
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.classes))
	for k := range c.classes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Classes returns the classes sorted by key
func (c *Catalog) Classes() []*Class {
	keys := c.Keys()

	c.mu.RLock()
	defer c.mu.RUnlock()
	classes := make([]*Class, 0, len(keys))
	for _, k := range keys {
		classes = append(classes, c.classes[k])
	}
	return classes
}

// Encode writes the catalog in the same YAML layout ParseCatalog reads
func (c *Catalog) Encode() ([]byte, error) {
	data, err := yaml.Marshal(&catalogFile{Classes: c.Classes()})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to encode class catalog")
	}
	return data, nil
}
