package appsettings

import (
	"sort"
	"sync"
)

// Catalog is the table of declared defaults, one schema per entity type.
// Schemas are validated on registration and never change afterwards.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]*EntityType
}

// NewCatalog returns a catalog holding the given entity types.
func NewCatalog(types ...EntityType) (*Catalog, error) {
	c := &Catalog{types: make(map[string]*EntityType, len(types))}

	for _, t := range types {
		if err := c.Register(t); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Register validates and adds an entity type.
func (c *Catalog) Register(t EntityType) error {
	fields := make([]Field, len(t.Fields))
	copy(fields, t.Fields)

	et := &EntityType{Name: t.Name, Fields: fields}
	if err := et.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.types == nil {
		c.types = make(map[string]*EntityType)
	}

	if _, exists := c.types[et.Name]; exists {
		return &SchemaError{Entity: et.Name, Reason: "entity type already registered"}
	}

	c.types[et.Name] = et

	return nil
}

// Schema returns the registered schema of an entity type.
func (c *Catalog) Schema(entityType string) (*EntityType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	et, ok := c.types[entityType]
	if !ok {
		return nil, &SchemaError{Entity: entityType, Reason: "unknown entity type"}
	}

	return et, nil
}

// DefaultFor returns the default of a field. Fields without a declared
// default resolve to the zero value of their kind.
func (c *Catalog) DefaultFor(entityType, fieldName string) (any, error) {
	et, err := c.Schema(entityType)
	if err != nil {
		return nil, err
	}

	f, ok := et.Field(fieldName)
	if !ok {
		return nil, &SchemaError{Entity: entityType, Field: fieldName, Reason: "unknown field"}
	}

	return f.resolvedDefault(), nil
}

// Types returns the registered entity type names in sorted order.
func (c *Catalog) Types() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewRecord returns a blank instance of an entity type with every field unset.
func (c *Catalog) NewRecord(entityType string) (*Record, error) {
	et, err := c.Schema(entityType)
	if err != nil {
		return nil, err
	}

	return newRecord(et), nil
}
