// Package snoop ties discovery, resolution, normalization and rendering
// together and implements program commands.
package snoop

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stylesnoop/discover"
	"stylesnoop/module"
	"stylesnoop/resolve"
)

var ErrNoCompatibleTypes = errors.New("module does not contain any compatible types")

// Catalog is current set of selectable styles together with resource table
// used to resolve them. Initially it is populated from framework module.
type Catalog struct {
	Framework *module.Module
	// Module is last successfully loaded module, nil if none.
	Module  *module.Module
	Entries []discover.StyleEntry
	Table   *resolve.ResourceTable

	discover []discover.Option
	log      *zap.Logger
}

func NewCatalog(log *zap.Logger, opts ...discover.Option) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := module.Framework()
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		Framework: fw,
		Table:     resolve.NewTable(fw),
		discover:  append([]discover.Option{discover.WithLogger(log)}, opts...),
		log:       log.Named("catalog"),
	}
	c.Entries = discover.Collect(fw, c.discover...)
	c.log.Debug("Framework styles discovered", zap.Int("entries", len(c.Entries)), zap.Int("styles", c.Table.Len()))
	return c, nil
}

// Load replaces catalog content with styles of module at path. When module
// cannot be loaded or has no compatible types catalog is left untouched.
func (c *Catalog) Load(path string, opts ...module.LoadOption) error {
	opts = append([]module.LoadOption{module.WithReferences(c.Framework)}, opts...)
	m, err := module.Load(path, opts...)
	if err != nil {
		return fmt.Errorf("unable to load module: %w", err)
	}

	entries := discover.Collect(m, c.discover...)
	if len(entries) == 0 {
		return fmt.Errorf("%s: %w", m.Name, ErrNoCompatibleTypes)
	}

	c.Module, c.Entries = m, entries
	c.Table = resolve.NewTable(c.Framework, m)
	c.log.Debug("Module styles discovered",
		zap.String("module", m.Name),
		zap.Int("entries", len(entries)),
		zap.Int("styles", c.Table.Len()))
	return nil
}

// Find returns entry by its display name.
func (c *Catalog) Find(name string) (discover.StyleEntry, bool) {
	return discover.Find(c.Entries, name)
}
