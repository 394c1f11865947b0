package lookup

import (
	"context"
	"fmt"

	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/store"
)

// Cache holds every reference table and every preview in memory for the
// duration of one reconciliation pass. It is not safe for concurrent use.
type Cache struct {
	catalog  *store.Catalog
	ids      map[models.ReferenceKind]map[string]int64
	names    map[models.ReferenceKind]map[int64]string
	previews map[string]models.Preview
}

// New creates an empty cache. Call Load before use.
func New(catalog *store.Catalog) *Cache {
	return &Cache{
		catalog:  catalog,
		ids:      make(map[models.ReferenceKind]map[string]int64),
		names:    make(map[models.ReferenceKind]map[int64]string),
		previews: make(map[string]models.Preview),
	}
}

// Load reads all reference tables and previews from the store.
// Loading replaces any previously cached content.
func (c *Cache) Load(ctx context.Context) error {
	for _, kind := range models.ReferenceKinds {
		items, err := c.catalog.References(ctx, kind)
		if err != nil {
			return fmt.Errorf("load %s: %w", kind, err)
		}

		ids := make(map[string]int64, len(items))
		names := make(map[int64]string, len(items))
		for _, item := range items {
			// first row wins when a name was stored twice
			if _, ok := ids[item.Name]; !ok {
				ids[item.Name] = item.ID
			}
			names[item.ID] = item.Name
		}
		c.ids[kind] = ids
		c.names[kind] = names
	}

	previews, err := c.catalog.Previews(ctx)
	if err != nil {
		return fmt.Errorf("load previews: %w", err)
	}
	c.previews = make(map[string]models.Preview, len(previews))
	for _, p := range previews {
		if _, ok := c.previews[p.OriginalID]; !ok {
			c.previews[p.OriginalID] = p
		}
	}
	return nil
}

// ResolveOrCreate returns the id of name in the reference table of kind,
// inserting the row when it does not exist yet.
func (c *Cache) ResolveOrCreate(ctx context.Context, kind models.ReferenceKind, name string) (int64, error) {
	if id, ok := c.ids[kind][name]; ok {
		return id, nil
	}

	id, err := c.catalog.CreateReference(ctx, kind, name)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", kind, name, err)
	}

	if c.ids[kind] == nil {
		c.ids[kind] = make(map[string]int64)
		c.names[kind] = make(map[int64]string)
	}
	c.ids[kind][name] = id
	c.names[kind][id] = name
	return id, nil
}

// Name returns the name stored under id in the reference table of kind.
func (c *Cache) Name(kind models.ReferenceKind, id int64) (string, bool) {
	name, ok := c.names[kind][id]
	return name, ok
}

// Preview returns the cached preview with the given remote id.
func (c *Cache) Preview(originalID string) (models.Preview, bool) {
	p, ok := c.previews[originalID]
	return p, ok
}

// PreviewID returns the local id of the preview with the given remote id,
// or models.NoThumbnail when it is unknown.
func (c *Cache) PreviewID(originalID string) int64 {
	if p, ok := c.previews[originalID]; ok {
		return p.ID
	}
	return models.NoThumbnail
}

// AddPreview records a freshly inserted preview.
func (c *Cache) AddPreview(p models.Preview) {
	c.previews[p.OriginalID] = p
}
