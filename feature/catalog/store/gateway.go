package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Gateway is the table-level persistence boundary used by the catalog.
// Every method addresses a table by name so one implementation serves all tables.
type Gateway interface {
	// GetAll loads every row of table into dest, ordered by id.
	GetAll(ctx context.Context, table string, dest any) error
	// GetBy loads the rows of table matching every column/value pair in where.
	GetBy(ctx context.Context, table string, where map[string]any, dest any) error
	// Insert creates row in table. The generated id is written back into row.
	Insert(ctx context.Context, table string, row any) error
	// Update sets fields on the row identified by id.
	Update(ctx context.Context, table string, id int64, fields map[string]any) error
}

// GormGateway implements Gateway on top of a GORM connection or transaction.
type GormGateway struct {
	db *gorm.DB
}

// New creates a Gateway bound to db. Pass a transaction handle to scope all
// operations to that transaction.
func New(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

func (g *GormGateway) GetAll(ctx context.Context, table string, dest any) error {
	if err := g.db.WithContext(ctx).Table(table).Order("id").Find(dest).Error; err != nil {
		return fmt.Errorf("get all from %s: %w", table, err)
	}
	return nil
}

func (g *GormGateway) GetBy(ctx context.Context, table string, where map[string]any, dest any) error {
	if err := g.db.WithContext(ctx).Table(table).Where(where).Order("id").Find(dest).Error; err != nil {
		return fmt.Errorf("get from %s: %w", table, err)
	}
	return nil
}

func (g *GormGateway) Insert(ctx context.Context, table string, row any) error {
	if err := g.db.WithContext(ctx).Table(table).Create(row).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (g *GormGateway) Update(ctx context.Context, table string, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := g.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update %s id %d: %w", table, id, err)
	}
	return nil
}
